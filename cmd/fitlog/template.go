// ABOUTME: CLI commands for workout templates.
// ABOUTME: Supports list, show, add, delete and apply subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
)

var (
	templateDescription string
	templateExercises   []string
	templateWorkoutName string
	templateDate        string
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"t"},
	Short:   "Manage workout templates",
	Long: `Templates are reusable workouts. Each exercise can carry a default number
of sets, reps and weight, written as SETSxREPS@WEIGHT.

Examples:
  fitlog template add "Push A" --exercise "Bench Press:3x5@100" --exercise "Overhead Press:3x8"
  fitlog template apply 1                   # Log today's workout from it
  fitlog template apply 1 --dry-run         # Preview the sets`,
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := repo.ListTemplates(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(templates) == 0 {
			fmt.Fprintln(out, "No templates found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, t := range templates {
			desc := ""
			if t.Description != nil {
				desc = faint.Sprint(truncate(*t.Description, 40))
			}
			fmt.Fprintf(out, "%s %s %s\n", faint.Sprintf("%4d", t.ID), padRight(t.Name, 24), desc)
		}
		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show template details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		t, err := repo.GetTemplateWithExercises(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Template: %s\n", t.Name)
		fmt.Fprintf(out, "ID: %d\n", t.ID)
		if t.Description != nil {
			fmt.Fprintf(out, "Description: %s\n", *t.Description)
		}
		if len(t.Exercises) > 0 {
			fmt.Fprintln(out)
		}
		for i, te := range t.Exercises {
			fmt.Fprintf(out, "  %d. %s %s\n", i+1, padRight(te.Exercise.Name, 22), formatTemplateDefaults(te.TemplateExercise))
		}
		return nil
	},
}

var templateAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a template",
	Long: `Create a template. Each --exercise names an exercise and optional defaults.

Examples:
  fitlog template add "Push A" --exercise "Bench Press:3x5@100" --exercise "Push-ups:2x20"
  fitlog template add "Cardio" --exercise Running --description "Easy day"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Resolve every exercise before writing.
		entries := make([]*models.TemplateExercise, 0, len(templateExercises))
		for _, spec := range templateExercises {
			ref, values := splitExerciseSpec(spec)
			e, err := resolveExercise(ctx, repo, ref)
			if err != nil {
				return err
			}
			te := &models.TemplateExercise{ExerciseID: e.ID}
			if len(values) > 0 {
				te.DefaultSets, te.DefaultReps, te.DefaultWeight, err = templateDefaults(values[0])
				if err != nil {
					return err
				}
			}
			entries = append(entries, te)
		}

		t := models.NewTemplate(args[0])
		if templateDescription != "" {
			t.WithDescription(templateDescription)
		}
		id, err := repo.CreateTemplateWithExercises(ctx, t, entries)
		if err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added template %s\n", t.Name)
		fmt.Fprintf(out, "  ID: %d\n", id)
		fmt.Fprintf(out, "  Exercises: %d\n", len(entries))
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		t, err := repo.GetTemplate(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("template not found: %d", id)
		}
		if err := repo.DeleteTemplate(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted template %s\n", t.Name)
		return nil
	},
}

var templateApplyDryRun bool

var templateApplyCmd = &cobra.Command{
	Use:   "apply <id>",
	Short: "Log a workout from a template",
	Long: `Log a workout with every template exercise pre-filled with its defaults.
Use --dry-run to print the sets without saving.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var date models.Date
		if templateDate != "" {
			if date, err = parseDate(templateDate); err != nil {
				return err
			}
		}

		draft, err := repo.ApplyTemplate(ctx, id, templateWorkoutName, date)
		if err != nil {
			return fmt.Errorf("failed to apply template: %w", err)
		}

		out := cmd.OutOrStdout()
		if templateApplyDryRun {
			fmt.Fprintf(out, "%s on %s\n", draft.Name, draft.Date)
			for _, ex := range draft.Exercises {
				e, err := repo.GetExercise(ctx, ex.ExerciseID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\n%s\n", e.Name)
				for i, s := range ex.Sets {
					fmt.Fprintf(out, "  %d. %s\n", i+1, storage.FormatSet(s))
				}
			}
			return nil
		}

		result, err := repo.SaveWorkout(ctx, draft)
		if err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}

		color.New(color.FgGreen).Fprintf(out, "✓ Logged %s\n", draft.Name)
		fmt.Fprintf(out, "  ID: %d\n", result.WorkoutID)
		fmt.Fprintf(out, "  Date: %s\n", draft.Date)
		printRecords(out, result.Records, exerciseNames(cmd, draft))
		return nil
	},
}

func exerciseNames(cmd *cobra.Command, draft *models.WorkoutDraft) map[int64]string {
	names := make(map[int64]string, len(draft.Exercises))
	for _, ex := range draft.Exercises {
		if e, err := repo.GetExercise(cmd.Context(), ex.ExerciseID); err == nil {
			names[e.ID] = e.Name
		}
	}
	return names
}

// formatTemplateDefaults renders defaults as "3 × 5 @ 100".
func formatTemplateDefaults(te models.TemplateExercise) string {
	s := ""
	if te.DefaultSets != nil {
		s = fmt.Sprintf("%d sets", *te.DefaultSets)
		if te.DefaultReps != nil {
			s = fmt.Sprintf("%d × %d", *te.DefaultSets, *te.DefaultReps)
		}
	} else if te.DefaultReps != nil {
		s = fmt.Sprintf("%d reps", *te.DefaultReps)
	}
	if te.DefaultWeight != nil {
		s += fmt.Sprintf(" @ %g", *te.DefaultWeight)
	}
	return s
}

func init() {
	templateAddCmd.Flags().StringVar(&templateDescription, "description", "", "template description")
	templateAddCmd.Flags().StringArrayVarP(&templateExercises, "exercise", "e", nil, `exercise with defaults, e.g. "Bench Press:3x5@100" (repeatable)`)

	templateApplyCmd.Flags().StringVar(&templateWorkoutName, "name", "", "workout name (default: template name)")
	templateApplyCmd.Flags().StringVarP(&templateDate, "date", "d", "", "workout date (default: today)")
	templateApplyCmd.Flags().BoolVar(&templateApplyDryRun, "dry-run", false, "print the workout without saving")

	templateCmd.AddCommand(templateListCmd, templateShowCmd, templateAddCmd, templateDeleteCmd, templateApplyCmd)
	rootCmd.AddCommand(templateCmd)
}
