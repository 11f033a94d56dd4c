// ABOUTME: CLI commands for the exercise library.
// ABOUTME: Supports list, show, add, edit and delete subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
)

var (
	exerciseSearch       string
	exerciseCategory     string
	exerciseMuscles      []string
	exerciseEquipment    string
	exerciseInstructions string
	exerciseName         string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex", "e"},
	Short:   "Manage exercises",
	Long: `Browse the exercise library and manage custom exercises.

Built-in exercises are seeded on first run and cannot be edited or deleted.
Custom exercises can be changed freely until a workout, template or record
uses them.

CATEGORIES:

  Strength      sets take reps and weight
  Cardio        sets take distance (m) and duration (s)
  Flexibility   any values
  Sports        any values

COMMANDS:

  list     List exercises
  show     Show one exercise
  add      Create a custom exercise
  edit     Change a custom exercise
  delete   Delete an unused custom exercise`,
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	Long: `List exercises, built-ins first, alphabetically.

EXAMPLES:

  fitlog exercise list                   # Everything
  fitlog exercise list --search press    # Name or muscle group contains "press"
  fitlog exercise list -c cardio         # Only cardio`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := storage.ExerciseFilter{Search: exerciseSearch}
		if exerciseCategory != "" {
			c, ok := models.ParseCategory(exerciseCategory)
			if !ok {
				return fmt.Errorf("unknown category: %s", exerciseCategory)
			}
			filter.Category = c
		}

		exercises, err := repo.ListExercises(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(exercises) == 0 {
			fmt.Fprintln(out, "No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range exercises {
			custom := ""
			if e.IsCustom {
				custom = color.New(color.FgCyan).Sprint(" (custom)")
			}
			fmt.Fprintf(out, "%s %s %s %s%s\n",
				faint.Sprintf("%4d", e.ID),
				padRight(e.Name, 22),
				padRight(string(e.Category), 12),
				faint.Sprint(truncate(e.MuscleGroups, 30)),
				custom)
		}

		return nil
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show exercise details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := resolveExercise(cmd.Context(), repo, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Exercise: %s\n", e.Name)
		fmt.Fprintf(out, "ID: %d\n", e.ID)
		fmt.Fprintf(out, "Category: %s\n", e.Category)
		fmt.Fprintf(out, "Muscles: %s\n", strings.Join(e.MuscleGroupList(), ", "))
		if e.Equipment != nil {
			fmt.Fprintf(out, "Equipment: %s\n", *e.Equipment)
		}
		if e.Instructions != nil {
			fmt.Fprintf(out, "Instructions: %s\n", *e.Instructions)
		}
		if e.IsCustom {
			fmt.Fprintln(out, "Custom: yes")
		}

		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a custom exercise",
	Long: `Create a custom exercise.

Examples:
  fitlog exercise add "Landmine Press" -c strength -m shoulders -m chest
  fitlog exercise add "Jump Rope" -c cardio -m calves --equipment rope`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ok := models.ParseCategory(exerciseCategory)
		if !ok {
			return fmt.Errorf("unknown category: %q (use strength, cardio, flexibility or sports)", exerciseCategory)
		}

		e := models.NewExercise(args[0], c, exerciseMuscles...)
		if exerciseEquipment != "" {
			e.WithEquipment(exerciseEquipment)
		}
		if exerciseInstructions != "" {
			e.WithInstructions(exerciseInstructions)
		}

		id, err := repo.CreateExercise(cmd.Context(), e)
		if err != nil {
			return fmt.Errorf("failed to create exercise: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added %s\n", e.Name)
		fmt.Fprintf(out, "  ID: %d\n", id)
		return nil
	},
}

var exerciseEditCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Change a custom exercise",
	Long: `Change a custom exercise. Only the flags you pass are updated; pass an
empty --equipment or --instructions to clear it.

Examples:
  fitlog exercise edit "Landmine Press" --name "Landmine Push Press"
  fitlog exercise edit 23 --equipment ""`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := resolveExercise(cmd.Context(), repo, args[0])
		if err != nil {
			return err
		}
		if !e.IsCustom {
			return fmt.Errorf("%s is a built-in exercise and cannot be changed", e.Name)
		}

		flags := cmd.Flags()
		var patch models.ExercisePatch
		if flags.Changed("name") {
			patch.Name = models.Some(exerciseName)
		}
		if flags.Changed("category") {
			c, ok := models.ParseCategory(exerciseCategory)
			if !ok {
				return fmt.Errorf("unknown category: %s", exerciseCategory)
			}
			patch.Category = models.Some(c)
		}
		if flags.Changed("muscle") {
			patch.MuscleGroups = models.Some(strings.Join(exerciseMuscles, ","))
		}
		if flags.Changed("equipment") {
			patch.Equipment = textPatch(exerciseEquipment)
		}
		if flags.Changed("instructions") {
			patch.Instructions = textPatch(exerciseInstructions)
		}
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to change (see --help)")
		}

		if err := repo.UpdateExercise(cmd.Context(), e.ID, patch); err != nil {
			return fmt.Errorf("failed to update exercise: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated %s\n", e.Name)
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <id|name>",
	Aliases: []string{"rm"},
	Short:   "Delete a custom exercise",
	Long: `Delete a custom exercise.

Exercises used by a workout, template or personal record cannot be deleted.
Built-in exercises are never deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := resolveExercise(cmd.Context(), repo, args[0])
		if err != nil {
			return err
		}
		if !e.IsCustom {
			return fmt.Errorf("%s is a built-in exercise and cannot be deleted", e.Name)
		}

		if err := repo.DeleteExercise(cmd.Context(), e.ID); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}

		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted %s\n", e.Name)
		return nil
	},
}

// textPatch clears the field when value is blank.
func textPatch(value string) models.Opt[string] {
	if strings.TrimSpace(value) == "" {
		return models.Null[string]()
	}
	return models.Some(value)
}

func init() {
	exerciseListCmd.Flags().StringVarP(&exerciseSearch, "search", "s", "", "filter by name or muscle group")
	exerciseListCmd.Flags().StringVarP(&exerciseCategory, "category", "c", "", "filter by category")

	exerciseAddCmd.Flags().StringVarP(&exerciseCategory, "category", "c", "", "category (strength, cardio, flexibility, sports)")
	exerciseAddCmd.Flags().StringSliceVarP(&exerciseMuscles, "muscle", "m", nil, "muscle group worked (repeatable)")
	exerciseAddCmd.Flags().StringVar(&exerciseEquipment, "equipment", "", "equipment used")
	exerciseAddCmd.Flags().StringVar(&exerciseInstructions, "instructions", "", "how to perform it")
	_ = exerciseAddCmd.MarkFlagRequired("category")
	_ = exerciseAddCmd.MarkFlagRequired("muscle")

	exerciseEditCmd.Flags().StringVar(&exerciseName, "name", "", "new name")
	exerciseEditCmd.Flags().StringVarP(&exerciseCategory, "category", "c", "", "new category")
	exerciseEditCmd.Flags().StringSliceVarP(&exerciseMuscles, "muscle", "m", nil, "new muscle groups (repeatable)")
	exerciseEditCmd.Flags().StringVar(&exerciseEquipment, "equipment", "", "new equipment, empty to clear")
	exerciseEditCmd.Flags().StringVar(&exerciseInstructions, "instructions", "", "new instructions, empty to clear")

	exerciseCmd.AddCommand(exerciseListCmd, exerciseShowCmd, exerciseAddCmd, exerciseEditCmd, exerciseDeleteCmd)
	rootCmd.AddCommand(exerciseCmd)
}
