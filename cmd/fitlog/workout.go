// ABOUTME: CLI commands for managing workouts and their sets.
// ABOUTME: Supports log, add, list, show, edit, delete and set-level subcommands.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
)

var (
	workoutDate     string
	workoutDuration int
	workoutNotes    string
	workoutName     string
	workoutLimit    int
	workoutOffset   int
	workoutSets     []string
	workoutOrder    int
	setNotes        string
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Track workout sessions made of exercises and sets.

The quickest way to record a session is 'workout log', which saves the
workout, its exercises and sets in one step and reports new personal records.

SET FORMAT:

  5x100          5 reps at 100 (strength)
  12             12 reps
  5000m/1500s    5000 meters in 1500 seconds (cardio)
  5km/25min      same, with units converted
  60s            60 seconds

WORKFLOW:

  1. Log a whole workout:   fitlog workout log "Push" --set "Bench Press:5x100,5x105"
  2. Or build one up:       fitlog workout add "Push"
                            fitlog workout add-exercise 1 "Bench Press"
                            fitlog workout add-set 1 5x100
  3. View details:          fitlog workout show 1`,
}

var workoutLogCmd = &cobra.Command{
	Use:   "log <name>",
	Short: "Log a complete workout",
	Long: `Log a complete workout in one step.

Each --set names an exercise (by name or ID) followed by one or more sets.
Exercises are stored in the order they first appear.

Examples:
  fitlog workout log "Push" --set "Bench Press:5x100,5x105" --set "Overhead Press:8x50"
  fitlog workout log "Run" --set "Running:5km/25min" --date yesterday --duration 30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if len(workoutSets) == 0 {
			return fmt.Errorf("add at least one --set")
		}

		date, err := parseDate(workoutDate)
		if err != nil {
			return err
		}

		draft := &models.WorkoutDraft{Name: args[0], Date: date}
		if workoutDuration > 0 {
			draft.Duration = &workoutDuration
		}
		if workoutNotes != "" {
			draft.Notes = &workoutNotes
		}

		names := map[int64]string{}
		position := map[int64]int{}
		for _, spec := range workoutSets {
			ref, values := splitExerciseSpec(spec)
			if len(values) == 0 {
				return fmt.Errorf("no sets given for %q (try \"%s:5x100\")", ref, ref)
			}
			e, err := resolveExercise(ctx, repo, ref)
			if err != nil {
				return err
			}
			names[e.ID] = e.Name

			idx, ok := position[e.ID]
			if !ok {
				idx = len(draft.Exercises)
				position[e.ID] = idx
				draft.Exercises = append(draft.Exercises, models.DraftExercise{ExerciseID: e.ID})
			}
			for _, v := range values {
				set, err := parseSetSpec(v)
				if err != nil {
					return err
				}
				draft.Exercises[idx].Sets = append(draft.Exercises[idx].Sets, set)
			}
		}

		result, err := repo.SaveWorkout(ctx, draft)
		if err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Logged %s\n", draft.Name)
		fmt.Fprintf(out, "  ID: %d\n", result.WorkoutID)
		fmt.Fprintf(out, "  Date: %s\n", draft.Date)
		printRecords(out, result.Records, names)
		return nil
	},
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an empty workout",
	Long: `Add a workout without exercises. Use add-exercise and add-set to fill it in.

Examples:
  fitlog workout add "Leg Day" --duration 45
  fitlog workout add "Yoga" --date 2025-06-01 --notes "Morning flow"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDate(workoutDate)
		if err != nil {
			return err
		}

		w := models.NewWorkout(args[0], date)
		if workoutDuration > 0 {
			w.WithDuration(workoutDuration)
		}
		if workoutNotes != "" {
			w.WithNotes(workoutNotes)
		}

		id, err := repo.CreateWorkout(cmd.Context(), w)
		if err != nil {
			return fmt.Errorf("failed to create workout: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added %s workout\n", w.Name)
		fmt.Fprintf(out, "  ID: %d\n", id)
		if w.Duration != nil {
			fmt.Fprintf(out, "  Duration: %d min\n", *w.Duration)
		}

		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := repo.ListWorkouts(cmd.Context(), workoutLimit, workoutOffset)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(workouts) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			duration := ""
			if w.Duration != nil {
				duration = fmt.Sprintf("%d min", *w.Duration)
			}
			fmt.Fprintf(out, "%s %s %s %s\n",
				faint.Sprintf("%4d", w.ID),
				faint.Sprint(w.Date),
				padRight(truncate(w.Name, 24), 24),
				duration)
		}

		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		w, err := repo.GetWorkoutWithExercises(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		fmt.Fprintf(out, "Workout: %s\n", w.Name)
		fmt.Fprintf(out, "ID: %d\n", w.ID)
		fmt.Fprintf(out, "Date: %s\n", w.Date)
		if w.Duration != nil {
			fmt.Fprintf(out, "Duration: %d min\n", *w.Duration)
		}
		if w.Notes != nil {
			fmt.Fprintf(out, "Notes: %s\n", *w.Notes)
		}

		for _, ex := range w.Exercises {
			fmt.Fprintf(out, "\n%s %s\n", ex.Exercise.Name, faint.Sprintf("(entry %d)", ex.ID))
			if len(ex.Sets) == 0 {
				fmt.Fprintln(out, faint.Sprint("  no sets"))
				continue
			}
			for _, s := range ex.Sets {
				notes := ""
				if s.Notes != nil {
					notes = faint.Sprintf(" (%s)", truncate(*s.Notes, 30))
				}
				fmt.Fprintf(out, "  %d. %s%s %s\n", s.SetNumber, storage.FormatSet(s), notes, faint.Sprintf("[set %d]", s.ID))
			}
		}

		return nil
	},
}

var workoutEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a workout",
	Long: `Change a workout's name, date, duration or notes. Only the flags you pass
are updated; pass an empty --notes to clear the notes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if _, err := repo.GetWorkout(cmd.Context(), id); err != nil {
			return fmt.Errorf("workout not found: %d", id)
		}

		flags := cmd.Flags()
		var patch models.WorkoutPatch
		if flags.Changed("name") {
			patch.Name = models.Some(workoutName)
		}
		if flags.Changed("date") {
			date, err := parseDate(workoutDate)
			if err != nil {
				return err
			}
			patch.Date = models.Some(date)
		}
		if flags.Changed("duration") {
			patch.Duration = models.Some(workoutDuration)
		}
		if flags.Changed("notes") {
			patch.Notes = textPatch(workoutNotes)
		}
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to change (see --help)")
		}

		if err := repo.UpdateWorkout(cmd.Context(), id, patch); err != nil {
			return fmt.Errorf("failed to update workout: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated workout %d\n", id)
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout with its exercises and sets.

Personal records set during the workout are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		w, err := repo.GetWorkout(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("workout not found: %d", id)
		}

		if err := repo.DeleteWorkout(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted %s (%s)\n", w.Name, w.Date)
		return nil
	},
}

var workoutAddExerciseCmd = &cobra.Command{
	Use:   "add-exercise <workout-id> <exercise>",
	Short: "Add an exercise to a workout",
	Long: `Add an exercise to a workout. It goes last unless --order is given.

Examples:
  fitlog workout add-exercise 4 "Bench Press"
  fitlog workout add-exercise 4 12 --order 0`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		workoutID, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := resolveExercise(ctx, repo, args[1])
		if err != nil {
			return err
		}

		order := workoutOrder
		if !cmd.Flags().Changed("order") {
			w, err := repo.GetWorkoutWithExercises(ctx, workoutID)
			if err != nil {
				return fmt.Errorf("workout not found: %d", workoutID)
			}
			order = len(w.Exercises)
		}

		id, err := repo.AddExerciseToWorkout(ctx, workoutID, e.ID, order)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added %s\n", e.Name)
		fmt.Fprintf(out, "  Entry ID: %d\n", id)
		return nil
	},
}

var workoutRemoveExerciseCmd = &cobra.Command{
	Use:   "remove-exercise <entry-id>",
	Short: "Remove an exercise and its sets from a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := repo.RemoveExerciseFromWorkout(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to remove exercise: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Removed entry %d\n", id)
		return nil
	},
}

var workoutAddSetCmd = &cobra.Command{
	Use:   "add-set <entry-id> <set>",
	Short: "Add a set to an exercise in a workout",
	Long: `Add a set to an exercise entry (shown by 'workout show').

Examples:
  fitlog workout add-set 7 5x100
  fitlog workout add-set 8 5000m/1500s --notes "windy"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseID(args[0])
		if err != nil {
			return err
		}
		set, err := parseSetSpec(args[1])
		if err != nil {
			return err
		}
		set.WorkoutExerciseID = entryID
		if setNotes != "" {
			set.Notes = &setNotes
		}

		id, err := repo.AddSet(cmd.Context(), &set)
		if err != nil {
			return fmt.Errorf("failed to add set: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Set %d: %s\n", set.SetNumber, storage.FormatSet(set))
		fmt.Fprintf(out, "  ID: %d\n", id)
		return nil
	},
}

var workoutEditSetCmd = &cobra.Command{
	Use:   "edit-set <set-id> <set>",
	Short: "Replace the values of a set",
	Long: `Replace the values of a set. Values missing from the new set are cleared.

Examples:
  fitlog workout edit-set 31 5x102.5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		set, err := parseSetSpec(args[1])
		if err != nil {
			return err
		}
		if _, err := repo.GetSet(cmd.Context(), id); err != nil {
			return fmt.Errorf("set not found: %d", id)
		}

		patch := models.SetPatch{
			Reps:     replaceOpt(set.Reps),
			Weight:   replaceOpt(set.Weight),
			Distance: replaceOpt(set.Distance),
			Duration: replaceOpt(set.Duration),
		}
		if cmd.Flags().Changed("notes") {
			patch.Notes = textPatch(setNotes)
		}

		if err := repo.UpdateSet(cmd.Context(), id, patch); err != nil {
			return fmt.Errorf("failed to update set: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated set %d: %s\n", id, storage.FormatSet(set))
		return nil
	},
}

var workoutDeleteSetCmd = &cobra.Command{
	Use:   "delete-set <set-id>",
	Short: "Delete a set",
	Long:  `Delete a set. Later sets of the same exercise are renumbered.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := repo.DeleteSet(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete set: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted set %d\n", id)
		return nil
	},
}

// replaceOpt assigns p, or clears the field when p is nil.
func replaceOpt[T any](p *T) models.Opt[T] {
	if p == nil {
		return models.Null[T]()
	}
	return models.Some(*p)
}

func printRecords(out io.Writer, records []*models.PersonalRecord, names map[int64]string) {
	if len(records) == 0 {
		return
	}
	gold := color.New(color.FgYellow, color.Bold)
	for _, pr := range records {
		name := pr.ExerciseName
		if name == "" {
			name = names[pr.ExerciseID]
		}
		gold.Fprintf(out, "  ★ New %s record: %s %g\n", pr.RecordType, name, pr.Value)
	}
}

func init() {
	workoutLogCmd.Flags().StringArrayVarP(&workoutSets, "set", "s", nil, `exercise and sets, e.g. "Bench Press:5x100,5x105" (repeatable)`)
	workoutLogCmd.Flags().StringVarP(&workoutDate, "date", "d", "", "workout date (YYYY-MM-DD, today, yesterday)")
	workoutLogCmd.Flags().IntVar(&workoutDuration, "duration", 0, "duration in minutes")
	workoutLogCmd.Flags().StringVar(&workoutNotes, "notes", "", "workout notes")

	workoutAddCmd.Flags().StringVarP(&workoutDate, "date", "d", "", "workout date (YYYY-MM-DD, today, yesterday)")
	workoutAddCmd.Flags().IntVar(&workoutDuration, "duration", 0, "duration in minutes")
	workoutAddCmd.Flags().StringVar(&workoutNotes, "notes", "", "workout notes")

	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")
	workoutListCmd.Flags().IntVar(&workoutOffset, "offset", 0, "skip this many workouts")

	workoutEditCmd.Flags().StringVar(&workoutName, "name", "", "new name")
	workoutEditCmd.Flags().StringVarP(&workoutDate, "date", "d", "", "new date")
	workoutEditCmd.Flags().IntVar(&workoutDuration, "duration", 0, "new duration in minutes")
	workoutEditCmd.Flags().StringVar(&workoutNotes, "notes", "", "new notes, empty to clear")

	workoutAddExerciseCmd.Flags().IntVar(&workoutOrder, "order", 0, "position in the workout (default last)")

	workoutAddSetCmd.Flags().StringVar(&setNotes, "notes", "", "set notes")
	workoutEditSetCmd.Flags().StringVar(&setNotes, "notes", "", "new set notes, empty to clear")

	workoutCmd.AddCommand(
		workoutLogCmd, workoutAddCmd, workoutListCmd, workoutShowCmd, workoutEditCmd, workoutDeleteCmd,
		workoutAddExerciseCmd, workoutRemoveExerciseCmd, workoutAddSetCmd, workoutEditSetCmd, workoutDeleteSetCmd,
	)
	rootCmd.AddCommand(workoutCmd)
}
