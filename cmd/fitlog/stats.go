// ABOUTME: CLI commands for statistics, exercise progress and personal records.
// ABOUTME: Defaults for progress window and record count come from config.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	progressDays   int
	progressPoints int
	recordsLimit   int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workout statistics",
	Long: `Show totals across every logged workout.

Volume is the sum of weight × reps over sets that have both. Average
duration only counts workouts with a duration. Weeks start on Sunday.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := repo.GetWorkoutStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		bold.Fprintln(out, "Workouts")
		fmt.Fprintf(out, "  Total:        %d\n", stats.TotalWorkouts)
		fmt.Fprintf(out, "  This week:    %d\n", stats.WorkoutsThisWeek)
		fmt.Fprintf(out, "  This month:   %d\n", stats.WorkoutsThisMonth)
		bold.Fprintln(out, "Training")
		fmt.Fprintf(out, "  Volume:       %.1f\n", stats.TotalVolume)
		fmt.Fprintf(out, "  Time:         %d min\n", stats.TotalDuration)
		fmt.Fprintf(out, "  Avg duration: %.0f min\n", stats.AverageDuration)
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress <exercise>",
	Short: "Show progress for an exercise",
	Long: `Show per-day best weight and volume for an exercise over a trailing window.

Examples:
  fitlog progress "Bench Press"
  fitlog progress squat --days 30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := resolveExercise(ctx, repo, args[0])
		if err != nil {
			return err
		}

		days := progressDays
		if days <= 0 {
			days = cfg.GetProgressDays()
		}

		p, err := repo.GetExerciseProgress(ctx, e.ID, days)
		if err != nil {
			return fmt.Errorf("failed to get progress: %w", err)
		}

		out := cmd.OutOrStdout()
		if p == nil {
			fmt.Fprintf(out, "No %s sets in the last %d days.\n", e.Name, days)
			return nil
		}

		color.New(color.Bold).Fprintf(out, "%s (last %d days)\n", p.ExerciseName, days)
		fmt.Fprintf(out, "  Best weight:  %g\n", p.MaxWeight)
		fmt.Fprintf(out, "  Best reps:    %d\n", p.MaxReps)
		fmt.Fprintf(out, "  Volume:       %.1f\n", p.TotalVolume)
		fmt.Fprintf(out, "  Last done:    %s\n", p.LastPerformed)

		points := p.Recent(progressPoints)
		if len(points) == 0 {
			return nil
		}
		fmt.Fprintln(out)

		best := 0.0
		for _, pt := range points {
			best = max(best, pt.MaxWeight)
		}
		faint := color.New(color.Faint)
		for _, pt := range points {
			fmt.Fprintf(out, "  %s %8g %s %s\n",
				faint.Sprint(pt.Date), pt.MaxWeight, bar(pt.MaxWeight, best, 20),
				faint.Sprintf("vol %.0f", pt.TotalVolume))
		}
		return nil
	},
}

var recordsCmd = &cobra.Command{
	Use:     "records",
	Aliases: []string{"pr", "prs"},
	Short:   "List personal records",
	Long: `List the most recently set personal records.

Records are detected automatically when you log a workout: the heaviest
weight for strength exercises and the longest distance for cardio.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := recordsLimit
		if limit <= 0 {
			limit = cfg.GetRecordLimit()
		}

		records, err := repo.GetPersonalRecords(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No personal records yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, pr := range records {
			fmt.Fprintf(out, "%s %s %s %g\n",
				faint.Sprint(pr.Date),
				padRight(pr.ExerciseName, 22),
				padRight(string(pr.RecordType), 9),
				pr.Value)
		}
		return nil
	},
}

// bar draws value as a share of maximum.
func bar(value, maximum float64, width int) string {
	if maximum <= 0 || value <= 0 {
		return strings.Repeat(" ", width)
	}
	n := int(value / maximum * float64(width))
	n = max(n, 1)
	return strings.Repeat("█", n) + strings.Repeat(" ", width-n)
}

func init() {
	progressCmd.Flags().IntVar(&progressDays, "days", 0, "trailing window in days (default from config, 90)")
	progressCmd.Flags().IntVarP(&progressPoints, "points", "n", 10, "number of recent days to chart (0 for all)")
	recordsCmd.Flags().IntVarP(&recordsLimit, "limit", "n", 0, "max number of results (default from config, 10)")

	rootCmd.AddCommand(statsCmd, progressCmd, recordsCmd)
}
