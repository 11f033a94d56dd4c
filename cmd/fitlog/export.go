// ABOUTME: CLI commands for exporting and importing fitlog data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
)

var (
	exportOutput string
	exportSince  string
	importFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export fitlog data",
	Long: `Export fitlog data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable, also importable)
  markdown   Workout log with set tables (for sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include workouts since this date (markdown only)

EXAMPLES:

  fitlog export json                        # Export all data as JSON
  fitlog export json -o backup.json         # Save to file
  fitlog export yaml                        # Export as YAML
  fitlog export markdown --since 2025-01-01 # Workouts from 2025 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = repo.ExportJSON(ctx)
		case "yaml":
			data, err = repo.ExportYAML(ctx)
		case "markdown", "md":
			var since models.Date
			if exportSince != "" {
				since, err = models.ParseDate(exportSince)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
			}
			var md string
			md, err = repo.ExportMarkdown(ctx, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import fitlog data from JSON or YAML",
	Long: `Import a previous JSON or YAML export.

Records get new IDs and references are rewired. Custom exercises are matched
by name and category; built-in exercises are never overwritten. If any entry
is invalid nothing is imported.

EXAMPLES:

  fitlog import backup.json               # Import from file
  fitlog import backup.txt --format yaml  # Override the format`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		format := importFormat
		if format == "" {
			format = strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
		}

		var summary *storage.ImportSummary
		switch format {
		case "yaml", "yml":
			summary, err = repo.ImportYAML(cmd.Context(), data)
		default:
			summary, err = repo.ImportJSON(cmd.Context(), data)
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Imported from %s\n", filename)
		fmt.Fprintf(out, "  Exercises: %d new, %d updated, %d matched\n",
			summary.ExercisesCreated, summary.ExercisesUpdated, summary.ExercisesMatched)
		fmt.Fprintf(out, "  Workouts: %d (%d exercises, %d sets)\n",
			summary.Workouts, summary.WorkoutExercises, summary.Sets)
		fmt.Fprintf(out, "  Templates: %d (%d exercises)\n", summary.Templates, summary.TemplateExercises)
		fmt.Fprintf(out, "  Records: %d\n", summary.PersonalRecords)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include workouts since date (YYYY-MM-DD)")
	importCmd.Flags().StringVar(&importFormat, "format", "", "json or yaml (default: from file extension)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
