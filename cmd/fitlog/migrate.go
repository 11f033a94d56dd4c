// ABOUTME: CLI command reporting the database schema state.
// ABOUTME: Opening the database applies pending migrations; this shows the result.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fitlog/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the database schema up to date",
	Long: `Bring the database schema up to date and report its version.

Every fitlog command applies pending migrations when it opens the database,
so this is mostly useful to check where the data lives and which schema
version it is on. Migrations run in order, each in its own transaction.

The database is stored at ~/.local/share/fitlog/fitlog.db unless data_dir
or FITLOG_DATA_DIR says otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := repo.SchemaVersion(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		out := cmd.OutOrStdout()
		latest := storage.LatestSchemaVersion()
		if current == latest {
			color.New(color.FgGreen).Fprintf(out, "✓ Schema is up to date (version %d)\n", current)
		} else {
			color.New(color.FgYellow).Fprintf(out, "⚠ Schema is at version %d, latest is %d\n", current, latest)
		}
		fmt.Fprintf(out, "  Database: %s\n", repo.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
