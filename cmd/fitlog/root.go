// ABOUTME: Root Cobra command for fitlog CLI.
// ABOUTME: Loads config, sets up logging and manages the storage lifecycle.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harperreed/fitlog/internal/config"
	"github.com/harperreed/fitlog/internal/logging"
	"github.com/harperreed/fitlog/internal/storage"
)

// version is set at build time.
var version = "dev"

var (
	cfg        *config.Config
	repo       *storage.DB
	logCloser  io.Closer
	dataDirArg string
)

var rootCmd = &cobra.Command{
	Use:   "fitlog",
	Short: "Personal workout tracker",
	Long: `Fitlog is a CLI tool for logging strength and cardio workouts.

WHAT IT TRACKS:

  Exercises        a built-in library plus your own custom exercises
  Workouts         dated sessions with exercises and sets
  Templates        reusable workouts with default sets, reps and weight
  Records          personal bests, detected automatically when you log

QUICK START:

  $ fitlog workout log "Push Day" --set "Bench Press:5x100,5x105"
  $ fitlog workout log "Easy Run" --set "Running:5000m/1500s"
  $ fitlog workout list                    # See recent workouts
  $ fitlog stats                           # Totals for the week and month
  $ fitlog progress "Bench Press"          # Per-day progress

TEMPLATES:

  $ fitlog template add "Push A" --exercise "Bench Press:3x5@100"
  $ fitlog template apply 1                # Log a workout from a template

MCP INTEGRATION:

  Run 'fitlog mcp' to start the Model Context Protocol server for use with
  AI assistants. Add to your MCP client config:

  {
    "mcpServers": {
      "fitlog": { "command": "fitlog", "args": ["mcp"] }
    }
  }

CONFIGURATION:

  Settings are read from ~/.config/fitlog/config.toml and FITLOG_* env vars:

    data_dir       FITLOG_DATA_DIR       where fitlog.db lives
    log_level      FITLOG_LOG_LEVEL      trace, debug, info, warn, error
    log_file       FITLOG_LOG_FILE       rotate logs into this file
    log_json       FITLOG_LOG_JSON       JSON log lines
    progress_days  FITLOG_PROGRESS_DAYS  default progress window
    record_limit   FITLOG_RECORD_LIMIT   default records shown

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/fitlog/fitlog.db.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDirArg != "" {
			cfg.DataDir = dataDirArg
		}

		logCloser = logging.Setup(cfg.LoggerParams())

		repo, err = cfg.OpenStorage(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to open database at %s: %w", cfg.DBPath(), err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStorage()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fitlog version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fitlog %s\n", version)
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if closeErr := closeStorage(); err == nil {
		err = closeErr
	}
	return err
}

func closeStorage() error {
	var err error
	if repo != nil {
		err = repo.Close()
		repo = nil
	}
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirArg, "data-dir", "", "data directory (overrides config)")
	rootCmd.AddCommand(versionCmd)
}
