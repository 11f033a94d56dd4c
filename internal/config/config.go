// ABOUTME: fitlog configuration loaded from a TOML file with env overrides.
// ABOUTME: Resolves the data directory, log settings and query defaults.

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"

	"github.com/harperreed/fitlog/internal/logging"
	"github.com/harperreed/fitlog/internal/storage"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "fitlog.db"

// Config stores fitlog configuration.
type Config struct {
	// DataDir is the root directory for data storage. fitlog.db lives here.
	// Supports ~ expansion. Defaults to ~/.local/share/fitlog.
	DataDir string `toml:"data_dir,omitempty" env:"FITLOG_DATA_DIR"`

	// logging
	LogLevel string `toml:"log_level,omitempty" env:"FITLOG_LOG_LEVEL"`
	LogFile  string `toml:"log_file,omitempty" env:"FITLOG_LOG_FILE"`
	LogJSON  bool   `toml:"log_json,omitempty" env:"FITLOG_LOG_JSON"`

	// ProgressDays is the default window for exercise progress.
	ProgressDays int `toml:"progress_days,omitempty" env:"FITLOG_PROGRESS_DAYS"`
	// RecordLimit is the default number of personal records listed.
	RecordLimit int `toml:"record_limit,omitempty" env:"FITLOG_RECORD_LIMIT"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the database file path.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), DBFileName)
}

// GetProgressDays returns the progress window, defaulting to storage.DefaultProgressDays.
func (c *Config) GetProgressDays() int {
	if c.ProgressDays <= 0 {
		return storage.DefaultProgressDays
	}
	return c.ProgressDays
}

// GetRecordLimit returns the record list size, defaulting to storage.DefaultRecordLimit.
func (c *Config) GetRecordLimit() int {
	if c.RecordLimit <= 0 {
		return storage.DefaultRecordLimit
	}
	return c.RecordLimit
}

// LoggerParams turns the log settings into logging setup parameters.
func (c *Config) LoggerParams() logging.LoggerSetupParams {
	level := c.LogLevel
	if level == "" {
		level = "warn"
	}
	return logging.LoggerSetupParams{
		LogFileName:   ExpandPath(c.LogFile),
		LogLevel:      level,
		LogFormatJSON: c.LogJSON,
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens and initializes the SQLite repository in the data directory.
func (c *Config) OpenStorage(ctx context.Context) (*storage.DB, error) {
	return storage.Open(ctx, c.DBPath())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitlog", "config.toml")
}

// Load reads config from disk and applies FITLOG_* environment overrides.
// A missing file is not an error.
func Load() (*Config, error) {
	return LoadFile(GetConfigPath())
}

// LoadFile reads config from path and applies environment overrides.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config env: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
