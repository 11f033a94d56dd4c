// ABOUTME: Tests for fitlog configuration management.
// ABOUTME: Covers load, save, env overrides, defaults and path expansion.
package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/fitlog/internal/storage"
)

func TestGetDataDirDefault(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	cfg := &Config{}
	assert.Equal(t, "/tmp/xdg-data/fitlog", cfg.GetDataDir())
	assert.Equal(t, "/tmp/xdg-data/fitlog/fitlog.db", cfg.DBPath())
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/fitlog-test"}
	assert.Equal(t, "/tmp/fitlog-test", cfg.GetDataDir())
	assert.Equal(t, filepath.Join("/tmp/fitlog-test", DBFileName), cfg.DBPath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/tmp/foo", ExpandPath("/tmp/foo"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "data", "fitlog"), ExpandPath("~/data/fitlog"))
	assert.Equal(t, "relative/path", ExpandPath("relative/path"))
}

func TestQueryDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, storage.DefaultProgressDays, cfg.GetProgressDays())
	assert.Equal(t, storage.DefaultRecordLimit, cfg.GetRecordLimit())

	cfg = &Config{ProgressDays: 30, RecordLimit: 3}
	assert.Equal(t, 30, cfg.GetProgressDays())
	assert.Equal(t, 3, cfg.GetRecordLimit())
}

func TestLoggerParams(t *testing.T) {
	params := (&Config{}).LoggerParams()
	assert.Equal(t, "warn", params.LogLevel)
	assert.Empty(t, params.LogFileName)

	params = (&Config{LogLevel: "debug", LogFile: "/tmp/fitlog.log", LogJSON: true}).LoggerParams()
	assert.Equal(t, "debug", params.LogLevel)
	assert.Equal(t, "/tmp/fitlog.log", params.LogFileName)
	assert.True(t, params.LogFormatJSON)
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	assert.Equal(t, "/tmp/xdg-config/fitlog/config.toml", GetConfigPath())
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	want := &Config{DataDir: "~/fitness", LogLevel: "info", ProgressDays: 60, RecordLimit: 5}
	require.NoError(t, want.Save())

	info, err := os.Stat(GetConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, (&Config{DataDir: "/from/file", RecordLimit: 5}).Save())

	t.Setenv("FITLOG_DATA_DIR", "/from/env")
	t.Setenv("FITLOG_LOG_JSON", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.DataDir)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, 5, cfg.RecordLimit)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir = [unterminated"), 0600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("FITLOG_PROGRESS_DAYS", "many")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestOpenStorage(t *testing.T) {
	cfg := &Config{DataDir: filepath.Join(t.TempDir(), "nested")}

	store, err := cfg.OpenStorage(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.True(t, store.Ready())
	assert.Equal(t, cfg.DBPath(), store.Path())
}
