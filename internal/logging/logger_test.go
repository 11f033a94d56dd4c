// ABOUTME: Tests for logger setup and level parsing.
// ABOUTME: Verifies file output and the JSON formatter.
package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"trace":   logrus.TraceLevel,
		"DEBUG":   logrus.DebugLevel,
		" info ":  logrus.InfoLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"fatal":   logrus.FatalLevel,
		"":        logrus.WarnLevel,
		"loud":    logrus.WarnLevel,
	}
	for name, want := range tests {
		assert.Equal(t, want, GetLevel(name), name)
	}
}

func TestSetupWritesJSONToFile(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	})

	base := filepath.Join(t.TempDir(), "fitlog")
	closer := Setup(LoggerSetupParams{
		LogFileName:   base,
		LogLevel:      "info",
		LogFormatJSON: true,
	})

	logrus.WithField("workout_id", 7).Info("saved workout")
	logrus.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(base + ".log")
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry), "exactly one JSON line is written")
	assert.Equal(t, "saved workout", entry["msg"])
	assert.Equal(t, float64(7), entry["workout_id"])
}

func TestSetupWithoutFile(t *testing.T) {
	t.Cleanup(func() { logrus.SetLevel(logrus.InfoLevel) })

	closer := Setup(LoggerSetupParams{LogLevel: "error"})
	assert.IsType(t, nopCloser{}, closer)
	assert.NoError(t, closer.Close())
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
}
