package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/mens/internal/infrastructure/config"
)

func testLogConfig(t *testing.T, level string) config.LogConfig {
	t.Helper()
	return config.LogConfig{
		Dir:        filepath.Join(t.TempDir(), "logs"),
		Level:      level,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	cfg := testLogConfig(t, "debug")

	logger, closer, err := New(cfg, nil)
	require.NoError(t, err)

	logger.Debug("dbg", "a", 1)
	logger.Info("synced", "pushed", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(cfg.Dir, FileName))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &record))
	assert.Equal(t, "synced", record["msg"])
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, float64(3), record["pushed"])
}

func TestNew_ConsoleOnlyGetsWarnings(t *testing.T) {
	cfg := testLogConfig(t, "info")
	var console bytes.Buffer

	logger, closer, err := New(cfg, &console)
	require.NoError(t, err)
	defer closer.Close()

	logger.With("component", "sync").Info("quiet")
	logger.With("component", "sync").Warn("loud", "id", "n1")

	out := console.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "component=sync")
	assert.Contains(t, out, "id=n1")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(testLogConfig(t, "chatty"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing log level")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "empty defaults to info", input: "", expected: slog.LevelInfo},
		{name: "lowercase debug", input: "debug", expected: slog.LevelDebug},
		{name: "mixed case warn", input: "Warn", expected: slog.LevelWarn},
		{name: "error", input: "error", expected: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}
