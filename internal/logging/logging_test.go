package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetup_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "carcass.log")
	logger, cleanup, err := Setup(path, slog.LevelInfo)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.With("component", "store").Info("piece added", "id", "abc12345")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"piece added"`)
	assert.Contains(t, lines[0], `"component":"store"`)
}

func TestSetup_StderrOnly(t *testing.T) {
	logger, cleanup, err := Setup("", slog.LevelWarn)
	require.NoError(t, err)
	defer cleanup()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
}
