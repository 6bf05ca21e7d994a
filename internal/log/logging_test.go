package log

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetupLoggerTo_SplitsConsole(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	logger, closers, err := SetupLoggerTo("debug", "", &stdout, &stderr)
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Log(context.Background(), LevelTrace, "hidden")
	logger.Debug("parsed", "file", "hero.ts")
	logger.Error("failed")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "msg=parsed file=hero.ts")
	assert.NotContains(t, stdout.String(), "failed")
	assert.Contains(t, stderr.String(), "level=ERROR msg=failed")
}

func TestSetupLoggerTo_File(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	path := filepath.Join(t.TempDir(), "gen.log")

	logger, closers, err := SetupLoggerTo("trace", path, &stdout, &stderr)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Log(context.Background(), LevelTrace, "token")
	require.NoError(t, closers[0].Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=TRACE msg=token")
	assert.Contains(t, stderr.String(), "msg=token")
	assert.Empty(t, stdout.String())
}
