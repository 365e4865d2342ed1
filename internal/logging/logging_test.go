package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "prepcoach.log")

	logger, closer, err := Open(path, slog.LevelInfo)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("visible", slog.String("op", "analyze-job"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "visible", rec["msg"])
	assert.Equal(t, "analyze-job", rec["op"])
	assert.Equal(t, "prepcoach", rec["app"])
}

func TestOpen_EmptyPathDiscards(t *testing.T) {
	logger, closer, err := Open("", slog.LevelDebug)
	require.NoError(t, err)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
	assert.NoError(t, closer.Close())
}

func TestOpen_UnwritableFallsBack(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	logger, closer, err := Open(filepath.Join(blocker, "sub", "x.log"), slog.LevelInfo)
	assert.Error(t, err)
	require.NotNil(t, logger)
	logger.Info("dropped")
	assert.NoError(t, closer.Close())
}
