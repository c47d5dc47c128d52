package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "netexplorer.log")
	logger, err := New("warn", file)
	require.NoError(t, err)

	logger.Info("not written")
	logger.Warn("skipping directory", zap.String("dir", "/data/b"))
	_ = logger.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "skipping directory", entry["msg"])
	assert.Equal(t, "/data/b", entry["dir"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNew_Console(t *testing.T) {
	logger, err := New("debug", "")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", "")
	assert.ErrorContains(t, err, `invalid log level "loud"`)
}
