package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tempo/internal/config"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Level("DEBUG"))
	assert.Equal(t, slog.LevelWarn, Level("warn"))
	assert.Equal(t, slog.LevelError, Level(" error "))
	assert.Equal(t, slog.LevelInfo, Level("chatty"))
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer

	l := New(&buf, slog.LevelInfo)
	l.Debug("hidden")
	l.Info("task created", slog.String("id", "t1"))

	var entry map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "task created", entry["msg"])
	assert.Equal(t, "t1", entry["id"])
}

func TestSetupWritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "log", "tempo.log")

	closer := Setup(config.LogConfig{
		Level:      "info",
		Path:       path,
		MaxSize:    1,
		MaxBackups: 1,
	})

	slog.Info("hello")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
}
