package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultIsNop(t *testing.T) {
	assert.NotNil(t, Log)
	assert.False(t, Log.Core().Enabled(zap.ErrorLevel))
}

func TestNew_LevelsAndFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")

	debug := New("debug", file)
	assert.True(t, debug.Core().Enabled(zap.DebugLevel))

	release := New("release", file)
	assert.False(t, release.Core().Enabled(zap.DebugLevel))
	assert.True(t, release.Core().Enabled(zap.InfoLevel))

	release.Info("resume scanned", zap.String("scan_id", "abc"))
	_ = release.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(data, &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "resume scanned", line["msg"])
	assert.Equal(t, "abc", line["scan_id"])
}
