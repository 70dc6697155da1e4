package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	uploads := filepath.Join(t.TempDir(), "uploads")
	dir := writeConfig(t, `
server:
  port: "9090"
  mode: debug
jwt:
  secret: dev-secret
  expire_hours: 2
storage:
  type: local
  local_path: `+uploads+`
simulation:
  job_search: 0s
  assessment: 250ms
upload:
  max_size_mb: 5
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiry())
	assert.Equal(t, time.Duration(0), cfg.Simulation.JobSearch)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulation.Assessment)
	assert.Equal(t, 1500*time.Millisecond, cfg.Simulation.ResumeUpload, "unset delays keep their defaults")
	assert.Equal(t, 3*time.Second, cfg.Simulation.ResumeAnalysis)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxBytes())
	assert.Equal(t, 30*time.Minute, cfg.Market.CacheTTL())
	assert.Equal(t, 24*time.Hour, cfg.Wizard.TTL())
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.File)
	assert.DirExists(t, uploads)
}

func TestLoadConfig_Environment(t *testing.T) {
	dir := writeConfig(t, "storage:\n  type: minio\n")
	t.Setenv("SKILLPATH_JWT_SECRET", "from-prefixed-env")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("SKILLPATH_SIMULATION_RESUME_UPLOAD", "10ms")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("SKILLPATH_ANTHROPIC_API_KEY", "")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.AI.OpenAI.APIKey)
	assert.Empty(t, cfg.AI.Claude.APIKey)
	assert.Equal(t, "gpt-3.5-turbo", cfg.AI.OpenAI.Model)
	assert.Len(t, cfg.AI.Claude.Models, 3)
	assert.Equal(t, time.Minute, cfg.AI.Timeout())

	assert.Equal(t, "from-prefixed-env", cfg.JWT.Secret)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, 10*time.Millisecond, cfg.Simulation.ResumeUpload)
}

func TestLoadConfig_ReleaseRequiresLongSecret(t *testing.T) {
	dir := writeConfig(t, "server:\n  mode: release\njwt:\n  secret: short\nstorage:\n  type: minio\n")

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "at least 32 characters")

	t.Setenv("SKILLPATH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Server.Mode)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SKILLPATH_STORAGE_TYPE", "oss")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.File)
	assert.Equal(t, "oss", cfg.Storage.Type)
	assert.Equal(t, 4*time.Second, cfg.Simulation.Assessment)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Upload: UploadConfig{MaxSizeMB: 0}}
	assert.ErrorContains(t, cfg.Validate(), "max_size_mb")

	cfg.Upload.MaxSizeMB = 1
	cfg.Simulation.Assessment = -time.Second
	assert.ErrorContains(t, cfg.Validate(), "simulation.assessment")
}
