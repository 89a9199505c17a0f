package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, "storage:\n  local_path: "+filepath.Join(t.TempDir(), "uploads")+"\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 90, cfg.App.HeatmapDays)
	assert.Equal(t, 20, cfg.App.ChatHistory)
	assert.Equal(t, 5, cfg.App.WriteLockSecs)
	assert.Equal(t, StorageLocal, cfg.Storage.Type)
	assert.Equal(t, 600, cfg.RateLimit.MaxRequests)
	assert.False(t, cfg.AI.Enabled())
	assert.DirExists(t, cfg.Storage.LocalPath)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9000"
app:
  timezone: "UTC"
  heatmap_days: 30
ai:
  base_url: "https://ai.example.com/v1"
  model: "small"
cors:
  allowed_origins: ["https://app.example.com"]
storage:
  type: "minio"
`)
	t.Setenv("AI_API_KEY", "secret")
	t.Setenv("APP_TIMEZONE", "Asia/Shanghai")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 30, cfg.App.HeatmapDays)
	assert.Equal(t, "Asia/Shanghai", cfg.App.Timezone)
	assert.True(t, cfg.AI.Enabled())
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "Asia/Shanghai", cfg.App.Location().String())
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("invalid timezone", func(t *testing.T) {
		dir := writeConfig(t, "app:\n  timezone: Mars/Olympus\nstorage:\n  type: minio\n")
		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})

	t.Run("short secret in release", func(t *testing.T) {
		dir := writeConfig(t, "server:\n  mode: release\nauth:\n  jwt_secret: short\nstorage:\n  type: minio\n")
		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})
}

func TestLocationFallback(t *testing.T) {
	assert.Equal(t, "Local", AppConfig{}.Location().String())
	assert.Equal(t, "UTC", AppConfig{Timezone: "UTC"}.Location().String())
}
