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
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadFrom_DefaultsAndFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  path: /tmp/tg.db
storage:
  file_caps:
    enterprise: 50
`)

	cfg, err := LoadFrom("", dir)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/tg.db", cfg.Database.GetDSN())
	assert.Equal(t, 6*time.Hour, cfg.Subscription.SweepInterval)
	assert.Equal(t, 5, cfg.Subscription.PendingWindowDays)
	assert.Equal(t, 10*time.Minute, cfg.Subscription.SweepLockTTL)
	assert.Equal(t, "file", cfg.Storage.UploadField)
	assert.Equal(t, 50, cfg.Storage.FileCaps["enterprise"])
	assert.Equal(t, 256, cfg.Entitlement.CacheSize)
	assert.Equal(t, 5*time.Minute, cfg.Entitlement.CacheTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Same(t, cfg, Get())
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("TENANTGATE_SERVER_PORT", "7070")
	t.Setenv("TENANTGATE_SUBSCRIPTION_PENDING_WINDOW_DAYS", "3")

	cfg, err := LoadFrom("production", dir)

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Subscription.PendingWindowDays)
	assert.Equal(t, "production", cfg.Server.Mode)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom("", t.TempDir())
	assert.Error(t, err)
}
