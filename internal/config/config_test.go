package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "vcs_tracking.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
server:
  port: 9090
database:
  path: /tmp/test.db
log:
  level: debug
  env: production
auth:
  secret: test-secret
  token_ttl: 1h
session:
  ttl: 5m
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "production", cfg.Log.Env)
	assert.Equal(t, "test-secret", cfg.Auth.Secret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VCS_SERVER_PORT", "7070")
	t.Setenv("VCS_LOG_LEVEL", "warn")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}
