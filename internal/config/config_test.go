package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "APP_ENV", "ENV", "PORT", "DATABASE_URL", "JWT_SECRET",
	"SESSION_TTL", "COOKIE_SECURE", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "parvarish.db", cfg.DatabaseURL)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
database_url: "postgres://file"
session_ttl: "2h"
cors_allowed_origins:
  - https://app.example.com
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("COOKIE_SECURE", "yes")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSAllowedOrigins)

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SESSION_TTL", "forever")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("negative ttl", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SESSION_TTL", "-1h")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production needs real secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("COOKIE_SECURE", "true")
		_, err := Load()
		assert.Error(t, err)

		t.Setenv("JWT_SECRET", "a-real-secret")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("production needs secure cookie", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "release")
		t.Setenv("JWT_SECRET", "a-real-secret")
		_, err := Load()
		assert.Error(t, err)
	})
}
