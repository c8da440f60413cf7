package config_test

import (
	"testing"

	"github.com/javohir-a/kutubxona/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Only the values without defaults need to come from the environment.
	t.Setenv("KUTUBXONA_DATABASE_URL", "postgres://localhost:5432/kutubxona_test")
	t.Setenv("KUTUBXONA_AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 30, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 7*24*60, cfg.Auth.RefreshTokenLifetimeMinutes)
	assert.Equal(t, "@gmail.com", cfg.Auth.AllowedEmailDomain)
	assert.Equal(t, 8, cfg.Auth.MinPasswordLength)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KUTUBXONA_DATABASE_URL", "postgres://localhost:5432/kutubxona_test")
	t.Setenv("KUTUBXONA_AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("KUTUBXONA_SERVER_PORT", "9090")
	t.Setenv("KUTUBXONA_SERVER_LOG_LEVEL", "debug")
	t.Setenv("KUTUBXONA_AUTH_TOKEN_LIFETIME_MINUTES", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 5, cfg.Auth.TokenLifetimeMinutes)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("KUTUBXONA_DATABASE_URL", "postgres://localhost:5432/kutubxona_test")
	t.Setenv("KUTUBXONA_AUTH_JWT_SECRET", "too-short")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("KUTUBXONA_DATABASE_URL", "postgres://localhost:5432/kutubxona_test")
	t.Setenv("KUTUBXONA_AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("KUTUBXONA_SERVER_LOG_LEVEL", "verbose")

	_, err := config.Load()
	require.Error(t, err)
}
