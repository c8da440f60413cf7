package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/config"
	"github.com/javohir-a/kutubxona/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes:        30,
		RefreshTokenLifetimeMinutes: 7 * 24 * 60,
		AllowedEmailDomain:          "@gmail.com",
		MinPasswordLength:           8,
	}
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.JWTSecret = "short"
	_, err := auth.NewJWTService(cfg)
	require.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := auth.NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, 30*time.Minute, svc.AccessTokenLifetime())
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := auth.NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenTypeIsEnforced(t *testing.T) {
	t.Parallel()

	svc, err := auth.NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()

	access, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)
}

func TestExpiredTokensAreRejected(t *testing.T) {
	t.Parallel()

	now := time.Now()
	issuedAt := now.Add(-48 * time.Hour)

	// Issue tokens two days in the past, validate with the real clock.
	issuer, err := auth.NewJWTServiceWithTimeFunc(testAuthConfig(), func() time.Time { return issuedAt })
	require.NoError(t, err)
	validator, err := auth.NewJWTServiceWithTimeFunc(testAuthConfig(), func() time.Time { return now })
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()

	access, err := issuer.GenerateToken(ctx, userID)
	require.NoError(t, err)
	_, err = validator.ValidateToken(ctx, access)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)

	// The refresh token lives for 7 days, so it is still good after two.
	refresh, err := issuer.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)
	_, err = validator.ValidateRefreshToken(ctx, refresh)
	assert.NoError(t, err)

	// Ten days out it has expired too.
	lateValidator, err := auth.NewJWTServiceWithTimeFunc(
		testAuthConfig(),
		func() time.Time { return issuedAt.Add(10 * 24 * time.Hour) },
	)
	require.NoError(t, err)
	_, err = lateValidator.ValidateRefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, auth.ErrExpiredRefreshToken)
}

func TestTamperedTokenIsRejected(t *testing.T) {
	t.Parallel()

	svc, err := auth.NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()
	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.ValidateToken(ctx, tampered)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDifferentSecretIsRejected(t *testing.T) {
	t.Parallel()

	svc, err := auth.NewJWTService(testAuthConfig())
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "fedcba9876543210fedcba9876543210"
	other, err := auth.NewJWTService(otherCfg)
	require.NoError(t, err)

	ctx := context.Background()
	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = other.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
