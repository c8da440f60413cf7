package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/javohir-a/kutubxona/internal/platform/logger"
	"github.com/javohir-a/kutubxona/internal/store"
)

// PostgresTokenBlacklist implements the store.TokenBlacklist interface
// using a PostgreSQL database as the storage backend. Rows for expired
// tokens are cleared lazily on each Revoke call.
type PostgresTokenBlacklist struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTokenBlacklist creates a new PostgreSQL implementation of the
// TokenBlacklist interface. If logger is nil, the default logger is used.
func NewPostgresTokenBlacklist(db store.DBTX, logger *slog.Logger) *PostgresTokenBlacklist {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTokenBlacklist{
		db:     db,
		logger: logger.With(slog.String("component", "token_blacklist")),
	}
}

// Ensure PostgresTokenBlacklist implements store.TokenBlacklist interface
var _ store.TokenBlacklist = (*PostgresTokenBlacklist)(nil)

// Revoke implements store.TokenBlacklist.Revoke
func (s *PostgresTokenBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Expired rows can never match a live token; sweep them while we hold
	// a write anyway.
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < NOW()`,
	); err != nil {
		log.Warn("failed to sweep expired revoked tokens", slog.String("error", err.Error()))
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO revoked_tokens (jti, expires_at) VALUES ($1, $2)
		 ON CONFLICT (jti) DO NOTHING`,
		jti, expiresAt,
	)
	if err != nil {
		log.Error("failed to revoke token",
			slog.String("error", err.Error()),
			slog.String("jti", jti))
		return err
	}

	log.Debug("refresh token revoked", slog.String("jti", jti))
	return nil
}

// IsRevoked implements store.TokenBlacklist.IsRevoked
func (s *PostgresTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var revoked bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`, jti,
	).Scan(&revoked)
	if err != nil {
		log.Error("failed to check token revocation",
			slog.String("error", err.Error()),
			slog.String("jti", jti))
		return false, err
	}
	return revoked, nil
}
