package store

import (
	"context"
	"time"
)

// TokenBlacklist records refresh tokens that have been rotated out.
// A blacklisted token can never be used to mint a new token pair.
type TokenBlacklist interface {
	// Revoke records the token's jti until its natural expiry, after which
	// the row is garbage. Revoking an already-revoked jti is a no-op.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error

	// IsRevoked reports whether the jti has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
