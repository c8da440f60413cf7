package mocks

import (
	"context"
	"time"
)

// MockTokenBlacklist implements store.TokenBlacklist for testing
type MockTokenBlacklist struct {
	// Function fields for customizable behavior
	RevokeFn    func(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevokedFn func(ctx context.Context, jti string) (bool, error)

	// Data for default implementation
	Revoked     map[string]time.Time
	RevokeError error
}

// NewMockTokenBlacklist creates a new mock blacklist with initialized defaults
func NewMockTokenBlacklist() *MockTokenBlacklist {
	return &MockTokenBlacklist{
		Revoked: make(map[string]time.Time),
	}
}

// Revoke implements the store.TokenBlacklist interface
func (m *MockTokenBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if m.RevokeFn != nil {
		return m.RevokeFn(ctx, jti, expiresAt)
	}
	if m.RevokeError != nil {
		return m.RevokeError
	}
	m.Revoked[jti] = expiresAt
	return nil
}

// IsRevoked implements the store.TokenBlacklist interface
func (m *MockTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if m.IsRevokedFn != nil {
		return m.IsRevokedFn(ctx, jti)
	}
	_, revoked := m.Revoked[jti]
	return revoked, nil
}
