package auth

import (
	"time"

	"github.com/javohir-a/kutubxona/internal/config"
)

// NewJWTServiceWithTimeFunc creates a JWT service with an injectable clock.
// Intended for tests that exercise expiry without sleeping.
func NewJWTServiceWithTimeFunc(cfg config.AuthConfig, timeFunc func() time.Time) (JWTService, error) {
	svc, err := NewJWTService(cfg)
	if err != nil {
		return nil, err
	}
	hmacSvc := svc.(*hmacJWTService)
	hmacSvc.timeFunc = timeFunc
	return hmacSvc, nil
}
