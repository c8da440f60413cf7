package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered API user.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only populated during registration
	HashedPassword string    `json:"-"` // Never exposed in JSON
	IsActive       bool      `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User with the given credentials. The caller is
// responsible for hashing the password before the user is stored.
func NewUser(username, email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  password,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the User invariants.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrInvalidID)
	}
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("username", "this field is required", ErrValidation)
	}
	if strings.TrimSpace(u.Email) == "" {
		return NewValidationError("email", "this field is required", ErrValidation)
	}
	if u.Password == "" && u.HashedPassword == "" {
		return NewValidationError("password", "this field is required", ErrValidation)
	}
	return nil
}
