package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Author represents a catalog author. An author owns at most one book;
// the store enforces that rule on every book write.
type Author struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       *string   `json:"bio"`
	BirthDate *Date     `json:"birth_date"`
	DeathDate *Date     `json:"death_date"`
}

// NewAuthor creates an Author with a fresh ID.
// Returns a validation error if required fields are missing.
func NewAuthor(firstName, lastName string, bio *string, birthDate, deathDate *Date) (*Author, error) {
	author := &Author{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Bio:       bio,
		BirthDate: birthDate,
		DeathDate: deathDate,
	}
	if err := author.Validate(); err != nil {
		return nil, err
	}
	return author, nil
}

// Validate checks the Author invariants. Only last_name is required.
func (a *Author) Validate() error {
	if a.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrInvalidID)
	}
	if strings.TrimSpace(a.LastName) == "" {
		return NewValidationError("last_name", "this field is required", ErrValidation)
	}
	return nil
}

// FullName returns the author's display name.
func (a *Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
