package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Genre is a book category. Genre names are globally unique.
type Genre struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewGenre creates a Genre with a fresh ID.
func NewGenre(name string) (*Genre, error) {
	genre := &Genre{
		ID:   uuid.New(),
		Name: name,
	}
	if err := genre.Validate(); err != nil {
		return nil, err
	}
	return genre, nil
}

// Validate checks the Genre invariants.
func (g *Genre) Validate() error {
	if g.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrInvalidID)
	}
	if strings.TrimSpace(g.Name) == "" {
		return NewValidationError("name", "this field is required", ErrValidation)
	}
	return nil
}
