package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Publisher represents a publishing house. Deleting a publisher clears the
// reference on its books rather than deleting them.
type Publisher struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address *string   `json:"address"`
	Website *string   `json:"website"`
}

// NewPublisher creates a Publisher with a fresh ID.
func NewPublisher(name string, address, website *string) (*Publisher, error) {
	publisher := &Publisher{
		ID:      uuid.New(),
		Name:    name,
		Address: address,
		Website: website,
	}
	if err := publisher.Validate(); err != nil {
		return nil, err
	}
	return publisher, nil
}

// Validate checks the Publisher invariants.
func (p *Publisher) Validate() error {
	if p.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrInvalidID)
	}
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", "this field is required", ErrValidation)
	}
	return nil
}
