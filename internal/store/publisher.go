package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
)

// PublisherStore defines the interface for publisher persistence.
type PublisherStore interface {
	// Create saves a new publisher.
	Create(ctx context.Context, publisher *domain.Publisher) error

	// GetByID retrieves a publisher by ID.
	// Returns ErrPublisherNotFound if the publisher does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Publisher, error)

	// List returns all publishers in store order.
	List(ctx context.Context) ([]*domain.Publisher, error)

	// Update saves changes to an existing publisher.
	// Returns ErrPublisherNotFound if the publisher does not exist.
	Update(ctx context.Context, publisher *domain.Publisher) error

	// Delete removes a publisher. Books referencing it keep existing with
	// their publisher reference cleared by the schema's SET NULL rule.
	// Returns ErrPublisherNotFound if the publisher does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
