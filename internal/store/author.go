package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
)

// AuthorStore defines the interface for author persistence.
type AuthorStore interface {
	// Create saves a new author.
	// Returns validation errors from the domain Author if data is invalid.
	Create(ctx context.Context, author *domain.Author) error

	// GetByID retrieves an author by ID.
	// Returns ErrAuthorNotFound if the author does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error)

	// List returns a page of authors ordered by (last_name, first_name).
	List(ctx context.Context, offset, limit int) ([]*domain.Author, error)

	// Count returns the total number of authors.
	Count(ctx context.Context) (int, error)

	// Update saves changes to an existing author.
	// Returns ErrAuthorNotFound if the author does not exist.
	Update(ctx context.Context, author *domain.Author) error

	// Delete removes an author. Books by the author, and their reviews, are
	// removed transitively by the schema's cascade rules.
	// Returns ErrAuthorNotFound if the author does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
