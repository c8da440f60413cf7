package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
)

// GenreStore defines the interface for genre persistence.
type GenreStore interface {
	// Create saves a new genre.
	// Returns ErrGenreNameExists if the name is already taken.
	Create(ctx context.Context, genre *domain.Genre) error

	// GetByID retrieves a genre by ID.
	// Returns ErrGenreNotFound if the genre does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Genre, error)

	// List returns all genres in store order.
	List(ctx context.Context) ([]*domain.Genre, error)

	// Update saves changes to an existing genre.
	// Returns ErrGenreNotFound if the genre does not exist and
	// ErrGenreNameExists on a name collision.
	Update(ctx context.Context, genre *domain.Genre) error

	// Delete removes a genre and its book links.
	// Returns ErrGenreNotFound if the genre does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
