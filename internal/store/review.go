package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
)

// ReviewStore defines the interface for review persistence.
// Returned reviews are hydrated with the reviewed book's title.
type ReviewStore interface {
	// Create saves a new review.
	// Returns ErrInvalidEntity when the referenced book does not exist.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by ID.
	// Returns ErrReviewNotFound if the review does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)

	// List returns all reviews, newest first.
	List(ctx context.Context) ([]*domain.Review, error)

	// Update saves changes to an existing review. CreatedAt is never touched.
	// Returns ErrReviewNotFound if the review does not exist.
	Update(ctx context.Context, review *domain.Review) error

	// Delete removes a review.
	// Returns ErrReviewNotFound if the review does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
