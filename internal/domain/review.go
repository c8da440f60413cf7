package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a reader review of a book. CreatedAt is assigned by the server
// at creation time and never changes afterwards. Deleting the book deletes
// its reviews.
type Review struct {
	ID           uuid.UUID `json:"id"`
	BookID       uuid.UUID `json:"book"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`

	// BookTitle is a read-side expansion hydrated by the store.
	BookTitle string `json:"book_title,omitempty"`
}

// NewReview creates a Review with a fresh ID and a server-assigned timestamp.
func NewReview(bookID uuid.UUID, reviewerName string, rating int, comment *string) (*Review, error) {
	review := &Review{
		ID:           uuid.New(),
		BookID:       bookID,
		ReviewerName: reviewerName,
		Rating:       rating,
		Comment:      comment,
		CreatedAt:    time.Now().UTC(),
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}
	return review, nil
}

// Validate checks the Review invariants, notably the 1..5 rating range.
func (r *Review) Validate() error {
	if r.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrInvalidID)
	}
	if r.BookID == uuid.Nil {
		return NewValidationError("book", "this field is required", ErrValidation)
	}
	if strings.TrimSpace(r.ReviewerName) == "" {
		return NewValidationError("reviewer_name", "this field is required", ErrValidation)
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return NewValidationError("rating", "must be between 1 and 5", ErrValidation)
	}
	return nil
}
