package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/javohir-a/kutubxona/internal/store"
)

// MockReviewStore implements store.ReviewStore for testing
type MockReviewStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, review *domain.Review) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	ListFn    func(ctx context.Context) ([]*domain.Review, error)
	UpdateFn  func(ctx context.Context, review *domain.Review) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Reviews map[uuid.UUID]*domain.Review
}

// NewMockReviewStore creates a new mock store with initialized defaults
func NewMockReviewStore() *MockReviewStore {
	return &MockReviewStore{
		Reviews: make(map[uuid.UUID]*domain.Review),
	}
}

// Create implements the store.ReviewStore interface
func (m *MockReviewStore) Create(ctx context.Context, review *domain.Review) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, review)
	}
	m.Reviews[review.ID] = review
	return nil
}

// GetByID implements the store.ReviewStore interface
func (m *MockReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	review, exists := m.Reviews[id]
	if !exists {
		return nil, store.ErrReviewNotFound
	}
	return review, nil
}

// List implements the store.ReviewStore interface. The default implementation
// orders newest first like the real store.
func (m *MockReviewStore) List(ctx context.Context) ([]*domain.Review, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	reviews := make([]*domain.Review, 0, len(m.Reviews))
	for _, review := range m.Reviews {
		reviews = append(reviews, review)
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

// Update implements the store.ReviewStore interface
func (m *MockReviewStore) Update(ctx context.Context, review *domain.Review) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, review)
	}
	if _, exists := m.Reviews[review.ID]; !exists {
		return store.ErrReviewNotFound
	}
	m.Reviews[review.ID] = review
	return nil
}

// Delete implements the store.ReviewStore interface
func (m *MockReviewStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, exists := m.Reviews[id]; !exists {
		return store.ErrReviewNotFound
	}
	delete(m.Reviews, id)
	return nil
}
