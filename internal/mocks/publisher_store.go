package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/javohir-a/kutubxona/internal/store"
)

// MockPublisherStore implements store.PublisherStore for testing
type MockPublisherStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, publisher *domain.Publisher) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Publisher, error)
	ListFn    func(ctx context.Context) ([]*domain.Publisher, error)
	UpdateFn  func(ctx context.Context, publisher *domain.Publisher) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Publishers map[uuid.UUID]*domain.Publisher
}

// NewMockPublisherStore creates a new mock store with initialized defaults
func NewMockPublisherStore() *MockPublisherStore {
	return &MockPublisherStore{
		Publishers: make(map[uuid.UUID]*domain.Publisher),
	}
}

// Create implements the store.PublisherStore interface
func (m *MockPublisherStore) Create(ctx context.Context, publisher *domain.Publisher) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, publisher)
	}
	m.Publishers[publisher.ID] = publisher
	return nil
}

// GetByID implements the store.PublisherStore interface
func (m *MockPublisherStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Publisher, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	publisher, exists := m.Publishers[id]
	if !exists {
		return nil, store.ErrPublisherNotFound
	}
	return publisher, nil
}

// List implements the store.PublisherStore interface
func (m *MockPublisherStore) List(ctx context.Context) ([]*domain.Publisher, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	publishers := make([]*domain.Publisher, 0, len(m.Publishers))
	for _, publisher := range m.Publishers {
		publishers = append(publishers, publisher)
	}
	return publishers, nil
}

// Update implements the store.PublisherStore interface
func (m *MockPublisherStore) Update(ctx context.Context, publisher *domain.Publisher) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, publisher)
	}
	if _, exists := m.Publishers[publisher.ID]; !exists {
		return store.ErrPublisherNotFound
	}
	m.Publishers[publisher.ID] = publisher
	return nil
}

// Delete implements the store.PublisherStore interface
func (m *MockPublisherStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, exists := m.Publishers[id]; !exists {
		return store.ErrPublisherNotFound
	}
	delete(m.Publishers, id)
	return nil
}
