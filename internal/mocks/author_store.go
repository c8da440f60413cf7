package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/javohir-a/kutubxona/internal/store"
)

// MockAuthorStore implements store.AuthorStore for testing
type MockAuthorStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, author *domain.Author) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Author, error)
	ListFn    func(ctx context.Context, offset, limit int) ([]*domain.Author, error)
	CountFn   func(ctx context.Context) (int, error)
	UpdateFn  func(ctx context.Context, author *domain.Author) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Authors map[uuid.UUID]*domain.Author
}

// NewMockAuthorStore creates a new mock store with initialized defaults
func NewMockAuthorStore() *MockAuthorStore {
	return &MockAuthorStore{
		Authors: make(map[uuid.UUID]*domain.Author),
	}
}

// Create implements the store.AuthorStore interface
func (m *MockAuthorStore) Create(ctx context.Context, author *domain.Author) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, author)
	}
	m.Authors[author.ID] = author
	return nil
}

// GetByID implements the store.AuthorStore interface
func (m *MockAuthorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	author, exists := m.Authors[id]
	if !exists {
		return nil, store.ErrAuthorNotFound
	}
	return author, nil
}

// List implements the store.AuthorStore interface. The default implementation
// orders by (last_name, first_name) like the real store.
func (m *MockAuthorStore) List(ctx context.Context, offset, limit int) ([]*domain.Author, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}

	authors := make([]*domain.Author, 0, len(m.Authors))
	for _, author := range m.Authors {
		authors = append(authors, author)
	}
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].LastName != authors[j].LastName {
			return authors[i].LastName < authors[j].LastName
		}
		return authors[i].FirstName < authors[j].FirstName
	})

	if offset >= len(authors) {
		return []*domain.Author{}, nil
	}
	end := offset + limit
	if end > len(authors) {
		end = len(authors)
	}
	return authors[offset:end], nil
}

// Count implements the store.AuthorStore interface
func (m *MockAuthorStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return len(m.Authors), nil
}

// Update implements the store.AuthorStore interface
func (m *MockAuthorStore) Update(ctx context.Context, author *domain.Author) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, author)
	}
	if _, exists := m.Authors[author.ID]; !exists {
		return store.ErrAuthorNotFound
	}
	m.Authors[author.ID] = author
	return nil
}

// Delete implements the store.AuthorStore interface
func (m *MockAuthorStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, exists := m.Authors[id]; !exists {
		return store.ErrAuthorNotFound
	}
	delete(m.Authors, id)
	return nil
}
