package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/javohir-a/kutubxona/internal/store"
)

// MockBookStore implements store.BookStore for testing
type MockBookStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, book *domain.Book) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	ListFn          func(ctx context.Context, offset, limit int) ([]*domain.Book, error)
	CountFn         func(ctx context.Context) (int, error)
	UpdateFn        func(ctx context.Context, book *domain.Book) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	AuthorHasBookFn func(ctx context.Context, authorID, excludeBookID uuid.UUID) (bool, error)

	// Data for default implementation
	Books map[uuid.UUID]*domain.Book
}

// NewMockBookStore creates a new mock store with initialized defaults
func NewMockBookStore() *MockBookStore {
	return &MockBookStore{
		Books: make(map[uuid.UUID]*domain.Book),
	}
}

// Create implements the store.BookStore interface
func (m *MockBookStore) Create(ctx context.Context, book *domain.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, book)
	}
	for _, existing := range m.Books {
		if existing.AuthorID == book.AuthorID {
			return store.ErrAuthorHasBook
		}
	}
	m.Books[book.ID] = book
	return nil
}

// GetByID implements the store.BookStore interface
func (m *MockBookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	book, exists := m.Books[id]
	if !exists {
		return nil, store.ErrBookNotFound
	}
	return book, nil
}

// List implements the store.BookStore interface. The default implementation
// orders by title like the real store.
func (m *MockBookStore) List(ctx context.Context, offset, limit int) ([]*domain.Book, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}

	books := make([]*domain.Book, 0, len(m.Books))
	for _, book := range m.Books {
		books = append(books, book)
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].Title < books[j].Title
	})

	if offset >= len(books) {
		return []*domain.Book{}, nil
	}
	end := offset + limit
	if end > len(books) {
		end = len(books)
	}
	return books[offset:end], nil
}

// Count implements the store.BookStore interface
func (m *MockBookStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return len(m.Books), nil
}

// Update implements the store.BookStore interface
func (m *MockBookStore) Update(ctx context.Context, book *domain.Book) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, book)
	}
	if _, exists := m.Books[book.ID]; !exists {
		return store.ErrBookNotFound
	}
	m.Books[book.ID] = book
	return nil
}

// Delete implements the store.BookStore interface
func (m *MockBookStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, exists := m.Books[id]; !exists {
		return store.ErrBookNotFound
	}
	delete(m.Books, id)
	return nil
}

// AuthorHasBook implements the store.BookStore interface
func (m *MockBookStore) AuthorHasBook(ctx context.Context, authorID, excludeBookID uuid.UUID) (bool, error) {
	if m.AuthorHasBookFn != nil {
		return m.AuthorHasBookFn(ctx, authorID, excludeBookID)
	}
	for _, book := range m.Books {
		if book.AuthorID == authorID && book.ID != excludeBookID {
			return true, nil
		}
	}
	return false, nil
}
