package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
)

// BookStore defines the interface for book persistence.
// Returned books are hydrated with their author, publisher and genre
// expansions for serialization.
type BookStore interface {
	// Create saves a new book and its genre links.
	// Returns ErrInvalidEntity when the referenced author, publisher or a
	// genre does not exist, ErrISBNExists on a duplicate ISBN, and
	// ErrAuthorHasBook when the schema-level one-book-per-author index
	// rejects the row.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by ID.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	// List returns a page of books ordered by title.
	List(ctx context.Context, offset, limit int) ([]*domain.Book, error)

	// Count returns the total number of books.
	Count(ctx context.Context) (int, error)

	// Update saves changes to an existing book, replacing its genre links.
	// Returns ErrBookNotFound if the book does not exist; otherwise the same
	// constraint errors as Create.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book and, through the schema, its reviews.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AuthorHasBook reports whether the author already owns a book other
	// than excludeBookID. Pass uuid.Nil to consider all books.
	AuthorHasBook(ctx context.Context, authorID, excludeBookID uuid.UUID) (bool, error)
}
