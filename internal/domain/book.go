package domain

import (
	"strings"

	"github.com/google/uuid"
)

// isbnMaxLength mirrors the 13-character ISBN column width.
const isbnMaxLength = 13

// Book is the central catalog entity. Every book belongs to exactly one
// author (cascade delete), optionally to one publisher (set-null on delete),
// and to any number of genres.
//
// Author, Publisher and Genres are read-side expansions hydrated by the
// store; only AuthorID, PublisherID and GenreIDs are authoritative on writes.
type Book struct {
	ID            uuid.UUID   `json:"id"`
	Title         string      `json:"title"`
	AuthorID      uuid.UUID   `json:"author"`
	PublisherID   *uuid.UUID  `json:"publisher"`
	GenreIDs      []uuid.UUID `json:"genres"`
	PublishedDate *Date       `json:"published_date"`
	ISBN          *string     `json:"isbn"`
	Pages         *int        `json:"pages"`
	Description   *string     `json:"description"`

	Author    *Author    `json:"author_detail,omitempty"`
	Publisher *Publisher `json:"publisher_detail,omitempty"`
	Genres    []Genre    `json:"genres_list,omitempty"`
}

// NewBook creates a Book with a fresh ID.
func NewBook(
	title string,
	authorID uuid.UUID,
	publisherID *uuid.UUID,
	genreIDs []uuid.UUID,
	publishedDate *Date,
	isbn *string,
	pages *int,
	description *string,
) (*Book, error) {
	book := &Book{
		ID:            uuid.New(),
		Title:         title,
		AuthorID:      authorID,
		PublisherID:   publisherID,
		GenreIDs:      genreIDs,
		PublishedDate: publishedDate,
		ISBN:          isbn,
		Pages:         pages,
		Description:   description,
	}
	if err := book.Validate(); err != nil {
		return nil, err
	}
	return book, nil
}

// Validate checks the Book invariants.
func (b *Book) Validate() error {
	if b.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrInvalidID)
	}
	if strings.TrimSpace(b.Title) == "" {
		return NewValidationError("title", "this field is required", ErrValidation)
	}
	if b.AuthorID == uuid.Nil {
		return NewValidationError("author", "this field is required", ErrValidation)
	}
	if b.ISBN != nil && len(*b.ISBN) > isbnMaxLength {
		return NewValidationError("isbn", "must be at most 13 characters", ErrValidation)
	}
	if b.Pages != nil && *b.Pages <= 0 {
		return NewValidationError("pages", "must be a positive number", ErrValidation)
	}
	return nil
}
