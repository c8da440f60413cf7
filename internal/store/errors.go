package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint (e.g. a genre with an existing name).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or references a row that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	ErrAuthorNotFound    = fmt.Errorf("%w: author", ErrNotFound)
	ErrBookNotFound      = fmt.Errorf("%w: book", ErrNotFound)
	ErrGenreNotFound     = fmt.Errorf("%w: genre", ErrNotFound)
	ErrPublisherNotFound = fmt.Errorf("%w: publisher", ErrNotFound)
	ErrReviewNotFound    = fmt.Errorf("%w: review", ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("%w: user", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates a user with the given email is already registered.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrUsernameExists indicates the username is already taken.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrGenreNameExists indicates a genre with the given name already exists.
	ErrGenreNameExists = fmt.Errorf("%w: genre name", ErrDuplicate)

	// ErrISBNExists indicates a book with the given ISBN already exists.
	ErrISBNExists = fmt.Errorf("%w: isbn", ErrDuplicate)

	// ErrAuthorHasBook indicates the target author already owns a different
	// book. The one-book-per-author rule is enforced both by a store query
	// before every write and by a partial unique index in the schema.
	ErrAuthorHasBook = fmt.Errorf("%w: author already has a book", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
