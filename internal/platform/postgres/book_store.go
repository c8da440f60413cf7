package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/javohir-a/kutubxona/internal/platform/logger"
	"github.com/javohir-a/kutubxona/internal/store"
)

// bookOnePerAuthorIndex is the partial unique index on books(author_id)
// that closes the read-then-write race on the one-book-per-author rule.
const bookOnePerAuthorIndex = "books_one_per_author"

// bookSelect is the joined projection every book read uses: the book row
// plus its author and (optional) publisher expansions. Genres are attached
// with a second query.
const bookSelect = `
	SELECT b.id, b.title, b.author_id, b.publisher_id, b.published_date,
	       b.isbn, b.pages, b.description,
	       a.first_name, a.last_name, a.bio, a.birth_date, a.death_date,
	       p.name, p.address, p.website
	FROM books b
	JOIN authors a ON a.id = b.author_id
	LEFT JOIN publishers p ON p.id = b.publisher_id
`

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
//
// Unlike the other stores it holds a *sql.DB rather than a DBTX: writing a
// book touches both the books table and the book_genres join table, and the
// two statements must commit or roll back together.
type PostgresBookStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the
// BookStore interface. If logger is nil, the default logger is used.
func NewPostgresBookStore(db *sql.DB, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// Create implements store.BookStore.Create
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO books (id, title, author_id, publisher_id, published_date, isbn, pages, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err := tx.ExecContext(
			ctx,
			query,
			book.ID,
			book.Title,
			book.AuthorID,
			book.PublisherID,
			dateOrNil(book.PublishedDate),
			book.ISBN,
			book.Pages,
			book.Description,
		)
		if err != nil {
			return err
		}
		return replaceGenreLinks(ctx, tx, book.ID, book.GenreIDs)
	})
	if err != nil {
		return s.mapWriteError(log, "create", book, err)
	}

	log.Info("book created successfully",
		slog.String("book_id", book.ID.String()),
		slog.String("title", book.Title))
	return nil
}

// GetByID implements store.BookStore.GetByID
func (s *PostgresBookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	book, err := scanBook(s.db.QueryRowContext(ctx, bookSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("book not found", slog.String("book_id", id.String()))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book by ID",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return nil, err
	}

	if err := s.attachGenres(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// List implements store.BookStore.List
// Books are ordered by title for stable pagination.
func (s *PostgresBookStore) List(ctx context.Context, offset, limit int) ([]*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, bookSelect+` ORDER BY b.title LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		log.Error("failed to list books", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	books := []*domain.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Error("failed to scan book row", slog.String("error", err.Error()))
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning book rows", slog.String("error", err.Error()))
		return nil, err
	}

	for _, book := range books {
		if err := s.attachGenres(ctx, book); err != nil {
			return nil, err
		}
	}
	return books, nil
}

// Count implements store.BookStore.Count
func (s *PostgresBookStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to count books", slog.String("error", err.Error()))
		return 0, err
	}
	return count, nil
}

// Update implements store.BookStore.Update
func (s *PostgresBookStore) Update(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during update",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE books
			SET title = $1, author_id = $2, publisher_id = $3, published_date = $4,
			    isbn = $5, pages = $6, description = $7
			WHERE id = $8
		`
		result, err := tx.ExecContext(
			ctx,
			query,
			book.Title,
			book.AuthorID,
			book.PublisherID,
			dateOrNil(book.PublishedDate),
			book.ISBN,
			book.Pages,
			book.Description,
			book.ID,
		)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return store.ErrBookNotFound
		}
		return replaceGenreLinks(ctx, tx, book.ID, book.GenreIDs)
	})
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			log.Debug("book not found for update", slog.String("book_id", book.ID.String()))
			return err
		}
		return s.mapWriteError(log, "update", book, err)
	}

	log.Info("book updated successfully", slog.String("book_id", book.ID.String()))
	return nil
}

// Delete implements store.BookStore.Delete
// The schema cascades the delete to book_genres links and reviews.
func (s *PostgresBookStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete book",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("book not found for delete", slog.String("book_id", id.String()))
		return store.ErrBookNotFound
	}

	log.Info("book deleted successfully", slog.String("book_id", id.String()))
	return nil
}

// AuthorHasBook implements store.BookStore.AuthorHasBook
func (s *PostgresBookStore) AuthorHasBook(ctx context.Context, authorID, excludeBookID uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE author_id = $1 AND id <> $2)`,
		authorID, excludeBookID,
	).Scan(&exists)
	if err != nil {
		log.Error("failed to check author book ownership",
			slog.String("error", err.Error()),
			slog.String("author_id", authorID.String()))
		return false, err
	}
	return exists, nil
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error.
func (s *PostgresBookStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("failed to roll back transaction", slog.String("error", rbErr.Error()))
		}
		return err
	}
	return tx.Commit()
}

// mapWriteError translates constraint violations into store sentinels.
func (s *PostgresBookStore) mapWriteError(log *slog.Logger, op string, book *domain.Book, err error) error {
	switch {
	case isUniqueViolation(err, bookOnePerAuthorIndex):
		log.Debug("author already has a book",
			slog.String("author_id", book.AuthorID.String()))
		return store.ErrAuthorHasBook
	case isUniqueViolation(err, "books_isbn_key"):
		log.Debug("duplicate isbn", slog.String("book_id", book.ID.String()))
		return store.ErrISBNExists
	case isForeignKeyViolation(err):
		log.Warn("foreign key violation during book write",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return fmt.Errorf("%w: referenced row not found", store.ErrInvalidEntity)
	default:
		log.Error("failed to "+op+" book",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}
}

// replaceGenreLinks rewrites the book's genre set inside the caller's
// transaction.
func replaceGenreLinks(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, genreIDs []uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM book_genres WHERE book_id = $1`, bookID); err != nil {
		return err
	}
	for _, genreID := range genreIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO book_genres (book_id, genre_id) VALUES ($1, $2)`,
			bookID, genreID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// attachGenres loads the book's genre expansion and authoritative ID list.
func (s *PostgresBookStore) attachGenres(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name
		FROM book_genres bg
		JOIN genres g ON g.id = bg.genre_id
		WHERE bg.book_id = $1
		ORDER BY g.name
	`, book.ID)
	if err != nil {
		log.Error("failed to load book genres",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}
	defer closeRows(rows, log)

	book.GenreIDs = []uuid.UUID{}
	book.Genres = []domain.Genre{}
	for rows.Next() {
		var genre domain.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			log.Error("failed to scan genre row", slog.String("error", err.Error()))
			return err
		}
		book.GenreIDs = append(book.GenreIDs, genre.ID)
		book.Genres = append(book.Genres, genre)
	}
	return rows.Err()
}

func scanBook(row rowScanner) (*domain.Book, error) {
	var book domain.Book
	var publisherID *uuid.UUID
	var publishedDate sql.NullTime
	var author domain.Author
	var authorBirth, authorDeath sql.NullTime
	var pubName, pubAddress, pubWebsite sql.NullString

	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.AuthorID,
		&publisherID,
		&publishedDate,
		&book.ISBN,
		&book.Pages,
		&book.Description,
		&author.FirstName,
		&author.LastName,
		&author.Bio,
		&authorBirth,
		&authorDeath,
		&pubName,
		&pubAddress,
		&pubWebsite,
	)
	if err != nil {
		return nil, err
	}

	book.PublisherID = publisherID
	book.PublishedDate = dateFromNull(publishedDate)

	author.ID = book.AuthorID
	author.BirthDate = dateFromNull(authorBirth)
	author.DeathDate = dateFromNull(authorDeath)
	book.Author = &author

	if publisherID != nil {
		book.Publisher = &domain.Publisher{
			ID:      *publisherID,
			Name:    pubName.String,
			Address: nullStringPtr(pubAddress),
			Website: nullStringPtr(pubWebsite),
		}
	}

	return &book, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
