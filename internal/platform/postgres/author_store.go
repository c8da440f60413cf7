package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/javohir-a/kutubxona/internal/platform/logger"
	"github.com/javohir-a/kutubxona/internal/store"
)

// PostgresAuthorStore implements the store.AuthorStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAuthorStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAuthorStore creates a new PostgreSQL implementation of the
// AuthorStore interface. If logger is nil, the default logger is used.
func NewPostgresAuthorStore(db store.DBTX, logger *slog.Logger) *PostgresAuthorStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAuthorStore{
		db:     db,
		logger: logger.With(slog.String("component", "author_store")),
	}
}

// Ensure PostgresAuthorStore implements store.AuthorStore interface
var _ store.AuthorStore = (*PostgresAuthorStore)(nil)

// Create implements store.AuthorStore.Create
func (s *PostgresAuthorStore) Create(ctx context.Context, author *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := author.Validate(); err != nil {
		log.Warn("author validation failed during create",
			slog.String("error", err.Error()),
			slog.String("author_id", author.ID.String()))
		return err
	}

	query := `
		INSERT INTO authors (id, first_name, last_name, bio, birth_date, death_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		author.ID,
		author.FirstName,
		author.LastName,
		author.Bio,
		dateOrNil(author.BirthDate),
		dateOrNil(author.DeathDate),
	)
	if err != nil {
		log.Error("failed to create author",
			slog.String("error", err.Error()),
			slog.String("author_id", author.ID.String()))
		return err
	}

	log.Info("author created successfully",
		slog.String("author_id", author.ID.String()),
		slog.String("last_name", author.LastName))
	return nil
}

// GetByID implements store.AuthorStore.GetByID
func (s *PostgresAuthorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, first_name, last_name, bio, birth_date, death_date
		FROM authors
		WHERE id = $1
	`

	author, err := scanAuthor(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("author not found", slog.String("author_id", id.String()))
			return nil, store.ErrAuthorNotFound
		}
		log.Error("failed to get author by ID",
			slog.String("error", err.Error()),
			slog.String("author_id", id.String()))
		return nil, err
	}

	return author, nil
}

// List implements store.AuthorStore.List
// Authors are ordered by (last_name, first_name) for stable pagination.
func (s *PostgresAuthorStore) List(ctx context.Context, offset, limit int) ([]*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, first_name, last_name, bio, birth_date, death_date
		FROM authors
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list authors", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	authors := []*domain.Author{}
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			log.Error("failed to scan author row", slog.String("error", err.Error()))
			return nil, err
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning author rows", slog.String("error", err.Error()))
		return nil, err
	}

	return authors, nil
}

// Count implements store.AuthorStore.Count
func (s *PostgresAuthorStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM authors`).Scan(&count)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to count authors", slog.String("error", err.Error()))
		return 0, err
	}
	return count, nil
}

// Update implements store.AuthorStore.Update
func (s *PostgresAuthorStore) Update(ctx context.Context, author *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := author.Validate(); err != nil {
		log.Warn("author validation failed during update",
			slog.String("error", err.Error()),
			slog.String("author_id", author.ID.String()))
		return err
	}

	query := `
		UPDATE authors
		SET first_name = $1, last_name = $2, bio = $3, birth_date = $4, death_date = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		author.FirstName,
		author.LastName,
		author.Bio,
		dateOrNil(author.BirthDate),
		dateOrNil(author.DeathDate),
		author.ID,
	)
	if err != nil {
		log.Error("failed to update author",
			slog.String("error", err.Error()),
			slog.String("author_id", author.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("author_id", author.ID.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("author not found for update", slog.String("author_id", author.ID.String()))
		return store.ErrAuthorNotFound
	}

	log.Info("author updated successfully", slog.String("author_id", author.ID.String()))
	return nil
}

// Delete implements store.AuthorStore.Delete
// The schema cascades the delete to the author's books and their reviews.
func (s *PostgresAuthorStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete author",
			slog.String("error", err.Error()),
			slog.String("author_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("author_id", id.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("author not found for delete", slog.String("author_id", id.String()))
		return store.ErrAuthorNotFound
	}

	log.Info("author deleted successfully", slog.String("author_id", id.String()))
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuthor(row rowScanner) (*domain.Author, error) {
	var author domain.Author
	var birthDate, deathDate sql.NullTime

	err := row.Scan(
		&author.ID,
		&author.FirstName,
		&author.LastName,
		&author.Bio,
		&birthDate,
		&deathDate,
	)
	if err != nil {
		return nil, err
	}

	author.BirthDate = dateFromNull(birthDate)
	author.DeathDate = dateFromNull(deathDate)
	return &author, nil
}

// dateOrNil unwraps an optional Date for use as a nullable query argument.
func dateOrNil(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func dateFromNull(nt sql.NullTime) *domain.Date {
	if !nt.Valid {
		return nil
	}
	return &domain.Date{Time: nt.Time}
}

func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
