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

// PostgresGenreStore implements the store.GenreStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGenreStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGenreStore creates a new PostgreSQL implementation of the
// GenreStore interface. If logger is nil, the default logger is used.
func NewPostgresGenreStore(db store.DBTX, logger *slog.Logger) *PostgresGenreStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGenreStore{
		db:     db,
		logger: logger.With(slog.String("component", "genre_store")),
	}
}

// Ensure PostgresGenreStore implements store.GenreStore interface
var _ store.GenreStore = (*PostgresGenreStore)(nil)

// Create implements store.GenreStore.Create
func (s *PostgresGenreStore) Create(ctx context.Context, genre *domain.Genre) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := genre.Validate(); err != nil {
		log.Warn("genre validation failed during create",
			slog.String("error", err.Error()),
			slog.String("genre_id", genre.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO genres (id, name) VALUES ($1, $2)`,
		genre.ID, genre.Name,
	)
	if err != nil {
		if isUniqueViolation(err, "genres_name_key") {
			log.Debug("duplicate genre name", slog.String("name", genre.Name))
			return store.ErrGenreNameExists
		}
		log.Error("failed to create genre",
			slog.String("error", err.Error()),
			slog.String("genre_id", genre.ID.String()))
		return err
	}

	log.Info("genre created successfully",
		slog.String("genre_id", genre.ID.String()),
		slog.String("name", genre.Name))
	return nil
}

// GetByID implements store.GenreStore.GetByID
func (s *PostgresGenreStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Genre, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var genre domain.Genre
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM genres WHERE id = $1`, id,
	).Scan(&genre.ID, &genre.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("genre not found", slog.String("genre_id", id.String()))
			return nil, store.ErrGenreNotFound
		}
		log.Error("failed to get genre by ID",
			slog.String("error", err.Error()),
			slog.String("genre_id", id.String()))
		return nil, err
	}

	return &genre, nil
}

// List implements store.GenreStore.List
func (s *PostgresGenreStore) List(ctx context.Context) ([]*domain.Genre, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM genres`)
	if err != nil {
		log.Error("failed to list genres", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	genres := []*domain.Genre{}
	for rows.Next() {
		var genre domain.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			log.Error("failed to scan genre row", slog.String("error", err.Error()))
			return nil, err
		}
		genres = append(genres, &genre)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning genre rows", slog.String("error", err.Error()))
		return nil, err
	}

	return genres, nil
}

// Update implements store.GenreStore.Update
func (s *PostgresGenreStore) Update(ctx context.Context, genre *domain.Genre) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := genre.Validate(); err != nil {
		log.Warn("genre validation failed during update",
			slog.String("error", err.Error()),
			slog.String("genre_id", genre.ID.String()))
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE genres SET name = $1 WHERE id = $2`,
		genre.Name, genre.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "genres_name_key") {
			log.Debug("duplicate genre name on update", slog.String("name", genre.Name))
			return store.ErrGenreNameExists
		}
		log.Error("failed to update genre",
			slog.String("error", err.Error()),
			slog.String("genre_id", genre.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("genre_id", genre.ID.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("genre not found for update", slog.String("genre_id", genre.ID.String()))
		return store.ErrGenreNotFound
	}

	log.Info("genre updated successfully", slog.String("genre_id", genre.ID.String()))
	return nil
}

// Delete implements store.GenreStore.Delete
// Links in book_genres are removed by the schema's cascade rule.
func (s *PostgresGenreStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete genre",
			slog.String("error", err.Error()),
			slog.String("genre_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("genre_id", id.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("genre not found for delete", slog.String("genre_id", id.String()))
		return store.ErrGenreNotFound
	}

	log.Info("genre deleted successfully", slog.String("genre_id", id.String()))
	return nil
}
