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

// PostgresPublisherStore implements the store.PublisherStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPublisherStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPublisherStore creates a new PostgreSQL implementation of the
// PublisherStore interface. If logger is nil, the default logger is used.
func NewPostgresPublisherStore(db store.DBTX, logger *slog.Logger) *PostgresPublisherStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPublisherStore{
		db:     db,
		logger: logger.With(slog.String("component", "publisher_store")),
	}
}

// Ensure PostgresPublisherStore implements store.PublisherStore interface
var _ store.PublisherStore = (*PostgresPublisherStore)(nil)

// Create implements store.PublisherStore.Create
func (s *PostgresPublisherStore) Create(ctx context.Context, publisher *domain.Publisher) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := publisher.Validate(); err != nil {
		log.Warn("publisher validation failed during create",
			slog.String("error", err.Error()),
			slog.String("publisher_id", publisher.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO publishers (id, name, address, website) VALUES ($1, $2, $3, $4)`,
		publisher.ID, publisher.Name, publisher.Address, publisher.Website,
	)
	if err != nil {
		log.Error("failed to create publisher",
			slog.String("error", err.Error()),
			slog.String("publisher_id", publisher.ID.String()))
		return err
	}

	log.Info("publisher created successfully",
		slog.String("publisher_id", publisher.ID.String()),
		slog.String("name", publisher.Name))
	return nil
}

// GetByID implements store.PublisherStore.GetByID
func (s *PostgresPublisherStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Publisher, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var publisher domain.Publisher
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, address, website FROM publishers WHERE id = $1`, id,
	).Scan(&publisher.ID, &publisher.Name, &publisher.Address, &publisher.Website)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("publisher not found", slog.String("publisher_id", id.String()))
			return nil, store.ErrPublisherNotFound
		}
		log.Error("failed to get publisher by ID",
			slog.String("error", err.Error()),
			slog.String("publisher_id", id.String()))
		return nil, err
	}

	return &publisher, nil
}

// List implements store.PublisherStore.List
func (s *PostgresPublisherStore) List(ctx context.Context) ([]*domain.Publisher, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, address, website FROM publishers`)
	if err != nil {
		log.Error("failed to list publishers", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	publishers := []*domain.Publisher{}
	for rows.Next() {
		var publisher domain.Publisher
		if err := rows.Scan(&publisher.ID, &publisher.Name, &publisher.Address, &publisher.Website); err != nil {
			log.Error("failed to scan publisher row", slog.String("error", err.Error()))
			return nil, err
		}
		publishers = append(publishers, &publisher)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning publisher rows", slog.String("error", err.Error()))
		return nil, err
	}

	return publishers, nil
}

// Update implements store.PublisherStore.Update
func (s *PostgresPublisherStore) Update(ctx context.Context, publisher *domain.Publisher) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := publisher.Validate(); err != nil {
		log.Warn("publisher validation failed during update",
			slog.String("error", err.Error()),
			slog.String("publisher_id", publisher.ID.String()))
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE publishers SET name = $1, address = $2, website = $3 WHERE id = $4`,
		publisher.Name, publisher.Address, publisher.Website, publisher.ID,
	)
	if err != nil {
		log.Error("failed to update publisher",
			slog.String("error", err.Error()),
			slog.String("publisher_id", publisher.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("publisher_id", publisher.ID.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("publisher not found for update",
			slog.String("publisher_id", publisher.ID.String()))
		return store.ErrPublisherNotFound
	}

	log.Info("publisher updated successfully", slog.String("publisher_id", publisher.ID.String()))
	return nil
}

// Delete implements store.PublisherStore.Delete
// Books referencing the publisher keep existing; the schema clears their
// publisher_id with ON DELETE SET NULL.
func (s *PostgresPublisherStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM publishers WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete publisher",
			slog.String("error", err.Error()),
			slog.String("publisher_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("publisher_id", id.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("publisher not found for delete", slog.String("publisher_id", id.String()))
		return store.ErrPublisherNotFound
	}

	log.Info("publisher deleted successfully", slog.String("publisher_id", id.String()))
	return nil
}
