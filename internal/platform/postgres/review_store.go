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

// reviewSelect joins the reviewed book so responses can carry its title.
const reviewSelect = `
	SELECT r.id, r.book_id, r.reviewer_name, r.rating, r.comment, r.created_at, b.title
	FROM reviews r
	JOIN books b ON b.id = r.book_id
`

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the
// ReviewStore interface. If logger is nil, the default logger is used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// Create implements store.ReviewStore.Create
func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		INSERT INTO reviews (id, book_id, reviewer_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.BookID,
		review.ReviewerName,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Debug("review references missing book",
				slog.String("book_id", review.BookID.String()))
			return fmt.Errorf("%w: book not found", store.ErrInvalidEntity)
		}
		if isCheckViolation(err) {
			return domain.NewValidationError("rating", "rating must be between 1 and 5", domain.ErrValidation)
		}
		log.Error("failed to create review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	log.Info("review created successfully",
		slog.String("review_id", review.ID.String()),
		slog.String("book_id", review.BookID.String()))
	return nil
}

// GetByID implements store.ReviewStore.GetByID
func (s *PostgresReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	review, err := scanReview(s.db.QueryRowContext(ctx, reviewSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("review not found", slog.String("review_id", id.String()))
			return nil, store.ErrReviewNotFound
		}
		log.Error("failed to get review by ID",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return nil, err
	}

	return review, nil
}

// List implements store.ReviewStore.List
func (s *PostgresReviewStore) List(ctx context.Context) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, reviewSelect+` ORDER BY r.created_at DESC`)
	if err != nil {
		log.Error("failed to list reviews", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	reviews := []*domain.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			log.Error("failed to scan review row", slog.String("error", err.Error()))
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning review rows", slog.String("error", err.Error()))
		return nil, err
	}

	return reviews, nil
}

// Update implements store.ReviewStore.Update
func (s *PostgresReviewStore) Update(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during update",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		UPDATE reviews
		SET book_id = $1, reviewer_name = $2, rating = $3, comment = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		review.BookID,
		review.ReviewerName,
		review.Rating,
		review.Comment,
		review.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Debug("review references missing book",
				slog.String("book_id", review.BookID.String()))
			return fmt.Errorf("%w: book not found", store.ErrInvalidEntity)
		}
		if isCheckViolation(err) {
			return domain.NewValidationError("rating", "rating must be between 1 and 5", domain.ErrValidation)
		}
		log.Error("failed to update review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("review not found for update", slog.String("review_id", review.ID.String()))
		return store.ErrReviewNotFound
	}

	log.Info("review updated successfully", slog.String("review_id", review.ID.String()))
	return nil
}

// Delete implements store.ReviewStore.Delete
func (s *PostgresReviewStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("review not found for delete", slog.String("review_id", id.String()))
		return store.ErrReviewNotFound
	}

	log.Info("review deleted successfully", slog.String("review_id", id.String()))
	return nil
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.BookID,
		&review.ReviewerName,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.BookTitle,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}
