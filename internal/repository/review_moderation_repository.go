package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mugangish/shelter-backend/internal/models"
)

// ErrReviewNotFound возвращается, когда отзыв не найден.
var ErrReviewNotFound = errors.New("review not found")

// ReviewModerationRepository отвечает за очередь модерации отзывов.
type ReviewModerationRepository struct {
	db *sqlx.DB
}

// NewReviewModerationRepository создаёт экземпляр репозитория.
func NewReviewModerationRepository(db *sqlx.DB) *ReviewModerationRepository {
	return &ReviewModerationRepository{db: db}
}

const reviewModerationColumns = `id, shelter_id, rating, comment, reporter_email, status, rejection_reason, reviewed_by, reviewed_at, created_at`

// Create ставит отзыв в очередь модерации.
func (r *ReviewModerationRepository) Create(ctx context.Context, rev *models.ReviewModeration) error {
	query := `
		INSERT INTO review_moderation (shelter_id, rating, comment, reporter_email, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		rev.ShelterID, rev.Rating, rev.Comment, rev.ReporterEmail, models.ModerationStatusPending,
	).Scan(&rev.ID, &rev.CreatedAt); err != nil {
		return fmt.Errorf("review moderation repository: create %w", err)
	}
	rev.Status = models.ModerationStatusPending

	return nil
}

// GetByID возвращает отзыв из очереди по идентификатору.
func (r *ReviewModerationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReviewModeration, error) {
	var rev models.ReviewModeration
	query := `SELECT ` + reviewModerationColumns + ` FROM review_moderation WHERE id = $1`
	if err := r.db.GetContext(ctx, &rev, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("review moderation repository: get by id %w", err)
	}

	return &rev, nil
}

// ListPending возвращает очередь отзывов на модерацию.
func (r *ReviewModerationRepository) ListPending(ctx context.Context) ([]models.ReviewModeration, error) {
	var items []models.ReviewModeration
	query := `SELECT ` + reviewModerationColumns + ` FROM review_moderation WHERE status = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &items, query, models.ModerationStatusPending); err != nil {
		return nil, fmt.Errorf("review moderation repository: list pending %w", err)
	}

	return items, nil
}

// Resolve атомарно переводит отзыв из pending в итоговый статус.
func (r *ReviewModerationRepository) Resolve(ctx context.Context, id uuid.UUID, status string, reason *string, reviewedBy uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE review_moderation
		SET status = $2, rejection_reason = $3, reviewed_by = $4, reviewed_at = NOW()
		WHERE id = $1 AND status = $5
	`, id, status, reason, reviewedBy, models.ModerationStatusPending)
	if err != nil {
		return false, fmt.Errorf("review moderation repository: resolve %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("review moderation repository: resolve rows affected %w", err)
	}

	return affected > 0, nil
}
