package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mugangish/shelter-backend/internal/models"
)

// ShelterReviewRepository отвечает за опубликованные отзывы и жалобы.
// Записи появляются здесь только после одобрения модератором.
type ShelterReviewRepository struct {
	db *sqlx.DB
}

// NewShelterReviewRepository создаёт экземпляр репозитория.
func NewShelterReviewRepository(db *sqlx.DB) *ShelterReviewRepository {
	return &ShelterReviewRepository{db: db}
}

// CreateReview публикует одобренный отзыв.
func (r *ShelterReviewRepository) CreateReview(ctx context.Context, rev *models.ShelterReview) error {
	query := `
		INSERT INTO shelter_reviews (shelter_id, rating, comment, reporter_email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		rev.ShelterID, rev.Rating, rev.Comment, rev.ReporterEmail,
	).Scan(&rev.ID, &rev.CreatedAt); err != nil {
		return fmt.Errorf("shelter review repository: create review %w", err)
	}

	return nil
}

// ListReviews возвращает опубликованные отзывы убежища.
func (r *ShelterReviewRepository) ListReviews(ctx context.Context, shelterID uuid.UUID) ([]models.ShelterReview, error) {
	var reviews []models.ShelterReview
	query := `
		SELECT id, shelter_id, rating, comment, reporter_email, created_at
		FROM shelter_reviews
		WHERE shelter_id = $1
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &reviews, query, shelterID); err != nil {
		return nil, fmt.Errorf("shelter review repository: list reviews %w", err)
	}

	return reviews, nil
}

// CreateReport публикует подтверждённую жалобу.
func (r *ShelterReviewRepository) CreateReport(ctx context.Context, rep *models.ShelterReport) error {
	query := `
		INSERT INTO shelter_reports (shelter_id, report_type, details)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		rep.ShelterID, rep.ReportType, rep.Details,
	).Scan(&rep.ID, &rep.CreatedAt); err != nil {
		return fmt.Errorf("shelter review repository: create report %w", err)
	}

	return nil
}

// ListReports возвращает подтверждённые жалобы убежища.
func (r *ShelterReviewRepository) ListReports(ctx context.Context, shelterID uuid.UUID) ([]models.ShelterReport, error) {
	var reports []models.ShelterReport
	query := `
		SELECT id, shelter_id, report_type, details, created_at
		FROM shelter_reports
		WHERE shelter_id = $1
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &reports, query, shelterID); err != nil {
		return nil, fmt.Errorf("shelter review repository: list reports %w", err)
	}

	return reports, nil
}
