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

// ErrReportNotFound возвращается, когда жалоба не найдена.
var ErrReportNotFound = errors.New("report not found")

// ReportModerationRepository отвечает за очередь модерации жалоб.
type ReportModerationRepository struct {
	db *sqlx.DB
}

// NewReportModerationRepository создаёт экземпляр репозитория.
func NewReportModerationRepository(db *sqlx.DB) *ReportModerationRepository {
	return &ReportModerationRepository{db: db}
}

const reportModerationColumns = `id, shelter_id, report_type, details, contact_info, status, rejection_reason, reviewed_by, reviewed_at, created_at`

// Create ставит жалобу в очередь модерации.
func (r *ReportModerationRepository) Create(ctx context.Context, rep *models.ReportModeration) error {
	query := `
		INSERT INTO report_moderation (shelter_id, report_type, details, contact_info, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		rep.ShelterID, rep.ReportType, rep.Details, rep.ContactInfo, models.ModerationStatusPending,
	).Scan(&rep.ID, &rep.CreatedAt); err != nil {
		return fmt.Errorf("report moderation repository: create %w", err)
	}
	rep.Status = models.ModerationStatusPending

	return nil
}

// GetByID возвращает жалобу из очереди по идентификатору.
func (r *ReportModerationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReportModeration, error) {
	var rep models.ReportModeration
	query := `SELECT ` + reportModerationColumns + ` FROM report_moderation WHERE id = $1`
	if err := r.db.GetContext(ctx, &rep, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("report moderation repository: get by id %w", err)
	}

	return &rep, nil
}

// ListPending возвращает очередь жалоб на модерацию.
func (r *ReportModerationRepository) ListPending(ctx context.Context) ([]models.ReportModeration, error) {
	var items []models.ReportModeration
	query := `SELECT ` + reportModerationColumns + ` FROM report_moderation WHERE status = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &items, query, models.ModerationStatusPending); err != nil {
		return nil, fmt.Errorf("report moderation repository: list pending %w", err)
	}

	return items, nil
}

// Resolve атомарно переводит жалобу из pending в итоговый статус.
func (r *ReportModerationRepository) Resolve(ctx context.Context, id uuid.UUID, status string, reason *string, reviewedBy uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE report_moderation
		SET status = $2, rejection_reason = $3, reviewed_by = $4, reviewed_at = NOW()
		WHERE id = $1 AND status = $5
	`, id, status, reason, reviewedBy, models.ModerationStatusPending)
	if err != nil {
		return false, fmt.Errorf("report moderation repository: resolve %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("report moderation repository: resolve rows affected %w", err)
	}

	return affected > 0, nil
}
