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

// ErrVerificationNotFound возвращается, когда заявка на верификацию не найдена.
var ErrVerificationNotFound = errors.New("verification request not found")

// VerificationRepository отвечает за заявки на статус координатора.
type VerificationRepository struct {
	db *sqlx.DB
}

// NewVerificationRepository создаёт экземпляр репозитория.
func NewVerificationRepository(db *sqlx.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

const verificationColumns = `id, user_id, email, full_name, verification_file_url, status, rejection_reason, reviewed_by, reviewed_at, created_at`

// Create создаёт заявку в статусе pending.
func (r *VerificationRepository) Create(ctx context.Context, v *models.CoordinatorVerification) error {
	query := `
		INSERT INTO coordinator_verifications (user_id, email, full_name, verification_file_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		v.UserID, v.Email, v.FullName, v.VerificationFileURL, models.ModerationStatusPending,
	).Scan(&v.ID, &v.CreatedAt); err != nil {
		return fmt.Errorf("verification repository: create %w", err)
	}
	v.Status = models.ModerationStatusPending

	return nil
}

// GetByID возвращает заявку по идентификатору.
func (r *VerificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CoordinatorVerification, error) {
	var v models.CoordinatorVerification
	query := `SELECT ` + verificationColumns + ` FROM coordinator_verifications WHERE id = $1`
	if err := r.db.GetContext(ctx, &v, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("verification repository: get by id %w", err)
	}

	return &v, nil
}

// HasPending сообщает, есть ли у пользователя необработанная заявка.
func (r *VerificationRepository) HasPending(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM coordinator_verifications WHERE user_id = $1 AND status = $2)`
	if err := r.db.GetContext(ctx, &exists, query, userID, models.ModerationStatusPending); err != nil {
		return false, fmt.Errorf("verification repository: has pending %w", err)
	}

	return exists, nil
}

// ListPending возвращает очередь заявок на модерацию.
func (r *VerificationRepository) ListPending(ctx context.Context) ([]models.CoordinatorVerification, error) {
	var items []models.CoordinatorVerification
	query := `SELECT ` + verificationColumns + ` FROM coordinator_verifications WHERE status = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &items, query, models.ModerationStatusPending); err != nil {
		return nil, fmt.Errorf("verification repository: list pending %w", err)
	}

	return items, nil
}

// Resolve атомарно переводит заявку из pending в итоговый статус.
// Возвращает false, если заявка уже была обработана.
func (r *VerificationRepository) Resolve(ctx context.Context, id uuid.UUID, status string, reason *string, reviewedBy uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE coordinator_verifications
		SET status = $2, rejection_reason = $3, reviewed_by = $4, reviewed_at = NOW()
		WHERE id = $1 AND status = $5
	`, id, status, reason, reviewedBy, models.ModerationStatusPending)
	if err != nil {
		return false, fmt.Errorf("verification repository: resolve %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("verification repository: resolve rows affected %w", err)
	}

	return affected > 0, nil
}
