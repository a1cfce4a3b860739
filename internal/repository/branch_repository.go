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

// ErrBranchNotFound возвращается, когда филиал не найден.
var ErrBranchNotFound = errors.New("branch not found")

// BranchRepository отвечает за работу с таблицей branches.
type BranchRepository struct {
	db *sqlx.DB
}

// NewBranchRepository создаёт экземпляр репозитория.
func NewBranchRepository(db *sqlx.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

const branchColumns = `id, organization_id, name, address, coordinator_name, coordinator_email, coordinator_phone, created_at, updated_at`

// Create создаёт филиал организации.
func (r *BranchRepository) Create(ctx context.Context, branch *models.Branch) error {
	query := `
		INSERT INTO branches (organization_id, name, address, coordinator_name, coordinator_email, coordinator_phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		branch.OrganizationID, branch.Name, branch.Address,
		branch.CoordinatorName, branch.CoordinatorEmail, branch.CoordinatorPhone,
	).Scan(&branch.ID, &branch.CreatedAt, &branch.UpdatedAt); err != nil {
		return fmt.Errorf("branch repository: create %w", err)
	}

	return nil
}

// GetByID возвращает филиал по идентификатору.
func (r *BranchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`
	if err := r.db.GetContext(ctx, &branch, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("branch repository: get by id %w", err)
	}

	return &branch, nil
}

// ListByOrganization возвращает все филиалы организации.
func (r *BranchRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Branch, error) {
	var branches []models.Branch
	query := `SELECT ` + branchColumns + ` FROM branches WHERE organization_id = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &branches, query, orgID); err != nil {
		return nil, fmt.Errorf("branch repository: list by organization %w", err)
	}

	return branches, nil
}

// Update обновляет данные филиала.
func (r *BranchRepository) Update(ctx context.Context, branch *models.Branch) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE branches
		SET name = $2, address = $3, coordinator_name = $4, coordinator_email = $5,
			coordinator_phone = $6, updated_at = NOW()
		WHERE id = $1
	`, branch.ID, branch.Name, branch.Address,
		branch.CoordinatorName, branch.CoordinatorEmail, branch.CoordinatorPhone)
	if err != nil {
		return fmt.Errorf("branch repository: update %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("branch repository: update rows affected %w", err)
	}
	if affected == 0 {
		return ErrBranchNotFound
	}

	return nil
}

// Delete удаляет филиал.
func (r *BranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("branch repository: delete %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("branch repository: delete rows affected %w", err)
	}
	if affected == 0 {
		return ErrBranchNotFound
	}

	return nil
}
