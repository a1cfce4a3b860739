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

// ErrOrganizationNotFound возвращается, когда организация не найдена.
var ErrOrganizationNotFound = errors.New("organization not found")

// OrganizationRepository отвечает за работу с таблицей organizations.
type OrganizationRepository struct {
	db *sqlx.DB
}

// NewOrganizationRepository создаёт экземпляр репозитория.
func NewOrganizationRepository(db *sqlx.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

const organizationColumns = `id, name, category, website_url, accessibility_url, owner_id, verification_file, created_at, updated_at`

// Create создаёт организацию. Владелец фиксируется при создании и не меняется.
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (name, category, website_url, accessibility_url, owner_id, verification_file)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		org.Name, org.Category, org.WebsiteURL, org.AccessibilityURL, org.OwnerID, org.VerificationFile,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt); err != nil {
		return fmt.Errorf("organization repository: create %w", err)
	}

	return nil
}

// Delete удаляет организацию.
func (r *OrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("organization repository: delete %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("organization repository: delete rows affected %w", err)
	}
	if affected == 0 {
		return ErrOrganizationNotFound
	}

	return nil
}

// GetByID возвращает организацию по идентификатору.
func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	if err := r.db.GetContext(ctx, &org, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("organization repository: get by id %w", err)
	}

	return &org, nil
}

// GetByOwner возвращает организацию, созданную пользователем.
func (r *OrganizationRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE owner_id = $1`
	if err := r.db.GetContext(ctx, &org, query, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("organization repository: get by owner %w", err)
	}

	return &org, nil
}

// Update обновляет данные организации.
func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE organizations
		SET name = $2, category = $3, website_url = $4, accessibility_url = $5,
			verification_file = $6, updated_at = NOW()
		WHERE id = $1
	`, org.ID, org.Name, org.Category, org.WebsiteURL, org.AccessibilityURL, org.VerificationFile)
	if err != nil {
		return fmt.Errorf("organization repository: update %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("organization repository: update rows affected %w", err)
	}
	if affected == 0 {
		return ErrOrganizationNotFound
	}

	return nil
}
