package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mugangish/shelter-backend/internal/models"
)

// ErrShelterNotFound возвращается, когда запись убежища не найдена.
var ErrShelterNotFound = errors.New("shelter not found")

// ShelterRepository отвечает за работу с таблицей shelters.
type ShelterRepository struct {
	db *sqlx.DB
}

// NewShelterRepository создаёт экземпляр репозитория.
func NewShelterRepository(db *sqlx.DB) *ShelterRepository {
	return &ShelterRepository{db: db}
}

const shelterColumns = `
	id, address, lat, lng, shelter_type, shelter_type_other, floor_number,
	area_description, directions, step_free_access, path_width, door_width,
	stairs_count, handrails_present, maneuvering_space, threshold_height,
	ramp_present, navigation_system, navigation_system_other,
	accessibility_aids, photos, branch_id, organization_id, status, verified,
	submitted_by, reviewed_by, reviewed_at, rating, rating_count,
	created_at, updated_at`

// rowScanner покрывает *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanShelter(row rowScanner, s *models.Shelter) error {
	return row.Scan(
		&s.ID, &s.Address, &s.Lat, &s.Lng, &s.ShelterType, &s.ShelterTypeOther, &s.FloorNumber,
		&s.AreaDescription, &s.Directions, &s.StepFreeAccess, &s.PathWidth, &s.DoorWidth,
		&s.StairsCount, &s.HandrailsPresent, &s.ManeuveringSpace, &s.ThresholdHeight,
		&s.RampPresent, &s.NavigationSystem, &s.NavigationSystemOther,
		pq.Array(&s.AccessibilityAids), pq.Array(&s.Photos), &s.BranchID, &s.OrganizationID, &s.Status, &s.Verified,
		&s.SubmittedBy, &s.ReviewedBy, &s.ReviewedAt, &s.Rating, &s.RatingCount,
		&s.CreatedAt, &s.UpdatedAt,
	)
}

// Create создаёт новую запись убежища.
func (r *ShelterRepository) Create(ctx context.Context, s *models.Shelter) error {
	query := `
		INSERT INTO shelters (
			address, lat, lng, shelter_type, shelter_type_other, floor_number,
			area_description, directions, step_free_access, path_width, door_width,
			stairs_count, handrails_present, maneuvering_space, threshold_height,
			ramp_present, navigation_system, navigation_system_other,
			accessibility_aids, photos, branch_id, organization_id, status, verified,
			submitted_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		s.Address, s.Lat, s.Lng, s.ShelterType, s.ShelterTypeOther, s.FloorNumber,
		s.AreaDescription, s.Directions, s.StepFreeAccess, s.PathWidth, s.DoorWidth,
		s.StairsCount, s.HandrailsPresent, s.ManeuveringSpace, s.ThresholdHeight,
		s.RampPresent, s.NavigationSystem, s.NavigationSystemOther,
		pq.Array(s.AccessibilityAids), pq.Array(s.Photos), s.BranchID, s.OrganizationID, s.Status, s.Verified,
		s.SubmittedBy,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("shelter repository: create %w", err)
	}

	return nil
}

// GetByID возвращает убежище по идентификатору.
func (r *ShelterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Shelter, error) {
	var s models.Shelter
	row := r.db.QueryRowContext(ctx, `SELECT `+shelterColumns+` FROM shelters WHERE id = $1`, id)
	if err := scanShelter(row, &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShelterNotFound
		}
		return nil, fmt.Errorf("shelter repository: get by id %w", err)
	}

	return &s, nil
}

// Update обновляет поля убежища, не меняя его статус.
func (r *ShelterRepository) Update(ctx context.Context, s *models.Shelter) error {
	query := `
		UPDATE shelters SET
			address = $2, lat = $3, lng = $4, shelter_type = $5, shelter_type_other = $6,
			floor_number = $7, area_description = $8, directions = $9,
			step_free_access = $10, path_width = $11, door_width = $12,
			stairs_count = $13, handrails_present = $14, maneuvering_space = $15,
			threshold_height = $16, ramp_present = $17, navigation_system = $18,
			navigation_system_other = $19, accessibility_aids = $20, photos = $21,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx, query,
		s.ID, s.Address, s.Lat, s.Lng, s.ShelterType, s.ShelterTypeOther,
		s.FloorNumber, s.AreaDescription, s.Directions,
		s.StepFreeAccess, s.PathWidth, s.DoorWidth,
		s.StairsCount, s.HandrailsPresent, s.ManeuveringSpace,
		s.ThresholdHeight, s.RampPresent, s.NavigationSystem,
		s.NavigationSystemOther, pq.Array(s.AccessibilityAids), pq.Array(s.Photos),
	)
	if err != nil {
		return fmt.Errorf("shelter repository: update %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("shelter repository: update rows affected %w", err)
	}
	if affected == 0 {
		return ErrShelterNotFound
	}

	return nil
}

// Delete удаляет запись убежища.
func (r *ShelterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shelters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("shelter repository: delete %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("shelter repository: delete rows affected %w", err)
	}
	if affected == 0 {
		return ErrShelterNotFound
	}

	return nil
}

func (r *ShelterRepository) selectShelters(ctx context.Context, query string, args ...any) ([]models.Shelter, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shelters []models.Shelter
	for rows.Next() {
		var s models.Shelter
		if err := scanShelter(rows, &s); err != nil {
			return nil, err
		}
		shelters = append(shelters, s)
	}

	return shelters, rows.Err()
}

// ListPublished возвращает все опубликованные убежища.
func (r *ShelterRepository) ListPublished(ctx context.Context) ([]models.Shelter, error) {
	shelters, err := r.selectShelters(ctx,
		`SELECT `+shelterColumns+` FROM shelters WHERE status = $1 ORDER BY created_at DESC`,
		models.ShelterStatusPublished,
	)
	if err != nil {
		return nil, fmt.Errorf("shelter repository: list published %w", err)
	}
	return shelters, nil
}

// ListPendingReview возвращает очередь убежищ на модерацию.
func (r *ShelterRepository) ListPendingReview(ctx context.Context) ([]models.Shelter, error) {
	shelters, err := r.selectShelters(ctx,
		`SELECT `+shelterColumns+` FROM shelters WHERE status = $1 ORDER BY created_at ASC`,
		models.ShelterStatusPendingReview,
	)
	if err != nil {
		return nil, fmt.Errorf("shelter repository: list pending review %w", err)
	}
	return shelters, nil
}

// ListByOrganization возвращает убежища организации (по прямой привязке или через филиалы).
func (r *ShelterRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Shelter, error) {
	query := `
		SELECT ` + shelterColumns + ` FROM shelters
		WHERE organization_id = $1
		   OR branch_id IN (SELECT id FROM branches WHERE organization_id = $1)
		ORDER BY created_at DESC
	`
	shelters, err := r.selectShelters(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("shelter repository: list by organization %w", err)
	}
	return shelters, nil
}

// ListByBranch возвращает убежища филиала.
func (r *ShelterRepository) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]models.Shelter, error) {
	shelters, err := r.selectShelters(ctx,
		`SELECT `+shelterColumns+` FROM shelters WHERE branch_id = $1 ORDER BY created_at DESC`,
		branchID,
	)
	if err != nil {
		return nil, fmt.Errorf("shelter repository: list by branch %w", err)
	}
	return shelters, nil
}

// TransitionStatus атомарно переводит убежище из одного статуса в другой.
// Возвращает false, если убежище уже не находится в исходном статусе.
func (r *ShelterRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to string, reviewedBy *uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE shelters
		SET status = $3, reviewed_by = $4, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $2
	`, id, from, to, reviewedBy)
	if err != nil {
		return false, fmt.Errorf("shelter repository: transition status %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("shelter repository: transition status rows affected %w", err)
	}

	return affected > 0, nil
}

// DeleteIfStatus удаляет убежище, только если оно находится в указанном статусе.
func (r *ShelterRepository) DeleteIfStatus(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shelters WHERE id = $1 AND status = $2`, id, status)
	if err != nil {
		return false, fmt.Errorf("shelter repository: delete if status %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("shelter repository: delete if status rows affected %w", err)
	}

	return affected > 0, nil
}

// SetOwnership привязывает убежище к филиалу или организации.
// Привязка взаимоисключающая: либо филиал, либо организация напрямую.
func (r *ShelterRepository) SetOwnership(ctx context.Context, id uuid.UUID, branchID, orgID *uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE shelters SET branch_id = $2, organization_id = $3, updated_at = NOW()
		WHERE id = $1
	`, id, branchID, orgID)
	if err != nil {
		return fmt.Errorf("shelter repository: set ownership %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("shelter repository: set ownership rows affected %w", err)
	}
	if affected == 0 {
		return ErrShelterNotFound
	}

	return nil
}

// SetVerified обновляет признак проверенной записи.
func (r *ShelterRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE shelters SET verified = $2, updated_at = NOW() WHERE id = $1`,
		id, verified,
	); err != nil {
		return fmt.Errorf("shelter repository: set verified %w", err)
	}
	return nil
}

// RecalculateRating пересчитывает агрегированный рейтинг убежища по отзывам.
func (r *ShelterRepository) RecalculateRating(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE shelters s SET
			rating = agg.avg_rating,
			rating_count = agg.cnt,
			updated_at = NOW()
		FROM (
			SELECT AVG(rating)::float8 AS avg_rating, COUNT(*) AS cnt
			FROM shelter_reviews WHERE shelter_id = $1
		) agg
		WHERE s.id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("shelter repository: recalculate rating %w", err)
	}

	return nil
}
