package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mugangish/shelter-backend/internal/models"
	"github.com/mugangish/shelter-backend/internal/pkg/apperror"
	"github.com/mugangish/shelter-backend/internal/validation"
)

// BranchRepo описывает зависимости BranchService от слоя хранилища.
type BranchRepo interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Branch, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BranchOrgRepo выдаёт организации для проверки владения.
type BranchOrgRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

// BranchService инкапсулирует бизнес-логику филиалов.
type BranchService struct {
	branches BranchRepo
	orgs     BranchOrgRepo
}

// NewBranchService создаёт сервис филиалов.
func NewBranchService(branches BranchRepo, orgs BranchOrgRepo) *BranchService {
	return &BranchService{branches: branches, orgs: orgs}
}

// BranchInput содержит данные формы филиала.
type BranchInput struct {
	Name             string
	Address          string
	CoordinatorName  *string
	CoordinatorEmail *string
	CoordinatorPhone *string
}

func validateBranchInput(in *BranchInput) error {
	if err := validation.ValidateOrgName(in.Name); err != nil {
		return err
	}
	if err := validation.ValidateAddress(in.Address); err != nil {
		return err
	}
	if in.CoordinatorEmail != nil && *in.CoordinatorEmail != "" {
		if err := validation.ValidateEmail(*in.CoordinatorEmail); err != nil {
			return err
		}
	}
	return nil
}

// checkOwnership подтверждает, что пользователь управляет организацией.
func (s *BranchService) checkOwnership(ctx context.Context, userID uuid.UUID, role string, orgID uuid.UUID) error {
	if role == models.RoleAdmin {
		return nil
	}

	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org.OwnerID != userID {
		return apperror.ErrForbidden
	}

	return nil
}

// Create создаёт филиал в организации пользователя.
func (s *BranchService) Create(ctx context.Context, userID uuid.UUID, role string, orgID uuid.UUID, in BranchInput) (*models.Branch, error) {
	if err := validateBranchInput(&in); err != nil {
		return nil, fmt.Errorf("branch service: %w", err)
	}
	if err := s.checkOwnership(ctx, userID, role, orgID); err != nil {
		return nil, err
	}

	branch := &models.Branch{
		OrganizationID:   orgID,
		Name:             strings.TrimSpace(in.Name),
		Address:          strings.TrimSpace(in.Address),
		CoordinatorName:  in.CoordinatorName,
		CoordinatorEmail: in.CoordinatorEmail,
		CoordinatorPhone: in.CoordinatorPhone,
	}

	if err := s.branches.Create(ctx, branch); err != nil {
		return nil, err
	}

	return branch, nil
}

// List возвращает филиалы организации с проверкой владения.
func (s *BranchService) List(ctx context.Context, userID uuid.UUID, role string, orgID uuid.UUID) ([]models.Branch, error) {
	if err := s.checkOwnership(ctx, userID, role, orgID); err != nil {
		return nil, err
	}

	return s.branches.ListByOrganization(ctx, orgID)
}

// Update обновляет филиал с проверкой владения через его организацию.
func (s *BranchService) Update(ctx context.Context, userID uuid.UUID, role string, branchID uuid.UUID, in BranchInput) (*models.Branch, error) {
	if err := validateBranchInput(&in); err != nil {
		return nil, fmt.Errorf("branch service: %w", err)
	}

	branch, err := s.branches.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, userID, role, branch.OrganizationID); err != nil {
		return nil, err
	}

	branch.Name = strings.TrimSpace(in.Name)
	branch.Address = strings.TrimSpace(in.Address)
	branch.CoordinatorName = in.CoordinatorName
	branch.CoordinatorEmail = in.CoordinatorEmail
	branch.CoordinatorPhone = in.CoordinatorPhone

	if err := s.branches.Update(ctx, branch); err != nil {
		return nil, err
	}

	return branch, nil
}

// Delete удаляет филиал с проверкой владения.
func (s *BranchService) Delete(ctx context.Context, userID uuid.UUID, role string, branchID uuid.UUID) error {
	branch, err := s.branches.GetByID(ctx, branchID)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(ctx, userID, role, branch.OrganizationID); err != nil {
		return err
	}

	return s.branches.Delete(ctx, branchID)
}
