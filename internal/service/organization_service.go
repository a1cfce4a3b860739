package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mugangish/shelter-backend/internal/logger"
	"github.com/mugangish/shelter-backend/internal/models"
	"github.com/mugangish/shelter-backend/internal/pkg/apperror"
	"github.com/mugangish/shelter-backend/internal/repository"
	"github.com/mugangish/shelter-backend/internal/validation"
)

// OrganizationRepo описывает зависимости OrganizationService от слоя хранилища.
type OrganizationRepo interface {
	Create(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
}

// OrgUserRepo обновляет привязку пользователя к организации.
type OrgUserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetOrganization(ctx context.Context, id uuid.UUID, orgID uuid.UUID) error
}

// OrganizationService инкапсулирует бизнес-логику организаций.
type OrganizationService struct {
	orgs  OrganizationRepo
	users OrgUserRepo
}

// NewOrganizationService создаёт сервис организаций.
func NewOrganizationService(orgs OrganizationRepo, users OrgUserRepo) *OrganizationService {
	return &OrganizationService{orgs: orgs, users: users}
}

// OrganizationInput содержит данные формы организации.
type OrganizationInput struct {
	Name             string
	Category         string
	WebsiteURL       *string
	AccessibilityURL *string
	VerificationFile *string
}

func validateOrganizationInput(in *OrganizationInput) error {
	if err := validation.ValidateOrgName(in.Name); err != nil {
		return err
	}
	if !models.ValidOrgCategory(in.Category) {
		return fmt.Errorf("недопустимая категория организации: %s", in.Category)
	}
	if err := validation.ValidateExternalLink(in.WebsiteURL); err != nil {
		return err
	}
	if err := validation.ValidateExternalLink(in.AccessibilityURL); err != nil {
		return err
	}
	return nil
}

// Create создаёт организацию. Владельцем становится вызывающий пользователь,
// организация сразу привязывается к его аккаунту.
func (s *OrganizationService) Create(ctx context.Context, userID uuid.UUID, in OrganizationInput) (*models.Organization, error) {
	if err := validateOrganizationInput(&in); err != nil {
		return nil, fmt.Errorf("organization service: %w", err)
	}

	if _, err := s.orgs.GetByOwner(ctx, userID); err == nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "у пользователя уже есть организация")
	} else if !errors.Is(err, repository.ErrOrganizationNotFound) {
		return nil, err
	}

	org := &models.Organization{
		Name:             strings.TrimSpace(in.Name),
		Category:         in.Category,
		WebsiteURL:       in.WebsiteURL,
		AccessibilityURL: in.AccessibilityURL,
		OwnerID:          userID,
		VerificationFile: in.VerificationFile,
	}

	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, err
	}

	if err := s.users.SetOrganization(ctx, userID, org.ID); err != nil {
		// Организация без привязки к владельцу остаться не должна
		if delErr := s.orgs.Delete(ctx, org.ID); delErr != nil && logger.Log != nil {
			logger.Log.WithError(delErr).Warn("organization service: не удалось удалить организацию после сбоя привязки владельца")
		}
		return nil, err
	}

	return org, nil
}

// Get возвращает организацию вызывающего пользователя или любую — для
// администратора.
func (s *OrganizationService) Get(ctx context.Context, userID uuid.UUID, role string, orgID uuid.UUID) (*models.Organization, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if role != models.RoleAdmin && org.OwnerID != userID {
		return nil, apperror.ErrForbidden
	}

	return org, nil
}

// GetMine возвращает организацию, которой владеет пользователь.
func (s *OrganizationService) GetMine(ctx context.Context, userID uuid.UUID) (*models.Organization, error) {
	return s.orgs.GetByOwner(ctx, userID)
}

// Update обновляет организацию. Доступно владельцу и администратору.
func (s *OrganizationService) Update(ctx context.Context, userID uuid.UUID, role string, orgID uuid.UUID, in OrganizationInput) (*models.Organization, error) {
	if err := validateOrganizationInput(&in); err != nil {
		return nil, fmt.Errorf("organization service: %w", err)
	}

	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && org.OwnerID != userID {
		return nil, apperror.ErrForbidden
	}

	org.Name = strings.TrimSpace(in.Name)
	org.Category = in.Category
	org.WebsiteURL = in.WebsiteURL
	org.AccessibilityURL = in.AccessibilityURL
	if in.VerificationFile != nil {
		org.VerificationFile = in.VerificationFile
	}

	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, err
	}

	return org, nil
}
