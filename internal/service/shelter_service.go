package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mugangish/shelter-backend/internal/geo"
	"github.com/mugangish/shelter-backend/internal/goroutine"
	"github.com/mugangish/shelter-backend/internal/logger"
	"github.com/mugangish/shelter-backend/internal/mail"
	"github.com/mugangish/shelter-backend/internal/models"
	"github.com/mugangish/shelter-backend/internal/pkg/apperror"
	"github.com/mugangish/shelter-backend/internal/validation"
)

// Типы формы подачи убежища.
const (
	FormTypeRandom   = "random"
	FormTypeBusiness = "business"
)

// ShelterRepo описывает зависимости ShelterService от слоя хранилища.
type ShelterRepo interface {
	Create(ctx context.Context, s *models.Shelter) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shelter, error)
	Update(ctx context.Context, s *models.Shelter) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Shelter, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]models.Shelter, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to string, reviewedBy *uuid.UUID) (bool, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SetOwnership(ctx context.Context, id uuid.UUID, branchID, orgID *uuid.UUID) error
}

// ShelterUserRepo выдаёт данные пользователя для проверки прав.
type ShelterUserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ShelterOrgRepo выдаёт организации и филиалы для проверки владения.
type ShelterOrgRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

// ShelterBranchRepo выдаёт филиалы.
type ShelterBranchRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Branch, error)
}

// CacheInvalidator сбрасывает кэш опубликованных убежищ.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// QueueNotifier рассылает событие очереди модерации подключённым администраторам.
type QueueNotifier interface {
	NotifyQueue(queue string, payload interface{})
}

// ShelterService инкапсулирует жизненный цикл записей убежищ.
type ShelterService struct {
	shelters ShelterRepo
	users    ShelterUserRepo
	orgs     ShelterOrgRepo
	branches ShelterBranchRepo
	cache    CacheInvalidator
	mailer   mail.Mailer
	notifier QueueNotifier
	adminTo  string
}

// NewShelterService создаёт сервис убежищ.
func NewShelterService(
	shelters ShelterRepo,
	users ShelterUserRepo,
	orgs ShelterOrgRepo,
	branches ShelterBranchRepo,
	cache CacheInvalidator,
	mailer mail.Mailer,
	notifier QueueNotifier,
	adminTo string,
) *ShelterService {
	return &ShelterService{
		shelters: shelters,
		users:    users,
		orgs:     orgs,
		branches: branches,
		cache:    cache,
		mailer:   mailer,
		notifier: notifier,
		adminTo:  adminTo,
	}
}

// ShelterInput содержит данные формы убежища.
type ShelterInput struct {
	FormType              string
	Address               string
	Lat                   *float64
	Lng                   *float64
	ShelterType           string
	ShelterTypeOther      *string
	FloorNumber           *int
	AreaDescription       *string
	Directions            *string
	StepFreeAccess        bool
	PathWidth             *float64
	DoorWidth             *float64
	StairsCount           *int
	HandrailsPresent      bool
	ManeuveringSpace      bool
	ThresholdHeight       *float64
	RampPresent           bool
	NavigationSystem      string
	NavigationSystemOther *string
	AccessibilityAids     []string
	Photos                []string
	BranchID              *uuid.UUID
	OrganizationID        *uuid.UUID
	Draft                 bool
	ContactEmail          *string
}

func validateShelterInput(in *ShelterInput) error {
	if err := validation.ValidateAddress(in.Address); err != nil {
		return err
	}
	if !models.ValidShelterType(in.ShelterType) {
		return fmt.Errorf("недопустимый тип убежища: %s", in.ShelterType)
	}
	if in.NavigationSystem == "" {
		in.NavigationSystem = models.NavigationSystemNone
	}
	if !models.ValidNavigationSystem(in.NavigationSystem) {
		return fmt.Errorf("недопустимая система навигации: %s", in.NavigationSystem)
	}
	if err := validation.ValidatePhotos(in.Photos); err != nil {
		return err
	}
	if err := validation.ValidateAccessibilityAids(in.AccessibilityAids); err != nil {
		return err
	}
	if (in.Lat == nil) != (in.Lng == nil) {
		return fmt.Errorf("координаты должны задаваться парой lat/lng")
	}
	if in.Lat != nil && !geo.ValidCoordinates(*in.Lat, *in.Lng) {
		return fmt.Errorf("координаты вне допустимого диапазона")
	}
	return nil
}

// Submit принимает форму убежища. Анонимная подача допускается только для
// формы random; бизнес-форма требует авторизованного пользователя.
func (s *ShelterService) Submit(ctx context.Context, userID *uuid.UUID, in ShelterInput) (*models.Shelter, error) {
	if err := validateShelterInput(&in); err != nil {
		return nil, fmt.Errorf("shelter service: %w", err)
	}

	shelter := &models.Shelter{
		Address:               in.Address,
		Lat:                   in.Lat,
		Lng:                   in.Lng,
		ShelterType:           in.ShelterType,
		ShelterTypeOther:      in.ShelterTypeOther,
		FloorNumber:           in.FloorNumber,
		AreaDescription:       in.AreaDescription,
		Directions:            in.Directions,
		StepFreeAccess:        in.StepFreeAccess,
		PathWidth:             in.PathWidth,
		DoorWidth:             in.DoorWidth,
		StairsCount:           in.StairsCount,
		HandrailsPresent:      in.HandrailsPresent,
		ManeuveringSpace:      in.ManeuveringSpace,
		ThresholdHeight:       in.ThresholdHeight,
		RampPresent:           in.RampPresent,
		NavigationSystem:      in.NavigationSystem,
		NavigationSystemOther: in.NavigationSystemOther,
		AccessibilityAids:     in.AccessibilityAids,
		Photos:                in.Photos,
	}

	switch in.FormType {
	case FormTypeRandom:
		if err := s.prepareRandom(ctx, userID, &in, shelter); err != nil {
			return nil, err
		}
	case FormTypeBusiness:
		if err := s.prepareBusiness(ctx, userID, &in, shelter); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("shelter service: недопустимый тип формы: %s", in.FormType)
	}

	if err := s.shelters.Create(ctx, shelter); err != nil {
		return nil, err
	}

	if shelter.Status == models.ShelterStatusPendingReview {
		s.notifyNewPending(shelter)
	}
	if shelter.Status == models.ShelterStatusPublished {
		s.cache.Invalidate(ctx)
	}

	return shelter, nil
}

// prepareRandom заполняет поля случайной подачи: такая запись всегда уходит
// в очередь модерации, черновиком она быть не может.
func (s *ShelterService) prepareRandom(ctx context.Context, userID *uuid.UUID, in *ShelterInput, shelter *models.Shelter) error {
	if in.Lat == nil || in.Lng == nil {
		return fmt.Errorf("shelter service: для случайной подачи обязательны координаты")
	}

	shelter.Status = models.ShelterStatusPendingReview
	shelter.Verified = false

	if userID != nil {
		user, err := s.users.GetByID(ctx, *userID)
		if err != nil {
			return err
		}
		shelter.SubmittedBy = &user.Email
	} else if in.ContactEmail != nil && *in.ContactEmail != "" {
		if err := validation.ValidateEmail(*in.ContactEmail); err != nil {
			return fmt.Errorf("shelter service: %w", err)
		}
		shelter.SubmittedBy = in.ContactEmail
	}

	return nil
}

// prepareBusiness заполняет поля бизнес-подачи и проверяет владение
// филиалом либо организацией.
func (s *ShelterService) prepareBusiness(ctx context.Context, userID *uuid.UUID, in *ShelterInput, shelter *models.Shelter) error {
	if userID == nil {
		return apperror.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, *userID)
	if err != nil {
		return err
	}

	if (in.BranchID == nil) == (in.OrganizationID == nil) {
		return fmt.Errorf("shelter service: требуется ровно одно из branch_id и organization_id")
	}

	if in.BranchID != nil {
		branch, err := s.branches.GetByID(ctx, *in.BranchID)
		if err != nil {
			return err
		}
		if err := s.checkOrgOwnership(ctx, user, branch.OrganizationID); err != nil {
			return err
		}
		shelter.BranchID = in.BranchID
	} else {
		if err := s.checkOrgOwnership(ctx, user, *in.OrganizationID); err != nil {
			return err
		}
		shelter.OrganizationID = in.OrganizationID
	}

	shelter.SubmittedBy = &user.Email
	if in.Draft {
		shelter.Status = models.ShelterStatusDraft
		shelter.Verified = false
	} else {
		shelter.Status = models.ShelterStatusPublished
		shelter.Verified = user.IsCoordinator
	}

	return nil
}

// checkOrgOwnership подтверждает, что пользователь управляет организацией.
func (s *ShelterService) checkOrgOwnership(ctx context.Context, user *models.User, orgID uuid.UUID) error {
	if user.Role == models.RoleAdmin {
		return nil
	}

	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org.OwnerID != user.ID {
		return apperror.ErrForbidden
	}

	return nil
}

// Get возвращает убежище с учётом видимости: опубликованные доступны всем,
// черновики и ожидающие модерации — только владельцу и администратору.
func (s *ShelterService) Get(ctx context.Context, userID *uuid.UUID, role string, id uuid.UUID) (*models.Shelter, error) {
	shelter, err := s.shelters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if shelter.Status == models.ShelterStatusPublished || role == models.RoleAdmin {
		return shelter, nil
	}

	if userID == nil {
		return nil, apperror.ErrShelterNotFound
	}

	user, err := s.users.GetByID(ctx, *userID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(ctx, user, shelter); err != nil {
		return nil, apperror.ErrShelterNotFound
	}

	return shelter, nil
}

// Update обновляет запись убежища. Снятие флага черновика публикует её
// по тем же правилам, что и прямая подача.
func (s *ShelterService) Update(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID, in ShelterInput) (*models.Shelter, error) {
	if err := validateShelterInput(&in); err != nil {
		return nil, fmt.Errorf("shelter service: %w", err)
	}

	shelter, err := s.shelters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin {
		if err := s.authorizeOwner(ctx, user, shelter); err != nil {
			return nil, err
		}
	}

	shelter.Address = in.Address
	shelter.Lat = in.Lat
	shelter.Lng = in.Lng
	shelter.ShelterType = in.ShelterType
	shelter.ShelterTypeOther = in.ShelterTypeOther
	shelter.FloorNumber = in.FloorNumber
	shelter.AreaDescription = in.AreaDescription
	shelter.Directions = in.Directions
	shelter.StepFreeAccess = in.StepFreeAccess
	shelter.PathWidth = in.PathWidth
	shelter.DoorWidth = in.DoorWidth
	shelter.StairsCount = in.StairsCount
	shelter.HandrailsPresent = in.HandrailsPresent
	shelter.ManeuveringSpace = in.ManeuveringSpace
	shelter.ThresholdHeight = in.ThresholdHeight
	shelter.RampPresent = in.RampPresent
	shelter.NavigationSystem = in.NavigationSystem
	shelter.NavigationSystemOther = in.NavigationSystemOther
	shelter.AccessibilityAids = in.AccessibilityAids
	shelter.Photos = in.Photos

	if err := s.shelters.Update(ctx, shelter); err != nil {
		return nil, err
	}

	if in.BranchID != nil || in.OrganizationID != nil {
		if err := s.reassignOwnership(ctx, user, shelter, &in); err != nil {
			return nil, err
		}
	}

	if shelter.Status == models.ShelterStatusDraft && !in.Draft {
		ok, err := s.shelters.TransitionStatus(ctx, shelter.ID, models.ShelterStatusDraft, models.ShelterStatusPublished, nil)
		if err != nil {
			return nil, err
		}
		if ok {
			if err := s.shelters.SetVerified(ctx, shelter.ID, user.IsCoordinator); err != nil {
				return nil, err
			}
			shelter.Status = models.ShelterStatusPublished
			shelter.Verified = user.IsCoordinator
		}
	}

	if shelter.Status == models.ShelterStatusPublished {
		s.cache.Invalidate(ctx)
	}

	return shelter, nil
}

// Delete удаляет убежище. Доступно администратору и владельцу записи.
func (s *ShelterService) Delete(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) error {
	shelter, err := s.shelters.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if role != models.RoleAdmin {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.authorizeOwner(ctx, user, shelter); err != nil {
			return err
		}
	}

	if err := s.shelters.Delete(ctx, id); err != nil {
		return err
	}

	if shelter.Status == models.ShelterStatusPublished {
		s.cache.Invalidate(ctx)
	}

	return nil
}

// ListMine возвращает убежища организации пользователя.
func (s *ShelterService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Shelter, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.OrganizationID == nil {
		return []models.Shelter{}, nil
	}

	return s.shelters.ListByOrganization(ctx, *user.OrganizationID)
}

// ListByOrganization возвращает убежища организации с проверкой владения.
func (s *ShelterService) ListByOrganization(ctx context.Context, userID uuid.UUID, role string, orgID uuid.UUID) ([]models.Shelter, error) {
	if role != models.RoleAdmin {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.checkOrgOwnership(ctx, user, orgID); err != nil {
			return nil, err
		}
	}

	return s.shelters.ListByOrganization(ctx, orgID)
}

// ListByBranch возвращает убежища филиала с проверкой владения.
func (s *ShelterService) ListByBranch(ctx context.Context, userID uuid.UUID, role string, branchID uuid.UUID) ([]models.Shelter, error) {
	branch, err := s.branches.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	if role != models.RoleAdmin {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.checkOrgOwnership(ctx, user, branch.OrganizationID); err != nil {
			return nil, err
		}
	}

	return s.shelters.ListByBranch(ctx, branchID)
}

// Claim копирует публичное убежище как новый черновик под организацией
// координатора.
func (s *ShelterService) Claim(ctx context.Context, userID uuid.UUID, shelterID uuid.UUID) (*models.Shelter, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsCoordinator {
		return nil, apperror.ErrForbidden
	}
	if user.OrganizationID == nil {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "у пользователя нет организации")
	}

	source, err := s.shelters.GetByID(ctx, shelterID)
	if err != nil {
		return nil, err
	}
	if source.Status != models.ShelterStatusPublished {
		return nil, apperror.ErrShelterNotFound
	}

	clone := *source
	clone.ID = uuid.Nil
	clone.BranchID = nil
	clone.OrganizationID = user.OrganizationID
	clone.Status = models.ShelterStatusDraft
	clone.Verified = false
	clone.SubmittedBy = &user.Email
	clone.ReviewedBy = nil
	clone.ReviewedAt = nil
	clone.Rating = nil
	clone.RatingCount = 0

	if err := s.shelters.Create(ctx, &clone); err != nil {
		return nil, err
	}

	return &clone, nil
}

// reassignOwnership переносит убежище на другой филиал или организацию.
// Целевой владелец проверяется так же, как при подаче бизнес-формы.
func (s *ShelterService) reassignOwnership(ctx context.Context, user *models.User, shelter *models.Shelter, in *ShelterInput) error {
	if in.BranchID != nil && in.OrganizationID != nil {
		return fmt.Errorf("shelter service: требуется ровно одно из branch_id и organization_id")
	}

	var branchID, orgID *uuid.UUID
	if in.BranchID != nil {
		branch, err := s.branches.GetByID(ctx, *in.BranchID)
		if err != nil {
			return err
		}
		if err := s.checkOrgOwnership(ctx, user, branch.OrganizationID); err != nil {
			return err
		}
		branchID = in.BranchID
	} else {
		if err := s.checkOrgOwnership(ctx, user, *in.OrganizationID); err != nil {
			return err
		}
		orgID = in.OrganizationID
	}

	if err := s.shelters.SetOwnership(ctx, shelter.ID, branchID, orgID); err != nil {
		return err
	}
	shelter.BranchID = branchID
	shelter.OrganizationID = orgID

	return nil
}

// authorizeOwner проверяет, что убежище принадлежит организации пользователя.
func (s *ShelterService) authorizeOwner(ctx context.Context, user *models.User, shelter *models.Shelter) error {
	switch {
	case shelter.OrganizationID != nil:
		return s.checkOrgOwnership(ctx, user, *shelter.OrganizationID)
	case shelter.BranchID != nil:
		branch, err := s.branches.GetByID(ctx, *shelter.BranchID)
		if err != nil {
			return err
		}
		return s.checkOrgOwnership(ctx, user, branch.OrganizationID)
	default:
		// Запись без владельца редактирует только администратор
		return apperror.ErrForbidden
	}
}

// notifyNewPending отправляет администратору письмо о новой записи в очереди
// и рассылает событие подключённым модераторам.
func (s *ShelterService) notifyNewPending(shelter *models.Shelter) {
	if s.notifier != nil {
		s.notifier.NotifyQueue("shelters", shelter)
	}

	if s.mailer == nil || s.adminTo == "" {
		return
	}

	submittedBy := ""
	if shelter.SubmittedBy != nil {
		submittedBy = *shelter.SubmittedBy
	}
	address, shelterType := shelter.Address, shelter.ShelterType

	goroutine.SafeGo(func() {
		if err := s.mailer.Send(s.adminTo, mail.SubjectNewShelterPending, mail.NewShelterPendingBody(address, shelterType, submittedBy)); err != nil {
			logger.Log.WithError(err).Warn("shelter service: не удалось отправить письмо администратору")
		}
	})
}
