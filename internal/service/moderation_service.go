package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mugangish/shelter-backend/internal/goroutine"
	"github.com/mugangish/shelter-backend/internal/logger"
	"github.com/mugangish/shelter-backend/internal/mail"
	"github.com/mugangish/shelter-backend/internal/models"
	"github.com/mugangish/shelter-backend/internal/pkg/apperror"
	"github.com/mugangish/shelter-backend/internal/validation"
)

// ModerationShelterRepo описывает операции модерации над убежищами.
type ModerationShelterRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shelter, error)
	ListPendingReview(ctx context.Context) ([]models.Shelter, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to string, reviewedBy *uuid.UUID) (bool, error)
	DeleteIfStatus(ctx context.Context, id uuid.UUID, status string) (bool, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	RecalculateRating(ctx context.Context, id uuid.UUID) error
}

// ModerationVerificationRepo описывает очередь заявок координаторов.
type ModerationVerificationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.CoordinatorVerification, error)
	ListPending(ctx context.Context) ([]models.CoordinatorVerification, error)
	Resolve(ctx context.Context, id uuid.UUID, status string, reason *string, reviewedBy uuid.UUID) (bool, error)
}

// ModerationReviewRepo описывает очередь отзывов.
type ModerationReviewRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.ReviewModeration, error)
	ListPending(ctx context.Context) ([]models.ReviewModeration, error)
	Resolve(ctx context.Context, id uuid.UUID, status string, reason *string, reviewedBy uuid.UUID) (bool, error)
}

// ModerationReportRepo описывает очередь жалоб.
type ModerationReportRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.ReportModeration, error)
	ListPending(ctx context.Context) ([]models.ReportModeration, error)
	Resolve(ctx context.Context, id uuid.UUID, status string, reason *string, reviewedBy uuid.UUID) (bool, error)
}

// ModerationPublisher публикует одобренные отзывы и жалобы.
type ModerationPublisher interface {
	CreateReview(ctx context.Context, rev *models.ShelterReview) error
	CreateReport(ctx context.Context, rep *models.ShelterReport) error
}

// ModerationUserRepo выставляет пользователю статус координатора.
type ModerationUserRepo interface {
	SetCoordinator(ctx context.Context, id uuid.UUID) error
}

// ModerationService обрабатывает очереди модерации. Каждая запись проходит
// ровно один переход pending → approved/rejected; повторная попытка
// возвращает конфликт.
type ModerationService struct {
	shelters      ModerationShelterRepo
	verifications ModerationVerificationRepo
	reviews       ModerationReviewRepo
	reports       ModerationReportRepo
	publisher     ModerationPublisher
	users         ModerationUserRepo
	cache         CacheInvalidator
	mailer        mail.Mailer
}

// NewModerationService создаёт сервис модерации.
func NewModerationService(
	shelters ModerationShelterRepo,
	verifications ModerationVerificationRepo,
	reviews ModerationReviewRepo,
	reports ModerationReportRepo,
	publisher ModerationPublisher,
	users ModerationUserRepo,
	cache CacheInvalidator,
	mailer mail.Mailer,
) *ModerationService {
	return &ModerationService{
		shelters:      shelters,
		verifications: verifications,
		reviews:       reviews,
		reports:       reports,
		publisher:     publisher,
		users:         users,
		cache:         cache,
		mailer:        mailer,
	}
}

// PendingShelters возвращает очередь убежищ на модерацию.
func (s *ModerationService) PendingShelters(ctx context.Context) ([]models.Shelter, error) {
	return s.shelters.ListPendingReview(ctx)
}

// PendingVerifications возвращает очередь заявок координаторов.
func (s *ModerationService) PendingVerifications(ctx context.Context) ([]models.CoordinatorVerification, error) {
	return s.verifications.ListPending(ctx)
}

// PendingReviews возвращает очередь отзывов.
func (s *ModerationService) PendingReviews(ctx context.Context) ([]models.ReviewModeration, error) {
	return s.reviews.ListPending(ctx)
}

// PendingReports возвращает очередь жалоб.
func (s *ModerationService) PendingReports(ctx context.Context) ([]models.ReportModeration, error) {
	return s.reports.ListPending(ctx)
}

// ApproveShelter публикует убежище из очереди модерации.
func (s *ModerationService) ApproveShelter(ctx context.Context, adminID uuid.UUID, id uuid.UUID) error {
	shelter, err := s.shelters.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.shelters.TransitionStatus(ctx, id, models.ShelterStatusPendingReview, models.ShelterStatusPublished, &adminID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrAlreadyModerated
	}

	if err := s.shelters.SetVerified(ctx, id, true); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	s.sendMail(shelter.SubmittedBy, mail.SubjectShelterApproved, mail.ShelterApprovedBody(shelter.Address))

	return nil
}

// RejectShelter удаляет убежище из очереди модерации. Автору, если он
// оставил адрес, уходит ровно одно письмо с причиной отказа.
func (s *ModerationService) RejectShelter(ctx context.Context, adminID uuid.UUID, id uuid.UUID, reason string) error {
	if err := validation.ValidateRejectionReason(reason); err != nil {
		return fmt.Errorf("moderation service: %w", err)
	}

	shelter, err := s.shelters.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.shelters.DeleteIfStatus(ctx, id, models.ShelterStatusPendingReview)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrAlreadyModerated
	}

	s.sendMail(shelter.SubmittedBy, mail.SubjectShelterRejected, mail.ShelterRejectedBody(shelter.Address, reason))

	return nil
}

// ApproveVerification одобряет заявку и делает пользователя координатором.
func (s *ModerationService) ApproveVerification(ctx context.Context, adminID uuid.UUID, id uuid.UUID) error {
	verification, err := s.verifications.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.verifications.Resolve(ctx, id, models.ModerationStatusApproved, nil, adminID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrAlreadyModerated
	}

	if err := s.users.SetCoordinator(ctx, verification.UserID); err != nil {
		return err
	}

	s.sendMail(&verification.Email, mail.SubjectVerificationApproved, mail.VerificationApprovedBody(verification.FullName))

	return nil
}

// RejectVerification отклоняет заявку с указанием причины.
func (s *ModerationService) RejectVerification(ctx context.Context, adminID uuid.UUID, id uuid.UUID, reason string) error {
	if err := validation.ValidateRejectionReason(reason); err != nil {
		return fmt.Errorf("moderation service: %w", err)
	}

	verification, err := s.verifications.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.verifications.Resolve(ctx, id, models.ModerationStatusRejected, &reason, adminID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrAlreadyModerated
	}

	s.sendMail(&verification.Email, mail.SubjectVerificationRejected, mail.VerificationRejectedBody(verification.FullName, reason))

	return nil
}

// ApproveReview публикует отзыв и пересчитывает рейтинг убежища.
func (s *ModerationService) ApproveReview(ctx context.Context, adminID uuid.UUID, id uuid.UUID) error {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.reviews.Resolve(ctx, id, models.ModerationStatusApproved, nil, adminID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrAlreadyModerated
	}

	published := &models.ShelterReview{
		ShelterID:     review.ShelterID,
		Rating:        review.Rating,
		Comment:       review.Comment,
		ReporterEmail: review.ReporterEmail,
	}
	if err := s.publisher.CreateReview(ctx, published); err != nil {
		return err
	}
	if err := s.shelters.RecalculateRating(ctx, review.ShelterID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	s.sendMail(review.ReporterEmail, mail.SubjectReviewApproved, mail.ReviewApprovedBody())

	return nil
}

// RejectReview отклоняет отзыв с указанием причины.
func (s *ModerationService) RejectReview(ctx context.Context, adminID uuid.UUID, id uuid.UUID, reason string) error {
	if err := validation.ValidateRejectionReason(reason); err != nil {
		return fmt.Errorf("moderation service: %w", err)
	}

	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.reviews.Resolve(ctx, id, models.ModerationStatusRejected, &reason, adminID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrAlreadyModerated
	}

	s.sendMail(review.ReporterEmail, mail.SubjectReviewRejected, mail.ReviewRejectedBody(reason))

	return nil
}

// ApproveReport подтверждает жалобу и публикует её при карточке убежища.
func (s *ModerationService) ApproveReport(ctx context.Context, adminID uuid.UUID, id uuid.UUID) error {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.reports.Resolve(ctx, id, models.ModerationStatusApproved, nil, adminID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrAlreadyModerated
	}

	published := &models.ShelterReport{
		ShelterID:  report.ShelterID,
		ReportType: report.ReportType,
		Details:    report.Details,
	}
	if err := s.publisher.CreateReport(ctx, published); err != nil {
		return err
	}

	s.sendMail(contactEmail(report.ContactInfo), mail.SubjectReportApproved, mail.ReportApprovedBody())

	return nil
}

// RejectReport отклоняет жалобу с указанием причины.
func (s *ModerationService) RejectReport(ctx context.Context, adminID uuid.UUID, id uuid.UUID, reason string) error {
	if err := validation.ValidateRejectionReason(reason); err != nil {
		return fmt.Errorf("moderation service: %w", err)
	}

	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.reports.Resolve(ctx, id, models.ModerationStatusRejected, &reason, adminID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrAlreadyModerated
	}

	s.sendMail(contactEmail(report.ContactInfo), mail.SubjectReportRejected, mail.ReportRejectedBody(reason))

	return nil
}

// sendMail отправляет уведомление в фоне, если адрес получателя известен.
func (s *ModerationService) sendMail(to *string, subject, body string) {
	if s.mailer == nil || to == nil || *to == "" {
		return
	}

	recipient := *to
	goroutine.SafeGo(func() {
		if err := s.mailer.Send(recipient, subject, body); err != nil {
			logger.Log.WithFields(map[string]interface{}{
				"to":    recipient,
				"error": err.Error(),
			}).Warn("moderation service: не удалось отправить уведомление")
		}
	})
}

// contactEmail возвращает контакт жалобы, если он похож на email.
func contactEmail(contact *string) *string {
	if contact == nil || *contact == "" {
		return nil
	}
	if err := validation.ValidateEmail(*contact); err != nil {
		return nil
	}
	return contact
}
