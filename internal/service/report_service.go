package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mugangish/shelter-backend/internal/models"
	"github.com/mugangish/shelter-backend/internal/pkg/apperror"
	"github.com/mugangish/shelter-backend/internal/validation"
)

// ReportModerationRepo описывает очередь модерации жалоб.
type ReportModerationRepo interface {
	Create(ctx context.Context, rep *models.ReportModeration) error
}

// PublishedReportRepo выдаёт подтверждённые жалобы.
type PublishedReportRepo interface {
	ListReports(ctx context.Context, shelterID uuid.UUID) ([]models.ShelterReport, error)
}

// ReportService принимает сообщения о проблемах с убежищами.
type ReportService struct {
	moderation ReportModerationRepo
	published  PublishedReportRepo
	shelters   ReviewShelterRepo
	notifier   QueueNotifier
}

// NewReportService создаёт сервис жалоб.
func NewReportService(moderation ReportModerationRepo, published PublishedReportRepo, shelters ReviewShelterRepo, notifier QueueNotifier) *ReportService {
	return &ReportService{
		moderation: moderation,
		published:  published,
		shelters:   shelters,
		notifier:   notifier,
	}
}

// ReportInput содержит данные формы жалобы.
type ReportInput struct {
	ReportType  string
	Details     string
	ContactInfo *string
}

// Submit ставит жалобу в очередь модерации.
func (s *ReportService) Submit(ctx context.Context, shelterID uuid.UUID, in ReportInput) (*models.ReportModeration, error) {
	if !models.ValidReportType(in.ReportType) {
		return nil, fmt.Errorf("report service: недопустимый тип жалобы: %s", in.ReportType)
	}
	if err := validation.ValidateReportDetails(in.Details); err != nil {
		return nil, fmt.Errorf("report service: %w", err)
	}

	shelter, err := s.shelters.GetByID(ctx, shelterID)
	if err != nil {
		return nil, err
	}
	if shelter.Status != models.ShelterStatusPublished {
		return nil, apperror.ErrShelterNotFound
	}

	report := &models.ReportModeration{
		ShelterID:   shelterID,
		ReportType:  in.ReportType,
		Details:     in.Details,
		ContactInfo: in.ContactInfo,
	}

	if err := s.moderation.Create(ctx, report); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyQueue("reports", report)
	}

	return report, nil
}

// ListPublished возвращает подтверждённые жалобы убежища.
func (s *ReportService) ListPublished(ctx context.Context, shelterID uuid.UUID) ([]models.ShelterReport, error) {
	return s.published.ListReports(ctx, shelterID)
}
