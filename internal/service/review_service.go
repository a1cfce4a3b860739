package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mugangish/shelter-backend/internal/models"
	"github.com/mugangish/shelter-backend/internal/pkg/apperror"
	"github.com/mugangish/shelter-backend/internal/validation"
)

// ReviewModerationRepo описывает очередь модерации отзывов.
type ReviewModerationRepo interface {
	Create(ctx context.Context, rev *models.ReviewModeration) error
}

// PublishedReviewRepo выдаёт опубликованные отзывы.
type PublishedReviewRepo interface {
	ListReviews(ctx context.Context, shelterID uuid.UUID) ([]models.ShelterReview, error)
}

// ReviewShelterRepo выдаёт убежища для проверки существования.
type ReviewShelterRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shelter, error)
}

// ReviewService принимает отзывы об убежищах. Отзыв публикуется только
// после одобрения модератором.
type ReviewService struct {
	moderation ReviewModerationRepo
	published  PublishedReviewRepo
	shelters   ReviewShelterRepo
	notifier   QueueNotifier
}

// NewReviewService создаёт сервис отзывов.
func NewReviewService(moderation ReviewModerationRepo, published PublishedReviewRepo, shelters ReviewShelterRepo, notifier QueueNotifier) *ReviewService {
	return &ReviewService{
		moderation: moderation,
		published:  published,
		shelters:   shelters,
		notifier:   notifier,
	}
}

// ReviewInput содержит данные формы отзыва.
type ReviewInput struct {
	Rating        int
	Comment       *string
	ReporterEmail *string
}

// Submit ставит отзыв в очередь модерации.
func (s *ReviewService) Submit(ctx context.Context, shelterID uuid.UUID, in ReviewInput) (*models.ReviewModeration, error) {
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, fmt.Errorf("review service: %w", err)
	}
	if err := validation.ValidateComment(in.Comment); err != nil {
		return nil, fmt.Errorf("review service: %w", err)
	}
	if in.ReporterEmail != nil && *in.ReporterEmail != "" {
		if err := validation.ValidateEmail(*in.ReporterEmail); err != nil {
			return nil, fmt.Errorf("review service: %w", err)
		}
	}

	shelter, err := s.shelters.GetByID(ctx, shelterID)
	if err != nil {
		return nil, err
	}
	if shelter.Status != models.ShelterStatusPublished {
		return nil, apperror.ErrShelterNotFound
	}

	review := &models.ReviewModeration{
		ShelterID:     shelterID,
		Rating:        in.Rating,
		Comment:       in.Comment,
		ReporterEmail: in.ReporterEmail,
	}

	if err := s.moderation.Create(ctx, review); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyQueue("reviews", review)
	}

	return review, nil
}

// ListPublished возвращает опубликованные отзывы убежища.
func (s *ReviewService) ListPublished(ctx context.Context, shelterID uuid.UUID) ([]models.ShelterReview, error) {
	return s.published.ListReviews(ctx, shelterID)
}
