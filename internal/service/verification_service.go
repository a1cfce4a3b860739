package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mugangish/shelter-backend/internal/models"
	"github.com/mugangish/shelter-backend/internal/pkg/apperror"
	"github.com/mugangish/shelter-backend/internal/validation"
)

// VerificationRepo описывает очередь заявок на статус координатора.
type VerificationRepo interface {
	Create(ctx context.Context, v *models.CoordinatorVerification) error
	HasPending(ctx context.Context, userID uuid.UUID) (bool, error)
}

// VerificationService принимает заявки на верификацию координаторов.
type VerificationService struct {
	verifications VerificationRepo
	users         ShelterUserRepo
	notifier      QueueNotifier
}

// NewVerificationService создаёт сервис верификации.
func NewVerificationService(verifications VerificationRepo, users ShelterUserRepo, notifier QueueNotifier) *VerificationService {
	return &VerificationService{
		verifications: verifications,
		users:         users,
		notifier:      notifier,
	}
}

// VerificationInput содержит данные заявки.
type VerificationInput struct {
	FullName            string
	VerificationFileURL string
}

// Submit создаёт заявку на статус координатора. Повторная подача при
// необработанной заявке запрещена; координаторы заявки не подают.
func (s *VerificationService) Submit(ctx context.Context, userID uuid.UUID, in VerificationInput) (*models.CoordinatorVerification, error) {
	if err := validation.ValidateFullName(in.FullName); err != nil {
		return nil, fmt.Errorf("verification service: %w", err)
	}
	if err := validation.ValidateNonEmpty("документ", in.VerificationFileURL); err != nil {
		return nil, fmt.Errorf("verification service: %w", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsCoordinator {
		return nil, apperror.New(apperror.ErrCodeConflict, "пользователь уже является координатором")
	}

	pending, err := s.verifications.HasPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperror.New(apperror.ErrCodeConflict, "заявка уже находится на рассмотрении")
	}

	verification := &models.CoordinatorVerification{
		UserID:              userID,
		Email:               user.Email,
		FullName:            in.FullName,
		VerificationFileURL: in.VerificationFileURL,
	}

	if err := s.verifications.Create(ctx, verification); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyQueue("verifications", verification)
	}

	return verification, nil
}
