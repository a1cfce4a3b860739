package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mugangish/shelter-backend/internal/models"
	"github.com/mugangish/shelter-backend/internal/pkg/apperror"
)

type mockVerificationRepo struct {
	mock.Mock
}

func (m *mockVerificationRepo) Create(ctx context.Context, v *models.CoordinatorVerification) error {
	args := m.Called(ctx, v)
	if args.Error(0) == nil {
		v.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockVerificationRepo) HasPending(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func TestVerificationService_Submit(t *testing.T) {
	verifications := new(mockVerificationRepo)
	users := new(mockUserRepoForShelter)
	notifier := &fakeQueueNotifier{}
	svc := NewVerificationService(verifications, users, notifier)
	ctx := context.Background()

	userID := uuid.New()
	user := &models.User{ID: userID, Email: "applicant@example.com"}
	users.On("GetByID", ctx, userID).Return(user, nil)
	verifications.On("HasPending", ctx, userID).Return(false, nil)
	verifications.On("Create", ctx, mock.AnythingOfType("*models.CoordinatorVerification")).Return(nil)

	verification, err := svc.Submit(ctx, userID, VerificationInput{
		FullName:            "Дана Коэн",
		VerificationFileURL: "/media/docs/appointment.pdf",
	})
	assert.NoError(t, err)
	assert.Equal(t, userID, verification.UserID)
	assert.Equal(t, user.Email, verification.Email)
	assert.Equal(t, []string{"verifications"}, notifier.Queues())
}

func TestVerificationService_Submit_AlreadyCoordinator(t *testing.T) {
	verifications := new(mockVerificationRepo)
	users := new(mockUserRepoForShelter)
	svc := NewVerificationService(verifications, users, nil)
	ctx := context.Background()

	userID := uuid.New()
	users.On("GetByID", ctx, userID).Return(&models.User{ID: userID, IsCoordinator: true}, nil)

	_, err := svc.Submit(ctx, userID, VerificationInput{
		FullName:            "Дана Коэн",
		VerificationFileURL: "/media/docs/appointment.pdf",
	})
	assert.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestVerificationService_Submit_PendingExists(t *testing.T) {
	verifications := new(mockVerificationRepo)
	users := new(mockUserRepoForShelter)
	svc := NewVerificationService(verifications, users, nil)
	ctx := context.Background()

	userID := uuid.New()
	users.On("GetByID", ctx, userID).Return(&models.User{ID: userID}, nil)
	verifications.On("HasPending", ctx, userID).Return(true, nil)

	_, err := svc.Submit(ctx, userID, VerificationInput{
		FullName:            "Дана Коэн",
		VerificationFileURL: "/media/docs/appointment.pdf",
	})
	assert.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	verifications.AssertNotCalled(t, "Create", ctx, mock.Anything)
}

func TestVerificationService_Submit_MissingDocument(t *testing.T) {
	svc := NewVerificationService(new(mockVerificationRepo), new(mockUserRepoForShelter), nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, uuid.New(), VerificationInput{FullName: "Дана Коэн"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "документ")
}
