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

type mockReviewModerationRepo struct {
	mock.Mock
}

func (m *mockReviewModerationRepo) Create(ctx context.Context, rev *models.ReviewModeration) error {
	args := m.Called(ctx, rev)
	if args.Error(0) == nil {
		rev.ID = uuid.New()
	}
	return args.Error(0)
}

type mockPublishedReviewRepo struct {
	mock.Mock
}

func (m *mockPublishedReviewRepo) ListReviews(ctx context.Context, shelterID uuid.UUID) ([]models.ShelterReview, error) {
	args := m.Called(ctx, shelterID)
	return args.Get(0).([]models.ShelterReview), args.Error(1)
}

type mockShelterLookup struct {
	mock.Mock
}

func (m *mockShelterLookup) GetByID(ctx context.Context, id uuid.UUID) (*models.Shelter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shelter), args.Error(1)
}

func TestReviewService_Submit(t *testing.T) {
	moderation := new(mockReviewModerationRepo)
	published := new(mockPublishedReviewRepo)
	shelters := new(mockShelterLookup)
	notifier := &fakeQueueNotifier{}
	svc := NewReviewService(moderation, published, shelters, notifier)
	ctx := context.Background()

	shelterID := uuid.New()
	shelters.On("GetByID", ctx, shelterID).Return(&models.Shelter{ID: shelterID, Status: models.ShelterStatusPublished}, nil)
	moderation.On("Create", ctx, mock.AnythingOfType("*models.ReviewModeration")).Return(nil)

	comment := "доступно для коляски"
	review, err := svc.Submit(ctx, shelterID, ReviewInput{Rating: 4, Comment: &comment})
	assert.NoError(t, err)
	assert.Equal(t, shelterID, review.ShelterID)
	assert.Equal(t, []string{"reviews"}, notifier.Queues())
}

func TestReviewService_Submit_InvalidRating(t *testing.T) {
	svc := NewReviewService(new(mockReviewModerationRepo), new(mockPublishedReviewRepo), new(mockShelterLookup), nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, uuid.New(), ReviewInput{Rating: 0})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "рейтинг")

	_, err = svc.Submit(ctx, uuid.New(), ReviewInput{Rating: 6})
	assert.Error(t, err)
}

func TestReviewService_Submit_InvalidReporterEmail(t *testing.T) {
	svc := NewReviewService(new(mockReviewModerationRepo), new(mockPublishedReviewRepo), new(mockShelterLookup), nil)
	ctx := context.Background()

	badEmail := "not-an-email"
	_, err := svc.Submit(ctx, uuid.New(), ReviewInput{Rating: 5, ReporterEmail: &badEmail})
	assert.Error(t, err)
}

func TestReviewService_Submit_UnpublishedShelter(t *testing.T) {
	moderation := new(mockReviewModerationRepo)
	shelters := new(mockShelterLookup)
	svc := NewReviewService(moderation, new(mockPublishedReviewRepo), shelters, nil)
	ctx := context.Background()

	shelterID := uuid.New()
	shelters.On("GetByID", ctx, shelterID).Return(&models.Shelter{ID: shelterID, Status: models.ShelterStatusDraft}, nil)

	_, err := svc.Submit(ctx, shelterID, ReviewInput{Rating: 5})
	assert.ErrorIs(t, err, apperror.ErrShelterNotFound)
	moderation.AssertNotCalled(t, "Create", ctx, mock.Anything)
}

func TestReportService_Submit(t *testing.T) {
	moderation := new(mockReportModerationQueue)
	published := new(mockPublishedReportRepo)
	shelters := new(mockShelterLookup)
	notifier := &fakeQueueNotifier{}
	svc := NewReportService(moderation, published, shelters, notifier)
	ctx := context.Background()

	shelterID := uuid.New()
	shelters.On("GetByID", ctx, shelterID).Return(&models.Shelter{ID: shelterID, Status: models.ShelterStatusPublished}, nil)
	moderation.On("Create", ctx, mock.AnythingOfType("*models.ReportModeration")).Return(nil)

	report, err := svc.Submit(ctx, shelterID, ReportInput{
		ReportType: models.ReportTypeAccessIssue,
		Details:    "пандус перекрыт мусорными баками",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.ReportTypeAccessIssue, report.ReportType)
	assert.Equal(t, []string{"reports"}, notifier.Queues())
}

func TestReportService_Submit_InvalidType(t *testing.T) {
	svc := NewReportService(new(mockReportModerationQueue), new(mockPublishedReportRepo), new(mockShelterLookup), nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, uuid.New(), ReportInput{ReportType: "spam", Details: "текст жалобы"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "тип жалобы")
}

type mockReportModerationQueue struct {
	mock.Mock
}

func (m *mockReportModerationQueue) Create(ctx context.Context, rep *models.ReportModeration) error {
	args := m.Called(ctx, rep)
	if args.Error(0) == nil {
		rep.ID = uuid.New()
	}
	return args.Error(0)
}

type mockPublishedReportRepo struct {
	mock.Mock
}

func (m *mockPublishedReportRepo) ListReports(ctx context.Context, shelterID uuid.UUID) ([]models.ShelterReport, error) {
	args := m.Called(ctx, shelterID)
	return args.Get(0).([]models.ShelterReport), args.Error(1)
}
