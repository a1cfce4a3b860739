package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mugangish/shelter-backend/internal/mail"
	"github.com/mugangish/shelter-backend/internal/models"
	"github.com/mugangish/shelter-backend/internal/pkg/apperror"
)

type mockModerationShelterRepo struct {
	mock.Mock
}

func (m *mockModerationShelterRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Shelter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shelter), args.Error(1)
}

func (m *mockModerationShelterRepo) ListPendingReview(ctx context.Context) ([]models.Shelter, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Shelter), args.Error(1)
}

func (m *mockModerationShelterRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to string, reviewedBy *uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, from, to, reviewedBy)
	return args.Bool(0), args.Error(1)
}

func (m *mockModerationShelterRepo) DeleteIfStatus(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockModerationShelterRepo) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func (m *mockModerationShelterRepo) RecalculateRating(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockVerificationQueueRepo struct {
	mock.Mock
}

func (m *mockVerificationQueueRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CoordinatorVerification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CoordinatorVerification), args.Error(1)
}

func (m *mockVerificationQueueRepo) ListPending(ctx context.Context) ([]models.CoordinatorVerification, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CoordinatorVerification), args.Error(1)
}

func (m *mockVerificationQueueRepo) Resolve(ctx context.Context, id uuid.UUID, status string, reason *string, reviewedBy uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, status, reason, reviewedBy)
	return args.Bool(0), args.Error(1)
}

type mockReviewQueueRepo struct {
	mock.Mock
}

func (m *mockReviewQueueRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ReviewModeration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewModeration), args.Error(1)
}

func (m *mockReviewQueueRepo) ListPending(ctx context.Context) ([]models.ReviewModeration, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ReviewModeration), args.Error(1)
}

func (m *mockReviewQueueRepo) Resolve(ctx context.Context, id uuid.UUID, status string, reason *string, reviewedBy uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, status, reason, reviewedBy)
	return args.Bool(0), args.Error(1)
}

type mockReportQueueRepo struct {
	mock.Mock
}

func (m *mockReportQueueRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ReportModeration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReportModeration), args.Error(1)
}

func (m *mockReportQueueRepo) ListPending(ctx context.Context) ([]models.ReportModeration, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ReportModeration), args.Error(1)
}

func (m *mockReportQueueRepo) Resolve(ctx context.Context, id uuid.UUID, status string, reason *string, reviewedBy uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, status, reason, reviewedBy)
	return args.Bool(0), args.Error(1)
}

type mockModerationPublisher struct {
	mock.Mock
}

func (m *mockModerationPublisher) CreateReview(ctx context.Context, rev *models.ShelterReview) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}

func (m *mockModerationPublisher) CreateReport(ctx context.Context, rep *models.ShelterReport) error {
	args := m.Called(ctx, rep)
	return args.Error(0)
}

type mockUserRepoForModeration struct {
	mock.Mock
}

func (m *mockUserRepoForModeration) SetCoordinator(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type moderationFixture struct {
	shelters      *mockModerationShelterRepo
	verifications *mockVerificationQueueRepo
	reviews       *mockReviewQueueRepo
	reports       *mockReportQueueRepo
	publisher     *mockModerationPublisher
	users         *mockUserRepoForModeration
	cache         *fakeCacheInvalidator
	mailer        *fakeMailer
	svc           *ModerationService
}

func newModerationFixture() *moderationFixture {
	f := &moderationFixture{
		shelters:      new(mockModerationShelterRepo),
		verifications: new(mockVerificationQueueRepo),
		reviews:       new(mockReviewQueueRepo),
		reports:       new(mockReportQueueRepo),
		publisher:     new(mockModerationPublisher),
		users:         new(mockUserRepoForModeration),
		cache:         &fakeCacheInvalidator{},
		mailer:        &fakeMailer{},
	}
	f.svc = NewModerationService(
		f.shelters, f.verifications, f.reviews, f.reports,
		f.publisher, f.users, f.cache, f.mailer,
	)
	return f
}

func TestModerationService_ApproveShelter(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	adminID := uuid.New()
	shelterID := uuid.New()
	submittedBy := "author@example.com"
	pending := &models.Shelter{
		ID:          shelterID,
		Address:     "ул. Герцля 5, Хайфа",
		Status:      models.ShelterStatusPendingReview,
		SubmittedBy: &submittedBy,
	}

	f.shelters.On("GetByID", ctx, shelterID).Return(pending, nil)
	f.shelters.On("TransitionStatus", ctx, shelterID, models.ShelterStatusPendingReview, models.ShelterStatusPublished, &adminID).Return(true, nil)
	f.shelters.On("SetVerified", ctx, shelterID, true).Return(nil)

	err := f.svc.ApproveShelter(ctx, adminID, shelterID)
	assert.NoError(t, err)
	assert.Equal(t, 1, f.cache.calls)

	assert.Eventually(t, func() bool {
		return f.mailer.SendCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, submittedBy, f.mailer.LastSend().To)
	assert.Equal(t, mail.SubjectShelterApproved, f.mailer.LastSend().Subject)
}

func TestModerationService_ApproveShelter_SecondAttemptConflicts(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	adminID := uuid.New()
	shelterID := uuid.New()
	published := &models.Shelter{ID: shelterID, Status: models.ShelterStatusPublished}

	f.shelters.On("GetByID", ctx, shelterID).Return(published, nil)
	f.shelters.On("TransitionStatus", ctx, shelterID, models.ShelterStatusPendingReview, models.ShelterStatusPublished, &adminID).Return(false, nil)

	err := f.svc.ApproveShelter(ctx, adminID, shelterID)
	assert.ErrorIs(t, err, apperror.ErrAlreadyModerated)
	assert.Equal(t, 0, f.cache.calls)
	f.shelters.AssertNotCalled(t, "SetVerified", ctx, shelterID, true)
}

func TestModerationService_RejectShelter_RequiresReason(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	err := f.svc.RejectShelter(ctx, uuid.New(), uuid.New(), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "причина")
	f.shelters.AssertNotCalled(t, "DeleteIfStatus", ctx, mock.Anything, mock.Anything)
}

func TestModerationService_RejectShelter_SendsSingleMailWithReason(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	adminID := uuid.New()
	shelterID := uuid.New()
	submittedBy := "author@example.com"
	pending := &models.Shelter{
		ID:          shelterID,
		Address:     "ул. Бен-Гуриона 3, Беэр-Шева",
		Status:      models.ShelterStatusPendingReview,
		SubmittedBy: &submittedBy,
	}

	f.shelters.On("GetByID", ctx, shelterID).Return(pending, nil)
	f.shelters.On("DeleteIfStatus", ctx, shelterID, models.ShelterStatusPendingReview).Return(true, nil)

	reason := "адрес не существует"
	err := f.svc.RejectShelter(ctx, adminID, shelterID, reason)
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		return f.mailer.SendCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, submittedBy, f.mailer.LastSend().To)
	assert.Contains(t, f.mailer.LastSend().Body, reason)
}

func TestModerationService_RejectShelter_AnonymousNoMail(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	shelterID := uuid.New()
	pending := &models.Shelter{ID: shelterID, Status: models.ShelterStatusPendingReview}

	f.shelters.On("GetByID", ctx, shelterID).Return(pending, nil)
	f.shelters.On("DeleteIfStatus", ctx, shelterID, models.ShelterStatusPendingReview).Return(true, nil)

	err := f.svc.RejectShelter(ctx, uuid.New(), shelterID, "дубликат")
	assert.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, f.mailer.SendCount())
}

func TestModerationService_ApproveVerification(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	adminID := uuid.New()
	requestID := uuid.New()
	userID := uuid.New()
	verification := &models.CoordinatorVerification{
		ID:       requestID,
		UserID:   userID,
		Email:    "applicant@example.com",
		FullName: "Дана Коэн",
		Status:   models.ModerationStatusPending,
	}

	f.verifications.On("GetByID", ctx, requestID).Return(verification, nil)
	f.verifications.On("Resolve", ctx, requestID, models.ModerationStatusApproved, (*string)(nil), adminID).Return(true, nil)
	f.users.On("SetCoordinator", ctx, userID).Return(nil)

	err := f.svc.ApproveVerification(ctx, adminID, requestID)
	assert.NoError(t, err)
	f.users.AssertCalled(t, "SetCoordinator", ctx, userID)

	assert.Eventually(t, func() bool {
		return f.mailer.SendCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, verification.Email, f.mailer.LastSend().To)
}

func TestModerationService_RejectVerification_StoresReason(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	adminID := uuid.New()
	requestID := uuid.New()
	verification := &models.CoordinatorVerification{
		ID:     requestID,
		UserID: uuid.New(),
		Email:  "applicant@example.com",
		Status: models.ModerationStatusPending,
	}

	reason := "документ нечитаем"
	f.verifications.On("GetByID", ctx, requestID).Return(verification, nil)
	f.verifications.On("Resolve", ctx, requestID, models.ModerationStatusRejected, &reason, adminID).Return(true, nil)

	err := f.svc.RejectVerification(ctx, adminID, requestID, reason)
	assert.NoError(t, err)
	f.users.AssertNotCalled(t, "SetCoordinator", ctx, mock.Anything)
}

func TestModerationService_ApproveVerification_SecondAttemptConflicts(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	adminID := uuid.New()
	requestID := uuid.New()
	verification := &models.CoordinatorVerification{
		ID:     requestID,
		UserID: uuid.New(),
		Email:  "applicant@example.com",
		Status: models.ModerationStatusApproved,
	}

	f.verifications.On("GetByID", ctx, requestID).Return(verification, nil)
	f.verifications.On("Resolve", ctx, requestID, models.ModerationStatusApproved, (*string)(nil), adminID).Return(false, nil)

	err := f.svc.ApproveVerification(ctx, adminID, requestID)
	assert.ErrorIs(t, err, apperror.ErrAlreadyModerated)
	f.users.AssertNotCalled(t, "SetCoordinator", ctx, mock.Anything)
}

func TestModerationService_ApproveReview_PublishesAndRecalculates(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	adminID := uuid.New()
	reviewID := uuid.New()
	shelterID := uuid.New()
	comment := "чисто и доступно"
	review := &models.ReviewModeration{
		ID:        reviewID,
		ShelterID: shelterID,
		Rating:    5,
		Comment:   &comment,
		Status:    models.ModerationStatusPending,
	}

	f.reviews.On("GetByID", ctx, reviewID).Return(review, nil)
	f.reviews.On("Resolve", ctx, reviewID, models.ModerationStatusApproved, (*string)(nil), adminID).Return(true, nil)
	f.publisher.On("CreateReview", ctx, mock.MatchedBy(func(rev *models.ShelterReview) bool {
		return rev.ShelterID == shelterID && rev.Rating == 5
	})).Return(nil)
	f.shelters.On("RecalculateRating", ctx, shelterID).Return(nil)

	err := f.svc.ApproveReview(ctx, adminID, reviewID)
	assert.NoError(t, err)
	assert.Equal(t, 1, f.cache.calls)
	f.shelters.AssertCalled(t, "RecalculateRating", ctx, shelterID)
}

func TestModerationService_ApproveReport_MailsOnlyValidEmailContact(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	adminID := uuid.New()
	reportID := uuid.New()
	shelterID := uuid.New()
	phone := "+972-50-000-00-00"
	report := &models.ReportModeration{
		ID:          reportID,
		ShelterID:   shelterID,
		ReportType:  models.ReportTypeClosed,
		Details:     "вход завален",
		ContactInfo: &phone,
		Status:      models.ModerationStatusPending,
	}

	f.reports.On("GetByID", ctx, reportID).Return(report, nil)
	f.reports.On("Resolve", ctx, reportID, models.ModerationStatusApproved, (*string)(nil), adminID).Return(true, nil)
	f.publisher.On("CreateReport", ctx, mock.AnythingOfType("*models.ShelterReport")).Return(nil)

	err := f.svc.ApproveReport(ctx, adminID, reportID)
	assert.NoError(t, err)

	// телефон в contact_info — письмо не отправляется
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, f.mailer.SendCount())
}

func TestModerationService_PendingQueues(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	f.shelters.On("ListPendingReview", ctx).Return([]models.Shelter{{ID: uuid.New()}}, nil)
	f.verifications.On("ListPending", ctx).Return([]models.CoordinatorVerification{}, nil)
	f.reviews.On("ListPending", ctx).Return([]models.ReviewModeration{{ID: uuid.New()}, {ID: uuid.New()}}, nil)
	f.reports.On("ListPending", ctx).Return([]models.ReportModeration{}, nil)

	shelters, err := f.svc.PendingShelters(ctx)
	assert.NoError(t, err)
	assert.Len(t, shelters, 1)

	verifications, err := f.svc.PendingVerifications(ctx)
	assert.NoError(t, err)
	assert.Empty(t, verifications)

	reviews, err := f.svc.PendingReviews(ctx)
	assert.NoError(t, err)
	assert.Len(t, reviews, 2)

	reports, err := f.svc.PendingReports(ctx)
	assert.NoError(t, err)
	assert.Empty(t, reports)
}
