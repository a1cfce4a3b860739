package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mugangish/shelter-backend/internal/models"
)

type mockPublishedLister struct {
	mock.Mock
}

func (m *mockPublishedLister) ListPublished(ctx context.Context) ([]models.Shelter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Shelter), args.Error(1)
}

type fakeSearchCache struct {
	shelters []models.Shelter
	hit      bool
	setCalls int
}

func (c *fakeSearchCache) GetPublished(ctx context.Context) ([]models.Shelter, bool) {
	return c.shelters, c.hit
}

func (c *fakeSearchCache) SetPublished(ctx context.Context, shelters []models.Shelter) {
	c.shelters = shelters
	c.setCalls++
}

func ptrFloat(v float64) *float64 { return &v }

func publishedShelter(lat, lng float64) models.Shelter {
	return models.Shelter{
		ID:      uuid.New(),
		Address: "ул. Дизенгоф 50, Тель-Авив",
		Lat:     ptrFloat(lat),
		Lng:     ptrFloat(lng),
		Status:  models.ShelterStatusPublished,
	}
}

func TestSearchService_Search_SortsByDistance(t *testing.T) {
	repo := new(mockPublishedLister)
	svc := NewSearchService(repo, nil, nil)
	ctx := context.Background()

	far := publishedShelter(32.12, 34.78)  // ~4.4 км севернее
	near := publishedShelter(32.09, 34.78) // ~0.6 км севернее
	repo.On("ListPublished", ctx).Return([]models.Shelter{far, near}, nil)

	results, err := svc.Search(ctx, SearchInput{Lat: 32.0853, Lng: 34.78, RadiusKm: 10})
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, near.ID, results[0].ID)
	assert.Equal(t, far.ID, results[1].ID)
	assert.Less(t, results[0].DistanceKm, results[1].DistanceKm)
}

func TestSearchService_Search_ExcludesOutsideRadius(t *testing.T) {
	repo := new(mockPublishedLister)
	svc := NewSearchService(repo, nil, nil)
	ctx := context.Background()

	inside := publishedShelter(32.09, 34.78)
	outside := publishedShelter(32.50, 34.78) // ~46 км
	repo.On("ListPublished", ctx).Return([]models.Shelter{inside, outside}, nil)

	results, err := svc.Search(ctx, SearchInput{Lat: 32.0853, Lng: 34.78, RadiusKm: 5})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, inside.ID, results[0].ID)
}

func TestSearchService_Search_ClampsRadius(t *testing.T) {
	repo := new(mockPublishedLister)
	svc := NewSearchService(repo, nil, nil)
	ctx := context.Background()

	// ~46 км от точки поиска: за пределами максимума в 20 км
	distant := publishedShelter(32.50, 34.78)
	repo.On("ListPublished", ctx).Return([]models.Shelter{distant}, nil)

	results, err := svc.Search(ctx, SearchInput{Lat: 32.0853, Lng: 34.78, RadiusKm: 100})
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchService_Search_SkipsSheltersWithoutCoordinates(t *testing.T) {
	repo := new(mockPublishedLister)
	svc := NewSearchService(repo, nil, nil)
	ctx := context.Background()

	withCoords := publishedShelter(32.09, 34.78)
	withoutCoords := models.Shelter{ID: uuid.New(), Address: "адрес без координат", Status: models.ShelterStatusPublished}
	repo.On("ListPublished", ctx).Return([]models.Shelter{withCoords, withoutCoords}, nil)

	results, err := svc.Search(ctx, SearchInput{Lat: 32.0853, Lng: 34.78, RadiusKm: 10})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, withCoords.ID, results[0].ID)
}

func TestSearchService_Search_AccessibilityFilters(t *testing.T) {
	repo := new(mockPublishedLister)
	svc := NewSearchService(repo, nil, nil)
	ctx := context.Background()

	accessible := publishedShelter(32.09, 34.78)
	accessible.StepFreeAccess = true
	accessible.RampPresent = true
	plain := publishedShelter(32.091, 34.78)
	repo.On("ListPublished", ctx).Return([]models.Shelter{accessible, plain}, nil)

	results, err := svc.Search(ctx, SearchInput{
		Lat: 32.0853, Lng: 34.78, RadiusKm: 10,
		StepFree: true, Ramp: true,
	})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, accessible.ID, results[0].ID)
}

func TestSearchService_Search_VerifiedAndRatingFilters(t *testing.T) {
	repo := new(mockPublishedLister)
	svc := NewSearchService(repo, nil, nil)
	ctx := context.Background()

	verified := publishedShelter(32.09, 34.78)
	verified.Verified = true
	verified.Rating = ptrFloat(4.5)

	unrated := publishedShelter(32.091, 34.78)
	unrated.Verified = true

	lowRated := publishedShelter(32.092, 34.78)
	lowRated.Verified = true
	lowRated.Rating = ptrFloat(2.0)

	repo.On("ListPublished", ctx).Return([]models.Shelter{verified, unrated, lowRated}, nil)

	minRating := 4.0
	results, err := svc.Search(ctx, SearchInput{
		Lat: 32.0853, Lng: 34.78, RadiusKm: 10,
		VerifiedOnly: true, MinRating: &minRating,
	})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, verified.ID, results[0].ID)
}

func TestSearchService_Search_CacheHitSkipsRepository(t *testing.T) {
	repo := new(mockPublishedLister)
	cache := &fakeSearchCache{
		shelters: []models.Shelter{publishedShelter(32.09, 34.78)},
		hit:      true,
	}
	svc := NewSearchService(repo, cache, nil)
	ctx := context.Background()

	results, err := svc.Search(ctx, SearchInput{Lat: 32.0853, Lng: 34.78, RadiusKm: 10})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	repo.AssertNotCalled(t, "ListPublished", ctx)
}

func TestSearchService_Search_CacheMissPopulatesCache(t *testing.T) {
	repo := new(mockPublishedLister)
	cache := &fakeSearchCache{}
	svc := NewSearchService(repo, cache, nil)
	ctx := context.Background()

	shelters := []models.Shelter{publishedShelter(32.09, 34.78)}
	repo.On("ListPublished", ctx).Return(shelters, nil)

	_, err := svc.Search(ctx, SearchInput{Lat: 32.0853, Lng: 34.78, RadiusKm: 10})
	assert.NoError(t, err)
	assert.Equal(t, 1, cache.setCalls)
	assert.Len(t, cache.shelters, 1)
}
