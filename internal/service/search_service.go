package service

import (
	"context"
	"sort"

	"github.com/mugangish/shelter-backend/internal/geo"
	"github.com/mugangish/shelter-backend/internal/models"
)

// PublishedLister выдаёт список опубликованных убежищ.
type PublishedLister interface {
	ListPublished(ctx context.Context) ([]models.Shelter, error)
}

// ShelterCache кэширует список опубликованных убежищ.
type ShelterCache interface {
	GetPublished(ctx context.Context) ([]models.Shelter, bool)
	SetPublished(ctx context.Context, shelters []models.Shelter)
}

// SearchService выполняет радиусный поиск убежищ с фильтрами доступности.
type SearchService struct {
	shelters PublishedLister
	cache    ShelterCache
	geocoder *geo.Geocoder
}

// NewSearchService создаёт сервис поиска.
func NewSearchService(shelters PublishedLister, cache ShelterCache, geocoder *geo.Geocoder) *SearchService {
	return &SearchService{
		shelters: shelters,
		cache:    cache,
		geocoder: geocoder,
	}
}

// SearchInput содержит параметры поиска.
type SearchInput struct {
	Lat              float64
	Lng              float64
	RadiusKm         float64
	StepFree         bool
	ManeuveringSpace bool
	Ramp             bool
	VerifiedOnly     bool
	MinRating        *float64
}

// Search возвращает опубликованные убежища в радиусе от точки,
// отсортированные по возрастанию расстояния. Записи без координат
// в радиусный поиск не попадают.
func (s *SearchService) Search(ctx context.Context, in SearchInput) ([]models.ShelterWithDistance, error) {
	radius := geo.ClampRadius(in.RadiusKm)

	shelters, err := s.loadPublished(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]models.ShelterWithDistance, 0)
	for _, shelter := range shelters {
		if shelter.Lat == nil || shelter.Lng == nil {
			continue
		}
		if !matchesFilters(&shelter, in) {
			continue
		}

		distance := geo.HaversineDistance(in.Lat, in.Lng, *shelter.Lat, *shelter.Lng)
		if distance > radius {
			continue
		}

		results = append(results, models.ShelterWithDistance{
			Shelter:    shelter,
			DistanceKm: distance,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	return results, nil
}

// Geocode переводит адрес в координаты через внешний геокодер.
func (s *SearchService) Geocode(ctx context.Context, address string) (*geo.GeocodeResult, error) {
	return s.geocoder.Forward(ctx, address)
}

// loadPublished читает опубликованные убежища из кэша, при промахе — из базы.
func (s *SearchService) loadPublished(ctx context.Context) ([]models.Shelter, error) {
	if s.cache != nil {
		if shelters, ok := s.cache.GetPublished(ctx); ok {
			return shelters, nil
		}
	}

	shelters, err := s.shelters.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetPublished(ctx, shelters)
	}

	return shelters, nil
}

func matchesFilters(shelter *models.Shelter, in SearchInput) bool {
	if in.StepFree && !shelter.StepFreeAccess {
		return false
	}
	if in.ManeuveringSpace && !shelter.ManeuveringSpace {
		return false
	}
	if in.Ramp && !shelter.RampPresent {
		return false
	}
	if in.VerifiedOnly && !shelter.Verified {
		return false
	}
	if in.MinRating != nil {
		if shelter.Rating == nil || *shelter.Rating < *in.MinRating {
			return false
		}
	}
	return true
}
