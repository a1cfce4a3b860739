package geo

import "math"

const earthRadiusKm = 6371.0

// Границы радиуса поиска в километрах.
const (
	MinSearchRadiusKm = 1.0
	MaxSearchRadiusKm = 20.0
)

// Координаты центра Израиля — дефолтная точка, когда геокодер недоступен.
const (
	DefaultCenterLat = 31.771959
	DefaultCenterLng = 35.217018
)

// HaversineDistance вычисляет расстояние между двумя точками в километрах.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidCoordinates проверяет валидность координат.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ClampRadius приводит радиус поиска к допустимому диапазону 1–20 км.
func ClampRadius(radiusKm float64) float64 {
	if radiusKm < MinSearchRadiusKm {
		return MinSearchRadiusKm
	}
	if radiusKm > MaxSearchRadiusKm {
		return MaxSearchRadiusKm
	}
	return radiusKm
}
