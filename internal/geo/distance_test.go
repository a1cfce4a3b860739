package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance_KnownPoints(t *testing.T) {
	// Иерусалим — Тель-Авив, около 54 км по прямой
	distance := HaversineDistance(31.771959, 35.217018, 32.085300, 34.781768)
	assert.InDelta(t, 54.0, distance, 2.0)
}

func TestHaversineDistance_SamePoint(t *testing.T) {
	distance := HaversineDistance(32.0853, 34.7818, 32.0853, 34.7818)
	assert.Equal(t, 0.0, distance)
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	d1 := HaversineDistance(31.25, 34.79, 32.79, 34.99)
	d2 := HaversineDistance(32.79, 34.99, 31.25, 34.79)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestHaversineDistance_ShortDistance(t *testing.T) {
	// ~1.11 км на градус 0.01 широты
	distance := HaversineDistance(32.08, 34.78, 32.09, 34.78)
	assert.InDelta(t, 1.11, distance, 0.05)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(31.77, 35.21))
	assert.True(t, ValidCoordinates(-90, -180))
	assert.True(t, ValidCoordinates(90, 180))
	assert.False(t, ValidCoordinates(90.1, 35.21))
	assert.False(t, ValidCoordinates(-90.1, 35.21))
	assert.False(t, ValidCoordinates(31.77, 180.1))
	assert.False(t, ValidCoordinates(31.77, -180.1))
}

func TestClampRadius(t *testing.T) {
	assert.Equal(t, MinSearchRadiusKm, ClampRadius(0))
	assert.Equal(t, MinSearchRadiusKm, ClampRadius(-5))
	assert.Equal(t, MinSearchRadiusKm, ClampRadius(0.5))
	assert.Equal(t, 5.0, ClampRadius(5))
	assert.Equal(t, MaxSearchRadiusKm, ClampRadius(20))
	assert.Equal(t, MaxSearchRadiusKm, ClampRadius(100))
}
