package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mugangish/shelter-backend/internal/http/handlers/common"
	"github.com/mugangish/shelter-backend/internal/service"
)

// SearchHandler предоставляет HTTP слой для поиска убежищ.
type SearchHandler struct {
	search *service.SearchService
}

// NewSearchHandler создаёт хэндлер.
func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Search обрабатывает GET /shelters/search.
func (h *SearchHandler) Search(c *gin.Context) {
	lat, latOK := common.ParseFloatQuery(c, "lat")
	lng, lngOK := common.ParseFloatQuery(c, "lng")
	if !latOK || !lngOK {
		common.RespondBadRequest(c, "параметры lat и lng обязательны")
		return
	}

	radius, _ := common.ParseFloatQuery(c, "radius_km")

	in := service.SearchInput{
		Lat:              lat,
		Lng:              lng,
		RadiusKm:         radius,
		StepFree:         common.ParseBoolQuery(c, "step_free"),
		ManeuveringSpace: common.ParseBoolQuery(c, "maneuvering_space"),
		Ramp:             common.ParseBoolQuery(c, "ramp"),
		VerifiedOnly:     common.ParseBoolQuery(c, "verified_only"),
	}

	if minRating, ok := common.ParseFloatQuery(c, "min_rating"); ok {
		in.MinRating = &minRating
	}

	results, err := h.search.Search(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shelters": results})
}

// Geocode обрабатывает GET /geocode.
func (h *SearchHandler) Geocode(c *gin.Context) {
	address := strings.TrimSpace(c.Query("address"))
	if address == "" {
		common.RespondBadRequest(c, "параметр address обязателен")
		return
	}

	result, err := h.search.Geocode(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "адрес не найден"})
		return
	}

	c.JSON(http.StatusOK, result)
}
