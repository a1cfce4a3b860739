package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mugangish/shelter-backend/internal/http/middleware"
)

func TestShelterHandler_Submit_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ShelterHandler{shelters: nil}
	r.POST("/shelters", handler.Submit)

	req, _ := http.NewRequest("POST", "/shelters", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShelterHandler_Get_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ShelterHandler{shelters: nil}
	r.GET("/shelters/:id", handler.Get)

	req, _ := http.NewRequest("GET", "/shelters/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShelterHandler_Update_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ShelterHandler{shelters: nil}
	r.PUT("/shelters/:id", handler.Update)

	req, _ := http.NewRequest("PUT", "/shelters/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestShelterHandler_Update_InvalidID_WithAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, uuid.New())
		c.Set(middleware.ContextRoleKey, "user")
		c.Next()
	})
	handler := &ShelterHandler{shelters: nil}
	r.PUT("/shelters/:id", handler.Update)

	req, _ := http.NewRequest("PUT", "/shelters/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShelterHandler_Delete_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ShelterHandler{shelters: nil}
	r.DELETE("/shelters/:id", handler.Delete)

	req, _ := http.NewRequest("DELETE", "/shelters/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSearchHandler_Search_MissingCoordinates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &SearchHandler{search: nil}
	r.GET("/shelters/search", handler.Search)

	req, _ := http.NewRequest("GET", "/shelters/search?lat=32.08", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandler_Geocode_MissingAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &SearchHandler{search: nil}
	r.GET("/geocode", handler.Geocode)

	req, _ := http.NewRequest("GET", "/geocode", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModerationHandler_RejectShelter_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ModerationHandler{moderation: nil}
	r.POST("/admin/shelters/:id/reject", handler.RejectShelter)

	req, _ := http.NewRequest("POST", "/admin/shelters/"+uuid.New().String()+"/reject", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestModerationHandler_RejectShelter_MissingReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, uuid.New())
		c.Set(middleware.ContextRoleKey, "admin")
		c.Next()
	})
	handler := &ModerationHandler{moderation: nil}
	r.POST("/admin/shelters/:id/reject", handler.RejectShelter)

	req, _ := http.NewRequest("POST", "/admin/shelters/"+uuid.New().String()+"/reject", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
