package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mugangish/shelter-backend/internal/http/handlers/common"
	"github.com/mugangish/shelter-backend/internal/service"
)

// ReviewHandler предоставляет HTTP слой для отзывов об убежищах.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler создаёт хэндлер.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Submit обрабатывает POST /shelters/:id/reviews.
func (h *ReviewHandler) Submit(c *gin.Context) {
	shelterID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Rating        int     `json:"rating" binding:"required"`
		Comment       *string `json:"comment"`
		ReporterEmail *string `json:"reporter_email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviews.Submit(c.Request.Context(), shelterID, service.ReviewInput{
		Rating:        req.Rating,
		Comment:       req.Comment,
		ReporterEmail: req.ReporterEmail,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// List обрабатывает GET /shelters/:id/reviews.
func (h *ReviewHandler) List(c *gin.Context) {
	shelterID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	reviews, err := h.reviews.ListPublished(c.Request.Context(), shelterID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
