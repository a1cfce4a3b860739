package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mugangish/shelter-backend/internal/http/handlers/common"
	"github.com/mugangish/shelter-backend/internal/service"
)

// VerificationHandler предоставляет HTTP слой для заявок координаторов.
type VerificationHandler struct {
	verifications *service.VerificationService
}

// NewVerificationHandler создаёт хэндлер.
func NewVerificationHandler(verifications *service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verifications: verifications}
}

// Submit обрабатывает POST /verification.
func (h *VerificationHandler) Submit(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req struct {
		FullName            string `json:"full_name" binding:"required"`
		VerificationFileURL string `json:"verification_file_url" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verification, err := h.verifications.Submit(c.Request.Context(), userID, service.VerificationInput{
		FullName:            req.FullName,
		VerificationFileURL: req.VerificationFileURL,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"verification": verification})
}
