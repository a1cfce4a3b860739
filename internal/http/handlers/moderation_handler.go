package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mugangish/shelter-backend/internal/http/handlers/common"
	"github.com/mugangish/shelter-backend/internal/service"
)

// ModerationHandler предоставляет HTTP слой консоли модерации.
type ModerationHandler struct {
	moderation *service.ModerationService
}

// NewModerationHandler создаёт хэндлер.
func NewModerationHandler(moderation *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func adminContext(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return uuid.Nil, uuid.Nil, false
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return uuid.Nil, uuid.Nil, false
	}

	return adminID, id, true
}

// PendingShelters обрабатывает GET /admin/shelters/pending.
func (h *ModerationHandler) PendingShelters(c *gin.Context) {
	shelters, err := h.moderation.PendingShelters(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shelters": shelters})
}

// PendingVerifications обрабатывает GET /admin/verifications/pending.
func (h *ModerationHandler) PendingVerifications(c *gin.Context) {
	verifications, err := h.moderation.PendingVerifications(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verifications": verifications})
}

// PendingReviews обрабатывает GET /admin/reviews/pending.
func (h *ModerationHandler) PendingReviews(c *gin.Context) {
	reviews, err := h.moderation.PendingReviews(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// PendingReports обрабатывает GET /admin/reports/pending.
func (h *ModerationHandler) PendingReports(c *gin.Context) {
	reports, err := h.moderation.PendingReports(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// ApproveShelter обрабатывает POST /admin/shelters/:id/approve.
func (h *ModerationHandler) ApproveShelter(c *gin.Context) {
	adminID, id, ok := adminContext(c)
	if !ok {
		return
	}

	if err := h.moderation.ApproveShelter(c.Request.Context(), adminID, id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

// RejectShelter обрабатывает POST /admin/shelters/:id/reject.
func (h *ModerationHandler) RejectShelter(c *gin.Context) {
	adminID, id, ok := adminContext(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "причина отказа обязательна"})
		return
	}

	if err := h.moderation.RejectShelter(c.Request.Context(), adminID, id, req.Reason); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// ApproveVerification обрабатывает POST /admin/verifications/:id/approve.
func (h *ModerationHandler) ApproveVerification(c *gin.Context) {
	adminID, id, ok := adminContext(c)
	if !ok {
		return
	}

	if err := h.moderation.ApproveVerification(c.Request.Context(), adminID, id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

// RejectVerification обрабатывает POST /admin/verifications/:id/reject.
func (h *ModerationHandler) RejectVerification(c *gin.Context) {
	adminID, id, ok := adminContext(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "причина отказа обязательна"})
		return
	}

	if err := h.moderation.RejectVerification(c.Request.Context(), adminID, id, req.Reason); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// ApproveReview обрабатывает POST /admin/reviews/:id/approve.
func (h *ModerationHandler) ApproveReview(c *gin.Context) {
	adminID, id, ok := adminContext(c)
	if !ok {
		return
	}

	if err := h.moderation.ApproveReview(c.Request.Context(), adminID, id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

// RejectReview обрабатывает POST /admin/reviews/:id/reject.
func (h *ModerationHandler) RejectReview(c *gin.Context) {
	adminID, id, ok := adminContext(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "причина отказа обязательна"})
		return
	}

	if err := h.moderation.RejectReview(c.Request.Context(), adminID, id, req.Reason); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// ApproveReport обрабатывает POST /admin/reports/:id/approve.
func (h *ModerationHandler) ApproveReport(c *gin.Context) {
	adminID, id, ok := adminContext(c)
	if !ok {
		return
	}

	if err := h.moderation.ApproveReport(c.Request.Context(), adminID, id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

// RejectReport обрабатывает POST /admin/reports/:id/reject.
func (h *ModerationHandler) RejectReport(c *gin.Context) {
	adminID, id, ok := adminContext(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "причина отказа обязательна"})
		return
	}

	if err := h.moderation.RejectReport(c.Request.Context(), adminID, id, req.Reason); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}
