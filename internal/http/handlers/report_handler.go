package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mugangish/shelter-backend/internal/http/handlers/common"
	"github.com/mugangish/shelter-backend/internal/service"
)

// ReportHandler предоставляет HTTP слой для жалоб на убежища.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler создаёт хэндлер.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Submit обрабатывает POST /shelters/:id/reports.
func (h *ReportHandler) Submit(c *gin.Context) {
	shelterID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		ReportType  string  `json:"report_type" binding:"required"`
		Details     string  `json:"details" binding:"required"`
		ContactInfo *string `json:"contact_info"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.Submit(c.Request.Context(), shelterID, service.ReportInput{
		ReportType:  req.ReportType,
		Details:     req.Details,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// List обрабатывает GET /shelters/:id/reports.
func (h *ReportHandler) List(c *gin.Context) {
	shelterID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	reports, err := h.reports.ListPublished(c.Request.Context(), shelterID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
