package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mugangish/shelter-backend/internal/http/handlers/common"
	"github.com/mugangish/shelter-backend/internal/service"
)

// OrganizationHandler предоставляет HTTP слой для организаций.
type OrganizationHandler struct {
	orgs *service.OrganizationService
}

// NewOrganizationHandler создаёт хэндлер.
func NewOrganizationHandler(orgs *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs}
}

type organizationRequest struct {
	Name             string  `json:"name" binding:"required"`
	Category         string  `json:"category" binding:"required"`
	WebsiteURL       *string `json:"website_url"`
	AccessibilityURL *string `json:"accessibility_url"`
	VerificationFile *string `json:"verification_file"`
}

func (r *organizationRequest) toInput() service.OrganizationInput {
	return service.OrganizationInput{
		Name:             r.Name,
		Category:         r.Category,
		WebsiteURL:       r.WebsiteURL,
		AccessibilityURL: r.AccessibilityURL,
		VerificationFile: r.VerificationFile,
	}
}

// Create обрабатывает POST /organizations.
func (h *OrganizationHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := h.orgs.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"organization": org})
}

// GetMine обрабатывает GET /organizations/my.
func (h *OrganizationHandler) GetMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	org, err := h.orgs.GetMine(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": org})
}

// Get обрабатывает GET /organizations/:id.
func (h *OrganizationHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	orgID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	role, _ := common.CurrentUserRole(c)
	org, err := h.orgs.Get(c.Request.Context(), userID, role, orgID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": org})
}

// Update обрабатывает PUT /organizations/:id.
func (h *OrganizationHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	orgID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, _ := common.CurrentUserRole(c)
	org, err := h.orgs.Update(c.Request.Context(), userID, role, orgID, req.toInput())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": org})
}
