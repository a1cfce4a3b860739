package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mugangish/shelter-backend/internal/http/handlers/common"
	"github.com/mugangish/shelter-backend/internal/service"
)

// ShelterHandler предоставляет HTTP слой для записей убежищ.
type ShelterHandler struct {
	shelters *service.ShelterService
}

// NewShelterHandler создаёт хэндлер.
func NewShelterHandler(shelters *service.ShelterService) *ShelterHandler {
	return &ShelterHandler{shelters: shelters}
}

// shelterRequest — форма подачи и редактирования убежища.
type shelterRequest struct {
	FormType              string     `json:"form_type"`
	Address               string     `json:"address" binding:"required"`
	Lat                   *float64   `json:"lat"`
	Lng                   *float64   `json:"lng"`
	ShelterType           string     `json:"shelter_type" binding:"required"`
	ShelterTypeOther      *string    `json:"shelter_type_other"`
	FloorNumber           *int       `json:"floor_number"`
	AreaDescription       *string    `json:"area_description"`
	Directions            *string    `json:"directions"`
	StepFreeAccess        bool       `json:"step_free_access"`
	PathWidth             *float64   `json:"path_width"`
	DoorWidth             *float64   `json:"door_width"`
	StairsCount           *int       `json:"stairs_count"`
	HandrailsPresent      bool       `json:"handrails_present"`
	ManeuveringSpace      bool       `json:"maneuvering_space"`
	ThresholdHeight       *float64   `json:"threshold_height"`
	RampPresent           bool       `json:"ramp_present"`
	NavigationSystem      string     `json:"navigation_system"`
	NavigationSystemOther *string    `json:"navigation_system_other"`
	AccessibilityAids     []string   `json:"accessibility_aids"`
	Photos                []string   `json:"photos"`
	BranchID              *uuid.UUID `json:"branch_id"`
	OrganizationID        *uuid.UUID `json:"organization_id"`
	Draft                 bool       `json:"draft"`
	ContactEmail          *string    `json:"contact_email"`
}

func (r *shelterRequest) toInput() service.ShelterInput {
	return service.ShelterInput{
		FormType:              r.FormType,
		Address:               r.Address,
		Lat:                   r.Lat,
		Lng:                   r.Lng,
		ShelterType:           r.ShelterType,
		ShelterTypeOther:      r.ShelterTypeOther,
		FloorNumber:           r.FloorNumber,
		AreaDescription:       r.AreaDescription,
		Directions:            r.Directions,
		StepFreeAccess:        r.StepFreeAccess,
		PathWidth:             r.PathWidth,
		DoorWidth:             r.DoorWidth,
		StairsCount:           r.StairsCount,
		HandrailsPresent:      r.HandrailsPresent,
		ManeuveringSpace:      r.ManeuveringSpace,
		ThresholdHeight:       r.ThresholdHeight,
		RampPresent:           r.RampPresent,
		NavigationSystem:      r.NavigationSystem,
		NavigationSystemOther: r.NavigationSystemOther,
		AccessibilityAids:     r.AccessibilityAids,
		Photos:                r.Photos,
		BranchID:              r.BranchID,
		OrganizationID:        r.OrganizationID,
		Draft:                 r.Draft,
		ContactEmail:          r.ContactEmail,
	}
}

// Submit обрабатывает POST /shelters.
func (h *ShelterHandler) Submit(c *gin.Context) {
	var req shelterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shelter, err := h.shelters.Submit(c.Request.Context(), common.OptionalUserID(c), req.toInput())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"shelter": shelter})
}

// Get обрабатывает GET /shelters/:id.
func (h *ShelterHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	role, _ := common.CurrentUserRole(c)
	shelter, err := h.shelters.Get(c.Request.Context(), common.OptionalUserID(c), role, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shelter": shelter})
}

// Update обрабатывает PUT /shelters/:id.
func (h *ShelterHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req shelterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, _ := common.CurrentUserRole(c)
	shelter, err := h.shelters.Update(c.Request.Context(), userID, role, id, req.toInput())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shelter": shelter})
}

// Delete обрабатывает DELETE /shelters/:id.
func (h *ShelterHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	role, _ := common.CurrentUserRole(c)
	if err := h.shelters.Delete(c.Request.Context(), userID, role, id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMine обрабатывает GET /shelters/my.
func (h *ShelterHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	shelters, err := h.shelters.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shelters": shelters})
}

// ListByOrganization обрабатывает GET /organizations/:id/shelters.
func (h *ShelterHandler) ListByOrganization(c *gin.Context) {
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
	shelters, err := h.shelters.ListByOrganization(c.Request.Context(), userID, role, orgID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shelters": shelters})
}

// ListByBranch обрабатывает GET /branches/:id/shelters.
func (h *ShelterHandler) ListByBranch(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	branchID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	role, _ := common.CurrentUserRole(c)
	shelters, err := h.shelters.ListByBranch(c.Request.Context(), userID, role, branchID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shelters": shelters})
}

// Claim обрабатывает POST /shelters/:id/claim.
func (h *ShelterHandler) Claim(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	shelter, err := h.shelters.Claim(c.Request.Context(), userID, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"shelter": shelter})
}
