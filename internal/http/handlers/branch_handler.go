package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mugangish/shelter-backend/internal/http/handlers/common"
	"github.com/mugangish/shelter-backend/internal/service"
)

// BranchHandler предоставляет HTTP слой для филиалов организаций.
type BranchHandler struct {
	branches *service.BranchService
}

// NewBranchHandler создаёт хэндлер.
func NewBranchHandler(branches *service.BranchService) *BranchHandler {
	return &BranchHandler{branches: branches}
}

type branchRequest struct {
	Name             string  `json:"name" binding:"required"`
	Address          string  `json:"address" binding:"required"`
	CoordinatorName  *string `json:"coordinator_name"`
	CoordinatorEmail *string `json:"coordinator_email"`
	CoordinatorPhone *string `json:"coordinator_phone"`
}

func (r *branchRequest) toInput() service.BranchInput {
	return service.BranchInput{
		Name:             r.Name,
		Address:          r.Address,
		CoordinatorName:  r.CoordinatorName,
		CoordinatorEmail: r.CoordinatorEmail,
		CoordinatorPhone: r.CoordinatorPhone,
	}
}

// Create обрабатывает POST /organizations/:id/branches.
func (h *BranchHandler) Create(c *gin.Context) {
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

	var req branchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, _ := common.CurrentUserRole(c)
	branch, err := h.branches.Create(c.Request.Context(), userID, role, orgID, req.toInput())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"branch": branch})
}

// List обрабатывает GET /organizations/:id/branches.
func (h *BranchHandler) List(c *gin.Context) {
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
	branches, err := h.branches.List(c.Request.Context(), userID, role, orgID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

// Update обрабатывает PUT /branches/:id.
func (h *BranchHandler) Update(c *gin.Context) {
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

	var req branchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, _ := common.CurrentUserRole(c)
	branch, err := h.branches.Update(c.Request.Context(), userID, role, branchID, req.toInput())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"branch": branch})
}

// Delete обрабатывает DELETE /branches/:id.
func (h *BranchHandler) Delete(c *gin.Context) {
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
	if err := h.branches.Delete(c.Request.Context(), userID, role, branchID); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
