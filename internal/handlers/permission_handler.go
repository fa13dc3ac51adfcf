package handlers

import (
	"net/http"

	"clinica-api/internal/middleware"
	"clinica-api/internal/models"
	"clinica-api/internal/services"
	"clinica-api/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PermissionHandler struct {
	perms *services.PermissionService
}

func NewPermissionHandler(perms *services.PermissionService) *PermissionHandler {
	return &PermissionHandler{perms: perms}
}

// GetByUser returns the stored permission records for a user. Users may
// read their own grants; reading another user's requires the
// administrator role (enforced here since the target comes from a query
// parameter, not the route group).
func (h *PermissionHandler) GetByUser(c *gin.Context) {
	callerID, role, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errors.ErrorResponse{
			Error:   errors.ErrUnauthorized.Code,
			Message: "User not authenticated",
		})
		return
	}

	targetID := callerID
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			respondValidation(c, "Invalid user_id")
			return
		}
		targetID = parsed
	}

	if targetID != callerID && !role.IsAdmin() {
		c.JSON(http.StatusForbidden, errors.ErrorResponse{
			Error:   errors.ErrForbidden.Code,
			Message: "Only administrators may read other users' permissions",
		})
		return
	}

	records, err := h.perms.RecordsForUser(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PermissionsResponse{
		Success: true,
		Data:    records,
	})
}

// BulkUpdate replaces a user's entire grant set in one transaction.
func (h *PermissionHandler) BulkUpdate(c *gin.Context) {
	var req models.BulkUpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	if err := h.perms.BulkUpdate(c.Request.Context(), req.UserID, req.Permisos); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BulkUpdatePermissionsResponse{Success: true})
}

// Modules returns the navigation modules visible to the caller.
func (h *PermissionHandler) Modules(c *gin.Context) {
	userID, role, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errors.ErrorResponse{
			Error:   errors.ErrUnauthorized.Code,
			Message: "User not authenticated",
		})
		return
	}

	modules, err := h.perms.VisibleModules(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.VisibleModulesResponse{
		Success: true,
		Modules: modules,
	})
}
