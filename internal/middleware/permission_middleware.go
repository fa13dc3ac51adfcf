package middleware

import (
	"net/http"

	"clinica-api/internal/permissions"
	"clinica-api/internal/services"
	"clinica-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

type PermissionMiddleware struct {
	perms *services.PermissionService
}

func NewPermissionMiddleware(perms *services.PermissionService) *PermissionMiddleware {
	return &PermissionMiddleware{perms: perms}
}

// RequireCapability checks that the authenticated user holds a
// capability on a backend model. Administrators pass through the
// synthesized full-access map, so no fetch happens for them. A fetch
// failure is reported as such, never as a silent deny that would look
// like a missing grant.
func (m *PermissionMiddleware) RequireCapability(model string, capability permissions.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := SessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, errors.ErrorResponse{
				Error:   errors.ErrUnauthorized.Code,
				Message: "User not authenticated",
			})
			c.Abort()
			return
		}

		permMap, err := m.perms.MapForUser(c.Request.Context(), userID, role)
		if err != nil {
			c.JSON(errors.ErrFetchFailed.Status, errors.ErrorResponse{
				Error:   errors.ErrFetchFailed.Code,
				Message: "Failed to check permissions",
			})
			c.Abort()
			return
		}

		if !permissions.Can(permMap, model, capability) {
			c.JSON(http.StatusForbidden, errors.ErrorResponse{
				Error:   errors.ErrForbidden.Code,
				Message: "You do not have permission to perform this action",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
