package handlers

import (
	"net/http"

	"clinica-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

// respondError translates an error into the common JSON error shape.
// AppErrors carry their own status and code; anything else becomes a
// generic 500.
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		c.JSON(appErr.Status, errors.ErrorResponse{
			Error:   appErr.Code,
			Message: appErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, errors.ErrorResponse{
		Error:   errors.ErrInternalServer.Code,
		Message: "Internal server error",
	})
}

func respondValidation(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errors.ErrorResponse{
		Error:   errors.ErrValidation.Code,
		Message: message,
	})
}
