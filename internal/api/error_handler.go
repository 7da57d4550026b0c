package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/workflow"
)

// HandleError maps a workflow or persistence error onto the uniform
// error envelope.
func HandleError(c *gin.Context, err error) {
	switch {
	case workflow.IsValidation(err):
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, workflow.ErrUnauthorized):
		Error(c, http.StatusUnauthorized, "authentication required", err.Error())
	case errors.Is(err, workflow.ErrForbidden):
		Error(c, http.StatusForbidden, "operation not permitted", err.Error())
	case errors.Is(err, workflow.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		Error(c, http.StatusNotFound, "resource not found", err.Error())
	case errors.Is(err, workflow.ErrConflict):
		Error(c, http.StatusConflict, "document state changed concurrently", err.Error())
	case errors.Is(err, workflow.ErrTerminal):
		Error(c, http.StatusConflict, "document already finalized", err.Error())
	default:
		Error(c, http.StatusInternalServerError, "internal server error", err.Error())
	}
}
