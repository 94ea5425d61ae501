package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/whuang/family-budget-server/internal/errs"
	"github.com/whuang/family-budget-server/internal/models"
)

// handleError maps service errors to HTTP responses. Typed errors carry their
// message to the caller; anything else is logged and returned as a generic
// internal error so driver details never leak.
func handleError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *errs.ValidationError:
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", e.Message)
	case *errs.AuthError:
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", e.Message)
	case *errs.NotFoundError:
		writeError(c, http.StatusNotFound, "NOT_FOUND", e.Message)
	case *errs.ConflictError:
		writeError(c, http.StatusConflict, "CONFLICT", e.Message)
	default:
		slog.Error("internal error", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}
