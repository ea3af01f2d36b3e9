package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-drop-api/internal/domain/errs"
)

func statusFromErr(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrFileExpired):
		return http.StatusGone
	case errors.Is(err, errs.ErrInsufficientCapacity):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errs.ErrSingletonViolation):
		return http.StatusConflict
	case errors.Is(err, errs.ErrNoConfig):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondErr maps a service error to its status. Internal detail is only
// logged for 5xx responses, never sent to the client.
func respondErr(c *gin.Context, logger *zap.Logger, op string, err error) {
	status := statusFromErr(err)
	if status >= http.StatusInternalServerError {
		logger.Error(op+" error", zap.Error(err))
		c.JSON(status, gin.H{"error": http.StatusText(status)})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
