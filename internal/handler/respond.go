package handler

import (
	"errors"
	"net/http"

	"github.com/Baaaki/portfolio/internal/service"
	"github.com/Baaaki/portfolio/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to a status code and an {"error": ...}
// body. Unknown errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.Log.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error": message,
	})
}

func statusFor(err error) (int, string) {
	switch {
	case service.IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUsernameAlreadyExists):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrProjectNotFound):
		return http.StatusNotFound, "Project not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
