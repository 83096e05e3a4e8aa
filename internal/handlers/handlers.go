// Package handlers provides the gin handlers of the host API and the bridge WebSocket.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/launchpad/internal/directory"
	"github.com/pandeptwidyaop/launchpad/internal/services"
)

func originOf(c *gin.Context) services.Origin {
	return services.Origin{
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnknownApp), errors.Is(err, services.ErrLaunchNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, directory.ErrUnavailable), errors.Is(err, services.ErrShuttingDown):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
