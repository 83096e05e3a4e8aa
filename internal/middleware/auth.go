// Package middleware provides HTTP middleware for token authentication, logging and request limits.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/launchpad/internal/services"
)

// TokenQueryParam carries the bridge token on WebSocket upgrades,
// where browsers cannot set an Authorization header.
const TokenQueryParam = "token"

// TokenRequired is a middleware that requires the shared bridge token.
func TokenRequired(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := authService.Verify(bearerToken(c))
		if err == nil {
			c.Next()
			return
		}

		msg := "unauthorized"
		if errors.Is(err, services.ErrNoToken) {
			msg = "host has no token configured"
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
		c.Abort()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if c.IsWebsocket() {
		return c.Query(TokenQueryParam)
	}
	return ""
}
