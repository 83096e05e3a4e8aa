package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/launchpad/internal/services"
)

type AppHandler struct {
	appService   *services.AppService
	auditService *services.AuditService
}

func NewAppHandler(appService *services.AppService, auditService *services.AuditService) *AppHandler {
	return &AppHandler{
		appService:   appService,
		auditService: auditService,
	}
}

// List returns the installed applications.
// GET /api/apps
func (h *AppHandler) List(c *gin.Context) {
	apps, err := h.appService.List(c.Request.Context())
	h.auditService.LogListApps(originOf(c), len(apps), err)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"apps": apps})
}
