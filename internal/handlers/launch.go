package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/launchpad/internal/models"
	"github.com/pandeptwidyaop/launchpad/internal/services"
)

type LaunchHandler struct {
	launchService *services.LaunchService
	pathPrefix    string
}

func NewLaunchHandler(launchService *services.LaunchService, pathPrefix string) *LaunchHandler {
	return &LaunchHandler{
		launchService: launchService,
		pathPrefix:    pathPrefix,
	}
}

// Create accepts a launch and returns before the application is opened.
// POST /api/launch
func (h *LaunchHandler) Create(c *gin.Context) {
	var req models.LaunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	record, err := h.launchService.Launch(c.Request.Context(), req, originOf(c))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"id":         record.ID,
		"status":     record.Status,
		"stream_url": h.pathPrefix + "/api/launches/" + record.ID + "/stream",
	})
}

// Get returns the launch record.
// GET /api/launches/:id
func (h *LaunchHandler) Get(c *gin.Context) {
	record, err := h.launchService.Get(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}
