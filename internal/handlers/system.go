package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/launchpad/internal/config"
	"github.com/pandeptwidyaop/launchpad/internal/metrics"
	"github.com/pandeptwidyaop/launchpad/internal/surface"
	"github.com/pandeptwidyaop/launchpad/internal/version"
)

// SystemHandler reports what the host runs on and how it opens applications.
type SystemHandler struct {
	cfg     *config.Config
	surface *surface.Surface
}

// NewSystemHandler creates a new SystemHandler instance.
func NewSystemHandler(cfg *config.Config, s *surface.Surface) *SystemHandler {
	return &SystemHandler{cfg: cfg, surface: s}
}

// SystemStatus represents the system status response.
type SystemStatus struct {
	Host           *metrics.HostInfo `json:"host"`
	Surface        surface.Snapshot  `json:"surface"`
	CurrentVersion string            `json:"current_version"`
	Suffix         string            `json:"suffix"`
	Directories    []string          `json:"directories"`
	OpenCommand    []string          `json:"open_command"`
	RequireKnown   bool              `json:"require_known"`
}

// Status returns the current system status.
// GET /api/system
func (h *SystemHandler) Status(c *gin.Context) {
	info, err := metrics.GetHostInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dirs := append(append([]string(nil), h.cfg.Directory.Paths...), h.cfg.Directory.OptionalPaths...)

	c.JSON(http.StatusOK, SystemStatus{
		Host:           info,
		Surface:        h.surface.Snapshot(),
		CurrentVersion: version.Version,
		Suffix:         h.cfg.Directory.Suffix,
		Directories:    dirs,
		OpenCommand:    h.cfg.Launch.Command,
		RequireKnown:   h.cfg.Launch.IsRequireKnown(),
	})
}
