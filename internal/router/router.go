// Package router wires the host HTTP API.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pandeptwidyaop/launchpad/internal/config"
	"github.com/pandeptwidyaop/launchpad/internal/handlers"
	"github.com/pandeptwidyaop/launchpad/internal/middleware"
	"github.com/pandeptwidyaop/launchpad/internal/services"
	"github.com/pandeptwidyaop/launchpad/internal/surface"
)

func New(
	cfg *config.Config,
	logger *zap.Logger,
	authService *services.AuthService,
	appService *services.AppService,
	launchService *services.LaunchService,
	auditService *services.AuditService,
	s *surface.Surface,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())

	appHandler := handlers.NewAppHandler(appService, auditService)
	launchHandler := handlers.NewLaunchHandler(launchService, cfg.Server.PathPrefix)
	streamHandler := handlers.NewStreamHandler(launchService)
	bridgeHandler := handlers.NewBridgeHandler(appService, launchService, auditService, s, logger)
	systemHandler := handlers.NewSystemHandler(cfg, s)
	auditHandler := handlers.NewAuditHandler(auditService)

	api := r.Group(cfg.Server.PathPrefix + "/api")
	{
		// Public version endpoint
		api.GET("/version", handlers.Version)

		protected := api.Group("")
		protected.Use(middleware.TokenRequired(authService))
		{
			protected.GET("/apps", appHandler.List)
			protected.POST("/launch", middleware.LaunchBodyLimit(cfg.Launch.MaxNameLength), launchHandler.Create)
			protected.GET("/launches/:id", launchHandler.Get)
			protected.GET("/launches/:id/stream", streamHandler.Stream)
			protected.GET("/bridge", bridgeHandler.HandleWebSocket)
			protected.GET("/system", systemHandler.Status)
			protected.GET("/audit", auditHandler.List)
		}
	}

	return r
}
