package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pandeptwidyaop/launchpad/internal/database"
	"github.com/pandeptwidyaop/launchpad/internal/directory"
	"github.com/pandeptwidyaop/launchpad/internal/opener"
	"github.com/pandeptwidyaop/launchpad/internal/router"
	"github.com/pandeptwidyaop/launchpad/internal/service"
	"github.com/pandeptwidyaop/launchpad/internal/services"
	"github.com/pandeptwidyaop/launchpad/internal/surface"
	"github.com/pandeptwidyaop/launchpad/internal/version"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the host: list and open applications on behalf of launcher clients",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	authService := services.NewAuthService(cfg.Auth)
	if !authService.Configured() {
		logger.Error("auth.token_hash is not configured",
			zap.String("hint", "generate a token with: launchpad hash-token --generate"))
		return errors.New("startup aborted: a bridge token is required")
	}
	if cfg.Auth.AllowAnonymous {
		logger.Warn("anonymous access is enabled; any local process can open applications")
	}

	var auditService *services.AuditService
	if cfg.Audit.IsEnabled() {
		db, err := database.New(cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("failed to open audit database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("error closing database", zap.Error(err))
			}
		}()

		if err := db.Migrate(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		auditService = services.NewAuditService(db, logger)
	}

	op, err := opener.NewExec(cfg.Launch.Command)
	if err != nil {
		return fmt.Errorf("invalid launch.command: %w", err)
	}

	appService := services.NewAppService(directory.New(cfg.Directory), logger)
	launchService := services.NewLaunchService(cfg.Launch, appService, op, auditService, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	closed := make(chan struct{})
	s := surface.New(func() {
		logger.Info("surface closed")
		if cfg.Server.ExitOnClose {
			close(closed)
		}
	})

	gin.SetMode(gin.ReleaseMode)
	r := router.New(cfg, logger, authService, appService, launchService, auditService, s)

	addr := net.JoinHostPort(cfg.Server.Host, fmt.Sprint(cfg.Server.Port))
	if ip := net.ParseIP(cfg.Server.Host); ip == nil || !ip.IsLoopback() {
		logger.Warn("host is reachable from the network", zap.String("addr", addr))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		logger.Info("launchpad host starting",
			zap.String("version", version.Version),
			zap.String("addr", addr),
			zap.Strings("directories", append(cfg.Directory.Paths, cfg.Directory.OptionalPaths...)),
			zap.Strings("open_command", cfg.Launch.Command),
			zap.Bool("systemd", service.RunningAsService()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down", zap.String("reason", "signal"))
	case <-closed:
		logger.Info("shutting down", zap.String("reason", "surface closed"))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	if err := launchService.Shutdown(shutdownCtx); err != nil {
		logger.Warn("launches still running at shutdown", zap.Error(err))
	}
	return nil
}
