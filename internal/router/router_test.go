package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pandeptwidyaop/launchpad/internal/config"
	"github.com/pandeptwidyaop/launchpad/internal/opener"
	"github.com/pandeptwidyaop/launchpad/internal/router"
	"github.com/pandeptwidyaop/launchpad/internal/services"
	"github.com/pandeptwidyaop/launchpad/internal/surface"
)

type apps []string

func (a apps) List(context.Context) ([]string, error) { return a, nil }

func setupRouter(t *testing.T, prefix string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := services.HashToken("secret")
	if err != nil {
		t.Fatalf("HashToken() error = %v", err)
	}

	cfg := config.Default()
	cfg.Server.PathPrefix = prefix
	cfg.Auth.TokenHash = hash

	logger := zap.NewNop()
	appService := services.NewAppService(apps{"Mail"}, logger)
	launchService := services.NewLaunchService(cfg.Launch, appService,
		opener.Func(func(context.Context, string) error { return nil }), nil, logger)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = launchService.Shutdown(ctx)
	})

	return router.New(cfg, logger, services.NewAuthService(cfg.Auth), appService, launchService, nil, surface.New(nil))
}

func TestRouter_Routes(t *testing.T) {
	r := setupRouter(t, "/launchpad")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"version is public", http.MethodGet, "/launchpad/api/version", "", http.StatusOK},
		{"apps need token", http.MethodGet, "/launchpad/api/apps", "", http.StatusUnauthorized},
		{"apps with token", http.MethodGet, "/launchpad/api/apps", "secret", http.StatusOK},
		{"audit with token", http.MethodGet, "/launchpad/api/audit", "secret", http.StatusOK},
		{"bridge needs token", http.MethodGet, "/launchpad/api/bridge", "", http.StatusUnauthorized},
		{"prefix is required", http.MethodGet, "/api/apps", "secret", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}
