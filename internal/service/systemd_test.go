package service_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pandeptwidyaop/launchpad/internal/service"
)

func TestGenerateUnitFile(t *testing.T) {
	content, err := service.GenerateUnitFile(service.Config{
		ExecPath:   "/usr/local/bin/launchpad",
		ConfigPath: "/home/me/.config/launchpad/launchpad.yaml",
		WorkingDir: "/home/me/.config/launchpad",
	})
	if err != nil {
		t.Fatalf("GenerateUnitFile() error = %v", err)
	}

	for _, want := range []string{
		"ExecStart=/usr/local/bin/launchpad serve --config /home/me/.config/launchpad/launchpad.yaml",
		"WorkingDirectory=/home/me/.config/launchpad",
		"WantedBy=graphical-session.target",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("unit file missing %q:\n%s", want, content)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := service.DefaultConfig("launchpad.yaml")
	if err != nil {
		t.Fatalf("DefaultConfig() error = %v", err)
	}

	if !filepath.IsAbs(cfg.ConfigPath) {
		t.Errorf("expected absolute config path, got %q", cfg.ConfigPath)
	}
	if cfg.WorkingDir != filepath.Dir(cfg.ConfigPath) {
		t.Errorf("expected working dir %q, got %q", filepath.Dir(cfg.ConfigPath), cfg.WorkingDir)
	}
	if cfg.ExecPath == "" {
		t.Error("expected executable path")
	}
}

func TestUnitPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := service.UnitPath()
	if err != nil {
		t.Fatalf("UnitPath() error = %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("systemd", "user", "launchpad.service")) {
		t.Errorf("unexpected unit path %q", path)
	}
}
