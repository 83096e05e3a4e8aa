package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "launchpad.yaml")
	configContent := `
server:
  host: "0.0.0.0"
  port: 9090
  path_prefix: "/launchpad"
  exit_on_close: true

auth:
  token_hash: "$2a$10$abcdefghijklmnopqrstuv"

directory:
  paths: ["/Applications", "/System/Applications"]
  optional_paths: ["~/Applications"]
  suffix: ".app"

launch:
  command: ["open", "-a"]
  timeout: "5s"
  require_known: false
  max_name_length: 64
  history_size: 10

voice:
  command: ["whisper-once", "--model", "tiny"]
  timeout: "20s"

audit:
  enabled: false
  path: "/tmp/audit.db"

client:
  url: "http://localhost:9090"
  token: "secret"

log:
  level: "debug"
  format: "json"
  file: "/tmp/launchpad.log"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv(EnvToken, "")
	t.Setenv(EnvURL, "")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected host '0.0.0.0', got '%s'", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.PathPrefix != "/launchpad" {
		t.Errorf("expected path_prefix '/launchpad', got '%s'", cfg.Server.PathPrefix)
	}
	if !cfg.Server.ExitOnClose {
		t.Error("expected exit_on_close to be true")
	}

	if cfg.Auth.TokenHash != "$2a$10$abcdefghijklmnopqrstuv" {
		t.Errorf("unexpected token_hash %q", cfg.Auth.TokenHash)
	}

	if len(cfg.Directory.Paths) != 2 || cfg.Directory.Paths[1] != "/System/Applications" {
		t.Errorf("unexpected directory paths %v", cfg.Directory.Paths)
	}
	if len(cfg.Directory.OptionalPaths) != 1 {
		t.Errorf("expected 1 optional path, got %v", cfg.Directory.OptionalPaths)
	}
	if cfg.Directory.Suffix != ".app" {
		t.Errorf("expected suffix '.app', got '%s'", cfg.Directory.Suffix)
	}

	if len(cfg.Launch.Command) != 2 || cfg.Launch.Command[0] != "open" {
		t.Errorf("unexpected launch command %v", cfg.Launch.Command)
	}
	if cfg.Launch.GetTimeout() != 5*time.Second {
		t.Errorf("expected launch timeout 5s, got %v", cfg.Launch.GetTimeout())
	}
	if cfg.Launch.IsRequireKnown() {
		t.Error("expected require_known to be false")
	}
	if cfg.Launch.MaxNameLength != 64 {
		t.Errorf("expected max_name_length 64, got %d", cfg.Launch.MaxNameLength)
	}
	if cfg.Launch.HistorySize != 10 {
		t.Errorf("expected history_size 10, got %d", cfg.Launch.HistorySize)
	}

	if len(cfg.Voice.Command) != 3 {
		t.Errorf("unexpected voice command %v", cfg.Voice.Command)
	}
	if cfg.Voice.GetTimeout() != 20*time.Second {
		t.Errorf("expected voice timeout 20s, got %v", cfg.Voice.GetTimeout())
	}

	if cfg.Audit.IsEnabled() {
		t.Error("expected audit to be disabled")
	}
	if cfg.Audit.Path != "/tmp/audit.db" {
		t.Errorf("expected audit path '/tmp/audit.db', got '%s'", cfg.Audit.Path)
	}

	if cfg.Client.URL != "http://localhost:9090" {
		t.Errorf("unexpected client url %q", cfg.Client.URL)
	}
	if cfg.Client.Token != "secret" {
		t.Errorf("unexpected client token %q", cfg.Client.Token)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" || cfg.Log.File != "/tmp/launchpad.log" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoad_Defaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "launchpad.yaml")
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv(EnvToken, "")
	t.Setenv(EnvURL, "")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected default host '127.0.0.1', got '%s'", cfg.Server.Host)
	}
	if cfg.Server.Port != 7878 {
		t.Errorf("expected default port 7878, got %d", cfg.Server.Port)
	}
	if cfg.Server.PathPrefix != "" {
		t.Errorf("expected empty default path_prefix, got '%s'", cfg.Server.PathPrefix)
	}
	if len(cfg.Launch.Command) == 0 {
		t.Error("expected a default launch command")
	}
	if cfg.Launch.GetTimeout() != 30*time.Second {
		t.Errorf("expected default launch timeout 30s, got %v", cfg.Launch.GetTimeout())
	}
	if !cfg.Launch.IsRequireKnown() {
		t.Error("expected require_known to default to true")
	}
	if cfg.Launch.MaxNameLength != 255 {
		t.Errorf("expected default max_name_length 255, got %d", cfg.Launch.MaxNameLength)
	}
	if cfg.Launch.HistorySize != 256 {
		t.Errorf("expected default history_size 256, got %d", cfg.Launch.HistorySize)
	}
	if !cfg.Audit.IsEnabled() {
		t.Error("expected audit to default to enabled")
	}
	if cfg.Audit.Path != "./data/launchpad.db" {
		t.Errorf("expected default audit path, got '%s'", cfg.Audit.Path)
	}
	if cfg.Client.URL != "http://127.0.0.1:7878" {
		t.Errorf("expected default client url, got '%s'", cfg.Client.URL)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("unexpected default log config %+v", cfg.Log)
	}
	if len(cfg.Voice.Command) != 0 {
		t.Errorf("expected no default voice command, got %v", cfg.Voice.Command)
	}
}

func TestSetDefaults_PerPlatform(t *testing.T) {
	tests := []struct {
		goos    string
		path    string
		suffix  string
		command string
	}{
		{"darwin", "/Applications", ".app", "open"},
		{"linux", "/usr/share/applications", ".desktop", "gtk-launch"},
		{"windows", `C:\ProgramData\Microsoft\Windows\Start Menu\Programs`, ".lnk", "cmd"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			var cfg Config
			setDefaults(&cfg, tt.goos)

			if len(cfg.Directory.Paths) == 0 || cfg.Directory.Paths[0] != tt.path {
				t.Errorf("expected first path %q, got %v", tt.path, cfg.Directory.Paths)
			}
			if cfg.Directory.Suffix != tt.suffix {
				t.Errorf("expected suffix %q, got %q", tt.suffix, cfg.Directory.Suffix)
			}
			if cfg.Launch.Command[0] != tt.command {
				t.Errorf("expected command %q, got %v", tt.command, cfg.Launch.Command)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvToken, "from-env")
	t.Setenv(EnvURL, "http://10.0.0.2:7878")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load defaults: %v", err)
	}

	if cfg.Client.Token != "from-env" {
		t.Errorf("expected token from env, got %q", cfg.Client.Token)
	}
	if cfg.Client.URL != "http://10.0.0.2:7878" {
		t.Errorf("expected url from env, got %q", cfg.Client.URL)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/launchpad.yaml")
	if err == nil {
		t.Error("expected error for non-existent config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "launchpad.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: [not, a, number"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestDurations_InvalidFallBack(t *testing.T) {
	launch := LaunchConfig{Timeout: "soon"}
	if launch.GetTimeout() != 30*time.Second {
		t.Errorf("expected fallback 30s, got %v", launch.GetTimeout())
	}

	voice := VoiceConfig{Timeout: "-1s"}
	if voice.GetTimeout() != 15*time.Second {
		t.Errorf("expected fallback 15s, got %v", voice.GetTimeout())
	}
}
