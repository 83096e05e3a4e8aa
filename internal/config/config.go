// Package config loads the launchpad YAML configuration and fills platform defaults.
package config

import (
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the client section.
const (
	EnvToken = "LAUNCHPAD_TOKEN"
	EnvURL   = "LAUNCHPAD_URL"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Directory DirectoryConfig `yaml:"directory"`
	Launch    LaunchConfig    `yaml:"launch"`
	Voice     VoiceConfig     `yaml:"voice"`
	Audit     AuditConfig     `yaml:"audit"`
	Client    ClientConfig    `yaml:"client"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	PathPrefix  string `yaml:"path_prefix"`
	ExitOnClose bool   `yaml:"exit_on_close"`
}

// AuthConfig guards the bridge. TokenHash is a bcrypt hash of the shared token.
type AuthConfig struct {
	TokenHash      string `yaml:"token_hash"`
	AllowAnonymous bool   `yaml:"allow_anonymous"`
}

// DirectoryConfig lists where installed applications are enumerated from.
type DirectoryConfig struct {
	Paths         []string `yaml:"paths"`
	OptionalPaths []string `yaml:"optional_paths"`
	Suffix        string   `yaml:"suffix"`
}

type LaunchConfig struct {
	// Command is the argv prefix; the application name is appended as one argument.
	Command       []string `yaml:"command"`
	Timeout       string   `yaml:"timeout"`
	RequireKnown  *bool    `yaml:"require_known"`
	MaxNameLength int      `yaml:"max_name_length"`
	HistorySize   int      `yaml:"history_size"`
}

type VoiceConfig struct {
	Command []string `yaml:"command"`
	Timeout string   `yaml:"timeout"`
}

type AuditConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type ClientConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// GetTimeout returns the per-launch timeout, falling back to 30s.
func (c *LaunchConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// IsRequireKnown reports whether launches must name an enumerated application.
func (c *LaunchConfig) IsRequireKnown() bool {
	if c.RequireKnown == nil {
		return true
	}
	return *c.RequireKnown
}

// GetTimeout returns the capture timeout, falling back to 15s.
func (c *VoiceConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// IsEnabled returns whether the audit trail is written. Defaults to true.
func (c *AuditConfig) IsEnabled() bool {
	if c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	setDefaults(&cfg, runtime.GOOS)
	applyEnv(&cfg)

	return &cfg, nil
}

// Default returns a configuration with every default applied for the running OS.
func Default() *Config {
	cfg, _ := Load("")
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Client.Token = v
	}
	if v := os.Getenv(EnvURL); v != "" {
		cfg.Client.URL = v
	}
}

func setDefaults(cfg *Config, goos string) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 7878
	}
	if len(cfg.Directory.Paths) == 0 && len(cfg.Directory.OptionalPaths) == 0 {
		cfg.Directory.Paths, cfg.Directory.OptionalPaths = defaultDirectories(goos)
	}
	if cfg.Directory.Suffix == "" {
		cfg.Directory.Suffix = defaultSuffix(goos)
	}
	if len(cfg.Launch.Command) == 0 {
		cfg.Launch.Command = defaultOpenCommand(goos)
	}
	if cfg.Launch.Timeout == "" {
		cfg.Launch.Timeout = "30s"
	}
	if cfg.Launch.MaxNameLength == 0 {
		cfg.Launch.MaxNameLength = 255
	}
	if cfg.Launch.HistorySize == 0 {
		cfg.Launch.HistorySize = 256
	}
	if cfg.Voice.Timeout == "" {
		cfg.Voice.Timeout = "15s"
	}
	if cfg.Audit.Path == "" {
		cfg.Audit.Path = "./data/launchpad.db"
	}
	if cfg.Client.URL == "" {
		cfg.Client.URL = "http://127.0.0.1:7878"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

func defaultDirectories(goos string) (paths, optional []string) {
	switch goos {
	case "darwin":
		return []string{"/Applications"}, []string{"~/Applications"}
	case "windows":
		return []string{`C:\ProgramData\Microsoft\Windows\Start Menu\Programs`}, nil
	default:
		return []string{"/usr/share/applications"}, []string{"~/.local/share/applications"}
	}
}

func defaultSuffix(goos string) string {
	switch goos {
	case "darwin":
		return ".app"
	case "windows":
		return ".lnk"
	default:
		return ".desktop"
	}
}

func defaultOpenCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open", "-a"}
	case "windows":
		return []string{"cmd", "/c", "start", ""}
	default:
		return []string{"gtk-launch"}
	}
}
