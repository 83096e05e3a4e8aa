// Package service installs the launchpad host as a systemd user service.
//
// The host opens applications inside the user's desktop session, so the unit
// runs under "systemctl --user" instead of the system manager.
package service

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"text/template"
)

const serviceName = "launchpad.service"

// ErrUnsupported is returned on systems without a systemd user manager.
var ErrUnsupported = errors.New("systemd user services are not available on this system")

// Status represents the state of the user unit.
type Status struct {
	IsRunning   bool   `json:"is_running"`
	IsEnabled   bool   `json:"is_enabled"`
	IsInstalled bool   `json:"is_installed"`
	ActiveState string `json:"active_state"`
	SubState    string `json:"sub_state"`
}

// Config holds the values rendered into the unit file.
type Config struct {
	ExecPath   string
	ConfigPath string
	WorkingDir string
}

const unitTemplate = `[Unit]
Description=launchpad host - open applications from the launcher
After=graphical-session.target
PartOf=graphical-session.target

[Service]
Type=simple
WorkingDirectory={{.WorkingDir}}
ExecStart={{.ExecPath}} serve --config {{.ConfigPath}}
Restart=on-failure
RestartSec=5

[Install]
WantedBy=graphical-session.target
`

// Available reports whether systemctl can manage user units here.
func Available() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	_, err := exec.LookPath("systemctl")
	return err == nil
}

// UnitPath returns where the unit file is written.
func UnitPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "systemd", "user", serviceName), nil
}

// GenerateUnitFile renders the unit file content.
func GenerateUnitFile(cfg Config) (string, error) {
	tmpl, err := template.New("unit").Parse(unitTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse unit template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return "", fmt.Errorf("failed to execute unit template: %w", err)
	}

	return buf.String(), nil
}

// Install writes the unit, then enables and starts it.
func Install(cfg Config) error {
	if !Available() {
		return ErrUnsupported
	}

	content, err := GenerateUnitFile(cfg)
	if err != nil {
		return err
	}

	path, err := UnitPath()
	if err != nil {
		return fmt.Errorf("failed to locate unit directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create unit directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write unit file: %w", err)
	}

	if err := runSystemctl("daemon-reload"); err != nil {
		return fmt.Errorf("failed to reload systemd: %w", err)
	}
	if err := runSystemctl("enable", "--now", serviceName); err != nil {
		return fmt.Errorf("failed to enable service: %w", err)
	}

	return nil
}

// Uninstall stops the unit and removes its file.
func Uninstall() error {
	if !Available() {
		return ErrUnsupported
	}

	// Not running or not enabled is fine here.
	_ = runSystemctl("disable", "--now", serviceName)

	path, err := UnitPath()
	if err != nil {
		return fmt.Errorf("failed to locate unit directory: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove unit file: %w", err)
	}

	if err := runSystemctl("daemon-reload"); err != nil {
		return fmt.Errorf("failed to reload systemd: %w", err)
	}

	return nil
}

// GetStatus returns the current state of the unit.
func GetStatus() (*Status, error) {
	status := &Status{}

	if !Available() {
		return status, ErrUnsupported
	}

	if path, err := UnitPath(); err == nil {
		if _, err := os.Stat(path); err == nil {
			status.IsInstalled = true
		}
	}

	if activeState, err := property("ActiveState"); err == nil {
		status.ActiveState = activeState
		status.IsRunning = activeState == "active"
	}
	if subState, err := property("SubState"); err == nil {
		status.SubState = subState
	}

	output, err := exec.Command("systemctl", "--user", "is-enabled", serviceName).Output()
	if err == nil {
		status.IsEnabled = strings.TrimSpace(string(output)) == "enabled"
	}

	return status, nil
}

// RunningAsService reports whether this process was started by systemd.
func RunningAsService() bool {
	return os.Getenv("INVOCATION_ID") != ""
}

// DefaultConfig points the unit at the running binary and the given config file.
func DefaultConfig(configPath string) (Config, error) {
	execPath, err := os.Executable()
	if err != nil {
		return Config{}, err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	configPath, err = filepath.Abs(configPath)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ExecPath:   execPath,
		ConfigPath: configPath,
		WorkingDir: filepath.Dir(configPath),
	}, nil
}

func runSystemctl(args ...string) error {
	cmd := exec.Command("systemctl", append([]string{"--user"}, args...)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func property(name string) (string, error) {
	cmd := exec.Command("systemctl", "--user", "show", serviceName, "--property="+name, "--value")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
