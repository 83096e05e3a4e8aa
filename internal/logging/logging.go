// Package logging builds the zap logger shared by the host and the client.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pandeptwidyaop/launchpad/internal/config"
)

// New creates a logger from the log section of the config.
// Format "json" selects the production encoder, anything else the console encoder.
// When File is set, output goes there instead of stderr.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		// Colors make no sense in a file.
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	}

	return zc.Build()
}

// Nop returns a logger that discards everything, for tests and optional wiring.
func Nop() *zap.Logger {
	return zap.NewNop()
}
