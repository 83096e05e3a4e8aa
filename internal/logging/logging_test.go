package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandeptwidyaop/launchpad/internal/config"
	"github.com/pandeptwidyaop/launchpad/internal/logging"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "launchpad.log")

	logger, err := logging.New(config.LogConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	logger.Debug("hello from test")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "hello from test"))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launchpad.log")

	logger, err := logging.New(config.LogConfig{Level: "warn", Format: "console", File: path})
	require.NoError(t, err)

	logger.Info("should be dropped")
	logger.Warn("should be kept")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should be dropped")
	assert.Contains(t, string(data), "should be kept")
}
