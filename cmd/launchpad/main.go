// Package main is the entry point of the launchpad binary: the host server and
// the terminal launcher that talks to it.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pandeptwidyaop/launchpad/internal/config"
	"github.com/pandeptwidyaop/launchpad/internal/logging"
)

var (
	configPath string
	logLevel   string
)

// errReported marks failures that were already shown to the user.
var errReported = errors.New("reported")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "launchpad",
	Short: "Open installed applications by typing or speaking",
	Long: `launchpad lists the applications installed on this machine and opens them
from a chat-style terminal launcher, a single command, or over its HTTP bridge.

Run "launchpad serve" on the host, then "launchpad" (chat) to use it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(hashTokenCmd)
	rootCmd.AddCommand(serviceCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig falls back to defaults when the file is missing.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || configPath != "launchpad.yaml" {
			fmt.Fprintf(os.Stderr, "Warning: could not load config from %s: %v\n", configPath, err)
			fmt.Fprintln(os.Stderr, "Using default configuration...")
		}
		cfg = config.Default()
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
