package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/pandeptwidyaop/launchpad/internal/client"
	"github.com/pandeptwidyaop/launchpad/internal/config"
	"github.com/pandeptwidyaop/launchpad/internal/launcher"
	"github.com/pandeptwidyaop/launchpad/internal/tui"
	"github.com/pandeptwidyaop/launchpad/internal/voice"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive launcher (default)",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(`chat needs an interactive terminal; use "launchpad run <text>" instead`)
	}

	cfg := loadConfig()

	// The screen belongs to the UI, so logs only go to a file.
	logger := zap.NewNop()
	if cfg.Log.File != "" {
		l, err := newLogger(cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		defer func() { _ = logger.Sync() }()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	session := launcher.NewSession(c, newRecognizer(cfg.Voice), logger)
	err = tui.Run(ctx, session, c.Control)
	// Closing the bridge fails launches still waiting for a reply.
	_ = c.Close()
	session.Wait()
	return err
}

func newRecognizer(cfg config.VoiceConfig) *voice.Recognizer {
	return voice.NewRecognizer(voice.NewCommandTranscriber(cfg.Command, cfg.GetTimeout()))
}

func newClient(cfg *config.Config, logger *zap.Logger) (*client.Client, error) {
	c, err := client.New(cfg.Client.URL, cfg.Client.Token, logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// connect opens the bridge to the configured host.
func connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*client.Client, error) {
	c, err := newClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := c.Connect(ctx); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return nil, fmt.Errorf("host at %s rejected the token; set client.token or %s", cfg.Client.URL, config.EnvToken)
		}
		return nil, fmt.Errorf("cannot reach host at %s (is \"launchpad serve\" running?): %w", cfg.Client.URL, err)
	}
	return c, nil
}
