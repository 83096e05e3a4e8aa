package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pandeptwidyaop/launchpad/internal/render"
)

var launchCmd = &cobra.Command{
	Use:   "launch <name>",
	Short: "Open an application by its exact name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLaunch,
}

func runLaunch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	c, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	name := strings.Join(args, " ")
	replies, err := c.Launch(name)
	if err != nil {
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}

	select {
	case resp := <-replies:
		fmt.Fprint(os.Stdout, render.NewPlain(term.IsTerminal(int(os.Stdout.Fd()))).LaunchResult(name, resp))
		if !resp.Success {
			return errReported
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
