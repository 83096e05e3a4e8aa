package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pandeptwidyaop/launchpad/internal/render"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List the applications the host can open",
	Args:  cobra.NoArgs,
	RunE:  runApps,
}

func runApps(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	c, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	apps, err := c.ListApplications(cmd.Context())
	if err != nil {
		return fmt.Errorf("error loading apps: %w", err)
	}

	fmt.Fprint(os.Stdout, render.NewPlain(term.IsTerminal(int(os.Stdout.Fd()))).Apps(apps))
	return nil
}
