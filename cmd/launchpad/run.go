package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pandeptwidyaop/launchpad/internal/launcher"
	"github.com/pandeptwidyaop/launchpad/internal/models"
	"github.com/pandeptwidyaop/launchpad/internal/render"
)

var listenFlag bool

var runCmd = &cobra.Command{
	Use:   "run [text...]",
	Short: `Interpret one command, e.g. launchpad run "open safari"`,
	Args: func(cmd *cobra.Command, args []string) error {
		if !listenFlag && len(args) == 0 {
			return fmt.Errorf("requires text to interpret or --listen")
		}
		return nil
	},
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&listenFlag, "listen", "l", false, "capture the command with the voice program instead of text")
}

func runRun(cmd *cobra.Command, args []string) error {
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

	plain := render.NewPlain(term.IsTerminal(int(os.Stdout.Fd())))
	session := launcher.NewSession(c, newRecognizer(cfg.Voice), logger)

	session.OnMessage(func(m models.Message) {
		fmt.Fprint(os.Stdout, plain.Message(m))
	})

	if _, err := session.LoadApps(ctx); err != nil {
		return errReported
	}

	if listenFlag {
		if err := session.Listen(ctx); err != nil {
			return errReported
		}
	} else {
		session.Submit(strings.Join(args, " "))
	}
	session.Wait()

	if session.Failures() > 0 {
		return errReported
	}
	return nil
}
