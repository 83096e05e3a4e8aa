// Package opener performs the OS-level "open application" invocation.
package opener

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrLaunchFailed wraps every failure of the host open command.
var ErrLaunchFailed = errors.New("launch failed")

// Opener opens an application by name.
type Opener interface {
	Open(ctx context.Context, name string) error
}

// Func adapts a plain function to the Opener interface.
type Func func(ctx context.Context, name string) error

// Open calls f.
func (f Func) Open(ctx context.Context, name string) error {
	return f(ctx, name)
}

// Exec runs Argv with the application name appended as one extra argument.
// No shell is involved, so the name is never interpreted.
type Exec struct {
	Argv []string
}

// NewExec creates an Exec opener. argv must not be empty.
func NewExec(argv []string) (*Exec, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.New("open command is empty")
	}
	return &Exec{Argv: append([]string(nil), argv...)}, nil
}

// Open runs the command and waits for it to exit.
// The error carries the command output so the caller can show it as is.
func (e *Exec) Open(ctx context.Context, name string) error {
	args := append(append([]string(nil), e.Argv[1:]...), name)
	cmd := exec.CommandContext(ctx, e.Argv[0], args...)
	// Openers may leave a child holding the output pipe after a kill.
	cmd.WaitDelay = 2 * time.Second

	out, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}

	msg := strings.TrimSpace(string(out))
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %s: %w", ErrLaunchFailed, e.describe(name), ctx.Err())
	}
	if msg != "" {
		return fmt.Errorf("%w: %s: %v: %s", ErrLaunchFailed, e.describe(name), err, msg)
	}
	return fmt.Errorf("%w: %s: %v", ErrLaunchFailed, e.describe(name), err)
}

func (e *Exec) describe(name string) string {
	return fmt.Sprintf("%s %q", strings.Join(e.Argv, " "), name)
}
