package opener_test

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pandeptwidyaop/launchpad/internal/opener"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestNewExec_Empty(t *testing.T) {
	if _, err := opener.NewExec(nil); err == nil {
		t.Error("expected error for empty argv")
	}
	if _, err := opener.NewExec([]string{""}); err == nil {
		t.Error("expected error for empty program")
	}
}

func TestExec_Success(t *testing.T) {
	requireSh(t)

	o, err := opener.NewExec([]string{"sh", "-c", `test "$1" = "Mail"`, "opener"})
	if err != nil {
		t.Fatalf("NewExec() error = %v", err)
	}

	if err := o.Open(context.Background(), "Mail"); err != nil {
		t.Errorf("Open() error = %v", err)
	}
}

func TestExec_NamePassedVerbatim(t *testing.T) {
	requireSh(t)

	name := `Evil"; touch pwned; echo "`
	o, _ := opener.NewExec([]string{"sh", "-c", `test "$1" = "$2"`, "opener", name})

	if err := o.Open(context.Background(), name); err != nil {
		t.Errorf("name was altered on the way to the command: %v", err)
	}
}

func TestExec_FailureCarriesOutput(t *testing.T) {
	requireSh(t)

	o, _ := opener.NewExec([]string{"sh", "-c", `echo "Unable to find application named '$1'" >&2; exit 1`, "opener"})

	err := o.Open(context.Background(), "NonexistentApp")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, opener.ErrLaunchFailed) {
		t.Errorf("expected ErrLaunchFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "Unable to find application named 'NonexistentApp'") {
		t.Errorf("expected command output in error, got %q", err.Error())
	}
}

func TestExec_MissingProgram(t *testing.T) {
	o, _ := opener.NewExec([]string{filepath.Join(t.TempDir(), "no-such-opener")})

	err := o.Open(context.Background(), "Mail")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, opener.ErrLaunchFailed) {
		t.Errorf("expected ErrLaunchFailed, got %v", err)
	}
	if err.Error() == "" {
		t.Error("expected non-empty message")
	}
}

func TestExec_Timeout(t *testing.T) {
	requireSh(t)

	o, _ := opener.NewExec([]string{"sh", "-c", "exec sleep 5", "opener"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := o.Open(ctx, "Slow")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestFunc(t *testing.T) {
	var got string
	o := opener.Func(func(_ context.Context, name string) error {
		got = name
		return nil
	})

	_ = o.Open(context.Background(), "Notes")
	if got != "Notes" {
		t.Errorf("expected Notes, got %q", got)
	}
}
