// Package voice captures one spoken command at a time and returns its transcript.
//
// The speech engine itself is an external program: it takes no input, records until
// the speaker stops and prints the final transcript on stdout.
package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"
)

var (
	// ErrUnsupported indicates no speech capability is available.
	ErrUnsupported = errors.New("speech recognition is not supported on this platform")
	// ErrBusy indicates a capture is already running.
	ErrBusy = errors.New("already listening")
	// ErrNoResult indicates the capture ended without a transcript.
	ErrNoResult = errors.New("no speech recognized")
)

// Transcriber produces the final transcript of one utterance.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// TranscriberFunc adapts a plain function to the Transcriber interface.
type TranscriberFunc func(ctx context.Context) (string, error)

// Transcribe calls f.
func (f TranscriberFunc) Transcribe(ctx context.Context) (string, error) {
	return f(ctx)
}

// CommandTranscriber runs an external speech-to-text program.
type CommandTranscriber struct {
	Argv    []string
	Timeout time.Duration
}

// NewCommandTranscriber returns nil when argv is empty, which a Recognizer
// reports as ErrUnsupported.
func NewCommandTranscriber(argv []string, timeout time.Duration) *CommandTranscriber {
	if len(argv) == 0 || argv[0] == "" {
		return nil
	}
	return &CommandTranscriber{Argv: append([]string(nil), argv...), Timeout: timeout}
}

// Transcribe runs the program and returns its trimmed stdout.
func (t *CommandTranscriber) Transcribe(ctx context.Context) (string, error) {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.Argv[0], t.Argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrUnsupported, t.Argv[0])
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("speech command: %w: %s", err, msg)
		}
		return "", fmt.Errorf("speech command: %w", err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Recognizer allows a single capture at a time.
type Recognizer struct {
	transcriber Transcriber
	listening   atomic.Bool
}

// NewRecognizer creates a Recognizer. A nil transcriber makes it unsupported.
func NewRecognizer(t Transcriber) *Recognizer {
	r := &Recognizer{}
	// A nil *CommandTranscriber is not a nil Transcriber.
	if ct, ok := t.(*CommandTranscriber); !ok || ct != nil {
		r.transcriber = t
	}
	return r
}

// Supported reports whether a speech capability is configured.
func (r *Recognizer) Supported() bool {
	return r.transcriber != nil
}

// Listening reports whether a capture is running.
func (r *Recognizer) Listening() bool {
	return r.listening.Load()
}

// Recognize captures one utterance and returns its lower-cased transcript.
func (r *Recognizer) Recognize(ctx context.Context) (string, error) {
	if r.transcriber == nil {
		return "", ErrUnsupported
	}
	if !r.listening.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer r.listening.Store(false)

	text, err := r.transcriber.Transcribe(ctx)
	if err != nil {
		return "", err
	}

	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", ErrNoResult
	}
	return text, nil
}
