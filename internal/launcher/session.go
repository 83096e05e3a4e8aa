// Package launcher is the presentation-side session: it caches the application
// snapshot, keeps the message log and turns typed, spoken and clicked input into
// launches sent over the bridge.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/pandeptwidyaop/launchpad/internal/interpreter"
	"github.com/pandeptwidyaop/launchpad/internal/models"
	"github.com/pandeptwidyaop/launchpad/internal/voice"
)

// Bridge is the host as the session sees it.
type Bridge interface {
	ListApplications(ctx context.Context) ([]string, error)
	Launch(name string) (<-chan models.LaunchResponse, error)
}

// Listener is called with every appended message, in order.
type Listener func(models.Message)

// Session holds the state of one launcher window.
type Session struct {
	bridge     Bridge
	recognizer *voice.Recognizer
	logger     *zap.Logger

	loadMu sync.Mutex
	loaded bool

	mu        sync.RWMutex
	apps      []string
	messages  []models.Message
	listeners []Listener

	failures atomic.Int64
	wg       sync.WaitGroup
}

// NewSession creates a Session. recognizer may be nil when voice is not configured.
func NewSession(bridge Bridge, recognizer *voice.Recognizer, logger *zap.Logger) *Session {
	if recognizer == nil {
		recognizer = voice.NewRecognizer(nil)
	}
	return &Session{
		bridge:     bridge,
		recognizer: recognizer,
		logger:     logger.Named("session"),
		apps:       []string{},
	}
}

// OnMessage registers a listener for appended messages.
func (s *Session) OnMessage(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Messages returns a copy of the log.
func (s *Session) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Message(nil), s.messages...)
}

// Apps returns a copy of the application snapshot.
func (s *Session) Apps() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.apps...)
}

// Failures returns how many app loads, unmatched commands and launches have failed.
func (s *Session) Failures() int {
	return int(s.failures.Load())
}

// VoiceSupported reports whether Listen can capture speech.
func (s *Session) VoiceSupported() bool {
	return s.recognizer.Supported()
}

// Listening reports whether a voice capture is running.
func (s *Session) Listening() bool {
	return s.recognizer.Listening()
}

func (s *Session) appendMessage(kind models.MessageKind, content string) {
	msg := models.NewMessage(kind, content)

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(msg)
	}
}

func (s *Session) system(format string, args ...any) {
	s.appendMessage(models.KindSystem, fmt.Sprintf(format, args...))
}

// LoadApps fetches the snapshot from the host once. Later calls return the
// snapshot taken by the first call, which is empty if that call failed.
func (s *Session) LoadApps(ctx context.Context) ([]string, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.loaded {
		return s.Apps(), nil
	}
	s.loaded = true

	apps, err := s.bridge.ListApplications(ctx)
	if err != nil {
		s.logger.Warn("loading apps failed", zap.Error(err))
		s.failures.Add(1)
		s.system("Error loading apps: %v", err)
		return nil, err
	}

	s.mu.Lock()
	s.apps = append([]string{}, apps...)
	s.mu.Unlock()

	s.logger.Debug("apps loaded", zap.Int("count", len(apps)))
	return s.Apps(), nil
}

// Submit handles typed input.
func (s *Session) Submit(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s.appendMessage(models.KindUser, text)
	s.interpret(text)
}

func (s *Session) interpret(text string) {
	switch action := interpreter.Interpret(text, s.Apps()).(type) {
	case interpreter.Launch:
		s.LaunchApp(action.App)
	case interpreter.NoMatch:
		s.failures.Add(1)
		s.system(`Could not find app "%s"`, action.Fragment)
	case interpreter.NotACommand:
	}
}

// LaunchApp sends a launch for name. A failed completion is appended when it arrives.
func (s *Session) LaunchApp(name string) {
	s.system("Launching %s...", name)

	replies, err := s.bridge.Launch(name)
	if err != nil {
		s.logger.Warn("launch request failed", zap.String("app", name), zap.Error(err))
		s.failures.Add(1)
		s.system("Failed to launch %s: %v", name, err)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		resp := <-replies
		if resp.Success {
			s.logger.Debug("launched", zap.String("app", name), zap.String("id", resp.ID))
			return
		}
		s.logger.Warn("launch failed", zap.String("app", name), zap.String("error", resp.Error))
		s.failures.Add(1)
		s.system("Failed to launch %s: %s", name, resp.Error)
	}()
}

// Listen captures one spoken command and handles it like typed input.
// It returns voice.ErrBusy without a message while a capture is running.
func (s *Session) Listen(ctx context.Context) error {
	if !s.recognizer.Supported() {
		s.system("Speech recognition is not supported on this platform.")
		return voice.ErrUnsupported
	}
	if s.recognizer.Listening() {
		return voice.ErrBusy
	}

	s.system("Listening...")

	transcript, err := s.recognizer.Recognize(ctx)
	switch {
	case errors.Is(err, voice.ErrBusy):
		return err
	case errors.Is(err, voice.ErrUnsupported):
		s.system("Speech recognition is not supported on this platform.")
		return err
	case errors.Is(err, voice.ErrNoResult):
		s.system("No speech recognized.")
		return err
	case err != nil:
		s.system("Speech recognition failed: %v", err)
		return err
	}

	s.appendMessage(models.KindUser, transcript)
	s.interpret(transcript)
	return nil
}

// Wait blocks until every launch sent by this session has completed.
func (s *Session) Wait() {
	s.wg.Wait()
}
