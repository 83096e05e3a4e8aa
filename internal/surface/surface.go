// Package surface holds the host-owned handle of the single launcher surface.
//
// The handle moves through created -> active -> destroyed and never goes back.
// Clients never touch it directly; they send window-control actions over the bridge.
package surface

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDestroyed is returned for any control after the surface was closed.
	ErrDestroyed = errors.New("surface destroyed")
	// ErrUnknownAction is returned for an unsupported window-control action.
	ErrUnknownAction = errors.New("unknown window control action")
)

// State is a lifecycle stage of the surface.
type State int

const (
	StateCreated State = iota
	StateActive
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateActive:
		return "active"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Window-control actions.
const (
	ActionMinimize = "minimize"
	ActionMaximize = "maximize"
	ActionClose    = "close"
)

// Snapshot is a copy of the surface state.
type Snapshot struct {
	State     string `json:"state"`
	Minimized bool   `json:"minimized"`
	Maximized bool   `json:"maximized"`
}

// Surface is the single launcher surface. The zero value is not usable; use New.
type Surface struct {
	onClose   func()
	mu        sync.Mutex
	state     State
	minimized bool
	maximized bool
}

// New creates a surface in the created state. onClose runs once, after destroy.
func New(onClose func()) *Surface {
	return &Surface{onClose: onClose}
}

// Activate marks the surface active. Activating an active surface is a no-op.
func (s *Surface) Activate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDestroyed {
		return ErrDestroyed
	}
	s.state = StateActive
	s.minimized = false
	return nil
}

// Control applies a window-control action.
func (s *Surface) Control(action string) error {
	s.mu.Lock()

	if s.state == StateDestroyed {
		s.mu.Unlock()
		return ErrDestroyed
	}

	switch action {
	case ActionMinimize:
		s.minimized = true
	case ActionMaximize:
		s.maximized = !s.maximized
		s.minimized = false
	case ActionClose:
		s.state = StateDestroyed
		onClose := s.onClose
		s.mu.Unlock()
		if onClose != nil {
			onClose()
		}
		return nil
	default:
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	s.mu.Unlock()
	return nil
}

// State returns the current lifecycle stage.
func (s *Surface) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the current state.
func (s *Surface) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:     s.state.String(),
		Minimized: s.minimized,
		Maximized: s.maximized,
	}
}
