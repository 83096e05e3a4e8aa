// Package interpreter turns free-form user input into a launch action.
//
// Matching is deliberately loose: intent keywords are found by substring, every
// occurrence is removed, and the remaining fragment is matched by substring against
// application names in directory order. The first hit wins.
package interpreter

import "strings"

// Keywords that mark input as a launch command.
var Keywords = []string{"open", "launch"}

// Action is the outcome of interpreting one input.
type Action interface {
	action()
}

// Launch asks for App to be opened. App is the name exactly as listed.
type Launch struct {
	App string
}

func (Launch) action() {}

// NoMatch means the input was a command but no application contains Fragment.
type NoMatch struct {
	Fragment string
}

func (NoMatch) action() {}

// NotACommand means the input carries no intent keyword and has no side effect.
type NotACommand struct{}

func (NotACommand) action() {}

// Interpret resolves raw against knownApps. It performs no I/O.
func Interpret(raw string, knownApps []string) Action {
	if !HasIntent(raw) {
		return NotACommand{}
	}

	fragment := Fragment(raw)
	if app, ok := Match(fragment, knownApps); ok {
		return Launch{App: app}
	}
	return NoMatch{Fragment: fragment}
}

// HasIntent reports whether raw contains an intent keyword, ignoring case.
// Keywords inside other words count ("reopen" is an intent).
func HasIntent(raw string) bool {
	lower := strings.ToLower(raw)
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Fragment lower-cases raw, strips every keyword occurrence and trims whitespace.
// Removal repeats until nothing changes, so the result never contains a keyword.
func Fragment(raw string) string {
	s := strings.ToLower(raw)
	for {
		stripped := s
		for _, kw := range Keywords {
			stripped = strings.ReplaceAll(stripped, kw, "")
		}
		if stripped == s {
			break
		}
		s = stripped
	}
	return strings.TrimSpace(s)
}

// Match returns the first app whose lower-cased name contains fragment.
// An empty fragment matches the first app.
func Match(fragment string, apps []string) (string, bool) {
	needle := strings.ToLower(fragment)
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app), needle) {
			return app, true
		}
	}
	return "", false
}
