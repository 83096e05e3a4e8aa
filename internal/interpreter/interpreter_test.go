package interpreter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pandeptwidyaop/launchpad/internal/interpreter"
)

func TestInterpret(t *testing.T) {
	apps := []string{"Safari", "Mail", "Notes"}

	tests := []struct {
		name  string
		input string
		apps  []string
		want  interpreter.Action
	}{
		{"open lowercase", "open mail", apps, interpreter.Launch{App: "Mail"}},
		{"launch keyword", "launch notes", apps, interpreter.Launch{App: "Notes"}},
		{"mixed case", "OPEN Safari", apps, interpreter.Launch{App: "Safari"}},
		{"extra words stay in fragment", "please open safari", apps, interpreter.NoMatch{Fragment: "please  safari"}},
		{"partial name", "open saf", apps, interpreter.Launch{App: "Safari"}},
		{"no match", "open zzz", apps, interpreter.NoMatch{Fragment: "zzz"}},
		{"not a command", "hello there", apps, interpreter.NotACommand{}},
		{"empty input", "", apps, interpreter.NotACommand{}},
		{"keyword inside word", "reopen mail", apps, interpreter.NoMatch{Fragment: "re mail"}},
		{"both keywords", "open launch mail", apps, interpreter.Launch{App: "Mail"}},
		{"surrounding spaces", "   open    notes   ", apps, interpreter.Launch{App: "Notes"}},
		{"no apps", "open mail", nil, interpreter.NoMatch{Fragment: "mail"}},
		{"empty fragment no apps", "open", nil, interpreter.NoMatch{Fragment: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interpreter.Interpret(tt.input, tt.apps))
		})
	}
}

// An empty fragment matches the first listed app. This mirrors the unconditional
// substring test and is kept on purpose; changing it is a product decision.
func TestInterpret_EmptyFragmentMatchesFirstApp(t *testing.T) {
	got := interpreter.Interpret("open", []string{"Safari", "Mail"})
	assert.Equal(t, interpreter.Launch{App: "Safari"}, got)

	got = interpreter.Interpret("  LAUNCH  ", []string{"Safari", "Mail"})
	assert.Equal(t, interpreter.Launch{App: "Safari"}, got)
}

func TestInterpret_FirstMatchWins(t *testing.T) {
	apps := []string{"Visual Studio Code", "Xcode", "Code Runner"}

	got := interpreter.Interpret("open code", apps)
	assert.Equal(t, interpreter.Launch{App: "Visual Studio Code"}, got)
}

// Global removal mangles names that embed a keyword. Kept as observed behaviour.
func TestInterpret_GlobalKeywordRemoval(t *testing.T) {
	assert.Equal(t, "the er app", interpreter.Fragment("launch the opener app"))

	got := interpreter.Interpret("launch the opener app", []string{"Opener App"})
	assert.Equal(t, interpreter.NoMatch{Fragment: "the er app"}, got)
}

func TestFragment_NeverContainsKeyword(t *testing.T) {
	inputs := []string{
		"open mail",
		"launch launch launch",
		"oopenpen",
		"lalaunchunch safari",
		"OPEN the LAUNCHpad",
		"openlaunchopen",
		"reopen relaunch",
		"o p e n",
		"lopenaunch",
	}

	for _, in := range inputs {
		frag := interpreter.Fragment(in)
		for _, kw := range interpreter.Keywords {
			assert.False(t, strings.Contains(frag, kw), "fragment %q of %q contains %q", frag, in, kw)
		}
	}
}

func TestHasIntent(t *testing.T) {
	assert.True(t, interpreter.HasIntent("Open mail"))
	assert.True(t, interpreter.HasIntent("LAUNCH"))
	assert.True(t, interpreter.HasIntent("reopen"))
	assert.False(t, interpreter.HasIntent("start mail"))
	assert.False(t, interpreter.HasIntent("o p e n"))
}

func TestMatch_CaseInsensitive(t *testing.T) {
	app, ok := interpreter.Match("MAIL", []string{"Safari", "Mail"})
	assert.True(t, ok)
	assert.Equal(t, "Mail", app)

	_, ok = interpreter.Match("chrome", []string{"Safari", "Mail"})
	assert.False(t, ok)
}
