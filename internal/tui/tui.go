// Package tui provides the chat-style launcher for the terminal using Bubble Tea.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pandeptwidyaop/launchpad/internal/launcher"
	"github.com/pandeptwidyaop/launchpad/internal/models"
	"github.com/pandeptwidyaop/launchpad/internal/render"
	"github.com/pandeptwidyaop/launchpad/internal/surface"
)

const (
	sidebarWidth = 30
	inputHeight  = 3
	helpHeight   = 1
)

// WindowControl sends a window-control action to the host.
type WindowControl func(ctx context.Context, action string) error

type focus int

const (
	focusInput focus = iota
	focusSidebar
)

// Message types
type appsLoadedMsg struct {
	apps []string
	err  error
}
type messagesChangedMsg struct{}
type launchAppMsg struct{ name string }
type listenDoneMsg struct{ err error }
type controlDoneMsg struct {
	action string
	err    error
}

// Model is the launcher window.
type Model struct {
	session *launcher.Session
	control WindowControl
	ctx     context.Context

	apps      []string
	messages  []models.Message
	selected  int
	focus     focus
	loading   bool
	listening bool
	quitting  bool
	status    string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	width    int
	height   int
	ready    bool
}

// New creates the model. control may be nil when the host cannot be reached over the bridge.
func New(ctx context.Context, session *launcher.Session, control WindowControl) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(render.Primary)

	ti := textinput.New()
	ti.Placeholder = `Type "open <app>" or press ctrl+l to speak`
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	return Model{
		session: session,
		control: control,
		ctx:     ctx,
		apps:    []string{},
		loading: true,
		input:   ti,
		spinner: s,
	}
}

// Init initializes the TUI
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.loadApps(),
	)
}

func (m Model) loadApps() tea.Cmd {
	return func() tea.Msg {
		apps, err := m.session.LoadApps(m.ctx)
		return appsLoadedMsg{apps: apps, err: err}
	}
}

func (m Model) submit(text string) tea.Cmd {
	return func() tea.Msg {
		m.session.Submit(text)
		return messagesChangedMsg{}
	}
}

func (m Model) launch(name string) tea.Cmd {
	return func() tea.Msg {
		m.session.LaunchApp(name)
		return messagesChangedMsg{}
	}
}

func (m Model) listen() tea.Cmd {
	return func() tea.Msg {
		return listenDoneMsg{err: m.session.Listen(m.ctx)}
	}
}

func (m Model) windowControl(action string) tea.Cmd {
	if m.control == nil {
		return func() tea.Msg {
			return controlDoneMsg{action: action, err: errors.New("window control unavailable")}
		}
	}
	return func() tea.Msg {
		return controlDoneMsg{action: action, err: m.control(m.ctx, action)}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "ctrl+q":
			return m, m.windowControl(surface.ActionClose)
		case "ctrl+n":
			return m, m.windowControl(surface.ActionMinimize)
		case "ctrl+t":
			return m, m.windowControl(surface.ActionMaximize)
		case "ctrl+l":
			if m.listening {
				return m, nil
			}
			m.listening = m.session.VoiceSupported()
			return m, m.listen()
		case "tab":
			if m.focus == focusInput {
				m.focus = focusSidebar
				m.input.Blur()
			} else {
				m.focus = focusInput
				m.input.Focus()
			}
			return m, nil
		}

		if m.focus == focusSidebar {
			switch msg.String() {
			case "up", "k":
				if m.selected > 0 {
					m.selected--
				}
			case "down", "j":
				if m.selected < len(m.apps)-1 {
					m.selected++
				}
			case "enter":
				if m.selected < len(m.apps) {
					name := m.apps[m.selected]
					return m, func() tea.Msg { return launchAppMsg{name: name} }
				}
			}
			return m, nil
		}

		if msg.Type == tea.KeyEnter {
			text := m.input.Value()
			m.input.Reset()
			return m, m.submit(text)
		}

	case launchAppMsg:
		return m, m.launch(msg.name)

	case appsLoadedMsg:
		m.loading = false
		if msg.err == nil {
			m.apps = msg.apps
		}
		m.refresh()
		return m, nil

	case messagesChangedMsg:
		m.refresh()
		return m, nil

	case listenDoneMsg:
		m.listening = false
		m.refresh()
		return m, nil

	case controlDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
			return m, nil
		}
		m.status = ""
		if msg.action == surface.ActionClose {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) layout() {
	chatWidth := m.width - sidebarWidth - 4
	if chatWidth < 10 {
		chatWidth = 10
	}
	chatHeight := m.height - inputHeight - helpHeight - 2
	if chatHeight < 3 {
		chatHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(chatWidth, chatHeight)
		m.ready = true
	} else {
		m.viewport.Width = chatWidth
		m.viewport.Height = chatHeight
	}
	m.input.Width = chatWidth - 4
}

// refresh reloads the log from the session, which owns its order.
func (m *Model) refresh() {
	m.messages = m.session.Messages()
	if !m.ready {
		return
	}
	m.viewport.SetContent(render.Messages(m.messages, m.viewport.Width))
	m.viewport.GotoBottom()
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  " + m.spinner.View() + " Starting launcher..."
	}

	sidebar := m.sidebarView()
	chat := lipgloss.JoinVertical(lipgloss.Left,
		render.PanelStyle.Width(m.viewport.Width).Render(m.viewport.View()),
		render.PanelStyle.Width(m.viewport.Width).Render(m.inputView()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, sidebar, chat),
		m.helpView(),
	)
}

func (m Model) sidebarView() string {
	var body string
	if m.loading {
		body = m.spinner.View() + " Loading apps..."
	} else {
		selected := -1
		if m.focus == focusSidebar {
			selected = m.selected
		}
		body = render.AppList(m.apps, selected, sidebarWidth-2)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, render.TitleStyle.Render("Applications"), "", body)
	return render.PanelStyle.
		Width(sidebarWidth).
		Height(m.viewport.Height + inputHeight).
		Render(content)
}

func (m Model) inputView() string {
	if m.listening {
		return m.spinner.View() + " Listening..."
	}
	return m.input.View()
}

func (m Model) helpView() string {
	if m.status != "" {
		return render.HelpStyle.Render(m.status)
	}
	help := "enter: send • tab: apps • ctrl+l: speak • ctrl+n: minimize • ctrl+t: maximize • ctrl+q: close"
	if !m.session.VoiceSupported() {
		help = "enter: send • tab: apps • ctrl+n: minimize • ctrl+t: maximize • ctrl+q: close"
	}
	return render.HelpStyle.Render(help)
}

// Run starts the TUI and blocks until it exits.
func Run(ctx context.Context, session *launcher.Session, control WindowControl) error {
	p := tea.NewProgram(New(ctx, session, control), tea.WithAltScreen(), tea.WithContext(ctx))

	session.OnMessage(func(models.Message) {
		p.Send(messagesChangedMsg{})
	})

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
