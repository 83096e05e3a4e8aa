package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pandeptwidyaop/launchpad/internal/models"
)

// Message renders one log entry as a chat bubble. User messages sit on the
// right, system messages on the left.
func Message(m models.Message, width int) string {
	stamp := timestampStyle.Render(m.Timestamp.Format("15:04"))

	style := systemStyle
	switch {
	case m.Kind == models.KindUser:
		style = userStyle
	case strings.HasPrefix(m.Content, "Failed to launch"), strings.HasPrefix(m.Content, "Error loading apps"):
		style = failureStyle
	}

	if width > 4 {
		style = style.MaxWidth(width * 3 / 4)
	}
	bubble := lipgloss.JoinVertical(lipgloss.Left, style.Render(m.Content), stamp)

	if m.Kind == models.KindUser && width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}
	return bubble
}

// Messages renders the whole log separated by blank lines.
func Messages(msgs []models.Message, width int) string {
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = Message(m, width)
	}
	return strings.Join(parts, "\n\n")
}
