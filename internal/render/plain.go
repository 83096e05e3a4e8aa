package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/pandeptwidyaop/launchpad/internal/models"
)

// Plain formats output for non-interactive commands.
type Plain struct {
	pretty bool
}

// NewPlain creates a Plain renderer. Color follows fatih/color's terminal detection.
func NewPlain(pretty bool) *Plain {
	return &Plain{pretty: pretty}
}

// Apps formats the application list.
func (p *Plain) Apps(apps []string) string {
	if len(apps) == 0 {
		return "No applications found\n"
	}

	var sb strings.Builder
	if p.pretty {
		sb.WriteString(color.CyanString("Applications (%d)\n", len(apps)))
		sb.WriteString(strings.Repeat("─", 40) + "\n")
		for _, name := range apps {
			fmt.Fprintf(&sb, "%s %s\n", color.MagentaString("[%s]", AppIcon(name)), name)
		}
		return sb.String()
	}

	for _, name := range apps {
		sb.WriteString(name + "\n")
	}
	return sb.String()
}

// Message formats one log entry.
func (p *Plain) Message(m models.Message) string {
	if !p.pretty {
		return fmt.Sprintf("[%s] %s\n", m.Kind, m.Content)
	}

	stamp := color.HiBlackString(m.Timestamp.Format("15:04:05"))
	switch {
	case m.Kind == models.KindUser:
		return fmt.Sprintf("%s %s %s\n", stamp, color.BlueString(">"), m.Content)
	case strings.HasPrefix(m.Content, "Failed to launch"), strings.HasPrefix(m.Content, "Error loading apps"):
		return fmt.Sprintf("%s %s %s\n", stamp, color.RedString("✗"), m.Content)
	default:
		return fmt.Sprintf("%s %s %s\n", stamp, color.GreenString("•"), m.Content)
	}
}

// LaunchResult formats the completion of one launch.
func (p *Plain) LaunchResult(name string, resp models.LaunchResponse) string {
	if resp.Success {
		if p.pretty {
			return fmt.Sprintf("%s Launched %s\n", color.GreenString("✓"), name)
		}
		return fmt.Sprintf("launched %s\n", name)
	}
	if p.pretty {
		return fmt.Sprintf("%s Failed to launch %s: %s\n", color.RedString("✗"), name, resp.Error)
	}
	return fmt.Sprintf("failed to launch %s: %s\n", name, resp.Error)
}
