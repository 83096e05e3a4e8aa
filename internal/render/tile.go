package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// AppIcon is the upper-cased first letter of name.
func AppIcon(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// AppTile renders one sidebar entry. width bounds the whole tile; 0 means unbounded.
func AppTile(name string, selected bool, width int) string {
	style := tileStyle
	if selected {
		style = selectedTileStyle
	}

	icon := iconStyle.Render(AppIcon(name))
	label := name
	if width > 0 {
		room := width - lipgloss.Width(icon) - style.GetHorizontalPadding()
		label = truncate(name, room)
		style = style.Width(width - lipgloss.Width(icon))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, icon, style.Render(label))
}

// AppList renders tiles one per line with the selected index highlighted.
func AppList(apps []string, selected, width int) string {
	if len(apps) == 0 {
		return HelpStyle.Render("No applications")
	}

	tiles := make([]string, len(apps))
	for i, name := range apps {
		tiles[i] = AppTile(name, i == selected, width)
	}
	return strings.Join(tiles, "\n")
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
