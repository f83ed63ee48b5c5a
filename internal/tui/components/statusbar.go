package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wealthyways/wealthyways/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar with key hints on the left
// and info right-aligned.
func RenderStatusBar(width int, hints, info string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " " + hints
	right := ""
	if info != "" {
		right = info + " "
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
