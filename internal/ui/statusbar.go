package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: a state tag followed by
// free-form info and a right-aligned help line.
func RenderStatusBar(width int, state string, kind Kind, info, help string) string {
	status := kind.Style().Render("[" + state + "]")
	content := status + StyleStatusBar.Render(info)
	helpStr := StyleHelp.Render(help)

	gap := width - lipgloss.Width(content) - lipgloss.Width(helpStr) - 2
	if gap < 1 {
		// Not enough room for help; drop it.
		helpStr = ""
		gap = width - lipgloss.Width(content) - 2
		if gap < 0 {
			gap = 0
		}
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap) + helpStr)
}
