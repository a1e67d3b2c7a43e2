package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qrcheckin.klederson.com/internal/config"
)

// MenuItem is one navigation entry of the menu bar.
type MenuItem struct {
	Key    string
	Label  string
	Active bool
}

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, items []MenuItem, eventID string, demo bool, demoLabel string) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	menu := ""
	for _, it := range items {
		entry := "[" + it.Key + "]" + it.Label
		if it.Active {
			menu += "  " + StyleMenuActive.Render(entry)
			continue
		}
		menu += "  " + StyleMenuKey.Render("["+it.Key+"]") + StyleMenuLabel.Render(it.Label)
	}

	right := StyleMenuLabel.Render("Event: "+eventID) + " "
	if demo {
		right = StyleDemoTag.Render(demoLabel) + "  " + right
	}

	left := StyleMenuKey.Render(title) + menu

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}
	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
