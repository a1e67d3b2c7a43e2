package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the main panel and side panel horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, mainPanel, sidePanel, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, mainPanel, sidePanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}

// ComposeScreen stacks a single full-width body between the bars.
func ComposeScreen(menuBar, body, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, body, statusBar)
}

// PlaceModal centers modal in a width x height area. The modal replaces
// whatever the area held.
func PlaceModal(width, height int, modal string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceChars(" "))
}
