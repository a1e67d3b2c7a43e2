package ui

import "strings"

// RenderAlert renders a blocking operator alert box.
func RenderAlert(width int, title, body, hint string) string {
	w := width / 2
	if w < 30 {
		w = 30
	}
	content := strings.Join([]string{
		StylePanelTitle.Foreground(ColorWarning).Render(title),
		"",
		body,
		"",
		StyleHelp.Render(hint),
	}, "\n")
	return StyleAlert.Width(w).Render(content)
}
