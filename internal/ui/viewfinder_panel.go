package ui

import "strings"

// RenderViewfinderPanel wraps the viewfinder and its legend with a styled
// border. The status line sits under the legend. The viewfinder itself is
// rendered by the caller to avoid import cycles.
func RenderViewfinderPanel(width, height int, content, legend, status string, active bool) string {
	body := content + "\n" + legend + "\n" + status
	style := StylePanelBorder
	if active {
		style = StylePanelActive
	}
	return clampLines(style.Width(width-2).Height(height-2).Render(body), height)
}

// clampLines cuts or pads rendered output to exactly height lines.
// lipgloss Height() only sets a minimum; it won't truncate overflow.
func clampLines(rendered string, height int) string {
	lines := strings.Split(rendered, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
