package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SettingRow is one adjustable setting.
type SettingRow struct {
	Label string
	Value string
}

// RenderSettings renders the settings editor. cursor < 0 means the editor
// does not have focus. When locked, values are dimmed and note is shown.
func RenderSettings(title string, rows []SettingRow, cursor, width int, locked bool, note string, noteKind Kind) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	labelW := 0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r.Label))
	}

	lines := []string{StylePanelTitle.Render(title), StyleSeparator.Render(strings.Repeat("-", innerW))}
	for i, r := range rows {
		raw := " " + truncRaw(r.Label, labelW) + "  ‹ " + r.Value + " ›"
		switch {
		case locked:
			lines = append(lines, StyleLocked.Render(truncRaw(raw, innerW)))
		case i == cursor:
			lines = append(lines, StyleCursorLine.Render(truncRaw(raw, innerW)))
		default:
			lines = append(lines, StyleLabel.Render(" "+truncRaw(r.Label, labelW)+"  ")+StyleValue.Render(r.Value))
		}
	}
	if note != "" {
		lines = append(lines, noteKind.Style().Render(" "+truncRaw(note, innerW-1)))
	}

	style := StylePanelBorder
	if cursor >= 0 && !locked {
		style = StylePanelActive
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}
