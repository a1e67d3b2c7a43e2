package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// HistoryEntry is one finished scan attempt.
type HistoryEntry struct {
	At   time.Time
	ID   string
	Text string
	Kind Kind
}

// RenderHistory renders the recent-outcomes panel, newest first.
// The header stays fixed; entries that do not fit are dropped.
func RenderHistory(entries []HistoryEntry, width, height int, title, empty string) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	header := StylePanelTitle.Render(fmt.Sprintf("%s [%d]", title, len(entries)))
	separator := StyleSeparator.Render(strings.Repeat("-", innerW))
	headerLines := []string{header, separator}

	innerH := height - 2
	if innerH < len(headerLines)+1 {
		innerH = len(headerLines) + 1
	}
	space := innerH - len(headerLines)

	var lines []string
	if len(entries) == 0 {
		lines = append(lines, "", StyleHelp.Render(" "+empty))
	}
	for i := len(entries) - 1; i >= 0 && len(lines) < space; i-- {
		lines = append(lines, renderHistoryEntry(entries[i], innerW)...)
	}

	if len(lines) > space {
		lines = lines[:space]
	}
	for len(lines) < space {
		lines = append(lines, "")
	}

	all := make([]string, 0, innerH)
	all = append(all, headerLines...)
	all = append(all, lines...)

	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(all, "\n"))
	return clampLines(rendered, height)
}

func renderHistoryEntry(e HistoryEntry, maxW int) []string {
	id := e.ID
	if id == "" {
		id = "-"
	}
	line1 := StyleLabel.Render(" "+e.At.Format("15:04:05")+" ") + StyleValue.Render(truncRaw(id, maxW-10))
	line2 := "   " + e.Kind.Style().Render(truncRaw(e.Text, maxW-3))
	return []string{line1, line2, ""}
}

// truncRaw pads or truncates s to exactly w terminal cells.
func truncRaw(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > w {
		s = ansi.Truncate(s, w, "")
	}
	if n := ansi.StringWidth(s); n < w {
		s += strings.Repeat(" ", w-n)
	}
	return s
}
