package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Field is one labelled line of the attendee card. Flag fields render
// as a yes/no badge.
type Field struct {
	Label  string
	Value  string
	IsFlag bool
	Flag   bool
}

// Card is the content of an attendee card.
type Card struct {
	Title    string
	Hint     string
	Fields   []Field
	Yes, No  string
	Message  string
	Kind     Kind
	Progress float64 // < 0 hides the bar
}

var (
	badgeYes = lipgloss.NewStyle().Foreground(ColorBlack).Background(ColorMatrixGreen).Bold(true).Padding(0, 1)
	badgeNo  = lipgloss.NewStyle().Foreground(ColorMatrixGreen).Background(ColorDimGreen).Padding(0, 1)
)

// RenderAttendeeCard renders the attendee detail panel.
func RenderAttendeeCard(c Card, width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	title := StylePanelTitle.Render(c.Title)
	hint := StyleHelp.Render(c.Hint)
	titleLine := title + strings.Repeat(" ", max(0, innerW-lipgloss.Width(title)-lipgloss.Width(hint))) + hint

	lines := []string{titleLine, StyleSeparator.Render(strings.Repeat("-", innerW)), ""}

	labelW := 0
	for _, f := range c.Fields {
		labelW = max(labelW, lipgloss.Width(f.Label))
	}
	for _, f := range c.Fields {
		label := StyleLabel.Render("  " + truncRaw(f.Label, labelW) + "  ")
		var value string
		switch {
		case f.IsFlag && f.Flag:
			value = badgeYes.Render(c.Yes)
		case f.IsFlag:
			value = badgeNo.Render(c.No)
		default:
			value = StyleValue.Render(f.Value)
		}
		lines = append(lines, label+value)
	}

	if c.Message != "" {
		lines = append(lines, "", "  "+c.Kind.Style().Render(c.Message))
	}
	if c.Progress >= 0 {
		lines = append(lines, "", "  "+RenderProgress(c.Progress, innerW-6, c.Kind))
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	rendered := StylePanelActive.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
	return clampLines(rendered, height)
}

// RenderProgress draws a bracketed bar filled to fraction.
func RenderProgress(fraction float64, width int, kind Kind) string {
	if width < 1 {
		width = 1
	}
	fraction = math.Max(0, math.Min(1, fraction))
	filled := int(math.Round(fraction * float64(width)))

	filledPart := kind.Style().Render(strings.Repeat("|", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(strings.Repeat("-", width-filled))
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]") +
		StyleHelp.Render(fmt.Sprintf(" %3d%%", int(fraction*100+0.5)))
}
