package ui

import "github.com/charmbracelet/lipgloss"

// Matrix color palette
var (
	ColorMatrixGreen  = lipgloss.Color("#00FF41")
	ColorGreen        = lipgloss.Color("#00CC33")
	ColorMidGreen     = lipgloss.Color("#008F11")
	ColorDimGreen     = lipgloss.Color("#004A0A")
	ColorBlack        = lipgloss.Color("#000000")
	ColorBorderBright = lipgloss.Color("#00FF41")
	ColorBorderNorm   = lipgloss.Color("#00AA22")
	ColorError        = lipgloss.Color("#FF3300")
	ColorWarning      = lipgloss.Color("#FFAA00")
	ColorInfo         = lipgloss.Color("#00FFAA")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleMenuActive = lipgloss.NewStyle().
			Foreground(ColorBlack).
			Background(ColorMatrixGreen).
			Bold(true)

	StyleDemoTag = lipgloss.NewStyle().
			Foreground(ColorBlack).
			Background(ColorWarning).
			Bold(true).
			Padding(0, 1)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderBright)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleValue = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleCursorLine = lipgloss.NewStyle().
			Foreground(ColorBlack).
			Background(ColorMatrixGreen).
			Bold(true)

	StyleLocked = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleAlert = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorWarning).
			Foreground(ColorWarning).
			Bold(true).
			Padding(1, 3)
)

// Kind selects the color a message is shown in.
type Kind int

const (
	KindNeutral Kind = iota
	KindActive
	KindSuccess
	KindWarning
	KindError
)

var kindStyles = map[Kind]lipgloss.Style{
	KindNeutral: lipgloss.NewStyle().Foreground(ColorGreen),
	KindActive:  lipgloss.NewStyle().Foreground(ColorInfo).Bold(true),
	KindSuccess: lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true),
	KindWarning: lipgloss.NewStyle().Foreground(ColorWarning).Bold(true),
	KindError:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
}

// Style returns the foreground style for k.
func (k Kind) Style() lipgloss.Style {
	if s, ok := kindStyles[k]; ok {
		return s
	}
	return kindStyles[KindNeutral]
}
