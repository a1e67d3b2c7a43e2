// Package viewfinder draws camera frames as text with the scan region
// outlined.
package viewfinder

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorBright = lipgloss.Color("#00FF41")
	colorMid    = lipgloss.Color("#008F11")
	colorDim    = lipgloss.Color("#004A0A")

	styleFrame   = lipgloss.NewStyle().Foreground(colorMid)
	styleOutside = lipgloss.NewStyle().Foreground(colorDim)
	styleRegion  = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleLegend  = lipgloss.NewStyle().Foreground(colorMid)
)

// Render produces the viewfinder as a styled string of width x height
// cells. A nil frame renders an empty viewfinder of the given aspect.
func Render(width, height int, frame image.Image, frameW, frameH int, fraction float64, line *Scanline) string {
	if width < 4 || height < 3 {
		return ""
	}
	bounds := image.Rect(0, 0, frameW, frameH)
	if frame != nil {
		bounds = frame.Bounds()
	}
	cols, rows := Fit(width, height, bounds.Dx(), bounds.Dy())
	if cols == 0 {
		return ""
	}
	region := RegionCells(cols, rows, bounds, fraction)
	padLeft := strings.Repeat(" ", (width-cols)/2)
	padTop := (height - rows) / 2

	var sb strings.Builder
	for i := 0; i < padTop; i++ {
		sb.WriteByte('\n')
	}
	for row := 0; row < rows; row++ {
		sb.WriteString(padLeft)
		for col := 0; col < cols; col++ {
			sb.WriteString(renderCell(col, row, cols, rows, bounds, region, frame, line))
		}
		if row < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func renderCell(col, row, cols, rows int, bounds, region image.Rectangle, frame image.Image, line *Scanline) string {
	if ch, ok := borderChar(col, row, region); ok {
		return styleRegion.Render(string(ch))
	}

	ch := byte(' ')
	if frame != nil {
		ch = LumaChar(Luma(frame, CellPixel(col, row, cols, rows, bounds)))
	}
	inside := image.Pt(col, row).In(region)
	if !inside {
		return styleOutside.Render(string(ch))
	}

	if line != nil {
		intensity := line.Intensity(row, region.Min.Y+1, region.Max.Y-1)
		if c := lineColor(intensity); c != "" {
			if ch == ' ' {
				ch = '-'
			}
			return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(ch))
		}
	}
	return styleFrame.Render(string(ch))
}

// borderChar returns the outline character for cells on the region edge.
func borderChar(col, row int, r image.Rectangle) (rune, bool) {
	if r.Empty() {
		return 0, false
	}
	top, bottom := row == r.Min.Y, row == r.Max.Y-1
	left, right := col == r.Min.X, col == r.Max.X-1
	inX := col >= r.Min.X && col < r.Max.X
	inY := row >= r.Min.Y && row < r.Max.Y

	switch {
	case top && left:
		return '┌', true
	case top && right:
		return '┐', true
	case bottom && left:
		return '└', true
	case bottom && right:
		return '┘', true
	case (top || bottom) && inX:
		return '─', true
	case (left || right) && inY:
		return '│', true
	}
	return 0, false
}

func lineColor(intensity float64) string {
	if intensity <= 0 {
		return ""
	}
	if intensity > 0.8 {
		return "#00FF41"
	}
	if intensity > 0.5 {
		return "#00CC33"
	}
	return "#00AA22"
}

// RenderLegend produces the line under the viewfinder.
func RenderLegend(width int, frameW, frameH int, fraction float64) string {
	legend := styleLegend.Render(fmt.Sprintf("%dx%d  ROI %d%%", frameW, frameH, int(fraction*100+0.5)))
	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}
