package viewfinder

import (
	"image"
	"math"

	"qrcheckin.klederson.com/internal/config"
	"qrcheckin.klederson.com/internal/sampler"
)

// ramp maps luminance to characters, dark to bright.
const ramp = " .:-=+*#%@"

// Fit returns the largest cols x rows grid with the frame's aspect ratio
// that fits in width x height terminal cells.
func Fit(width, height, frameW, frameH int) (cols, rows int) {
	if width <= 0 || height <= 0 || frameW <= 0 || frameH <= 0 {
		return 0, 0
	}
	ratio := float64(frameH) / float64(frameW) * config.AspectRatio
	cols = width
	rows = int(math.Round(float64(cols) * ratio))
	if rows > height {
		rows = height
		cols = int(math.Round(float64(rows) / ratio))
	}
	return max(cols, 1), max(rows, 1)
}

// RegionCells maps the frame's region of interest onto a cols x rows grid.
func RegionCells(cols, rows int, bounds image.Rectangle, fraction float64) image.Rectangle {
	roi := sampler.RegionOfInterest(bounds, fraction)
	fx := float64(cols) / float64(bounds.Dx())
	fy := float64(rows) / float64(bounds.Dy())
	return image.Rect(
		int(math.Floor(float64(roi.Min.X-bounds.Min.X)*fx)),
		int(math.Floor(float64(roi.Min.Y-bounds.Min.Y)*fy)),
		int(math.Ceil(float64(roi.Max.X-bounds.Min.X)*fx)),
		int(math.Ceil(float64(roi.Max.Y-bounds.Min.Y)*fy)),
	)
}

// CellPixel returns the source pixel sampled for a grid cell.
func CellPixel(col, row, cols, rows int, bounds image.Rectangle) image.Point {
	x := bounds.Min.X + int((float64(col)+0.5)*float64(bounds.Dx())/float64(cols))
	y := bounds.Min.Y + int((float64(row)+0.5)*float64(bounds.Dy())/float64(rows))
	return image.Pt(x, y)
}

// Luma returns the Rec. 601 luminance of the pixel at p in [0, 255].
func Luma(img image.Image, p image.Point) uint8 {
	r, g, b, _ := img.At(p.X, p.Y).RGBA()
	y := (299*r + 587*g + 114*b) / 1000
	return uint8(y >> 8)
}

// LumaChar returns the ramp character for a luminance value.
func LumaChar(y uint8) byte {
	return ramp[int(y)*(len(ramp)-1)/255]
}
