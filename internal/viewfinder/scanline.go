package viewfinder

import (
	"math"
	"time"

	"qrcheckin.klederson.com/internal/config"
)

// Scanline is the horizontal line sweeping down the region of interest.
type Scanline struct {
	Pos       float64 // Current position in [0, 1), top to bottom
	StartTime time.Time
}

// NewScanline creates a scan line at the top of the region.
func NewScanline() *Scanline {
	return &Scanline{StartTime: time.Now()}
}

// Update advances the line based on elapsed time.
func (s *Scanline) Update(now time.Time) {
	elapsed := now.Sub(s.StartTime).Seconds()
	s.Pos = math.Mod(elapsed*config.ScanlinePerS, 1)
	if s.Pos < 0 {
		s.Pos += 1
	}
}

// Row returns the line's row within a region spanning rows [top, bottom).
func (s *Scanline) Row(top, bottom int) int {
	if bottom <= top {
		return top
	}
	return top + int(s.Pos*float64(bottom-top))
}

// Intensity returns the glow [0, 1] for row. Rows just above the line keep
// a short trail; rows below it are dark.
func (s *Scanline) Intensity(row, top, bottom int) float64 {
	const trail = 3
	diff := s.Row(top, bottom) - row
	if diff < 0 || diff > trail {
		return 0
	}
	return 1 - float64(diff)/float64(trail+1)
}
