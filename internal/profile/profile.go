package profile

import (
	"fmt"
	"time"
)

// Level is the scan cadence level chosen by the operator.
type Level int

const (
	LevelFast       Level = 1
	LevelNormal     Level = 2
	LevelPowerSaver Level = 3
)

// cadence maps a level to the minimum time between decode attempts.
var cadence = map[Level]time.Duration{
	LevelFast:       100 * time.Millisecond,
	LevelNormal:     300 * time.Millisecond,
	LevelPowerSaver: 500 * time.Millisecond,
}

// Interval returns the cadence for l. Unknown levels fall back to normal.
func (l Level) Interval() time.Duration {
	if d, ok := cadence[l]; ok {
		return d
	}
	return cadence[LevelNormal]
}

func (l Level) String() string {
	switch l {
	case LevelFast:
		return "fast"
	case LevelNormal:
		return "normal"
	case LevelPowerSaver:
		return "power-saving"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Video holds the camera constraints requested when acquiring a stream.
// Width, Height and FrameRate are ideals; the device may pick the closest mode.
type Video struct {
	FacingMode string `json:"facingMode"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	FrameRate  int    `json:"frameRate"`
}

// FrameInterval returns the time between frames at the requested rate.
func (v Video) FrameInterval() time.Duration {
	if v.FrameRate <= 0 {
		return time.Second / 20
	}
	return time.Second / time.Duration(v.FrameRate)
}

// Profile is a bundle of camera and scan-timing parameters.
type Profile struct {
	Name           string  `json:"name"`
	Video          Video   `json:"videoConstraints"`
	ScanSpeed      Level   `json:"scanSpeed"`
	ScanScale      float64 `json:"scanScale"`
	ScanRegionSize float64 `json:"scanRegionSize"`
}

// Interval is shorthand for the profile's cadence.
func (p Profile) Interval() time.Duration {
	return p.ScanSpeed.Interval()
}

// Validate reports whether the profile can drive a scan session.
// An unknown cadence level is accepted; it resolves to normal.
func (p Profile) Validate() error {
	if p.ScanScale <= 0 || p.ScanScale > 1 {
		return fmt.Errorf("scan scale %.2f out of range (0, 1]", p.ScanScale)
	}
	if p.ScanRegionSize <= 0 || p.ScanRegionSize > 1 {
		return fmt.Errorf("scan region %.2f out of range (0, 1]", p.ScanRegionSize)
	}
	if p.Video.Width <= 0 || p.Video.Height <= 0 {
		return fmt.Errorf("video size %dx%d must be positive", p.Video.Width, p.Video.Height)
	}
	if p.Video.FrameRate <= 0 {
		return fmt.Errorf("frame rate %d must be positive", p.Video.FrameRate)
	}
	return nil
}
