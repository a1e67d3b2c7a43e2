package sampler

import (
	"image"
	"math"
	"time"

	xdraw "golang.org/x/image/draw"

	"qrcheckin.klederson.com/internal/profile"
)

// Frame is one sampled, downsampled region of a camera frame. It lives for a
// single decode attempt.
type Frame struct {
	At     time.Time
	Region image.Rectangle // Region of interest in source coordinates
	Pix    []byte          // RGBA, Width*Height*4 bytes
	Width  int
	Height int
}

// Sampler enforces the scan cadence and cuts frames down for the decoder.
// It is not safe for concurrent use; the session drives it from one loop.
type Sampler struct {
	interval time.Duration
	region   float64
	scale    float64
	last     time.Time
	sampled  bool
}

// New creates a sampler for p.
func New(p profile.Profile) *Sampler {
	return &Sampler{
		interval: p.Interval(),
		region:   p.ScanRegionSize,
		scale:    p.ScanScale,
	}
}

// Interval returns the configured cadence.
func (s *Sampler) Interval() time.Duration {
	return s.interval
}

// Due reports whether enough time has passed since the last sample.
func (s *Sampler) Due(now time.Time) bool {
	if !s.sampled {
		return true
	}
	return now.Sub(s.last) >= s.interval
}

// Sample crops the centered region of interest of src, downsamples it and
// records now as the last sample time. ok is false when the region would be
// empty.
func (s *Sampler) Sample(src image.Image, now time.Time) (Frame, bool) {
	s.last = now
	s.sampled = true

	roi := RegionOfInterest(src.Bounds(), s.region)
	dst := Downsample(src, roi, s.scale)
	if dst == nil {
		return Frame{}, false
	}
	return Frame{
		At:     now,
		Region: roi,
		Pix:    dst.Pix,
		Width:  dst.Rect.Dx(),
		Height: dst.Rect.Dy(),
	}, true
}

// Reset forgets the last sample time so the next tick samples immediately.
func (s *Sampler) Reset() {
	s.sampled = false
	s.last = time.Time{}
}

// RegionOfInterest returns the centered sub-rectangle of bounds covering
// fraction of each dimension.
func RegionOfInterest(bounds image.Rectangle, fraction float64) image.Rectangle {
	w := int(math.Floor(float64(bounds.Dx()) * fraction))
	h := int(math.Floor(float64(bounds.Dy()) * fraction))
	x := bounds.Min.X + (bounds.Dx()-w)/2
	y := bounds.Min.Y + (bounds.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// Downsample scales region r of src by scale into a new RGBA image. It
// returns nil when the result would have no pixels.
func Downsample(src image.Image, r image.Rectangle, scale float64) *image.RGBA {
	w := int(math.Floor(float64(r.Dx()) * scale))
	h := int(math.Floor(float64(r.Dy()) * scale))
	if w <= 0 || h <= 0 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, r, xdraw.Src, nil)
	return dst
}
