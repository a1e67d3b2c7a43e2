//go:build !linux

package camera

import (
	"context"
	"log/slog"
	"runtime"

	apperrors "qrcheckin.klederson.com/internal/errors"
	"qrcheckin.klederson.com/internal/profile"
)

// V4L2 is only available on Linux; elsewhere Open always fails.
type V4L2 struct {
	device string
}

// NewV4L2 creates a source that reports the camera as unavailable.
func NewV4L2(device string, _ *slog.Logger) *V4L2 {
	return &V4L2{device: device}
}

// Open implements Source.
func (s *V4L2) Open(context.Context, profile.Video) (Stream, error) {
	return nil, apperrors.New(apperrors.CodeCamera, "V4L2 capture is not supported on "+runtime.GOOS+"; use --demo")
}
