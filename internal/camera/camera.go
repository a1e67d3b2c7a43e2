// Package camera provides live video sources for the scanner.
package camera

import (
	"context"
	"image"

	"qrcheckin.klederson.com/internal/profile"
)

// Stream is an open camera. It has exactly one owner, which must Close it.
type Stream interface {
	// Ready reports whether enough data is buffered to sample a frame.
	Ready() bool
	// Frame returns the most recent frame, or nil before the first one.
	Frame() image.Image
	// Close stops capture and releases the device. It is idempotent.
	Close() error
}

// Source opens camera streams.
type Source interface {
	Open(ctx context.Context, v profile.Video) (Stream, error)
}
