//go:build linux

package camera

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"github.com/blackjack/webcam"

	"qrcheckin.klederson.com/internal/config"
	apperrors "qrcheckin.klederson.com/internal/errors"
	"qrcheckin.klederson.com/internal/profile"
)

// pixMJPEG is V4L2_PIX_FMT_MJPEG.
const pixMJPEG webcam.PixelFormat = 0x47504A4D

// V4L2 opens a Video4Linux device such as /dev/video0. V4L2 has no notion
// of facing mode; the device path selects the camera.
type V4L2 struct {
	device string
	log    *slog.Logger

	mu   sync.Mutex
	prev *v4l2Stream
}

// NewV4L2 creates a source for device.
func NewV4L2(device string, log *slog.Logger) *V4L2 {
	if log == nil {
		log = slog.Default()
	}
	return &V4L2{device: device, log: log}
}

// Open implements Source. It waits for a previous stream on the same device
// to finish tearing down.
func (s *V4L2) Open(ctx context.Context, v profile.Video) (Stream, error) {
	s.mu.Lock()
	prev := s.prev
	s.mu.Unlock()
	if prev != nil {
		select {
		case <-prev.done:
		case <-ctx.Done():
			return nil, apperrors.Wrap(apperrors.CodeCamera, "previous stream still closing", ctx.Err())
		}
	}

	cam, err := webcam.Open(s.device)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCamera, "open "+s.device, err)
	}

	if _, ok := cam.GetSupportedFormats()[pixMJPEG]; !ok {
		cam.Close()
		return nil, apperrors.New(apperrors.CodeCamera, s.device+" does not offer MJPEG")
	}
	_, w, h, err := cam.SetImageFormat(pixMJPEG, uint32(v.Width), uint32(v.Height))
	if err != nil {
		cam.Close()
		return nil, apperrors.Wrap(apperrors.CodeCamera, "set image format", err)
	}
	// Frame rate is an ideal, not a requirement.
	if err := cam.SetFramerate(float32(v.FrameRate)); err != nil {
		s.log.Debug("camera ignored frame rate", "fps", v.FrameRate, "error", err)
	}
	if err := cam.SetBufferCount(config.CameraBuffers); err != nil {
		s.log.Debug("camera ignored buffer count", "error", err)
	}
	if err := cam.StartStreaming(); err != nil {
		cam.Close()
		return nil, apperrors.Wrap(apperrors.CodeCamera, "start streaming", err)
	}

	st := &v4l2Stream{
		cam:  cam,
		log:  s.log,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	s.log.Info("camera opened", "device", s.device, "width", w, "height", h)

	s.mu.Lock()
	s.prev = st
	s.mu.Unlock()

	go st.loop()
	return st, nil
}

type v4l2Stream struct {
	cam *webcam.Webcam
	log *slog.Logger

	mu     sync.RWMutex
	latest image.Image

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// loop reads frames until stopped, then releases the device. The device is
// only touched from this goroutine.
func (st *v4l2Stream) loop() {
	defer close(st.done)
	defer func() {
		_ = st.cam.StopStreaming()
		_ = st.cam.Close()
	}()

	for {
		select {
		case <-st.stop:
			return
		default:
		}

		err := st.cam.WaitForFrame(config.CameraWaitTimeout)
		switch err.(type) {
		case nil:
		case *webcam.Timeout:
			continue
		default:
			st.log.Warn("camera wait failed", "error", err)
			return
		}

		frame, err := st.cam.ReadFrame()
		if err != nil || len(frame) == 0 {
			continue
		}
		img, err := decodeMJPEG(frame)
		if err != nil {
			st.log.Debug("drop undecodable frame", "error", err)
			continue
		}
		st.mu.Lock()
		st.latest = img
		st.mu.Unlock()
	}
}

func (st *v4l2Stream) Ready() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.latest != nil
}

func (st *v4l2Stream) Frame() image.Image {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.latest
}

// Close signals the capture loop to stop; the loop releases the device.
func (st *v4l2Stream) Close() error {
	st.once.Do(func() { close(st.stop) })
	return nil
}
