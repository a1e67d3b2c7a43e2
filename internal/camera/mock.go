package camera

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"sync"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"qrcheckin.klederson.com/internal/profile"
)

// DemoPayloads are the codes the mock camera cycles through. The last two
// exercise the format and not-found paths of the demo webhook.
var DemoPayloads = []string{
	"A1024;8Kx9mN4pQ7vR2aYu",
	"A2048;8Kx9mN4pQ7vR2aYu",
	"B0007;8Kx9mN4pQ7vR2aYu",
	"A1024;8Kx9mN4pQ7vR2aYu",
	"not-a-checkin-code",
	"Z9999;8Kx9mN4pQ7vR2aYu",
}

// Mock renders QR codes into synthetic frames for demo mode. Each payload is
// held in view for Hold, then the frame goes blank for Gap.
type Mock struct {
	Payloads []string
	Hold     time.Duration
	Gap      time.Duration
	Warmup   time.Duration // Frames before this are not ready
	Fail     error         // Returned by Open when set
}

// NewMock creates a demo source cycling through payloads.
func NewMock(payloads []string) *Mock {
	if len(payloads) == 0 {
		payloads = DemoPayloads
	}
	return &Mock{
		Payloads: payloads,
		Hold:     1500 * time.Millisecond,
		Gap:      2500 * time.Millisecond,
		Warmup:   300 * time.Millisecond,
	}
}

// Open implements Source.
func (m *Mock) Open(ctx context.Context, v profile.Video) (Stream, error) {
	if m.Fail != nil {
		return nil, m.Fail
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	st := m.newStream(v)
	st.cancel = cancel
	go st.loop(ctx, v.FrameInterval())
	return st, nil
}

func (m *Mock) newStream(v profile.Video) *mockStream {
	return &mockStream{
		m:      m,
		width:  v.Width,
		height: v.Height,
		start:  time.Now(),
		cache:  make(map[int]*image.RGBA),
		cancel: func() {},
	}
}

type mockStream struct {
	m      *Mock
	width  int
	height int
	start  time.Time
	cache  map[int]*image.RGBA

	mu     sync.RWMutex
	ready  bool
	latest image.Image

	cancel context.CancelFunc
}

func (st *mockStream) loop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			st.emit(now.Sub(st.start))
		}
	}
}

func (st *mockStream) emit(elapsed time.Duration) {
	frame := st.frameAt(elapsed)
	st.mu.Lock()
	st.ready = elapsed >= st.m.Warmup
	st.latest = frame
	st.mu.Unlock()
}

// frameAt returns the frame for elapsed time since open.
func (st *mockStream) frameAt(elapsed time.Duration) image.Image {
	period := st.m.Hold + st.m.Gap
	if period <= 0 {
		period = time.Second
	}
	slot := int(elapsed / period)
	if elapsed%period >= st.m.Hold {
		return st.blank()
	}
	idx := slot % len(st.m.Payloads)
	if img, ok := st.cache[idx]; ok {
		return img
	}
	img := st.render(st.m.Payloads[idx])
	st.cache[idx] = img
	return img
}

func (st *mockStream) blank() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, st.width, st.height))
	gray := uint8(96 + rand.Intn(32))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{gray, gray, gray, 0xff}}, image.Point{}, draw.Src)
	return img
}

// render draws payload as a QR code centered in a gray frame, sized to sit
// inside the smallest scan region.
func (st *mockStream) render(payload string) *image.RGBA {
	img := st.blank()
	side := min(st.width, st.height) / 2
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil || side <= 0 {
		return img
	}
	qr := code.Image(side)
	off := image.Pt((st.width-side)/2, (st.height-side)/2)
	draw.Draw(img, qr.Bounds().Add(off), qr, image.Point{}, draw.Src)
	return img
}

func (st *mockStream) Ready() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.ready
}

func (st *mockStream) Frame() image.Image {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.latest
}

func (st *mockStream) Close() error {
	st.cancel()
	return nil
}
