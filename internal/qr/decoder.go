package qr

import (
	"image"
	"sync"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// Decoder finds QR text in an RGBA pixel buffer. ok is false when no code
// was recognized, which is not an error.
type Decoder interface {
	Decode(pix []byte, width, height int) (text string, ok bool)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(pix []byte, width, height int) (string, bool)

func (f DecoderFunc) Decode(pix []byte, width, height int) (string, bool) {
	return f(pix, width, height)
}

// ZXing decodes with gozxing. Only the image as captured is searched; no
// inverted (light-on-dark) pass is attempted, trading recall for latency.
type ZXing struct {
	mu     sync.Mutex
	reader gozxing.Reader
}

// NewZXing creates a ZXing decoder.
func NewZXing() *ZXing {
	return &ZXing{reader: qrcode.NewQRCodeReader()}
}

// Decode implements Decoder.
func (z *ZXing) Decode(pix []byte, width, height int) (string, bool) {
	if width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return "", false
	}
	img := &image.RGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", false
	}

	z.mu.Lock()
	defer z.mu.Unlock()
	result, err := z.reader.Decode(bmp, nil)
	if err != nil || result == nil {
		return "", false
	}
	text := result.GetText()
	return text, text != ""
}
