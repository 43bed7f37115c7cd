package encoder

import (
	"bytes"
	"image"

	"github.com/chai2010/webp"
)

// WebPEncoder encodes images to WebP via libwebp. The lossy variant
// takes a 0-100 quality; the lossless variant ignores quality entirely.
// The backend wants RGBA input.
type WebPEncoder struct {
	Lossless bool
}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }
func (e *WebPEncoder) Available() bool   { return true }

func (e *WebPEncoder) Encode(img image.Image, quality int, _ bool) ([]byte, error) {
	return e.EncodeFloat(img, float32(clampQuality(quality, 90)))
}

// EncodeFloat encodes at a continuous quality, used by the target-size
// search to converge on fractional midpoints.
func (e *WebPEncoder) EncodeFloat(img image.Image, quality float32) ([]byte, error) {
	if err := checkBounds(img); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(256 * 1024)

	opts := &webp.Options{Lossless: e.Lossless, Quality: quality}
	if err := webp.Encode(&buf, asNRGBA(img), opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
