package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/dlecorfec/progjpeg"
)

// JPEGEncoder encodes images to baseline JPEG using Go's standard
// library. Single-pass, sequential scan.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpg" }
func (e *JPEGEncoder) Available() bool   { return true }

func (e *JPEGEncoder) Encode(img image.Image, quality int, _ bool) ([]byte, error) {
	if err := checkBounds(img); err != nil {
		return nil, err
	}
	quality = clampQuality(quality, 85)

	var buf bytes.Buffer
	buf.Grow(256 * 1024) // pre-alloc 256KB

	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OptimizedJPEGEncoder encodes with optimized Huffman coding and, when
// web optimization is requested, a progressive scan script.
type OptimizedJPEGEncoder struct{}

func (e *OptimizedJPEGEncoder) Format() string    { return "jpeg" }
func (e *OptimizedJPEGEncoder) Extension() string { return "jpg" }
func (e *OptimizedJPEGEncoder) Available() bool   { return true }

func (e *OptimizedJPEGEncoder) Encode(img image.Image, quality int, webOptimize bool) ([]byte, error) {
	if err := checkBounds(img); err != nil {
		return nil, err
	}
	quality = clampQuality(quality, 85)

	var buf bytes.Buffer
	buf.Grow(256 * 1024)

	err := progjpeg.Encode(&buf, img, &progjpeg.Options{
		Quality:     quality,
		Progressive: webOptimize,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// clampQuality replaces out-of-range quality with def.
func clampQuality(quality, def int) int {
	if quality <= 0 || quality > 100 {
		return def
	}
	return quality
}

// checkBounds rejects images the encode primitives cannot represent.
func checkBounds(img image.Image) error {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", b.Dx(), b.Dy())
	}
	return nil
}
