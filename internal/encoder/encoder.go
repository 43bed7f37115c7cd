package encoder

import (
	"image"
)

// Encoder encodes an image to one concrete compression format.
type Encoder interface {
	// Format returns the output format tag (e.g. "jpeg", "webp", "avif",
	// "png") describing the bytes Encode produces.
	Format() string

	// Encode converts the image to bytes. quality is 1-100 where the
	// format supports it and ignored otherwise; webOptimize requests
	// progressive/web-friendly scan ordering where supported.
	Encode(img image.Image, quality int, webOptimize bool) ([]byte, error)

	// Available returns true if the encoder is ready to use. External
	// backends (avifenc) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}

// FloatQualityEncoder is implemented by encoders whose backend accepts
// a continuous quality scale. The target-size search uses it to run a
// floating-point bracket instead of integer stepping.
type FloatQualityEncoder interface {
	EncodeFloat(img image.Image, quality float32) ([]byte, error)
}
