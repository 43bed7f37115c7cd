// Package engine implements the smart compression engine: image
// analysis, algorithm selection, encoder dispatch and target-size
// search. The engine is stateless; each Compress call is a
// self-contained computation and safe to run concurrently.
package engine

import (
	"errors"
	"fmt"
	"image"

	"github.com/sorainnosia/image-resizer-advanced/internal/encoder"
)

// Result is the outcome of one compression call.
type Result struct {
	// Data holds the compressed bytes.
	Data []byte

	// Format tags the true encoding of Data ("jpeg", "png", "webp",
	// "avif"). It can differ from AlgorithmUsed's family when a backend
	// substitution occurred.
	Format string

	// AlgorithmUsed is the concrete algorithm identity, after Auto
	// resolution. A backend substitution does not change it.
	AlgorithmUsed Algorithm

	// FinalQuality is the quality actually used; 0 for lossless paths.
	FinalQuality int

	// Ratio is output bytes divided by the estimated raw size of the
	// input, always computed from the bytes actually produced.
	Ratio float64
}

// encoderName maps a concrete algorithm to its adapter's registry key.
var encoderName = map[Algorithm]string{
	Simple:        "jpeg",
	StandardJPEG:  "jpeg",
	OptimizedJPEG: "jpeg-optimized",
	StandardPNG:   "png",
	OptimizedPNG:  "png-optimized",
	QuantizedPNG:  "png-optimized",
	WebPLossy:     "webp",
	WebPLossless:  "webp-lossless",
	AVIF:          "avif",
}

// quantizedMaxColors is the palette budget for the quantized PNG path.
const quantizedMaxColors = 256

// Compressor orchestrates analysis, selection and encoding. It holds
// only the read-only adapter registry and is safe for concurrent use.
type Compressor struct {
	registry *encoder.Registry
}

// New creates a Compressor, probing encoder backends once.
func New() *Compressor {
	return &Compressor{registry: encoder.NewRegistry()}
}

// Registry exposes the adapter registry for availability reporting.
func (c *Compressor) Registry() *encoder.Registry {
	return c.registry
}

// Compress encodes img per opts and returns the packaged result. It
// never retries across algorithm families: a failed adapter or an
// exhausted size search surfaces the error to the caller.
func (c *Compressor) Compress(img image.Image, opts Options) (*Result, error) {
	alg := opts.Algorithm
	if alg == Auto {
		alg = Select(Analyze(img))
	}

	enc, _, err := c.registry.Resolve(encoderName[alg])
	if err != nil {
		return nil, &EncodeError{Algorithm: alg, Err: err}
	}

	src := img
	if alg == QuantizedPNG {
		src = quantizeColors(toNRGBA(img), quantizedMaxColors)
	}

	var data []byte
	quality := 0

	switch {
	case opts.TargetSize > 0:
		data, quality, err = c.fitTargetSize(src, alg, enc, opts)
	default:
		if alg.SupportsQuality() {
			quality = opts.effectiveQuality(alg)
		}
		data, err = enc.Encode(src, quality, opts.OptimizeForWeb)
	}
	if err != nil {
		if errors.Is(err, ErrSizeUnreachable) {
			return nil, err
		}
		return nil, &EncodeError{Algorithm: alg, Err: err}
	}

	return &Result{
		Data:          data,
		Format:        enc.Format(),
		AlgorithmUsed: alg,
		FinalQuality:  quality,
		Ratio:         float64(len(data)) / float64(estimateRawSize(img)),
	}, nil
}

// fitTargetSize routes a byte-budget request to the search matching the
// algorithm family. Quality-bearing families search their quality
// range; lossless families and AVIF get a single encode that is
// accepted or rejected against the target with no retry.
func (c *Compressor) fitTargetSize(img image.Image, alg Algorithm, enc encoder.Encoder, opts Options) ([]byte, int, error) {
	switch alg {
	case Simple:
		return fitSimple(img, opts.TargetSize, opts.AutoScale, func(m image.Image, q int) ([]byte, error) {
			return enc.Encode(m, q, opts.OptimizeForWeb)
		})

	case StandardJPEG, OptimizedJPEG:
		return fitToSize(opts.TargetSize, opts.Quality, func(q int) ([]byte, error) {
			return enc.Encode(img, q, opts.OptimizeForWeb)
		})

	case WebPLossy:
		if fe, ok := enc.(encoder.FloatQualityEncoder); ok {
			data, q, err := fitToSizeFloat(opts.TargetSize, opts.Quality, func(q float32) ([]byte, error) {
				return fe.EncodeFloat(img, q)
			})
			return data, int(q), err
		}
		// Substituted backend without a continuous scale: integer search.
		return fitToSize(opts.TargetSize, opts.Quality, func(q int) ([]byte, error) {
			return enc.Encode(img, q, opts.OptimizeForWeb)
		})

	default:
		// No quality knob to search. Encode once and check the budget.
		quality := 0
		if alg.SupportsQuality() {
			quality = opts.effectiveQuality(alg)
		}
		data, err := enc.Encode(img, quality, opts.OptimizeForWeb)
		if err != nil {
			return nil, 0, err
		}
		if int64(len(data)) > opts.TargetSize {
			return nil, 0, fmt.Errorf("%s produced %d bytes for a %d byte target: %w",
				alg, len(data), opts.TargetSize, ErrSizeUnreachable)
		}
		return data, quality, nil
	}
}

// estimateRawSize returns width*height*bytesPerPixel for the input's
// channel layout: 1 for gray, 3 for YCbCr, 4 for RGBA and anything
// else.
func estimateRawSize(img image.Image) int {
	b := img.Bounds()
	pixels := b.Dx() * b.Dy()
	if pixels == 0 {
		return 1
	}

	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return pixels
	case *image.YCbCr:
		return pixels * 3
	default:
		return pixels * 4
	}
}
