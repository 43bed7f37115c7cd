package engine

import (
	"fmt"
	"strings"
)

// Algorithm identifies a compression algorithm family.
//
// Auto is a request-only value: it is resolved to a concrete member by
// image analysis before any encoder is dispatched. Simple is the legacy
// quality-sweep path kept for backward compatibility with older batch
// configurations.
type Algorithm int

const (
	// Auto selects the best algorithm from image analysis.
	Auto Algorithm = iota
	// Simple is the legacy path: plain JPEG with a linear quality sweep
	// and an optional downscale fallback when a target size is set.
	Simple

	// StandardJPEG is single-pass baseline JPEG.
	StandardJPEG
	// OptimizedJPEG uses optimized Huffman coding and, for web output,
	// progressive scan ordering.
	OptimizedJPEG

	// StandardPNG is stdlib PNG at best compression.
	StandardPNG
	// OptimizedPNG brute-forces row filter strategies and keeps the
	// smallest encode.
	OptimizedPNG
	// QuantizedPNG reduces color precision first, then runs the
	// optimized PNG path.
	QuantizedPNG

	// WebPLossy is lossy WebP with a 0-100 quality.
	WebPLossy
	// WebPLossless is lossless WebP; quality is ignored.
	WebPLossless

	// AVIF is AV1 still-image encoding.
	AVIF
)

// algorithmNames maps each member to its canonical CLI/report name.
var algorithmNames = map[Algorithm]string{
	Auto:          "auto",
	Simple:        "simple",
	StandardJPEG:  "jpeg",
	OptimizedJPEG: "jpeg-optimized",
	StandardPNG:   "png",
	OptimizedPNG:  "png-optimized",
	QuantizedPNG:  "png-quantized",
	WebPLossy:     "webp",
	WebPLossless:  "webp-lossless",
	AVIF:          "avif",
}

func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// ParseAlgorithm resolves a CLI name to an Algorithm. It accepts a few
// common aliases for the JPEG and quantized-PNG families.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "simple":
		return Simple, nil
	case "jpeg", "jpg":
		return StandardJPEG, nil
	case "jpeg-optimized", "mozjpeg":
		return OptimizedJPEG, nil
	case "png":
		return StandardPNG, nil
	case "png-optimized", "optipng", "oxipng":
		return OptimizedPNG, nil
	case "png-quantized", "pngquant":
		return QuantizedPNG, nil
	case "webp":
		return WebPLossy, nil
	case "webp-lossless":
		return WebPLossless, nil
	case "avif":
		return AVIF, nil
	}
	return Auto, fmt.Errorf("unknown algorithm %q", s)
}

// SupportsQuality reports whether the algorithm accepts a quality
// parameter. Lossless families and the PNG variants do not.
func (a Algorithm) SupportsQuality() bool {
	switch a {
	case Simple, StandardJPEG, OptimizedJPEG, WebPLossy, AVIF:
		return true
	}
	return false
}

// RecommendedQuality is the default quality used when the caller does
// not supply one.
func (a Algorithm) RecommendedQuality() int {
	switch a {
	case Simple, StandardJPEG, OptimizedJPEG:
		return 85
	case WebPLossy:
		return 90
	case AVIF:
		return 80
	}
	return 100
}

// Extension is the canonical file extension, without the dot.
func (a Algorithm) Extension() string {
	switch a {
	case StandardPNG, OptimizedPNG, QuantizedPNG:
		return "png"
	case WebPLossy, WebPLossless:
		return "webp"
	case AVIF:
		return "avif"
	}
	return "jpg"
}

// Description is a one-line summary for CLI listings.
func (a Algorithm) Description() string {
	switch a {
	case Auto:
		return "Automatically select best algorithm based on image analysis"
	case Simple:
		return "Use lowest acceptable image quality"
	case StandardJPEG:
		return "Standard JPEG compression (fast, good quality)"
	case OptimizedJPEG:
		return "Optimized JPEG encoder (10-15% better compression)"
	case StandardPNG:
		return "Standard PNG compression (lossless)"
	case OptimizedPNG:
		return "Optimized PNG (smaller files, lossless)"
	case QuantizedPNG:
		return "Lossy PNG (up to 70% smaller, slight quality loss)"
	case WebPLossy:
		return "WebP lossy (25-35% better than JPEG)"
	case WebPLossless:
		return "WebP lossless (better than PNG)"
	case AVIF:
		return "AV1 Image Format (best compression, slower)"
	}
	return ""
}

// Algorithms lists every selectable member in display order, Auto first.
func Algorithms() []Algorithm {
	return []Algorithm{
		Auto, Simple,
		StandardJPEG, OptimizedJPEG,
		StandardPNG, OptimizedPNG, QuantizedPNG,
		WebPLossy, WebPLossless,
		AVIF,
	}
}
