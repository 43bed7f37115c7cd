package engine

import (
	"image"
	"math"
)

// quantizeColors reduces each RGB channel to a coarser step derived
// from maxColors (step = 256 / sqrt(maxColors)). This is uniform
// posterization, not a perceptual palette algorithm; it is a known
// placeholder with a stable (image, maxColors) contract so a median-cut
// or octree quantizer can replace it without touching callers.
func quantizeColors(img *image.NRGBA, maxColors int) *image.NRGBA {
	if maxColors < 1 {
		maxColors = 1
	}
	s := int(256 / math.Sqrt(float64(maxColors)))
	if s < 1 {
		s = 1
	}
	if s > 128 {
		s = 128
	}
	step := uint8(s)

	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = (out.Pix[i] / step) * step
		out.Pix[i+1] = (out.Pix[i+1] / step) * step
		out.Pix[i+2] = (out.Pix[i+2] / step) * step
	}
	return out
}
