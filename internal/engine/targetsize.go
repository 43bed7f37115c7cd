package engine

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Quality search bounds for the byte-budget search. Assumes encoded
// size is monotonically non-decreasing in quality.
const (
	searchMinQuality = 10
	searchMaxQuality = 95
)

// Legacy downscale fallback parameters.
const (
	downscaleDecay   = 0.9
	downscaleFloor   = 0.5
	downscaleQuality = 75
)

// fitToSize binary-searches the integer quality range for the highest
// quality whose encode fits within target bytes. A non-zero seed caps
// the upper bound, so a caller-supplied quality is never exceeded.
// Returns ErrSizeUnreachable when even the lowest tried quality
// exceeds target.
func fitToSize(target int64, seed int, encode func(quality int) ([]byte, error)) ([]byte, int, error) {
	lo, hi := searchMinQuality, searchMaxQuality
	if seed > lo && seed < hi {
		hi = seed
	}
	var best []byte
	bestQ := 0

	for lo <= hi {
		q := (lo + hi) / 2
		data, err := encode(q)
		if err != nil {
			return nil, 0, err
		}
		if int64(len(data)) <= target {
			best = data
			bestQ = q
			lo = q + 1
		} else {
			hi = q - 1
		}
	}

	if best == nil {
		return nil, 0, fmt.Errorf("quality %d-%d: %w", searchMinQuality, searchMaxQuality, ErrSizeUnreachable)
	}
	return best, bestQ, nil
}

// fitToSizeFloat runs the same search over a continuous quality scale,
// converging once the bracket narrows below 1.0.
func fitToSizeFloat(target int64, seed int, encode func(quality float32) ([]byte, error)) ([]byte, float32, error) {
	lo, hi := float32(searchMinQuality), float32(searchMaxQuality)
	if s := float32(seed); s > lo && s < hi {
		hi = s
	}
	var best []byte
	bestQ := float32(0)

	for hi-lo >= 1.0 {
		q := (lo + hi) / 2
		data, err := encode(q)
		if err != nil {
			return nil, 0, err
		}
		if int64(len(data)) <= target {
			best = data
			bestQ = q
			lo = q
		} else {
			hi = q
		}
	}

	if best == nil {
		return nil, 0, fmt.Errorf("quality %d-%d: %w", searchMinQuality, searchMaxQuality, ErrSizeUnreachable)
	}
	return best, bestQ, nil
}

// fitSimple is the legacy path: a linear quality sweep from 95 down to
// 20 in steps of 5 and, when autoScale is set, a progressive downscale
// at a fixed mid quality once the sweep is exhausted. The downscale
// decays the linear dimensions by 0.9 per iteration and stops at half
// the original size.
func fitSimple(img image.Image, target int64, autoScale bool, encode func(img image.Image, quality int) ([]byte, error)) ([]byte, int, error) {
	for quality := 95; quality >= 20; quality -= 5 {
		data, err := encode(img, quality)
		if err != nil {
			return nil, 0, err
		}
		if int64(len(data)) <= target {
			return data, quality, nil
		}
	}

	if autoScale {
		b := img.Bounds()
		origW, origH := b.Dx(), b.Dy()

		for scale := downscaleDecay; scale > downscaleFloor; scale *= downscaleDecay {
			w := int(float64(origW) * scale)
			h := int(float64(origH) * scale)
			if w < 1 || h < 1 {
				break
			}

			scaled := imaging.Resize(img, w, h, imaging.Lanczos)
			data, err := encode(scaled, downscaleQuality)
			if err != nil {
				return nil, 0, err
			}
			if int64(len(data)) <= target {
				return data, downscaleQuality, nil
			}
		}
	}

	return nil, 0, fmt.Errorf("quality sweep exhausted: %w", ErrSizeUnreachable)
}
