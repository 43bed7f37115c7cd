package engine

import (
	"image"
	"image/draw"
	"math"
	"sort"
)

const (
	// colorSampleBudget caps how many pixels the color counter inspects.
	// Above this, ColorCount is a lower-bound estimate.
	colorSampleBudget = 10000

	// gradientThreshold is the RGB Euclidean distance (0-441 scale)
	// above which a neighbor pair counts as a gradient pixel.
	gradientThreshold = 10.0

	// photoColorThreshold is the sampled color count above which an
	// image with gradients is considered photographic.
	photoColorThreshold = 1000

	// maxDominantColors is the number of dominant colors reported.
	maxDominantColors = 5
)

// Analysis is the fixed statistics record computed once per compression
// call. It is never cached or mutated after construction.
type Analysis struct {
	// HasTransparency is true if any pixel is not fully opaque.
	HasTransparency bool

	// ColorCount is the number of distinct sampled RGB triples, capped
	// at colorSampleBudget.
	ColorCount int

	// HasGradients is true when more than 10% of sampled neighbor pairs
	// exceed the gradient threshold.
	HasGradients bool

	// IsPhotograph is derived: many colors and gradients present.
	IsPhotograph bool

	// DominantColors holds up to five RGB triples ordered by frequency,
	// descending.
	DominantColors [][3]uint8

	// AverageComplexity is the mean sampled neighbor color distance.
	AverageComplexity float64
}

// Analyze inspects img and returns its analysis record. Deterministic,
// no side effects.
func Analyze(img image.Image) Analysis {
	src := toNRGBA(img)

	hasAlpha := hasTransparency(src)
	colors := countUniqueColors(src, colorSampleBudget)
	gradients, complexity := analyzeComplexity(src)

	return Analysis{
		HasTransparency:   hasAlpha,
		ColorCount:        colors,
		HasGradients:      gradients,
		IsPhotograph:      colors > photoColorThreshold && gradients,
		DominantColors:    dominantColors(src, maxDominantColors),
		AverageComplexity: complexity,
	}
}

// hasTransparency short-circuits on the first non-opaque pixel.
func hasTransparency(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] < 255 {
			return true
		}
	}
	return false
}

// countUniqueColors samples at a stride so that at most budget pixels
// are inspected, and stops early once the set reaches the budget. Alpha
// is ignored. The result is a lower bound above the budget, not exact.
func countUniqueColors(img *image.NRGBA, budget int) int {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	total := w * h
	if total == 0 {
		return 0
	}

	step := total / budget
	if step < 1 {
		step = 1
	}

	colors := make(map[[3]uint8]struct{}, min(total, budget))
	for i := 0; i < total; i += step {
		x := i % w
		y := i / w
		off := y*img.Stride + x*4
		colors[[3]uint8{img.Pix[off], img.Pix[off+1], img.Pix[off+2]}] = struct{}{}
		if len(colors) >= budget {
			break
		}
	}
	return len(colors)
}

// analyzeComplexity walks every 4th row and column, measuring RGB
// distance to the right and below neighbors. Returns whether the image
// has gradients and the mean sampled distance.
func analyzeComplexity(img *image.NRGBA) (bool, float64) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	gradientPixels := 0
	totalDiff := 0.0
	sampleCount := 0

	for y := 0; y+1 < h; y += 4 {
		for x := 0; x+1 < w; x += 4 {
			off := y*img.Stride + x*4
			right := off + 4
			below := off + img.Stride

			d1 := colorDistance(img.Pix[off:off+3], img.Pix[right:right+3])
			d2 := colorDistance(img.Pix[off:off+3], img.Pix[below:below+3])

			totalDiff += d1 + d2
			sampleCount += 2

			if d1 > gradientThreshold || d2 > gradientThreshold {
				gradientPixels++
			}
		}
	}

	if sampleCount == 0 {
		return false, 0
	}
	return gradientPixels > sampleCount/10, totalDiff / float64(sampleCount)
}

func colorDistance(a, b []uint8) float64 {
	dr := float64(a[0]) - float64(b[0])
	dg := float64(a[1]) - float64(b[1])
	db := float64(a[2]) - float64(b[2])
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// dominantColors counts every pixel's RGB triple and returns the top n
// by frequency. This is the only full-image O(pixels) analysis step.
func dominantColors(img *image.NRGBA, n int) [][3]uint8 {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	counts := make(map[[3]uint8]int)
	for y := 0; y < h; y++ {
		off := y * img.Stride
		for x := 0; x < w; x++ {
			i := off + x*4
			counts[[3]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2]}]++
		}
	}

	type colorFreq struct {
		color [3]uint8
		count int
	}
	sorted := make([]colorFreq, 0, len(counts))
	for c, cnt := range counts {
		sorted = append(sorted, colorFreq{c, cnt})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		// Stable order for equal frequencies.
		return sorted[i].color[0] < sorted[j].color[0] ||
			(sorted[i].color[0] == sorted[j].color[0] && sorted[i].color[1] < sorted[j].color[1]) ||
			(sorted[i].color[0] == sorted[j].color[0] && sorted[i].color[1] == sorted[j].color[1] && sorted[i].color[2] < sorted[j].color[2])
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	result := make([][3]uint8, len(sorted))
	for i, cf := range sorted {
		result[i] = cf.color
	}
	return result
}

// toNRGBA returns img as *image.NRGBA, converting only when needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Bounds().Min == image.Pt(0, 0) {
		return src
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
