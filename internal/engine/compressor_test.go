package engine

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
)

func TestCompress_JPEGRoundTripDimensions(t *testing.T) {
	img := noiseImage(64, 48)
	c := New()

	result, err := c.Compress(img, Options{Algorithm: StandardJPEG, Quality: 80})
	if err != nil {
		t.Fatalf("compress: %v", err)
	}

	if result.Format != "jpeg" {
		t.Errorf("format: got %q, want jpeg", result.Format)
	}
	if result.AlgorithmUsed != StandardJPEG {
		t.Errorf("algorithm: got %s", result.AlgorithmUsed)
	}
	if result.FinalQuality != 80 {
		t.Errorf("quality: got %d, want 80", result.FinalQuality)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 64 || decoded.Bounds().Dy() != 48 {
		t.Errorf("dimensions: got %v, want 64x48", decoded.Bounds())
	}
}

func TestCompress_RatioFromActualBytes(t *testing.T) {
	img := noiseImage(64, 48)
	c := New()

	result, err := c.Compress(img, Options{Algorithm: StandardJPEG})
	if err != nil {
		t.Fatalf("compress: %v", err)
	}

	raw := 64 * 48 * 4 // NRGBA input
	want := float64(len(result.Data)) / float64(raw)
	if result.Ratio != want {
		t.Errorf("ratio: got %f, want %f", result.Ratio, want)
	}
}

func TestCompress_DefaultQualityApplied(t *testing.T) {
	c := New()
	result, err := c.Compress(noiseImage(32, 32), Options{Algorithm: StandardJPEG})
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if result.FinalQuality != StandardJPEG.RecommendedQuality() {
		t.Errorf("quality: got %d, want recommended %d",
			result.FinalQuality, StandardJPEG.RecommendedQuality())
	}
}

func TestCompress_PNGLossless(t *testing.T) {
	img := twoColorImage(50, 50)
	c := New()

	result, err := c.Compress(img, Options{Algorithm: OptimizedPNG})
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if result.Format != "png" {
		t.Errorf("format: got %q, want png", result.Format)
	}
	if result.FinalQuality != 0 {
		t.Errorf("lossless path reported quality %d", result.FinalQuality)
	}

	decoded, err := png.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 50 || decoded.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %v, want 50x50", decoded.Bounds())
	}
}

func TestCompress_AutoResolvesFlatGraphicToPNG(t *testing.T) {
	c := New()
	result, err := c.Compress(twoColorImage(50, 50), Options{Algorithm: Auto})
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if result.AlgorithmUsed != OptimizedPNG {
		t.Errorf("auto resolution: got %s, want %s", result.AlgorithmUsed, OptimizedPNG)
	}
	if result.AlgorithmUsed == Auto {
		t.Error("Auto survived resolution")
	}
}

func TestCompress_QuantizedPNGIdentity(t *testing.T) {
	c := New()
	result, err := c.Compress(noiseImage(32, 32), Options{Algorithm: QuantizedPNG})
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	// Reports its own identity even though it reuses the optimized PNG
	// encoder internally.
	if result.AlgorithmUsed != QuantizedPNG {
		t.Errorf("algorithm: got %s, want %s", result.AlgorithmUsed, QuantizedPNG)
	}
	if result.Format != "png" {
		t.Errorf("format: got %q, want png", result.Format)
	}

	decoded, err := png.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	nrgba := toNRGBA(decoded)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		for ch := 0; ch < 3; ch++ {
			if nrgba.Pix[i+ch]%16 != 0 {
				t.Fatalf("decoded channel value %d not posterized", nrgba.Pix[i+ch])
			}
		}
	}
}

func TestCompress_TargetSizeSearch(t *testing.T) {
	img := noiseImage(128, 128)
	c := New()

	result, err := c.Compress(img, Options{Algorithm: StandardJPEG, TargetSize: 20000})
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if int64(len(result.Data)) > 20000 {
		t.Errorf("output %d bytes exceeds 20000 byte target", len(result.Data))
	}
	if result.FinalQuality < searchMinQuality || result.FinalQuality > searchMaxQuality {
		t.Errorf("quality %d outside search bounds", result.FinalQuality)
	}
}

func TestCompress_TargetSizeUnreachable(t *testing.T) {
	// Even quality 10 needs more than 200 bytes for this image; the
	// engine must fail, not return a degraded partial result.
	c := New()
	result, err := c.Compress(noiseImage(128, 128), Options{Algorithm: StandardJPEG, TargetSize: 200})
	if !errors.Is(err, ErrSizeUnreachable) {
		t.Errorf("err = %v, want ErrSizeUnreachable", err)
	}
	if result != nil {
		t.Error("got a result alongside the unreachable error")
	}
}

func TestCompress_LosslessTargetRejectedNotDegraded(t *testing.T) {
	// Quality-insensitive families get a single encode: if it misses
	// the budget the engine reports unreachable, never a silently
	// oversized success.
	c := New()
	_, err := c.Compress(noiseImage(64, 64), Options{Algorithm: OptimizedPNG, TargetSize: 10})
	if !errors.Is(err, ErrSizeUnreachable) {
		t.Errorf("err = %v, want ErrSizeUnreachable", err)
	}
}

func TestCompress_SimpleSweep(t *testing.T) {
	img := noiseImage(64, 64)
	c := New()

	// Generous target: the sweep settles on a high quality step.
	result, err := c.Compress(img, Options{Algorithm: Simple, TargetSize: 1 << 20})
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if result.FinalQuality%5 != 0 || result.FinalQuality < 20 || result.FinalQuality > 95 {
		t.Errorf("quality %d outside the sweep grid", result.FinalQuality)
	}
	if result.Format != "jpeg" {
		t.Errorf("format: got %q, want jpeg", result.Format)
	}
}

func TestCompress_ZeroDimensionsFails(t *testing.T) {
	c := New()
	_, err := c.Compress(image.NewNRGBA(image.Rect(0, 0, 0, 0)), Options{Algorithm: StandardJPEG})
	if err == nil {
		t.Fatal("expected an error for a zero-dimension image")
	}
	var ee *EncodeError
	if !errors.As(err, &ee) {
		t.Errorf("err = %T, want *EncodeError", err)
	}
}

func TestEstimateRawSize(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want int
	}{
		{"gray", image.NewGray(image.Rect(0, 0, 10, 10)), 100},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 10, 10), image.YCbCrSubsampleRatio420), 300},
		{"nrgba", image.NewNRGBA(image.Rect(0, 0, 10, 10)), 400},
		{"rgba", image.NewRGBA(image.Rect(0, 0, 10, 10)), 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateRawSize(tt.img); got != tt.want {
				t.Errorf("estimateRawSize = %d, want %d", got, tt.want)
			}
		})
	}
}
