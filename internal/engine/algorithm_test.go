package engine

import "testing"

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
	}{
		{"auto", Auto},
		{"simple", Simple},
		{"jpeg", StandardJPEG},
		{"jpg", StandardJPEG},
		{"JPEG", StandardJPEG},
		{"jpeg-optimized", OptimizedJPEG},
		{"mozjpeg", OptimizedJPEG},
		{"png", StandardPNG},
		{"png-optimized", OptimizedPNG},
		{"optipng", OptimizedPNG},
		{"oxipng", OptimizedPNG},
		{"png-quantized", QuantizedPNG},
		{"pngquant", QuantizedPNG},
		{"webp", WebPLossy},
		{"webp-lossless", WebPLossless},
		{"avif", AVIF},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if err != nil {
			t.Errorf("ParseAlgorithm(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseAlgorithm_Unknown(t *testing.T) {
	if _, err := ParseAlgorithm("heif"); err == nil {
		t.Error("expected an error for an unknown algorithm name")
	}
}

func TestRecommendedQuality(t *testing.T) {
	tests := []struct {
		alg  Algorithm
		want int
	}{
		{StandardJPEG, 85},
		{OptimizedJPEG, 85},
		{WebPLossy, 90},
		{AVIF, 80},
		{StandardPNG, 100},
		{WebPLossless, 100},
	}
	for _, tt := range tests {
		if got := tt.alg.RecommendedQuality(); got != tt.want {
			t.Errorf("%s: recommended quality %d, want %d", tt.alg, got, tt.want)
		}
	}
}

func TestSupportsQuality(t *testing.T) {
	for _, alg := range []Algorithm{Simple, StandardJPEG, OptimizedJPEG, WebPLossy, AVIF} {
		if !alg.SupportsQuality() {
			t.Errorf("%s should support quality", alg)
		}
	}
	for _, alg := range []Algorithm{StandardPNG, OptimizedPNG, WebPLossless} {
		if alg.SupportsQuality() {
			t.Errorf("%s is lossless and should not support quality", alg)
		}
	}
}

func TestAlgorithmRoundTripNames(t *testing.T) {
	for _, alg := range Algorithms() {
		parsed, err := ParseAlgorithm(alg.String())
		if err != nil {
			t.Errorf("%s: %v", alg, err)
			continue
		}
		if parsed != alg {
			t.Errorf("round trip: %s -> %s", alg, parsed)
		}
	}
}
