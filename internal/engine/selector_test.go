package engine

import (
	"testing"
)

func TestSelect_RuleTable(t *testing.T) {
	tests := []struct {
		name string
		a    Analysis
		want Algorithm
	}{
		{
			name: "opaque photograph",
			a:    Analysis{IsPhotograph: true, ColorCount: 5000, HasGradients: true},
			want: OptimizedJPEG,
		},
		{
			name: "transparent with many colors",
			a:    Analysis{HasTransparency: true, ColorCount: 300},
			want: WebPLossy,
		},
		{
			name: "flat opaque graphic",
			a:    Analysis{ColorCount: 2},
			want: OptimizedPNG,
		},
		{
			name: "transparent photograph",
			a:    Analysis{HasTransparency: true, IsPhotograph: true, ColorCount: 5000, HasGradients: true},
			want: WebPLossy,
		},
		{
			name: "transparent few colors non-photo",
			a:    Analysis{HasTransparency: true, ColorCount: 100},
			want: OptimizedPNG,
		},
		{
			name: "opaque many colors non-photo",
			a:    Analysis{ColorCount: 5000, HasGradients: false},
			want: WebPLossy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.a)
			if got != tt.want {
				t.Errorf("Select(%+v) = %s, want %s", tt.a, got, tt.want)
			}
		})
	}
}

func TestSelect_Pure(t *testing.T) {
	a := Analysis{HasTransparency: true, ColorCount: 300, HasGradients: true}
	if Select(a) != Select(a) {
		t.Error("identical analysis records selected different algorithms")
	}
}

// Scenario from the analyzer through the selector: a 100x100 image with
// a transparent corner and 300 distinct colors must resolve to lossy
// WebP via the transparency rule.
func TestSelect_TransparentManyColorsScenario(t *testing.T) {
	a := Analyze(transparentCornerImage(100, 100))
	if !a.HasTransparency {
		t.Fatal("precondition: transparency not detected")
	}
	if a.ColorCount <= 256 {
		t.Fatalf("precondition: color count %d, want > 256", a.ColorCount)
	}
	if got := Select(a); got != WebPLossy {
		t.Errorf("Select = %s, want %s", got, WebPLossy)
	}
}

// Scenario: a 50x50 flat two-color opaque image resolves to the PNG
// family.
func TestSelect_FlatGraphicScenario(t *testing.T) {
	a := Analyze(twoColorImage(50, 50))
	if got := Select(a); got != OptimizedPNG {
		t.Errorf("Select = %s, want %s", got, OptimizedPNG)
	}
}
