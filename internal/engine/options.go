package engine

// Options configures a single compression call.
type Options struct {
	// Algorithm to use. Auto resolves via image analysis.
	Algorithm Algorithm

	// Quality in 0-100; 0 means use the algorithm's recommended
	// default. The exact meaning is encoder-family specific.
	Quality int

	// TargetSize is a byte ceiling for the output; 0 means none. When
	// set, quality-bearing algorithms search their quality range for the
	// highest quality that still fits. Takes priority over Quality,
	// which only seeds the search.
	TargetSize int64

	// PreserveMetadata keeps source metadata in the output. Reserved;
	// no encoder backend acts on it yet.
	PreserveMetadata bool

	// OptimizeForWeb requests progressive/web-friendly scan ordering
	// where the encoder supports it.
	OptimizeForWeb bool

	// AutoScale allows the legacy Simple path to progressively downscale
	// the image when the quality sweep alone cannot meet TargetSize.
	AutoScale bool
}

// DefaultOptions returns the engine defaults: automatic algorithm
// selection with web optimization on.
func DefaultOptions() Options {
	return Options{
		Algorithm:      Auto,
		OptimizeForWeb: true,
	}
}

// effectiveQuality resolves the quality actually used for alg.
func (o Options) effectiveQuality(alg Algorithm) int {
	if o.Quality > 0 {
		return o.Quality
	}
	return alg.RecommendedQuality()
}
