package engine

// Select maps an analysis record to a concrete algorithm. Pure
// function; the orchestrator invokes it only when options request Auto.
//
// Rules are evaluated in order and the first match wins. The ordering
// is deliberate: JPEG for opaque photographic content, PNG only for
// flat opaque graphics, WebP as the versatile default for everything
// else. Do not reorder.
func Select(a Analysis) Algorithm {
	switch {
	// Photos without transparency -> JPEG.
	case !a.HasTransparency && a.IsPhotograph:
		return OptimizedJPEG

	// Transparency with many colors -> WebP.
	case a.HasTransparency && a.ColorCount > 256:
		return WebPLossy

	// Simple graphics with few colors -> PNG.
	case !a.IsPhotograph && a.ColorCount <= 256:
		return OptimizedPNG

	// Remaining transparent images -> WebP.
	case a.HasTransparency:
		return WebPLossy

	// Default to WebP for versatility.
	default:
		return WebPLossy
	}
}
