package encoder

import (
	"fmt"
	"strings"
)

// Registry holds the adapters for each algorithm family, probing
// backend availability once at construction.
type Registry struct {
	encoders map[string]Encoder
}

// fallbacks names the substitute family used when a backend is
// unavailable. This is a compatibility shim: callers still report the
// originally requested algorithm, only the format tag follows the bytes
// actually produced. To be removed once every native backend is wired.
var fallbacks = map[string]string{
	"avif":          "webp",
	"webp":          "jpeg-optimized",
	"webp-lossless": "png-optimized",
}

// NewRegistry creates a registry with every adapter registered.
func NewRegistry() *Registry {
	return &Registry{
		encoders: map[string]Encoder{
			"jpeg":           &JPEGEncoder{},
			"jpeg-optimized": &OptimizedJPEGEncoder{},
			"png":            &PNGEncoder{},
			"png-optimized":  &OptimizedPNGEncoder{},
			"webp":           &WebPEncoder{},
			"webp-lossless":  &WebPEncoder{Lossless: true},
			"avif":           &AVIFEncoder{},
		},
	}
}

// Get returns the adapter registered for name, or nil if unknown. The
// returned encoder may be unavailable; see Resolve.
func (r *Registry) Get(name string) Encoder {
	return r.encoders[strings.ToLower(name)]
}

// Resolve returns a usable encoder for name, following the fallback
// chain when the native backend is unavailable. substituted reports
// whether a different family's encoder was returned.
func (r *Registry) Resolve(name string) (enc Encoder, substituted bool, err error) {
	name = strings.ToLower(name)
	for hops := 0; hops < len(fallbacks)+1; hops++ {
		e, ok := r.encoders[name]
		if !ok {
			return nil, false, fmt.Errorf("no encoder registered for %q", name)
		}
		if e.Available() {
			return e, substituted, nil
		}
		next, ok := fallbacks[name]
		if !ok {
			return nil, false, fmt.Errorf("encoder %q unavailable and has no fallback", name)
		}
		name = next
		substituted = true
	}
	return nil, false, fmt.Errorf("encoder fallback chain for %q did not terminate", name)
}

// Available returns the registered family names whose backend is ready,
// in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"avif", "webp", "webp-lossless", "jpeg-optimized", "jpeg", "png-optimized", "png"} {
		if e, ok := r.encoders[f]; ok && e.Available() {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
