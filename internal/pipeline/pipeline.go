package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/sorainnosia/image-resizer-advanced/internal/engine"
)

// Config holds all parameters for a batch compression run.
type Config struct {
	InputPath string
	OutputDir string // empty: a resized/ directory next to each source
	Options   engine.Options
	Workers   int
	Width     int  // optional pre-resize target width
	Height    int  // optional pre-resize target height
	Exact     bool // resize to exact dimensions instead of fitting
	Verbose   bool
}

// Pipeline runs the compression engine over a set of images.
type Pipeline struct {
	cfg        Config
	compressor *engine.Compressor
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{
		cfg:        cfg,
		compressor: engine.New(),
	}
}

// Run scans the input, compresses every image on a bounded worker pool
// and collects the per-image outcomes. Individual failures become
// failed report entries; the run itself only errors when nothing could
// be scanned.
func (p *Pipeline) Run() (*Report, error) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[imgresize] %s\n", p.compressor.Registry())
	}

	sources, err := ScanImages(p.cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputPath)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[imgresize] found %d images\n", len(sources))
	}

	entries := make([]Entry, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[imgresize] processing: %s\n", s.Name)
			}

			entries[idx] = processImage(s, p.cfg, p.compressor)

			if p.cfg.Verbose {
				e := entries[idx]
				if e.Success {
					fmt.Fprintf(os.Stderr, "[imgresize] done: %s (%d -> %d bytes, %s)\n",
						s.Name, e.OriginalSize, e.NewSize, e.Algorithm)
				} else {
					fmt.Fprintf(os.Stderr, "[imgresize] error: %s: %s\n", s.Name, e.Message)
				}
			}
		}(i, src)
	}
	wg.Wait()

	report := NewReport(p.cfg.Workers)
	report.Entries = entries
	report.ComputeStats()
	return report, nil
}
