package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sorainnosia/image-resizer-advanced/internal/engine"
	"github.com/sorainnosia/image-resizer-advanced/internal/pipeline"
)

var (
	compressOutDir     string
	compressAlgorithm  string
	compressQuality    int
	compressTargetKB   int64
	compressWidth      int
	compressHeight     int
	compressExact      bool
	compressAutoScale  bool
	compressWebOpt     bool
	compressMeta       bool
	compressWorkers    int
	compressReportPath string
)

var compressCmd = &cobra.Command{
	Use:   "compress <file_or_dir>",
	Short: "Compress images to a quality level or a target size",
	Long: `Compresses a single image or every image under a directory
(png, jpg, jpeg, gif, bmp, webp, tiff).

With --algorithm auto (the default) each image is analyzed and the
best-fitting family is chosen: JPEG for opaque photographs, PNG for
flat graphics, WebP otherwise. --target-size searches the encoder's
quality range for the highest quality that still fits the budget.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompress,
}

func init() {
	compressCmd.Flags().StringVarP(&compressOutDir, "out", "o", "", "output directory (default: resized/ next to sources)")
	compressCmd.Flags().StringVarP(&compressAlgorithm, "algorithm", "a", "auto", "compression algorithm (see 'imgresize algorithms')")
	compressCmd.Flags().IntVarP(&compressQuality, "quality", "q", 0, "quality 1-100 (0 = algorithm default)")
	compressCmd.Flags().Int64VarP(&compressTargetKB, "target-size", "t", 0, "target output size in KB (0 = none)")
	compressCmd.Flags().IntVar(&compressWidth, "width", 0, "resize to width before compressing (0 = keep)")
	compressCmd.Flags().IntVar(&compressHeight, "height", 0, "resize to height before compressing (0 = keep)")
	compressCmd.Flags().BoolVar(&compressExact, "exact", false, "resize to exact dimensions, ignoring aspect ratio")
	compressCmd.Flags().BoolVar(&compressAutoScale, "auto-scale", false, "allow the simple algorithm to downscale when the target size is out of reach")
	compressCmd.Flags().BoolVar(&compressWebOpt, "web-optimize", true, "request progressive/web-friendly encoding")
	compressCmd.Flags().BoolVar(&compressMeta, "preserve-metadata", false, "keep source metadata in the output")
	compressCmd.Flags().IntVarP(&compressWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	compressCmd.Flags().StringVar(&compressReportPath, "report", "", "write a JSON report to this path")
	rootCmd.AddCommand(compressCmd)
}

func runCompress(_ *cobra.Command, args []string) error {
	start := time.Now()

	alg, err := engine.ParseAlgorithm(compressAlgorithm)
	if err != nil {
		return err
	}

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}

	opts := engine.Options{
		Algorithm:        alg,
		Quality:          compressQuality,
		TargetSize:       compressTargetKB * 1024,
		PreserveMetadata: compressMeta,
		OptimizeForWeb:   compressWebOpt,
		AutoScale:        compressAutoScale,
	}

	logVerbose("input:     %s", absInput)
	logVerbose("algorithm: %s, quality=%d, target=%d KB", alg, compressQuality, compressTargetKB)

	p := pipeline.New(pipeline.Config{
		InputPath: absInput,
		OutputDir: compressOutDir,
		Options:   opts,
		Workers:   compressWorkers,
		Width:     compressWidth,
		Height:    compressHeight,
		Exact:     compressExact,
		Verbose:   verbose,
	})

	report, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if compressReportPath != "" {
		if err := report.WriteJSON(compressReportPath); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logVerbose("report:    %s", compressReportPath)
	}

	printCompressReport(report, time.Since(start))

	if report.Stats.Succeeded == 0 {
		return fmt.Errorf("all %d images failed", report.Stats.Failed)
	}
	return nil
}

func printCompressReport(r *pipeline.Report, elapsed time.Duration) {
	fmt.Println()
	for _, e := range r.Entries {
		if e.Success {
			saved := float64(0)
			if e.OriginalSize > 0 {
				saved = (1 - float64(e.NewSize)/float64(e.OriginalSize)) * 100
			}
			fmt.Printf("  %-36s %9s -> %9s  (-%.0f%%, %s)\n",
				truncName(e.File, 36),
				formatBytes(e.OriginalSize), formatBytes(e.NewSize),
				saved, e.Algorithm)
		} else {
			fmt.Printf("  %-36s FAILED: %s\n", truncName(e.File, 36), e.Message)
		}
	}
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Files:       %d (%d ok, %d failed)\n", s.TotalFiles, s.Succeeded, s.Failed)
	fmt.Printf("  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		fmt.Printf("  Ratio:       %.1f%% of original\n",
			float64(s.TotalOutputBytes)/float64(s.TotalInputBytes)*100)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
