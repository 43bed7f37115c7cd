package pipeline

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/sorainnosia/image-resizer-advanced/internal/engine"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// formatExtensions maps a result's byte-format tag to the extension the
// output file gets. The extension always follows the bytes actually
// produced, even across a backend substitution.
var formatExtensions = map[string]string{
	"jpeg": "jpg",
	"png":  "png",
	"webp": "webp",
	"avif": "avif",
}

// processImage handles a single source: decode, optional resize,
// compress, write. All failures are captured in the returned entry.
func processImage(src Source, cfg Config, compressor *engine.Compressor) Entry {
	entry := Entry{
		File:         src.Name,
		OriginalSize: src.Size,
		Algorithm:    cfg.Options.Algorithm.String(),
	}
	fail := func(err error) Entry {
		entry.Message = err.Error()
		return entry
	}

	f, err := os.Open(src.AbsPath)
	if err != nil {
		return fail(fmt.Errorf("open %s: %w", src.Name, err))
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fail(fmt.Errorf("decode %s: %w", src.Name, err))
	}

	if cfg.Width > 0 || cfg.Height > 0 {
		img = resize(img, cfg)
	}

	result, err := compressor.Compress(img, cfg.Options)
	if err != nil {
		return fail(fmt.Errorf("compress %s: %w", src.Name, err))
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(src.AbsPath), "resized")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fail(fmt.Errorf("create output dir: %w", err))
	}

	ext := formatExtensions[result.Format]
	if ext == "" {
		ext = result.AlgorithmUsed.Extension()
	}
	stem := strings.TrimSuffix(src.Name, filepath.Ext(src.Name))
	outPath := filepath.Join(outDir, fmt.Sprintf("%s_resized.%s", stem, ext))

	if err := os.WriteFile(outPath, result.Data, 0o644); err != nil {
		return fail(fmt.Errorf("write %s: %w", outPath, err))
	}

	entry.OutputPath = outPath
	entry.NewSize = int64(len(result.Data))
	entry.Algorithm = result.AlgorithmUsed.String()
	entry.Format = result.Format
	entry.Quality = result.FinalQuality
	entry.Ratio = result.Ratio
	entry.Hash = contentHash(result.Data)
	entry.Success = true
	return entry
}

// resize applies the requested pre-compression dimensions. With both
// dimensions set the image fits inside the box preserving aspect ratio,
// unless exact sizing is requested; with one dimension the other is
// derived from the aspect ratio.
func resize(img image.Image, cfg Config) image.Image {
	if cfg.Exact && cfg.Width > 0 && cfg.Height > 0 {
		return imaging.Resize(img, cfg.Width, cfg.Height, imaging.Lanczos)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		return imaging.Fit(img, cfg.Width, cfg.Height, imaging.Lanczos)
	}
	return imaging.Resize(img, cfg.Width, cfg.Height, imaging.Lanczos)
}
