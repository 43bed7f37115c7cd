package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/sorainnosia/image-resizer-advanced/internal/engine"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze an image and show what 'auto' would pick",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}

	a := engine.Analyze(img)
	b := img.Bounds()

	fmt.Println()
	fmt.Printf("  File:          %s (%s, %dx%d)\n", args[0], format, b.Dx(), b.Dy())
	fmt.Printf("  Transparency:  %v\n", a.HasTransparency)
	fmt.Printf("  Colors:        %d (sampled)\n", a.ColorCount)
	fmt.Printf("  Gradients:     %v\n", a.HasGradients)
	fmt.Printf("  Photograph:    %v\n", a.IsPhotograph)
	fmt.Printf("  Complexity:    %.2f\n", a.AverageComplexity)
	fmt.Printf("  Dominant:      ")
	for i, c := range a.DominantColors {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Printf("#%02x%02x%02x", c[0], c[1], c[2])
	}
	fmt.Println()

	chosen := engine.Select(a)
	fmt.Printf("  Auto picks:    %s (%s)\n", chosen, chosen.Description())
	fmt.Println()
	return nil
}
