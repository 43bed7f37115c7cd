package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sorainnosia/image-resizer-advanced/internal/engine"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List the available compression algorithms",
	Args:  cobra.NoArgs,
	RunE:  runAlgorithms,
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
}

func runAlgorithms(_ *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Printf("  %-15s %-8s %-8s %-5s %s\n", "NAME", "QUALITY", "DEFAULT", "EXT", "DESCRIPTION")
	for _, a := range engine.Algorithms() {
		quality := "-"
		def := "-"
		if a.SupportsQuality() {
			quality = "yes"
			def = fmt.Sprintf("%d", a.RecommendedQuality())
		}
		fmt.Printf("  %-15s %-8s %-8s %-5s %s\n",
			a, quality, def, a.Extension(), a.Description())
	}
	fmt.Println()
	return nil
}
