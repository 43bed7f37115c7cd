package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "imgresize",
	Short: "Smart image compression with automatic algorithm selection",
	Long: `imgresize compresses images to a quality level or a byte budget,
picking among JPEG, PNG, WebP and AVIF from a quick statistical
analysis of each image when no algorithm is pinned down.

Point it at a file or a directory; outputs land in a resized/
directory next to the sources unless --out is given.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgresize %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[imgresize] "+format+"\n", args...)
	}
}
