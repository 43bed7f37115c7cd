package main

import (
	"os"

	"github.com/sorainnosia/image-resizer-advanced/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
