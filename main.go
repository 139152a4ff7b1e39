package main

import (
	"os"

	"github.com/halftone/sketchpath/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
