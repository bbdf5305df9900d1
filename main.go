package main

import (
	"os"

	"github.com/ziadkadry99/previewkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
