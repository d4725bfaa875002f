package main

import (
	"os"

	"github.com/noli-ai/liz-widget/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
