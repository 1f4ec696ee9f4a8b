package main

import (
	"os"

	"github.com/aridgrid/solsite/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
