package main

import (
	"os"

	"github.com/pinup-dev/pinup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
