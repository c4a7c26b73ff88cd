package main

import (
	"os"

	"github.com/serin-reader/serin/cmd/serin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
