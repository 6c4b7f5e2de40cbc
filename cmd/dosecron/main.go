package main

import (
	"os"

	"github.com/dosecron/dosecron/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
