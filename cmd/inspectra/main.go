// Package main is the entry point for the inspectra CLI.
package main

import (
	"os"

	"github.com/raysh454/inspectra/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
