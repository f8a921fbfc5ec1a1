// Package main is the entry point for the proposal-cost CLI.
package main

import (
	"os"

	"proposal-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
