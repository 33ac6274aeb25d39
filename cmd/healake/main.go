// Package main provides the healake command-line client.
package main

import (
	"os"

	"github.com/leapstack-labs/healake/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
