// Package main provides the entry point for the ikb CLI.
package main

import (
	"os"

	"github.com/ikb-gg/ikb-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
