// Carcass lays out case-good furniture from a command line.
//
// Build:
//
//	go build -o carcass ./cmd/carcass
//
// Release builds stamp the version:
//
//	go build -ldflags "-X github.com/piwi3910/Carcass/internal/version.Commit=$(git rev-parse HEAD)" ./cmd/carcass
package main

import (
	"fmt"
	"os"

	"github.com/piwi3910/Carcass/internal/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
