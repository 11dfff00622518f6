// Command download fetches and caches one puzzle input without running
// anything.
package main

import (
	"context"
	"os"

	"github.com/bradfitz/aoc/v2/internal/cli"
	"github.com/bradfitz/aoc/v2/internal/config"
)

func main() {
	a, err := cli.Load()
	if err != nil {
		config.Exitf("download: %v", err)
	}
	code := a.Download(context.Background(), "download", os.Args[1:])
	a.Close()
	os.Exit(code)
}
