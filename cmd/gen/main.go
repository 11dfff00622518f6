// Command gen writes a skeleton source file for a new puzzle. Run it from
// the module root.
package main

import (
	"os"

	"github.com/bradfitz/aoc/v2/internal/cli"
	"github.com/bradfitz/aoc/v2/internal/config"
)

func main() {
	a, err := cli.Load()
	if err != nil {
		config.Exitf("gen: %v", err)
	}
	code := a.Gen("gen", ".", os.Args[1:])
	a.Close()
	os.Exit(code)
}
