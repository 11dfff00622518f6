// Command run solves one registered Advent of Code puzzle.
//
//	run [-h|--help] [-y YEAR] -d DAY
//	run -l [-y YEAR]
package main

import (
	"github.com/bradfitz/aoc/v2"

	_ "github.com/bradfitz/aoc/v2/puzzles/all"
)

func main() {
	aoc.Main()
}
