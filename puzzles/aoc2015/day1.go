// Advent of Code 2015, day 1: https://adventofcode.com/2015/day/1

package aoc2015

import (
	"fmt"

	"github.com/bradfitz/aoc/v2"
)

func init() { aoc.Register(2015, 1, day1) }

func day1() error {
	input, err := aoc.GetInput(2015, 1)
	if err != nil {
		return err
	}
	floor, basement := notQuiteLisp(input)
	fmt.Println("Part I:", floor)
	fmt.Println("Part II:", basement)
	return nil
}

// notQuiteLisp follows the parens in s and returns the final floor and
// the 1-based position of the first step into the basement (0 if never).
func notQuiteLisp(s string) (floor, basement int) {
	for i, c := range s {
		switch c {
		case '(':
			floor++
		case ')':
			floor--
		}
		if floor == -1 && basement == 0 {
			basement = i + 1
		}
	}
	return floor, basement
}
