// Package aoc are quick & dirty utilities for helping Brad
// solve Advent of Code problems.
//
// Each puzzle file registers itself from an init func and reads its
// input through GetInput, which is served from ~/.aoc when possible:
//
//	func init() { aoc.Register(2023, 1, day1) }
//
//	func day1() error {
//		input, err := aoc.GetInput(2023, 1)
//		...
//	}
//
// cmd/run dispatches to registered puzzles; cmd/download prefetches an
// input; cmd/gen writes a new puzzle file.
package aoc

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/exp/constraints"

	"github.com/bradfitz/aoc/v2/internal/cli"
	"github.com/bradfitz/aoc/v2/internal/config"
	"github.com/bradfitz/aoc/v2/internal/registry"
)

// app is built on first use so that registration at init time doesn't
// touch the environment.
var app = sync.OnceValues(cli.Load)

// Register adds the solution f for (year, day). Call it from an init
// func; f runs under the timing decorator.
func Register(year, day uint16, f func() error) {
	registry.Default.Register(year, day, f)
}

// GetInput returns the puzzle input for (year, day), downloading and
// caching it on first use.
func GetInput(year, day uint16) (string, error) {
	a, err := app()
	if err != nil {
		return "", err
	}
	return a.Input.Get(context.Background(), year, day)
}

// Input is like GetInput but panics on failure.
func Input(year, day uint16) string {
	return MustGet(GetInput(year, day))
}

// Lines splits input into lines, dropping the final newline.
func Lines(input string) []string {
	input = strings.TrimSuffix(input, "\n")
	if input == "" {
		return nil
	}
	return strings.Split(input, "\n")
}

// Main runs the puzzle selected by -y and -d and exits.
func Main() {
	prog := filepath.Base(os.Args[0])
	a, err := app()
	if err != nil {
		config.Exitf("%s: %v", prog, err)
	}
	code := a.Run(prog, registry.Default, os.Args[1:])
	a.Close()
	os.Exit(code)
}

// MustDo panics if err is non-nil.
func MustDo(err error) {
	if err != nil {
		panic(err)
	}
}

// MustGet returns v as is. It panics if err is non-nil.
func MustGet[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Or returns the first non-zero element of list, or else returns the zero T.
//
// This is the proposal from
// https://github.com/golang/go/issues/60204#issuecomment-1581245334.
func Or[T comparable](list ...T) T {
	var zero T
	for _, v := range list {
		if v != zero {
			return v
		}
	}
	return zero
}

// Sum returns the sum of nums.
func Sum[T constraints.Integer | constraints.Float](nums ...T) T {
	var sum T
	for _, v := range nums {
		sum += v
	}
	return sum
}
