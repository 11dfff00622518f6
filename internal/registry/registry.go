// Package registry is the process-wide table of puzzle solutions.
//
// Puzzle files add themselves from an init func, so a front-end only
// needs to import the packages containing them:
//
//	func init() { aoc.Register(2015, 1, day1) }
package registry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"golang.org/x/exp/maps"

	"github.com/bradfitz/aoc/v2/internal/timing"
)

// ErrUnregistered is returned when no solution exists for a puzzle.
var ErrUnregistered = errors.New("not implemented")

// Entry solves one puzzle: it reads its input, prints answers to stdout,
// and reports failure by returning an error.
type Entry func() error

// Record is one registered solution. Entry is already wrapped by the
// timing decorator.
type Record struct {
	Year, Day uint16
	Entry     Entry
}

// Registry holds records in registration order. The zero value is ready
// to use. It isn't safe for concurrent registration; all registration
// happens during package init.
type Registry struct {
	records []Record

	// Out receives the timing line. Nil means os.Stdout.
	Out io.Writer

	// Observe, if set, is told how long each dispatched entry took.
	Observe func(year, day uint16, d time.Duration)
}

// Default is the registry populated by aoc.Register.
var Default = new(Registry)

// Register adds a solution for (year, day). Duplicates are accepted; Find
// returns the first.
func (r *Registry) Register(year, day uint16, entry Entry) {
	if entry == nil {
		panic(fmt.Sprintf("registry: nil entry for %d day %d", year, day))
	}
	if year < 2015 || day < 1 || day > 25 {
		panic(fmt.Sprintf("registry: invalid puzzle %d day %d", year, day))
	}
	timed := timing.Wrap(entry, writerFunc(func(p []byte) (int, error) {
		return r.out().Write(p)
	}), func(d time.Duration) {
		if r.Observe != nil {
			r.Observe(year, day, d)
		}
	})
	r.records = append(r.records, Record{Year: year, Day: day, Entry: timed})
}

// Find returns the first record registered for (year, day).
func (r *Registry) Find(year, day uint16) (Record, bool) {
	for _, rec := range r.records {
		if rec.Year == year && rec.Day == day {
			return rec, true
		}
	}
	return Record{}, false
}

// Run invokes the solution for (year, day).
func (r *Registry) Run(year, day uint16) error {
	rec, ok := r.Find(year, day)
	if !ok {
		return fmt.Errorf("%d day %d: %w", year, day, ErrUnregistered)
	}
	return rec.Entry()
}

// All returns every record in registration order.
func (r *Registry) All() []Record {
	return slices.Clone(r.records)
}

// Years returns the distinct years with at least one record, ascending.
func (r *Registry) Years() []uint16 {
	seen := make(map[uint16]bool)
	for _, rec := range r.records {
		seen[rec.Year] = true
	}
	years := maps.Keys(seen)
	slices.Sort(years)
	return years
}

func (r *Registry) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
