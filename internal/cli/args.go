// Package cli is the argument parsing and dispatch shared by the run,
// download and gen front-ends.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/bradfitz/aoc/v2/internal/sysenv"
)

var (
	ErrInvalidArgs = errors.New("invalid arguments")
	ErrInvalidYear = errors.New("invalid year")
	ErrInvalidDay  = errors.New("invalid day")
)

// FirstYear is the first Advent of Code.
const FirstYear = 2015

// Args is a parsed command line.
type Args struct {
	Year    uint16
	YearSet bool   // -y was given explicitly
	Day     uint16 // 0 if -d was not given and not required

	Help bool // -h or --help was given; nothing else is meaningful
	List bool // -l was given (run only)
}

// Options controls Parse.
type Options struct {
	// RequireDay makes a missing -d an error.
	RequireDay bool

	// AllowList enables the -l flag, which also lifts RequireDay.
	AllowList bool

	// Now returns the default year. Nil means sysenv.CurrentYear.
	Now func() uint16
}

// uintValue is a flag.Value for an unsigned integer of a given width.
type uintValue[T constraints.Unsigned] struct {
	p    *T
	bits int
	set  bool
}

func (v *uintValue[T]) String() string {
	if v == nil || v.p == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*v.p), 10)
}

func (v *uintValue[T]) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, v.bits)
	if err != nil {
		return fmt.Errorf("not a %d-bit unsigned integer", v.bits)
	}
	*v.p = T(n)
	v.set = true
	return nil
}

// Parse parses args (without the program name) for the front-end prog.
// A -h or --help anywhere before "--" wins over every other argument.
func Parse(prog string, args []string, opts Options) (Args, error) {
	for _, a := range args {
		if a == "--" {
			break
		}
		if a == "-h" || a == "--help" || a == "-help" {
			return Args{Help: true}, nil
		}
	}

	var out Args
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	year := &uintValue[uint16]{p: &out.Year, bits: 16}
	day := &uintValue[uint16]{p: &out.Day, bits: 16}
	fs.Var(year, "y", "puzzle `YEAR` (default: current UTC year)")
	fs.Var(day, "d", "puzzle `DAY`, 1-25")
	if opts.AllowList {
		fs.BoolVar(&out.List, "l", false, "list registered puzzles")
	}
	if err := fs.Parse(args); err != nil {
		return Args{}, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	if fs.NArg() > 0 {
		return Args{}, fmt.Errorf("%w: unexpected argument %q", ErrInvalidArgs, fs.Arg(0))
	}

	out.YearSet = year.set
	if !year.set {
		now := opts.Now
		if now == nil {
			now = sysenv.CurrentYear
		}
		out.Year = now()
	}
	if out.Year < FirstYear {
		return Args{}, fmt.Errorf("%w: %d (Advent of Code started in %d)", ErrInvalidYear, out.Year, FirstYear)
	}
	if out.List {
		return out, nil
	}
	if !day.set {
		if opts.RequireDay {
			return Args{}, fmt.Errorf("%w: -d DAY is required", ErrInvalidArgs)
		}
		return out, nil
	}
	if out.Day < 1 || out.Day > 25 {
		return Args{}, fmt.Errorf("%w: %d (must be 1-25)", ErrInvalidDay, out.Day)
	}
	return out, nil
}

// Usage writes the help text for prog to w.
func Usage(w io.Writer, prog string, opts Options) {
	list := ""
	if opts.AllowList {
		list = " [-l]"
	}
	fmt.Fprintf(w, "usage: %s [-h|--help] [-y <YEAR>] -d <DAY>%s\n", prog, list)
	fmt.Fprintf(w, "  -y YEAR  puzzle year, %d or later (default: current UTC year)\n", FirstYear)
	fmt.Fprintf(w, "  -d DAY   puzzle day, 1-25\n")
	if opts.AllowList {
		fmt.Fprintf(w, "  -l       list registered puzzles and exit\n")
	}
	fmt.Fprintf(w, "  -h       show this help\n")
}
