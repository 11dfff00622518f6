// Package timing reports how long a solution took.
package timing

import (
	"fmt"
	"io"
	"os"
	"time"
)

const (
	bold  = "\x1b[1m"
	reset = "\x1b[0m"
)

// Format renders d in whole seconds, milliseconds or microseconds,
// whichever is the largest unit d reaches. Fractions are truncated.
func Format(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%ds", d/time.Second)
	case d >= time.Millisecond:
		return fmt.Sprintf("%dms", d/time.Millisecond)
	default:
		return fmt.Sprintf("%dμs", d/time.Microsecond)
	}
}

// Line is the report printed after a solution returns.
func Line(d time.Duration) string {
	return "Elapsed: " + bold + Format(d) + reset
}

// Wrap returns f decorated to print its elapsed wall-clock time to out
// after it returns, whether or not it failed. A nil out means os.Stdout
// at call time. observe, if non-nil, also receives the duration.
func Wrap(f func() error, out io.Writer, observe func(time.Duration)) func() error {
	return func() error {
		t0 := time.Now()
		err := f()
		d := time.Since(t0)

		w := out
		if w == nil {
			w = os.Stdout
		}
		fmt.Fprintln(w, Line(d))
		if observe != nil {
			observe(d)
		}
		return err
	}
}
