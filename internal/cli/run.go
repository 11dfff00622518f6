package cli

import (
	"context"
	"fmt"

	"github.com/bradfitz/aoc/v2/internal/registry"
	"github.com/bradfitz/aoc/v2/internal/skeleton"
)

// Exit codes.
const (
	ExitOK   = 0
	ExitFail = 1
)

var (
	runOptions      = Options{RequireDay: true, AllowList: true}
	downloadOptions = Options{RequireDay: true}
	genOptions      = Options{RequireDay: true}
)

// fail prints err as one line on stderr and returns ExitFail.
func (a *App) fail(prog string, err error) int {
	fmt.Fprintf(a.Stderr, "%s: %v\n", prog, err)
	return ExitFail
}

// parse handles -h and argument errors uniformly. It reports done=true
// with the exit code when the caller should stop.
func (a *App) parse(prog string, args []string, opts Options) (_ Args, code int, done bool) {
	p, err := Parse(prog, args, opts)
	if err != nil {
		a.fail(prog, err)
		Usage(a.Stderr, prog, opts)
		return Args{}, ExitFail, true
	}
	if p.Help {
		Usage(a.Stderr, prog, opts)
		return Args{}, ExitOK, true
	}
	return p, 0, false
}

// Run is the runner front-end: it dispatches (year, day) to the solution
// registered in reg and returns the process exit code.
func (a *App) Run(prog string, reg *registry.Registry, args []string) int {
	p, code, done := a.parse(prog, args, runOptions)
	if done {
		return code
	}
	if p.List {
		for _, rec := range reg.All() {
			if !p.YearSet || rec.Year == p.Year {
				fmt.Fprintf(a.Stdout, "%d/%d\n", rec.Year, rec.Day)
			}
		}
		return ExitOK
	}

	if reg.Out == nil {
		reg.Out = a.Stdout
	}
	reg.Observe = a.ObserveSolution
	if err := reg.Run(p.Year, p.Day); err != nil {
		return a.fail(prog, err)
	}
	return ExitOK
}

// Download is the downloader front-end: it makes sure the input for
// (year, day) is cached, printing nothing on success.
func (a *App) Download(ctx context.Context, prog string, args []string) int {
	p, code, done := a.parse(prog, args, downloadOptions)
	if done {
		return code
	}
	if _, err := a.Input.Get(ctx, p.Year, p.Day); err != nil {
		return a.fail(prog, err)
	}
	return ExitOK
}

// Gen is the generator front-end: it writes a puzzle skeleton under the
// configured source root of the module in moduleDir.
func (a *App) Gen(prog, moduleDir string, args []string) int {
	p, code, done := a.parse(prog, args, genOptions)
	if done {
		return code
	}
	res, err := skeleton.Generate(skeleton.Config{ModuleDir: moduleDir, SrcRoot: a.Config.SrcRoot}, p.Year, p.Day)
	if err != nil {
		return a.fail(prog, err)
	}
	fmt.Fprintf(a.Stdout, "created %s\n", res.Puzzle)
	if res.Imported != "" {
		fmt.Fprintf(a.Stdout, "created %s\n", res.Imported)
	}
	return ExitOK
}
