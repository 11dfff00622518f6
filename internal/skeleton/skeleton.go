// Package skeleton writes the starting source file for a new puzzle.
package skeleton

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"golang.org/x/mod/modfile"
)

// ErrExists is returned instead of overwriting an existing puzzle file.
var ErrExists = errors.New("skeleton already exists")

var (
	//go:embed day.go.tmpl
	dayTemplate string

	//go:embed all.go.tmpl
	allTemplate string

	tmpl = template.Must(template.New("day.go").Parse(dayTemplate))
	// all.go is the per-year blank import in <root>/all.
	allTmpl = template.Must(template.New("all.go").Parse(allTemplate))
)

type templateArgs struct {
	Module  string // module path of the puzzle tree
	SrcRoot string // SrcRoot relative to the module root, slash-separated
	Year    uint16
	Day     uint16
}

func (a templateArgs) Package() string { return "aoc" + strconv.Itoa(int(a.Year)) }

func (a templateArgs) ImportPath() string {
	return a.Module + "/" + a.SrcRoot + "/" + a.Package()
}

// Config describes where skeletons go.
type Config struct {
	// ModuleDir is the directory holding go.mod.
	ModuleDir string

	// SrcRoot is where year packages live, relative to ModuleDir.
	SrcRoot string
}

// Result lists the files Generate created.
type Result struct {
	Puzzle   string // <src_root>/aoc<year>/day<day>.go
	Imported string // <src_root>/all/aoc<year>.go, empty if it already existed
}

// Path returns the puzzle file for (year, day) under srcRoot.
func Path(srcRoot string, year, day uint16) string {
	return filepath.Join(srcRoot, fmt.Sprintf("aoc%d", year), fmt.Sprintf("day%d.go", day))
}

// Generate writes the skeleton for (year, day). It refuses to touch an
// existing puzzle file, and adds the year package to <src_root>/all the
// first time a year is used.
func Generate(cfg Config, year, day uint16) (Result, error) {
	mod, err := modulePath(cfg.ModuleDir)
	if err != nil {
		return Result{}, err
	}
	args := templateArgs{
		Module:  mod,
		SrcRoot: filepath.ToSlash(filepath.Clean(cfg.SrcRoot)),
		Year:    year,
		Day:     day,
	}
	root := filepath.Join(cfg.ModuleDir, cfg.SrcRoot)

	var res Result
	res.Puzzle = Path(root, year, day)
	src, err := render(tmpl, args)
	if err != nil {
		return Result{}, err
	}
	if err := createExclusive(res.Puzzle, src); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrExists, res.Puzzle)
		}
		return Result{}, err
	}

	allPath := filepath.Join(root, "all", args.Package()+".go")
	src, err = render(allTmpl, args)
	if err != nil {
		return res, err
	}
	switch err := createExclusive(allPath, src); {
	case err == nil:
		res.Imported = allPath
	case errors.Is(err, fs.ErrExist):
	default:
		return res, err
	}
	return res, nil
}

func render(t *template.Template, args templateArgs) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, args); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", t.Name(), err)
	}
	return src, nil
}

func createExclusive(path string, src []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("read go.mod: %w", err)
	}
	mod := modfile.ModulePath(data)
	if mod == "" {
		return "", fmt.Errorf("no module line in %s", filepath.Join(dir, "go.mod"))
	}
	return mod, nil
}
