// Package cache stores downloaded puzzle inputs on disk as
// <root>/<year>/<day>.txt.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bradfitz/aoc/v2/internal/sysenv"
)

var (
	// ErrMiss reports that no usable cache file exists. It is recoverable:
	// the caller is expected to fetch instead.
	ErrMiss = errors.New("cache miss")

	// ErrWrite reports that an input could not be persisted.
	ErrWrite = errors.New("cache write failed")
)

// Store is an on-disk input cache rooted at Root. Root may start with "~".
type Store struct {
	Root string
}

// Path returns the cache file for (year, day). It does no I/O.
func Path(root string, year, day uint16) string {
	return filepath.Join(sysenv.ExpandTilde(root), strconv.Itoa(int(year)), strconv.Itoa(int(day))+".txt")
}

func (s Store) Path(year, day uint16) string {
	return Path(s.Root, year, day)
}

// EnsureRoot creates the root directory if it doesn't exist.
func (s Store) EnsureRoot() error {
	if err := os.MkdirAll(sysenv.ExpandTilde(s.Root), 0o755); err != nil {
		return fmt.Errorf("create cache root: %w", err)
	}
	return nil
}

// Read returns the cached input for (year, day). Every failure,
// including permission errors, is reported as ErrMiss. An empty file is a
// hit.
func (s Store) Read(year, day uint16) (string, error) {
	b, err := os.ReadFile(s.Path(year, day))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMiss, err)
	}
	return string(b), nil
}

// Write stores content verbatim for (year, day), creating the year
// directory as needed. Concurrent writers race; the last one wins.
func (s Store) Write(year, day uint16, content string) error {
	p := s.Path(year, day)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), filepath.Base(p)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
