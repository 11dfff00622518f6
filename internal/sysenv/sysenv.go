// Package sysenv holds the small bits of host environment the harness
// needs: home directory expansion and the current calendar year.
package sysenv

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// userHomeDir is swapped out by tests.
var userHomeDir = os.UserHomeDir

// ExpandTilde replaces a leading "~" in path with the user's home
// directory. Only "~" and "~/..." are expanded; "~user" forms are left
// alone. If the home directory can't be determined, path is returned
// unchanged so the subsequent filesystem operation fails with the
// literal path in its error.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := userHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// CurrentYear returns the current calendar year in UTC.
func CurrentYear() uint16 {
	return YearOfUnix(time.Now().Unix())
}

// YearOfUnix returns the UTC calendar year containing the Unix time sec.
func YearOfUnix(sec int64) uint16 {
	days := sec / 86400
	if sec%86400 < 0 {
		days--
	}
	return uint16(civilYear(days))
}

// civilYear is the year part of Howard Hinnant's civil_from_days.
// days counts from 1970-01-01.
func civilYear(days int64) int64 {
	z := days + 719468
	era := z / 146097
	if z < 0 && z%146097 != 0 {
		era--
	}
	doe := z - era*146097                                 // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365 // [0, 399]
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]
	mp := (5*doy + 2) / 153                  // [0, 11], March-based
	if mp >= 10 {
		// January and February belong to the next civil year.
		y++
	}
	return y
}
