// Package credential resolves the Advent of Code session cookie.
package credential

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrUnavailable is returned when neither the environment nor the cookie
// file yields a non-empty session token.
var ErrUnavailable = errors.New("session credential unavailable")

// Load returns the session token from the environment variable envVar or,
// failing that, from the file cookieFile (relative paths resolve against
// the working directory). Surrounding whitespace is trimmed from both
// sources; an empty value counts as absent.
func Load(envVar, cookieFile string) (string, error) {
	return load(os.LookupEnv, envVar, cookieFile)
}

func load(lookup func(string) (string, bool), envVar, cookieFile string) (string, error) {
	if v, ok := lookup(envVar); ok {
		if tok := strings.TrimSpace(v); tok != "" {
			return tok, nil
		}
	}
	if cookieFile != "" {
		if b, err := os.ReadFile(cookieFile); err == nil {
			if tok := strings.TrimSpace(string(b)); tok != "" {
				return tok, nil
			}
		}
	}
	return "", fmt.Errorf("%w: set %s or write the cookie to %s", ErrUnavailable, envVar, cookieFile)
}

// Source loads a credential on demand.
type Source interface {
	Credential() (string, error)
}

// EnvFile is a Source backed by Load.
type EnvFile struct {
	EnvVar     string
	CookieFile string
}

func (s EnvFile) Credential() (string, error) {
	return Load(s.EnvVar, s.CookieFile)
}
