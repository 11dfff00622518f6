// Package input is the lookup-or-fetch-and-persist facade every puzzle
// goes through to obtain its input.
package input

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/bradfitz/aoc/v2/internal/input Fetcher,CredentialSource

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bradfitz/aoc/v2/internal/cache"
	"github.com/bradfitz/aoc/v2/internal/credential"
	"github.com/bradfitz/aoc/v2/internal/metrics"
)

// ErrUnavailable is returned when an input is neither cached nor
// obtainable. It always wraps either credential.ErrUnavailable or
// fetch.ErrFetchFailed as well.
var ErrUnavailable = errors.New("input unavailable")

// Fetcher downloads one input from the puzzle server.
type Fetcher interface {
	Fetch(ctx context.Context, year, day uint16, credential string) (string, error)
}

// CredentialSource yields the session token. It's only consulted on a
// cache miss.
type CredentialSource interface {
	Credential() (string, error)
}

var _ CredentialSource = credential.EnvFile{}

// Acquirer serves inputs from memory, then disk, then the network.
type Acquirer struct {
	Store       cache.Store
	Memo        *cache.Memo
	Fetcher     Fetcher
	Credentials CredentialSource
	Log         zerolog.Logger
	Metrics     *metrics.Metrics
}

// Get returns the input for (year, day).
//
// A freshly fetched input that can't be written to the cache is still
// returned; the failure is only logged.
func (a *Acquirer) Get(ctx context.Context, year, day uint16) (string, error) {
	if s, ok := a.Memo.Get(year, day); ok {
		a.Metrics.InputServed(metrics.SourceMemory)
		return s, nil
	}
	log := a.Log.With().Uint16("year", year).Uint16("day", day).Logger()

	if err := a.Store.EnsureRoot(); err != nil {
		log.Warn().Err(err).Msg("cache root unavailable")
	}
	s, err := a.Store.Read(year, day)
	if err == nil {
		log.Debug().Str("path", a.Store.Path(year, day)).Msg("cache hit")
		a.Metrics.InputServed(metrics.SourceDisk)
		a.Memo.Set(year, day, s)
		return s, nil
	}
	log.Debug().Err(err).Msg("cache miss")

	tok, err := a.Credentials.Credential()
	if err != nil {
		return "", fmt.Errorf("%w for %d day %d: not cached and %w", ErrUnavailable, year, day, err)
	}
	s, err = a.Fetcher.Fetch(ctx, year, day, tok)
	if err != nil {
		return "", fmt.Errorf("%w for %d day %d: not cached and %w", ErrUnavailable, year, day, err)
	}
	a.Metrics.InputServed(metrics.SourceNetwork)

	if err := a.Store.Write(year, day, s); err != nil {
		a.Metrics.CacheWriteFailed()
		log.Warn().Err(err).Msg("could not cache downloaded input")
	} else {
		log.Debug().Str("path", a.Store.Path(year, day)).Msg("cached input")
	}
	a.Memo.Set(year, day, s)
	return s, nil
}
