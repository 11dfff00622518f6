// Package fetch downloads puzzle inputs from the Advent of Code server.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"github.com/bradfitz/aoc/v2/internal/metrics"
)

// ErrFetchFailed wraps every failure to obtain an input from the server:
// network errors, non-2xx statuses, and body read errors.
var ErrFetchFailed = errors.New("fetch failed")

// DefaultBaseURL is the Advent of Code site.
const DefaultBaseURL = "https://adventofcode.com"

// StatusError is a non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return "bad status: " + e.Status
	}
	return fmt.Sprintf("bad status: %d", e.Code)
}

// Client fetches inputs. The zero value is not usable; see New.
type Client struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client

	// Attempts is the total number of tries for retryable failures
	// (network errors and 5xx). Values below 1 mean 1.
	Attempts int

	// BackOff spaces out retries. Nil means exponential starting at 500ms.
	BackOff backoff.BackOff

	Log     zerolog.Logger
	Metrics *metrics.Metrics
}

// New returns a Client for baseURL identifying itself as userAgent.
func New(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
		HTTP:      &http.Client{Timeout: timeout},
		Attempts:  1,
		Log:       zerolog.Nop(),
	}
}

// URL returns the input URL for (year, day).
func (c *Client) URL(year, day uint16) string {
	return fmt.Sprintf("%s/%d/day/%d/input", c.BaseURL, year, day)
}

// Fetch downloads the input for (year, day) using the session token
// credential. 4xx responses are never retried: they mean a bad session
// or a day that hasn't unlocked yet.
func (c *Client) Fetch(ctx context.Context, year, day uint16, credential string) (string, error) {
	if c.UserAgent == "" {
		return "", fmt.Errorf("%w: no User-Agent configured", ErrFetchFailed)
	}
	url := c.URL(year, day)
	attempts := c.Attempts
	if attempts < 1 {
		attempts = 1
	}
	bo := c.BackOff
	if bo == nil {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = 500 * time.Millisecond
		eb.MaxInterval = 5 * time.Second
		bo = eb
	}

	try := 0
	body, err := backoff.Retry(ctx, func() (string, error) {
		try++
		s, err := c.get(ctx, url, credential)
		if err == nil {
			c.Metrics.FetchAttempt(metrics.OutcomeOK)
			return s, nil
		}
		var se *StatusError
		if errors.As(err, &se) {
			c.Metrics.FetchAttempt(metrics.OutcomeStatus)
			if se.Code < 500 {
				return "", backoff.Permanent(err)
			}
		} else {
			c.Metrics.FetchAttempt(metrics.OutcomeError)
		}
		return "", err
	},
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			c.Log.Warn().Err(err).Int("attempt", try).Dur("backoff", wait).Msg("retrying input download")
		}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %w", ErrFetchFailed, url, err)
	}
	c.Log.Debug().Uint16("year", year).Uint16("day", day).Int("bytes", len(body)).Int("attempts", try).Msg("downloaded input")
	return body, nil
}

func (c *Client) get(ctx context.Context, url, credential string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", backoff.Permanent(err)
	}
	// Set verbatim rather than via AddCookie, which would quote or drop
	// values containing characters outside the cookie-octet set.
	req.Header.Set("Cookie", "session="+credential)
	req.Header.Set("User-Agent", c.UserAgent)

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		return "", &StatusError{Code: res.StatusCode, Status: res.Status}
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if !utf8.Valid(b) {
		return "", backoff.Permanent(errors.New("response body is not valid UTF-8"))
	}
	return string(b), nil
}
