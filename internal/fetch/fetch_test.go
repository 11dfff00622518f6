package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/bradfitz/aoc/v2/internal/metrics"
)

func newTestClient(srv *httptest.Server, attempts int) *Client {
	c := New(srv.URL, "aoc-test/1.0 contact: test@example.com", 5*time.Second)
	c.Attempts = attempts
	c.BackOff = &backoff.ZeroBackOff{}
	return c
}

func TestURL(t *testing.T) {
	c := New("", "ua", time.Second)
	if got, want := c.URL(2023, 1), "https://adventofcode.com/2023/day/1/input"; got != want {
		t.Fatalf("URL = %q; want %q", got, want)
	}
	c = New("http://localhost:8080/", "ua", time.Second)
	if got, want := c.URL(2015, 25), "http://localhost:8080/2015/day/25/input"; got != want {
		t.Fatalf("URL = %q; want %q", got, want)
	}
}

func TestFetchSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s; want GET", r.Method)
		}
		if r.URL.Path != "/2024/day/3/input" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Cookie"); got != "session=tok" {
			t.Errorf("Cookie = %q; want %q", got, "session=tok")
		}
		if got := r.Header.Get("User-Agent"); got != "aoc-test/1.0 contact: test@example.com" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte("xyz"))
	}))
	defer srv.Close()

	got, err := newTestClient(srv, 1).Fetch(context.Background(), 2024, 3, "tok")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != "xyz" {
		t.Fatalf("Fetch = %q; want %q", got, "xyz")
	}
}

func TestFetchNoRetryOn4xx(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "Please don't repeatedly request this endpoint before it unlocks!", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv, 5)
	c.Metrics = metrics.New()
	_, err := c.Fetch(context.Background(), 2099, 25, "tok")
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("err = %v; want ErrFetchFailed", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("err = %v; want StatusError 404", err)
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("server hit %d times; want 1", n)
	}
	if got := testutil.ToFloat64(c.Metrics.FetchAttempts.WithLabelValues(metrics.OutcomeStatus)); got != 1 {
		t.Fatalf("status attempts metric = %v; want 1", got)
	}
}

func TestFetchRetries5xx(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("1\n2\n3\n"))
	}))
	defer srv.Close()

	got, err := newTestClient(srv, 3).Fetch(context.Background(), 2022, 1, "tok")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != "1\n2\n3\n" {
		t.Fatalf("Fetch = %q", got)
	}
	if n := hits.Load(); n != 3 {
		t.Fatalf("server hit %d times; want 3", n)
	}
}

func TestFetchGivesUpAfterAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 2).Fetch(context.Background(), 2022, 1, "tok")
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("err = %v; want ErrFetchFailed", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Fatalf("err = %q; want status in message", err)
	}
	if n := hits.Load(); n != 2 {
		t.Fatalf("server hit %d times; want 2", n)
	}
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := newTestClient(srv, 1)
	srv.Close()

	_, err := c.Fetch(context.Background(), 2022, 1, "tok")
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("err = %v; want ErrFetchFailed", err)
	}
}

func TestFetchRejectsInvalidUTF8(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0xff, 0xfe, 'a'})
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 3).Fetch(context.Background(), 2022, 1, "tok")
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("err = %v; want ErrFetchFailed", err)
	}
}

func TestFetchRequiresUserAgent(t *testing.T) {
	c := New("http://127.0.0.1:1", "", time.Second)
	if _, err := c.Fetch(context.Background(), 2022, 1, "tok"); !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("err = %v; want ErrFetchFailed", err)
	}
}
