package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bradfitz/aoc/v2/internal/config"
	"github.com/bradfitz/aoc/v2/internal/registry"
)

type testApp struct {
	*App
	stdout, stderr bytes.Buffer
}

func newTestApp(t *testing.T, baseURL string) *testApp {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		SessionFile:   filepath.Join(dir, "session.cookie"),
		CacheDir:      filepath.Join(dir, "cache"),
		BaseURL:       baseURL,
		UserAgent:     "aoc-test",
		HTTPTimeout:   5 * time.Second,
		FetchAttempts: 1,
		LogLevel:      "warn",
		SrcRoot:       "puzzles",
	}
	ta := new(testApp)
	ta.App = NewApp(cfg, &ta.stdout, &ta.stderr)
	t.Cleanup(ta.Close)
	return ta
}

func TestRunDispatches(t *testing.T) {
	ta := newTestApp(t, "")
	reg := new(registry.Registry)
	reg.Register(2015, 1, func() error {
		fmt.Fprintln(&ta.stdout, "HELLO")
		return nil
	})

	if code := ta.Run("run", reg, []string{"-y", "2015", "-d", "1"}); code != ExitOK {
		t.Fatalf("exit = %d; stderr: %s", code, ta.stderr.String())
	}
	lines := strings.Split(strings.TrimSuffix(ta.stdout.String(), "\n"), "\n")
	if len(lines) != 2 || lines[0] != "HELLO" || !strings.HasPrefix(lines[1], "Elapsed: \x1b[1m") {
		t.Fatalf("stdout = %q", ta.stdout.String())
	}
	if ta.stderr.Len() != 0 {
		t.Fatalf("stderr = %q", ta.stderr.String())
	}
}

func TestRunUnregistered(t *testing.T) {
	ta := newTestApp(t, "")
	code := ta.Run("run", new(registry.Registry), []string{"-y", "2099", "-d", "25"})
	if code != ExitFail {
		t.Fatalf("exit = %d; want %d", code, ExitFail)
	}
	if got := ta.stderr.String(); !strings.Contains(got, "not implemented") || !strings.HasPrefix(got, "run: ") {
		t.Fatalf("stderr = %q", got)
	}
	if ta.stdout.Len() != 0 {
		t.Fatalf("stdout = %q", ta.stdout.String())
	}
}

func TestRunSolutionError(t *testing.T) {
	ta := newTestApp(t, "")
	reg := new(registry.Registry)
	reg.Register(2020, 3, func() error { return errors.New("wrong answer") })

	if code := ta.Run("run", reg, []string{"-y", "2020", "-d", "3"}); code != ExitFail {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(ta.stderr.String(), "wrong answer") {
		t.Fatalf("stderr = %q", ta.stderr.String())
	}
	if !strings.HasPrefix(ta.stdout.String(), "Elapsed: ") {
		t.Fatalf("timing line missing after failure: %q", ta.stdout.String())
	}
}

func TestRunList(t *testing.T) {
	ta := newTestApp(t, "")
	reg := new(registry.Registry)
	noop := func() error { return nil }
	reg.Register(2015, 1, noop)
	reg.Register(2016, 2, noop)
	reg.Register(2016, 5, noop)

	if code := ta.Run("run", reg, []string{"-l", "-y", "2016"}); code != ExitOK {
		t.Fatalf("exit = %d", code)
	}
	if got, want := ta.stdout.String(), "2016/2\n2016/5\n"; got != want {
		t.Fatalf("list = %q; want %q", got, want)
	}
}

func TestRunHelp(t *testing.T) {
	ta := newTestApp(t, "")
	if code := ta.Run("run", new(registry.Registry), []string{"-d", "99", "-h"}); code != ExitOK {
		t.Fatalf("exit = %d", code)
	}
	if !strings.HasPrefix(ta.stderr.String(), "usage: run ") {
		t.Fatalf("stderr = %q", ta.stderr.String())
	}
}

func TestRunBadArgs(t *testing.T) {
	ta := newTestApp(t, "")
	if code := ta.Run("run", new(registry.Registry), []string{"-d", "0"}); code != ExitFail {
		t.Fatalf("exit = %d", code)
	}
	got := ta.stderr.String()
	if !strings.Contains(got, "invalid day") || !strings.Contains(got, "usage: run") {
		t.Fatalf("stderr = %q", got)
	}
}

func TestDownload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2022/day/4/input" {
			http.NotFound(w, r)
			return
		}
		if c, err := r.Cookie("session"); err != nil || c.Value != "s3cret" {
			http.Error(w, "who are you", http.StatusBadRequest)
			return
		}
		io.WriteString(w, "2-4,6-8\n")
	}))
	defer ts.Close()
	t.Setenv(config.SessionEnv, "s3cret")

	ta := newTestApp(t, ts.URL)
	if code := ta.Download(context.Background(), "download", []string{"-y", "2022", "-d", "4"}); code != ExitOK {
		t.Fatalf("exit = %d; stderr: %s", code, ta.stderr.String())
	}
	if ta.stdout.Len() != 0 || ta.stderr.Len() != 0 {
		t.Fatalf("download wasn't silent: stdout %q, stderr %q", ta.stdout.String(), ta.stderr.String())
	}
	got, err := os.ReadFile(filepath.Join(ta.Config.CacheDir, "2022", "4.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "2-4,6-8\n" {
		t.Fatalf("cached = %q", got)
	}
}

func TestDownloadNoCredential(t *testing.T) {
	t.Setenv(config.SessionEnv, "")
	ta := newTestApp(t, "http://127.0.0.1:1")
	code := ta.Download(context.Background(), "download", []string{"-y", "2022", "-d", "4"})
	if code != ExitFail {
		t.Fatalf("exit = %d", code)
	}
	got := ta.stderr.String()
	if !strings.HasPrefix(got, "download: ") || !strings.Contains(got, config.SessionEnv) {
		t.Fatalf("stderr = %q", got)
	}
}

func TestGen(t *testing.T) {
	moduleDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(moduleDir, "go.mod"), []byte("module example.com/x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ta := newTestApp(t, "")
	if code := ta.Gen("gen", moduleDir, []string{"-y", "2019", "-d", "12"}); code != ExitOK {
		t.Fatalf("exit = %d; stderr: %s", code, ta.stderr.String())
	}
	want := filepath.Join(moduleDir, "puzzles", "aoc2019", "day12.go")
	if !strings.Contains(ta.stdout.String(), "created "+want) {
		t.Fatalf("stdout = %q", ta.stdout.String())
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatal(err)
	}

	ta.stdout.Reset()
	if code := ta.Gen("gen", moduleDir, []string{"-y", "2019", "-d", "12"}); code != ExitFail {
		t.Fatalf("second gen exit = %d", code)
	}
	if !strings.Contains(ta.stderr.String(), "already exists") {
		t.Fatalf("stderr = %q", ta.stderr.String())
	}
}
