package cli

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bradfitz/aoc/v2/internal/cache"
	"github.com/bradfitz/aoc/v2/internal/config"
	"github.com/bradfitz/aoc/v2/internal/credential"
	"github.com/bradfitz/aoc/v2/internal/fetch"
	"github.com/bradfitz/aoc/v2/internal/input"
	"github.com/bradfitz/aoc/v2/internal/logging"
	"github.com/bradfitz/aoc/v2/internal/metrics"
)

// memoBytes bounds the in-process input memo. Real inputs are tens of KB.
const memoBytes = 64 << 20

// App is everything a front-end needs, built once per process.
type App struct {
	Config  config.Config
	Log     zerolog.Logger
	Metrics *metrics.Metrics
	Input   *input.Acquirer

	Stdout io.Writer
	Stderr io.Writer
}

// NewApp wires the harness from cfg. Diagnostics go to stderr.
func NewApp(cfg config.Config, stdout, stderr io.Writer) *App {
	log := logging.New(stderr, cfg.LogLevel)
	m := metrics.New()

	fc := fetch.New(cfg.BaseURL, cfg.UserAgent, cfg.HTTPTimeout)
	fc.Attempts = cfg.FetchAttempts
	fc.Log = log
	fc.Metrics = m

	memo, err := cache.NewMemo(memoBytes)
	if err != nil {
		// The memo is an optimization; run without it.
		log.Warn().Err(err).Msg("input memo disabled")
		memo = nil
	}

	return &App{
		Config:  cfg,
		Log:     log,
		Metrics: m,
		Input: &input.Acquirer{
			Store:   cache.Store{Root: cfg.CacheDir},
			Memo:    memo,
			Fetcher: fc,
			Credentials: credential.EnvFile{
				EnvVar:     config.SessionEnv,
				CookieFile: cfg.SessionFile,
			},
			Log:     log,
			Metrics: m,
		},
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Load reads the configuration and wires an App on the process's
// standard streams.
func Load() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewApp(cfg, os.Stdout, os.Stderr), nil
}

// ObserveSolution records a solution's duration.
func (a *App) ObserveSolution(year, day uint16, d time.Duration) {
	a.Metrics.ObserveSolution(year, day, d)
}

// Close flushes metrics (if configured) and releases the memo.
func (a *App) Close() {
	if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.Log.Warn().Err(err).Str("path", a.Config.MetricsFile).Msg("metrics not written")
	}
	a.Input.Memo.Close()
}
