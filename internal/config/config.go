// Package config loads harness settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process-wide harness configuration.
//
// The session cookie is not part of Config. It is read from SessionEnv or
// SessionFile only on a cache miss and is never logged.
type Config struct {
	SessionFile string `env:"AOC_SESSION_FILE" envDefault:"session.cookie"`

	CacheDir string `env:"AOC_CACHE_DIR" envDefault:"~/.aoc"`

	BaseURL       string        `env:"AOC_BASE_URL" envDefault:"https://adventofcode.com"`
	UserAgent     string        `env:"AOC_USER_AGENT" envDefault:"github.com/bradfitz/aoc (+https://github.com/bradfitz/aoc)"`
	HTTPTimeout   time.Duration `env:"AOC_HTTP_TIMEOUT" envDefault:"30s"`
	FetchAttempts int           `env:"AOC_FETCH_ATTEMPTS" envDefault:"3"`

	LogLevel    string `env:"AOC_LOG_LEVEL" envDefault:"warn"`
	MetricsFile string `env:"AOC_METRICS_FILE"`

	SrcRoot string `env:"AOC_SRC_ROOT" envDefault:"puzzles"`
}

// MaxFetchAttempts bounds FetchAttempts regardless of what the
// environment asks for.
const MaxFetchAttempts = 5

// SessionEnv is the environment variable holding the session cookie.
const SessionEnv = "AOC_SESSION"

// Load reads .env (if present) and then the process environment.
// Variables already set in the environment take precedence over .env.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	switch {
	case cfg.FetchAttempts < 1:
		cfg.FetchAttempts = 1
	case cfg.FetchAttempts > MaxFetchAttempts:
		cfg.FetchAttempts = MaxFetchAttempts
	}
	if cfg.UserAgent == "" {
		return Config{}, fmt.Errorf("parse env: AOC_USER_AGENT must not be empty")
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
