// Package metrics counts what the harness did during one invocation and
// can dump it in the Prometheus text format for a textfile collector.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Input sources for InputsServed.
const (
	SourceMemory  = "memory"
	SourceDisk    = "disk"
	SourceNetwork = "network"
)

// Fetch attempt outcomes for FetchAttempts.
const (
	OutcomeOK     = "ok"
	OutcomeStatus = "status"
	OutcomeError  = "error"
)

// Metrics holds the collectors for one process. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	// InputsServed counts inputs handed to puzzles, by where they came from.
	InputsServed *prometheus.CounterVec

	// FetchAttempts counts HTTP attempts against the puzzle server.
	FetchAttempts *prometheus.CounterVec

	// CacheWriteFailures counts inputs that were fetched but not persisted.
	CacheWriteFailures prometheus.Counter

	// SolutionSeconds is the wall-clock time of the last run of each puzzle.
	SolutionSeconds *prometheus.GaugeVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		InputsServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aoc_inputs_served_total",
				Help: "Puzzle inputs returned to solutions, by source.",
			},
			[]string{"source"},
		),
		FetchAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aoc_fetch_attempts_total",
				Help: "HTTP attempts to download a puzzle input, by outcome.",
			},
			[]string{"outcome"},
		),
		CacheWriteFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "aoc_cache_write_failures_total",
				Help: "Fetched inputs that could not be written to the cache.",
			},
		),
		SolutionSeconds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "aoc_solution_duration_seconds",
				Help: "Wall-clock duration of the last solution run.",
			},
			[]string{"year", "day"},
		),
	}
	m.Registry.MustRegister(
		m.InputsServed,
		m.FetchAttempts,
		m.CacheWriteFailures,
		m.SolutionSeconds,
	)
	return m
}

func (m *Metrics) InputServed(source string) {
	if m == nil {
		return
	}
	m.InputsServed.WithLabelValues(source).Inc()
}

func (m *Metrics) FetchAttempt(outcome string) {
	if m == nil {
		return
	}
	m.FetchAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CacheWriteFailed() {
	if m == nil {
		return
	}
	m.CacheWriteFailures.Inc()
}

func (m *Metrics) ObserveSolution(year, day uint16, d time.Duration) {
	if m == nil {
		return
	}
	m.SolutionSeconds.WithLabelValues(strconv.Itoa(int(year)), strconv.Itoa(int(day))).Set(d.Seconds())
}

// WriteTextfile writes every collected metric to path. An empty path is
// a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
