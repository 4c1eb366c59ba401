// Package searchlog reports the solver's search progress (start, periodic
// totals, final result) through a structured logrus logger, gated by
// Parameters.LogSearchProgress.
package searchlog

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus logger with the solver's three reporting points:
// start of search, periodic progress, and final result. It is a no-op when
// not enabled, so callers can construct and use one unconditionally.
type Logger struct {
	enabled bool
	entry   *logrus.Entry
	start   time.Time
}

// New returns a Logger. When enabled is false every method is a no-op.
func New(enabled bool) *Logger {
	if !enabled {
		return &Logger{}
	}
	return &Logger{
		enabled: true,
		entry:   logrus.NewEntry(logrus.StandardLogger()),
	}
}

// Start logs that a search round has begun.
func (l *Logger) Start() {
	if !l.enabled {
		return
	}
	l.start = time.Now()
	l.entry.Info("search started")
}

// Progress logs the running search totals.
func (l *Logger) Progress(iterations, conflicts, restarts int64, learnts, learntPBs int) {
	if !l.enabled {
		return
	}
	l.entry.WithFields(logrus.Fields{
		"elapsed_s": time.Since(l.start).Seconds(),
		"iters":     iterations,
		"conflicts": conflicts,
		"restarts":  restarts,
		"learnts":   learnts,
		"learntPBs": learntPBs,
	}).Info("search progress")
}

// Result logs the final status string ("SAT", "UNSAT", ...).
func (l *Logger) Result(status string) {
	if !l.enabled {
		return
	}
	l.entry.WithFields(logrus.Fields{
		"elapsed_s": time.Since(l.start).Seconds(),
		"status":    status,
	}).Info("search finished")
}
