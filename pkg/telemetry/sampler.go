// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package telemetry

import (
	"errors"
	"fmt"
	"time"
)

// Report interval bounds. Configure rejects values outside this range and
// keeps the previous interval.
const (
	MinInterval     = 500 * time.Millisecond
	MaxInterval     = 60000 * time.Millisecond
	DefaultInterval = 2000 * time.Millisecond
)

// ErrIntervalOutOfRange is returned by Configure for intervals outside
// [MinInterval, MaxInterval].
var ErrIntervalOutOfRange = fmt.Errorf("interval out of range (valid: %d-%d ms)",
	MinInterval.Milliseconds(), MaxInterval.Milliseconds())

// SensorFunc reads one temperature measurement in degrees Celsius. An error
// means the sample is skipped; statistics are never fed a failed reading.
type SensorFunc func() (float64, error)

// Engine is the periodic sampling engine. On each Tick it checks elapsed
// monotonic time against the configured interval and, when due, pulls
// exactly one sample, folds it into the statistics and history, and emits a
// Report. Timing is computed from elapsed time so console commands stay
// responsive between samples.
//
// The engine is single-threaded: it is only touched from the firmware
// main loop.
type Engine struct {
	read     SensorFunc
	stats    Statistics
	history  History
	interval time.Duration
	last     time.Time
	enabled  bool
}

// NewEngine creates an enabled engine with the default interval.
func NewEngine(read SensorFunc) *Engine {
	e := &Engine{
		read:     read,
		interval: DefaultInterval,
		enabled:  true,
	}
	e.stats.Reset()
	return e
}

// Tick advances the engine. It returns a Report when a sample was taken, or
// (nil, nil) when the interval has not elapsed or monitoring is disabled.
// A sensor failure skips the sample and returns an error; statistics and
// history are untouched and the next attempt happens a full interval later.
func (e *Engine) Tick(now time.Time) (*Report, error) {
	if !e.enabled {
		return nil, nil
	}
	if e.last.IsZero() {
		e.last = now
		return nil, nil
	}
	if now.Sub(e.last) < e.interval {
		return nil, nil
	}
	v, err := e.read()
	if err != nil {
		e.last = now
		return nil, fmt.Errorf("sensor read failed, sample skipped: %w", err)
	}
	e.stats.Add(v)
	e.history.Push(v)
	e.last = now

	avg, _ := e.stats.Average()
	min, max, _ := e.stats.Range()
	return &Report{
		Number:   e.stats.Count(),
		Value:    v,
		Average:  avg,
		Min:      min,
		Max:      max,
		Interval: e.interval,
		Taken:    now,
	}, nil
}

// ReadNow takes an immediate one-off reading without touching the
// statistics, history, or sampling schedule.
func (e *Engine) ReadNow() (float64, error) {
	return e.read()
}

// Configure sets the report interval. Out-of-range values are rejected and
// the previous interval stays in effect.
func (e *Engine) Configure(interval time.Duration) error {
	if interval < MinInterval || interval > MaxInterval {
		return fmt.Errorf("%w: got %d ms", ErrIntervalOutOfRange, interval.Milliseconds())
	}
	e.interval = interval
	return nil
}

// Interval returns the configured report interval.
func (e *Engine) Interval() time.Duration { return e.interval }

// Enable turns periodic monitoring on.
func (e *Engine) Enable() { e.enabled = true }

// Disable turns periodic monitoring off. Tick becomes a no-op.
func (e *Engine) Disable() { e.enabled = false }

// Enabled reports whether monitoring is on.
func (e *Engine) Enabled() bool { return e.enabled }

// ResetStatistics reinitializes the statistics and history. The sampling
// schedule and interval are unaffected.
func (e *Engine) ResetStatistics() {
	e.stats.Reset()
	e.history.Reset()
}

// Stats returns a copy of the current statistics.
func (e *Engine) Stats() Statistics { return e.stats }

// HistorySnapshot returns the retained samples, oldest first.
func (e *Engine) HistorySnapshot() []float64 { return e.history.Snapshot() }

// LastSample returns the most recent retained sample, or ok=false when no
// sample has been taken since the last reset.
func (e *Engine) LastSample() (v float64, ok bool) { return e.history.Last() }

// IsIntervalError reports whether err stems from interval validation.
func IsIntervalError(err error) bool { return errors.Is(err, ErrIntervalOutOfRange) }
