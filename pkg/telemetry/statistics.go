// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

// Package telemetry turns noisy analog temperature readings into bounded
// telemetry: running statistics, a fixed-depth history, and periodic
// reports driven by a timer-checked sampling engine.
package telemetry

import "math"

// Statistics tracks cumulative sample statistics. Count only increases and
// min/max only tighten until Reset. The fields are unexported so callers
// cannot read the +Inf/-Inf identity values as data; the accessors report
// "no data" explicitly while the count is zero.
type Statistics struct {
	count uint32
	sum   float64
	min   float64
	max   float64
}

// NewStatistics creates a statistics tracker at its identity state.
func NewStatistics() *Statistics {
	s := &Statistics{}
	s.Reset()
	return s
}

// Reset reinitializes to the identity values: count=0, sum=0, min=+Inf,
// max=-Inf.
func (s *Statistics) Reset() {
	s.count = 0
	s.sum = 0
	s.min = math.Inf(1)
	s.max = math.Inf(-1)
}

// Add folds one sample into the statistics.
func (s *Statistics) Add(v float64) {
	s.count++
	s.sum += v
	if v < s.min {
		s.min = v
	}
	if v > s.max {
		s.max = v
	}
}

// Count returns the number of samples since the last reset.
func (s Statistics) Count() uint32 { return s.count }

// Sum returns the running sum.
func (s *Statistics) Sum() float64 { return s.sum }

// Average returns the running average, or ok=false while no samples exist.
func (s *Statistics) Average() (avg float64, ok bool) {
	if s.count == 0 {
		return 0, false
	}
	return s.sum / float64(s.count), true
}

// Range returns the running min and max, or ok=false while no samples
// exist.
func (s *Statistics) Range() (min, max float64, ok bool) {
	if s.count == 0 {
		return 0, 0, false
	}
	return s.min, s.max, true
}
