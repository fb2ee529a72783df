// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package telemetry

import (
	"fmt"
	"strings"
	"time"
)

// Report is one periodic telemetry emission: the sample just taken plus the
// running statistics at that point.
type Report struct {
	Number   uint32
	Value    float64
	Average  float64
	Min      float64
	Max      float64
	Interval time.Duration
	Taken    time.Time
}

// String formats the report for the operator console.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Temperature Reading #%d:\n", r.Number)
	fmt.Fprintf(&b, "  Current: %.2f C\n", r.Value)
	fmt.Fprintf(&b, "  Average: %.2f C\n", r.Average)
	fmt.Fprintf(&b, "  Max: %.2f C  Min: %.2f C\n", r.Max, r.Min)
	fmt.Fprintf(&b, "  Next report in %d ms\n", r.Interval.Milliseconds())
	return b.String()
}

// FormatStats renders the cumulative statistics summary for the STATS
// command.
func FormatStats(e *Engine) string {
	s := e.Stats()
	if s.Count() == 0 {
		return "No temperature readings yet\n"
	}
	avg, _ := s.Average()
	min, max, _ := s.Range()
	current, _ := e.LastSample()

	enabled := "DISABLED"
	if e.Enabled() {
		enabled = "ENABLED"
	}

	var b strings.Builder
	b.WriteString("Temperature Statistics:\n")
	fmt.Fprintf(&b, "  Readings:   %d\n", s.Count())
	fmt.Fprintf(&b, "  Current:    %.2f C\n", current)
	fmt.Fprintf(&b, "  Average:    %.2f C\n", avg)
	fmt.Fprintf(&b, "  Maximum:    %.2f C\n", max)
	fmt.Fprintf(&b, "  Minimum:    %.2f C\n", min)
	fmt.Fprintf(&b, "  Interval:   %d ms\n", e.Interval().Milliseconds())
	fmt.Fprintf(&b, "  Monitoring: %s\n", enabled)
	return b.String()
}

// FormatHistory renders the retained sample history for the HISTORY
// command, oldest first.
func FormatHistory(e *Engine) string {
	samples := e.HistorySnapshot()
	if len(samples) == 0 {
		return "No temperature history yet\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Temperature History (last %d readings):\n", len(samples))
	for i, v := range samples {
		fmt.Fprintf(&b, "  [%2d] %.2f C\n", i+1, v)
	}
	return b.String()
}
