// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package telemetry

// HistoryDepth is the fixed capacity of the sample history ring.
const HistoryDepth = 10

// History is a fixed-capacity ring of the most recent samples. Once full,
// each insert overwrites the oldest entry.
type History struct {
	slots [HistoryDepth]float64
	next  int
	count int
}

// Push inserts a sample at the cursor and advances it modulo capacity.
func (h *History) Push(v float64) {
	h.slots[h.next] = v
	h.next = (h.next + 1) % HistoryDepth
	if h.count < HistoryDepth {
		h.count++
	}
}

// Len returns the number of retained samples, at most HistoryDepth.
func (h *History) Len() int { return h.count }

// Last returns the most recently inserted sample, or ok=false when empty.
func (h *History) Last() (v float64, ok bool) {
	if h.count == 0 {
		return 0, false
	}
	return h.slots[(h.next-1+HistoryDepth)%HistoryDepth], true
}

// Snapshot returns the retained samples in insertion order, oldest first.
// Only Len() entries are returned; ring slots beyond that hold no data.
func (h *History) Snapshot() []float64 {
	out := make([]float64, 0, h.count)
	start := (h.next - h.count + HistoryDepth) % HistoryDepth
	for i := 0; i < h.count; i++ {
		out = append(out, h.slots[(start+i)%HistoryDepth])
	}
	return out
}

// Reset discards all retained samples.
func (h *History) Reset() {
	h.next = 0
	h.count = 0
}
