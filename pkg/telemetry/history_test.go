// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package telemetry

import "testing"

// ============================================================
// History Ring Tests
// ============================================================

func TestHistory_Empty(t *testing.T) {
	var h History
	if h.Len() != 0 {
		t.Errorf("expected empty history, got len %d", h.Len())
	}
	if _, ok := h.Last(); ok {
		t.Error("Last should report no data while empty")
	}
	if snap := h.Snapshot(); len(snap) != 0 {
		t.Errorf("expected empty snapshot, got %v", snap)
	}
}

func TestHistory_PartialFill(t *testing.T) {
	var h History
	for i := 1; i <= 3; i++ {
		h.Push(float64(i))
	}
	if h.Len() != 3 {
		t.Errorf("expected len 3, got %d", h.Len())
	}
	last, ok := h.Last()
	if !ok || last != 3 {
		t.Errorf("expected last 3, got %v (ok=%v)", last, ok)
	}
	snap := h.Snapshot()
	want := []float64{1, 2, 3}
	if len(snap) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(snap))
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("entry %d: expected %v, got %v", i, want[i], snap[i])
		}
	}
}

func TestHistory_OverwritesOldest(t *testing.T) {
	var h History
	for i := 1; i <= HistoryDepth+5; i++ {
		h.Push(float64(i))
	}
	if h.Len() != HistoryDepth {
		t.Errorf("expected len capped at %d, got %d", HistoryDepth, h.Len())
	}
	snap := h.Snapshot()
	// Only the most recent HistoryDepth samples survive, oldest first
	for i := 0; i < HistoryDepth; i++ {
		want := float64(i + 6)
		if snap[i] != want {
			t.Errorf("entry %d: expected %v, got %v", i, want, snap[i])
		}
	}
	last, _ := h.Last()
	if last != float64(HistoryDepth+5) {
		t.Errorf("expected last %d, got %v", HistoryDepth+5, last)
	}
}

func TestHistory_ExactCapacity(t *testing.T) {
	var h History
	for i := 1; i <= HistoryDepth; i++ {
		h.Push(float64(i))
	}
	snap := h.Snapshot()
	if len(snap) != HistoryDepth {
		t.Fatalf("expected %d entries, got %d", HistoryDepth, len(snap))
	}
	if snap[0] != 1 || snap[HistoryDepth-1] != float64(HistoryDepth) {
		t.Errorf("unexpected order at capacity: %v", snap)
	}
}

func TestHistory_Reset(t *testing.T) {
	var h History
	for i := 0; i < HistoryDepth+2; i++ {
		h.Push(float64(i))
	}
	h.Reset()
	if h.Len() != 0 {
		t.Errorf("expected empty after reset, got len %d", h.Len())
	}
	h.Push(42)
	snap := h.Snapshot()
	if len(snap) != 1 || snap[0] != 42 {
		t.Errorf("expected fresh ring after reset, got %v", snap)
	}
}
