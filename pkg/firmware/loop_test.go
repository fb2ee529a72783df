// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package firmware

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/murr2k/raspberry-pi-pico/pkg/console"
	"github.com/murr2k/raspberry-pi-pico/pkg/hal"
	"github.com/murr2k/raspberry-pi-pico/pkg/update"
)

var loopEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// cancelAfter cancels the context once it has been ticked n times, giving
// the loop a deterministic number of iterations.
type cancelAfter struct {
	n      int
	cancel context.CancelFunc
}

func (c *cancelAfter) Tick(time.Time) error {
	c.n--
	if c.n <= 0 {
		c.cancel()
	}
	return nil
}

// runIterations runs the loop for exactly n iterations on a simulated
// clock.
func runIterations(l *Loop, stop *cancelAfter, n int) error {
	ctx, cancel := context.WithCancel(context.Background())
	stop.n = n
	stop.cancel = cancel
	defer cancel()
	return l.Run(ctx)
}

// ============================================================
// Main Loop Tests
// ============================================================

func TestLoop_DispatchesQueuedCommands(t *testing.T) {
	board := hal.NewSimBoard(1)
	port := hal.NewSimPort()
	clock := hal.NewSimClock(loopEpoch)

	blinker := NewBlinker(board, port)
	interp := console.NewInterpreter(port, blinker.Commands())

	port.QueueLine("STATUS")
	port.QueueLine("FAST")

	stop := &cancelAfter{}
	l := NewLoop(clock, port, interp, stop)
	if err := runIterations(l, stop, 3); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}

	got := port.Output()
	if !strings.Contains(got, "System Status:") {
		t.Errorf("STATUS not dispatched:\n%s", got)
	}
	if !strings.Contains(got, "Fast blink mode: 125 ms") {
		t.Errorf("FAST not dispatched:\n%s", got)
	}
	if blinker.Interval() != FastBlinkInterval {
		t.Errorf("expected fast interval, got %v", blinker.Interval())
	}
}

func TestLoop_SplitInputAcrossIterations(t *testing.T) {
	board := hal.NewSimBoard(1)
	port := hal.NewSimPort()
	clock := hal.NewSimClock(loopEpoch)

	blinker := NewBlinker(board, port)
	interp := console.NewInterpreter(port, blinker.Commands())

	// Terminator arrives separately from the command body
	port.QueueInput([]byte("SLO"))
	port.QueueInput([]byte("W"))
	port.QueueInput([]byte("\r\n"))

	stop := &cancelAfter{}
	l := NewLoop(clock, port, interp, stop)
	runIterations(l, stop, 3)

	if !strings.Contains(port.Output(), "Slow blink mode: 1000 ms") {
		t.Errorf("split command not assembled:\n%s", port.Output())
	}
}

func TestLoop_UnknownCommandGetsListing(t *testing.T) {
	board := hal.NewSimBoard(1)
	port := hal.NewSimPort()
	clock := hal.NewSimClock(loopEpoch)

	blinker := NewBlinker(board, port)
	interp := console.NewInterpreter(port, blinker.Commands())

	port.QueueLine("FROB")

	stop := &cancelAfter{}
	l := NewLoop(clock, port, interp, stop)
	runIterations(l, stop, 2)

	got := port.Output()
	if !strings.Contains(got, "Unknown command: FROB") {
		t.Errorf("unknown command not reported:\n%s", got)
	}
	if !strings.Contains(got, "Available commands:") {
		t.Errorf("listing not shown:\n%s", got)
	}
}

func TestLoop_TerminalTransitionStopsLoop(t *testing.T) {
	board := hal.NewSimBoard(1)
	port := hal.NewSimPort()
	clock := hal.NewSimClock(loopEpoch)

	controller := update.NewController(board, port, update.DeviceInfo{Version: update.Version})
	interp := console.NewInterpreter(port, controller.Commands())

	port.QueueLine("BOOTSEL")
	// Anything after the transition must never be dispatched
	port.QueueLine("INFO")

	l := NewLoop(clock, port, interp)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := l.Run(ctx)
	if !errors.Is(err, update.ErrDeviceResetting) {
		t.Fatalf("expected ErrDeviceResetting, got %v", err)
	}
	if !board.USBBootEntered() {
		t.Error("bootloader entry not taken")
	}
	if strings.Contains(port.Output(), "Device Information:") {
		t.Error("commands after the terminal transition must not run")
	}
}

func TestLoop_CancelledContext(t *testing.T) {
	port := hal.NewSimPort()
	clock := hal.NewSimClock(loopEpoch)
	interp := console.NewInterpreter(port)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLoop(clock, port, interp)
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// failingTask always errors; the loop must report it and keep going.
type failingTask struct {
	err   error
	calls int
}

func (f *failingTask) Tick(time.Time) error {
	f.calls++
	return f.err
}

func TestLoop_TaskErrorIsWarning(t *testing.T) {
	port := hal.NewSimPort()
	clock := hal.NewSimClock(loopEpoch)
	interp := console.NewInterpreter(port)

	task := &failingTask{err: errors.New("adc busy")}
	stop := &cancelAfter{}
	l := NewLoop(clock, port, interp, task, stop)
	if err := runIterations(l, stop, 3); !errors.Is(err, context.Canceled) {
		t.Fatalf("task error must not stop the loop, got %v", err)
	}
	if task.calls < 2 {
		t.Errorf("loop should keep ticking after a task error, got %d calls", task.calls)
	}
	if !strings.Contains(port.Output(), "Warning: adc busy") {
		t.Errorf("missing warning:\n%s", port.Output())
	}
}

func TestLoop_TaskTerminalSentinelStopsLoop(t *testing.T) {
	port := hal.NewSimPort()
	clock := hal.NewSimClock(loopEpoch)
	interp := console.NewInterpreter(port)

	task := &failingTask{err: update.ErrDeviceResetting}
	l := NewLoop(clock, port, interp, task)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := l.Run(ctx); !errors.Is(err, update.ErrDeviceResetting) {
		t.Fatalf("expected ErrDeviceResetting, got %v", err)
	}
	if task.calls != 1 {
		t.Errorf("no iterations after a terminal transition, got %d calls", task.calls)
	}
}
