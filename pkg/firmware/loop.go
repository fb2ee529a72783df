// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

// Package firmware wires the console, telemetry, and update components into
// the cooperative main loop the firmware examples run, and provides the
// per-example engines (LED blinker, telemetry task) that the loop ticks.
package firmware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/murr2k/raspberry-pi-pico/pkg/console"
	"github.com/murr2k/raspberry-pi-pico/pkg/hal"
	"github.com/murr2k/raspberry-pi-pico/pkg/update"
)

// IdleDelay bounds CPU usage between iterations without materially
// delaying the next poll.
const IdleDelay = 100 * time.Microsecond

// Task is a timer-checked engine ticked once per loop iteration. Tick never
// blocks; when its moment has not come it does nothing.
type Task interface {
	Tick(now time.Time) error
}

// Loop is the cooperative, single-goroutine scheduler. Each iteration
// drains available console bytes one at a time into the line buffer,
// dispatches completed lines, ticks every task, and idles briefly. Nothing
// blocks waiting for input: byte absence is a normal instantaneous result.
type Loop struct {
	clock  hal.Clock
	port   hal.ConsolePort
	interp *console.Interpreter
	buf    console.LineBuffer
	tasks  []Task
	idle   time.Duration
}

// NewLoop creates a main loop over the given port and interpreter.
func NewLoop(clock hal.Clock, port hal.ConsolePort, interp *console.Interpreter, tasks ...Task) *Loop {
	return &Loop{
		clock:  clock,
		port:   port,
		interp: interp,
		tasks:  tasks,
		idle:   IdleDelay,
	}
}

// Run iterates until the context is cancelled or a terminal transition is
// taken, in which case it returns update.ErrDeviceResetting; there are no
// loop iterations after a reset is armed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for {
			b, ok := l.port.ReadByte()
			if !ok {
				break
			}
			line, done := l.buf.Feed(b)
			if !done {
				continue
			}
			if err := l.interp.Dispatch(line); err != nil {
				if errors.Is(err, update.ErrDeviceResetting) {
					return err
				}
				fmt.Fprintf(l.port, "Error: %v\n", err)
			}
		}

		now := l.clock.Now()
		for _, t := range l.tasks {
			if err := t.Tick(now); err != nil {
				if errors.Is(err, update.ErrDeviceResetting) {
					return err
				}
				fmt.Fprintf(l.port, "Warning: %v\n", err)
			}
		}

		l.clock.Sleep(l.idle)
	}
}
