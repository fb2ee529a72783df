// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package firmware

import (
	"fmt"
	"io"
	"time"

	"github.com/murr2k/raspberry-pi-pico/pkg/console"
	"github.com/murr2k/raspberry-pi-pico/pkg/hal"
)

// Blink intervals selectable from the console.
const (
	DefaultBlinkInterval = 250 * time.Millisecond
	FastBlinkInterval    = 125 * time.Millisecond
	SlowBlinkInterval    = 1000 * time.Millisecond
)

// Blinker toggles the onboard LED on a timer-checked schedule. Like the
// sampling engine, it computes elapsed time instead of sleeping, so console
// commands stay responsive.
type Blinker struct {
	led      hal.LED
	out      io.Writer
	interval time.Duration
	enabled  bool
	last     time.Time
}

// NewBlinker creates an enabled blinker at the default interval, announcing
// toggles on out.
func NewBlinker(led hal.LED, out io.Writer) *Blinker {
	return &Blinker{
		led:      led,
		out:      out,
		interval: DefaultBlinkInterval,
		enabled:  true,
	}
}

// Tick implements Task: toggles the LED when the interval has elapsed.
func (b *Blinker) Tick(now time.Time) error {
	if !b.enabled {
		return nil
	}
	if b.last.IsZero() {
		b.last = now
		return nil
	}
	if now.Sub(b.last) < b.interval {
		return nil
	}
	on := !b.led.Get()
	b.led.Set(on)
	b.last = now

	state := "OFF"
	if on {
		state = "ON"
	}
	fmt.Fprintf(b.out, "LED %s (delay: %dms)\n", state, b.interval.Milliseconds())
	return nil
}

// SetInterval changes the blink interval.
func (b *Blinker) SetInterval(d time.Duration) { b.interval = d }

// Interval returns the blink interval.
func (b *Blinker) Interval() time.Duration { return b.interval }

// Start enables blinking.
func (b *Blinker) Start() { b.enabled = true }

// Stop disables blinking and forces the LED off.
func (b *Blinker) Stop() {
	b.enabled = false
	b.led.Set(false)
}

// Enabled reports whether blinking is on.
func (b *Blinker) Enabled() bool { return b.enabled }

// Commands builds the LED control command table.
func (b *Blinker) Commands() console.Table {
	return console.Table{
		Title: "LED Control",
		Commands: []console.Command{
			{
				Name: "STATUS",
				Help: "Show current status",
				Run: func(w io.Writer, _ string) error {
					onOff := map[bool]string{true: "ON", false: "OFF"}
					yesNo := map[bool]string{true: "YES", false: "NO"}
					fmt.Fprintf(w, "System Status:\n")
					fmt.Fprintf(w, "  LED Pin:     GP%d\n", hal.LEDPin)
					fmt.Fprintf(w, "  LED State:   %s\n", onOff[b.led.Get()])
					fmt.Fprintf(w, "  LED Enabled: %s\n", yesNo[b.enabled])
					fmt.Fprintf(w, "  Blink Delay: %d ms\n", b.interval.Milliseconds())
					return nil
				},
			},
			{
				Name: "FAST",
				Help: "Fast blinking (125ms)",
				Run: func(w io.Writer, _ string) error {
					b.SetInterval(FastBlinkInterval)
					fmt.Fprintf(w, "Fast blink mode: %d ms\n", b.interval.Milliseconds())
					return nil
				},
			},
			{
				Name: "SLOW",
				Help: "Slow blinking (1000ms)",
				Run: func(w io.Writer, _ string) error {
					b.SetInterval(SlowBlinkInterval)
					fmt.Fprintf(w, "Slow blink mode: %d ms\n", b.interval.Milliseconds())
					return nil
				},
			},
			{
				Name: "START",
				Help: "Enable LED blinking",
				Run: func(w io.Writer, _ string) error {
					b.Start()
					fmt.Fprintf(w, "LED blinking enabled\n")
					return nil
				},
			},
			{
				Name: "STOP",
				Help: "Disable LED blinking",
				Run: func(w io.Writer, _ string) error {
					b.Stop()
					fmt.Fprintf(w, "LED blinking disabled\n")
					return nil
				},
			},
		},
	}
}
