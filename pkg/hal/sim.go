// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package hal

import (
	"bytes"
	"math/rand"
	"time"
)

// ScratchWrite records a single watchdog scratch register write, in the
// order the firmware issued it.
type ScratchWrite struct {
	Reg   int
	Value uint32
}

// SimBoard is a deterministic in-memory board: the ADC yields readings
// around a base temperature with bounded noise, the LED is a latched bool,
// and the reset primitives record what the firmware asked for instead of
// resetting anything. Reset transitions that would diverge on hardware
// simply return after recording, so callers can observe the armed state.
type SimBoard struct {
	BaseTemperature float64
	NoiseAmplitude  float64

	rng *rand.Rand
	led bool

	watchdogDisabled bool
	scratchWrites    []ScratchWrite
	resetDelay       time.Duration
	resetArmed       bool
	usbResetCount    int
	usbBootEntered   bool
}

// NewSimBoard creates a simulated board with the given noise seed.
func NewSimBoard(seed int64) *SimBoard {
	return &SimBoard{
		BaseTemperature: 24.5,
		NoiseAmplitude:  0.4,
		rng:             rand.New(rand.NewSource(seed)),
	}
}

// ReadRaw implements ADC with noise around BaseTemperature.
func (b *SimBoard) ReadRaw() (uint16, error) {
	t := b.BaseTemperature + (b.rng.Float64()*2-1)*b.NoiseAmplitude
	return rawForTemperature(t), nil
}

// Set implements LED.
func (b *SimBoard) Set(on bool) { b.led = on }

// Get implements LED.
func (b *SimBoard) Get() bool { return b.led }

// DisableWatchdog implements ResetControl.
func (b *SimBoard) DisableWatchdog() { b.watchdogDisabled = true }

// WriteScratch implements ResetControl.
func (b *SimBoard) WriteScratch(reg int, value uint32) {
	b.scratchWrites = append(b.scratchWrites, ScratchWrite{Reg: reg, Value: value})
}

// EnableWatchdogReset implements ResetControl.
func (b *SimBoard) EnableWatchdogReset(delay time.Duration) {
	b.resetDelay = delay
	b.resetArmed = true
}

// ResetUSB implements ResetControl.
func (b *SimBoard) ResetUSB() { b.usbResetCount++ }

// EnterUSBBoot implements ResetControl.
func (b *SimBoard) EnterUSBBoot() { b.usbBootEntered = true }

// WatchdogDisabled reports whether the watchdog was disabled for staging.
func (b *SimBoard) WatchdogDisabled() bool { return b.watchdogDisabled }

// ScratchWrites returns the recorded scratch writes in issue order.
func (b *SimBoard) ScratchWrites() []ScratchWrite { return b.scratchWrites }

// ResetArmed returns the armed watchdog reset delay, if any.
func (b *SimBoard) ResetArmed() (time.Duration, bool) { return b.resetDelay, b.resetArmed }

// USBResetCount returns how many times the USB block was reset.
func (b *SimBoard) USBResetCount() int { return b.usbResetCount }

// USBBootEntered reports whether the boot ROM re-entry was invoked.
func (b *SimBoard) USBBootEntered() bool { return b.usbBootEntered }

// SimPort is an in-memory ConsolePort: queued input bytes, captured output.
type SimPort struct {
	in      []byte
	out     bytes.Buffer
	flushes int
	closed  bool
}

// NewSimPort creates an empty simulated console port.
func NewSimPort() *SimPort { return &SimPort{} }

// QueueInput appends bytes for the firmware to read.
func (p *SimPort) QueueInput(data []byte) { p.in = append(p.in, data...) }

// QueueLine appends a newline-terminated command.
func (p *SimPort) QueueLine(line string) { p.QueueInput(append([]byte(line), '\n')) }

// ReadByte implements ConsolePort.
func (p *SimPort) ReadByte() (byte, bool) {
	if p.closed || len(p.in) == 0 {
		return 0, false
	}
	b := p.in[0]
	p.in = p.in[1:]
	return b, true
}

// Write implements ConsolePort. Output after Close is discarded.
func (p *SimPort) Write(data []byte) (int, error) {
	if p.closed {
		return len(data), nil
	}
	return p.out.Write(data)
}

// Flush implements ConsolePort.
func (p *SimPort) Flush() error {
	p.flushes++
	return nil
}

// Close implements ConsolePort.
func (p *SimPort) Close() error {
	p.closed = true
	return nil
}

// Output returns everything written so far.
func (p *SimPort) Output() string { return p.out.String() }

// ResetOutput discards captured output.
func (p *SimPort) ResetOutput() { p.out.Reset() }

// Flushes returns the number of Flush calls.
func (p *SimPort) Flushes() int { return p.flushes }

// Closed reports whether the port has been closed.
func (p *SimPort) Closed() bool { return p.closed }

// SimClock is a manually advanced Clock for deterministic runs: Sleep
// advances time instead of blocking.
type SimClock struct {
	now time.Time
}

// NewSimClock creates a clock starting at t.
func NewSimClock(t time.Time) *SimClock { return &SimClock{now: t} }

func (c *SimClock) Now() time.Time { return c.now }

func (c *SimClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

// Advance moves the clock forward.
func (c *SimClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
