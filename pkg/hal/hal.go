// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

// Package hal defines the hardware collaborator contracts the control and
// telemetry engines are written against: the ADC temperature channel, the
// onboard LED, the watchdog/boot-ROM reset primitives, the console port,
// and the clock. The package also ships a deterministic simulated board so
// the firmware engines can run (and be tested) on a development host.
package hal

import (
	"io"
	"time"
)

// Board constants for the RP2040 / Pico target.
const (
	LEDPin         = 25
	FlashSizeBytes = 2 * 1024 * 1024
	RAMSizeBytes   = 264 * 1024
	CPUDescription = "RP2040 Dual Cortex-M0+"

	// BoardIDSize is the size of the unique board identifier in bytes.
	BoardIDSize = 8
)

// Watchdog scratch register assignments. The boot ROM inspects these on the
// next boot; the magic value in scratch 4 selects BOOTSEL mode, and the GPIO
// fields must be zeroed so the ROM does not hold any pin during bootloader
// entry.
const (
	ScratchBootMagic  = 4
	ScratchGPIOMask   = 5
	ScratchGPIODir    = 6
	ScratchGPIOOutput = 7
)

// BootloaderMagic is the scratch value that makes the boot ROM enter the
// bootloader instead of the application on the next watchdog reset.
const BootloaderMagic uint32 = 0xb007c0d3

// WatchdogResetDelay is the arm-to-fire delay for watchdog-driven resets.
// Long enough for the host to see the disconnect, short enough to feel
// immediate.
const WatchdogResetDelay = 100 * time.Millisecond

// BoardID is the unique board identifier burned into flash at manufacture.
type BoardID [BoardIDSize]byte

// Clock provides monotonic time and the short idle sleep used by the main
// loop. Interval timing is always computed from elapsed time, never by
// sleeping for the interval.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// ADC reads raw counts from the internal temperature sensor channel.
// Readings return promptly; an error means the sample must be skipped.
type ADC interface {
	ReadRaw() (uint16, error)
}

// LED drives the onboard LED.
type LED interface {
	Set(on bool)
	Get() bool
}

// ResetControl exposes the low-level primitives behind the runtime-update
// transitions. On real hardware EnterUSBBoot and an armed watchdog reset do
// not return control to the application; callers treat them as terminal.
type ResetControl interface {
	// DisableWatchdog clears the watchdog enable bit so the scratch
	// registers can be staged without a premature reset.
	DisableWatchdog()

	// WriteScratch writes one watchdog scratch register. Scratch registers
	// survive a watchdog reset.
	WriteScratch(reg int, value uint32)

	// EnableWatchdogReset arms a watchdog reset that fires after delay.
	EnableWatchdogReset(delay time.Duration)

	// ResetUSB cycles the USB controller reset block to leave the
	// controller in a clean state for the boot ROM.
	ResetUSB()

	// EnterUSBBoot re-enters the boot ROM's USB bootloader, equivalent to
	// a cold boot with BOOTSEL held.
	EnterUSBBoot()
}

// ConsolePort is the line console transport. ReadByte never blocks: the
// second return is false when no byte is pending.
type ConsolePort interface {
	io.Writer

	ReadByte() (byte, bool)

	// Flush pushes buffered output to the operator before a transition
	// that may sever the transport.
	Flush() error

	// Close disables the transport. Further reads yield nothing and
	// writes are discarded.
	Close() error
}

// SystemClock is the real wall Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
