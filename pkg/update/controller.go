// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

// Package update implements the runtime firmware-update control commands:
// bootloader entry, watchdog resets, device identity reporting, and
// update preparation. The reset transitions are irreversible; once armed
// there is no abort.
package update

import (
	"errors"
	"fmt"
	"io"

	"github.com/murr2k/raspberry-pi-pico/pkg/console"
	"github.com/murr2k/raspberry-pi-pico/pkg/hal"
)

// ErrDeviceResetting signals that a terminal hardware transition has been
// armed or taken. On real hardware the underlying primitives never return;
// in this engine the sentinel propagates out of the main loop as the
// explicit process-exit signal. No code runs after it with any expectation
// about device state.
var ErrDeviceResetting = errors.New("device resetting")

// Controller executes runtime-update commands against the reset primitives
// and the console port.
type Controller struct {
	hw   hal.ResetControl
	port hal.ConsolePort
	info DeviceInfo
}

// NewController creates an update controller.
func NewController(hw hal.ResetControl, port hal.ConsolePort, info DeviceInfo) *Controller {
	return &Controller{hw: hw, port: port, info: info}
}

// EnterBootloader quiesces the transport and jumps into the boot ROM's USB
// bootloader, equivalent to a cold boot with BOOTSEL held. The direct ROM
// call is immediate but leaves USB in a state the host sees as an abrupt
// disconnect; RESET_BOOTSEL is the cleaner path.
func (c *Controller) EnterBootloader() error {
	fmt.Fprintf(c.port, "Entering BOOTSEL mode for runtime update...\n")
	c.port.Flush()
	c.hw.ResetUSB()
	c.hw.EnterUSBBoot()
	return ErrDeviceResetting
}

// ResetToBootloader stages the boot ROM scratch contract and arms a
// watchdog reset. The ROM reads the magic in scratch 4 on the next boot and
// enters the bootloader; the GPIO mask/direction/output fields must be
// zeroed, in this order, so the ROM does not hold any pin.
func (c *Controller) ResetToBootloader() error {
	fmt.Fprintf(c.port, "Resetting to BOOTSEL mode...\n")
	c.port.Flush()
	c.hw.DisableWatchdog()
	c.hw.WriteScratch(hal.ScratchBootMagic, hal.BootloaderMagic)
	c.hw.WriteScratch(hal.ScratchGPIOMask, 0)
	c.hw.WriteScratch(hal.ScratchGPIODir, 0)
	c.hw.WriteScratch(hal.ScratchGPIOOutput, 0)
	c.hw.EnableWatchdogReset(hal.WatchdogResetDelay)
	return ErrDeviceResetting
}

// SoftReset arms a watchdog reset without the bootloader magic; the next
// boot runs the application normally.
func (c *Controller) SoftReset() error {
	fmt.Fprintf(c.port, "Performing soft reset...\n")
	c.port.Flush()
	c.hw.EnableWatchdogReset(hal.WatchdogResetDelay)
	return ErrDeviceResetting
}

// ReportInfo writes the device identity to the operator.
func (c *Controller) ReportInfo() error {
	io.WriteString(c.port, c.info.String())
	return nil
}

// PrepareForUpdate flushes pending output and disables the console
// transport so an external programmer can take over. It returns, but the
// transport is severed: further commands over it are lost until the
// operator reconnects.
func (c *Controller) PrepareForUpdate() error {
	fmt.Fprintf(c.port, "Preparing for firmware update...\n")
	fmt.Fprintf(c.port, "Console disabled. Use one of:\n")
	fmt.Fprintf(c.port, "  - picotool reboot -f         (force BOOTSEL)\n")
	fmt.Fprintf(c.port, "  - picotool load firmware.uf2 (if in BOOTSEL)\n")
	fmt.Fprintf(c.port, "  - OpenOCD programming        (via SWD)\n")
	c.port.Flush()
	return c.port.Close()
}

// Commands builds the shared runtime-update command table. Every firmware
// example appends this table after its own.
func (c *Controller) Commands() console.Table {
	return console.Table{
		Title: "Runtime Updates",
		Commands: []console.Command{
			{
				Name: "BOOTSEL",
				Help: "Enter bootloader mode",
				Run:  func(io.Writer, string) error { return c.EnterBootloader() },
			},
			{
				Name: "RESET_BOOTSEL",
				Help: "Reset to bootloader",
				Run:  func(io.Writer, string) error { return c.ResetToBootloader() },
			},
			{
				Name: "RESET",
				Help: "Soft reset system",
				Run:  func(io.Writer, string) error { return c.SoftReset() },
			},
			{
				Name: "INFO",
				Help: "Show device information",
				Run:  func(io.Writer, string) error { return c.ReportInfo() },
			},
			{
				Name: "PREPARE",
				Help: "Prepare for update",
				Run:  func(io.Writer, string) error { return c.PrepareForUpdate() },
			},
		},
	}
}
