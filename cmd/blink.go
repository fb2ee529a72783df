// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Murray Kopit

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/murr2k/raspberry-pi-pico/pkg/console"
	"github.com/murr2k/raspberry-pi-pico/pkg/firmware"
	"github.com/murr2k/raspberry-pi-pico/pkg/hal"
	"github.com/murr2k/raspberry-pi-pico/pkg/update"
)

var blinkCmd = &cobra.Command{
	Use:   "blink",
	Short: "Run the LED blink firmware engine",
	Long: `Run the LED blink example: a timer-checked LED toggler behind the
command console.

Console commands: STATUS, FAST, SLOW, START, STOP, HELP, plus the shared
runtime-update set (BOOTSEL, RESET_BOOTSEL, RESET, INFO, PREPARE).`,
	RunE: runBlink,
}

func init() {
	rootCmd.AddCommand(blinkCmd)
}

func runBlink(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}

	port := firmware.NewStreamPort(conn)
	defer port.Close()

	board := hal.NewSimBoard(time.Now().UnixNano())
	info := update.HostDeviceInfo()

	blinker := firmware.NewBlinker(board, port)
	controller := update.NewController(board, port, info)
	interp := console.NewInterpreter(port, blinker.Commands(), controller.Commands())

	if ShowBanner(conn) {
		printBanner(port, "LED Blink", connInfo, info)
		fmt.Fprintf(port, "  Initial Delay: %d ms\n", blinker.Interval().Milliseconds())
		fmt.Fprintf(port, "Type 'HELP' for available commands\n\n")
	}

	loop := firmware.NewLoop(hal.SystemClock{}, port, interp, blinker)
	return runLoop(loop)
}

// runLoop drives a firmware loop until interrupt or a terminal transition.
func runLoop(loop *firmware.Loop) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := loop.Run(ctx)
	switch {
	case errors.Is(err, update.ErrDeviceResetting):
		// Terminal transition taken; nothing left to run.
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	default:
		return err
	}
}

// printBanner writes the startup banner shared by the firmware examples.
func printBanner(w io.Writer, example, connInfo string, info update.DeviceInfo) {
	fmt.Fprintf(w, "\nRaspberry Pi Pico %s Example\n", example)
	fmt.Fprintf(w, "===============================================\n")
	fmt.Fprintf(w, "  Console:  %s\n", connInfo)
	fmt.Fprintf(w, "  Board ID: %s\n", info.BoardIDHex())
	fmt.Fprintf(w, "  Version:  %s\n", info.Version)
}
