// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit
//
// Pico - Device Control & Telemetry Console
//
// A command console engine for Raspberry Pi Pico class boards: LED control,
// onboard temperature telemetry, and runtime firmware-update transitions
// (BOOTSEL entry, watchdog resets) driven over a line-oriented serial console.

package main

import (
	"os"

	"github.com/murr2k/raspberry-pi-pico/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
