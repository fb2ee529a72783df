// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Murray Kopit

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial console flags
	portName string
	baudRate int

	// WebSocket console flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool
)

var rootCmd = &cobra.Command{
	Use:   "pico",
	Short: "Raspberry Pi Pico device control and telemetry console",
	Long: `Pico - Device Control & Telemetry Console

Runs the firmware example engines (LED blink, temperature telemetry) behind
a line-oriented command console, including the runtime-update commands
(BOOTSEL, RESET_BOOTSEL, RESET, INFO, PREPARE) that drive bootloader entry
and watchdog resets without touching the board.

Console transports:
  Stdio (default): type commands directly
  Serial:          --port /dev/ttyACM0 [--baud 115200]
  WebSocket:       --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the PICO_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell
history.`,
	Version: "2.1.1",
}

func init() {
	// Serial console flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// WebSocket console flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
