// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package telemetry

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/murr2k/raspberry-pi-pico/pkg/console"
)

// Commands builds the telemetry command table for the console interpreter.
func Commands(e *Engine) console.Table {
	return console.Table{
		Title: "Temperature",
		Commands: []console.Command{
			{
				Name: "TEMP",
				Help: "Read current temperature",
				Run: func(w io.Writer, _ string) error {
					v, err := e.ReadNow()
					if err != nil {
						fmt.Fprintf(w, "Warning: sensor read failed: %v\n", err)
						return nil
					}
					fmt.Fprintf(w, "Current Temperature: %.2f C\n", v)
					return nil
				},
			},
			{
				Name: "STATS",
				Help: "Show temperature statistics",
				Run: func(w io.Writer, _ string) error {
					io.WriteString(w, FormatStats(e))
					return nil
				},
			},
			{
				Name: "HISTORY",
				Help: "Show temperature history",
				Run: func(w io.Writer, _ string) error {
					io.WriteString(w, FormatHistory(e))
					return nil
				},
			},
			{
				Name: "START_TEMP",
				Help: "Enable monitoring",
				Run: func(w io.Writer, _ string) error {
					e.Enable()
					fmt.Fprintf(w, "Temperature monitoring ENABLED\n")
					return nil
				},
			},
			{
				Name: "STOP_TEMP",
				Help: "Disable monitoring",
				Run: func(w io.Writer, _ string) error {
					e.Disable()
					fmt.Fprintf(w, "Temperature monitoring DISABLED\n")
					return nil
				},
			},
			{
				Name: "RESET_STATS",
				Help: "Reset all statistics",
				Run: func(w io.Writer, _ string) error {
					e.ResetStatistics()
					fmt.Fprintf(w, "Temperature statistics RESET\n")
					return nil
				},
			},
			{
				Name:     "INTERVAL",
				Usage:    "INTERVAL <ms>",
				Help:     fmt.Sprintf("Set report interval (%d-%d ms)", MinInterval.Milliseconds(), MaxInterval.Milliseconds()),
				TakesArg: true,
				Run: func(w io.Writer, arg string) error {
					return runInterval(e, w, arg)
				},
			},
		},
	}
}

// runInterval handles the INTERVAL command: no argument reports the current
// value, a bad argument restates the valid range, and a valid argument
// reconfigures the engine.
func runInterval(e *Engine, w io.Writer, arg string) error {
	if arg == "" {
		fmt.Fprintf(w, "Current interval: %d ms\n", e.Interval().Milliseconds())
		fmt.Fprintf(w, "Usage: INTERVAL <milliseconds>\n")
		return nil
	}
	ms, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Invalid interval %q. Use %d-%d ms\n", arg,
			MinInterval.Milliseconds(), MaxInterval.Milliseconds())
		return nil
	}
	if err := e.Configure(time.Duration(ms) * time.Millisecond); err != nil {
		fmt.Fprintf(w, "Invalid interval. Use %d-%d ms\n",
			MinInterval.Milliseconds(), MaxInterval.Milliseconds())
		return nil
	}
	fmt.Fprintf(w, "Report interval set to %d ms\n", e.Interval().Milliseconds())
	return nil
}
