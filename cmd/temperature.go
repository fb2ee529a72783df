// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Murray Kopit

package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/murr2k/raspberry-pi-pico/pkg/bridge"
	"github.com/murr2k/raspberry-pi-pico/pkg/console"
	"github.com/murr2k/raspberry-pi-pico/pkg/firmware"
	"github.com/murr2k/raspberry-pi-pico/pkg/hal"
	"github.com/murr2k/raspberry-pi-pico/pkg/telemetry"
	"github.com/murr2k/raspberry-pi-pico/pkg/update"
)

var (
	tempIntervalMs int
	tempPublish    bool
	tempBroker     string
)

var temperatureCmd = &cobra.Command{
	Use:   "temperature",
	Short: "Run the temperature telemetry firmware engine",
	Long: `Run the temperature monitor example: periodic on-die temperature
sampling with running statistics and a 10-sample history, behind the
command console.

Console commands: TEMP, STATS, HISTORY, START_TEMP, STOP_TEMP,
RESET_STATS, INTERVAL <ms>, HELP, plus the shared runtime-update set.

With --publish, each report is also encoded as a CBOR frame and published
to the MQTT broker (see 'pico monitor'). Broker settings come from the
environment or a .env file: PICO_MQTT_BROKER, PICO_MQTT_CLIENT_ID,
PICO_MQTT_USERNAME, PICO_MQTT_PASSWORD, PICO_MQTT_TOPIC.`,
	RunE: runTemperature,
}

func init() {
	temperatureCmd.Flags().IntVar(&tempIntervalMs, "interval", int(telemetry.DefaultInterval.Milliseconds()),
		"Initial report interval in ms (500-60000)")
	temperatureCmd.Flags().BoolVar(&tempPublish, "publish", false, "Publish telemetry frames over MQTT")
	temperatureCmd.Flags().StringVar(&tempBroker, "broker", "", "MQTT broker URL (overrides PICO_MQTT_BROKER)")
	rootCmd.AddCommand(temperatureCmd)
}

func runTemperature(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}

	port := firmware.NewStreamPort(conn)
	defer port.Close()

	board := hal.NewSimBoard(time.Now().UnixNano())
	info := update.HostDeviceInfo()

	engine := telemetry.NewEngine(func() (float64, error) {
		raw, err := board.ReadRaw()
		if err != nil {
			return 0, err
		}
		return hal.ConvertTemperature(raw), nil
	})
	if err := engine.Configure(time.Duration(tempIntervalMs) * time.Millisecond); err != nil {
		return err
	}

	var publish func(*telemetry.Report)
	if tempPublish {
		cfg := bridge.LoadConfig()
		if tempBroker != "" {
			cfg.Broker = tempBroker
		}
		pub, err := bridge.NewPublisher(cfg, info.BoardIDHex())
		if err != nil {
			return err
		}
		defer pub.Close()

		publish = func(r *telemetry.Report) {
			if err := pub.Publish(r); err != nil {
				log.Printf("Telemetry publish failed: %v", err)
			}
		}
		fmt.Fprintf(port, "Publishing telemetry to %s\n", pub.Topic())
	}

	controller := update.NewController(board, port, info)
	interp := console.NewInterpreter(port, telemetry.Commands(engine), controller.Commands())
	task := firmware.NewTelemetryTask(engine, port, publish)

	if ShowBanner(conn) {
		printBanner(port, "Temperature Monitor", connInfo, info)
		fmt.Fprintf(port, "  Interval: %d ms\n", engine.Interval().Milliseconds())
		fmt.Fprintf(port, "Type 'HELP' for available commands\n\n")
	}

	loop := firmware.NewLoop(hal.SystemClock{}, port, interp, task)
	return runLoop(loop)
}
