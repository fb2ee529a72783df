// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

// Package bridge connects the firmware's telemetry output to host-side
// tooling over MQTT: the temperature example publishes CBOR telemetry
// frames, and the monitor dashboard subscribes to them.
package bridge

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the MQTT connection settings. Values come from the
// environment (optionally a .env file), with flags overriding on top.
type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string

	// Topic is the publish/subscribe topic pattern; {device_id} is
	// replaced with the board identifier.
	Topic string
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when present.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Broker:   getEnv("PICO_MQTT_BROKER", "tcp://localhost:1883"),
		ClientID: getEnv("PICO_MQTT_CLIENT_ID", "pico-telemetry"),
		Username: getEnv("PICO_MQTT_USERNAME", ""),
		Password: getEnv("PICO_MQTT_PASSWORD", ""),
		Topic:    getEnv("PICO_MQTT_TOPIC", "pico/{device_id}/telemetry"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// FormatTopic replaces the {device_id} placeholder in a topic pattern.
func FormatTopic(pattern, deviceID string) string {
	return strings.ReplaceAll(pattern, "{device_id}", deviceID)
}
