// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package bridge

import (
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/murr2k/raspberry-pi-pico/pkg/telemetry"
)

// Publisher sends telemetry frames for one device to the broker.
type Publisher struct {
	client mqtt.Client
	topic  string
	device string
}

// NewPublisher connects to the broker and prepares the device topic.
func NewPublisher(cfg Config, deviceID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID + "-" + deviceID).
		SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", cfg.Broker, token.Error())
	}
	log.Printf("Connected to MQTT broker %s", cfg.Broker)

	return &Publisher{
		client: client,
		topic:  FormatTopic(cfg.Topic, deviceID),
		device: deviceID,
	}, nil
}

// Publish encodes one report as a CBOR frame and publishes it at QoS 1.
func (p *Publisher) Publish(r *telemetry.Report) error {
	payload, err := telemetry.EncodeFrame(telemetry.NewFrame(p.device, r))
	if err != nil {
		return err
	}
	if token := p.client.Publish(p.topic, 1, false, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to publish telemetry frame: %w", token.Error())
	}
	return nil
}

// Topic returns the resolved publish topic.
func (p *Publisher) Topic() string { return p.topic }

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
