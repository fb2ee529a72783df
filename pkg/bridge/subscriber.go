// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package bridge

import (
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/murr2k/raspberry-pi-pico/pkg/telemetry"
)

// FrameHandler receives each decoded telemetry frame.
type FrameHandler func(*telemetry.Frame)

// Subscriber receives telemetry frames from every device publishing under
// the configured topic pattern.
type Subscriber struct {
	client mqtt.Client
	topic  string
}

// NewSubscriber connects to the broker and subscribes to the telemetry
// topic for all devices. Frames that fail to decode are logged and
// dropped.
func NewSubscriber(cfg Config, handler FrameHandler) (*Subscriber, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID + "-monitor").
		SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", cfg.Broker, token.Error())
	}

	topic := FormatTopic(cfg.Topic, "+")
	callback := func(_ mqtt.Client, msg mqtt.Message) {
		frame, err := telemetry.DecodeFrame(msg.Payload())
		if err != nil {
			log.Printf("Dropping bad telemetry frame on %s: %v", msg.Topic(), err)
			return
		}
		handler(frame)
	}
	if token := client.Subscribe(topic, 1, callback); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, token.Error())
	}

	return &Subscriber{client: client, topic: topic}, nil
}

// Topic returns the subscription topic.
func (s *Subscriber) Topic() string { return s.topic }

// Close disconnects from the broker.
func (s *Subscriber) Close() {
	s.client.Disconnect(250)
}
