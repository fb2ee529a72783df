// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package telemetry

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Frame is the machine-readable form of a Report, CBOR-encoded with integer
// keys for compact transport to host-side tooling (the MQTT bridge and the
// monitor dashboard).
type Frame struct {
	Device     string  `cbor:"1,keyasint"`
	Number     uint32  `cbor:"2,keyasint"`
	Value      float64 `cbor:"3,keyasint"`
	Average    float64 `cbor:"4,keyasint"`
	Min        float64 `cbor:"5,keyasint"`
	Max        float64 `cbor:"6,keyasint"`
	IntervalMs uint32  `cbor:"7,keyasint"`
	UnixMs     int64   `cbor:"8,keyasint"`
}

// NewFrame builds a Frame from a report and the emitting device id.
func NewFrame(device string, r *Report) Frame {
	return Frame{
		Device:     device,
		Number:     r.Number,
		Value:      r.Value,
		Average:    r.Average,
		Min:        r.Min,
		Max:        r.Max,
		IntervalMs: uint32(r.Interval.Milliseconds()),
		UnixMs:     r.Taken.UnixMilli(),
	}
}

// Taken returns the sample instant carried by the frame.
func (f *Frame) Taken() time.Time { return time.UnixMilli(f.UnixMs) }

// EncodeFrame encodes a frame to CBOR wire format.
func EncodeFrame(f Frame) ([]byte, error) {
	data, err := cbor.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode telemetry frame: %w", err)
	}
	return data, nil
}

// DecodeFrame decodes a CBOR telemetry frame.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty telemetry frame")
	}
	var f Frame
	if err := cbor.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode telemetry frame: %w", err)
	}
	return &f, nil
}
