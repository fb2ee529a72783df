// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package firmware

import (
	"io"
	"time"

	"github.com/murr2k/raspberry-pi-pico/pkg/telemetry"
)

// TelemetryTask adapts the sampling engine to the loop: each emitted report
// goes to the console and, when a publish hook is set, to host-side tooling
// as well.
type TelemetryTask struct {
	engine  *telemetry.Engine
	out     io.Writer
	publish func(*telemetry.Report)
}

// NewTelemetryTask creates the task. publish may be nil.
func NewTelemetryTask(engine *telemetry.Engine, out io.Writer, publish func(*telemetry.Report)) *TelemetryTask {
	return &TelemetryTask{engine: engine, out: out, publish: publish}
}

// Tick implements Task. A sensor failure surfaces as a warning from the
// loop; statistics are untouched.
func (t *TelemetryTask) Tick(now time.Time) error {
	r, err := t.engine.Tick(now)
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}
	io.WriteString(t.out, r.String())
	if t.publish != nil {
		t.publish(r)
	}
	return nil
}
