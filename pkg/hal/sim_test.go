// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package hal

import (
	"testing"
	"time"
)

// ============================================================
// Simulated Board Tests
// ============================================================

func TestSimBoard_ReadingsStayInNoiseBand(t *testing.T) {
	b := NewSimBoard(42)
	for i := 0; i < 100; i++ {
		raw, err := b.ReadRaw()
		if err != nil {
			t.Fatalf("unexpected read error: %v", err)
		}
		c := ConvertTemperature(raw)
		// Half a degree of slack for ADC quantization
		lo := b.BaseTemperature - b.NoiseAmplitude - 0.5
		hi := b.BaseTemperature + b.NoiseAmplitude + 0.5
		if c < lo || c > hi {
			t.Fatalf("reading %d out of band: %v C not in [%v, %v]", i, c, lo, hi)
		}
	}
}

func TestSimBoard_Deterministic(t *testing.T) {
	a := NewSimBoard(7)
	b := NewSimBoard(7)
	for i := 0; i < 20; i++ {
		ra, _ := a.ReadRaw()
		rb, _ := b.ReadRaw()
		if ra != rb {
			t.Fatalf("same seed must yield same readings: %d vs %d at %d", ra, rb, i)
		}
	}
}

func TestSimBoard_LED(t *testing.T) {
	b := NewSimBoard(1)
	if b.Get() {
		t.Error("LED should start off")
	}
	b.Set(true)
	if !b.Get() {
		t.Error("LED should latch on")
	}
	b.Set(false)
	if b.Get() {
		t.Error("LED should latch off")
	}
}

func TestSimBoard_ResetRecording(t *testing.T) {
	b := NewSimBoard(1)

	if b.WatchdogDisabled() {
		t.Error("watchdog should not start disabled")
	}
	if _, armed := b.ResetArmed(); armed {
		t.Error("reset should not start armed")
	}

	b.DisableWatchdog()
	b.WriteScratch(ScratchBootMagic, BootloaderMagic)
	b.EnableWatchdogReset(WatchdogResetDelay)

	if !b.WatchdogDisabled() {
		t.Error("DisableWatchdog not recorded")
	}
	writes := b.ScratchWrites()
	if len(writes) != 1 || writes[0].Reg != ScratchBootMagic || writes[0].Value != BootloaderMagic {
		t.Errorf("scratch write not recorded: %v", writes)
	}
	delay, armed := b.ResetArmed()
	if !armed || delay != WatchdogResetDelay {
		t.Errorf("watchdog arm not recorded: %v (armed=%v)", delay, armed)
	}
}

// ============================================================
// Simulated Port and Clock Tests
// ============================================================

func TestSimPort_QueueAndRead(t *testing.T) {
	p := NewSimPort()
	if _, ok := p.ReadByte(); ok {
		t.Error("empty port should yield nothing")
	}

	p.QueueLine("TEMP")
	var got []byte
	for {
		b, ok := p.ReadByte()
		if !ok {
			break
		}
		got = append(got, b)
	}
	if string(got) != "TEMP\n" {
		t.Errorf("expected queued line back, got %q", got)
	}
}

func TestSimPort_CloseDiscards(t *testing.T) {
	p := NewSimPort()
	p.Write([]byte("before"))
	p.Close()
	p.Write([]byte("after"))

	if p.Output() != "before" {
		t.Errorf("output after close must be discarded, got %q", p.Output())
	}
	p.QueueLine("TEMP")
	if _, ok := p.ReadByte(); ok {
		t.Error("closed port should yield nothing")
	}
}

func TestSimClock_SleepAdvances(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewSimClock(start)
	c.Sleep(time.Second)
	c.Advance(time.Minute)
	want := start.Add(time.Second + time.Minute)
	if !c.Now().Equal(want) {
		t.Errorf("expected %v, got %v", want, c.Now())
	}
}
