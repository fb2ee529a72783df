// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package firmware

import (
	"io"
	"sync"
	"time"

	"github.com/murr2k/raspberry-pi-pico/pkg/hal"
)

// streamPortBuffer bounds the bytes queued between the reader goroutine and
// the loop. Input beyond it is dropped, matching the console's
// bounded-memory policy.
const streamPortBuffer = 256

// StreamPort adapts a blocking byte stream (serial port, stdio pipe,
// WebSocket wrapper) into the non-blocking ConsolePort contract. A single
// reader goroutine pumps the stream into a bounded channel; ReadByte drains
// it without blocking.
type StreamPort struct {
	rw io.ReadWriteCloser
	ch chan byte

	mu     sync.Mutex
	closed bool
}

var _ hal.ConsolePort = (*StreamPort)(nil)

// NewStreamPort wraps rw and starts the reader.
func NewStreamPort(rw io.ReadWriteCloser) *StreamPort {
	p := &StreamPort{
		rw: rw,
		ch: make(chan byte, streamPortBuffer),
	}
	go p.readerLoop()
	return p
}

func (p *StreamPort) readerLoop() {
	buf := make([]byte, 128)
	for {
		n, err := p.rw.Read(buf)
		for i := 0; i < n; i++ {
			select {
			case p.ch <- buf[i]:
			default:
				// Queue full: drop, same policy as the line buffer.
			}
		}
		if err != nil {
			if p.isClosed() {
				return
			}
			// Transient errors (e.g. serial timeouts) get a brief pause.
			time.Sleep(10 * time.Millisecond)
			if err == io.EOF {
				return
			}
		}
	}
}

func (p *StreamPort) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// ReadByte implements ConsolePort.
func (p *StreamPort) ReadByte() (byte, bool) {
	select {
	case b := <-p.ch:
		return b, true
	default:
		return 0, false
	}
}

// Write implements ConsolePort. Writes after Close are discarded.
func (p *StreamPort) Write(data []byte) (int, error) {
	if p.isClosed() {
		return len(data), nil
	}
	return p.rw.Write(data)
}

// Flush implements ConsolePort, delegating when the stream supports it.
func (p *StreamPort) Flush() error {
	if f, ok := p.rw.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close implements ConsolePort.
func (p *StreamPort) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()
	return p.rw.Close()
}
