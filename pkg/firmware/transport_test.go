// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package firmware

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"
)

// pipeStream is an in-memory ReadWriteCloser backed by an io.Pipe for the
// read side and a buffer for the write side.
type pipeStream struct {
	pr *io.PipeReader
	pw *io.PipeWriter

	mu  sync.Mutex
	out bytes.Buffer
}

func newPipeStream() *pipeStream {
	pr, pw := io.Pipe()
	return &pipeStream{pr: pr, pw: pw}
}

func (s *pipeStream) Read(p []byte) (int, error) { return s.pr.Read(p) }

func (s *pipeStream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}

func (s *pipeStream) Close() error {
	s.pw.Close()
	return s.pr.Close()
}

func (s *pipeStream) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

// drain collects bytes from the port until n bytes arrived or the deadline
// passed.
func drain(p *StreamPort, n int, deadline time.Duration) []byte {
	var got []byte
	stop := time.Now().Add(deadline)
	for len(got) < n && time.Now().Before(stop) {
		b, ok := p.ReadByte()
		if !ok {
			time.Sleep(time.Millisecond)
			continue
		}
		got = append(got, b)
	}
	return got
}

// ============================================================
// StreamPort Tests
// ============================================================

func TestStreamPort_ReadByteNonBlocking(t *testing.T) {
	stream := newPipeStream()
	port := NewStreamPort(stream)
	defer port.Close()

	// Empty stream: absence is instantaneous, not an error
	if b, ok := port.ReadByte(); ok {
		t.Fatalf("expected no byte, got %q", b)
	}

	go stream.pw.Write([]byte("STATUS\n"))

	got := drain(port, 7, time.Second)
	if string(got) != "STATUS\n" {
		t.Errorf("expected STATUS line, got %q", got)
	}
}

func TestStreamPort_WriteReachesStream(t *testing.T) {
	stream := newPipeStream()
	port := NewStreamPort(stream)
	defer port.Close()

	if _, err := port.Write([]byte("LED ON\n")); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	if stream.output() != "LED ON\n" {
		t.Errorf("expected output forwarded, got %q", stream.output())
	}
}

func TestStreamPort_CloseIdempotent(t *testing.T) {
	stream := newPipeStream()
	port := NewStreamPort(stream)

	if err := port.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if err := port.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}

	// Writes after close are discarded, not errors
	if _, err := port.Write([]byte("late")); err != nil {
		t.Fatalf("write after close should be discarded, got %v", err)
	}
	if stream.output() != "" {
		t.Errorf("write after close leaked to the stream: %q", stream.output())
	}
}
