// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

// Package console implements the line-oriented command console shared by
// every firmware example: a bounded line accumulator and a table-driven
// command interpreter.
package console

// MaxLineLength is the usable command line capacity in bytes. Input beyond
// this is dropped rather than grown, keeping memory bounded on constrained
// targets.
const MaxLineLength = 63

// Line is one completed command line. Truncated is set when input bytes
// were dropped because the line exceeded MaxLineLength; the kept prefix is
// still dispatched, the operator just gets told about the drop.
type Line struct {
	Text      string
	Truncated bool
}

// LineBuffer accumulates raw console bytes into newline-terminated command
// lines. It is a pure, single-threaded state machine: Feed never blocks and
// never fails.
type LineBuffer struct {
	buf       [MaxLineLength]byte
	n         int
	truncated bool
}

// Feed consumes one byte. When a carriage return or line feed completes a
// non-empty line, Feed returns it with done=true and resets the buffer.
// Empty lines are absorbed so stray CR/LF pairs yield nothing. A byte that
// arrives with the buffer full is dropped and marks the line truncated.
func (b *LineBuffer) Feed(c byte) (line Line, done bool) {
	if c == '\r' || c == '\n' {
		if b.n == 0 {
			b.truncated = false
			return Line{}, false
		}
		line = Line{Text: string(b.buf[:b.n]), Truncated: b.truncated}
		b.n = 0
		b.truncated = false
		return line, true
	}
	if b.n >= MaxLineLength {
		b.truncated = true
		return Line{}, false
	}
	b.buf[b.n] = c
	b.n++
	return Line{}, false
}

// Len returns the number of pending bytes in the partial line.
func (b *LineBuffer) Len() int { return b.n }

// Reset discards any partial line.
func (b *LineBuffer) Reset() {
	b.n = 0
	b.truncated = false
}
