// Copyright (c) 2026 the talkie authors
// released under the ISC license

package lib

import (
	"io"
)

const (
	// DefaultBufferSize suits the Magnetic-era engines, which emit short
	// paragraphs between prompts.
	DefaultBufferSize = 256
	// LargeBufferSize suits the Level 9 engines, which can emit whole
	// room descriptions before pausing for input.
	LargeBufferSize = 10240

	backspace = 0x08
)

// OutputBuffer accumulates engine output and flushes it to the terminal on
// newline or when full. A backspace removes the most recent unflushed byte,
// modelling destructive backspace for text the player hasn't seen yet.
type OutputBuffer struct {
	out io.Writer
	buf []byte
	cap int
}

func NewOutputBuffer(out io.Writer, capacity int) *OutputBuffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	return &OutputBuffer{
		out: out,
		buf: make([]byte, 0, capacity),
		cap: capacity,
	}
}

// WriteChar appends a single byte of engine output. Carriage returns are
// normalized to newlines. The buffer is flushed when it fills or when a
// newline is appended; a flush failure is reported but the byte is never
// lost short of that.
func (b *OutputBuffer) WriteChar(c byte) error {
	if c == backspace {
		if len(b.buf) > 0 {
			b.buf = b.buf[:len(b.buf)-1]
		}
		return nil
	}
	if c == '\r' {
		c = '\n'
	}
	b.buf = append(b.buf, c)
	if c == '\n' || len(b.buf) >= b.cap {
		return b.Flush()
	}
	return nil
}

// Flush writes the buffered bytes verbatim to the terminal and empties the
// buffer. Flushing an empty buffer is a no-op.
func (b *OutputBuffer) Flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	_, err := b.out.Write(b.buf)
	b.buf = b.buf[:0]
	return err
}

// Len reports the number of bytes pending flush.
func (b *OutputBuffer) Len() int {
	return len(b.buf)
}
