// Copyright (c) 2026 the talkie authors
// released under the ISC license

package lib

import (
	"fmt"
	"io"
	"strings"
)

const (
	InitialBufferSize = 1024
	MaxBufferSize     = 1024 * 1024

	// MaxLineBytes bounds a single logical input line, meta-command
	// names included.
	MaxLineBytes = 255

	metaSentinel = '#'

	// UndoChar is the sentinel served to the engine for #undo. The
	// Magnetic input contract defines a zero-valued character as an undo
	// request; it never reaches the game parser as text.
	UndoChar byte = 0
)

// Console is the subset of the console the adapter reads lines from;
// implementations live in the console package.
type Console interface {
	io.Writer
	Readline() (string, error)
}

type lineKind int

const (
	ordinaryLine lineKind = iota
	commandLine
)

// parseMetaLine classifies a fresh keyboard line as ordinary game input or
// as a meta-command (sentinel prefix plus a command name).
func parseMetaLine(line string) (lineKind, string) {
	if len(line) == 0 || line[0] != metaSentinel {
		return ordinaryLine, ""
	}
	name := line[1:]
	if len(name) > MaxLineBytes {
		name = name[:MaxLineBytes]
	}
	return commandLine, name
}

// LineReader serves the engine one input byte at a time, refilling its
// pending line from the script file or the keyboard. Every byte served is
// mirrored to the recorder and the transcript as it is produced.
type LineReader struct {
	console    Console
	term       io.Writer
	recorder   *Recorder
	transcript *Transcript

	line []byte
	pos  int
	full bool
}

func NewLineReader(console Console, term io.Writer, recorder *Recorder, transcript *Transcript) *LineReader {
	return &LineReader{
		console:    console,
		term:       term,
		recorder:   recorder,
		transcript: transcript,
	}
}

// ReadChar returns the next byte of the logical input stream. A newline or
// NUL ends the pending line; the next call triggers a fresh refill. With
// intercept enabled, a fresh keyboard line starting with the meta sentinel
// is consumed as a command instead of reaching the engine.
func (r *LineReader) ReadChar(intercept bool) byte {
	if !r.full {
		r.refill(intercept)
	}
	c := r.line[r.pos]
	r.pos++
	if c == '\n' || c == 0 || r.pos >= len(r.line) {
		r.line = r.line[:0]
		r.pos = 0
		r.full = false
	}
	return c
}

func (r *LineReader) refill(intercept bool) {
	r.line = r.line[:0]
	fresh := true

	// replay path: serve script bytes until the file runs out, then fall
	// through to the keyboard for the remainder of the line
	for r.recorder.State() == ScriptReading {
		c, ok := r.recorder.ReadChar()
		if !ok {
			break
		}
		fresh = false
		fmt.Fprintf(r.term, "%c", c) // player watches the replay
		r.mirror(c)
		if c == '\n' {
			r.finish()
			return
		}
		r.line = append(r.line, c)
		if c == 0 || len(r.line) >= MaxLineBytes {
			r.finish()
			return
		}
	}

	text, err := r.console.Readline()
	if err != nil {
		// end of stream: terminate the line early with a NUL
		r.line = append(r.line, 0)
		r.finish()
		return
	}
	text = strings.TrimRight(text, "\r\n")
	if len(text) > MaxLineBytes {
		text = text[:MaxLineBytes]
	}

	if fresh && intercept {
		if kind, name := parseMetaLine(text); kind == commandLine {
			c := r.runCommand(name)
			r.mirror(c)
			if c != '\n' {
				r.line = append(r.line, c)
			}
			r.finish()
			return
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		r.mirror(c)
		r.line = append(r.line, c)
		if c == 0 {
			r.finish()
			return
		}
	}
	r.mirror('\n')
	r.finish()
}

// finish terminates the pending line and marks it ready to serve.
func (r *LineReader) finish() {
	r.line = append(r.line, '\n')
	r.full = true
}

// runCommand executes a meta-command and returns the byte to serve in place
// of the line: a terminator, so the engine re-prompts, or the undo sentinel.
func (r *LineReader) runCommand(name string) byte {
	switch {
	case name == "logoff" && r.recorder.State() == ScriptWriting:
		fmt.Fprintf(r.term, "[Closing script file]\n")
		r.recorder.Close()
		return '\n'
	case name == "undo":
		return UndoChar
	default:
		fmt.Fprintf(r.term, "[Nothing done]\n")
		return '\n'
	}
}

// mirror copies one produced input byte to the script and transcript sinks.
// The transcript never records line terminators; a mirror fault closes the
// affected sink and announces it in-band.
func (r *LineReader) mirror(c byte) {
	if err := r.recorder.WriteChar(c); err != nil {
		fmt.Fprintf(r.term, "[Problem with script file - closing]\n")
	}
	if c != '\n' {
		if err := r.transcript.WriteChar(c); err != nil {
			fmt.Fprintf(r.term, "[Problem with transcript file - closing]\n")
		}
	}
}
