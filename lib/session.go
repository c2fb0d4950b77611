// Copyright (c) 2026 the talkie authors
// released under the ISC license

package lib

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// dumpRequestPrefix marks an input line as a renderer debug request to dump
// a bitmap by id rather than game input.
const dumpRequestPrefix = "##img#"

// keyPacingInterval throttles ReadKey: games that poll for a key as a way
// of pausing expect zeros, multiple-choice games expect real keys. Serving
// zeros for a stretch of calls satisfies both, since the latter ignore them.
const keyPacingInterval = 1024

// SessionConfig assembles a session. Only Console is required.
type SessionConfig struct {
	Console Console
	// Terminal receives flushed output and in-band diagnostics; defaults
	// to the console.
	Terminal io.Writer
	// BufferSize is the output buffer capacity.
	BufferSize int
	ColorLevel ColorLevel
	// Renderer receives graphics directives; defaults to the terminal.
	Renderer Renderer
	// Decoder is the engine's graphics collaborator; nil disables dumps.
	Decoder Decoder
}

// Session owns all adapter state for one engine run: the output buffer, the
// recording subsystem, the input reader, the file bridge and the graphics
// writer. It implements Callbacks. Nothing here is global; concurrent
// sessions only share the process's stdio if configured to.
type Session struct {
	console    Console
	term       io.Writer
	out        *OutputBuffer
	status     *StatusLine
	recorder   *Recorder
	transcript *Transcript
	reader     *LineReader
	bridge     *FileBridge
	gfx        *Graphics
	renderer   Renderer

	keyPacing  int
	statusHook func(io.Writer)
	exit       func(code int)
}

func NewSession(config SessionConfig) *Session {
	term := config.Terminal
	if term == nil {
		term = config.Console
	}
	renderer := config.Renderer
	if renderer == nil {
		renderer = &writerRenderer{out: term}
	}
	s := &Session{
		console:  config.Console,
		term:     term,
		out:      NewOutputBuffer(term, config.BufferSize),
		status:   NewStatusLine(term, config.ColorLevel),
		recorder: NewRecorder(),
		renderer: renderer,
		gfx:      NewGraphics(renderer, config.Decoder),
		exit:     os.Exit,
	}
	s.reader = NewLineReader(config.Console, term, s.recorder, s.transcript)
	s.bridge = NewFileBridge(config.Console)
	return s
}

// Terminal exposes the terminal writer for diagnostics (status dumps, run
// epilogues).
func (s *Session) Terminal() io.Writer {
	return s.term
}

// StartReplay begins replaying keystrokes from a script file. Failure to
// open it is a warning; input stays on the keyboard.
func (s *Session) StartReplay(filename string) {
	if err := s.recorder.OpenRead(filename); err != nil {
		log.Warnf("failed to open %q for reading: %v", filename, err)
	}
}

// StartRecording begins recording keystrokes to a script file.
func (s *Session) StartRecording(filename string) {
	if err := s.recorder.OpenWrite(filename); err != nil {
		log.Warnf("failed to open %q for writing: %v", filename, err)
	}
}

// StartTranscript opens the transcript sink.
func (s *Session) StartTranscript(filename string) {
	transcript, err := NewTranscript(filename)
	if err != nil {
		log.Warnf("failed to open %q for writing: %v", filename, err)
		return
	}
	s.transcript = transcript
	s.reader.transcript = transcript
}

// Close flushes pending output and releases every owned file handle.
func (s *Session) Close() {
	s.Flush()
	s.recorder.Close()
	s.transcript.Close()
	s.renderer.Close()
}

func (s *Session) PutChar(c byte) {
	if err := s.out.WriteChar(c); err != nil {
		log.WithError(err).Debug("terminal write failed")
	}
	// the transcript sees everything displayed, with its own backspace rule
	if err := s.transcript.WriteChar(c); err != nil {
		fmt.Fprintf(s.term, "[Problem with transcript file - closing]\n")
	}
}

func (s *Session) StatusChar(c byte) {
	s.status.WriteChar(c)
}

func (s *Session) Flush() {
	if err := s.out.Flush(); err != nil {
		log.WithError(err).Debug("terminal write failed")
	}
}

func (s *Session) GetChar(intercept bool) byte {
	s.Flush()
	return s.reader.ReadChar(intercept)
}

func (s *Session) Input(limit int) (string, bool) {
	s.gfx.EnterLineMode()
	s.Flush()
	var line []byte
	for {
		c := s.reader.ReadChar(false)
		if c == '\n' || c == 0 {
			break
		}
		line = append(line, c)
		if limit > 0 && len(line) >= limit {
			break
		}
	}
	text := string(line)
	if strings.HasPrefix(text, dumpRequestPrefix) {
		s.gfx.DumpIfNew(atoiPrefix(text[len(dumpRequestPrefix):]))
		return "", false
	}
	return text, true
}

func (s *Session) ReadKey(millis int) byte {
	s.gfx.EnterKeyMode()
	s.Flush()
	if millis == 0 {
		return 0
	}
	s.keyPacing++
	if s.keyPacing < keyPacingInterval {
		return 0
	}
	s.keyPacing = 0
	log.Debug("waiting for a keypress")
	return s.reader.ReadChar(false)
}

func (s *Session) LoadFile(name string, dst []byte) bool {
	s.Flush()
	return s.bridge.Load(name, dst)
}

func (s *Session) SaveFile(name string, src []byte) bool {
	s.Flush()
	return s.bridge.Save(name, src)
}

func (s *Session) ShowBitmap(id, x, y int) {
	s.Flush()
	s.gfx.ShowBitmap(id, x, y)
}

func (s *Session) GraphicsMode(mode int) {
	s.Flush()
	s.gfx.Mode(mode)
}

func (s *Session) ClearGraphics() {
	s.Flush()
	s.gfx.Clear()
}

func (s *Session) SetColour(colour, index int) {
	s.Flush()
	s.gfx.SetColour(colour, index)
}

func (s *Session) DrawLine(x1, y1, x2, y2, colour1, colour2 int) {
	s.Flush()
	s.gfx.DrawLine(x1, y1, x2, y2, colour1, colour2)
}

func (s *Session) Fill(x, y, colour1, colour2 int) {
	s.Flush()
	s.gfx.Fill(x, y, colour1, colour2)
}

// SetDecoder attaches the engine's graphics collaborator once the engine
// has been opened.
func (s *Session) SetDecoder(decoder Decoder) {
	s.gfx.decoder = decoder
}

// SetStatusHook registers the engine's status dump for Fatal to invoke.
func (s *Session) SetStatusHook(hook func(io.Writer)) {
	s.statusHook = hook
}

// Fatal flushes pending output, reports the condition and terminates the
// process. It never returns.
func (s *Session) Fatal(msg string) {
	s.Flush()
	fmt.Fprintf(s.term, "\nFatal error: %s\n", msg)
	if s.statusHook != nil {
		s.statusHook(s.term)
	}
	s.exit(1)
}

// atoiPrefix parses the leading decimal digits of s, ignoring anything
// after them.
func atoiPrefix(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, _ := strconv.Atoi(s[:i])
	return n
}
