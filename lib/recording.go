// Copyright (c) 2026 the talkie authors
// released under the ISC license

package lib

import (
	"bufio"
	"io"
	"os"
)

// ScriptState is the recording subsystem's mode. At most one script file is
// open at a time.
type ScriptState int

const (
	// ScriptIdle means no script file is attached.
	ScriptIdle ScriptState = iota
	// ScriptReading means input is being replayed from a script file.
	ScriptReading
	// ScriptWriting means input is being recorded to a script file.
	ScriptWriting
)

// Recorder manages script replay and recording. Replay bytes are served one
// at a time; recording mirrors every byte the engine is handed.
type Recorder struct {
	state  ScriptState
	file   *os.File
	reader *bufio.Reader
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) State() ScriptState {
	if r == nil {
		return ScriptIdle
	}
	return r.state
}

// OpenRead attaches a script file for replay. The recorder stays idle if the
// file cannot be opened.
func (r *Recorder) OpenRead(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	r.closeFile()
	r.file = file
	r.reader = bufio.NewReader(file)
	r.state = ScriptReading
	return nil
}

// OpenWrite attaches a script file for recording. The recorder stays idle if
// the file cannot be created.
func (r *Recorder) OpenWrite(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	r.closeFile()
	r.file = file
	r.reader = nil
	r.state = ScriptWriting
	return nil
}

// ReadChar returns the next replay byte. When the script is exhausted the
// recorder closes it and goes idle, and ok is false: the caller falls
// through to live keyboard input.
func (r *Recorder) ReadChar() (c byte, ok bool) {
	if r == nil || r.state != ScriptReading {
		return 0, false
	}
	c, err := r.reader.ReadByte()
	if err != nil {
		r.Close()
		return 0, false
	}
	return c, true
}

// WriteChar mirrors one input byte to the script file when recording. A
// write fault closes the file and reverts to idle; the returned error lets
// the caller print a diagnostic.
func (r *Recorder) WriteChar(c byte) error {
	if r == nil || r.state != ScriptWriting {
		return nil
	}
	if _, err := r.file.Write([]byte{c}); err != nil {
		r.Close()
		return err
	}
	return nil
}

// Close detaches the script file, if any, and goes idle.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	err := r.closeFile()
	r.state = ScriptIdle
	return err
}

func (r *Recorder) closeFile() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	r.reader = nil
	return err
}

// Transcript captures everything displayed and entered, independently of
// script recording. A backspace removes the transcript's final byte instead
// of being appended.
type Transcript struct {
	outfile *os.File
	size    int64
}

func NewTranscript(filename string) (result *Transcript, err error) {
	outfile, err := os.Create(filename)
	if err != nil {
		return
	}
	return &Transcript{
		outfile: outfile,
	}, nil
}

// Active reports whether a transcript sink is open.
func (t *Transcript) Active() bool {
	return t != nil && t.outfile != nil
}

// WriteChar appends one character to the transcript. All methods tolerate a
// nil or closed transcript so callers can mirror unconditionally.
func (t *Transcript) WriteChar(c byte) error {
	if !t.Active() {
		return nil
	}
	if c == backspace {
		if t.size == 0 {
			return nil
		}
		// genuinely remove the byte rather than seeking over it, so the
		// file never ends in text the player erased
		if err := t.outfile.Truncate(t.size - 1); err != nil {
			t.close()
			return err
		}
		if _, err := t.outfile.Seek(t.size-1, io.SeekStart); err != nil {
			t.close()
			return err
		}
		t.size--
		return nil
	}
	if _, err := t.outfile.Write([]byte{c}); err != nil {
		t.close()
		return err
	}
	t.size++
	return nil
}

func (t *Transcript) Close() error {
	if t == nil {
		return nil
	}
	return t.close()
}

func (t *Transcript) close() error {
	if t.outfile == nil {
		return nil
	}
	err := t.outfile.Close()
	t.outfile = nil
	return err
}
