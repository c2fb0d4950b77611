// Copyright (c) 2026 the talkie authors
// released under the ISC license

package lib

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// fakeConsole serves canned input lines and captures terminal output.
type fakeConsole struct {
	lines []string
	pos   int
	out   bytes.Buffer
}

func (f *fakeConsole) Readline() (string, error) {
	if f.pos >= len(f.lines) {
		return "", io.EOF
	}
	line := f.lines[f.pos]
	f.pos++
	return line, nil
}

func (f *fakeConsole) Write(b []byte) (int, error) {
	return f.out.Write(b)
}

// drainLine reads served bytes until a line terminator or undo sentinel.
func drainLine(r *LineReader, intercept bool) []byte {
	var served []byte
	for {
		c := r.ReadChar(intercept)
		served = append(served, c)
		if c == '\n' || c == 0 {
			return served
		}
	}
}

func newTestReader(lines ...string) (*LineReader, *fakeConsole) {
	cons := &fakeConsole{lines: lines}
	return NewLineReader(cons, &cons.out, NewRecorder(), nil), cons
}

type metaParseCase struct {
	line string
	kind lineKind
	name string
}

var metaParseCases = []metaParseCase{
	{"", ordinaryLine, ""},
	{"look", ordinaryLine, ""},
	{"#", commandLine, ""},
	{"#undo", commandLine, "undo"},
	{"#logoff", commandLine, "logoff"},
	{"#anything else", commandLine, "anything else"},
}

func TestParseMetaLine(t *testing.T) {
	for i, testCase := range metaParseCases {
		kind, name := parseMetaLine(testCase.line)
		if kind != testCase.kind || name != testCase.name {
			t.Errorf("test case %d failed: input %q\nwant (%v, %q)\ngot  (%v, %q)",
				i, testCase.line, testCase.kind, testCase.name, kind, name)
		}
	}
}

func TestReadCharServesLines(t *testing.T) {
	reader, _ := newTestReader("go north", "look")
	if line := drainLine(reader, true); string(line) != "go north\n" {
		t.Errorf("first line: got %q", line)
	}
	if line := drainLine(reader, true); string(line) != "look\n" {
		t.Errorf("second line: got %q", line)
	}
}

func TestReadCharEndOfStream(t *testing.T) {
	reader, _ := newTestReader()
	if c := reader.ReadChar(true); c != 0 {
		t.Errorf("end of stream: want NUL, got %#x", c)
	}
}

func TestNulTerminatesLineEarly(t *testing.T) {
	reader, _ := newTestReader("ab\x00cd")
	if line := drainLine(reader, true); string(line) != "ab\x00" {
		t.Errorf("got %q", line)
	}
}

func TestUndoCommand(t *testing.T) {
	reader, cons := newTestReader("#undo")
	if c := reader.ReadChar(true); c != UndoChar {
		t.Errorf("want undo sentinel, got %#x", c)
	}
	if cons.out.Len() != 0 {
		t.Errorf("undo should not print anything, got %q", cons.out.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	reader, cons := newTestReader("#bogus")
	if c := reader.ReadChar(true); c != '\n' {
		t.Errorf("want a line terminator, got %#x", c)
	}
	if cons.out.String() != "[Nothing done]\n" {
		t.Errorf("terminal: got %q", cons.out.String())
	}
}

func TestCommandsIgnoredWithoutIntercept(t *testing.T) {
	reader, _ := newTestReader("#undo")
	if line := drainLine(reader, false); string(line) != "#undo\n" {
		t.Errorf("got %q", line)
	}
}

func TestLogoffStopsRecording(t *testing.T) {
	dir := t.TempDir()
	scriptFile := filepath.Join(dir, "keys.rec")

	cons := &fakeConsole{lines: []string{"hi", "#logoff", "bye"}}
	recorder := NewRecorder()
	if err := recorder.OpenWrite(scriptFile); err != nil {
		t.Fatalf("OpenWrite: %v", err)
	}
	reader := NewLineReader(cons, &cons.out, recorder, nil)

	drainLine(reader, true)
	if c := reader.ReadChar(true); c != '\n' {
		t.Errorf("logoff should serve a line terminator, got %#x", c)
	}
	if recorder.State() != ScriptIdle {
		t.Errorf("recorder state: want idle, got %v", recorder.State())
	}
	if cons.out.String() != "[Closing script file]\n" {
		t.Errorf("terminal: got %q", cons.out.String())
	}
	drainLine(reader, true)

	// only the line typed while recording was mirrored, with its newline
	content, err := os.ReadFile(scriptFile)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(content) != "hi\n" {
		t.Errorf("script file: want %q, got %q", "hi\n", content)
	}
}

func TestLogoffWhileIdleDoesNothing(t *testing.T) {
	reader, cons := newTestReader("#logoff")
	if c := reader.ReadChar(true); c != '\n' {
		t.Errorf("want a line terminator, got %#x", c)
	}
	if cons.out.String() != "[Nothing done]\n" {
		t.Errorf("terminal: got %q", cons.out.String())
	}
}

func TestRecordingAndTranscriptMirrors(t *testing.T) {
	dir := t.TempDir()
	scriptFile := filepath.Join(dir, "keys.rec")
	transcriptFile := filepath.Join(dir, "session.txt")

	cons := &fakeConsole{lines: []string{"hi"}}
	recorder := NewRecorder()
	if err := recorder.OpenWrite(scriptFile); err != nil {
		t.Fatalf("OpenWrite: %v", err)
	}
	transcript, err := NewTranscript(transcriptFile)
	if err != nil {
		t.Fatalf("NewTranscript: %v", err)
	}
	reader := NewLineReader(cons, &cons.out, recorder, transcript)

	if line := drainLine(reader, true); string(line) != "hi\n" {
		t.Errorf("served: got %q", line)
	}
	recorder.Close()
	transcript.Close()

	script, _ := os.ReadFile(scriptFile)
	if string(script) != "hi\n" {
		t.Errorf("script file: want %q, got %q", "hi\n", script)
	}
	tr, _ := os.ReadFile(transcriptFile)
	if string(tr) != "hi" {
		t.Errorf("transcript file: want %q, got %q", "hi", tr)
	}
}

func TestReplayFallsThroughToKeyboard(t *testing.T) {
	dir := t.TempDir()
	scriptFile := filepath.Join(dir, "keys.rec")
	// replayed fragment ends mid-line; the keyboard finishes it
	if err := os.WriteFile(scriptFile, []byte("go east\nno"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cons := &fakeConsole{lines: []string{"rth"}}
	recorder := NewRecorder()
	if err := recorder.OpenRead(scriptFile); err != nil {
		t.Fatalf("OpenRead: %v", err)
	}
	reader := NewLineReader(cons, &cons.out, recorder, nil)

	if line := drainLine(reader, true); string(line) != "go east\n" {
		t.Errorf("replayed line: got %q", line)
	}
	if line := drainLine(reader, true); string(line) != "north\n" {
		t.Errorf("mixed line: got %q", line)
	}
	if recorder.State() != ScriptIdle {
		t.Errorf("recorder should be idle after replay exhaustion")
	}
	// the player watches the replay: replayed bytes are echoed
	if echoed := cons.out.String(); echoed != "go east\nno" {
		t.Errorf("echo: want %q, got %q", "go east\nno", echoed)
	}
}

func TestInterceptRequiresFreshLine(t *testing.T) {
	dir := t.TempDir()
	scriptFile := filepath.Join(dir, "keys.rec")
	// the replay contributes the start of the line, so the '#' typed at
	// the keyboard is ordinary input
	if err := os.WriteFile(scriptFile, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cons := &fakeConsole{lines: []string{"#undo"}}
	recorder := NewRecorder()
	if err := recorder.OpenRead(scriptFile); err != nil {
		t.Fatalf("OpenRead: %v", err)
	}
	reader := NewLineReader(cons, &cons.out, recorder, nil)

	if line := drainLine(reader, true); string(line) != "x#undo\n" {
		t.Errorf("got %q", line)
	}
}

func TestLineBound(t *testing.T) {
	long := make([]byte, MaxLineBytes+40)
	for i := range long {
		long[i] = 'a'
	}
	reader, _ := newTestReader(string(long))
	line := drainLine(reader, true)
	if len(line) != MaxLineBytes+1 {
		t.Errorf("want %d bytes served, got %d", MaxLineBytes+1, len(line))
	}
	if line[len(line)-1] != '\n' {
		t.Errorf("bounded line should still end in a terminator")
	}
}
