// Copyright (c) 2026 the talkie authors
// released under the ISC license

package lib

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Callbacks is the capability set the adapter offers to an execution
// engine. Both supported engine families drive the same implementation; the
// buffering, recording and transcript logic is written once.
type Callbacks interface {
	// PutChar buffers one byte of game output.
	PutChar(c byte)
	// StatusChar renders one byte of the status line, unbuffered.
	StatusChar(c byte)
	// Flush forces pending game output to the terminal.
	Flush()

	// GetChar returns the next byte of the logical input stream. With
	// intercept enabled, meta-commands at the start of a fresh line are
	// consumed by the adapter; #undo is served as UndoChar.
	GetChar(intercept bool) byte
	// Input reads one full input line of at most limit bytes. ok is false
	// when the line was consumed by the adapter (a bitmap dump request)
	// and the engine should solicit input again.
	Input(limit int) (line string, ok bool)
	// ReadKey returns a single keypress, or 0 when millis is zero.
	ReadKey(millis int) byte

	// LoadFile fills dst from a file, prompting for a name when name is
	// empty. SaveFile is the mirror image. Both report bare success.
	LoadFile(name string, dst []byte) bool
	SaveFile(name string, src []byte) bool

	// Graphics directives, forwarded to the companion renderer.
	ShowBitmap(id, x, y int)
	GraphicsMode(mode int)
	ClearGraphics()
	SetColour(colour, index int)
	DrawLine(x1, y1, x2, y2, colour1, colour2 int)
	Fill(x, y, colour1, colour2 int)

	// Fatal reports an unrecoverable engine condition: pending output is
	// flushed, the message printed, and the process terminated.
	Fatal(msg string)
}

// Engine is an interactive-fiction execution engine driven through
// Callbacks. Engine implementations live out of tree and register
// themselves by name, in the manner of database/sql drivers.
type Engine interface {
	// Step interprets a bounded slice of the story; more is false once
	// the game has ended.
	Step() (more bool, err error)
	// Count reports instructions executed so far.
	Count() uint64
	// Status dumps the machine state for diagnostics.
	Status(w io.Writer)
}

// EngineFactory opens a story (and optional graphics resource) against the
// given callback set.
type EngineFactory func(story, graphics string, cb Callbacks) (Engine, error)

var (
	engineMutex sync.Mutex
	engines     = make(map[string]EngineFactory)
)

// RegisterEngine makes an engine available to OpenEngine. It panics on a
// duplicate name, again like database/sql.
func RegisterEngine(name string, factory EngineFactory) {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	if _, dup := engines[name]; dup {
		panic("RegisterEngine called twice for engine " + name)
	}
	engines[name] = factory
}

// EngineNames returns the registered engine names, sorted.
func EngineNames() []string {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func OpenEngine(name, story, graphics string, cb Callbacks) (Engine, error) {
	engineMutex.Lock()
	factory := engines[name]
	engineMutex.Unlock()
	if factory == nil {
		return nil, fmt.Errorf("unknown engine %q (registered: %v)", name, EngineNames())
	}
	return factory(story, graphics, cb)
}

// RunLimits bounds a run: Dump turns on status dumps once that many
// instructions have executed, Safety stops the run outright.
type RunLimits struct {
	Dump   uint64
	Safety uint64
}

// NoLimit disables a limit.
const NoLimit = ^uint64(0)

// Run steps the engine to completion, honoring the diagnostic and safety
// limits the way the classic front ends did.
func Run(e Engine, s *Session, limits RunLimits) error {
	for e.Count() < limits.Safety {
		if e.Count() >= limits.Dump {
			e.Status(s.Terminal())
		}
		more, err := e.Step()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	s.Flush()
	fmt.Fprintf(s.Terminal(), "\n\nSafety limit (%d) reached.\n", limits.Safety)
	e.Status(s.Terminal())
	return nil
}
