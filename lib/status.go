// Copyright (c) 2026 the talkie authors
// released under the ISC license

package lib

import (
	"fmt"
	"io"
)

// ScreenWidth is the column the status line pads against.
const ScreenWidth = 78

func makeANSI(code string) string {
	return "\033[" + code + "m"
}

var (
	statusColorOn  = makeANSI("32")
	statusColorOff = makeANSI("0")
)

// StatusLine renders the engine's status channel. It is unbuffered: status
// characters appear immediately, colored when the terminal supports it.
// A tab pads to the right-hand side of the line, a newline resets the
// column.
type StatusLine struct {
	out    io.Writer
	level  ColorLevel
	column int
}

func NewStatusLine(out io.Writer, level ColorLevel) *StatusLine {
	return &StatusLine{out: out, level: level}
}

func (s *StatusLine) WriteChar(c byte) {
	switch c {
	case '\t':
		// right-justify what follows (score/turn counter)
		for s.column+11 < ScreenWidth {
			fmt.Fprint(s.out, " ")
			s.column++
		}
	case '\n':
		s.column = 0
		fmt.Fprint(s.out, "\n")
	default:
		if s.level >= ColorLevelBasic {
			fmt.Fprintf(s.out, "%s%c%s", statusColorOn, c, statusColorOff)
		} else {
			fmt.Fprintf(s.out, "%c", c)
		}
		s.column++
	}
}
