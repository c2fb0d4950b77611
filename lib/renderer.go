// Copyright (c) 2026 the talkie authors
// released under the ISC license

package lib

import (
	"fmt"
	"io"
	"net/url"
)

// Renderer is where graphics directives go, one line per directive. The
// default sink interleaves them with game text on the terminal, which the
// companion front-end parses back out; a websocket sink delivers them
// out-of-band.
type Renderer interface {
	SendLine(line string) error
	Close() error
}

type writerRenderer struct {
	out io.Writer
}

func (w *writerRenderer) SendLine(line string) error {
	_, err := fmt.Fprintf(w.out, "%s\n", line)
	return err
}

func (w *writerRenderer) Close() error {
	return nil
}

// NewRenderer picks a directive sink for the given target: an empty target
// means the terminal, a ws:// or wss:// URL means a companion renderer
// reached over a websocket.
func NewRenderer(target string, terminal io.Writer) (Renderer, error) {
	if target == "" {
		return &writerRenderer{out: terminal}, nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("unsupported renderer scheme %q", u.Scheme)
	}
	return dialRenderer(target)
}
