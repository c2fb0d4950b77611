// Copyright (c) 2026 the talkie authors
// released under the ISC license

package lib

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// wsRenderer streams graphics directives to a companion renderer as one
// websocket text message per line.
type wsRenderer struct {
	writeMutex sync.Mutex
	closeOnce  sync.Once
	websocket  *websocket.Conn
}

func dialRenderer(wsUrl string) (Renderer, error) {
	dialer := websocket.Dialer{}
	ws, resp, err := dialer.Dial(wsUrl, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("%w: %d", err, resp.StatusCode)
		}
		return nil, err
	}
	return &wsRenderer{
		websocket: ws,
	}, nil
}

func (w *wsRenderer) SendLine(line string) error {
	w.writeMutex.Lock()
	defer w.writeMutex.Unlock()
	return w.websocket.WriteMessage(websocket.TextMessage, []byte(line))
}

func (w *wsRenderer) Close() error {
	w.closeOnce.Do(func() {
		w.websocket.Close()
	})
	return nil
}
