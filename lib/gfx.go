// Copyright (c) 2026 the talkie authors
// released under the ISC license

package lib

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// RGB is one palette entry of a decoded bitmap.
type RGB struct {
	Red, Green, Blue uint8
}

// Bitmap is an engine-decoded image: a palette plus row-major pixel indices
// into it. Pixels has Width*Height entries.
type Bitmap struct {
	Width   int
	Height  int
	Palette []RGB
	Pixels  []byte
}

// Decoder is the external graphics collaborator. Decode returns nil when
// the id is unknown or the resource is missing.
type Decoder interface {
	Decode(id int) (*Bitmap, error)
	CanvasSize() (width, height int)
}

// Graphics serializes decoded bitmaps and drawing operations as one-per-line
// text directives for the companion renderer. Each image is dumped in full
// at most once per session; later placements reference it by id.
type Graphics struct {
	renderer Renderer
	decoder  Decoder
	dumped   map[int]bool
	keyMode  bool
}

func NewGraphics(renderer Renderer, decoder Decoder) *Graphics {
	return &Graphics{
		renderer: renderer,
		decoder:  decoder,
		dumped:   make(map[int]bool),
	}
}

func (g *Graphics) send(line string) {
	if err := g.renderer.SendLine(line); err != nil {
		log.WithError(err).Warn("dropped graphics directive")
	}
}

// DumpIfNew emits the full three-line dump (header, palette, pixels) for an
// image the first time it is requested. A failed decode emits nothing and
// leaves the id unmarked, so a later retry is possible; only a successful
// dump is suppressed on repeat requests.
func (g *Graphics) DumpIfNew(id int) bool {
	if g.dumped[id] {
		return true
	}
	if g.decoder == nil {
		return false
	}
	bitmap, err := g.decoder.Decode(id)
	if err != nil {
		log.WithError(err).WithField("image", id).Warn("bitmap decode failed")
		return false
	}
	if bitmap == nil {
		return false
	}

	g.send(fmt.Sprintf("#[img %d %d %d %d]", id, bitmap.Width, bitmap.Height, len(bitmap.Palette)))

	var pal strings.Builder
	fmt.Fprintf(&pal, "#[pal %d", id)
	for _, entry := range bitmap.Palette {
		fmt.Fprintf(&pal, " 0x%02X%02X%02X", entry.Red, entry.Green, entry.Blue)
	}
	pal.WriteString("]")
	g.send(pal.String())

	var pixels strings.Builder
	fmt.Fprintf(&pixels, "#[pixels %d", id)
	for _, index := range bitmap.Pixels {
		fmt.Fprintf(&pixels, " 0x%02X", index)
	}
	pixels.WriteString("]")
	g.send(pixels.String())

	g.dumped[id] = true
	return true
}

// ShowBitmap places an image, dumping it first if the renderer has never
// seen it.
func (g *Graphics) ShowBitmap(id, x, y int) {
	g.DumpIfNew(id)
	g.send(fmt.Sprintf("#[bitmap %d %d %d]", id, x, y))
}

// Mode announces a graphics mode change, followed by the canvas size when
// the decoder reports one.
func (g *Graphics) Mode(mode int) {
	g.send(fmt.Sprintf("#[gfx %d]", mode))
	if g.decoder == nil {
		return
	}
	if width, height := g.decoder.CanvasSize(); width != 0 {
		g.send(fmt.Sprintf("#[imgsize %d %d]", width, height))
	}
}

func (g *Graphics) Clear() {
	g.send("#[clear]")
}

func (g *Graphics) SetColour(colour, index int) {
	g.send(fmt.Sprintf("#[setcolor %d %d]", colour, index))
}

func (g *Graphics) DrawLine(x1, y1, x2, y2, colour1, colour2 int) {
	g.send(fmt.Sprintf("#[line %d %d %d %d %d %d]", x1, y1, x2, y2, colour1, colour2))
}

func (g *Graphics) Fill(x, y, colour1, colour2 int) {
	g.send(fmt.Sprintf("#[fill %d %d %d %d]", x, y, colour1, colour2))
}

// EnterKeyMode announces single-keypress input solicitation, once per
// transition.
func (g *Graphics) EnterKeyMode() {
	if !g.keyMode {
		g.keyMode = true
		g.send("#[keymode]")
	}
}

// EnterLineMode announces full-line input solicitation, once per transition.
func (g *Graphics) EnterLineMode() {
	if g.keyMode {
		g.keyMode = false
		g.send("#[linemode]")
	}
}
