// Copyright (c) 2026 the talkie authors
// released under the ISC license

package lib

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// FileBridge resolves save/load targets and performs whole-buffer binary
// transfers. When the engine supplies no filename, the player is prompted
// on the console.
type FileBridge struct {
	console Console
}

func NewFileBridge(console Console) *FileBridge {
	return &FileBridge{console: console}
}

// promptName asks the player for a filename, retrying while the read fails
// or yields an empty line.
func (f *FileBridge) promptName() string {
	for {
		fmt.Fprintf(f.console, "Filename: ")
		line, err := f.console.Readline()
		if err != nil {
			continue
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
}

// Load reads exactly len(dst) bytes from the named file into dst. A missing
// file or a short read is reported as failure; dst contents are then
// unspecified and the engine decides how to proceed.
func (f *FileBridge) Load(name string, dst []byte) bool {
	if name == "" {
		name = f.promptName()
	}
	fh, err := os.Open(name)
	if err != nil {
		return false
	}
	defer fh.Close()
	if _, err := io.ReadFull(fh, dst); err != nil {
		return false
	}
	return true
}

// Save writes exactly len(src) bytes to the named file. A short write is
// reported as failure with no retry.
func (f *FileBridge) Save(name string, src []byte) bool {
	if name == "" {
		name = f.promptName()
	}
	fh, err := os.Create(name)
	if err != nil {
		return false
	}
	if _, err := fh.Write(src); err != nil {
		fh.Close()
		return false
	}
	return fh.Close() == nil
}
