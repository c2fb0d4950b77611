// Copyright (c) 2026 the talkie authors
// released under the ISC license

package main

import (
	"fmt"
	"strconv"

	docopt "github.com/docopt/docopt-go"
	"github.com/jwalton/go-supportscolor"
	log "github.com/sirupsen/logrus"

	"github.com/iftools/talkie/ansi"
	"github.com/iftools/talkie/console"
	"github.com/iftools/talkie/lib"
)

func main() {
	version := lib.SemVer
	usage := `talkie.
talkie runs classic interactive-fiction stories through a plain console. It
records or replays keystroke scripts, captures transcripts, and dumps any
decoded bitmaps as text directives for a companion renderer to draw.

The engines themselves (Magnetic Scrolls, Level 9) are linked in separately
and selected with --engine; talkie provides them with terminal I/O, file
load/save, and the graphics directive stream.

Usage:
	talkie <story> [<gfxdir>] [options]
	talkie -h | --help
	talkie --version

Interpreter Commands:
	These are typed at the game prompt and are handled by talkie itself,
	never reaching the game parser:

	 #undo       undo one turn - don't use it near are-you-sure prompts
	 #logoff     stop recording the keystroke script
	 ##img#<id>  dump bitmap <id> to the renderer

Graphics Directives:
	Decoded images and drawing operations are emitted as one-per-line ASCII
	directives like #[img ...], #[pal ...], #[pixels ...] and #[bitmap ...],
	interleaved with game text. A companion renderer parses them back out;
	--renderer delivers them out-of-band over a websocket instead.

Options:
	--engine=<name>       Engine that interprets the story [default: magnetic].
	-d --dump=<n>         Dump machine status after n instructions.
	-s --safety=<n>       Stop automatically after n instructions.
	-r --replay=<file>    Replay keystrokes from a script file.
	-w --record=<file>    Record keystrokes to a script file.
	-t --transcript=<file>  Write a transcript of the session.
	--renderer=<url>      Stream graphics directives to a ws:// renderer.
	--readline            Enable line editing at the prompt.
	--history=<file>      Readline history file.
	--no-color            Don't color the status line.
	-v --verbose          Enable debug logging.
	-h --help             Show this screen.
	--version             Show version.`

	arguments, _ := docopt.Parse(usage, nil, true, "talkie "+version, false)

	if arguments["--verbose"].(bool) {
		log.SetLevel(log.DebugLevel)
	}

	if err := ansi.EnableANSI(); err != nil {
		log.WithError(err).Debug("could not enable ANSI processing")
	}

	story := arguments["<story>"].(string)
	var gfxdir string
	if arguments["<gfxdir>"] != nil {
		gfxdir = arguments["<gfxdir>"].(string)
	}

	colorLevel := lib.ColorLevelNone
	if !arguments["--no-color"].(bool) && supportscolor.Stdout().SupportsColor {
		colorLevel = lib.ColorLevel(supportscolor.Stdout().Level)
	}

	var historyFile string
	if arguments["--history"] != nil {
		historyFile = arguments["--history"].(string)
	}
	term, err := console.NewConsole(arguments["--readline"].(bool), historyFile)
	if err != nil {
		log.Fatalf("could not open console: %v", err)
	}
	defer term.Close()

	var rendererURL string
	if arguments["--renderer"] != nil {
		rendererURL = arguments["--renderer"].(string)
	}
	renderer, err := lib.NewRenderer(rendererURL, term)
	if err != nil {
		log.Fatalf("could not reach renderer %q: %v", rendererURL, err)
	}

	engineName := arguments["--engine"].(string)
	bufferSize := lib.DefaultBufferSize
	if engineName == "level9" {
		bufferSize = lib.LargeBufferSize
	}

	session := lib.NewSession(lib.SessionConfig{
		Console:    term,
		BufferSize: bufferSize,
		ColorLevel: colorLevel,
		Renderer:   renderer,
	})

	if arguments["--replay"] != nil {
		session.StartReplay(arguments["--replay"].(string))
	}
	if arguments["--record"] != nil {
		session.StartRecording(arguments["--record"].(string))
	}
	if arguments["--transcript"] != nil {
		session.StartTranscript(arguments["--transcript"].(string))
	}

	engine, err := lib.OpenEngine(engineName, story, gfxdir, session)
	if err != nil {
		log.Fatalf("couldn't start up game %q: %v", story, err)
	}
	session.SetStatusHook(engine.Status)
	if decoder, ok := engine.(lib.Decoder); ok {
		session.SetDecoder(decoder)
	}

	limits := lib.RunLimits{
		Dump:   parseLimit(arguments["--dump"]),
		Safety: parseLimit(arguments["--safety"]),
	}

	err = lib.Run(engine, session, limits)
	session.Close()
	if err != nil {
		log.Fatalf("engine stopped: %v", err)
	}
	fmt.Println("\nExiting.")
}

func parseLimit(arg interface{}) uint64 {
	if arg == nil {
		return lib.NoLimit
	}
	n, err := strconv.ParseUint(arg.(string), 10, 64)
	if err != nil {
		log.Fatalf("limits must be instruction counts: %v", err)
	}
	return n
}
