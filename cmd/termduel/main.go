// Command termduel plays the boss fight in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/encounter"
	"github.com/milk9111/bossfight/input"
	"github.com/milk9111/bossfight/prefabs"
)

type game struct {
	screen tcell.Screen
	spec   prefabs.EncounterSpec
	logger *log.Logger

	enc  *encounter.Encounter
	view *view
	keys keyState
	bot  input.Provider
	auto bool
}

func newGame(screen tcell.Screen, spec prefabs.EncounterSpec, logger *log.Logger, auto bool) (*game, error) {
	g := &game{screen: screen, spec: spec, logger: logger, auto: auto}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *game) restart() error {
	enc, err := encounter.New(g.spec, encounter.Deps{Logger: g.logger})
	if err != nil {
		return err
	}
	g.enc = enc
	g.keys = keyState{}
	g.bot = enc.BotProvider(input.DefaultBotConfig())
	if g.view == nil {
		g.view = newView(g.screen, enc)
	} else {
		g.view.reset(enc)
	}
	return nil
}

// handle applies one terminal event and reports whether to keep running.
func (g *game) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				if err := g.restart(); err != nil {
					g.logger.Printf("restart: %v", err)
				}
				return true
			case 'b':
				g.auto = !g.auto
				return true
			}
		}
		g.keys.handle(ev)
	case *tcell.EventResize:
		g.view.resize()
		g.screen.Sync()
	}
	return true
}

func (g *game) tick() {
	frame := g.keys.Next()
	if g.auto {
		frame = g.bot.Next()
	}
	if !g.enc.Over() {
		g.enc.Tick(frame)
	}
}

func (g *game) run() {
	ticker := time.NewTicker(time.Second / common.TPS)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go g.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case ev, ok := <-events:
			if !ok || !g.handle(ev) {
				return
			}
		case <-ticker.C:
			g.tick()
			g.view.draw()
		}
	}
}

func main() {
	specFile := flag.String("spec", "", "encounter spec in prefabs/ (default encounter.yaml)")
	auto := flag.Bool("bot", false, "let the bot play the player")
	logFile := flag.String("log", "", "write the log here instead of discarding it")
	flag.Parse()

	// the terminal belongs to the screen; logging goes to a file or nowhere
	logger := log.New(io.Discard, "", 0)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "termduel: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.New(f, "", log.LstdFlags)
	}

	spec, err := prefabs.LoadEncounter(*specFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termduel: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termduel: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "termduel: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	g, err := newGame(screen, spec, logger, *auto)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "termduel: %v\n", err)
		os.Exit(1)
	}
	g.run()
}
