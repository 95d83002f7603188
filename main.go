package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/bossfight/audio"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/prefabs"
	"github.com/milk9111/bossfight/spectate"
)

func main() {
	specFile := flag.String("spec", "", "encounter spec in prefabs/ (default encounter.yaml)")
	debug := flag.Bool("debug", false, "log every event and draw detection range")
	bot := flag.Bool("bot", false, "let the bot play the player")
	mute := flag.Bool("mute", false, "disable audio cues")
	spectateAddr := flag.String("spectate", "", "serve the event stream to websocket spectators on this address, e.g. :8090")
	watch := flag.Bool("watch", true, "reload edited specs from prefabs/")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	opts := GameOptions{SpecFile: *specFile, Debug: *debug, Bot: *bot}

	if !*mute {
		cues := audio.NewCueSink(nil, nil)
		// Non-fatal, the fight runs without sound
		if err := cues.Initialize(); err != nil {
			log.Printf("audio disabled: %v", err)
		}
		defer cues.Close()
		opts.Cues = cues
	}

	if *spectateAddr != "" {
		hub := spectate.NewHub(spectate.DefaultHubConfig())
		defer hub.Close()
		go func() {
			if err := http.ListenAndServe(*spectateAddr, hub); err != nil {
				log.Printf("spectate: %v", err)
			}
		}()
		opts.Hub = hub
	}

	if *watch {
		w, err := prefabs.NewWatcher(prefabs.WatchDirs()...)
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			defer w.Close()
			opts.Watcher = w
		}
	}

	game, err := NewGame(opts)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetTPS(common.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("bossfight")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
