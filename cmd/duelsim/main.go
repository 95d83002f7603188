// Command duelsim runs bot-vs-boss fights without a window and prints the
// event journal and the outcome.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/bossfight/encounter"
	"github.com/milk9111/bossfight/event"
	"github.com/milk9111/bossfight/input"
	"github.com/milk9111/bossfight/prefabs"
)

type options struct {
	spec     string
	seed     int64
	fights   int
	ticks    int
	quiet    bool
	jsonOut  bool
	dodge    float64
	keepAway float64
}

// result is one finished or timed-out fight.
type result struct {
	Seed       int64   `json:"seed"`
	Outcome    string  `json:"outcome"`
	Ticks      uint64  `json:"ticks"`
	PlayerHP   float64 `json:"player_hp"`
	BossHP     float64 `json:"boss_hp"`
	FinalPhase int     `json:"final_phase"`
}

func run(opts options, out io.Writer, logger *log.Logger) ([]result, error) {
	spec, err := prefabs.LoadEncounter(opts.spec)
	if err != nil {
		return nil, err
	}
	botCfg := input.DefaultBotConfig()
	botCfg.DodgeChance = opts.dodge
	botCfg.KeepAway = opts.keepAway

	var results []result
	for i := 0; i < opts.fights; i++ {
		spec.Seed = opts.seed + int64(i)

		var sink event.Sink
		switch {
		case opts.quiet:
		case opts.jsonOut:
			enc := json.NewEncoder(out)
			sink = event.SinkFunc(func(e event.Event) {
				if err := enc.Encode(e); err != nil {
					logger.Printf("duelsim: encode: %v", err)
				}
			})
		default:
			ls := event.NewLogSink(log.New(out, "", 0))
			ls.Skip = map[event.Type]bool{event.TypeSpawned: true, event.TypeExpired: true}
			sink = ls
		}

		fight, err := encounter.New(spec, encounter.Deps{Sink: sink, Logger: logger})
		if err != nil {
			return nil, err
		}
		fight.Run(fight.BotProvider(botCfg), opts.ticks)
		results = append(results, result{
			Seed:       spec.Seed,
			Outcome:    fight.Outcome().String(),
			Ticks:      fight.Ticks(),
			PlayerHP:   fight.Player().HealthStat().Get(),
			BossHP:     fight.Boss().HealthStat().Get(),
			FinalPhase: fight.Boss().Phase(),
		})
	}
	return results, nil
}

func main() {
	var opts options
	flag.StringVar(&opts.spec, "spec", "", "encounter spec in prefabs/ (default encounter.yaml)")
	flag.Int64Var(&opts.seed, "seed", 1, "seed of the first fight; later fights count up from it")
	flag.IntVar(&opts.fights, "n", 1, "number of fights")
	flag.IntVar(&opts.ticks, "ticks", 60*60*5, "tick limit per fight")
	flag.BoolVar(&opts.quiet, "q", false, "print only the summary")
	flag.BoolVar(&opts.jsonOut, "json", false, "print events as JSON lines")
	flag.Float64Var(&opts.dodge, "dodge", input.DefaultBotConfig().DodgeChance, "bot roll chance per threat")
	flag.Float64Var(&opts.keepAway, "keep-away", input.DefaultBotConfig().KeepAway, "distance the bot backs off to before drawing")
	flag.Parse()

	logger := log.New(os.Stderr, "", 0)
	results, err := run(opts, os.Stdout, logger)
	if err != nil {
		logger.Fatal(err)
	}

	wins := 0
	for _, r := range results {
		if r.Outcome == encounter.PlayerWon.String() {
			wins++
		}
		fmt.Fprintf(os.Stderr, "seed %d: %s after %d ticks (player %.0f, boss %.0f, phase %d)\n",
			r.Seed, r.Outcome, r.Ticks, r.PlayerHP, r.BossHP, r.FinalPhase)
	}
	fmt.Fprintf(os.Stderr, "bot won %d of %d\n", wins, len(results))
}
