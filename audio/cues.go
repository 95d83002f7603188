// Package audio turns combat events into short synthesized cues.
package audio

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/bossfight/event"
	"github.com/milk9111/bossfight/prefabs"
)

const sampleRate = beep.SampleRate(44100)

type cueKey struct {
	actor string
	state string
}

// CueSink plays the cue configured for an actor entering a state. It does
// nothing until Initialize succeeds, so headless runs can keep it wired.
type CueSink struct {
	mu          sync.Mutex
	logger      *log.Logger
	cues        map[cueKey]prefabs.AudioSpec
	mixer       *beep.Mixer
	initialized bool
	played      []string
}

func NewCueSink(cues []prefabs.AudioSpec, logger *log.Logger) *CueSink {
	if logger == nil {
		logger = log.Default()
	}
	s := &CueSink{mixer: &beep.Mixer{}, logger: logger}
	s.SetCues(cues)
	return s
}

// SetCues replaces the cue table, e.g. after a spec reload.
func (s *CueSink) SetCues(cues []prefabs.AudioSpec) {
	table := make(map[cueKey]prefabs.AudioSpec, len(cues))
	for _, c := range cues {
		table[cueKey{c.Actor, c.State}] = c
	}
	s.mu.Lock()
	s.cues = table
	s.mu.Unlock()
}

// Initialize opens the speaker and starts the mixer.
func (s *CueSink) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close silences everything still playing.
func (s *CueSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	s.mixer.Clear()
	s.initialized = false
}

func (s *CueSink) Publish(e event.Event) {
	if e.Type != event.TypeStateEntered {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cue, ok := s.cues[cueKey{e.Actor, e.State}]
	if !ok {
		return
	}
	s.played = append(s.played, cue.Name)
	if !s.initialized {
		return
	}
	st, err := Streamer(cue)
	if err != nil {
		s.logger.Print(err)
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Played lists the names of the cues triggered so far.
func (s *CueSink) Played() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.played...)
}

// gap keeps back-to-back cues from running into each other.
const gap = 10 * time.Millisecond

// Streamer renders cue as a finite tone followed by a short silence.
func Streamer(cue prefabs.AudioSpec) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, cue.Frequency)
	if err != nil {
		return nil, fmt.Errorf("audio: cue %s: %w", cue.Name, err)
	}
	n := sampleRate.N(time.Duration(cue.Duration * float64(time.Second)))
	return beep.Seq(
		beep.Take(n, NewEnvelope(sine, cue.Volume, n)),
		beep.Silence(sampleRate.N(gap)),
	), nil
}

// Envelope scales a streamer by volume with a short attack and a linear
// release over total samples.
type Envelope struct {
	src    beep.Streamer
	volume float64
	attack int
	total  int
	pos    int
}

func NewEnvelope(src beep.Streamer, volume float64, total int) *Envelope {
	return &Envelope{
		src:    src,
		volume: math.Max(0, math.Min(volume, 1)),
		attack: sampleRate.N(5 * time.Millisecond),
		total:  total,
	}
}

func (e *Envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.src.Stream(samples)
	for i := 0; i < n; i++ {
		env := e.volume
		if e.attack > 0 {
			env *= math.Min(float64(e.pos)/float64(e.attack), 1)
		}
		if e.total > 0 {
			env *= math.Max(0, 1-float64(e.pos)/float64(e.total))
		}
		samples[i][0] *= env
		samples[i][1] *= env
		e.pos++
	}
	return n, ok
}

func (e *Envelope) Err() error {
	return e.src.Err()
}
