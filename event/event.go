// Package event is the presentation sink of the combat core. Actors and the
// encounter publish fire-and-forget notifications; frontends, audio and
// spectators subscribe by implementing Sink.
package event

import "fmt"

type Type string

const (
	TypeStateEntered  Type = "state_entered"
	TypeDamaged       Type = "damaged"
	TypeSpawned       Type = "spawned"
	TypeDestroyed     Type = "destroyed"
	TypeExpired       Type = "expired"
	TypeWorldHit      Type = "world_hit"
	TypeShotRejected  Type = "shot_rejected"
	TypePhaseChanged  Type = "phase_changed"
	TypeFlightPhase   Type = "flight_phase"
	TypeDied          Type = "died"
	TypeEncounterOver Type = "encounter_over"
)

// Actor names used in events.
const (
	ActorPlayer = "player"
	ActorBoss   = "boss"
)

type Event struct {
	Type  Type   `json:"type"`
	Tick  uint64 `json:"tick"`
	Actor string `json:"actor"`
	// State is the state entered, the phase name or the projectile kind.
	State  string  `json:"state,omitempty"`
	From   string  `json:"from,omitempty"`
	Target string  `json:"target,omitempty"`
	Amount float64 `json:"amount,omitempty"`
	Health float64 `json:"health,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func (e Event) String() string {
	switch e.Type {
	case TypeStateEntered:
		return fmt.Sprintf("[%d] %s: %s -> %s", e.Tick, e.Actor, e.From, e.State)
	case TypeDamaged:
		return fmt.Sprintf("[%d] %s took %.1f damage (hp %.1f)", e.Tick, e.Actor, e.Amount, e.Health)
	case TypeSpawned, TypeDestroyed, TypeExpired, TypeWorldHit:
		return fmt.Sprintf("[%d] %s %s %s at (%.2f, %.2f)", e.Tick, e.Actor, e.Type, e.State, e.X, e.Y)
	}
	if e.State != "" {
		return fmt.Sprintf("[%d] %s %s %s", e.Tick, e.Actor, e.Type, e.State)
	}
	return fmt.Sprintf("[%d] %s %s", e.Tick, e.Actor, e.Type)
}

// Sink receives events. Publish must not block the simulation.
type Sink interface {
	Publish(e Event)
}

type SinkFunc func(e Event)

func (f SinkFunc) Publish(e Event) {
	if f == nil {
		return
	}
	f(e)
}

type nopSink struct{}

func (nopSink) Publish(Event) {}

// Nop returns a sink that discards everything.
func Nop() Sink {
	return nopSink{}
}

// Fanout publishes to every sink in order.
type Fanout []Sink

func (f Fanout) Publish(e Event) {
	for _, s := range f {
		if s != nil {
			s.Publish(e)
		}
	}
}

// Join combines sinks, dropping nils.
func Join(sinks ...Sink) Sink {
	out := make(Fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	switch len(out) {
	case 0:
		return Nop()
	case 1:
		return out[0]
	}
	return out
}

type tickSink struct {
	next Sink
	tick func() uint64
}

func (s *tickSink) Publish(e Event) {
	e.Tick = s.tick()
	s.next.Publish(e)
}

// WithTick stamps every event with the current simulation tick.
func WithTick(s Sink, tick func() uint64) Sink {
	if s == nil {
		return Nop()
	}
	if tick == nil {
		return s
	}
	return &tickSink{next: s, tick: tick}
}
