package event

import (
	"log"
	"sync"
)

// LogSink writes one line per event.
type LogSink struct {
	logger *log.Logger
	// Skip filters out noisy event types.
	Skip map[Type]bool
}

func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(e Event) {
	if s == nil || s.logger == nil || s.Skip[e.Type] {
		return
	}
	s.logger.Print(e.String())
}

// Recorder keeps every event in memory. Tests and the websocket hub read it
// from other goroutines, hence the lock.
type Recorder struct {
	mu     sync.RWMutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) Events() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	copied := make([]Event, len(r.events))
	copy(copied, r.events)
	return copied
}

// Filter returns the recorded events of type t, optionally restricted to one actor.
func (r *Recorder) Filter(t Type, actor string) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Event
	for _, e := range r.events {
		if e.Type != t {
			continue
		}
		if actor != "" && e.Actor != actor {
			continue
		}
		out = append(out, e)
	}
	return out
}

// States lists the states actor entered, in order.
func (r *Recorder) States(actor string) []string {
	var out []string
	for _, e := range r.Filter(TypeStateEntered, actor) {
		out = append(out, e.State)
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = r.events[:0]
}
