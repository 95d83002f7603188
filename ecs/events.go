package ecs

// EventKind identifies what happened to an entity during an update.
type EventKind string

const (
	EventSpawned   EventKind = "spawned"
	EventHit       EventKind = "hit"
	EventWorldHit  EventKind = "world_hit"
	EventExpired   EventKind = "expired"
	EventDestroyed EventKind = "destroyed"
)

// Event is emitted by systems and drained by the owner of the world.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
