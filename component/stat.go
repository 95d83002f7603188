package component

// StatListener is called after a Stat changes value.
type StatListener[T comparable] func(old, new T)

// Stat is an observable scalar. Every assignment that changes the value
// notifies listeners synchronously, in registration order, before Set returns.
// Assignments of an equal value are dropped without notification.
type Stat[T comparable] struct {
	value     T
	listeners []StatListener[T]
}

// NewStat creates a stat holding v.
func NewStat[T comparable](v T) *Stat[T] {
	return &Stat[T]{value: v}
}

// Get returns the current value.
func (s *Stat[T]) Get() T {
	if s == nil {
		var zero T
		return zero
	}
	return s.value
}

// Set stores v and notifies listeners if it differs from the current value.
// It reports whether the value changed.
func (s *Stat[T]) Set(v T) bool {
	if s == nil || s.value == v {
		return false
	}
	old := s.value
	s.value = v
	for _, l := range s.listeners {
		if l != nil {
			l(old, v)
		}
	}
	return true
}

// OnChange registers a listener.
func (s *Stat[T]) OnChange(l StatListener[T]) {
	if s == nil || l == nil {
		return
	}
	s.listeners = append(s.listeners, l)
}

// Listeners reports how many listeners are registered.
func (s *Stat[T]) Listeners() int {
	if s == nil {
		return 0
	}
	return len(s.listeners)
}
