// Package fsm is a small finite state machine engine. States own every
// transition decision; the machine only guarantees that exactly one
// registered state is active and that Exit runs before Enter.
package fsm

import (
	"fmt"
	"log"
)

// State is a capability with the three lifecycle operations, dispatched
// with the machine's owner.
type State[A any] interface {
	Enter(owner A)
	Execute(owner A)
	Exit(owner A)
}

// EnterHook observes a transition just before the incoming state's Enter runs.
type EnterHook[K comparable] func(from, to K)

// Machine holds a registry of keyed states and a single current state.
type Machine[K comparable, A any] struct {
	name  string
	owner A

	states     map[K]State[A]
	current    State[A]
	currentKey K
	active     bool

	allowReenter bool
	terminal     map[K]bool
	exiting      bool
	hooks        []EnterHook[K]
	logger       *log.Logger
}

// New creates an empty machine for owner. The name prefixes log lines.
func New[K comparable, A any](name string, owner A) *Machine[K, A] {
	return &Machine[K, A]{
		name:     name,
		owner:    owner,
		states:   make(map[K]State[A]),
		terminal: make(map[K]bool),
	}
}

// SetLogger enables logging of rejected transition requests.
func (m *Machine[K, A]) SetLogger(l *log.Logger) {
	m.logger = l
}

// SetAllowReenter controls whether ChangeState into the active state runs
// Exit and Enter again (true) or is a no-op (false, the default).
func (m *Machine[K, A]) SetAllowReenter(allow bool) {
	m.allowReenter = allow
}

// SetTerminal marks k as terminal: once active, every further ChangeState is refused.
func (m *Machine[K, A]) SetTerminal(k K) {
	m.terminal[k] = true
}

// OnEnter registers a hook called on every transition.
func (m *Machine[K, A]) OnEnter(h EnterHook[K]) {
	if h != nil {
		m.hooks = append(m.hooks, h)
	}
}

// AddState registers s under k. Re-registering a key replaces the state.
func (m *Machine[K, A]) AddState(k K, s State[A]) {
	if s == nil {
		return
	}
	m.states[k] = s
}

// Has reports whether k is registered.
func (m *Machine[K, A]) Has(k K) bool {
	_, ok := m.states[k]
	return ok
}

// ChangeState exits the current state and enters the one registered under k.
// Unregistered keys, transitions out of a terminal state and requests made
// from inside an Exit are ignored. It reports whether a transition happened.
func (m *Machine[K, A]) ChangeState(k K) bool {
	next, ok := m.states[k]
	if !ok {
		m.logf("unknown state %v", k)
		return false
	}
	if m.exiting {
		m.logf("transition to %v requested during exit of %v", k, m.currentKey)
		return false
	}
	if m.active {
		if m.terminal[m.currentKey] {
			return false
		}
		if m.currentKey == k && !m.allowReenter {
			return false
		}
	}

	from := m.currentKey
	if m.current != nil {
		m.exiting = true
		m.current.Exit(m.owner)
		m.exiting = false
	}
	m.current = next
	m.currentKey = k
	m.active = true
	for _, h := range m.hooks {
		h(from, k)
	}
	next.Enter(m.owner)
	return true
}

// Update runs the current state's per-tick logic. It is a no-op before the
// first transition.
func (m *Machine[K, A]) Update() {
	if m == nil || m.current == nil {
		return
	}
	m.current.Execute(m.owner)
}

// Current returns the active state, or nil before the first transition.
func (m *Machine[K, A]) Current() State[A] {
	return m.current
}

// CurrentKey returns the key of the active state and whether one is active.
func (m *Machine[K, A]) CurrentKey() (K, bool) {
	return m.currentKey, m.active
}

// Is reports whether k is the active state.
func (m *Machine[K, A]) Is(k K) bool {
	return m.active && m.currentKey == k
}

func (m *Machine[K, A]) logf(format string, args ...any) {
	if m.logger == nil {
		return
	}
	m.logger.Printf("fsm: %s: %s", m.name, fmt.Sprintf(format, args...))
}
