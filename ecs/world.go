// Package ecs is a small sparse-set entity store used for the short-lived
// objects of an encounter: projectiles and area-effect hazards.
package ecs

import (
	"fmt"

	"github.com/milk9111/bossfight/ecs/component"
)

type store interface {
	remove(id entityID) bool
	len() int
}

type sparseStore[T any] struct {
	dense  []entityID
	values []*T
	sparse map[entityID]int
}

func newSparseStore[T any]() *sparseStore[T] {
	return &sparseStore[T]{sparse: make(map[entityID]int)}
}

func (s *sparseStore[T]) set(id entityID, v *T) {
	if idx, ok := s.sparse[id]; ok {
		s.values[idx] = v
		return
	}
	s.sparse[id] = len(s.dense)
	s.dense = append(s.dense, id)
	s.values = append(s.values, v)
}

func (s *sparseStore[T]) get(id entityID) (*T, bool) {
	idx, ok := s.sparse[id]
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseStore[T]) remove(id entityID) bool {
	idx, ok := s.sparse[id]
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	lastID := s.dense[last]
	s.dense[idx] = lastID
	s.values[idx] = s.values[last]
	s.sparse[lastID] = idx
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	delete(s.sparse, id)
	return true
}

func (s *sparseStore[T]) len() int {
	return len(s.dense)
}

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
	dt       float64
	tick     uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// Delta returns the elapsed seconds of the frame being updated.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Tick returns how many scheduler updates the world has run.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It reports false for
// stale or unknown handles.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Count returns the number of live entities.
func Count(w *World) int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for i := range w.entities.gens {
		if e, ok := w.entities.current(entityID(i + 1)); ok {
			out = append(out, e)
		}
	}
	return out
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseStore[T] {
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		typed := newSparseStore[T]()
		w.stores[kind.ID()] = typed
		return typed
	}
	typed, _ := s.(*sparseStore[T])
	return typed
}

// Add attaches or replaces the component of kind on e. Errors wrap the
// component sentinels and name the kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], v *T) error {
	var err error
	switch {
	case !kind.Valid():
		err = component.ErrInvalidComponentKind
	case v == nil:
		err = component.ErrNilComponent
	case !IsAlive(w, e):
		err = component.ErrEntityNotAlive
	}
	if err != nil {
		return fmt.Errorf("ecs: add %s to %v: %w", kind, e, err)
	}
	storeFor(w, kind, true).set(e.id(), v)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e.id())
}

// ForEach visits every live entity holding a component of kind. The callback
// may destroy the visited entity.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return
	}
	ids := append([]entityID(nil), s.dense...)
	for _, id := range ids {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		v, ok := s.get(id)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 visits entities holding both components.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	sb := storeFor(w, kb, false)
	if sb == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := sb.get(e.id()); ok {
			fn(e, a, b)
		}
	})
}

// ForEach3 visits entities holding all three components.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	sc := storeFor(w, kc, false)
	if sc == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := sc.get(e.id()); ok {
			fn(e, a, b, c)
		}
	})
}
