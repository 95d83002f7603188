// Package component holds the plain data components attached to projectile
// and area-effect entities, and the typed keys their stores are found by.
package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("entity not alive")
	ErrNilComponent         = errors.New("component is nil")
	ErrInvalidComponentKind = errors.New("invalid component kind")
)

// ComponentID identifies a component store inside a world.
type ComponentID uint32

var lastID atomic.Uint32

// ComponentKind is the typed key of a component store. The zero kind is
// invalid; kinds are registered once at package level.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

// Register creates a kind whose name shows up in store errors.
func Register[T any](name string) ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(lastID.Add(1)), name: name}
}

// NewComponentKind registers a kind named after T.
func NewComponentKind[T any]() ComponentKind[T] {
	return Register[T](fmt.Sprintf("%T", *new(T)))
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

func (k ComponentKind[T]) String() string {
	if k.name == "" {
		return fmt.Sprintf("kind#%d", k.id)
	}
	return k.name
}
