// Package input carries one tick of already-polled player intent into the
// combat core. Device polling lives in the frontends.
package input

import "github.com/jakecoffman/cp"

// Frame is the input state for a single simulation tick. Pressed and
// Released fields are edge-triggered; Held fields are level-triggered.
type Frame struct {
	// MoveX is the horizontal axis in [-1, 1].
	MoveX float64

	JumpPressed bool
	RollPressed bool

	// Primary fire: melee, or loosing a drawn arrow.
	PrimaryPressed bool

	// Secondary fire: drawing and holding the bow.
	SecondaryPressed  bool
	SecondaryHeld     bool
	SecondaryReleased bool

	// Aim is a world-space point the bow is aimed at. When HasAim is false
	// the shot goes straight along the player's facing.
	Aim    cp.Vector
	HasAim bool
}

// Provider yields the frame for the next tick.
type Provider interface {
	Next() Frame
}

type ProviderFunc func() Frame

func (f ProviderFunc) Next() Frame {
	if f == nil {
		return Frame{}
	}
	return f()
}

// Idle is a provider that never presses anything.
var Idle Provider = ProviderFunc(func() Frame { return Frame{} })

// Edges tracks a held button and derives its pressed/released edges.
type Edges struct {
	held bool
}

// Update records the current level and returns pressed, held, released.
func (e *Edges) Update(down bool) (pressed, held, released bool) {
	pressed = down && !e.held
	released = !down && e.held
	e.held = down
	return pressed, down, released
}
