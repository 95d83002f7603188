package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/bossfight/input"
)

// moveHold is how many ticks a movement key keeps the player walking.
// Terminals only report presses and key repeat, never releases.
const moveHold = 8

// keyState turns terminal key presses into per-tick frames.
type keyState struct {
	moveX    float64
	moveLeft int

	jump, roll, primary bool

	// the bow toggles: one press draws, the next lets go
	bowDown bool
	bow     input.Edges
}

// handle records a key press. It reports false for keys it does not use.
func (k *keyState) handle(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		k.walk(-1)
		return true
	case tcell.KeyRight:
		k.walk(1)
		return true
	case tcell.KeyUp:
		k.jump = true
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	switch ev.Rune() {
	case 'a', 'h':
		k.walk(-1)
	case 'd':
		k.walk(1)
	case ' ', 'w':
		k.jump = true
	case 'l', 's':
		k.roll = true
	case 'j', 'f':
		k.primary = true
	case 'k', 'e':
		k.bowDown = !k.bowDown
	default:
		return false
	}
	return true
}

func (k *keyState) walk(dir float64) {
	k.moveX = dir
	k.moveLeft = moveHold
}

// Next returns the frame for one tick and clears the one-shot presses.
func (k *keyState) Next() input.Frame {
	f := input.Frame{
		JumpPressed:    k.jump,
		RollPressed:    k.roll,
		PrimaryPressed: k.primary,
	}
	if k.moveLeft > 0 {
		f.MoveX = k.moveX
		k.moveLeft--
	}
	f.SecondaryPressed, f.SecondaryHeld, f.SecondaryReleased = k.bow.Update(k.bowDown)
	k.jump, k.roll, k.primary = false, false, false
	return f
}
