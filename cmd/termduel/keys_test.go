package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeyStateWalkDecays(t *testing.T) {
	var k keyState
	if !k.handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)) {
		t.Fatalf("left arrow not handled")
	}
	for i := 0; i < moveHold; i++ {
		if f := k.Next(); f.MoveX != -1 {
			t.Fatalf("tick %d: MoveX = %v", i, f.MoveX)
		}
	}
	if f := k.Next(); f.MoveX != 0 {
		t.Fatalf("walk should stop after %d ticks", moveHold)
	}
}

func TestKeyStateOneShots(t *testing.T) {
	var k keyState
	k.handle(runeKey(' '))
	k.handle(runeKey('j'))
	f := k.Next()
	if !f.JumpPressed || !f.PrimaryPressed || f.RollPressed {
		t.Fatalf("frame = %+v", f)
	}
	if f = k.Next(); f.JumpPressed || f.PrimaryPressed {
		t.Fatalf("presses should last one tick: %+v", f)
	}
	if k.handle(runeKey('z')) {
		t.Fatalf("unbound key reported as handled")
	}
}

func TestKeyStateBowToggles(t *testing.T) {
	var k keyState
	k.handle(runeKey('k'))
	f := k.Next()
	if !f.SecondaryPressed || !f.SecondaryHeld {
		t.Fatalf("first press should start the draw: %+v", f)
	}
	if f = k.Next(); f.SecondaryPressed || !f.SecondaryHeld {
		t.Fatalf("bow should stay held: %+v", f)
	}
	k.handle(runeKey('k'))
	if f = k.Next(); !f.SecondaryReleased || f.SecondaryHeld {
		t.Fatalf("second press should let go: %+v", f)
	}
}
