package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/input"
)

// stickAimReach is how far from the player, in arena units, the right stick
// places the aim point.
const stickAimReach = 6

// Controls polls keyboard, mouse and the first gamepad into one input.Frame
// per tick.
type Controls struct {
	camera *Camera
	bow    input.Edges
	// origin is where stick aim is measured from, usually the player.
	origin func() cp.Vector
}

func NewControls(camera *Camera, origin func() cp.Vector) *Controls {
	return &Controls{camera: camera, origin: origin}
}

func (c *Controls) Next() input.Frame {
	var f input.Frame

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		f.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		f.MoveX += 1
	}

	mx, my := ebiten.CursorPosition()
	f.Aim = c.camera.ToWorld(float64(mx), float64(my))
	f.HasAim = true

	f.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW)
	f.RollPressed = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft)
	f.PrimaryPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeyJ)
	bowHeld := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) || ebiten.IsKeyPressed(ebiten.KeyK)

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			f.MoveX = -1
		} else if leftX > 0.3 {
			f.MoveX = 1
		}

		f.JumpPressed = f.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		f.RollPressed = f.RollPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightRight)
		f.PrimaryPressed = f.PrimaryPressed ||
			inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight) ||
			inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		bowHeld = bowHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)

		rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)
		if mag := math.Hypot(rx, ry); mag > 0.1 && c.origin != nil {
			// screen y grows down, arena y grows up
			f.Aim = c.origin().Add(cp.Vector{X: rx / mag, Y: -ry / mag}.Mult(stickAimReach))
		}
	}

	f.SecondaryPressed, f.SecondaryHeld, f.SecondaryReleased = c.bow.Update(bowHeld)
	return f
}
