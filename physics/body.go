package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/component"
)

// Body is the movement provider for one actor: grounded check, horizontal
// move, vertical impulse, burst impulse and vertical velocity.
type Body struct {
	world  *World
	body   *cp.Body
	shape  *cp.Shape
	width  float64
	height float64

	faction    component.Faction
	gravity    bool
	collidable bool
	grounded   bool
	facingLeft bool
}

// SetData replaces the value overlap queries return for this body.
func (b *Body) SetData(data any) {
	if b == nil {
		return
	}
	b.body.UserData = data
	b.shape.UserData = data
}

// Grounded reports whether the body rests on the arena floor.
func (b *Body) Grounded() bool {
	return b != nil && b.grounded
}

// MoveX sets the horizontal velocity and turns the body toward it.
func (b *Body) MoveX(vx float64) {
	if b == nil {
		return
	}
	v := b.body.Velocity()
	b.body.SetVelocityVector(cp.Vector{X: vx, Y: v.Y})
	if vx > 0 {
		b.facingLeft = false
	} else if vx < 0 {
		b.facingLeft = true
	}
}

// Jump sets an upward vertical velocity.
func (b *Body) Jump(impulse float64) {
	if b == nil {
		return
	}
	v := b.body.Velocity()
	b.body.SetVelocityVector(cp.Vector{X: v.X, Y: impulse})
	b.grounded = false
}

// Burst sets the horizontal velocity without changing facing. Rolls and
// knockback use it.
func (b *Body) Burst(vx float64) {
	if b == nil {
		return
	}
	v := b.body.Velocity()
	b.body.SetVelocityVector(cp.Vector{X: vx, Y: v.Y})
}

// Velocity returns the current velocity.
func (b *Body) Velocity() cp.Vector {
	if b == nil {
		return cp.Vector{}
	}
	return b.body.Velocity()
}

// VelocityY returns the vertical velocity; negative values fall.
func (b *Body) VelocityY() float64 {
	return b.Velocity().Y
}

// Stop zeroes the velocity.
func (b *Body) Stop() {
	if b == nil {
		return
	}
	b.body.SetVelocityVector(cp.Vector{})
}

// Position returns the body centre.
func (b *Body) Position() cp.Vector {
	if b == nil {
		return cp.Vector{}
	}
	return b.body.Position()
}

// SetPosition teleports the body centre and reindexes its shape.
func (b *Body) SetPosition(p cp.Vector) {
	if b == nil {
		return
	}
	b.body.SetPosition(p)
	b.settle()
}

// Bottom returns the y coordinate of the body's feet.
func (b *Body) Bottom() float64 {
	return b.Position().Y - b.height/2
}

// GroundAltitude is the centre height of a body standing on the floor.
func (b *Body) GroundAltitude() float64 {
	if b == nil || b.world == nil {
		return 0
	}
	return b.world.cfg.FloorY + b.height/2
}

// Size returns width and height.
func (b *Body) Size() (w, h float64) {
	if b == nil {
		return 0, 0
	}
	return b.width, b.height
}

// Bounds returns the axis-aligned box of the body.
func (b *Body) Bounds() cp.BB {
	return cp.NewBBForExtents(b.Position(), b.width/2, b.height/2)
}

// FacingLeft reports the facing direction.
func (b *Body) FacingLeft() bool {
	return b != nil && b.facingLeft
}

// SetFacingLeft turns the body.
func (b *Body) SetFacingLeft(left bool) {
	if b == nil {
		return
	}
	b.facingLeft = left
}

// SetGravity toggles gravity integration. Scripted flight disables it.
func (b *Body) SetGravity(enabled bool) {
	if b == nil {
		return
	}
	b.gravity = enabled
}

// SetCollidable toggles whether overlap queries can find the body.
func (b *Body) SetCollidable(enabled bool) {
	if b == nil {
		return
	}
	b.collidable = enabled
	b.applyFilter()
	b.settle()
}

// Collidable reports whether overlap queries can find the body.
func (b *Body) Collidable() bool {
	return b != nil && b.collidable
}

func (b *Body) applyFilter() {
	if !b.collidable {
		b.shape.SetFilter(cp.ShapeFilter{Categories: 0, Mask: 0})
		return
	}
	b.shape.SetFilter(cp.ShapeFilter{Categories: uint(b.faction), Mask: allCategories})
}

func (b *Body) integrate(dt float64) {
	v := b.body.Velocity()
	if b.gravity {
		v.Y -= b.world.cfg.Gravity * dt
	}
	p := b.body.Position().Add(v.Mult(dt))
	b.body.SetPosition(p)
	b.body.SetVelocityVector(v)
	b.settle()
}

// settle clamps the body inside the arena, updates the grounded flag and
// refreshes the spatial index.
func (b *Body) settle() {
	if b.world == nil {
		return
	}
	cfg := b.world.cfg
	p := b.body.Position()
	v := b.body.Velocity()

	minX := cfg.MinX + b.width/2
	maxX := cfg.MaxX - b.width/2
	if maxX > minX {
		if p.X < minX {
			p.X = minX
			v.X = 0
		} else if p.X > maxX {
			p.X = maxX
			v.X = 0
		}
	}

	floor := cfg.FloorY + b.height/2
	b.grounded = false
	if p.Y <= floor {
		p.Y = floor
		if v.Y < 0 {
			v.Y = 0
		}
		b.grounded = b.gravity
	}
	if cfg.CeilingY > cfg.FloorY {
		ceil := cfg.CeilingY - b.height/2
		if p.Y > ceil {
			p.Y = ceil
			if v.Y > 0 {
				v.Y = 0
			}
		}
	}

	b.body.SetPosition(p)
	b.body.SetVelocityVector(v)
	b.reindex()
}

// reindex re-inserts the shape so the space's bounding-box tree matches the
// body's new transform. Must not be called from inside a space query.
func (b *Body) reindex() {
	space := b.world.space
	if b.shape.Space() != space {
		return
	}
	space.RemoveShape(b.shape)
	space.AddShape(b.shape)
}
