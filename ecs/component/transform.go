package component

import "github.com/jakecoffman/cp"

// Transform is the world-space centre of an entity. Rotation is in radians
// and only matters to renderers.
type Transform struct {
	Position cp.Vector
	Rotation float64
}

var TransformKind = Register[Transform]("transform")

// Velocity is a constant linear velocity in world units per second.
type Velocity struct {
	Linear cp.Vector
}

var VelocityKind = Register[Velocity]("velocity")

// Hitbox is an axis-aligned box centred on the Transform.
type Hitbox struct {
	Width  float64
	Height float64
}

func (h Hitbox) Bounds(center cp.Vector) cp.BB {
	return cp.NewBBForExtents(center, h.Width/2, h.Height/2)
}

var HitboxKind = Register[Hitbox]("hitbox")
