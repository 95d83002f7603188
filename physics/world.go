// Package physics is the movement and spatial-query provider for the
// combat core. Actors are chipmunk kinematic bodies integrated by hand each
// tick inside a walled arena; their sensor shapes carry faction categories
// so overlap queries can be filtered by team.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/component"
)

const allCategories = ^uint(0)

// Config describes the arena and the global movement constants.
type Config struct {
	Gravity float64 `yaml:"gravity"`
	FloorY  float64 `yaml:"floor_y"`
	MinX    float64 `yaml:"min_x"`
	MaxX    float64 `yaml:"max_x"`
	// CeilingY above FloorY adds a ceiling segment; zero leaves the arena open.
	CeilingY float64 `yaml:"ceiling_y"`
}

type worldMarker struct{}

// World owns the chipmunk space, the static arena geometry and every actor body.
type World struct {
	cfg    Config
	space  *cp.Space
	bodies []*Body
}

// NewWorld creates a world with floor and wall segments.
func NewWorld(cfg Config) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})

	w := &World{cfg: cfg, space: space}
	w.buildArena()
	return w
}

// Config returns the arena configuration.
func (w *World) Config() Config {
	return w.cfg
}

// Space returns the underlying chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) buildArena() {
	top := w.cfg.CeilingY
	if top <= w.cfg.FloorY {
		top = w.cfg.FloorY + 10000
	}
	segments := []struct {
		a, b cp.Vector
	}{
		{a: cp.Vector{X: w.cfg.MinX, Y: w.cfg.FloorY}, b: cp.Vector{X: w.cfg.MaxX, Y: w.cfg.FloorY}},
		{a: cp.Vector{X: w.cfg.MinX, Y: w.cfg.FloorY}, b: cp.Vector{X: w.cfg.MinX, Y: top}},
		{a: cp.Vector{X: w.cfg.MaxX, Y: w.cfg.FloorY}, b: cp.Vector{X: w.cfg.MaxX, Y: top}},
	}
	if w.cfg.CeilingY > w.cfg.FloorY {
		segments = append(segments, struct{ a, b cp.Vector }{
			a: cp.Vector{X: w.cfg.MinX, Y: top},
			b: cp.Vector{X: w.cfg.MaxX, Y: top},
		})
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, 0)
		shape.SetSensor(true)
		shape.SetFilter(cp.ShapeFilter{Categories: uint(component.FactionWorld), Mask: allCategories})
		shape.UserData = worldMarker{}
		w.space.AddShape(shape)
	}
}

// NewBody adds an actor body centred on pos. data is returned by overlap
// queries that hit the body.
func (w *World) NewBody(pos cp.Vector, width, height float64, faction component.Faction, data any) *Body {
	cb := cp.NewKinematicBody()
	cb.SetPosition(pos)
	cb.UserData = data

	shape := cp.NewBox(cb, width, height, 0)
	shape.SetSensor(true)
	shape.UserData = data

	b := &Body{
		world:      w,
		body:       cb,
		shape:      shape,
		width:      width,
		height:     height,
		faction:    faction,
		gravity:    true,
		collidable: true,
	}
	b.applyFilter()

	w.space.AddBody(cb)
	w.space.AddShape(shape)
	w.bodies = append(w.bodies, b)
	b.settle()
	return b
}

// RemoveBody detaches a body from the world.
func (w *World) RemoveBody(b *Body) {
	if w == nil || b == nil || b.world != w {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	b.world = nil
}

// Step integrates every body by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		b.integrate(dt)
	}
}

// QueryBB returns the distinct user data of every shape overlapping bb that
// passes filter. Arena geometry is never returned.
func (w *World) QueryBB(bb cp.BB, filter cp.ShapeFilter) []any {
	if w == nil {
		return nil
	}
	var out []any
	seen := make(map[any]bool)
	w.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		data := shape.UserData
		if data == nil || seen[data] {
			return
		}
		if _, ok := data.(worldMarker); ok {
			return
		}
		seen[data] = true
		out = append(out, data)
	}, nil)
	return out
}

// HitsWorld reports whether bb touches the arena floor, walls or ceiling.
func (w *World) HitsWorld(bb cp.BB) bool {
	if w == nil {
		return false
	}
	hit := false
	filter := cp.ShapeFilter{Categories: allCategories, Mask: uint(component.FactionWorld)}
	w.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		if _, ok := shape.UserData.(worldMarker); ok {
			hit = true
		}
	}, nil)
	return hit
}
