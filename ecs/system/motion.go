package system

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// MotionSystem integrates constant velocities.
type MotionSystem struct{}

func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

func (s *MotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach2(w, component.TransformKind, component.VelocityKind, func(_ ecs.Entity, t *component.Transform, v *component.Velocity) {
		t.Position = t.Position.Add(v.Linear.Mult(dt))
	})
}
