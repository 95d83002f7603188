package system

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// LifetimeSystem counts lifetimes down and destroys entities that expire.
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

func (s *LifetimeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach(w, component.LifetimeKind, func(e ecs.Entity, life *component.Lifetime) {
		life.Remaining -= dt
		if life.Remaining > 0 {
			return
		}
		w.Events().Push(ecs.Event{Kind: ecs.EventExpired, Entity: e})
		ecs.DestroyEntity(w, e)
	})
}
