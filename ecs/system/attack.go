package system

import (
	"github.com/jakecoffman/cp"
	combat "github.com/milk9111/bossfight/component"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// Space is the collision capability attacks are resolved against.
type Space interface {
	QueryBB(bb cp.BB, filter cp.ShapeFilter) []any
	HitsWorld(bb cp.BB) bool
}

// HitReport is the payload of EventHit.
type HitReport struct {
	Target combat.Target
	Hit    combat.Hit
	Landed bool
}

// AttackSystem resolves overlaps between attack entities and damageable
// targets. A collision qualifies only when the attack's faction may harm the
// target; non-qualifying overlaps neither damage nor consume the attack.
type AttackSystem struct {
	space Space
}

func NewAttackSystem(space Space) *AttackSystem {
	return &AttackSystem{space: space}
}

func (s *AttackSystem) Update(w *ecs.World) {
	if w == nil || s.space == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach3(w, component.AttackKind, component.TransformKind, component.HitboxKind, func(e ecs.Entity, atk *component.Attack, t *component.Transform, hb *component.Hitbox) {
		atk.Advance(dt)
		bb := hb.Bounds(t.Position)

		if s.strike(w, e, atk, bb) && atk.DestroyOnHit {
			w.Events().Push(ecs.Event{Kind: ecs.EventDestroyed, Entity: e})
			ecs.DestroyEntity(w, e)
			return
		}

		if atk.CollidesWithWorld && s.space.HitsWorld(bb) {
			w.Events().Push(ecs.Event{Kind: ecs.EventWorldHit, Entity: e})
			ecs.DestroyEntity(w, e)
		}
	})
}

// strike damages qualifying targets and reports whether any collision qualified.
func (s *AttackSystem) strike(w *ecs.World, e ecs.Entity, atk *component.Attack, bb cp.BB) bool {
	qualified := false
	for _, data := range s.space.QueryBB(bb, combat.QueryFilter(atk.Faction)) {
		if atk.Owner != nil && data == atk.Owner {
			continue
		}
		target, ok := data.(combat.Target)
		if !ok || !combat.CanHit(atk.Faction, target.Faction()) {
			continue
		}
		qualified = true
		if !atk.Ready(data) {
			continue
		}

		hit := atk.Hit()
		hit.KnockbackX = knockbackToward(w, e, hit.KnockbackX)
		landed := combat.ApplyHit(target, hit)
		if landed {
			atk.Record(data)
		}
		w.Events().Push(ecs.Event{Kind: ecs.EventHit, Entity: e, Data: HitReport{Target: target, Hit: hit, Landed: landed}})
		if atk.DestroyOnHit {
			break
		}
	}
	return qualified
}

// knockbackToward orients a knockback magnitude along the attack's travel.
func knockbackToward(w *ecs.World, e ecs.Entity, magnitude float64) float64 {
	if magnitude == 0 {
		return 0
	}
	v, ok := ecs.Get(w, e, component.VelocityKind)
	if !ok || v.Linear.X == 0 {
		return magnitude
	}
	if v.Linear.X < 0 {
		return -magnitude
	}
	return magnitude
}
