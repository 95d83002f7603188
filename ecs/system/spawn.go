package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// Spawn describes a projectile or area effect at creation time.
type Spawn struct {
	Tag      component.Tag
	Position cp.Vector
	Velocity cp.Vector
	Width    float64
	Height   float64
	Lifetime float64
	Attack   component.Attack
}

// SpawnAttack creates the entity described by sp and queues EventSpawned.
func SpawnAttack(w *ecs.World, sp Spawn) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	rotation := 0.0
	if sp.Velocity.LengthSq() > 0 {
		rotation = sp.Velocity.ToAngle()
	}
	atk := sp.Attack
	tag := sp.Tag

	if err := ecs.Add(w, e, component.TransformKind, &component.Transform{Position: sp.Position, Rotation: rotation}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.HitboxKind, &component.Hitbox{Width: sp.Width, Height: sp.Height}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.AttackKind, &atk); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TagKind, &tag); err != nil {
		return 0, err
	}
	if sp.Velocity.LengthSq() > 0 {
		if err := ecs.Add(w, e, component.VelocityKind, &component.Velocity{Linear: sp.Velocity}); err != nil {
			return 0, err
		}
	}
	if sp.Lifetime > 0 {
		if err := ecs.Add(w, e, component.LifetimeKind, &component.Lifetime{Remaining: sp.Lifetime}); err != nil {
			return 0, err
		}
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventSpawned, Entity: e, Data: tag})
	return e, nil
}
