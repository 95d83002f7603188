package component

import (
	combat "github.com/milk9111/bossfight/component"
)

// Attack carries the damage an entity deals on overlap. Values are copied
// from the spawner once; the entity never reads its owner's stats again.
type Attack struct {
	Source string
	// Owner is the spawning actor. It is never hit by its own attack. A nil
	// owner with a neutral faction hits every damageable target.
	Owner      any
	Faction    combat.Faction
	Damage     float64
	KnockbackX float64

	// OncePerTarget damages each target at most once. Otherwise a target
	// inside the hitbox is damaged again every Interval seconds.
	OncePerTarget bool
	Interval      float64
	// DestroyOnHit removes the entity on its first qualifying collision.
	DestroyOnHit bool
	// CollidesWithWorld removes the entity when it touches arena geometry.
	CollidesWithWorld bool

	elapsed float64
	struck  map[any]float64
}

var AttackKind = Register[Attack]("attack")

// Advance moves the attack's internal clock forward.
func (a *Attack) Advance(dt float64) {
	a.elapsed += dt
}

// Ready reports whether target may be struck now.
func (a *Attack) Ready(target any) bool {
	last, ok := a.struck[target]
	if !ok {
		return true
	}
	if a.OncePerTarget {
		return false
	}
	return a.elapsed-last >= a.Interval
}

// Record notes that target took damage now.
func (a *Attack) Record(target any) {
	if a.struck == nil {
		a.struck = make(map[any]float64)
	}
	a.struck[target] = a.elapsed
}

// Struck reports how many distinct targets took damage.
func (a *Attack) Struck() int {
	return len(a.struck)
}

// Hit builds the hit descriptor applied to a target.
func (a *Attack) Hit() combat.Hit {
	return combat.Hit{
		Source:     a.Source,
		Attacker:   a.Faction,
		Amount:     a.Damage,
		KnockbackX: a.KnockbackX,
	}
}
