package component

import "math"

// Faction identifies teams for friendly-fire checks. Values are bit
// categories so they double as chipmunk shape-filter categories.
type Faction uint

const (
	FactionNeutral Faction = 0
	FactionPlayer  Faction = 1 << 0
	FactionBoss    Faction = 1 << 1
	FactionWorld   Faction = 1 << 2
)

// DamageableFactions is the category mask of every faction that can take damage.
const DamageableFactions = FactionPlayer | FactionBoss

func (f Faction) String() string {
	switch f {
	case FactionNeutral:
		return "neutral"
	case FactionPlayer:
		return "player"
	case FactionBoss:
		return "boss"
	case FactionWorld:
		return "world"
	}
	return "mixed"
}

// Opponents returns the factions an attack owned by f may damage.
// A neutral (unresolved) owner may damage every damageable faction.
func (f Faction) Opponents() Faction {
	switch f {
	case FactionPlayer:
		return FactionBoss
	case FactionBoss:
		return FactionPlayer
	case FactionNeutral:
		return DamageableFactions
	}
	return 0
}

// CanHit reports whether an attack owned by attacker may damage target.
// Player attacks only harm the boss and the boss only harms the player.
// An attack without a resolvable owner hits unconditionally.
func CanHit(attacker, target Faction) bool {
	if attacker == FactionNeutral {
		return target&DamageableFactions != 0
	}
	return attacker.Opponents()&target != 0
}

// Hit describes one application of damage.
type Hit struct {
	Source     string
	Attacker   Faction
	Amount     float64
	KnockbackX float64
}

// Target is anything the damage-apply contract can mutate.
type Target interface {
	Faction() Faction
	HealthStat() *Stat[float64]
	// Vulnerable is false while the target ignores damage (dying, reacting
	// to a hit, rolling, airborne).
	Vulnerable() bool
}

// Knockbackable targets accept a horizontal impulse after a landed hit.
type Knockbackable interface {
	Knockback(vx float64)
}

// ApplyDamage is the single damage-apply contract shared by melee strikes,
// projectiles and area effects. It is a no-op when the target is already at
// or below zero health or is not vulnerable. Otherwise Amount is subtracted
// from the health stat, whose listeners drive the Hit/Die reaction.
// Amounts that are not positive and finite are dropped. It reports whether
// damage was applied.
func ApplyDamage(t Target, amount float64) bool {
	if t == nil || !(amount > 0) || math.IsInf(amount, 1) {
		return false
	}
	hp := t.HealthStat()
	if hp == nil || hp.Get() <= 0 || !t.Vulnerable() {
		return false
	}
	hp.Set(hp.Get() - amount)
	return true
}

// ApplyHit applies h through ApplyDamage and, if it landed, the knockback.
func ApplyHit(t Target, h Hit) bool {
	if !ApplyDamage(t, h.Amount) {
		return false
	}
	if h.KnockbackX != 0 {
		if kb, ok := t.(Knockbackable); ok {
			kb.Knockback(h.KnockbackX)
		}
	}
	return true
}
