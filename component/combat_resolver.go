package component

import "github.com/jakecoffman/cp"

const allCategories = ^uint(0)

// AreaQuery finds the user data of every collidable shape overlapping bb
// that passes filter.
type AreaQuery interface {
	QueryBB(bb cp.BB, filter cp.ShapeFilter) []any
}

// QueryFilter builds the shape filter for an attack owned by attacker.
func QueryFilter(attacker Faction) cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      0,
		Categories: allCategories,
		Mask:       uint(attacker.Opponents()),
	}
}

// MeleeWindow gates the overlap query of a melee strike so it fires at
// most once per activation, on the first tick inside [Start, End].
type MeleeWindow struct {
	Start float64
	End   float64
	fired bool
}

// Begin re-arms the window for a new activation.
func (w *MeleeWindow) Begin() {
	w.fired = false
}

// Try reports true exactly once per activation while elapsed is inside the window.
func (w *MeleeWindow) Try(elapsed float64) bool {
	if w.fired || elapsed < w.Start || elapsed > w.End {
		return false
	}
	w.fired = true
	return true
}

// Fired reports whether the window already fired this activation.
func (w *MeleeWindow) Fired() bool {
	return w.fired
}

// Closed reports whether elapsed is past the end of the window.
func (w *MeleeWindow) Closed(elapsed float64) bool {
	return elapsed > w.End
}

// CombatResolver runs overlap queries and funnels every qualifying target
// through ApplyHit.
type CombatResolver struct {
	Space AreaQuery
	// HitAll damages every qualifying target instead of only the first.
	HitAll bool
	// OnHit is called after damage lands.
	OnHit func(t Target, h Hit)
}

// NewCombatResolver creates a resolver over space.
func NewCombatResolver(space AreaQuery, hitAll bool) *CombatResolver {
	return &CombatResolver{Space: space, HitAll: hitAll}
}

// Melee queries area for targets the attacker may harm and applies h.
// It returns the targets that took damage.
func (r *CombatResolver) Melee(area cp.BB, h Hit) []Target {
	if r == nil || r.Space == nil {
		return nil
	}
	var landed []Target
	for _, data := range r.Space.QueryBB(area, QueryFilter(h.Attacker)) {
		t, ok := data.(Target)
		if !ok || !CanHit(h.Attacker, t.Faction()) {
			continue
		}
		if !ApplyHit(t, h) {
			continue
		}
		landed = append(landed, t)
		if r.OnHit != nil {
			r.OnHit(t, h)
		}
		if !r.HitAll {
			break
		}
	}
	return landed
}
