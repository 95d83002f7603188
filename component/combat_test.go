package component

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

type dummy struct {
	faction    Faction
	hp         *Health
	vulnerable bool
	knockback  float64
	hits       int
}

func newDummy(f Faction, hp float64) *dummy {
	d := &dummy{faction: f, hp: NewHealth(hp), vulnerable: true}
	d.hp.OnChange(func(_, _ float64) { d.hits++ })
	return d
}

func (d *dummy) Faction() Faction { return d.faction }
func (d *dummy) HealthStat() *Stat[float64] { return d.hp.Stat }
func (d *dummy) Vulnerable() bool { return d.vulnerable }
func (d *dummy) Knockback(vx float64) { d.knockback += vx }

type listQuery struct {
	items  []any
	filter cp.ShapeFilter
}

func (q *listQuery) QueryBB(_ cp.BB, filter cp.ShapeFilter) []any {
	q.filter = filter
	return q.items
}

func TestCanHit(t *testing.T) {
	cases := []struct {
		attacker, target Faction
		want             bool
	}{
		{FactionPlayer, FactionBoss, true},
		{FactionBoss, FactionPlayer, true},
		{FactionPlayer, FactionPlayer, false},
		{FactionBoss, FactionBoss, false},
		{FactionNeutral, FactionPlayer, true},
		{FactionNeutral, FactionBoss, true},
		{FactionPlayer, FactionWorld, false},
	}
	for _, c := range cases {
		if got := CanHit(c.attacker, c.target); got != c.want {
			t.Fatalf("CanHit(%v,%v) = %v, want %v", c.attacker, c.target, got, c.want)
		}
	}
}

func TestApplyDamage(t *testing.T) {
	t.Run("applies_and_notifies", func(t *testing.T) {
		d := newDummy(FactionBoss, 500)
		if !ApplyDamage(d, 600) {
			t.Fatalf("expected damage to land")
		}
		if d.hp.Get() != -100 {
			t.Fatalf("hp = %v, want -100", d.hp.Get())
		}
		if ApplyDamage(d, 50) {
			t.Fatalf("damage at or below zero health must be dropped")
		}
		if d.hp.Get() != -100 || d.hits != 1 {
			t.Fatalf("hp=%v hits=%d after dropped damage", d.hp.Get(), d.hits)
		}
	})
	t.Run("invulnerable", func(t *testing.T) {
		d := newDummy(FactionPlayer, 100)
		d.vulnerable = false
		if ApplyDamage(d, 30) || d.hp.Get() != 100 {
			t.Fatalf("invulnerable target took damage")
		}
	})
	t.Run("non_positive_amount", func(t *testing.T) {
		d := newDummy(FactionPlayer, 100)
		if ApplyDamage(d, 0) || ApplyDamage(d, -5) || d.hp.Get() != 100 {
			t.Fatalf("non-positive damage must be ignored")
		}
	})
	t.Run("non_finite_amount", func(t *testing.T) {
		d := newDummy(FactionPlayer, 100)
		for _, amt := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			if ApplyDamage(d, amt) {
				t.Fatalf("ApplyDamage(%v) landed", amt)
			}
		}
		if d.hp.Get() != 100 || d.hits != 0 {
			t.Fatalf("hp=%v hits=%d after non-finite damage", d.hp.Get(), d.hits)
		}
	})
	t.Run("monotonic", func(t *testing.T) {
		d := newDummy(FactionPlayer, 100)
		prev := d.hp.Get()
		for _, amt := range []float64{5, 0, 12, -3, 40, 1} {
			ApplyDamage(d, amt)
			if d.hp.Get() > prev {
				t.Fatalf("health increased from %v to %v", prev, d.hp.Get())
			}
			prev = d.hp.Get()
		}
	})
}

func TestMeleeWindowFiresOnce(t *testing.T) {
	w := MeleeWindow{Start: 0.1, End: 0.3}
	fired := 0
	for elapsed := 0.0; elapsed < 0.5; elapsed += 1.0 / 60 {
		if w.Try(elapsed) {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}
	w.Begin()
	if w.Fired() || !w.Try(0.2) {
		t.Fatalf("window should re-arm on Begin")
	}
}

func TestCombatResolverMelee(t *testing.T) {
	boss := newDummy(FactionBoss, 100)
	other := newDummy(FactionBoss, 100)
	friend := newDummy(FactionPlayer, 100)
	q := &listQuery{items: []any{friend, "noise", boss, other}}

	r := NewCombatResolver(q, false)
	landed := r.Melee(cp.BB{}, Hit{Attacker: FactionPlayer, Amount: 10, KnockbackX: 5})
	if len(landed) != 1 || landed[0] != boss {
		t.Fatalf("expected only the first qualifying target, got %v", landed)
	}
	if friend.hp.Get() != 100 {
		t.Fatalf("friendly fire applied")
	}
	if boss.knockback != 5 {
		t.Fatalf("knockback = %v, want 5", boss.knockback)
	}
	if q.filter.Mask != uint(FactionBoss) {
		t.Fatalf("query mask = %b, want boss category", q.filter.Mask)
	}

	r.HitAll = true
	landed = r.Melee(cp.BB{}, Hit{Attacker: FactionPlayer, Amount: 10})
	if len(landed) != 2 {
		t.Fatalf("hit-all should damage both bosses, got %d", len(landed))
	}
}
