package actor

import (
	"math"
	"testing"

	"github.com/milk9111/bossfight/component"
	ecscomp "github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/event"
	"github.com/milk9111/bossfight/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bossRig(t *testing.T, bossX, playerX float64, mutate func(*rigOptions)) *rig {
	t.Helper()
	opts := defaultRig()
	opts.bossX = bossX
	opts.playerX = playerX
	if mutate != nil {
		mutate(&opts)
	}
	return newRig(t, opts)
}

func TestBossLethalDamageDiesOnce(t *testing.T) {
	r := bossRig(t, 5, 0, nil)

	require.True(t, r.boss.ApplyDamage(600))
	assert.Equal(t, -100.0, r.boss.HealthStat().Get())
	assert.Equal(t, BossDie, r.boss.State())
	assert.Equal(t, 1, r.deaths.boss)

	assert.False(t, r.boss.ApplyDamage(50))
	assert.Equal(t, -100.0, r.boss.HealthStat().Get())
	assert.Equal(t, 1, r.deaths.boss)
	assert.Len(t, r.rec.Filter(event.TypeDied, event.ActorBoss), 1)

	r.boss.FlyingCooldown().Clear()
	r.tickBoss()
	assert.Equal(t, BossDie, r.boss.State())
}

func TestBossDetectsPlayer(t *testing.T) {
	cases := []struct {
		name  string
		bossX float64
		want  BossState
	}{
		{"in_range", 10, BossChase},
		{"out_of_range", 18, BossIdle},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := bossRig(t, c.bossX, -2, nil)
			r.tickBoss()
			assert.Equal(t, c.want, r.boss.State())
		})
	}
}

func TestBossChaseClosesDistance(t *testing.T) {
	r := bossRig(t, 10, 0, nil)
	r.tickBoss()
	r.tickBoss()
	require.Equal(t, BossChase, r.boss.State())
	assert.InDelta(t, -3, r.boss.Body().Velocity().X, 1e-9)
	assert.True(t, r.boss.Body().FacingLeft())
}

func TestBossChoosesAttackByDistance(t *testing.T) {
	cases := []struct {
		name  string
		bossX float64
		want  BossState
	}{
		{"ranged", 5, BossRangedAttack},
		{"melee", 2, BossMeleeAttack},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := bossRig(t, c.bossX, 0, nil)
			r.tickBoss()
			r.tickBoss()
			assert.Equal(t, c.want, r.boss.State())
			assert.Equal(t, []string{"Idle", "Chase", "ChooseAttack", string(c.want)}, r.rec.States(event.ActorBoss))
		})
	}
}

func TestBossChooseAttackDelay(t *testing.T) {
	r := bossRig(t, 5, 0, func(o *rigOptions) { o.policy.ChooseAttackDelay = 0.25 })
	r.tickBoss()
	r.tickBoss()
	require.Equal(t, BossChooseAttack, r.boss.State())

	n := until(t, 60, r.tickBoss, func() bool { return r.boss.State() != BossChooseAttack })
	assert.InDelta(t, 15, n, 1)
	assert.Equal(t, BossRangedAttack, r.boss.State())
}

func TestBossRangedFiresOneBolt(t *testing.T) {
	r := bossRig(t, 5, 0, nil)
	r.tickBoss()
	r.tickBoss()
	require.Equal(t, BossRangedAttack, r.boss.State())

	n := until(t, 60, r.tickBoss, func() bool { return len(r.spawns.of(ecscomp.KindBossBolt)) > 0 })
	assert.InDelta(t, 30, n, 1)

	bolt := r.spawns.of(ecscomp.KindBossBolt)[0]
	assert.InDelta(t, -10, bolt.Velocity.X, 1e-9)
	assert.Equal(t, 20.0, bolt.Attack.Damage)
	assert.Equal(t, component.FactionBoss, bolt.Attack.Faction)
	assert.Same(t, r.boss, bolt.Attack.Owner)
	assert.True(t, bolt.Attack.OncePerTarget)
	assert.False(t, bolt.Attack.DestroyOnHit)
	assert.False(t, r.boss.GeneralCooldown().Ready())
	assert.InDelta(t, 3, r.boss.GeneralCooldown().Remaining(), 1e-9)

	until(t, 120, r.tickBoss, func() bool { return r.boss.State() == BossIdle })
	assert.Len(t, r.spawns.of(ecscomp.KindBossBolt), 1)
}

func TestBossMeleeHitKnocksPlayerBack(t *testing.T) {
	r := bossRig(t, 2, 0, nil)

	until(t, 120, func() { r.tick(input.Frame{}) }, func() bool {
		return r.player.HealthStat().Get() < 100
	})
	assert.Equal(t, 80.0, r.player.HealthStat().Get())
	assert.Equal(t, PlayerHit, r.player.State())
	assert.InDelta(t, -5, r.player.Body().Velocity().X, 1e-9)
	assert.Equal(t, BossMeleeAttack, r.boss.State())
	assert.False(t, r.boss.GeneralCooldown().Ready())

	until(t, 120, func() { r.tick(input.Frame{}) }, func() bool {
		return r.boss.State() != BossMeleeAttack
	})
	assert.Equal(t, 80.0, r.player.HealthStat().Get())
}

func TestBossMeleeMissCooldownPolicy(t *testing.T) {
	cases := []struct {
		name  string
		reset bool
	}{
		{"reset_on_miss", true},
		{"keep_ready_on_miss", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := bossRig(t, 2, 0, func(o *rigOptions) { o.policy.MeleeResetCooldownOnMiss = c.reset })
			r.tickBoss()
			r.tickBoss()
			require.Equal(t, BossMeleeAttack, r.boss.State())

			r.player.Body().SetPosition(r.player.Position().Sub(cpX(10)))
			until(t, 120, r.tickBoss, func() bool { return r.boss.State() != BossMeleeAttack })

			assert.Equal(t, 100.0, r.player.HealthStat().Get())
			assert.Equal(t, !c.reset, r.boss.GeneralCooldown().Ready())
		})
	}
}

func TestBossHitReaction(t *testing.T) {
	cases := []struct {
		name    string
		bossX   float64
		playerX float64
		want    BossState
	}{
		{"player_near", 5, 0, BossChase},
		{"player_far", 18, -5, BossIdle},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := bossRig(t, c.bossX, c.playerX, nil)
			require.True(t, r.boss.ApplyDamage(10))
			assert.Equal(t, BossHit, r.boss.State())
			assert.False(t, r.boss.ApplyDamage(10))
			assert.Equal(t, 490.0, r.boss.HealthStat().Get())

			n := until(t, 60, r.tickBoss, func() bool { return r.boss.State() != BossHit })
			assert.InDelta(t, 30, n, 1)
			assert.Equal(t, c.want, r.boss.State())
		})
	}
}

func TestBossPrefersFlyingOverFlame(t *testing.T) {
	r := bossRig(t, 5, 0, nil)
	r.boss.FlyingCooldown().Clear()
	r.boss.FlameCooldown().Reset(5)

	r.tickBoss()
	assert.Equal(t, BossFlyingSkill, r.boss.State())
	assert.False(t, r.boss.FlyingCooldown().Ready())
}

func TestBossFlameCastsFourPillars(t *testing.T) {
	r := bossRig(t, 5, 0, nil)
	r.boss.FlameCooldown().Clear()

	r.tickBoss()
	require.Equal(t, BossFlameSkill, r.boss.State())

	n := until(t, 120, r.tickBoss, func() bool { return len(r.spawns.of(ecscomp.KindFlamePillar)) > 0 })
	assert.InDelta(t, 60, n, 1)

	pillars := r.spawns.of(ecscomp.KindFlamePillar)
	require.Len(t, pillars, 4)
	var xs []float64
	for _, p := range pillars {
		xs = append(xs, p.Position.X)
		assert.True(t, p.Tag.Effect)
		assert.Zero(t, p.Velocity.LengthSq())
		assert.Equal(t, 20.0, p.Attack.Damage)
		assert.Equal(t, 0.5, p.Attack.Interval)
	}
	assert.ElementsMatch(t, []float64{3, 1.5, 7, 8.5}, xs)
	assert.InDelta(t, 20, r.boss.FlameCooldown().Remaining(), 1e-9)

	until(t, 120, r.tickBoss, func() bool { return r.boss.State() == BossIdle })
	assert.Len(t, r.spawns.of(ecscomp.KindFlamePillar), 4)
}

func TestBossPassiveWithoutOpponent(t *testing.T) {
	r := bossRig(t, 5, 0, nil)
	r.boss.SetOpponent(nil)
	r.boss.FlyingCooldown().Clear()
	r.boss.FlameCooldown().Clear()

	for i := 0; i < 10; i++ {
		r.tickBoss()
	}
	assert.Equal(t, BossIdle, r.boss.State())
	assert.Equal(t, []string{"Idle"}, r.rec.States(event.ActorBoss))
}

func TestBossStandsDownWhenPlayerDies(t *testing.T) {
	r := bossRig(t, 5, 0, func(o *rigOptions) { o.boss.GeneralCooldownStart = 10 })
	r.tickBoss()
	require.Equal(t, BossChase, r.boss.State())

	require.True(t, r.player.ApplyDamage(500))
	r.boss.FlyingCooldown().Clear()
	r.tickBoss()
	assert.Equal(t, BossIdle, r.boss.State())
	r.tickBoss()
	assert.Equal(t, BossIdle, r.boss.State())
}

func TestBossFlightSequence(t *testing.T) {
	r := bossRig(t, 5, 0, func(o *rigOptions) { o.boss.Flight.Duration = 2 })
	ground := r.boss.Body().GroundAltitude()
	r.boss.FlyingCooldown().Clear()

	r.tickBoss()
	require.Equal(t, BossFlyingSkill, r.boss.State())
	assert.Equal(t, FlightAscend, r.boss.Flight().Phase())

	sawBarrage := false
	minX, maxX := math.Inf(1), math.Inf(-1)
	until(t, 600, func() {
		r.tickBoss()
		if r.boss.Flight().Phase() != FlightBarrage {
			return
		}
		pos := r.boss.Position()
		if !sawBarrage {
			sawBarrage = true
			assert.InDelta(t, ground+5, pos.Y, 1e-9)
			assert.False(t, r.boss.Vulnerable())
			assert.False(t, r.boss.ApplyDamage(10))
		}
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
	}, func() bool { return r.boss.State() == BossIdle })

	require.True(t, sawBarrage)
	assert.Equal(t, 500.0, r.boss.HealthStat().Get())
	assert.GreaterOrEqual(t, minX, 0.0-1e-9)
	assert.LessOrEqual(t, maxX, 10.0+1e-9)
	assert.InDelta(t, ground, r.boss.Position().Y, 1e-9)
	assert.False(t, r.boss.Flight().Running())

	drops := r.spawns.of(ecscomp.KindFireRain)
	assert.GreaterOrEqual(t, len(drops), 4)
	assert.LessOrEqual(t, len(drops), 5)
	for _, d := range drops {
		assert.InDelta(t, -10, d.Velocity.Y, 1e-9)
		assert.InDelta(t, ground+5-0.5, d.Position.Y, 1e-9)
		assert.True(t, d.Attack.CollidesWithWorld)
	}

	var phases []string
	for _, e := range r.rec.Filter(event.TypeFlightPhase, event.ActorBoss) {
		phases = append(phases, e.State)
	}
	assert.Equal(t, []string{"ascend", "barrage", "descend", "grounded"}, phases)

	r.tickBoss()
	assert.True(t, r.boss.Body().Grounded())
}

func TestBossFlightCancelledByPhaseChange(t *testing.T) {
	script, err := CompilePhaseScript([]byte(`if phase == 0 && elapsed >= 2.0 { next_phase = 1 }`))
	require.NoError(t, err)
	phases := NewPhaseController([]PhaseConfig{
		{Name: "opening", HPTrigger: 1},
		{Name: "enraged", CancelFlight: true},
	}, script)

	r := bossRig(t, 5, 0, func(o *rigOptions) { o.phases = phases })
	ground := r.boss.Body().GroundAltitude()
	r.boss.FlyingCooldown().Clear()
	r.tickBoss()
	require.Equal(t, BossFlyingSkill, r.boss.State())

	until(t, 300, r.tickBoss, func() bool { return r.boss.Flight().Phase() == FlightForcedDescend })
	assert.Equal(t, 1, r.boss.Phase())
	assert.Greater(t, r.boss.Position().Y, ground)
	assert.True(t, r.boss.Vulnerable(), "a forced landing can be punished")

	n := until(t, 120, r.tickBoss, func() bool { return r.boss.State() == BossIdle })
	assert.InDelta(t, 30, n, 2)
	assert.InDelta(t, ground, r.boss.Position().Y, 1e-9)

	changed := r.rec.Filter(event.TypePhaseChanged, event.ActorBoss)
	require.Len(t, changed, 1)
	assert.Equal(t, "enraged", changed[0].State)
}

func TestBossDiesMidFlightOnTheGround(t *testing.T) {
	r := bossRig(t, 5, 0, nil)
	ground := r.boss.Body().GroundAltitude()
	r.boss.FlyingCooldown().Clear()
	r.tickBoss()
	until(t, 300, r.tickBoss, func() bool { return r.boss.Flight().Phase() == FlightBarrage })

	r.boss.Flight().Cancel()
	r.tickBoss()
	require.True(t, r.boss.ApplyDamage(1000))
	assert.Equal(t, BossDie, r.boss.State())
	assert.InDelta(t, ground, r.boss.Position().Y, 1e-9)
	assert.False(t, r.boss.Flight().Running())
}

func TestBossForcedOutOfFlightLandsIntoIdle(t *testing.T) {
	r := bossRig(t, 5, 0, nil)
	ground := r.boss.Body().GroundAltitude()
	r.boss.FlyingCooldown().Clear()
	r.tickBoss()
	require.Equal(t, BossFlyingSkill, r.boss.State())
	for i := 0; i < 10; i++ {
		r.tickBoss()
	}
	require.Equal(t, FlightAscend, r.boss.Flight().Phase())
	require.Greater(t, r.boss.Position().Y, ground)

	r.boss.GeneralCooldown().Reset(100)
	r.boss.FlameCooldown().Reset(100)
	r.rec.Reset()
	require.True(t, r.boss.ChangeState(BossChase))
	assert.Equal(t, FlightForcedDescend, r.boss.Flight().Phase())

	until(t, 60, r.tickBoss, func() bool { return !r.boss.Flight().Running() })
	assert.InDelta(t, ground, r.boss.Position().Y, 1e-9)

	var trail []string
	for _, e := range r.rec.Events() {
		switch e.Type {
		case event.TypeFlightPhase:
			trail = append(trail, "flight:"+e.State)
		case event.TypeStateEntered:
			trail = append(trail, e.State)
		}
	}
	require.GreaterOrEqual(t, len(trail), 4)
	assert.Equal(t, []string{"flight:forced_descend", "Chase", "flight:grounded", "Idle"}, trail[:4])
}
