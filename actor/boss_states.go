package actor

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/component"
	ecscomp "github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/system"
	"github.com/milk9111/bossfight/event"
)

type bossIdleState struct{}

func (bossIdleState) Enter(b *Boss) {}
func (bossIdleState) Execute(b *Boss) {
	b.stand()
	if b.escalate() {
		return
	}
	if b.inDetection() {
		b.machine.ChangeState(BossChase)
	}
}
func (bossIdleState) Exit(b *Boss) {}

type bossChaseState struct{}

func (bossChaseState) Enter(b *Boss) {}
func (bossChaseState) Execute(b *Boss) {
	dist := b.distance()
	if dist > b.cfg.DetectionRange {
		b.machine.ChangeState(BossIdle)
		return
	}
	if b.escalate() {
		return
	}
	if b.generalCD.Ready() && dist <= b.cfg.RangedThreshold {
		b.machine.ChangeState(BossChooseAttack)
		return
	}
	if b.body == nil {
		return
	}
	if dist > b.cfg.MaintainDistance {
		dir := common.Sign(b.opponent.Position().X - b.Position().X)
		b.body.MoveX(dir * b.cfg.MoveSpeed)
		return
	}
	b.stand()
}
func (bossChaseState) Exit(b *Boss) {}

// bossChooseAttackState picks ranged or melee by distance. With no delay the
// decision happens inside Enter and the state is never observed by a tick.
type bossChooseAttackState struct {
	elapsed float64
}

func (s *bossChooseAttackState) Enter(b *Boss) {
	s.elapsed = 0
	b.stand()
	if b.policy.ChooseAttackDelay <= 0 {
		s.decide(b)
	}
}

func (s *bossChooseAttackState) Execute(b *Boss) {
	s.elapsed += b.dt
	if s.elapsed >= b.policy.ChooseAttackDelay {
		s.decide(b)
	}
}

func (s *bossChooseAttackState) Exit(b *Boss) {}

func (s *bossChooseAttackState) decide(b *Boss) {
	dist := b.distance()
	switch {
	case !b.hasOpponent() || dist > b.cfg.DetectionRange:
		b.machine.ChangeState(BossIdle)
	case dist > b.cfg.MaintainDistance:
		b.machine.ChangeState(BossRangedAttack)
	default:
		b.machine.ChangeState(BossMeleeAttack)
	}
}

type bossRangedState struct {
	elapsed float64
	fired   bool
}

func (s *bossRangedState) Enter(b *Boss) {
	s.elapsed = 0
	s.fired = false
	b.stand()
}

func (s *bossRangedState) Execute(b *Boss) {
	cfg := b.cfg.Ranged
	s.elapsed += b.dt
	if !s.fired && s.elapsed >= cfg.FireAt {
		s.fired = true
		dir := b.facing()
		b.spawn(system.Spawn{
			Tag:      ecscomp.Tag{Kind: ecscomp.KindBossBolt},
			Position: b.Position(),
			Velocity: dir.Mult(cfg.Bolt.Speed),
			Width:    cfg.Bolt.Width,
			Height:   cfg.Bolt.Height,
			Lifetime: cfg.Bolt.Lifetime,
			Attack:   attackFrom(cfg.Bolt, b, b.faction, b.attack.Get()),
		})
		b.resetCooldown(&b.generalCD, b.cfg.GeneralCooldown)
	}
	if s.elapsed >= cfg.Duration {
		b.machine.ChangeState(BossIdle)
	}
}

func (s *bossRangedState) Exit(b *Boss) {}

type bossMeleeState struct {
	elapsed float64
	window  component.MeleeWindow
	reset   bool
}

func (s *bossMeleeState) Enter(b *Boss) {
	s.elapsed = 0
	s.reset = false
	s.window = component.MeleeWindow{Start: b.cfg.Melee.WindowStart, End: b.cfg.Melee.WindowEnd}
	s.window.Begin()
	b.stand()
}

func (s *bossMeleeState) Execute(b *Boss) {
	cfg := b.cfg.Melee
	s.elapsed += b.dt
	if s.window.Try(s.elapsed) {
		push := b.facing().X
		if b.hasOpponent() {
			if d := common.Sign(b.opponent.Position().X - b.Position().X); d != 0 {
				push = d
			}
		}
		landed := b.resolver.Melee(b.meleeArea(cfg.Range), component.Hit{
			Source:     "boss_melee",
			Attacker:   b.faction,
			Amount:     b.attack.Get() * cfg.Multiplier,
			KnockbackX: push * cfg.Knockback,
		})
		if len(landed) > 0 {
			s.resetCooldown(b)
		}
	}
	if !s.reset && s.window.Closed(s.elapsed) && b.policy.MeleeResetCooldownOnMiss {
		s.resetCooldown(b)
	}
	if s.elapsed >= cfg.Duration {
		b.machine.ChangeState(BossIdle)
	}
}

func (s *bossMeleeState) Exit(b *Boss) {}

func (s *bossMeleeState) resetCooldown(b *Boss) {
	s.reset = true
	b.resetCooldown(&b.generalCD, b.cfg.GeneralCooldown)
}

type bossFlameState struct {
	elapsed float64
	cast    bool
}

func (s *bossFlameState) Enter(b *Boss) {
	s.elapsed = 0
	s.cast = false
	b.stand()
}

func (s *bossFlameState) Execute(b *Boss) {
	cfg := b.cfg.Flame
	s.elapsed += b.dt
	if !s.cast && s.elapsed >= cfg.CastAt {
		s.cast = true
		b.castFlame()
		b.resetCooldown(&b.flameCD, b.cfg.FlameInterval)
	}
	if s.elapsed >= cfg.Duration {
		b.machine.ChangeState(BossIdle)
	}
}

func (s *bossFlameState) Exit(b *Boss) {}

// FlamePillarOffsets are the horizontal offsets of the four pillars relative
// to the boss: two on each side of the facing axis.
func (b *Boss) FlamePillarOffsets() [4]float64 {
	cfg := b.cfg.Flame
	f := b.facing().X
	inner := cfg.Offset
	outer := cfg.Offset + cfg.Spacing
	return [4]float64{f * inner, f * outer, -f * inner, -f * outer}
}

func (b *Boss) castFlame() {
	cfg := b.cfg.Flame.Pillar
	pos := b.Position()
	for _, dx := range b.FlamePillarOffsets() {
		b.spawn(system.Spawn{
			Tag:      ecscomp.Tag{Kind: ecscomp.KindFlamePillar, Effect: true},
			Position: cp.Vector{X: pos.X + dx, Y: pos.Y},
			Width:    cfg.Width,
			Height:   cfg.Height,
			Lifetime: cfg.Lifetime,
			Attack:   attackFrom(cfg, b, b.faction, b.attack.Get()),
		})
	}
}

type bossFlyingState struct{}

func (bossFlyingState) Enter(b *Boss) {
	b.resetCooldown(&b.flyingCD, b.cfg.FlyingInterval)
	if b.body == nil {
		return
	}
	b.halt()
	b.body.SetGravity(false)
	b.flight.Start(b.body.GroundAltitude(), b.anchor.X)
}

func (bossFlyingState) Execute(b *Boss) {
	if !b.flight.Running() {
		b.machine.ChangeState(BossIdle)
	}
}

// Exit mid-sequence hands the script over to a forced landing, which the
// boss keeps advancing from whatever state comes next.
func (bossFlyingState) Exit(b *Boss) {
	b.flight.Cancel()
}

type bossHitState struct {
	elapsed float64
}

func (s *bossHitState) Enter(b *Boss) {
	s.elapsed = 0
	b.halt()
}

func (s *bossHitState) Execute(b *Boss) {
	s.elapsed += b.dt
	if s.elapsed < b.cfg.HitDuration {
		return
	}
	if b.inDetection() {
		b.machine.ChangeState(BossChase)
		return
	}
	b.machine.ChangeState(BossIdle)
}

func (s *bossHitState) Exit(b *Boss) {
	b.stand()
}

type bossDieState struct{}

func (bossDieState) Enter(b *Boss) {
	b.flight.Stop()
	if b.body != nil {
		b.halt()
		b.body.SetGravity(true)
		pos := b.body.Position()
		b.body.SetPosition(cp.Vector{X: pos.X, Y: b.body.GroundAltitude()})
		b.body.SetCollidable(false)
	}
	b.emit(event.Event{Type: event.TypeDied})
	if b.orchestrator != nil {
		b.orchestrator.BossDied()
	}
}
func (bossDieState) Execute(b *Boss) {}
func (bossDieState) Exit(b *Boss) {}
