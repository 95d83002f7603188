package actor

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/component"
	ecscomp "github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/system"
	"github.com/milk9111/bossfight/event"
	"github.com/milk9111/bossfight/fsm"
)

type BossState string

const (
	BossIdle         BossState = "Idle"
	BossChase        BossState = "Chase"
	BossChooseAttack BossState = "ChooseAttack"
	BossRangedAttack BossState = "RangedAttack"
	BossMeleeAttack  BossState = "MeleeAttack"
	BossFlameSkill   BossState = "FlameSkill"
	BossFlyingSkill  BossState = "FlyingSkill"
	BossHit          BossState = "Hit"
	BossDie          BossState = "Die"
)

type Boss struct {
	Actor
	cfg    BossConfig
	policy Policy

	opponent Opponent
	anchor   cp.Vector
	flight   *FlightScript
	phases   *PhaseController

	generalCD component.Cooldown
	flameCD   component.Cooldown
	flyingCD  component.Cooldown
	// cooldownScale multiplies every cooldown reset; phases change it.
	cooldownScale float64
	baseAttack    float64
	elapsed       float64

	machine *fsm.Machine[BossState, *Boss]
}

// NewBoss builds the boss at its body's current position and enters Idle.
// rng drives the flight legs; phases may be nil.
func NewBoss(cfg BossConfig, policy Policy, body Body, deps Deps, rng *rand.Rand, phases *PhaseController) *Boss {
	b := &Boss{
		Actor:         newActor(event.ActorBoss, component.FactionBoss, cfg.Health, cfg.AttackPower, body, deps, policy.MeleeHitAllTargets),
		cfg:           cfg,
		policy:        policy,
		generalCD:     component.NewCooldown(cfg.GeneralCooldownStart),
		flameCD:       component.NewCooldown(cfg.FlameCooldownStart),
		flyingCD:      component.NewCooldown(cfg.FlyingCooldownStart),
		cooldownScale: 1,
		baseAttack:    cfg.AttackPower,
		phases:        phases,
	}
	if body != nil {
		b.anchor = body.Position()
	}
	b.flight = NewFlightScript(cfg.Flight, body, rng, b.dropFireRain)
	b.flight.OnPhase(func(p FlightPhase) {
		b.emit(event.Event{Type: event.TypeFlightPhase, State: p.String()})
	})

	m := fsm.New[BossState, *Boss](event.ActorBoss, b)
	m.SetLogger(b.logger)
	m.SetAllowReenter(policy.BossReenterState)
	m.SetTerminal(BossDie)
	m.OnEnter(func(from, to BossState) {
		b.emit(event.Event{Type: event.TypeStateEntered, From: string(from), State: string(to)})
	})
	m.AddState(BossIdle, &bossIdleState{})
	m.AddState(BossChase, &bossChaseState{})
	m.AddState(BossChooseAttack, &bossChooseAttackState{})
	m.AddState(BossRangedAttack, &bossRangedState{})
	m.AddState(BossMeleeAttack, &bossMeleeState{})
	m.AddState(BossFlameSkill, &bossFlameState{})
	m.AddState(BossFlyingSkill, &bossFlyingState{})
	m.AddState(BossHit, &bossHitState{})
	m.AddState(BossDie, &bossDieState{})
	b.machine = m

	b.watchHealth(
		func() { b.machine.ChangeState(BossHit) },
		func() { b.machine.ChangeState(BossDie) },
	)
	if b.phases != nil {
		b.phases.Start(b)
	}
	m.ChangeState(BossIdle)
	return b
}

// SetOpponent sets the actor the boss hunts. nil leaves it passive.
func (b *Boss) SetOpponent(o Opponent) {
	b.opponent = o
}

// Tick advances cooldowns, the flight sequence and phases, then runs the
// active state once. A dead boss does nothing.
func (b *Boss) Tick(dt float64) {
	if b.machine.Is(BossDie) {
		return
	}
	b.dt = dt
	b.elapsed += dt
	b.generalCD.Tick(dt)
	b.flameCD.Tick(dt)
	b.flyingCD.Tick(dt)

	if b.flight.Running() && b.flight.Advance(dt) {
		b.land()
	}

	if b.phases != nil {
		b.phases.Update(b)
	}

	if b.hasOpponent() && b.body != nil {
		b.body.SetFacingLeft(b.opponent.Position().X < b.Position().X)
	}
	b.machine.Update()
}

// Vulnerable is false while dying, reacting to a hit or airborne.
func (b *Boss) Vulnerable() bool {
	if !b.Alive() {
		return false
	}
	if b.machine.Is(BossDie) || b.machine.Is(BossHit) {
		return false
	}
	return !b.flight.Airborne()
}

func (b *Boss) ApplyDamage(amount float64) bool {
	return component.ApplyDamage(b, amount)
}

func (b *Boss) ChangeState(s BossState) bool {
	return b.machine.ChangeState(s)
}

func (b *Boss) State() BossState {
	s, _ := b.machine.CurrentKey()
	return s
}

func (b *Boss) Config() BossConfig { return b.cfg }

func (b *Boss) Flight() *FlightScript { return b.flight }

func (b *Boss) GeneralCooldown() *component.Cooldown { return &b.generalCD }
func (b *Boss) FlameCooldown() *component.Cooldown { return &b.flameCD }
func (b *Boss) FlyingCooldown() *component.Cooldown { return &b.flyingCD }

// Phase returns the active phase index, or -1 without a phase controller.
func (b *Boss) Phase() int {
	if b.phases == nil {
		return -1
	}
	return b.phases.Current()
}

// land ends a finished flight. FlyingSkill hands over to Idle itself; a
// forced landing that outlived the state sends the boss to Idle from here.
func (b *Boss) land() {
	if b.body != nil {
		b.body.SetGravity(true)
	}
	if !b.machine.Is(BossFlyingSkill) && !b.machine.Is(BossDie) {
		b.machine.ChangeState(BossIdle)
	}
}

func (b *Boss) hasOpponent() bool {
	return b.opponent != nil && b.opponent.Alive()
}

func (b *Boss) distance() float64 {
	return b.distanceTo(b.opponent)
}

func (b *Boss) inDetection() bool {
	return b.distance() <= b.cfg.DetectionRange
}

func (b *Boss) resetCooldown(cd *component.Cooldown, d float64) {
	cd.Reset(d * b.cooldownScale)
}

// escalate applies the skill part of the priority ladder: flying before
// flame. It reports whether a skill was started.
func (b *Boss) escalate() bool {
	if !b.hasOpponent() {
		return false
	}
	if b.flyingCD.Ready() {
		return b.machine.ChangeState(BossFlyingSkill)
	}
	if b.flameCD.Ready() {
		return b.machine.ChangeState(BossFlameSkill)
	}
	return false
}

func (b *Boss) dropFireRain(at cp.Vector) {
	rain := b.cfg.Flight.Rain
	b.spawn(system.Spawn{
		Tag:      ecscomp.Tag{Kind: ecscomp.KindFireRain},
		Position: at,
		Velocity: cp.Vector{Y: -rain.Speed},
		Width:    rain.Width,
		Height:   rain.Height,
		Lifetime: rain.Lifetime,
		Attack:   attackFrom(rain, b, b.faction, b.attack.Get()),
	})
}
