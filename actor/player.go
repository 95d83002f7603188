package actor

import (
	"github.com/milk9111/bossfight/component"
	"github.com/milk9111/bossfight/event"
	"github.com/milk9111/bossfight/fsm"
	"github.com/milk9111/bossfight/input"
)

type PlayerState string

const (
	PlayerIdle        PlayerState = "Idle"
	PlayerMove        PlayerState = "Move"
	PlayerJump        PlayerState = "Jump"
	PlayerFall        PlayerState = "Fall"
	PlayerRoll        PlayerState = "Roll"
	PlayerRangedAim   PlayerState = "RangedAim"
	PlayerMeleeAttack PlayerState = "MeleeAttack"
	PlayerHit         PlayerState = "Hit"
	PlayerDie         PlayerState = "Die"
)

type Player struct {
	Actor
	cfg PlayerConfig

	in         input.Frame
	invincible bool
	rollCD     component.Cooldown
	meleeCD    component.Cooldown

	machine *fsm.Machine[PlayerState, *Player]
	aim     *playerRangedAimState
}

// NewPlayer builds the player and enters Idle.
func NewPlayer(cfg PlayerConfig, policy Policy, body Body, deps Deps) *Player {
	p := &Player{
		Actor: newActor(event.ActorPlayer, component.FactionPlayer, cfg.Health, cfg.AttackPower, body, deps, policy.MeleeHitAllTargets),
		cfg:   cfg,
	}

	m := fsm.New[PlayerState, *Player](event.ActorPlayer, p)
	m.SetLogger(p.logger)
	m.SetAllowReenter(policy.PlayerReenterState)
	m.SetTerminal(PlayerDie)
	m.OnEnter(func(from, to PlayerState) {
		p.emit(event.Event{Type: event.TypeStateEntered, From: string(from), State: string(to)})
	})

	p.aim = &playerRangedAimState{}
	m.AddState(PlayerIdle, &playerIdleState{})
	m.AddState(PlayerMove, &playerMoveState{})
	m.AddState(PlayerJump, &playerJumpState{})
	m.AddState(PlayerFall, &playerFallState{})
	m.AddState(PlayerRoll, &playerRollState{})
	m.AddState(PlayerRangedAim, p.aim)
	m.AddState(PlayerMeleeAttack, &playerMeleeState{})
	m.AddState(PlayerHit, &playerHitState{})
	m.AddState(PlayerDie, &playerDieState{})
	p.machine = m

	p.watchHealth(
		func() { p.machine.ChangeState(PlayerHit) },
		func() { p.machine.ChangeState(PlayerDie) },
	)
	m.ChangeState(PlayerIdle)
	return p
}

// Tick advances cooldowns and runs the active state once with frame as input.
func (p *Player) Tick(frame input.Frame, dt float64) {
	p.dt = dt
	p.in = frame
	p.rollCD.Tick(dt)
	p.meleeCD.Tick(dt)

	if !p.machine.Is(PlayerHit) && !p.machine.Is(PlayerDie) && frame.MoveX != 0 && p.body != nil {
		p.body.SetFacingLeft(frame.MoveX < 0)
	}
	p.machine.Update()
}

// Vulnerable is false while dying, reacting to a hit or rolling.
func (p *Player) Vulnerable() bool {
	if !p.Alive() || p.invincible {
		return false
	}
	return !p.machine.Is(PlayerHit) && !p.machine.Is(PlayerDie)
}

// ApplyDamage runs amount through the shared damage contract.
func (p *Player) ApplyDamage(amount float64) bool {
	return component.ApplyDamage(p, amount)
}

// ChangeState requests a transition; states normally decide their own.
func (p *Player) ChangeState(s PlayerState) bool {
	return p.machine.ChangeState(s)
}

func (p *Player) State() PlayerState {
	s, _ := p.machine.CurrentKey()
	return s
}

func (p *Player) Invincible() bool { return p.invincible }

func (p *Player) Config() PlayerConfig { return p.cfg }

// CanRoll and CanMelee report cooldown readiness.
func (p *Player) CanRoll() bool { return p.rollCD.Ready() }
func (p *Player) CanMelee() bool { return p.meleeCD.Ready() }

// AimPhase reports the bow phase while in RangedAim.
func (p *Player) AimPhase() AimPhase {
	if !p.machine.Is(PlayerRangedAim) {
		return AimNone
	}
	return p.aim.phase
}

func (p *Player) move() {
	if p.body == nil {
		return
	}
	p.body.MoveX(p.in.MoveX * p.cfg.MoveSpeed)
}

func (p *Player) grounded() bool {
	return p.body != nil && p.body.Grounded()
}

func (p *Player) falling() bool {
	return p.body != nil && !p.body.Grounded() && p.body.VelocityY() < 0
}

// groundedEdges is the shared ladder of Idle and Move. Later entries of the
// input ladder take precedence: melee, ranged, fall, roll, jump, move.
func (p *Player) groundedEdges(allowMove bool) bool {
	in := p.in
	switch {
	case in.PrimaryPressed && p.meleeCD.Ready():
		return p.machine.ChangeState(PlayerMeleeAttack)
	case in.SecondaryPressed:
		return p.machine.ChangeState(PlayerRangedAim)
	case p.falling():
		return p.machine.ChangeState(PlayerFall)
	case in.RollPressed && p.rollCD.Ready():
		return p.machine.ChangeState(PlayerRoll)
	case in.JumpPressed && p.grounded():
		return p.machine.ChangeState(PlayerJump)
	case allowMove && in.MoveX != 0:
		return p.machine.ChangeState(PlayerMove)
	}
	return false
}
