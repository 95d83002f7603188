package actor

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/component"
	ecscomp "github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/system"
	"github.com/milk9111/bossfight/event"
)

type playerIdleState struct{}

func (playerIdleState) Enter(p *Player) {}
func (playerIdleState) Execute(p *Player) {
	p.stand()
	p.groundedEdges(true)
}
func (playerIdleState) Exit(p *Player) {}

type playerMoveState struct{}

func (playerMoveState) Enter(p *Player) {}
func (playerMoveState) Execute(p *Player) {
	p.move()
	if p.groundedEdges(false) {
		return
	}
	if p.in.MoveX == 0 {
		p.machine.ChangeState(PlayerIdle)
	}
}
func (playerMoveState) Exit(p *Player) {}

type playerJumpState struct {
	elapsed float64
}

func (s *playerJumpState) Enter(p *Player) {
	s.elapsed = 0
	if p.body != nil {
		p.body.Jump(p.cfg.JumpImpulse)
	}
}

func (s *playerJumpState) Execute(p *Player) {
	s.elapsed += p.dt
	p.move()
	if p.in.SecondaryPressed {
		p.machine.ChangeState(PlayerRangedAim)
		return
	}
	if s.elapsed < p.cfg.MinJumpTime {
		return
	}
	if p.grounded() {
		p.machine.ChangeState(PlayerIdle)
		return
	}
	if p.falling() {
		p.machine.ChangeState(PlayerFall)
	}
}

func (s *playerJumpState) Exit(p *Player) {}

type playerFallState struct{}

func (playerFallState) Enter(p *Player) {}
func (playerFallState) Execute(p *Player) {
	p.move()
	if p.grounded() {
		p.machine.ChangeState(PlayerIdle)
	}
}
func (playerFallState) Exit(p *Player) {}

type playerRollState struct {
	elapsed float64
	aborted bool
}

func (s *playerRollState) Enter(p *Player) {
	s.elapsed = 0
	s.aborted = !p.rollCD.Ready()
	if s.aborted {
		return
	}
	p.rollCD.Reset(p.cfg.RollCooldown)
	p.invincible = true
	if p.body != nil {
		p.body.SetCollidable(false)
		p.body.Burst(p.facing().X * p.cfg.MoveSpeed * p.cfg.RollSpeedMultiplier)
	}
}

func (s *playerRollState) Execute(p *Player) {
	if s.aborted {
		p.machine.ChangeState(PlayerIdle)
		return
	}
	s.elapsed += p.dt
	if s.elapsed >= p.cfg.RollDuration {
		p.machine.ChangeState(PlayerIdle)
	}
}

func (s *playerRollState) Exit(p *Player) {
	if s.aborted {
		return
	}
	p.invincible = false
	if p.body != nil {
		p.body.SetCollidable(true)
	}
}

type AimPhase int

const (
	AimNone AimPhase = iota
	AimDraw
	AimHold
	AimRelease
)

// playerRangedAimState draws, holds and looses the bow in one state.
// Releasing the aim before the shot cancels; holding it through the release
// starts another draw.
type playerRangedAimState struct {
	phase   AimPhase
	elapsed float64
}

func (s *playerRangedAimState) Enter(p *Player) {
	s.phase = AimDraw
	s.elapsed = 0
	p.stand()
}

func (s *playerRangedAimState) Execute(p *Player) {
	cfg := p.cfg.Ranged
	if s.phase == AimDraw {
		s.elapsed += p.dt
		if s.elapsed >= cfg.DrawTime {
			s.phase = AimHold
		} else if p.in.SecondaryReleased {
			p.machine.ChangeState(PlayerIdle)
			return
		}
	}

	if s.phase == AimHold {
		if p.in.PrimaryPressed {
			p.fireArrow()
			s.phase = AimRelease
		} else if p.in.SecondaryReleased {
			p.machine.ChangeState(PlayerIdle)
			return
		}
		return
	}

	if s.phase == AimRelease {
		s.elapsed += p.dt
		if s.elapsed < cfg.ClipLength {
			return
		}
		if p.in.SecondaryHeld {
			s.phase = AimDraw
			s.elapsed = 0
			return
		}
		p.machine.ChangeState(PlayerIdle)
	}
}

func (s *playerRangedAimState) Exit(p *Player) {
	s.phase = AimNone
}

// AimDirection is the unit vector from the fire point toward the aim point
// and whether it lies within the allowed cone around facing.
func (p *Player) AimDirection() (cp.Vector, bool) {
	origin := p.firePoint()
	dir := p.facing()
	if p.in.HasAim {
		if d := p.in.Aim.Sub(origin); d.LengthSq() > 0 {
			dir = d.Normalize()
		}
	}
	maxAngle := p.cfg.Ranged.MaxAngle * math.Pi / 180
	return dir, common.AngleBetween(dir, p.facing()) <= maxAngle+1e-9
}

func (p *Player) firePoint() cp.Vector {
	off := p.cfg.Ranged.FireOffset
	off.X *= p.facing().X
	return p.Position().Add(off)
}

func (p *Player) fireArrow() {
	dir, ok := p.AimDirection()
	if !ok {
		p.emit(event.Event{Type: event.TypeShotRejected, State: string(ecscomp.KindArrow)})
		return
	}
	cfg := p.cfg.Ranged
	p.spawn(system.Spawn{
		Tag:      ecscomp.Tag{Kind: ecscomp.KindArrow},
		Position: p.firePoint().Add(dir.Mult(cfg.SpawnDistance)),
		Velocity: dir.Mult(cfg.Arrow.Speed),
		Width:    cfg.Arrow.Width,
		Height:   cfg.Arrow.Height,
		Lifetime: cfg.Arrow.Lifetime,
		Attack:   attackFrom(cfg.Arrow, p, p.faction, p.attack.Get()),
	})
}

type playerMeleeState struct {
	elapsed float64
	window  component.MeleeWindow
}

func (s *playerMeleeState) Enter(p *Player) {
	s.elapsed = 0
	s.window = component.MeleeWindow{Start: p.cfg.Melee.WindowStart, End: p.cfg.Melee.WindowEnd}
	s.window.Begin()
	p.meleeCD.Reset(p.cfg.MeleeCooldown)
	p.stand()
}

func (s *playerMeleeState) Execute(p *Player) {
	s.elapsed += p.dt
	if s.window.Try(s.elapsed) {
		p.resolver.Melee(p.meleeArea(p.cfg.Melee.Range), component.Hit{
			Source:     "player_melee",
			Attacker:   p.faction,
			Amount:     p.attack.Get() * p.cfg.Melee.Multiplier,
			KnockbackX: p.facing().X * p.cfg.Melee.Knockback,
		})
	}
	if s.elapsed >= p.cfg.Melee.Duration {
		p.machine.ChangeState(PlayerIdle)
	}
}

func (s *playerMeleeState) Exit(p *Player) {}

type playerHitState struct {
	elapsed float64
}

func (s *playerHitState) Enter(p *Player) {
	s.elapsed = 0
	p.halt()
}

func (s *playerHitState) Execute(p *Player) {
	s.elapsed += p.dt
	if s.elapsed >= p.cfg.HitDuration {
		p.machine.ChangeState(PlayerIdle)
	}
}

func (s *playerHitState) Exit(p *Player) {
	p.stand()
}

type playerDieState struct{}

func (playerDieState) Enter(p *Player) {
	p.halt()
	p.invincible = false
	if p.body != nil {
		p.body.SetCollidable(false)
	}
	p.emit(event.Event{Type: event.TypeDied})
	if p.orchestrator != nil {
		p.orchestrator.PlayerDied()
	}
}
func (playerDieState) Execute(p *Player) {}
func (playerDieState) Exit(p *Player) {}

// meleeArea reaches from the actor's centre reach units along its facing and
// is as tall as its body.
func (a *Actor) meleeArea(reach float64) cp.BB {
	pos := a.Position()
	h := 1.0
	if a.body != nil {
		_, h = a.body.Size()
	}
	centre := cp.Vector{X: pos.X + a.facing().X*reach/2, Y: pos.Y}
	return cp.NewBBForExtents(centre, reach/2, h/2)
}

// attackFrom builds the attack component of a spawned projectile.
func attackFrom(cfg ProjectileConfig, owner any, faction component.Faction, power float64) ecscomp.Attack {
	return ecscomp.Attack{
		Owner:             owner,
		Faction:           faction,
		Damage:            power * cfg.Multiplier,
		KnockbackX:        cfg.Knockback,
		OncePerTarget:     cfg.OncePerTarget,
		Interval:          cfg.Interval,
		DestroyOnHit:      cfg.DestroyOnHit,
		CollidesWithWorld: cfg.CollidesWithWorld,
	}
}
