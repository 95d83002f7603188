// Package actor holds the two combatants of an encounter. Each actor owns its
// stats, cooldowns and state machine; movement and spatial queries are
// delegated to the providers passed in at construction.
package actor

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/component"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/system"
	"github.com/milk9111/bossfight/event"
)

// Body is the movement provider an actor steers.
type Body interface {
	Grounded() bool
	MoveX(vx float64)
	Jump(impulse float64)
	Burst(vx float64)
	Velocity() cp.Vector
	VelocityY() float64
	Stop()
	Position() cp.Vector
	SetPosition(p cp.Vector)
	GroundAltitude() float64
	Size() (w, h float64)
	FacingLeft() bool
	SetFacingLeft(left bool)
	SetGravity(enabled bool)
	SetCollidable(enabled bool)
}

// Spawner creates projectile and area-effect entities.
type Spawner interface {
	SpawnAttack(sp system.Spawn) (ecs.Entity, error)
}

// Orchestrator is told about terminal transitions.
type Orchestrator interface {
	PlayerDied()
	BossDied()
}

// Opponent is what the boss tracks.
type Opponent interface {
	Position() cp.Vector
	Alive() bool
}

// Deps are the collaborators injected into an actor.
type Deps struct {
	Spawner      Spawner
	Space        component.AreaQuery
	Orchestrator Orchestrator
	Sink         event.Sink
	Logger       *log.Logger
}

// Actor is the state shared by the player and the boss.
type Actor struct {
	name    string
	faction component.Faction
	health  *component.Health
	attack  *component.Stat[float64]
	body    Body

	spawner      Spawner
	resolver     *component.CombatResolver
	orchestrator Orchestrator
	sink         event.Sink
	logger       *log.Logger

	dt float64
}

func newActor(name string, faction component.Faction, hp, atk float64, body Body, deps Deps, hitAll bool) Actor {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	sink := deps.Sink
	if sink == nil {
		sink = event.Nop()
	}
	return Actor{
		name:         name,
		faction:      faction,
		health:       component.NewHealth(hp),
		attack:       component.NewStat(atk),
		body:         body,
		spawner:      deps.Spawner,
		resolver:     component.NewCombatResolver(deps.Space, hitAll),
		orchestrator: deps.Orchestrator,
		sink:         sink,
		logger:       logger,
	}
}

func (a *Actor) Name() string { return a.name }
func (a *Actor) Faction() component.Faction { return a.faction }
func (a *Actor) HealthStat() *component.Stat[float64] { return a.health.Stat }
func (a *Actor) Health() *component.Health { return a.health }
func (a *Actor) AttackPower() *component.Stat[float64] { return a.attack }
func (a *Actor) Body() Body { return a.body }

// Alive reports whether health is above zero.
func (a *Actor) Alive() bool {
	return a != nil && a.health.Alive()
}

// Position returns the body centre.
func (a *Actor) Position() cp.Vector {
	if a.body == nil {
		return cp.Vector{}
	}
	return a.body.Position()
}

// Knockback pushes a living actor horizontally.
func (a *Actor) Knockback(vx float64) {
	if !a.Alive() || a.body == nil {
		return
	}
	a.body.Burst(vx)
}

func (a *Actor) facing() cp.Vector {
	if a.body == nil {
		return cp.Vector{X: 1}
	}
	if a.body.FacingLeft() {
		return cp.Vector{X: -1}
	}
	return cp.Vector{X: 1}
}

func (a *Actor) halt() {
	if a.body != nil {
		a.body.Stop()
	}
}

func (a *Actor) stand() {
	if a.body != nil {
		a.body.Burst(0)
	}
}

func (a *Actor) emit(e event.Event) {
	e.Actor = a.name
	p := a.Position()
	e.X, e.Y = p.X, p.Y
	a.sink.Publish(e)
}

func (a *Actor) spawn(sp system.Spawn) {
	if a.spawner == nil {
		return
	}
	if _, err := a.spawner.SpawnAttack(sp); err != nil {
		a.logger.Printf("%s: spawn %s: %v", a.name, sp.Tag.Kind, err)
	}
}

// distanceTo returns the distance to o, or +Inf when o is missing or dead.
func (a *Actor) distanceTo(o Opponent) float64 {
	if o == nil || !o.Alive() {
		return math.Inf(1)
	}
	return a.Position().Distance(o.Position())
}

// watchHealth routes health changes into the Hit or Die reaction.
func (a *Actor) watchHealth(onHit, onDie func()) {
	a.health.OnChange(func(old, new float64) {
		if new >= old {
			return
		}
		a.emit(event.Event{Type: event.TypeDamaged, Amount: old - new, Health: new})
		if new <= 0 {
			onDie()
			return
		}
		onHit()
	})
}
