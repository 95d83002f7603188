// Package encounter is the session object of one boss fight. It owns both
// actors, the physics world and the projectile world, fixes the order in
// which they advance each tick and reports the outcome.
package encounter

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/actor"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/component"
	"github.com/milk9111/bossfight/ecs"
	ecscomp "github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/system"
	"github.com/milk9111/bossfight/event"
	"github.com/milk9111/bossfight/input"
	"github.com/milk9111/bossfight/physics"
	"github.com/milk9111/bossfight/prefabs"
)

const ActorEncounter = "encounter"

type Outcome int

const (
	Ongoing Outcome = iota
	PlayerWon
	BossWon
)

func (o Outcome) String() string {
	switch o {
	case PlayerWon:
		return "player_won"
	case BossWon:
		return "boss_won"
	}
	return "ongoing"
}

// Deps are the encounter's outside collaborators. All are optional.
type Deps struct {
	Sink   event.Sink
	Logger *log.Logger
	// Script overrides the spec's phase script.
	Script *actor.PhaseScript
}

// Projectile is a live projectile or area effect, for drawing.
type Projectile struct {
	Entity   ecs.Entity
	Kind     ecscomp.Kind
	Effect   bool
	Owner    string
	Position cp.Vector
	Rotation float64
	Width    float64
	Height   float64
}

type tracked struct {
	kind  ecscomp.Kind
	owner string
	pos   cp.Vector
}

type Encounter struct {
	spec   prefabs.EncounterSpec
	logger *log.Logger
	sink   event.Sink

	tick    uint64
	outcome Outcome

	physics   *physics.World
	world     *ecs.World
	scheduler *ecs.Scheduler
	live      map[ecs.Entity]*tracked

	player *actor.Player
	boss   *actor.Boss
}

// New builds a fresh fight from spec.
func New(spec prefabs.EncounterSpec, deps Deps) (*Encounter, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("encounter: %w", err)
	}
	script := deps.Script
	if script == nil {
		var err error
		if script, err = prefabs.LoadPhaseScript(spec); err != nil {
			return nil, fmt.Errorf("encounter: %w", err)
		}
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	e := &Encounter{
		spec:   spec,
		logger: logger,
		world:  ecs.NewWorld(),
		live:   make(map[ecs.Entity]*tracked),
	}
	e.sink = event.WithTick(event.Join(deps.Sink), func() uint64 { return e.tick })
	e.physics = physics.NewWorld(spec.Arena)
	e.scheduler = ecs.NewScheduler(
		system.NewMotionSystem(),
		system.NewAttackSystem(e.physics),
		system.NewLifetimeSystem(),
	)

	actorDeps := actor.Deps{
		Spawner:      e,
		Space:        e.physics,
		Orchestrator: e,
		Sink:         e.sink,
		Logger:       logger,
	}

	floor := spec.Arena.FloorY
	pb := e.physics.NewBody(cp.Vector{X: spec.Player.SpawnX, Y: floor}, spec.Player.Width, spec.Player.Height, component.FactionPlayer, nil)
	e.player = actor.NewPlayer(spec.Player.PlayerConfig, spec.Policy, pb, actorDeps)
	pb.SetData(e.player)

	bb := e.physics.NewBody(cp.Vector{X: spec.Boss.SpawnX, Y: floor}, spec.Boss.Width, spec.Boss.Height, component.FactionBoss, nil)
	phases := actor.NewPhaseController(spec.Phases, script)
	e.boss = actor.NewBoss(spec.Boss.BossConfig, spec.Policy, bb, actorDeps, rand.New(rand.NewSource(spec.Seed)), phases)
	bb.SetData(e.boss)
	e.boss.SetOpponent(e.player)

	return e, nil
}

// Tick advances the fight by one fixed step: player, boss, bodies, then
// projectiles. Projectile events are published at the end of the tick.
func (e *Encounter) Tick(frame input.Frame) {
	e.tick++
	dt := common.FixedDelta

	e.player.Tick(frame, dt)
	e.boss.Tick(dt)
	e.physics.Step(dt)
	e.scheduler.Update(e.world, dt)
	e.publishWorldEvents()
}

// Run ticks n times with frames from p and stops early once the fight is over.
func (e *Encounter) Run(p input.Provider, n int) Outcome {
	if p == nil {
		p = input.Idle
	}
	for i := 0; i < n && e.outcome == Ongoing; i++ {
		e.Tick(p.Next())
	}
	return e.outcome
}

func (e *Encounter) Outcome() Outcome { return e.outcome }

func (e *Encounter) Over() bool { return e.outcome != Ongoing }

func (e *Encounter) Player() *actor.Player { return e.player }

func (e *Encounter) Boss() *actor.Boss { return e.boss }

func (e *Encounter) Spec() prefabs.EncounterSpec { return e.spec }

func (e *Encounter) Arena() physics.Config { return e.spec.Arena }

// Ticks is the number of completed ticks.
func (e *Encounter) Ticks() uint64 { return e.tick }

// Elapsed is simulated time in seconds.
func (e *Encounter) Elapsed() float64 {
	return float64(e.tick) * common.FixedDelta
}

// Projectiles lists every live projectile and area effect.
func (e *Encounter) Projectiles() []Projectile {
	var out []Projectile
	ecs.ForEach3(e.world, ecscomp.TagKind, ecscomp.TransformKind, ecscomp.HitboxKind, func(ent ecs.Entity, tag *ecscomp.Tag, t *ecscomp.Transform, hb *ecscomp.Hitbox) {
		p := Projectile{
			Entity:   ent,
			Kind:     tag.Kind,
			Effect:   tag.Effect,
			Position: t.Position,
			Rotation: t.Rotation,
			Width:    hb.Width,
			Height:   hb.Height,
		}
		if info, ok := e.live[ent]; ok {
			p.Owner = info.owner
		}
		out = append(out, p)
	})
	return out
}

// SpawnAttack creates a projectile or effect entity on behalf of an actor.
func (e *Encounter) SpawnAttack(sp system.Spawn) (ecs.Entity, error) {
	if sp.Attack.Source == "" {
		sp.Attack.Source = string(sp.Tag.Kind)
	}
	ent, err := system.SpawnAttack(e.world, sp)
	if err != nil {
		return 0, err
	}
	e.live[ent] = &tracked{kind: sp.Tag.Kind, owner: ownerName(sp.Attack.Owner, sp.Attack.Faction), pos: sp.Position}
	return ent, nil
}

func (e *Encounter) PlayerDied() {
	e.finish(BossWon)
}

func (e *Encounter) BossDied() {
	e.finish(PlayerWon)
}

func (e *Encounter) finish(o Outcome) {
	if e.outcome != Ongoing {
		return
	}
	e.outcome = o
	e.logger.Printf("encounter: %s at tick %d", o, e.tick)
	e.sink.Publish(event.Event{Type: event.TypeEncounterOver, Actor: ActorEncounter, State: o.String()})
}

func (e *Encounter) publishWorldEvents() {
	for _, evt := range e.world.Events().Drain() {
		info := e.live[evt.Entity]
		if info == nil {
			continue
		}
		out := event.Event{Actor: info.owner, State: string(info.kind), X: info.pos.X, Y: info.pos.Y}
		switch evt.Kind {
		case ecs.EventSpawned:
			out.Type = event.TypeSpawned
		case ecs.EventDestroyed:
			out.Type = event.TypeDestroyed
		case ecs.EventWorldHit:
			out.Type = event.TypeWorldHit
		case ecs.EventExpired:
			out.Type = event.TypeExpired
		default:
			// landed hits are reported by the damaged actor
			continue
		}
		if out.Type != event.TypeSpawned {
			delete(e.live, evt.Entity)
		}
		e.sink.Publish(out)
	}

	for ent, info := range e.live {
		t, ok := ecs.Get(e.world, ent, ecscomp.TransformKind)
		if !ok {
			delete(e.live, ent)
			continue
		}
		info.pos = t.Position
	}
}

func ownerName(owner any, faction component.Faction) string {
	if named, ok := owner.(interface{ Name() string }); ok {
		return named.Name()
	}
	return faction.String()
}
