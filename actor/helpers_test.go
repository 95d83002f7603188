package actor

import (
	"log"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/component"
	"github.com/milk9111/bossfight/ecs"
	ecscomp "github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/system"
	"github.com/milk9111/bossfight/event"
	"github.com/milk9111/bossfight/input"
	"github.com/milk9111/bossfight/physics"
)

const dt = common.FixedDelta

type spawnRecorder struct {
	spawns []system.Spawn
}

func (s *spawnRecorder) SpawnAttack(sp system.Spawn) (ecs.Entity, error) {
	s.spawns = append(s.spawns, sp)
	return ecs.Entity(len(s.spawns)), nil
}

func (s *spawnRecorder) of(kind ecscomp.Kind) []system.Spawn {
	var out []system.Spawn
	for _, sp := range s.spawns {
		if sp.Tag.Kind == kind {
			out = append(out, sp)
		}
	}
	return out
}

type deaths struct {
	player int
	boss   int
}

func (d *deaths) PlayerDied() { d.player++ }
func (d *deaths) BossDied() { d.boss++ }

// dummy is a boss-faction target that never stops taking damage.
type dummy struct {
	hp *component.Health
}

func (d *dummy) Faction() component.Faction { return component.FactionBoss }
func (d *dummy) HealthStat() *component.Stat[float64] { return d.hp.Stat }
func (d *dummy) Vulnerable() bool { return true }

type rig struct {
	world  *physics.World
	rec    *event.Recorder
	spawns *spawnRecorder
	deaths *deaths
	player *Player
	boss   *Boss
}

type rigOptions struct {
	playerX float64
	bossX   float64
	player  PlayerConfig
	boss    BossConfig
	policy  Policy
	phases  *PhaseController
	logger  *log.Logger
}

func defaultRig() rigOptions {
	return rigOptions{
		playerX: 0,
		bossX:   10,
		player:  DefaultPlayerConfig(),
		boss:    DefaultBossConfig(),
		policy:  DefaultPolicy(),
	}
}

func newRig(t *testing.T, opts rigOptions) *rig {
	t.Helper()
	r := &rig{
		world:  physics.NewWorld(physics.Config{Gravity: 20, FloorY: 0, MinX: -20, MaxX: 20}),
		rec:    event.NewRecorder(),
		spawns: &spawnRecorder{},
		deaths: &deaths{},
	}
	deps := Deps{Spawner: r.spawns, Space: r.world, Orchestrator: r.deaths, Sink: r.rec, Logger: opts.logger}

	pb := r.world.NewBody(cp.Vector{X: opts.playerX}, opts.player.Width, opts.player.Height, component.FactionPlayer, nil)
	r.player = NewPlayer(opts.player, opts.policy, pb, deps)
	pb.SetData(r.player)

	bb := r.world.NewBody(cp.Vector{X: opts.bossX}, opts.boss.Width, opts.boss.Height, component.FactionBoss, nil)
	r.boss = NewBoss(opts.boss, opts.policy, bb, deps, rand.New(rand.NewSource(7)), opts.phases)
	bb.SetData(r.boss)
	r.boss.SetOpponent(r.player)
	return r
}

// tick advances both actors and the physics world by one step.
func (r *rig) tick(f input.Frame) {
	r.player.Tick(f, dt)
	r.boss.Tick(dt)
	r.world.Step(dt)
}

// tickPlayer leaves the boss frozen.
func (r *rig) tickPlayer(f input.Frame) {
	r.player.Tick(f, dt)
	r.world.Step(dt)
}

func (r *rig) tickBoss() {
	r.boss.Tick(dt)
	r.world.Step(dt)
}

// until ticks with step until cond holds, failing after max ticks. It returns
// the number of ticks taken.
func until(t *testing.T, max int, step func(), cond func() bool) int {
	t.Helper()
	for i := 1; i <= max; i++ {
		step()
		if cond() {
			return i
		}
	}
	t.Fatalf("condition not reached after %d ticks", max)
	return max
}

func cpX(x float64) cp.Vector {
	return cp.Vector{X: x}
}
