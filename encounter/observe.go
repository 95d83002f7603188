package encounter

import (
	"math"
	"math/rand"

	"github.com/milk9111/bossfight/actor"
	"github.com/milk9111/bossfight/event"
	"github.com/milk9111/bossfight/input"
)

// threatRange is how close a boss attack has to be before the bot reacts.
const threatRange = 3

// Observe reports the fight from the player's side, for bots.
func (e *Encounter) Observe() input.Observation {
	p, b := e.player, e.boss
	o := input.Observation{
		Self:             p.Position(),
		Target:           b.Position(),
		TargetVulnerable: b.Vulnerable(),
		Aiming:           p.State() == actor.PlayerRangedAim,
		Drawn:            p.State() == actor.PlayerRangedAim && p.AimPhase() == actor.AimHold,
		CanRoll:          p.CanRoll(),
		CanMelee:         p.CanMelee(),
	}
	if body := b.Body(); body != nil {
		o.Velocity = body.Velocity()
	}

	nearest := math.Inf(1)
	for _, pr := range e.Projectiles() {
		if pr.Owner != event.ActorBoss {
			continue
		}
		d := pr.Position.Distance(o.Self)
		if d < threatRange && d < nearest {
			nearest = d
			o.Threat = true
			o.ThreatX = pr.Position.X
		}
	}
	return o
}

// BotProvider returns a bot that plays the player side of e. Its dodges are
// seeded from the spec, so a replay of the same spec is identical.
func (e *Encounter) BotProvider(cfg input.BotConfig) *input.Bot {
	return input.NewBot(cfg, e.Observe, rand.New(rand.NewSource(e.spec.Seed+1)))
}
