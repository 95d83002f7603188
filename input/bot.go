package input

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
)

// Observation is what a bot sees of the fight each tick.
type Observation struct {
	Self     cp.Vector
	Target   cp.Vector
	Velocity cp.Vector // target velocity

	TargetVulnerable bool
	Aiming           bool
	Drawn            bool
	CanRoll          bool
	CanMelee         bool

	// Threat is set when a hostile projectile or effect is close; ThreatX
	// is its horizontal position.
	Threat  bool
	ThreatX float64
}

type BotConfig struct {
	ArrowSpeed float64
	MeleeRange float64
	// KeepAway is the distance the bot backs off to before drawing.
	KeepAway float64
	// DodgeChance is the per-threat probability of rolling.
	DodgeChance float64
}

func DefaultBotConfig() BotConfig {
	return BotConfig{ArrowSpeed: 10, MeleeRange: 1.8, KeepAway: 4, DodgeChance: 0.6}
}

// Bot is a simple player: it dodges what it sees coming, slashes when the
// boss is close and otherwise shoots at where the boss will be.
type Bot struct {
	cfg     BotConfig
	observe func() Observation
	rng     *rand.Rand
	bow     Edges
	dodging bool
}

func NewBot(cfg BotConfig, observe func() Observation, rng *rand.Rand) *Bot {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Bot{cfg: cfg, observe: observe, rng: rng}
}

func (b *Bot) Next() Frame {
	if b.observe == nil {
		return Frame{}
	}
	o := b.observe()
	dx := o.Target.X - o.Self.X
	dist := math.Abs(dx)
	toward := common.Sign(dx)

	var f Frame
	hold := false
	switch {
	case o.Threat:
		away := -common.Sign(o.ThreatX - o.Self.X)
		if away == 0 {
			away = -toward
		}
		f.MoveX = away
		if !b.dodging && o.CanRoll && b.rng.Float64() < b.cfg.DodgeChance {
			f.RollPressed = true
		}
		b.dodging = true
	case dist <= b.cfg.MeleeRange && o.TargetVulnerable && o.CanMelee && !o.Aiming:
		b.dodging = false
		f.MoveX = toward
		f.PrimaryPressed = true
	case dist < b.cfg.KeepAway && !o.Aiming:
		b.dodging = false
		f.MoveX = -toward
	default:
		b.dodging = false
		hold = true
		if o.Drawn && o.TargetVulnerable {
			f.PrimaryPressed = true
			f.Aim = b.lead(o)
			f.HasAim = true
		}
	}
	f.SecondaryPressed, f.SecondaryHeld, f.SecondaryReleased = b.bow.Update(hold)
	if f.SecondaryPressed && f.MoveX == 0 {
		// face the boss before drawing
		f.MoveX = toward * 0.01
	}
	return f
}

// lead aims at where the target will be when the arrow arrives.
func (b *Bot) lead(o Observation) cp.Vector {
	if b.cfg.ArrowSpeed <= 0 {
		return o.Target
	}
	t := o.Self.Distance(o.Target) / b.cfg.ArrowSpeed
	return o.Target.Add(cp.Vector{X: o.Velocity.X * t})
}
