package actor

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/bossfight/event"
)

// PhaseScript lets a tengo script choose the boss phase. The script sees
// hp_ratio, elapsed, phase, phase_count and triggers (the hp_trigger of every
// phase) and assigns next_phase.
type PhaseScript struct {
	compiled *tengo.Compiled
}

// PhaseInput is what the script is run against.
type PhaseInput struct {
	HPRatio  float64
	Elapsed  float64
	Phase    int
	Count    int
	Triggers []float64
}

type global struct {
	name  string
	value any
}

// phaseGlobals are the variables a phase script reads and writes, with the
// values they are declared with.
var phaseGlobals = []global{
	{"hp_ratio", 1.0},
	{"elapsed", 0.0},
	{"phase", 0},
	{"phase_count", 0},
	{"next_phase", 0},
	{"triggers", []any{}},
}

// declare adds each global to s and stops at the first value tengo rejects.
func declare(s *tengo.Script, globals []global) error {
	for _, g := range globals {
		if err := s.Add(g.name, g.value); err != nil {
			return fmt.Errorf("declare %s: %w", g.name, err)
		}
	}
	return nil
}

func CompilePhaseScript(src []byte) (*PhaseScript, error) {
	script := tengo.NewScript(src)
	if err := declare(script, phaseGlobals); err != nil {
		return nil, fmt.Errorf("phase script: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("phase script: %w", err)
	}
	return &PhaseScript{compiled: compiled}, nil
}

// Next runs the script once and returns the phase it asks for.
func (s *PhaseScript) Next(in PhaseInput) (int, error) {
	if s == nil || s.compiled == nil {
		return in.Phase, nil
	}
	triggers := &tengo.Array{}
	for _, t := range in.Triggers {
		triggers.Value = append(triggers.Value, &tengo.Float{Value: t})
	}
	for name, v := range map[string]any{
		"hp_ratio":    in.HPRatio,
		"elapsed":     in.Elapsed,
		"phase":       in.Phase,
		"phase_count": in.Count,
		"next_phase":  in.Phase,
		"triggers":    triggers,
	} {
		if err := s.compiled.Set(name, v); err != nil {
			return in.Phase, err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return in.Phase, err
	}
	return s.compiled.Get("next_phase").Int(), nil
}

// PhaseController moves the boss forward through its phases. Entering a
// phase rewrites attack power and cooldown scale and can cut a flight short.
type PhaseController struct {
	phases  []PhaseConfig
	script  *PhaseScript
	current int
	failed  bool
}

// NewPhaseController returns nil when there are no phases. script may be nil,
// in which case hp_trigger ratios decide.
func NewPhaseController(phases []PhaseConfig, script *PhaseScript) *PhaseController {
	if len(phases) == 0 {
		return nil
	}
	return &PhaseController{phases: append([]PhaseConfig(nil), phases...), script: script, current: -1}
}

func (c *PhaseController) Current() int { return c.current }

func (c *PhaseController) Phases() []PhaseConfig { return c.phases }

// Start enters the first phase without announcing it.
func (c *PhaseController) Start(b *Boss) {
	c.current = 0
	c.apply(b, c.phases[0])
}

func (c *PhaseController) Update(b *Boss) {
	if c.current < 0 {
		c.Start(b)
	}
	target := c.current
	if c.script != nil && !c.failed {
		next, err := c.script.Next(PhaseInput{
			HPRatio:  b.health.Ratio(),
			Elapsed:  b.elapsed,
			Phase:    c.current,
			Count:    len(c.phases),
			Triggers: c.triggers(),
		})
		if err != nil {
			// a broken script falls back to the hp triggers for the rest of the fight
			b.logger.Printf("boss: phase script: %v", err)
			c.failed = true
		} else {
			target = next
		}
	}
	if c.script == nil || c.failed {
		for next := c.current + 1; next < len(c.phases); next++ {
			if b.health.Ratio() > c.phases[next].HPTrigger {
				break
			}
			target = next
		}
	}
	if target <= c.current || target >= len(c.phases) {
		return
	}
	c.current = target
	phase := c.phases[target]
	c.apply(b, phase)
	b.emit(event.Event{Type: event.TypePhaseChanged, State: phase.Name})
	if phase.CancelFlight && b.flight.Running() {
		b.flight.Cancel()
	}
}

func (c *PhaseController) triggers() []float64 {
	out := make([]float64, len(c.phases))
	for i, p := range c.phases {
		out[i] = p.HPTrigger
	}
	return out
}

func (c *PhaseController) apply(b *Boss, phase PhaseConfig) {
	b.attack.Set(b.baseAttack + phase.AttackPowerBonus)
	b.cooldownScale = phase.CooldownScale
	if b.cooldownScale <= 0 {
		b.cooldownScale = 1
	}
}
