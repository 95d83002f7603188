package prefabs

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/bossfight/actor"
	"github.com/milk9111/bossfight/physics"
	"gopkg.in/yaml.v3"
)

// EncounterFile is the default encounter spec.
const EncounterFile = "encounter.yaml"

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	SpawnX             float64 `yaml:"spawn_x"`
	actor.PlayerConfig `yaml:",inline"`
}

type BossSpec struct {
	SpawnX           float64 `yaml:"spawn_x"`
	actor.BossConfig `yaml:",inline"`
}

// AudioSpec is a synthesized cue played when an actor enters a state.
type AudioSpec struct {
	Name string `yaml:"name"`
	// Actor and State select the state-entered events that trigger the cue.
	Actor     string  `yaml:"actor"`
	State     string  `yaml:"state"`
	Frequency float64 `yaml:"frequency"`
	Duration  float64 `yaml:"duration"`
	Volume    float64 `yaml:"volume"`
}

// EncounterSpec is the whole tuning of one fight.
type EncounterSpec struct {
	Name string `yaml:"name"`
	// Seed drives the boss's flight legs.
	Seed        int64               `yaml:"seed"`
	Arena       physics.Config      `yaml:"arena"`
	Player      PlayerSpec          `yaml:"player"`
	Boss        BossSpec            `yaml:"boss"`
	Policy      actor.Policy        `yaml:"policy"`
	Phases      []actor.PhaseConfig `yaml:"phases"`
	PhaseScript string              `yaml:"phase_script"`
	Audio       []AudioSpec         `yaml:"audio"`
}

// Defaults is the spec every loaded file is layered on.
func Defaults() EncounterSpec {
	return EncounterSpec{
		Name:   "arena",
		Seed:   1,
		Arena:  physics.Config{Gravity: 20, FloorY: 0, MinX: -15, MaxX: 15},
		Player: PlayerSpec{SpawnX: -8, PlayerConfig: actor.DefaultPlayerConfig()},
		Boss:   BossSpec{SpawnX: 8, BossConfig: actor.DefaultBossConfig()},
		Policy: actor.DefaultPolicy(),
		Phases: []actor.PhaseConfig{{Name: "opening", HPTrigger: 1}},
	}
}

// ParseEncounter layers data over Defaults and validates the result.
func ParseEncounter(data []byte) (EncounterSpec, error) {
	spec := Defaults()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return EncounterSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return EncounterSpec{}, err
	}
	return spec, nil
}

func LoadEncounter(filename string) (EncounterSpec, error) {
	if filename == "" {
		filename = EncounterFile
	}
	data, err := Load(filename)
	if err != nil {
		return EncounterSpec{}, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := ParseEncounter(data)
	if err != nil {
		return EncounterSpec{}, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

// LoadPhaseScript compiles the spec's phase script, or returns nil when the
// spec has none.
func LoadPhaseScript(spec EncounterSpec) (*actor.PhaseScript, error) {
	if spec.PhaseScript == "" {
		return nil, nil
	}
	src, err := LoadScript(spec.PhaseScript)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", spec.PhaseScript, err)
	}
	script, err := actor.CompilePhaseScript(src)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", spec.PhaseScript, err)
	}
	return script, nil
}

// Validate reports every problem with the spec, each wrapping ErrInvalidSpec.
func (s EncounterSpec) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidSpec, fmt.Sprintf(format, args...)))
	}

	a := s.Arena
	if a.MaxX <= a.MinX {
		bad("arena max_x %.2f must exceed min_x %.2f", a.MaxX, a.MinX)
	}
	if a.Gravity < 0 {
		bad("arena gravity must not be negative")
	}
	if a.CeilingY != 0 && a.CeilingY <= a.FloorY+s.Boss.Height+s.Boss.Flight.Height {
		bad("arena ceiling_y leaves no room to fly")
	}
	if s.Player.SpawnX < a.MinX || s.Player.SpawnX > a.MaxX {
		bad("player spawn_x %.2f outside the arena", s.Player.SpawnX)
	}
	if s.Boss.SpawnX < a.MinX || s.Boss.SpawnX > a.MaxX {
		bad("boss spawn_x %.2f outside the arena", s.Boss.SpawnX)
	}

	p := s.Player.PlayerConfig
	if p.Health <= 0 || p.Width <= 0 || p.Height <= 0 {
		bad("player health and size must be positive")
	}
	if p.Ranged.DrawTime <= 0 || p.Ranged.DrawTime > p.Ranged.ClipLength {
		bad("player ranged draw_time must be within clip_length")
	}
	checkMelee(bad, "player", p.Melee)
	if !finite(p.AttackPower) {
		bad("player attack_power must be finite")
	}
	checkProjectile(bad, "player arrow", p.Ranged.Arrow)

	b := s.Boss.BossConfig
	if b.Health <= 0 || b.Width <= 0 || b.Height <= 0 {
		bad("boss health and size must be positive")
	}
	if b.MaintainDistance > b.RangedThreshold || b.RangedThreshold > b.DetectionRange {
		bad("boss ranges must satisfy maintain_distance <= ranged_threshold <= detection_range")
	}
	if b.Ranged.FireAt > b.Ranged.Duration {
		bad("boss ranged fire_at after the attack ends")
	}
	if b.Flame.CastAt > b.Flame.Duration {
		bad("boss flame cast_at after the skill ends")
	}
	checkMelee(bad, "boss", b.Melee)
	if !finite(b.AttackPower) {
		bad("boss attack_power must be finite")
	}
	checkProjectile(bad, "boss bolt", b.Ranged.Bolt)
	checkProjectile(bad, "boss flame pillar", b.Flame.Pillar)
	checkProjectile(bad, "boss fire rain", b.Flight.Rain)
	f := b.Flight
	if f.LegMin <= 0 || f.LegMax < f.LegMin {
		bad("boss flight legs must satisfy 0 < leg_min <= leg_max")
	}
	if f.RangeMax < f.RangeMin {
		bad("boss flight range_max below range_min")
	}
	if f.RainInterval <= 0 {
		bad("boss flight rain_interval must be positive")
	}

	if s.Policy.ChooseAttackDelay < 0 {
		bad("policy choose_attack_delay must not be negative")
	}

	for i, ph := range s.Phases {
		if ph.Name == "" {
			bad("phase %d has no name", i)
		}
		if ph.HPTrigger < 0 || ph.HPTrigger > 1 {
			bad("phase %q hp_trigger %.2f outside [0, 1]", ph.Name, ph.HPTrigger)
		}
		if i > 0 && ph.HPTrigger > s.Phases[i-1].HPTrigger {
			bad("phase %q hp_trigger rises above the phase before it", ph.Name)
		}
		if !finite(ph.AttackPowerBonus) || !finite(ph.CooldownScale) {
			bad("phase %q modifiers must be finite", ph.Name)
		}
		if ph.CooldownScale < 0 {
			bad("phase %q cooldown_scale must not be negative", ph.Name)
		}
	}

	for _, c := range s.Audio {
		if c.Frequency <= 0 || c.Duration <= 0 {
			bad("audio cue %q needs a positive frequency and duration", c.Name)
		}
	}
	return errors.Join(errs...)
}

func checkMelee(bad func(string, ...any), who string, m actor.MeleeConfig) {
	if m.WindowStart < 0 || m.WindowStart > m.WindowEnd || m.WindowEnd > m.Duration {
		bad("%s melee window must satisfy 0 <= window_start <= window_end <= duration", who)
	}
	if m.Range <= 0 {
		bad("%s melee range must be positive", who)
	}
	if !(m.Multiplier >= 0) || !finite(m.Multiplier) {
		bad("%s melee damage_multiplier must be finite and not negative", who)
	}
}

func checkProjectile(bad func(string, ...any), who string, p actor.ProjectileConfig) {
	if !(p.Multiplier >= 0) || !finite(p.Multiplier) {
		bad("%s damage_multiplier must be finite and not negative", who)
	}
	if !p.OncePerTarget && !(p.Interval > 0) {
		bad("%s needs once_per_target or a positive interval", who)
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
