package actor

import "github.com/jakecoffman/cp"

// MeleeConfig times a melee strike. Window bounds are seconds since entry.
type MeleeConfig struct {
	Duration    float64 `yaml:"duration"`
	WindowStart float64 `yaml:"window_start"`
	WindowEnd   float64 `yaml:"window_end"`
	Range       float64 `yaml:"range"`
	Multiplier  float64 `yaml:"damage_multiplier"`
	Knockback   float64 `yaml:"knockback"`
}

// ProjectileConfig describes a spawned attack.
type ProjectileConfig struct {
	Speed         float64 `yaml:"speed"`
	Multiplier    float64 `yaml:"damage_multiplier"`
	Lifetime      float64 `yaml:"lifetime"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Knockback     float64 `yaml:"knockback"`
	OncePerTarget bool    `yaml:"once_per_target"`
	// Interval is the re-hit period when OncePerTarget is false.
	Interval          float64 `yaml:"interval"`
	DestroyOnHit      bool    `yaml:"destroy_on_hit"`
	CollidesWithWorld bool    `yaml:"collides_with_world"`
}

type RangedConfig struct {
	// DrawTime is when the draw phase reaches full draw; ClipLength is the
	// whole shot including release.
	DrawTime   float64 `yaml:"draw_time"`
	ClipLength float64 `yaml:"clip_length"`
	// MaxAngle is the largest deviation from facing, in degrees.
	MaxAngle      float64          `yaml:"max_angle"`
	FireOffset    cp.Vector        `yaml:"fire_offset"`
	SpawnDistance float64          `yaml:"spawn_distance"`
	Arrow         ProjectileConfig `yaml:"arrow"`
}

type PlayerConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Health      float64 `yaml:"health"`
	AttackPower float64 `yaml:"attack_power"`
	MoveSpeed   float64 `yaml:"move_speed"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	MinJumpTime float64 `yaml:"min_jump_time"`

	RollSpeedMultiplier float64 `yaml:"roll_speed_multiplier"`
	RollDuration        float64 `yaml:"roll_duration"`
	RollCooldown        float64 `yaml:"roll_cooldown"`

	MeleeCooldown float64      `yaml:"melee_cooldown"`
	Melee         MeleeConfig  `yaml:"melee"`
	Ranged        RangedConfig `yaml:"ranged"`
	HitDuration   float64      `yaml:"hit_duration"`
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Width:               0.8,
		Height:              1.6,
		Health:              100,
		AttackPower:         10,
		MoveSpeed:           5,
		JumpImpulse:         10,
		MinJumpTime:         0.3,
		RollSpeedMultiplier: 2,
		RollDuration:        0.5,
		RollCooldown:        2,
		MeleeCooldown:       1,
		Melee: MeleeConfig{
			Duration:    0.5,
			WindowStart: 0.1,
			WindowEnd:   0.4,
			Range:       1.5,
			Multiplier:  1,
		},
		Ranged: RangedConfig{
			DrawTime:      40.0 / 60.0,
			ClipLength:    1,
			MaxAngle:      45,
			FireOffset:    cp.Vector{X: 0.4, Y: 0.2},
			SpawnDistance: 0.5,
			Arrow: ProjectileConfig{
				Speed:             10,
				Multiplier:        1,
				Lifetime:          5,
				Width:             0.6,
				Height:            0.15,
				OncePerTarget:     true,
				DestroyOnHit:      true,
				CollidesWithWorld: true,
			},
		},
		HitDuration: 0.5,
	}
}

type BossRangedConfig struct {
	Duration float64          `yaml:"duration"`
	FireAt   float64          `yaml:"fire_at"`
	Bolt     ProjectileConfig `yaml:"bolt"`
}

type FlameConfig struct {
	Duration float64 `yaml:"duration"`
	CastAt   float64 `yaml:"cast_at"`
	// Offset is the distance of the inner pillars from the boss; Spacing
	// separates inner from outer.
	Offset  float64          `yaml:"offset"`
	Spacing float64          `yaml:"spacing"`
	Pillar  ProjectileConfig `yaml:"pillar"`
}

type FlightConfig struct {
	Height          float64 `yaml:"height"`
	AscendDuration  float64 `yaml:"ascend_duration"`
	Duration        float64 `yaml:"duration"`
	LegMin          float64 `yaml:"leg_min"`
	LegMax          float64 `yaml:"leg_max"`
	RangeMin        float64 `yaml:"range_min"`
	RangeMax        float64 `yaml:"range_max"`
	RainInterval    float64 `yaml:"rain_interval"`
	RainDrop        float64 `yaml:"rain_drop"`
	DescendDuration float64 `yaml:"descend_duration"`
	ForcedDescend   float64 `yaml:"forced_descend_duration"`

	Rain ProjectileConfig `yaml:"rain"`
}

type BossConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Health      float64 `yaml:"health"`
	AttackPower float64 `yaml:"attack_power"`
	MoveSpeed   float64 `yaml:"move_speed"`

	DetectionRange   float64 `yaml:"detection_range"`
	MaintainDistance float64 `yaml:"maintain_distance"`
	RangedThreshold  float64 `yaml:"ranged_threshold"`

	GeneralCooldown      float64 `yaml:"general_cooldown"`
	GeneralCooldownStart float64 `yaml:"general_cooldown_start"`
	FlameInterval        float64 `yaml:"flame_interval"`
	FlameCooldownStart   float64 `yaml:"flame_cooldown_start"`
	FlyingInterval       float64 `yaml:"flying_interval"`
	FlyingCooldownStart  float64 `yaml:"flying_cooldown_start"`

	HitDuration float64          `yaml:"hit_duration"`
	Ranged      BossRangedConfig `yaml:"ranged"`
	Melee       MeleeConfig      `yaml:"melee"`
	Flame       FlameConfig      `yaml:"flame"`
	Flight      FlightConfig     `yaml:"flight"`
}

func DefaultBossConfig() BossConfig {
	return BossConfig{
		Width:                1.6,
		Height:               2.4,
		Health:               500,
		AttackPower:          20,
		MoveSpeed:            3,
		DetectionRange:       15,
		MaintainDistance:     3,
		RangedThreshold:      7,
		GeneralCooldown:      3,
		GeneralCooldownStart: 0,
		FlameInterval:        20,
		FlameCooldownStart:   20,
		FlyingInterval:       60,
		FlyingCooldownStart:  60,
		HitDuration:          0.5,
		Ranged: BossRangedConfig{
			Duration: 1.5,
			FireAt:   0.5,
			Bolt: ProjectileConfig{
				Speed:         10,
				Multiplier:    1,
				Lifetime:      3,
				Width:         0.8,
				Height:        0.8,
				OncePerTarget: true,
			},
		},
		Melee: MeleeConfig{
			Duration:    1,
			WindowStart: 0.3,
			WindowEnd:   0.6,
			Range:       3.5,
			Multiplier:  1,
			Knockback:   5,
		},
		Flame: FlameConfig{
			Duration: 2,
			CastAt:   1,
			Offset:   2,
			Spacing:  1.5,
			Pillar: ProjectileConfig{
				Multiplier:    1,
				Lifetime:      3,
				Width:         1,
				Height:        3,
				OncePerTarget: true,
				Interval:      0.5,
			},
		},
		Flight: FlightConfig{
			Height:          5,
			AscendDuration:  1,
			Duration:        10,
			LegMin:          1,
			LegMax:          2,
			RangeMin:        -5,
			RangeMax:        5,
			RainInterval:    0.5,
			RainDrop:        0.5,
			DescendDuration: 1,
			ForcedDescend:   0.5,
			Rain: ProjectileConfig{
				Speed:             10,
				Multiplier:        1,
				Lifetime:          5,
				Width:             0.5,
				Height:            0.5,
				OncePerTarget:     true,
				DestroyOnHit:      true,
				CollidesWithWorld: true,
			},
		},
	}
}

// Policy holds the behaviours that differ between revisions of the design.
type Policy struct {
	PlayerReenterState       bool    `yaml:"player_reenter_state"`
	BossReenterState         bool    `yaml:"boss_reenter_state"`
	MeleeResetCooldownOnMiss bool    `yaml:"melee_reset_cooldown_on_miss"`
	ChooseAttackDelay        float64 `yaml:"choose_attack_delay"`
	MeleeHitAllTargets       bool    `yaml:"melee_hit_all_targets"`
}

func DefaultPolicy() Policy {
	return Policy{
		PlayerReenterState:       true,
		MeleeResetCooldownOnMiss: true,
	}
}

// PhaseConfig is one boss phase. Phases run in order and never go back.
type PhaseConfig struct {
	Name string `yaml:"name"`
	// HPTrigger starts the phase once health/max drops to or below it.
	HPTrigger        float64 `yaml:"hp_trigger"`
	AttackPowerBonus float64 `yaml:"attack_power_bonus"`
	// CooldownScale multiplies skill cooldown resets; zero means 1.
	CooldownScale float64 `yaml:"cooldown_scale"`
	CancelFlight  bool    `yaml:"cancel_flight"`
}
