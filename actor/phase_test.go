package actor

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/d5/tengo/v2"
	ecscomp "github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPhases() []PhaseConfig {
	return []PhaseConfig{
		{Name: "opening", HPTrigger: 1},
		{Name: "enraged", HPTrigger: 0.5, AttackPowerBonus: 10, CooldownScale: 0.5},
	}
}

func TestPhaseScriptNext(t *testing.T) {
	s, err := CompilePhaseScript([]byte(`
if hp_ratio <= 0.5 && phase < phase_count - 1 {
	next_phase = phase + 1
}
`))
	require.NoError(t, err)

	cases := []struct {
		name  string
		ratio float64
		phase int
		want  int
	}{
		{"healthy", 0.9, 0, 0},
		{"wounded", 0.4, 0, 1},
		{"last_phase", 0.1, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := s.Next(PhaseInput{HPRatio: c.ratio, Phase: c.phase, Count: 2})
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestPhaseScriptUsesMathModule(t *testing.T) {
	s, err := CompilePhaseScript([]byte(`
math := import("math")
next_phase = math.floor(elapsed / 30.0)
`))
	require.NoError(t, err)
	got, err := s.Next(PhaseInput{HPRatio: 1, Elapsed: 65, Count: 4})
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestPhaseScriptSeesTriggers(t *testing.T) {
	s, err := CompilePhaseScript([]byte(`
for i := phase + 1; i < phase_count; i++ {
	if hp_ratio <= triggers[i] {
		next_phase = i
	}
}
`))
	require.NoError(t, err)
	got, err := s.Next(PhaseInput{HPRatio: 0.25, Count: 3, Triggers: []float64{1, 0.6, 0.3}})
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	got, err = s.Next(PhaseInput{HPRatio: 0.5, Count: 3, Triggers: []float64{1, 0.6, 0.3}})
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestPhaseScriptCompileError(t *testing.T) {
	_, err := CompilePhaseScript([]byte(`next_phase = `))
	assert.Error(t, err)
}

func TestDeclareStopsAtRejectedGlobal(t *testing.T) {
	script := tengo.NewScript([]byte(`next_phase = phase`))
	err := declare(script, []global{
		{"phase", 0},
		{"bad", make(chan int)},
		{"next_phase", 0},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declare bad")

	require.NoError(t, declare(script, phaseGlobals))
	_, err = script.Compile()
	assert.NoError(t, err)
}

func TestNewPhaseControllerWithoutPhases(t *testing.T) {
	assert.Nil(t, NewPhaseController(nil, nil))
}

func TestPhaseAdvancesOnHealthTrigger(t *testing.T) {
	r := bossRig(t, 5, 0, func(o *rigOptions) { o.phases = NewPhaseController(twoPhases(), nil) })
	require.Equal(t, 0, r.boss.Phase())
	assert.Equal(t, 20.0, r.boss.AttackPower().Get())

	r.boss.ApplyDamage(200)
	r.tickBoss()
	assert.Equal(t, 0, r.boss.Phase(), "60% health stays in the opening")

	until(t, 60, r.tickBoss, func() bool { return r.boss.State() != BossHit })
	r.boss.ApplyDamage(60)
	r.tickBoss()
	assert.Equal(t, 1, r.boss.Phase())
	assert.Equal(t, 30.0, r.boss.AttackPower().Get())

	changed := r.rec.Filter(event.TypePhaseChanged, event.ActorBoss)
	require.Len(t, changed, 1)
	assert.Equal(t, "enraged", changed[0].State)

	// cooldowns restart at half length in the new phase
	until(t, 60, r.tickBoss, func() bool { return r.boss.State() != BossHit })
	r.boss.FlameCooldown().Clear()
	until(t, 200, r.tickBoss, func() bool { return len(r.spawns.of(ecscomp.KindFlamePillar)) > 0 })
	assert.InDelta(t, 10, r.boss.FlameCooldown().Remaining(), 1e-9)
	assert.Equal(t, 30.0, r.spawns.of(ecscomp.KindFlamePillar)[0].Attack.Damage)
}

func TestPhaseNeverMovesBackward(t *testing.T) {
	r := bossRig(t, 5, 0, func(o *rigOptions) { o.phases = NewPhaseController(twoPhases(), nil) })
	r.boss.ApplyDamage(300)
	r.tickBoss()
	require.Equal(t, 1, r.boss.Phase())

	r.boss.HealthStat().Set(500)
	r.tickBoss()
	assert.Equal(t, 1, r.boss.Phase())
}

func TestBrokenPhaseScriptFallsBackToHealth(t *testing.T) {
	script, err := CompilePhaseScript([]byte(`next_phase = phase()`))
	require.NoError(t, err)

	var buf bytes.Buffer
	r := bossRig(t, 5, 0, func(o *rigOptions) {
		o.phases = NewPhaseController(twoPhases(), script)
		o.logger = log.New(&buf, "", 0)
	})
	for i := 0; i < 5; i++ {
		r.tickBoss()
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "phase script"))
	assert.Equal(t, 0, r.boss.Phase())

	r.boss.ApplyDamage(300)
	r.tickBoss()
	assert.Equal(t, 1, r.boss.Phase())
}
