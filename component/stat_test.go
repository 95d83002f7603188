package component

import (
	"reflect"
	"testing"
)

func TestStatNotifiesOnChangeInOrder(t *testing.T) {
	s := NewStat(10)
	var calls []string
	s.OnChange(func(old, new int) { calls = append(calls, "first") })
	s.OnChange(func(old, new int) {
		if old != 10 || new != 7 {
			t.Errorf("listener got old=%d new=%d", old, new)
		}
		calls = append(calls, "second")
	})

	if !s.Set(7) {
		t.Fatalf("expected change")
	}
	want := []string{"first", "second"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	if s.Get() != 7 {
		t.Fatalf("value = %d, want 7", s.Get())
	}
}

func TestStatSameValueIsSilent(t *testing.T) {
	s := NewStat(3.5)
	fired := 0
	s.OnChange(func(_, _ float64) { fired++ })
	if s.Set(3.5) {
		t.Fatalf("equal assignment should report no change")
	}
	s.Set(1)
	s.Set(1)
	s.Set(2)
	if fired != 2 {
		t.Fatalf("fired = %d, want 2", fired)
	}
}

func TestStatListenerSeesCommittedValue(t *testing.T) {
	s := NewStat(5)
	s.OnChange(func(_, _ int) {
		if s.Get() != 0 {
			t.Errorf("listener saw %d before commit", s.Get())
		}
	})
	s.Set(0)
}

func TestCooldown(t *testing.T) {
	cases := []struct {
		name  string
		reset float64
		ticks int
		dt    float64
		ready bool
	}{
		{"starts_ready", 0, 0, 0.1, true},
		{"not_ready_after_reset", 1, 0, 0.1, false},
		{"partial", 1, 5, 0.1, false},
		{"elapsed", 1, 10, 0.1 + 1e-9, true},
		{"negative_reset_is_ready", -1, 0, 0.1, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var cd Cooldown
			cd.Reset(c.reset)
			for i := 0; i < c.ticks; i++ {
				cd.Tick(c.dt)
			}
			if cd.Ready() != c.ready {
				t.Fatalf("ready = %v, want %v (remaining %.3f)", cd.Ready(), c.ready, cd.Remaining())
			}
			if cd.Remaining() < 0 {
				t.Fatalf("remaining should never be negative")
			}
		})
	}
}

func TestHealthRatio(t *testing.T) {
	h := NewHealth(200)
	h.Set(50)
	if h.Ratio() != 0.25 {
		t.Fatalf("ratio = %v", h.Ratio())
	}
	h.Set(-30)
	if h.Ratio() != 0 || h.Alive() {
		t.Fatalf("overkill should clamp ratio and report dead")
	}
	if h.Get() != -30 {
		t.Fatalf("overkill must be kept, got %v", h.Get())
	}
}
