package audio

import (
	"math"
	"testing"
	"time"

	"github.com/milk9111/bossfight/event"
	"github.com/milk9111/bossfight/prefabs"
)

func TestStreamerShape(t *testing.T) {
	s, err := Streamer(prefabs.AudioSpec{Name: "a", Frequency: 440, Duration: 0.01, Volume: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	want := sampleRate.N(10*time.Millisecond) + sampleRate.N(gap)
	buf := make([][2]float64, 256)
	var all [][2]float64
	for {
		n, ok := s.Stream(buf)
		all = append(all, buf[:n]...)
		if !ok {
			break
		}
	}
	if len(all) != want {
		t.Fatalf("streamed %d samples, want %d", len(all), want)
	}
	if all[0][0] != 0 {
		t.Fatalf("cue should start silent, got %f", all[0][0])
	}
	var peak float64
	for i, smp := range all {
		if smp[0] != smp[1] {
			t.Fatalf("sample %d not mono", i)
		}
		peak = math.Max(peak, math.Abs(smp[0]))
	}
	if peak == 0 || peak > 0.5 {
		t.Fatalf("peak = %f, want in (0, 0.5]", peak)
	}
	if tail := all[len(all)-1][0]; tail != 0 {
		t.Fatalf("cue should end in silence, got %f", tail)
	}
}

func TestStreamerRejectsBadFrequency(t *testing.T) {
	if _, err := Streamer(prefabs.AudioSpec{Name: "shrill", Frequency: float64(sampleRate), Duration: 0.1}); err == nil {
		t.Fatalf("expected an error for a frequency above Nyquist")
	}
}

func TestCueSinkMatchesStateEntries(t *testing.T) {
	s := NewCueSink([]prefabs.AudioSpec{
		{Name: "jump", Actor: event.ActorPlayer, State: "Jump", Frequency: 660, Duration: 0.05, Volume: 0.3},
		{Name: "roar", Actor: event.ActorBoss, State: "FlameSkill", Frequency: 90, Duration: 0.4, Volume: 0.5},
	}, nil)
	s.Publish(event.Event{Type: event.TypeStateEntered, Actor: event.ActorPlayer, State: "Jump"})
	s.Publish(event.Event{Type: event.TypeStateEntered, Actor: event.ActorBoss, State: "Jump"})
	s.Publish(event.Event{Type: event.TypeDamaged, Actor: event.ActorBoss, State: "FlameSkill"})
	s.Publish(event.Event{Type: event.TypeStateEntered, Actor: event.ActorBoss, State: "FlameSkill"})

	got := s.Played()
	if len(got) != 2 || got[0] != "jump" || got[1] != "roar" {
		t.Fatalf("played = %v", got)
	}

	s.SetCues(nil)
	s.Publish(event.Event{Type: event.TypeStateEntered, Actor: event.ActorPlayer, State: "Jump"})
	if len(s.Played()) != 2 {
		t.Fatalf("cleared table still played a cue")
	}
	s.Close()
}
