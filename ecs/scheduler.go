package ecs

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// Scheduler runs its systems in registration order. The order is part of the
// simulation contract: motion before collision before expiry.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		if sys != nil {
			s.systems = append(s.systems, sys)
		}
	}
	return s
}

// Update advances the world clock by dt seconds and runs every system.
func (s *Scheduler) Update(w *World, dt float64) {
	if w == nil {
		return
	}
	w.dt = dt
	w.tick++
	for _, sys := range s.systems {
		sys.Update(w)
	}
}
