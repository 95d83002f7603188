package component

// Health is the observable health stat of an actor together with its
// starting maximum. The value is signed: lethal overkill is kept so that
// callers can see how far below zero a finishing blow went.
type Health struct {
	*Stat[float64]
	Max float64
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Stat: NewStat(max), Max: max}
}

// Alive reports whether health is above zero.
func (h *Health) Alive() bool {
	return h != nil && h.Get() > 0
}

// Ratio returns current/max clamped to [0,1].
func (h *Health) Ratio() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	r := h.Get() / h.Max
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
