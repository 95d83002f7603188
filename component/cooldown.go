package component

// Cooldown is a countdown in seconds decremented once per simulation tick.
// It is ready when the remaining time is at or below zero.
type Cooldown struct {
	remaining float64
}

// NewCooldown creates a cooldown that becomes ready after d seconds.
func NewCooldown(d float64) Cooldown {
	return Cooldown{remaining: d}
}

// Tick advances the cooldown by dt seconds.
func (c *Cooldown) Tick(dt float64) {
	if c == nil || c.remaining <= 0 {
		return
	}
	c.remaining -= dt
}

// Ready reports whether the cooldown has elapsed.
func (c *Cooldown) Ready() bool {
	return c == nil || c.remaining <= 0
}

// Reset restarts the countdown. A non-positive duration leaves it ready.
func (c *Cooldown) Reset(d float64) {
	if c == nil {
		return
	}
	c.remaining = d
}

// Clear makes the cooldown ready immediately.
func (c *Cooldown) Clear() {
	if c == nil {
		return
	}
	c.remaining = 0
}

// Remaining returns the seconds left, never negative.
func (c *Cooldown) Remaining() float64 {
	if c == nil || c.remaining < 0 {
		return 0
	}
	return c.remaining
}
