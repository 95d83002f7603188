package component

// Lifetime destroys an entity once Remaining seconds have elapsed,
// regardless of collisions.
type Lifetime struct {
	Remaining float64
}

var LifetimeKind = Register[Lifetime]("lifetime")
