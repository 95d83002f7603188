package actor

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
)

type FlightPhase int

const (
	FlightGrounded FlightPhase = iota
	FlightAscend
	FlightBarrage
	FlightDescend
	FlightForcedDescend
)

func (p FlightPhase) String() string {
	switch p {
	case FlightAscend:
		return "ascend"
	case FlightBarrage:
		return "barrage"
	case FlightDescend:
		return "descend"
	case FlightForcedDescend:
		return "forced_descend"
	}
	return "grounded"
}

// Flyer is the part of a body the flight script steers directly.
type Flyer interface {
	Position() cp.Vector
	SetPosition(p cp.Vector)
}

// FlightScript is the ascend, hover-and-barrage, descend sequence. It is a
// phase plus elapsed-time object advanced once per tick; cancelling swaps the
// current phase for a short forced descent.
type FlightScript struct {
	cfg    FlightConfig
	rng    *rand.Rand
	flyer   Flyer
	onDrop  func(at cp.Vector)
	onPhase func(FlightPhase)

	phase   FlightPhase
	elapsed float64
	from    cp.Vector
	to      cp.Vector
	span    float64

	groundY float64
	anchorX float64

	airtime float64
	rain    float64
}

func NewFlightScript(cfg FlightConfig, flyer Flyer, rng *rand.Rand, onDrop func(at cp.Vector)) *FlightScript {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &FlightScript{cfg: cfg, rng: rng, flyer: flyer, onDrop: onDrop}
}

// OnPhase registers fn to be called with every phase the script enters,
// including a forced descent and the final landing. Stop is silent.
func (f *FlightScript) OnPhase(fn func(FlightPhase)) {
	f.onPhase = fn
}

// Start begins a new sequence. groundY is the altitude to land back on and
// anchorX the centre of the horizontal hover range. A sequence already in
// flight is discarded first.
func (f *FlightScript) Start(groundY, anchorX float64) {
	f.Stop()
	f.groundY = groundY
	f.anchorX = anchorX
	pos := f.flyer.Position()
	f.begin(FlightAscend, pos, cp.Vector{X: pos.X, Y: groundY + f.cfg.Height}, f.cfg.AscendDuration)
}

// Advance moves the sequence forward by dt and reports whether it finished
// during this call.
func (f *FlightScript) Advance(dt float64) bool {
	switch f.phase {
	case FlightGrounded:
		return false
	case FlightBarrage:
		f.barrage(dt)
		return false
	}

	f.elapsed += dt
	if !f.step() {
		return false
	}
	switch f.phase {
	case FlightAscend:
		f.airtime = 0
		f.rain = 0
		f.enter(FlightBarrage)
		f.nextLeg()
		return false
	default:
		f.enter(FlightGrounded)
		return true
	}
}

// Cancel abandons the current phase for a forced descent. It is a no-op when
// grounded or already descending by force.
func (f *FlightScript) Cancel() {
	switch f.phase {
	case FlightGrounded, FlightForcedDescend:
		return
	}
	pos := f.flyer.Position()
	f.begin(FlightForcedDescend, pos, cp.Vector{X: pos.X, Y: f.groundY}, f.cfg.ForcedDescend)
}

// Stop drops the sequence where it is.
func (f *FlightScript) Stop() {
	f.phase = FlightGrounded
	f.elapsed = 0
}

func (f *FlightScript) Phase() FlightPhase { return f.phase }

func (f *FlightScript) Running() bool { return f.phase != FlightGrounded }

// Airborne reports whether the actor is in a phase that ignores damage.
// A forced descent is not.
func (f *FlightScript) Airborne() bool {
	switch f.phase {
	case FlightAscend, FlightBarrage, FlightDescend:
		return true
	}
	return false
}

// GroundY is the altitude the sequence lands on.
func (f *FlightScript) GroundY() float64 { return f.groundY }

func (f *FlightScript) enter(phase FlightPhase) {
	f.phase = phase
	if f.onPhase != nil {
		f.onPhase(phase)
	}
}

func (f *FlightScript) begin(phase FlightPhase, from, to cp.Vector, span float64) {
	f.elapsed = 0
	f.from = from
	f.to = to
	f.span = span
	if span <= 0 {
		f.flyer.SetPosition(to)
	}
	f.enter(phase)
}

// step interpolates the current leg and reports whether it reached its end.
func (f *FlightScript) step() bool {
	if f.span <= 0 || f.elapsed >= f.span {
		f.flyer.SetPosition(f.to)
		return true
	}
	f.flyer.SetPosition(common.LerpVec(f.from, f.to, f.elapsed/f.span))
	return false
}

func (f *FlightScript) nextLeg() {
	pos := f.flyer.Position()
	x := f.anchorX + f.cfg.RangeMin + f.rng.Float64()*(f.cfg.RangeMax-f.cfg.RangeMin)
	span := f.cfg.LegMin
	if f.cfg.LegMax > f.cfg.LegMin {
		span += f.rng.Float64() * (f.cfg.LegMax - f.cfg.LegMin)
	}
	f.from = pos
	f.to = cp.Vector{X: x, Y: pos.Y}
	f.span = span
	f.elapsed = 0
}

func (f *FlightScript) barrage(dt float64) {
	f.elapsed += dt
	legDone := f.step()

	f.rain -= dt
	if f.rain <= 0 {
		if f.onDrop != nil {
			pos := f.flyer.Position()
			f.onDrop(cp.Vector{X: pos.X, Y: pos.Y - f.cfg.RainDrop})
		}
		f.rain = f.cfg.RainInterval
	}

	f.airtime += dt
	if f.airtime >= f.cfg.Duration {
		pos := f.flyer.Position()
		f.begin(FlightDescend, pos, cp.Vector{X: pos.X, Y: f.groundY}, f.cfg.DescendDuration)
		return
	}
	if legDone {
		f.nextLeg()
	}
}
