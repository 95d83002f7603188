package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// TPS is the fixed simulation cadence the frontends drive the encounter at.
const TPS = 60

// FixedDelta is the elapsed time of one simulation tick in seconds.
const FixedDelta = 1.0 / TPS

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// LerpVec interpolates between two points with t clamped to [0,1].
func LerpVec(a, b cp.Vector, t float64) cp.Vector {
	return a.Lerp(b, Clamp(t, 0, 1))
}

// AngleBetween returns the unsigned angle in radians between two vectors.
// Zero-length vectors yield math.Pi so callers treat them as out of tolerance.
func AngleBetween(a, b cp.Vector) float64 {
	la := a.Length()
	lb := b.Length()
	if la == 0 || lb == 0 {
		return math.Pi
	}
	cos := Clamp(a.Dot(b)/(la*lb), -1, 1)
	return math.Acos(cos)
}

// FacingVector returns the unit horizontal vector for a facing flag.
func FacingVector(facingLeft bool) cp.Vector {
	if facingLeft {
		return cp.Vector{X: -1}
	}
	return cp.Vector{X: 1}
}
