package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Phi returns the azimuthal angle of v in radians, in (-pi, pi].
func Phi(v r3.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// Theta returns the polar angle of v in radians, measured from the +Z
// axis, in [0, pi].
func Theta(v r3.Vec) float64 {
	return math.Atan2(math.Hypot(v.X, v.Y), v.Z)
}

// Midpoint returns the componentwise mean of p and q.
func Midpoint(p, q r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(p, q))
}
