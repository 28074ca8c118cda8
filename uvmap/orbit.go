package uvmap

import (
	"math"

	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/geom"
)

// OrbitElements are classical two-body elements. Angles are in radians,
// times in MJD, distances in the caller's unit (typically AU).
type OrbitElements struct {
	Epoch float64 // epoch of the elements, MJD
	In    float64 // inclination
	Om    float64 // longitude of the ascending node
	W     float64 // argument of periapsis
	A     float64 // semi-major axis
	N     float64 // mean motion, rad/day; must be nonzero
	Ec    float64 // eccentricity
	Ma    float64 // mean anomaly at the epoch
}

// OrbitFunc computes the position of an orbiting body at the given MJD.
// The solver is supplied by the caller; the painter only samples it.
type OrbitFunc func(mjd float64, el OrbitElements) r3.Vector

// NewOrbit maps u over one orbital period starting at the epoch, so the
// painted curve closes on itself. Points are positions (w = 1).
func NewOrbit(solve OrbitFunc, el OrbitElements) *Map {
	period := 2 * math.Pi / el.N
	return &Map{
		Fn: func(uv f64.Vec2) f64.Vec4 {
			p := solve(el.Epoch+uv[0]*period, el)
			return f64.Vec4{p.X, p.Y, p.Z, 1}
		},
		UV: geom.Mat3Identity(),
	}
}
