package geom

import (
	"math"

	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"
)

// XYZ returns the spatial part of a homogeneous vector.
func XYZ(v f64.Vec4) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Vec4 builds a homogeneous vector from a spatial vector and w. Use w = 0
// for directions (points at infinity) and w = 1 for positions.
func Vec4(v r3.Vector, w float64) f64.Vec4 {
	return f64.Vec4{v.X, v.Y, v.Z, w}
}

// Lerp4 interpolates a and b component-wise, w included.
func Lerp4(a, b f64.Vec4, t float64) f64.Vec4 {
	return f64.Vec4{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		a[3] + (b[3]-a[3])*t,
	}
}

// Normalize4 returns v with its spatial part scaled to unit length. The w
// component is preserved. A zero spatial part is returned unchanged.
func Normalize4(v f64.Vec4) f64.Vec4 {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n == 0 {
		return v
	}
	return f64.Vec4{v[0] / n, v[1] / n, v[2] / n, v[3]}
}

// IsUnit reports whether v has unit length within a loose tolerance.
// The clip-info and quad tests assert this on their inputs.
func IsUnit(v r3.Vector) bool {
	return math.Abs(v.Norm2()-1) < 1e-9
}
