// Package geom provides the spherical and linear geometry under the
// painter: spherical caps on the unit sphere, helpers over the
// golang.org/x/image/math/f64 matrix types, and the homogeneous clip test.
//
// Directions on the celestial sphere are r3.Vector values and must be unit
// length unless a function documents otherwise. Matrices are row-major with
// the column-vector convention v' = M·v, matching the f64 package layout.
package geom

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// Cap is a spherical cap: the set of unit vectors within a fixed angular
// distance of a center direction. The half-angle is stored as its cosine,
// which is the form every test needs.
type Cap struct {
	Center   r3.Vector
	CosAngle float64
}

// NewCap returns the cap with the given half-angle around center.
// The center must be a unit vector.
func NewCap(center r3.Vector, halfAngle s1.Angle) Cap {
	return Cap{Center: center, CosAngle: math.Cos(halfAngle.Radians())}
}

// CapFromCos returns the cap around center whose half-angle has the given
// cosine. cosAngle must be in [-1, 1].
func CapFromCos(center r3.Vector, cosAngle float64) Cap {
	return Cap{Center: center, CosAngle: cosAngle}
}

// PointCap returns the degenerate cap holding only the direction p.
func PointCap(p r3.Vector) Cap {
	return Cap{Center: p, CosAngle: 1}
}

// FullCap returns the cap covering the whole sphere.
func FullCap(center r3.Vector) Cap {
	return Cap{Center: center, CosAngle: -1}
}

// Angle returns the cap's half-angle.
func (c Cap) Angle() s1.Angle {
	return s1.Angle(math.Acos(clamp1(c.CosAngle)))
}

// Intersects reports whether the two caps share at least one direction.
// Touching boundaries count as intersecting.
//
// The test compares the cosine of the angular distance between the centers
// against cos(a+b) expanded as cosA·cosB − sinA·sinB, so no arc cosine is
// evaluated.
func (c Cap) Intersects(o Cap) bool {
	// Half-angles summing to pi or more cover any separation.
	if c.CosAngle+o.CosAngle <= 0 {
		return true
	}
	sa := math.Sqrt(math.Max(0, 1-c.CosAngle*c.CosAngle))
	sb := math.Sqrt(math.Max(0, 1-o.CosAngle*o.CosAngle))
	return c.Center.Dot(o.Center) >= c.CosAngle*o.CosAngle-sa*sb
}

// ContainsVector reports whether the unit direction v lies inside the cap,
// boundary included.
func (c Cap) ContainsVector(v r3.Vector) bool {
	return c.Center.Dot(v) >= c.CosAngle
}

// Contains reports whether o lies entirely inside c.
func (c Cap) Contains(o Cap) bool {
	if c.CosAngle <= -1 {
		return true
	}
	if o.CosAngle < c.CosAngle {
		return false
	}
	sc := math.Sqrt(math.Max(0, 1-c.CosAngle*c.CosAngle))
	so := math.Sqrt(math.Max(0, 1-o.CosAngle*o.CosAngle))
	return c.Center.Dot(o.Center) >= c.CosAngle*o.CosAngle+sc*so
}

func clamp1(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
