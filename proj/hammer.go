package proj

import (
	"math"

	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"
)

// Hammer is the equal-area all-sky projection. The whole sphere maps into
// a 2:1 ellipse; the half great circle directly behind the viewer is cut
// open and becomes the ellipse outline, so geometry crossing it must be
// split or dropped.
type Hammer struct {
	base
}

// NewHammer returns a Hammer projection filling a w×h window.
func NewHammer(w, h float64) *Hammer {
	return &Hammer{base: base{w: w, h: h}}
}

// Project implements Projection.
func (p *Hammer) Project(op Op, v f64.Vec4) (f64.Vec4, bool) {
	if op&OpBackward != 0 {
		nx, ny := p.unflipNDC(v[0], v[1])
		// Unscale NDC onto the classic Hammer plane.
		X := nx * 2 * math.Sqrt2
		Y := ny * math.Sqrt2
		q := 1 - (X/4)*(X/4) - (Y/2)*(Y/2)
		// Points outside the 2:1 ellipse have no preimage. The formula is
		// still evaluated with q clamped so the caller gets a unit
		// direction from the rim region rather than garbage.
		ok := q >= 0.5
		if q < 0 {
			q = 0
		}
		z := math.Sqrt(q)
		lon := 2 * math.Atan2(z*X/2, 2*q-1)
		sinLat := clampUnit(z * Y)
		cosLat := math.Sqrt(math.Max(0, 1-sinLat*sinLat))
		sl, cl := math.Sincos(lon)
		return f64.Vec4{cosLat * sl, sinLat, -cosLat * cl, 0}, ok
	}

	d := viewDir(op, v)
	lon := math.Atan2(d.X, -d.Z)
	lat := math.Asin(clampUnit(d.Y))
	cl := math.Cos(lat)
	den := math.Sqrt(1 + cl*math.Cos(lon/2))
	X := 2 * math.Sqrt2 * cl * math.Sin(lon/2) / den
	Y := math.Sqrt2 * math.Sin(lat) / den
	clip := f64.Vec4{X / (2 * math.Sqrt2), Y / math.Sqrt2, 0, 1}
	if op&OpToWindow == 0 {
		return clip, true
	}
	wx, wy := p.ndcToWindow(clip[0], clip[1])
	return f64.Vec4{wx, wy, 0, 1}, true
}

// IntersectDiscontinuity reports whether the segment between two unit
// VIEW directions may cross the seam behind the viewer. The test keys on
// the sign change of x while either endpoint points backward; it is
// conservative near the seam plane.
func (p *Hammer) IntersectDiscontinuity(a, b r3.Vector) bool {
	if a.X*b.X > 0 {
		return false
	}
	return a.Z > 0 || b.Z > 0
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
