package proj

import (
	"math"

	"github.com/golang/geo/s1"
	"golang.org/x/image/math/f64"
)

// Stereographic projects the sphere from the point opposite the view
// center onto a plane. It is conformal, has no seam, and can display any
// field of view short of the full sphere, which makes it the usual choice
// for wide sky views.
type Stereographic struct {
	base
	scaleX, scaleY float64
}

// NewStereographic returns a stereographic projection whose vertical field
// of view spans the window height.
func NewStereographic(fovy s1.Angle, w, h float64) *Stereographic {
	// A direction at angle theta from the view center lands at
	// 2·tan(theta/2) on the projection plane.
	sy := 2 * math.Tan(fovy.Radians()/4)
	return &Stereographic{
		base:   base{w: w, h: h},
		scaleX: sy * w / h,
		scaleY: sy,
	}
}

// Project implements Projection.
func (p *Stereographic) Project(op Op, v f64.Vec4) (f64.Vec4, bool) {
	if op&OpBackward != 0 {
		nx, ny := p.unflipNDC(v[0], v[1])
		X := nx * p.scaleX
		Y := ny * p.scaleY
		q := (X*X + Y*Y) / 4
		// Inverse of X = 2x/(1−z): lands on the unit sphere for any
		// plane point, so backward projection never fails.
		d := f64.Vec4{X / (q + 1), Y / (q + 1), (q - 1) / (q + 1), 0}
		return d, true
	}

	d := viewDir(op, v)
	// Divisor (1−z)/2 vanishes only at the antipode of the view center.
	h := (1 - d.Z) / 2
	if h <= 0 {
		if op&OpToWindow != 0 {
			return f64.Vec4{math.NaN(), math.NaN(), 0, 1}, false
		}
		return f64.Vec4{}, false
	}
	clip := f64.Vec4{d.X / h / p.scaleX, d.Y / h / p.scaleY, 0, 1}
	if op&OpToWindow == 0 {
		return clip, true
	}
	wx, wy := p.ndcToWindow(clip[0], clip[1])
	return f64.Vec4{wx, wy, 0, 1}, true
}
