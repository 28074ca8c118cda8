package proj

import (
	"math"

	"github.com/golang/geo/s1"
	"golang.org/x/image/math/f64"
)

// Perspective is a pinhole projection with a vertical field of view. It
// has no seam, and cannot show more than a hemisphere.
type Perspective struct {
	base
	tanFovy2 float64
	aspect   float64
}

// NewPerspective returns a perspective projection with the given vertical
// field of view over a w×h window.
func NewPerspective(fovy s1.Angle, w, h float64) *Perspective {
	return &Perspective{
		base:     base{w: w, h: h},
		tanFovy2: math.Tan(fovy.Radians() / 2),
		aspect:   w / h,
	}
}

// Project implements Projection. Forward projection is scale invariant, so
// positions and directions are treated alike; points behind the camera get
// a negative w and fail the depth planes of the clip test.
func (p *Perspective) Project(op Op, v f64.Vec4) (f64.Vec4, bool) {
	if op&OpBackward != 0 {
		x, y := p.unflipNDC(v[0], v[1])
		d := f64.Vec4{
			x * p.tanFovy2 * p.aspect,
			y * p.tanFovy2,
			-1,
			0,
		}
		n := math.Sqrt(d[0]*d[0] + d[1]*d[1] + 1)
		return f64.Vec4{d[0] / n, d[1] / n, d[2] / n, 0}, true
	}

	f := 1 / p.tanFovy2
	clip := f64.Vec4{v[0] * f / p.aspect, v[1] * f, 0, -v[2]}
	if op&OpToWindow == 0 {
		return clip, v[2] < 0
	}
	if clip[3] <= 0 {
		// No window image behind the camera. NaN coordinates let callers
		// that ignore the return value still detect the failed sample.
		return f64.Vec4{math.NaN(), math.NaN(), 0, 1}, false
	}
	wx, wy := p.ndcToWindow(clip[0]/clip[3], clip[1]/clip[3])
	return f64.Vec4{wx, wy, 0, 1}, true
}
