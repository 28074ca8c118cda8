package skypaint

import (
	"math"

	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/geom"
	"github.com/astroviz/skypaint/internal/debug"
	"github.com/astroviz/skypaint/proj"
)

// ProjectPoint maps a position or direction in a frame to window
// coordinates. pos is homogeneous: w = 0 for a unit direction at infinity,
// w = 1 for a position. clipFirst runs the fast point clip test before
// projecting; at-infinity inputs count as already normalized there.
//
// The painter transform is not applied; use a quad or mesh operation for
// transformed geometry.
//
// Returns false when the point does not project: behind the camera,
// outside the projection domain, or culled by clipFirst.
func (p *Painter) ProjectPoint(f Frame, pos f64.Vec4, clipFirst bool) (f64.Vec2, bool) {
	debug.Assert(geom.Mat4IsIdentity(p.Transform), "transform not supported here")
	if p.Proj == nil {
		return f64.Vec2{}, false
	}
	atInf := pos[3] == 0
	if clipFirst && p.IsPointClipped(f, geom.XYZ(pos), atInf) {
		return f64.Vec2{}, false
	}
	v := p.convert(f, FrameView, atInf, geom.XYZ(pos))
	op := proj.OpToWindow
	if atInf {
		op |= proj.OpAlreadyNormalized
	}
	out, ok := p.Proj.Project(op, geom.Vec4(v, pos[3]))
	return f64.Vec2{out[0], out[1]}, ok
}

// UnprojectPoint maps a window position back to a unit direction in a
// frame. Fails where the projection has no inverse; the direction is then
// taken from the edge of the projectable region, so pointing queries just
// outside an all-sky map still resolve to something sensible.
func (p *Painter) UnprojectPoint(f Frame, win f64.Vec2) (r3.Vector, bool) {
	if p.Proj == nil {
		return r3.Vector{}, false
	}
	w, h := p.Proj.WindowSize()
	ndc := f64.Vec4{win[0]/w*2 - 1, 1 - win[1]/h*2, 0, 0}
	v, ok := p.Proj.Project(proj.OpBackward, ndc)
	return p.convert(FrameView, f, true, geom.XYZ(v)), ok
}

// ProjectEllipse maps a small sky ellipse to a window-space ellipse. The
// input is the ellipse of an object at right ascension ra and declination
// de (radians in the target frame), with angular sizes sizeX and sizeY
// (full extents, radians) and position angle from north. A NaN sizeY makes
// the ellipse circular; angle may then stay NaN and the window angle is
// reported as zero. A NaN angle with a finite sizeY counts as zero.
//
// The window ellipse comes from projecting the center and one endpoint of
// each semi-axis, so it follows the local distortion of the projection.
// sizeX zero short-circuits to a zero-size result at the projected center.
func (p *Painter) ProjectEllipse(f Frame, ra, de, angle, sizeX, sizeY float64) (pos, size f64.Vec2, winAngle float64, ok bool) {
	debug.Assert(!math.IsNaN(ra), "ra is NaN")
	debug.Assert(!math.IsNaN(de), "de is NaN")
	debug.Assert(!math.IsNaN(sizeX), "sizeX is NaN")

	if math.IsNaN(sizeY) {
		sizeY = sizeX
	} else if math.IsNaN(angle) {
		angle = 0
	}

	base := geom.Mat3RotateY(geom.Mat3RotateZ(geom.Mat3Identity(), ra), -de)

	c, cok := p.projectEllipseDir(f, base)
	if sizeX == 0 {
		return c, f64.Vec2{}, 0, cok
	}

	m := base
	if !math.IsNaN(angle) {
		m = geom.Mat3RotateX(m, -angle)
	}
	m = geom.Mat3Scale(m, 1, sizeY/sizeX, 1)

	a, aok := p.projectEllipseDir(f, geom.Mat3RotateZ(m, sizeX/2))
	b, bok := p.projectEllipseDir(f, geom.Mat3RotateZ(geom.Mat3RotateX(m, -math.Pi/2), sizeX/2))

	if !math.IsNaN(angle) {
		winAngle = math.Atan2(a[1]-c[1], a[0]-c[0])
	}
	size = f64.Vec2{
		2 * math.Hypot(a[0]-c[0], a[1]-c[1]),
		2 * math.Hypot(b[0]-c[0], b[1]-c[1]),
	}
	return c, size, winAngle, cok && aok && bok
}

// projectEllipseDir projects the image of the x axis under m, as a unit
// direction in the given frame, to window coordinates.
func (p *Painter) projectEllipseDir(f Frame, m f64.Mat3) (f64.Vec2, bool) {
	d := geom.Mat3MulVector(m, r3.Vector{X: 1}).Normalize()
	v := p.convert(f, FrameView, true, d)
	if p.Proj == nil {
		return f64.Vec2{}, false
	}
	out, ok := p.Proj.Project(proj.OpToWindow|proj.OpAlreadyNormalized, geom.Vec4(v, 0))
	return f64.Vec2{out[0], out[1]}, ok
}
