package skypaint

import (
	"math"

	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/geom"
	"github.com/astroviz/skypaint/internal/debug"
	"github.com/astroviz/skypaint/uvmap"
)

// The clip predicates are conservative: they may answer "not clipped" for
// content that turns out to be hidden, but never "clipped" for anything
// visible. Callers use them to skip work, not to decide final visibility.

// IsCapClipped reports whether no direction of the cap can be visible in
// the given frame. Requires clip info from RefreshClipInfo.
func (p *Painter) IsCapClipped(f Frame, c geom.Cap) bool {
	ci := &p.clip[f]
	if !ci.BoundingCap.Intersects(c) {
		return true
	}
	if p.Flags&HideBelowHorizon != 0 && !ci.SkyCap.Intersects(c) {
		return true
	}
	if ci.HasSideCaps {
		for i := range ci.SideCaps {
			if !ci.SideCaps[i].Intersects(c) {
				return true
			}
		}
	}
	return false
}

// IsPointClipped reports whether a direction in the given frame is
// certainly off screen. Set normalized when pos is already a unit vector
// to skip the normalization.
func (p *Painter) IsPointClipped(f Frame, pos r3.Vector, normalized bool) bool {
	v := pos
	if !normalized {
		v = v.Normalize()
	}
	debug.Assert(geom.IsUnit(v), "point clip test needs a unit vector")
	ci := &p.clip[f]
	if !ci.BoundingCap.ContainsVector(v) {
		return true
	}
	if p.Flags&HideBelowHorizon != 0 && !ci.SkyCap.ContainsVector(v) {
		return true
	}
	if ci.HasSideCaps {
		for i := range ci.SideCaps {
			if !ci.SideCaps[i].ContainsVector(v) {
				return true
			}
		}
	}
	return false
}

// IsQuadClipped reports whether a UV-mapped patch is certainly invisible.
// outside marks sky patches that only need the cap tests; solid-body
// patches (outside false) additionally get back-face culled against the
// direction to the body center.
func (p *Painter) IsQuadClipped(f Frame, m *uvmap.Map, outside bool) bool {
	if p.Proj == nil {
		return false
	}

	if outside {
		bc := m.BoundingCap()
		ctr := geom.Mat4MulDir(p.Transform, bc.Center)
		debug.Assert(geom.IsUnit(ctr), "transformed cap center not normalized")
		if p.IsCapClipped(f, geom.CapFromCos(ctr, bc.CosAngle)) {
			return true
		}
	}

	// Low-order tiles are too distorted for the corner tests below to be
	// trusted; take the answer from the four children instead.
	if m.Order < 2 {
		for _, child := range m.Subdivide() {
			if !p.IsQuadClipped(f, child, outside) {
				return false
			}
		}
		return true
	}

	corners := m.Grid(1)
	var clip [4]f64.Vec4
	for i, c := range corners {
		c[3] = 1
		v := geom.Mat4MulVec4(p.Transform, c)
		v = p.convertVec4(f, FrameView, v)
		clip[i], _ = p.Proj.Project(0, v)
		debug.Assert(!math.IsNaN(clip[i][0]), "projected corner is NaN")
	}
	if geom.IsClipped(clip[:]) {
		return true
	}

	// Solid-body tiles whose four corners all face away from the viewer
	// are on the far side of the body. The test compares corner normals
	// with the direction to the body center rather than view z values,
	// which projection distortion would falsify. Near-planar tiles only,
	// hence the order > 1 restriction. A zero translation means the body
	// is centered on the viewer and has no far side.
	if tr := geom.Mat4Translation(p.Transform); !outside && m.Order > 1 && tr.Norm2() > 0 {
		dir := p.convert(f, FrameView, true, tr.Normalize())
		for _, c := range corners {
			n := geom.Mat4MulDir(p.Transform, geom.XYZ(c)).Normalize()
			n = p.convert(f, FrameView, true, n)
			if n.Dot(dir) < 0 {
				return false
			}
		}
		return true
	}

	return false
}

// IsHealpixClipped reports whether a nested healpix tile is certainly
// invisible.
func (p *Painter) IsHealpixClipped(f Frame, order int, pix int64, outside bool) bool {
	return p.IsQuadClipped(f, uvmap.NewHealpix(order, pix), outside)
}

// IsWindowPointClipped reports whether a window-space point lies outside
// the window rectangle.
func (p *Painter) IsWindowPointClipped(pt f64.Vec2) bool {
	w, h := p.windowSize()
	return pt[0] < 0 || pt[0] > w || pt[1] < 0 || pt[1] > h
}

// IsWindowCircleClipped reports whether a window-space circle lies fully
// outside the window rectangle.
func (p *Painter) IsWindowCircleClipped(c f64.Vec2, radius float64) bool {
	w, h := p.windowSize()
	return !intersectCircleRect(c, radius, w, h)
}

// intersectCircleRect reports whether a circle touches the axis-aligned
// rectangle spanning (0, 0) to (w, h).
func intersectCircleRect(c f64.Vec2, r, w, h float64) bool {
	dx := math.Abs(c[0] - w/2)
	dy := math.Abs(c[1] - h/2)

	if dx > w/2+r || dy > h/2+r {
		return false
	}
	if dx <= w/2 || dy <= h/2 {
		return true
	}
	cornerDist := (dx-w/2)*(dx-w/2) + (dy-h/2)*(dy-h/2)
	return cornerDist <= r*r
}
