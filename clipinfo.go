package skypaint

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/geom"
	"github.com/astroviz/skypaint/internal/debug"
)

// ClipInfo holds the visibility information of one frame as computed by
// RefreshClipInfo: a bounding cap around the viewport, optional hemisphere
// caps along the viewport edges, and the above-horizon cap.
type ClipInfo struct {
	// BoundingCap contains every direction visible in the viewport,
	// padded by the configured margin. It may be much larger than the
	// viewport; the side caps tighten the test when available.
	BoundingCap geom.Cap

	// SideCaps are hemispheres whose boundary great circles follow the
	// four viewport edges, ordered top, right, bottom, left. A direction
	// outside any of them is off screen. Only valid when HasSideCaps is
	// set; wide fields of view have no usable side caps.
	SideCaps    [4]geom.Cap
	HasSideCaps bool

	// SkyCap contains the directions above the horizon, with one degree
	// of slack below it.
	SkyCap geom.Cap
}

// ClipInfo returns the visibility info of a frame as of the last
// RefreshClipInfo.
func (p *Painter) ClipInfo(f Frame) ClipInfo {
	return p.clip[f]
}

// RefreshClipInfo recomputes the visibility information of every frame.
// Call it once per frame, after the observer and projection are updated
// and before any clip predicate or paint operation.
func (p *Painter) RefreshClipInfo() {
	for f := Frame(0); f < frameCount; f++ {
		ci := &p.clip[f]
		*ci = ClipInfo{}
		p.computeViewportCaps(f, ci)
		ci.SkyCap = p.skyCap(f)
	}
}

// computeViewportCaps fills the bounding cap and side caps of a frame.
// Any unprojectable corner degrades the bounding cap to the whole sphere,
// which disables culling but stays correct.
func (p *Painter) computeViewportCaps(f Frame, ci *ClipInfo) {
	w, h := p.windowSize()
	if p.Proj == nil || w <= 0 || h <= 0 {
		ci.BoundingCap = geom.FullCap(r3.Vector{Z: 1})
		return
	}

	ctr, ok := p.UnprojectPoint(f, f64.Vec2{w / 2, h / 2})
	if !ok {
		ci.BoundingCap = geom.FullCap(r3.Vector{Z: 1})
		return
	}
	debug.Assert(geom.IsUnit(ctr), "viewport center not normalized")

	// Corners pushed outward by the margin, ring order top-left,
	// top-right, bottom-right, bottom-left.
	m := p.margin
	corners := [4]f64.Vec2{
		{-m, -m},
		{w + m, -m},
		{w + m, h + m},
		{-m, h + m},
	}
	var dirs [4]r3.Vector
	maxSep := 0.0
	for i, c := range corners {
		d, ok := p.UnprojectPoint(f, c)
		if !ok {
			Logger().Debug("viewport corner does not unproject",
				"frame", f.String(), "corner", i)
			ci.BoundingCap = geom.FullCap(ctr)
			return
		}
		dirs[i] = d
		maxSep = math.Max(maxSep, float64(ctr.Angle(d)))
	}
	ci.BoundingCap = geom.CapFromCos(ctr, math.Cos(maxSep))

	// Side caps only make sense while the viewport spans less than a
	// hemisphere; beyond that the edge great circles no longer bound it.
	if maxSep > math.Pi/2 {
		return
	}
	for i := range dirs {
		c := dirs[i].Cross(dirs[(i+1)%4])
		n := c.Norm()
		if n < 1e-12 {
			return
		}
		c = c.Mul(1 / n)
		if c.Dot(ctr) < 0 {
			c = c.Mul(-1)
		}
		ci.SideCaps[i] = geom.CapFromCos(c, 0)
	}
	ci.HasSideCaps = true
}

// skyCap returns the above-horizon cap in the given frame: the zenith
// with a 91 degree half-angle, one degree past the horizon to absorb
// refraction effects near it.
func (p *Painter) skyCap(f Frame) geom.Cap {
	zenith := p.convert(FrameObserved, f, true, r3.Vector{Z: 1})
	return geom.NewCap(zenith, 91*s1.Degree)
}
