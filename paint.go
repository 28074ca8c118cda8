package skypaint

import (
	"math"

	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/geom"
	"github.com/astroviz/skypaint/internal/debug"
	"github.com/astroviz/skypaint/proj"
	"github.com/astroviz/skypaint/uvmap"
)

// The paint operations cull, project and dispatch to the renderer. They
// all return the renderer's error, nil without a renderer, and treat
// degenerate input (empty slices, zero sizes, transparent color) as a
// no-op rather than an error.

// Paint2DPoints draws window-space points.
func (p *Painter) Paint2DPoints(pts []Point2D) error {
	if p.Rend == nil || len(pts) == 0 {
		return nil
	}
	return p.Rend.Points2D(p, pts)
}

// PaintQuad draws a UV-mapped patch as a gridSize x gridSize grid of
// quads. Skipped while the color texture is still loading or the painter
// color is fully transparent.
func (p *Painter) PaintQuad(f Frame, m *uvmap.Map, gridSize int) error {
	if p.Rend == nil {
		return nil
	}
	if tex := p.Textures[TexColor].Tex; tex != nil && !tex.Load() {
		return nil
	}
	if p.Color.A == 0 {
		return nil
	}
	return p.Rend.Quad(p, f, gridSize, m)
}

// PaintLines draws independent segments: lines holds an even number of
// homogeneous endpoints, one segment per pair. With a uv map the endpoint
// x and y are UV coordinates into it; without one they are positions or
// directions in the frame. Each segment is tessellated into at least split
// spans.
func (p *Painter) PaintLines(f Frame, lines []f64.Vec4, m *uvmap.Map, split int) error {
	debug.Assert(len(lines)%2 == 0, "lines want an even number of points")
	if p.Rend == nil || p.Proj == nil {
		return nil
	}
	for i := 0; i+1 < len(lines); i += 2 {
		if err := p.paintLine(f, lines[i], lines[i+1], m, split); err != nil {
			return err
		}
	}
	return nil
}

// PaintQuadContour draws the borders of a UV patch. Bit i of bordersMask
// enables one border, going around the square from the v = 0 edge; pass
// 15 for the full contour.
func (p *Painter) PaintQuadContour(f Frame, m *uvmap.Map, split int, bordersMask uint8) error {
	borders := [4][2]f64.Vec4{
		{{0, 0, 0, 0}, {1, 0, 0, 0}},
		{{1, 0, 0, 0}, {1, 1, 0, 0}},
		{{1, 1, 0, 0}, {0, 1, 0, 0}},
		{{0, 1, 0, 0}, {0, 0, 0, 0}},
	}
	if p.Rend == nil || p.Proj == nil {
		return nil
	}
	for i, b := range borders {
		if bordersMask&(1<<i) == 0 {
			continue
		}
		if err := p.paintLine(f, b[0], b[1], m, split); err != nil {
			return err
		}
	}
	return nil
}

// PaintTileContour outlines a healpix tile. Mostly useful for debugging
// the culling.
func (p *Painter) PaintTileContour(f Frame, order int, pix int64, split int) error {
	return p.PaintQuadContour(f, uvmap.NewHealpix(order, pix), split, 15)
}

// PaintOrbit draws one period of an orbit from its elements, sampling the
// supplied two-body solver. Only ICRF is supported. Segments crossing a
// projection discontinuity are dropped here whatever the painter flags,
// since an orbit usually wraps around the whole sky.
func (p *Painter) PaintOrbit(f Frame, solve uvmap.OrbitFunc, el uvmap.OrbitElements) error {
	debug.Assert(f == FrameICRF, "orbits only paint in ICRF")
	if p.Rend == nil || p.Proj == nil {
		return nil
	}
	m := uvmap.NewOrbit(solve, el)
	pc := *p
	pc.Flags |= SkipDiscontinuous
	return pc.paintLine(f, f64.Vec4{0, 0, 0, 0}, f64.Vec4{1, 0, 0, 0}, m, 128)
}

// PaintMesh draws a mesh of frame-space vertices after a bounding-cap
// cull. Meshes straddling a projection discontinuity are still drawn
// across it; the segment-drop treatment only exists for lines.
func (p *Painter) PaintMesh(f Frame, mode MeshMode, verts []f64.Vec3, idx []uint16, bounding geom.Cap, useTransform bool) error {
	if p.Rend == nil || len(idx) == 0 {
		return nil
	}
	pc := *p
	if pc.IsCapClipped(f, bounding) {
		return nil
	}
	return pc.Rend.Mesh(&pc, f, mode, verts, idx, useTransform)
}

// PaintTexture draws a screen-space textured quad centered at pos, size
// pixels across, rotated by angle. A nil c counts as white; the painter
// color modulates either way. Skipped until the texture has loaded.
func (p *Painter) PaintTexture(tex Texture, pos f64.Vec2, size, angle float64, c *RGBA) error {
	if p.Rend == nil || tex == nil || !tex.Load() {
		return nil
	}
	col := White
	if c != nil {
		col = *c
	}
	uv := [4]f64.Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	return p.Rend.Texture(tex, uv, pos, size, angle, col.Mul(p.Color))
}

// PaintText draws a string anchored at a window position in the painter
// color.
func (p *Painter) PaintText(s string, pos f64.Vec2, align Align, effects TextEffect, size, angle float64) error {
	if p.Rend == nil || s == "" {
		return nil
	}
	return p.Rend.Text(s, pos, align, effects, size, p.Color, angle)
}

// PaintTextBounds measures a string without drawing it.
func (p *Painter) PaintTextBounds(s string, pos f64.Vec2, align Align, effects TextEffect, size float64) ([4]float64, error) {
	if p.Rend == nil {
		return [4]float64{}, nil
	}
	return p.Rend.TextBounds(s, pos, align, effects, size)
}

// Paint2DEllipse draws a window-space ellipse. pos and size place and
// scale the unit circle, then transf (nil for identity) maps the result
// to the window. dashes is the dash length in pixels, 0 for a solid
// outline.
func (p *Painter) Paint2DEllipse(transf *f64.Mat3, pos, size f64.Vec2, dashes float64) error {
	if p.Rend == nil {
		return nil
	}
	m := geom.Mat3Translate(geom.Mat3Identity(), pos[0], pos[1])
	m = geom.Mat3Scale(m, size[0], size[1], 1)
	if transf != nil {
		m = geom.Mat3Mul(*transf, m)
	}
	a2 := m[0]*m[0] + m[3]*m[3]
	b2 := m[1]*m[1] + m[4]*m[4]

	pc := *p
	pc.LineStripes = 0
	if dashes > 0 {
		perimeter := 2 * math.Pi * math.Sqrt((a2+b2)/2)
		pc.LineStripes = perimeter / dashes
	}
	center := f64.Vec2{m[2], m[5]}
	s := f64.Vec2{math.Sqrt(a2), math.Sqrt(b2)}
	angle := math.Atan2(m[3], m[0])
	return pc.Rend.Ellipse2D(&pc, center, s, angle)
}

// Paint2DRect draws a window-space rectangle outline. pos is the top-left
// corner before transf (nil for identity) applies.
func (p *Painter) Paint2DRect(transf *f64.Mat3, pos, size f64.Vec2) error {
	if p.Rend == nil {
		return nil
	}
	m := geom.Mat3Translate(geom.Mat3Identity(), pos[0]+size[0]/2, pos[1]+size[1]/2)
	m = geom.Mat3Scale(m, size[0]/2, size[1]/2, 1)
	if transf != nil {
		m = geom.Mat3Mul(*transf, m)
	}
	center := f64.Vec2{m[2], m[5]}
	s := f64.Vec2{math.Hypot(m[0], m[3]), math.Hypot(m[1], m[4])}
	angle := math.Atan2(m[3], m[0])
	return p.Rend.Rect2D(p, center, s, angle)
}

// Paint2DLine draws one segment given in the unit coordinates of transf
// (nil to pass window coordinates directly).
func (p *Painter) Paint2DLine(transf *f64.Mat3, a, b f64.Vec2) error {
	if p.Rend == nil {
		return nil
	}
	if transf != nil {
		va := geom.Mat3MulVec3(*transf, f64.Vec3{a[0], a[1], 1})
		vb := geom.Mat3MulVec3(*transf, f64.Vec3{b[0], b[1], 1})
		a = f64.Vec2{va[0], va[1]}
		b = f64.Vec2{vb[0], vb[1]}
	}
	return p.Rend.Line2D(p, a, b)
}

// PaintCap outlines the boundary circle of a cap, for debugging. Clipped
// or unprojectable caps are skipped.
func (p *Painter) PaintCap(f Frame, c geom.Cap) error {
	if p.Rend == nil || p.Proj == nil {
		return nil
	}
	if p.IsCapClipped(f, c) {
		return nil
	}
	ra := math.Atan2(c.Center.Y, c.Center.X)
	z := c.Center.Z
	if z > 1 {
		z = 1
	} else if z < -1 {
		z = -1
	}
	de := math.Asin(z)
	diam := 2 * float64(c.Angle())
	pos, size, angle, ok := p.ProjectEllipse(f, ra, de, math.NaN(), diam, math.NaN())
	if !ok {
		return nil
	}
	// ProjectEllipse reports full extents, the renderer takes semi axes.
	return p.Rend.Ellipse2D(p, pos, f64.Vec2{size[0] / 2, size[1] / 2}, angle)
}

// paintLine tessellates one segment through the full pipeline: lerp the
// endpoints, map through the uv map when there is one, apply the painter
// transform, normalize to the unit sphere, convert to the view frame and
// project to the window. Segments crossing a projection discontinuity are
// dropped when SkipDiscontinuous is set and the projection can tell.
func (p *Painter) paintLine(f Frame, a, b f64.Vec4, m *uvmap.Map, split int) error {
	if p.Flags&SkipDiscontinuous != 0 {
		if dc, ok := p.Proj.(proj.DiscontinuityChecker); ok {
			if dc.IntersectDiscontinuity(p.lineViewDir(f, a, m), p.lineViewDir(f, b, m)) {
				Logger().Debug("dropped segment crossing a discontinuity",
					"frame", f.String())
				return nil
			}
		}
	}
	win := p.sampler(func(t float64) f64.Vec2 {
		pos := geom.Lerp4(a, b, t)
		if m != nil {
			pos = m.Point(f64.Vec2{pos[0], pos[1]})
		}
		pos = geom.Mat4MulVec4(p.Transform, pos)
		pos = geom.Normalize4(pos)
		v := p.convert(f, FrameView, true, geom.XYZ(pos))
		out, _ := p.Proj.Project(proj.OpAlreadyNormalized|proj.OpToWindow, geom.Vec4(v, 0))
		return f64.Vec2{out[0], out[1]}
	}, split, p.tol)
	return p.Rend.Line(p, win)
}

// lineViewDir maps a segment endpoint to its unit view-frame direction,
// the form the discontinuity test works on.
func (p *Painter) lineViewDir(f Frame, pos f64.Vec4, m *uvmap.Map) r3.Vector {
	if m != nil {
		pos = m.Point(f64.Vec2{pos[0], pos[1]})
	}
	pos = geom.Mat4MulVec4(p.Transform, pos)
	return p.convert(f, FrameView, true, geom.XYZ(pos).Normalize())
}
