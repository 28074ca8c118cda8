package softrender

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint"
	"github.com/astroviz/skypaint/geom"
	"github.com/astroviz/skypaint/proj"
	"github.com/astroviz/skypaint/uvmap"
)

// projectVert runs one homogeneous vertex through the painter pipeline:
// painter transform, normalization, frame rotation into the view and the
// projection to window coordinates. Vertices that do not project come
// back as NaN, following the projector's failure convention.
func projectVert(p *skypaint.Painter, frame skypaint.Frame, v f64.Vec4) f64.Vec2 {
	v = geom.Mat4MulVec4(p.Transform, v)
	v = geom.Normalize4(v)
	d := geom.XYZ(v)
	if p.Obs != nil {
		d = p.Obs.Convert(frame, skypaint.FrameView, true, d)
	}
	win, _ := p.Proj.Project(proj.OpToWindow|proj.OpAlreadyNormalized, geom.Vec4(d, 0))
	return f64.Vec2{win[0], win[1]}
}

// Quad implements skypaint.Renderer. The mapped patch is tessellated on
// a gridSize x gridSize grid, each cell filled as two flat triangles.
// Cells with an unprojectable corner are dropped. When the color texture
// slot holds an ImageSource the cell color is sampled from it at the
// cell center, otherwise the painter color fills the whole patch.
func (r *Renderer) Quad(p *skypaint.Painter, frame skypaint.Frame, gridSize int, m *uvmap.Map) error {
	if p.Proj == nil || gridSize < 1 {
		return nil
	}
	n := gridSize
	grid := make([]f64.Vec2, 0, (n+1)*(n+1))
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			uv := f64.Vec2{float64(j) / float64(n), float64(i) / float64(n)}
			grid = append(grid, projectVert(p, frame, m.Point(uv)))
		}
	}

	img := colorSource(p)
	dropped := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a := grid[i*(n+1)+j]
			b := grid[i*(n+1)+j+1]
			c := grid[(i+1)*(n+1)+j+1]
			d := grid[(i+1)*(n+1)+j]
			if hasNaN2(a) || hasNaN2(b) || hasNaN2(c) || hasNaN2(d) {
				dropped++
				continue
			}
			col := p.Color
			if img != nil {
				uv := f64.Vec2{(float64(j) + 0.5) / float64(n), (float64(i) + 0.5) / float64(n)}
				col = sampleSlot(img, p.Textures[skypaint.TexColor].Mat, uv).Mul(p.Color)
			}
			r.beginPath()
			r.triangle(a, b, c)
			r.triangle(a, c, d)
			r.fillPath(col)
		}
	}
	if dropped > 0 {
		r.logger.Debug("dropped unprojectable quad cells", "count", dropped, "frame", frame.String())
	}
	return nil
}

// colorSource returns the pixels behind the color texture slot, or nil
// when the slot is empty or the texture keeps its pixels to itself.
func colorSource(p *skypaint.Painter) *image.RGBA {
	tex := p.Textures[skypaint.TexColor].Tex
	if tex == nil {
		return nil
	}
	src, ok := tex.(ImageSource)
	if !ok || src.Image() == nil {
		return nil
	}
	img := src.Image()
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}
	return img
}

// sampleSlot maps a patch uv through the slot matrix and samples the
// texture with nearest neighbor lookup, clamping at the edges. A zero
// matrix counts as identity.
func sampleSlot(img *image.RGBA, mat f64.Mat3, uv f64.Vec2) skypaint.RGBA {
	if mat != (f64.Mat3{}) {
		v := geom.Mat3MulVec3(mat, f64.Vec3{uv[0], uv[1], 1})
		uv = f64.Vec2{v[0], v[1]}
	}
	b := img.Bounds()
	x := clampInt(int(uv[0]*float64(b.Dx())), 0, b.Dx()-1)
	y := clampInt(int(uv[1]*float64(b.Dy())), 0, b.Dy()-1)
	return skypaint.FromColor(img.RGBAAt(b.Min.X+x, b.Min.Y+y))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mesh implements skypaint.Renderer. Vertices are projected through the
// painter pipeline, through the painter transform only when asked, then
// the indices are walked as triangles or line segments. Primitives
// touching an unprojectable vertex are dropped.
func (r *Renderer) Mesh(p *skypaint.Painter, frame skypaint.Frame, mode skypaint.MeshMode, verts []f64.Vec3, idx []uint16, useTransform bool) error {
	if p.Proj == nil || len(verts) == 0 || len(idx) == 0 {
		return nil
	}
	win := make([]f64.Vec2, len(verts))
	for i, v := range verts {
		hv := f64.Vec4{v[0], v[1], v[2], 0}
		if useTransform {
			hv = geom.Mat4MulVec4(p.Transform, hv)
		}
		d := geom.XYZ(geom.Normalize4(hv))
		if p.Obs != nil {
			d = p.Obs.Convert(frame, skypaint.FrameView, true, d)
		}
		w, _ := p.Proj.Project(proj.OpToWindow|proj.OpAlreadyNormalized, geom.Vec4(d, 0))
		win[i] = f64.Vec2{w[0], w[1]}
	}

	switch mode {
	case skypaint.MeshTriangles:
		r.beginPath()
		for i := 0; i+2 < len(idx); i += 3 {
			a, b, c := win[idx[i]], win[idx[i+1]], win[idx[i+2]]
			if hasNaN2(a) || hasNaN2(b) || hasNaN2(c) {
				continue
			}
			r.triangle(a, b, c)
		}
		r.fillPath(p.Color)
	case skypaint.MeshLines:
		r.beginPath()
		for i := 0; i+1 < len(idx); i += 2 {
			r.strokeSeg(win[idx[i]], win[idx[i+1]], r.LineWidth)
		}
		r.fillPath(p.Color)
	}
	return nil
}
