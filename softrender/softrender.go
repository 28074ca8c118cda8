// Package softrender is a CPU backend for skypaint. It draws into an
// in-memory image.RGBA through the x/image vector rasterizer and exists
// for tests, batch rendering and debugging rather than speed.
//
// The painter culls and projects; this package only turns the surviving
// primitives into pixels. Anything it cannot express (rotated text, face
// culling) it quietly approximates or skips, which is acceptable for a
// diagnostic target.
package softrender

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/astroviz/skypaint"
)

// Renderer implements skypaint.Renderer on top of an image.RGBA.
//
// Not safe for concurrent use; drive it from the same goroutine as the
// painter, the way a frame loop naturally does.
type Renderer struct {
	skypaint.NopRenderer

	// Background fills the target on Prepare. Defaults to opaque black.
	Background skypaint.RGBA

	// LineWidth is the stroke width in window pixels for lines, contours
	// and outlines. Defaults to 1.
	LineWidth float64

	img    *image.RGBA
	scale  float64
	ras    vector.Rasterizer
	logger *slog.Logger
}

// New returns a renderer targeting a fresh w x h image.
func New(w, h int) *Renderer {
	return &Renderer{
		Background: skypaint.Black,
		LineWidth:  1,
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		scale:      1,
		logger:     skypaint.Logger(),
	}
}

// Image returns the render target. Valid until the next Prepare, which
// may replace it when the window geometry changes.
func (r *Renderer) Image() *image.RGBA { return r.img }

// SetLogger accepts the library logger. The painter calls this when the
// renderer is attached.
func (r *Renderer) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Prepare implements skypaint.Renderer. It resizes the target to the
// device pixel size when needed and clears it to the background color.
func (r *Renderer) Prepare(w, h, scale float64, cullFlipped bool) {
	r.scale = scale
	dw, dh := int(w*scale+0.5), int(h*scale+0.5)
	if b := r.img.Bounds(); b.Dx() != dw || b.Dy() != dh {
		r.img = image.NewRGBA(image.Rect(0, 0, dw, dh))
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.Background.Color()), image.Point{}, draw.Src)
}

func (r *Renderer) Finish() {}

// beginPath resets the rasterizer to the target size. Every primitive
// accumulates one path and fills it once.
func (r *Renderer) beginPath() {
	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
}

func (r *Renderer) fillPath(c skypaint.RGBA) {
	if c.A <= 0 {
		return
	}
	r.ras.Draw(r.img, r.img.Bounds(), image.NewUniform(c.Color()), image.Point{})
}

// strokeSeg adds a quad covering the segment from a to b at the given
// width in window pixels. Segments touching a NaN sample are skipped.
func (r *Renderer) strokeSeg(a, b f64.Vec2, width float64) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	n := math.Hypot(dx, dy)
	if n == 0 || math.IsNaN(n) {
		return
	}
	hw := width * r.scale / 2
	nx, ny := -dy/n*hw, dx/n*hw
	ax, ay := a[0]*r.scale, a[1]*r.scale
	bx, by := b[0]*r.scale, b[1]*r.scale
	r.ras.MoveTo(float32(ax+nx), float32(ay+ny))
	r.ras.LineTo(float32(bx+nx), float32(by+ny))
	r.ras.LineTo(float32(bx-nx), float32(by-ny))
	r.ras.LineTo(float32(ax-nx), float32(ay-ny))
	r.ras.ClosePath()
}

// circle adds a filled circle approximated by four cubic arcs.
func (r *Renderer) circle(c f64.Vec2, radius float64) {
	const k = 0.5522847498307933
	x, y := c[0]*r.scale, c[1]*r.scale
	rad := radius * r.scale
	kr := k * rad
	r.ras.MoveTo(float32(x+rad), float32(y))
	r.ras.CubeTo(float32(x+rad), float32(y+kr), float32(x+kr), float32(y+rad), float32(x), float32(y+rad))
	r.ras.CubeTo(float32(x-kr), float32(y+rad), float32(x-rad), float32(y+kr), float32(x-rad), float32(y))
	r.ras.CubeTo(float32(x-rad), float32(y-kr), float32(x-kr), float32(y-rad), float32(x), float32(y-rad))
	r.ras.CubeTo(float32(x+kr), float32(y-rad), float32(x+rad), float32(y-kr), float32(x+rad), float32(y))
	r.ras.ClosePath()
}

func (r *Renderer) triangle(a, b, c f64.Vec2) {
	s := r.scale
	r.ras.MoveTo(float32(a[0]*s), float32(a[1]*s))
	r.ras.LineTo(float32(b[0]*s), float32(b[1]*s))
	r.ras.LineTo(float32(c[0]*s), float32(c[1]*s))
	r.ras.ClosePath()
}

func hasNaN2(v f64.Vec2) bool {
	return math.IsNaN(v[0]) || math.IsNaN(v[1])
}

// Line implements skypaint.Renderer. Spans whose endpoints did not
// project are dropped, the rest are stroked.
func (r *Renderer) Line(p *skypaint.Painter, win []f64.Vec2) error {
	if len(win) < 2 {
		return nil
	}
	r.beginPath()
	for i := 0; i+1 < len(win); i++ {
		r.strokeSeg(win[i], win[i+1], r.LineWidth)
	}
	r.fillPath(p.Color)
	return nil
}

// Points2D implements skypaint.Renderer. Every point is a filled circle
// of its own size and color, modulated by the painter color.
func (r *Renderer) Points2D(p *skypaint.Painter, pts []skypaint.Point2D) error {
	for _, pt := range pts {
		if hasNaN2(pt.Pos) || pt.Size <= 0 {
			continue
		}
		r.beginPath()
		r.circle(pt.Pos, pt.Size/2)
		r.fillPath(pt.Color.Mul(p.Color))
	}
	return nil
}

// Ellipse2D implements skypaint.Renderer. The outline is stroked as a
// 64 segment polyline; a positive LineStripes on the painter dashes it
// with that many stripes around the circumference.
func (r *Renderer) Ellipse2D(p *skypaint.Painter, pos, size f64.Vec2, angle float64) error {
	const steps = 64
	sa, ca := math.Sincos(angle)
	at := func(i int) f64.Vec2 {
		st, ct := math.Sincos(2 * math.Pi * float64(i) / steps)
		x, y := size[0]*ct, size[1]*st
		return f64.Vec2{pos[0] + x*ca - y*sa, pos[1] + x*sa + y*ca}
	}
	r.beginPath()
	for i := 0; i < steps; i++ {
		if p.LineStripes > 0 {
			phase := float64(i) / steps * p.LineStripes
			if phase-math.Floor(phase) >= 0.5 {
				continue
			}
		}
		r.strokeSeg(at(i), at(i+1), r.LineWidth)
	}
	r.fillPath(p.Color)
	return nil
}

// Rect2D implements skypaint.Renderer.
func (r *Renderer) Rect2D(p *skypaint.Painter, pos, size f64.Vec2, angle float64) error {
	sa, ca := math.Sincos(angle)
	corner := func(sx, sy float64) f64.Vec2 {
		x, y := size[0]*sx, size[1]*sy
		return f64.Vec2{pos[0] + x*ca - y*sa, pos[1] + x*sa + y*ca}
	}
	quad := [4]f64.Vec2{corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)}
	r.beginPath()
	for i := range quad {
		r.strokeSeg(quad[i], quad[(i+1)%4], r.LineWidth)
	}
	r.fillPath(p.Color)
	return nil
}

// Line2D implements skypaint.Renderer.
func (r *Renderer) Line2D(p *skypaint.Painter, a, b f64.Vec2) error {
	r.beginPath()
	r.strokeSeg(a, b, r.LineWidth)
	r.fillPath(p.Color)
	return nil
}

// Texture implements skypaint.Renderer. The texture is drawn with
// nearest neighbor sampling when it exposes its pixels through
// ImageSource; other textures are skipped with a debug log.
func (r *Renderer) Texture(tex skypaint.Texture, uv [4]f64.Vec2, pos f64.Vec2, size, angle float64, c skypaint.RGBA) error {
	src, ok := tex.(ImageSource)
	if !ok || src.Image() == nil {
		r.logger.Debug("texture without pixel access skipped")
		return nil
	}
	img := src.Image()
	tb := img.Bounds()
	if tb.Dx() == 0 || tb.Dy() == 0 || size <= 0 || c.A <= 0 {
		return nil
	}

	// Window-space half sizes, preserving the texture aspect ratio.
	hw := size / 2
	hh := hw * float64(tb.Dy()) / float64(tb.Dx())
	sa, ca := math.Sincos(angle)

	// Walk the axis-aligned device bounding box of the rotated quad and
	// inverse-rotate each pixel into texture space.
	ext := math.Hypot(hw, hh) * r.scale
	cx, cy := pos[0]*r.scale, pos[1]*r.scale
	b := r.img.Bounds()
	x0 := max(b.Min.X, int(cx-ext))
	x1 := min(b.Max.X, int(cx+ext)+1)
	y0 := max(b.Min.Y, int(cy-ext))
	y1 := min(b.Max.Y, int(cy+ext)+1)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dx := (float64(x) + 0.5 - cx) / r.scale
			dy := (float64(y) + 0.5 - cy) / r.scale
			// Rotate back into the unrotated quad.
			ux := dx*ca + dy*sa
			uy := -dx*sa + dy*ca
			if ux < -hw || ux >= hw || uy < -hh || uy >= hh {
				continue
			}
			tx := tb.Min.X + int((ux+hw)/(2*hw)*float64(tb.Dx()))
			ty := tb.Min.Y + int((uy+hh)/(2*hh)*float64(tb.Dy()))
			r.blend(x, y, modulate(img.RGBAAt(tx, ty), c))
		}
	}
	return nil
}

// blend composites src over the target pixel.
func (r *Renderer) blend(x, y int, src color.RGBA) {
	if src.A == 0 {
		return
	}
	if src.A == 0xff {
		r.img.SetRGBA(x, y, src)
		return
	}
	dst := r.img.RGBAAt(x, y)
	inv := uint32(0xff - src.A)
	r.img.SetRGBA(x, y, color.RGBA{
		R: uint8(uint32(src.R) + uint32(dst.R)*inv/0xff),
		G: uint8(uint32(src.G) + uint32(dst.G)*inv/0xff),
		B: uint8(uint32(src.B) + uint32(dst.B)*inv/0xff),
		A: uint8(uint32(src.A) + uint32(dst.A)*inv/0xff),
	})
}

// modulate scales a premultiplied texel by a color.
func modulate(t color.RGBA, c skypaint.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(t.R) * c.R * c.A),
		G: uint8(float64(t.G) * c.G * c.A),
		B: uint8(float64(t.B) * c.B * c.A),
		A: uint8(float64(t.A) * c.A),
	}
}
