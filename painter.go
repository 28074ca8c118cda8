package skypaint

import (
	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/geom"
	"github.com/astroviz/skypaint/internal/debug"
	"github.com/astroviz/skypaint/proj"
)

// Flags toggles painter-wide behaviors.
type Flags uint32

const (
	// HideBelowHorizon culls content below the local horizon.
	HideBelowHorizon Flags = 1 << iota
	// SkipDiscontinuous drops line segments that cross a projection
	// discontinuity instead of letting them streak across the window.
	SkipDiscontinuous
)

// Painter carries the state shared by the culling, projection and paint
// operations: the drawing backend, the frame converter, the sky
// projection, and per-frame visibility information.
//
// The exported fields form the paint state. Scoped changes copy the
// Painter value, mutate the copy and paint through it; copies share the
// Renderer, Observer and Projection and the clip info computed by the
// last RefreshClipInfo.
//
// A Painter is not safe for concurrent use.
type Painter struct {
	Rend Renderer
	Obs  Observer
	Proj proj.Projection

	// Transform maps object coordinates to the frame passed to each
	// operation. Identity means positions are already frame coordinates.
	Transform f64.Mat4

	// Color multiplies every painted primitive. Defaults to white.
	Color RGBA

	// LineStripes is the dash count hint for line backends; 0 draws
	// solid lines.
	LineStripes float64

	Flags Flags

	// Textures holds the bound color and normal textures.
	Textures [2]TextureSlot

	clip    [frameCount]ClipInfo
	margin  float64
	scale   float64
	sampler LineSampler
	tol     float64
}

// NewPainter creates a painter from the given options. The transform
// starts at identity and the color at opaque white.
func NewPainter(opts ...Option) *Painter {
	o := defaultPainterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &Painter{
		Rend:      o.rend,
		Obs:       o.obs,
		Proj:      o.proj,
		Transform: geom.Mat4Identity(),
		Color:     White,
		margin:    o.margin,
		scale:     o.scale,
		sampler:   o.sampler,
		tol:       o.tol,
	}
	if p.Rend != nil {
		propagateLogger(p.Rend)
	}
	return p
}

// PreparePaint starts a frame: it resets the texture slots, derives the
// face-culling hint from the projection flags and forwards the window
// geometry to the renderer. Call it once per frame before painting,
// followed by RefreshClipInfo.
func (p *Painter) PreparePaint() {
	p.Textures = [2]TextureSlot{}
	if p.Rend == nil {
		return
	}
	var w, h float64
	var flipped bool
	if p.Proj != nil {
		w, h = p.Proj.WindowSize()
		fl := p.Proj.Flags()
		// One mirrored axis reverses triangle winding, two cancel out.
		flipped = (fl&proj.FlipHorizontal != 0) != (fl&proj.FlipVertical != 0)
	}
	p.Rend.Prepare(w, h, p.scale, flipped)
}

// FinishPaint ends the frame and flushes the renderer.
func (p *Painter) FinishPaint() {
	if p.Rend != nil {
		p.Rend.Finish()
	}
}

// SetTexture binds a texture and its UV transformation to a slot
// (TexColor or TexNormal). Slots are reset by PreparePaint; binding over
// an occupied slot trips a debug assertion.
func (p *Painter) SetTexture(slot int, tex Texture, mat f64.Mat3) {
	debug.Assert(p.Textures[slot].Tex == nil, "texture slot already bound")
	p.Textures[slot] = TextureSlot{Tex: tex, Mat: mat}
}

// convert maps v between frames through the observer. Without an observer
// all frames coincide.
func (p *Painter) convert(from, to Frame, atInf bool, v r3.Vector) r3.Vector {
	if p.Obs == nil || from == to {
		return v
	}
	return p.Obs.Convert(from, to, atInf, v)
}

// convertVec4 is convert for homogeneous vectors, w preserved.
func (p *Painter) convertVec4(from, to Frame, v f64.Vec4) f64.Vec4 {
	if p.Obs == nil || from == to {
		return v
	}
	return p.Obs.ConvertVec4(from, to, v)
}

// windowSize returns the projection's window size, or zeros without a
// projection.
func (p *Painter) windowSize() (w, h float64) {
	if p.Proj == nil {
		return 0, 0
	}
	return p.Proj.WindowSize()
}
