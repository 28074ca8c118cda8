package skypaint

import (
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/polyline"
	"github.com/astroviz/skypaint/proj"
)

// LineSampler turns a parametric curve into a window-space polyline.
// It receives the minimum number of spans and the tolerance in pixels.
type LineSampler func(f polyline.CurveFunc, split int, tol float64) []f64.Vec2

// Option configures a Painter during creation.
// Use functional options to customize Painter behavior.
//
// Example:
//
//	// Culling only, no drawing
//	p := skypaint.NewPainter(skypaint.WithProjection(pr), skypaint.WithObserver(obs))
//
//	// Full pipeline with a backend
//	p := skypaint.NewPainter(
//	    skypaint.WithRenderer(rend),
//	    skypaint.WithProjection(pr),
//	    skypaint.WithObserver(obs),
//	)
type Option func(*painterOptions)

// painterOptions holds optional configuration for Painter creation.
type painterOptions struct {
	rend    Renderer
	obs     Observer
	proj    proj.Projection
	margin  float64
	scale   float64
	sampler LineSampler
	tol     float64
}

// defaultPainterOptions returns the default painter options.
func defaultPainterOptions() painterOptions {
	return painterOptions{
		scale:   1,
		sampler: polyline.Adaptive,
		tol:     0.5,
	}
}

// WithRenderer sets the drawing backend. Without one the painter still
// culls and projects but every paint operation is a no-op.
func WithRenderer(r Renderer) Option {
	return func(o *painterOptions) {
		o.rend = r
	}
}

// WithObserver sets the frame converter. Without one the painter treats
// all frames as identical, which is only useful in tests.
func WithObserver(obs Observer) Option {
	return func(o *painterOptions) {
		o.obs = obs
	}
}

// WithProjection sets the sky projection.
func WithProjection(pr proj.Projection) Option {
	return func(o *painterOptions) {
		o.proj = pr
	}
}

// WithViewportMargin extends the viewport bounding cap by margin pixels on
// every side. Hosts use it to keep labels attached to objects just outside
// the window from popping in and out.
func WithViewportMargin(px float64) Option {
	return func(o *painterOptions) {
		o.margin = px
	}
}

// WithPixelScale sets the window pixel scale forwarded to the renderer,
// 2 on a typical high-dpi display. The default is 1.
func WithPixelScale(s float64) Option {
	return func(o *painterOptions) {
		if s > 0 {
			o.scale = s
		}
	}
}

// WithLineSampler replaces the adaptive curve tessellator used for sky
// lines.
//
// Example:
//
//	// Fixed uniform sampling, ignoring curvature:
//	p := skypaint.NewPainter(skypaint.WithLineSampler(
//	    func(f polyline.CurveFunc, split int, tol float64) []f64.Vec2 {
//	        pts := make([]f64.Vec2, split+1)
//	        for i := range pts {
//	            pts[i] = f(float64(i) / float64(split))
//	        }
//	        return pts
//	    }))
func WithLineSampler(s LineSampler) Option {
	return func(o *painterOptions) {
		if s != nil {
			o.sampler = s
		}
	}
}

// WithTessellationTolerance sets the maximum distance in pixels between a
// projected curve and its polyline approximation. The default is half a
// pixel.
func WithTessellationTolerance(px float64) Option {
	return func(o *painterOptions) {
		if px > 0 {
			o.tol = px
		}
	}
}
