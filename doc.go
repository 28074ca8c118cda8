// Package skypaint provides the visibility-culling and projection core of
// a sky renderer.
//
// # Overview
//
// skypaint sits between a scene graph of celestial objects and a drawing
// backend. It decides what is visible (spherical-cap and clip-space tests,
// HEALPix tile culling, horizon masking), projects sky positions to window
// coordinates through pluggable sky projections, and dispatches the
// surviving primitives to a Renderer. It does not rasterize, manage GPU
// resources, or compute astronomy; those belong to the backend and to the
// host's Observer implementation.
//
// # Quick Start
//
//	import "github.com/astroviz/skypaint"
//
//	obs := skypaint.NewMatrixObserver()
//	obs.LookAtView(0, 20*s1.Degree)
//
//	p := skypaint.NewPainter(
//	    skypaint.WithRenderer(rend),
//	    skypaint.WithObserver(obs),
//	    skypaint.WithProjection(proj.NewStereographic(120*s1.Degree, 800, 600)),
//	)
//
//	p.PreparePaint()
//	p.RefreshClipInfo()
//	if !p.IsHealpixClipped(skypaint.FrameICRF, 2, pix, true) {
//	    p.PaintQuad(skypaint.FrameICRF, &tile, 4)
//	}
//	p.FinishPaint()
//
// # Reference Frames
//
// Positions are expressed in one of six frames (ICRF, CIRS, JNOW, observed,
// mount, view) and converted between them by the host-provided Observer.
// The view frame is right-handed with the camera looking down -Z, +Y up and
// +X right. Window coordinates put the origin at the top-left corner with Y
// growing down.
//
// # Architecture
//
// The library is organized into:
//   - Root package: Painter, Renderer interface, clip predicates, paint ops
//   - geom: spherical caps, f64 vector/matrix helpers, clip-space test
//   - healpix: nested pixel math and the HEALPix planar projection
//   - uvmap: UV patch maps over sky regions (tiles, orbits)
//   - proj: perspective, stereographic and Hammer sky projections
//   - polyline: adaptive tessellation of projected curves
//   - softrender: CPU debug backend drawing into an image.RGBA
//   - cache: sharded LRU shared by texture loaders
//
// # Concurrency
//
// A Painter is not safe for concurrent use. Scoped state changes are done
// by copying the Painter value, mutating the copy and painting through it;
// the copies share the same Renderer, Observer and Projection.
package skypaint

// Version is the current version of the library.
const Version = "0.1.0"
