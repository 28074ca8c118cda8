// Package proj defines the projection contract between the VIEW frame and
// the window, plus the projections the engine ships with.
//
// The VIEW frame is right-handed with the camera looking along −Z, +Y up
// and +X right. A forward Project call without OpToWindow yields
// homogeneous clip coordinates for the 6-plane visibility test; with
// OpToWindow it yields window coordinates, x growing right and y growing
// down from the top-left corner.
package proj

import (
	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"
)

// Op selects what a Project call computes.
type Op uint32

const (
	// OpToWindow divides by w and maps normalized device coordinates to
	// window coordinates.
	OpToWindow Op = 1 << iota
	// OpAlreadyNormalized promises the input direction has unit length,
	// letting the projection skip its own normalization.
	OpAlreadyNormalized
	// OpBackward inverts the projection: normalized device coordinates in
	// v[0], v[1] map to a unit VIEW direction.
	OpBackward
)

// Flag describes fixed properties of a projection.
type Flag uint32

const (
	// FlipHorizontal mirrors the window left-right.
	FlipHorizontal Flag = 1 << iota
	// FlipVertical mirrors the window top-bottom.
	FlipVertical
)

// Projection maps directions or positions in the VIEW frame to clip or
// window coordinates and back.
type Projection interface {
	// WindowSize returns the window extent in window units.
	WindowSize() (w, h float64)
	// Flags returns the projection's fixed properties.
	Flags() Flag
	// Project transforms v according to op. The boolean is false when the
	// input has no image (or, backward, no preimage) under the
	// projection.
	Project(op Op, v f64.Vec4) (f64.Vec4, bool)
}

// DiscontinuityChecker is implemented by projections with a seam, such as
// all-sky maps that cut the sphere behind the viewer. The painter skips
// line segments that cross the seam.
type DiscontinuityChecker interface {
	// IntersectDiscontinuity reports whether the segment between the two
	// unit VIEW directions may cross the seam. The test is conservative.
	IntersectDiscontinuity(a, b r3.Vector) bool
}

// base carries the window geometry shared by the built-in projections.
type base struct {
	w, h float64
	flip Flag
}

func (b *base) WindowSize() (float64, float64) { return b.w, b.h }

func (b *base) Flags() Flag { return b.flip }

// SetFlip sets the mirroring flags. Backends use the combined parity to
// fix the face winding of culled geometry.
func (b *base) SetFlip(f Flag) { b.flip = f }

// ndcToWindow applies the mirroring flags and maps NDC onto the window.
func (b *base) ndcToWindow(x, y float64) (float64, float64) {
	if b.flip&FlipHorizontal != 0 {
		x = -x
	}
	if b.flip&FlipVertical != 0 {
		y = -y
	}
	return (x + 1) / 2 * b.w, (1 - y) / 2 * b.h
}

// unflipNDC undoes the mirroring flags on backward input.
func (b *base) unflipNDC(x, y float64) (float64, float64) {
	if b.flip&FlipHorizontal != 0 {
		x = -x
	}
	if b.flip&FlipVertical != 0 {
		y = -y
	}
	return x, y
}

// viewDir extracts the direction of v, normalizing unless op promises
// unit length.
func viewDir(op Op, v f64.Vec4) r3.Vector {
	d := r3.Vector{X: v[0], Y: v[1], Z: v[2]}
	if op&OpAlreadyNormalized == 0 {
		if n := d.Norm(); n > 0 {
			d = d.Mul(1 / n)
		}
	}
	return d
}
