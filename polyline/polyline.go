// Package polyline samples parametric window-space curves into polylines.
// A span is split while its midpoint strays more than a tolerance from the
// chord, the same refinement rule renderers use to flatten Bézier curves.
package polyline

import (
	"math"

	"golang.org/x/image/math/f64"
)

// CurveFunc evaluates a curve at t in [0, 1] and returns a window
// position. Unprojectable parameters may yield NaN components; those spans
// are kept coarse and left for the backend to clip.
type CurveFunc func(t float64) f64.Vec2

// maxDepth bounds refinement so a pathological curve cannot recurse
// forever.
const maxDepth = 10

// Adaptive samples f with at least minSplit spans and refines each span
// until its midpoint deviates from the chord by no more than tol window
// units. The result always starts at f(0) and ends at f(1).
func Adaptive(f CurveFunc, minSplit int, tol float64) []f64.Vec2 {
	if minSplit < 1 {
		minSplit = 1
	}
	pts := make([]f64.Vec2, 0, minSplit+1)
	prev := f(0)
	pts = append(pts, prev)
	for i := 0; i < minSplit; i++ {
		t0 := float64(i) / float64(minSplit)
		t1 := float64(i+1) / float64(minSplit)
		next := f(t1)
		pts = refine(f, t0, t1, prev, next, tol, maxDepth, pts)
		prev = next
	}
	return pts
}

// refine appends the samples of the span (t0, t1], subdividing while the
// midpoint test asks for it.
func refine(f CurveFunc, t0, t1 float64, p0, p1 f64.Vec2, tol float64, depth int, pts []f64.Vec2) []f64.Vec2 {
	if depth > 0 {
		tm := (t0 + t1) / 2
		pm := f(tm)
		if needSplit(p0, pm, p1, tol) {
			pts = refine(f, t0, tm, p0, pm, tol, depth-1, pts)
			return refine(f, tm, t1, pm, p1, tol, depth-1, pts)
		}
	}
	return append(pts, p1)
}

func needSplit(p0, pm, p1 f64.Vec2, tol float64) bool {
	if hasNaN(p0) || hasNaN(pm) || hasNaN(p1) {
		return false
	}
	return distToSegment(pm, p0, p1) > tol
}

func hasNaN(p f64.Vec2) bool {
	return math.IsNaN(p[0]) || math.IsNaN(p[1])
}

// distToSegment returns the distance from p to the segment ab.
func distToSegment(p, a, b f64.Vec2) float64 {
	abx, aby := b[0]-a[0], b[1]-a[1]
	apx, apy := p[0]-a[0], p[1]-a[1]
	den := abx*abx + aby*aby
	if den == 0 {
		return math.Hypot(apx, apy)
	}
	t := (apx*abx + apy*aby) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(apx-t*abx, apy-t*aby)
}
