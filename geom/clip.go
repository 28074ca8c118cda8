package geom

import "golang.org/x/image/math/f64"

// clipPlanes bounds the homogeneous clip volume. A plane (a, b, c, d)
// keeps the points with a·x + b·y + c·z + d·w ≤ 0.
var clipPlanes = [6]f64.Vec4{
	{-1, 0, 0, -1},
	{1, 0, 0, -1},
	{0, -1, 0, -1},
	{0, 1, 0, -1},
	{0, 0, -1, -1},
	{0, 0, 1, -1},
}

// IsClipped reports whether the convex hull of the given clip-space points
// lies entirely outside the clip volume: every point strictly violates the
// same plane. The test is conservative in the other direction; a false
// result does not guarantee visibility.
func IsClipped(pts []f64.Vec4) bool {
	if len(pts) == 0 {
		return false
	}
	for _, pl := range clipPlanes {
		out := true
		for _, p := range pts {
			if pl[0]*p[0]+pl[1]*p[1]+pl[2]*p[2]+pl[3]*p[3] <= 0 {
				out = false
				break
			}
		}
		if out {
			return true
		}
	}
	return false
}
