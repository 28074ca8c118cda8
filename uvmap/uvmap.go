// Package uvmap maps the unit UV square onto sky or space geometry: a
// healpix tile, one period of an orbit, or any custom patch. The painter
// culls, tessellates and renders through these maps without knowing the
// shape behind them.
package uvmap

import (
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/geom"
	"github.com/astroviz/skypaint/healpix"
)

// MapFunc evaluates a patch at a UV coordinate. The result is homogeneous:
// w = 0 for directions at infinity, w = 1 for positions.
type MapFunc func(uv f64.Vec2) f64.Vec4

// Map is a patch of geometry parameterized over the unit UV square.
// Create maps with New, NewHealpix or NewOrbit; a zero UV matrix is
// treated as identity so hand-built literals stay usable.
type Map struct {
	Fn MapFunc
	// UV is applied to (u, v, 1) before Fn and carries the subdivision
	// state of generic patches.
	UV f64.Mat3
	// Order and Pix identify healpix tiles and deepen on subdivision.
	Order int
	Pix   int64
	// AtInfinity marks patches whose points are directions, not
	// positions.
	AtInfinity bool
}

// New returns a map over the whole UV square of fn.
func New(fn MapFunc) *Map {
	return &Map{Fn: fn, UV: geom.Mat3Identity()}
}

// NewHealpix returns the map of a nested healpix tile. Tile points are
// unit directions at infinity.
func NewHealpix(order int, pix int64) *Map {
	return &Map{
		Fn: func(xy f64.Vec2) f64.Vec4 {
			v := healpix.PlaneToSphere(xy)
			return f64.Vec4{v.X, v.Y, v.Z, 0}
		},
		UV:         healpix.FaceMat(order, pix),
		Order:      order,
		Pix:        pix,
		AtInfinity: true,
	}
}

func (m *Map) uvMat() f64.Mat3 {
	if m.UV == (f64.Mat3{}) {
		return geom.Mat3Identity()
	}
	return m.UV
}

// Point maps a UV coordinate through the patch.
func (m *Map) Point(uv f64.Vec2) f64.Vec4 {
	p := geom.Mat3MulVec3(m.uvMat(), f64.Vec3{uv[0], uv[1], 1})
	return m.Fn(f64.Vec2{p[0], p[1]})
}

// Grid samples the patch on an (n+1)×(n+1) lattice, row-major from v = 0.
// Grid(1) yields the corners in the order (0,0), (1,0), (0,1), (1,1).
func (m *Map) Grid(n int) []f64.Vec4 {
	out := make([]f64.Vec4, 0, (n+1)*(n+1))
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			out = append(out, m.Point(f64.Vec2{
				float64(i) / float64(n),
				float64(j) / float64(n),
			}))
		}
	}
	return out
}

// Subdivide splits the patch into its four UV quadrants. Child k covers
// the (k&1, k>>1) quadrant: low corner, +u, +v, then both. For healpix
// tiles the children are exactly the four nested child pixels.
func (m *Map) Subdivide() [4]*Map {
	var out [4]*Map
	for k := 0; k < 4; k++ {
		c := *m
		q := geom.Mat3Translate(geom.Mat3Identity(), float64(k&1)*0.5, float64(k>>1)*0.5)
		q = geom.Mat3Scale(q, 0.5, 0.5, 1)
		c.UV = geom.Mat3Mul(m.uvMat(), q)
		c.Order = m.Order + 1
		c.Pix = m.Pix*4 + int64(k)
		out[k] = &c
	}
	return out
}

// BoundingCap returns a cap around the directions covered by the patch.
// Positions are normalized as seen from the origin, so the cap is only
// meaningful for at-infinity patches or bodies far from the observer.
func (m *Map) BoundingCap() geom.Cap {
	center := geom.XYZ(m.Point(f64.Vec2{0.5, 0.5})).Normalize()
	cos := 1.0
	for _, p := range m.Grid(2) {
		if d := center.Dot(geom.XYZ(p).Normalize()); d < cos {
			cos = d
		}
	}
	// The lattice only samples the boundary, so pad the half-angle a
	// little to stay on the safe side of the clipping tests.
	cos -= 1e-4
	if cos < -1 {
		cos = -1
	}
	return geom.CapFromCos(center, cos)
}
