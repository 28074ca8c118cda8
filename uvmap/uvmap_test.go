package uvmap

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/geom"
	"github.com/astroviz/skypaint/healpix"
)

// planeMap returns a position patch spanning the UV square in the z=0
// plane.
func planeMap() *Map {
	return New(func(uv f64.Vec2) f64.Vec4 {
		return f64.Vec4{uv[0], uv[1], 0, 1}
	})
}

func approx4(a, b f64.Vec4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestMap_Grid(t *testing.T) {
	m := planeMap()
	grid := m.Grid(1)
	if len(grid) != 4 {
		t.Fatalf("Grid(1) returned %d points, want 4", len(grid))
	}
	want := []f64.Vec4{{0, 0, 0, 1}, {1, 0, 0, 1}, {0, 1, 0, 1}, {1, 1, 0, 1}}
	for i := range want {
		if !approx4(grid[i], want[i], 1e-12) {
			t.Errorf("corner %d = %v, want %v", i, grid[i], want[i])
		}
	}
	if n := len(m.Grid(4)); n != 25 {
		t.Errorf("Grid(4) returned %d points, want 25", n)
	}
}

func TestMap_Subdivide(t *testing.T) {
	m := planeMap()
	children := m.Subdivide()

	// Every child's far corner meets the parent center.
	center := m.Point(f64.Vec2{0.5, 0.5})
	meet := [4]f64.Vec2{{1, 1}, {0, 1}, {1, 0}, {0, 0}}
	for k, c := range children {
		if got := c.Point(meet[k]); !approx4(got, center, 1e-12) {
			t.Errorf("child %d corner %v = %v, want parent center %v", k, meet[k], got, center)
		}
		if c.Order != m.Order+1 || c.Pix != int64(k) {
			t.Errorf("child %d has order %d pix %d", k, c.Order, c.Pix)
		}
	}

	// Child 0 spans the low quadrant.
	if got := children[0].Point(f64.Vec2{0, 0}); !approx4(got, m.Point(f64.Vec2{0, 0}), 1e-12) {
		t.Errorf("child 0 origin = %v, want parent origin", got)
	}
}

func TestMap_SubdivideMatchesHealpixChildren(t *testing.T) {
	for _, tc := range []struct {
		order int
		pix   int64
	}{
		{0, 0}, {0, 4}, {0, 11}, {1, 17}, {2, 100},
	} {
		parent := NewHealpix(tc.order, tc.pix)
		children := parent.Subdivide()
		for k := int64(0); k < 4; k++ {
			direct := NewHealpix(tc.order+1, tc.pix*4+k)
			for _, uv := range []f64.Vec2{{0.5, 0.5}, {0.1, 0.8}, {1, 0}} {
				a := children[k].Point(uv)
				b := direct.Point(uv)
				if !approx4(a, b, 1e-12) {
					t.Fatalf("order %d pix %d child %d at %v: subdivided %v != direct %v",
						tc.order, tc.pix, k, uv, a, b)
				}
			}
		}
	}
}

func TestMap_BoundingCap(t *testing.T) {
	for _, pix := range []int64{0, 5, 30, 47} {
		m := NewHealpix(1, pix)
		bc := m.BoundingCap()
		if math.Abs(bc.Center.Norm()-1) > 1e-12 {
			t.Fatalf("pix %d: cap center not unit: %v", pix, bc.Center)
		}
		for i, p := range m.Grid(4) {
			if !bc.ContainsVector(geom.XYZ(p).Normalize()) {
				t.Errorf("pix %d: grid sample %d outside bounding cap", pix, i)
			}
		}
	}
}

func TestMap_ZeroUVIsIdentity(t *testing.T) {
	m := &Map{Fn: func(uv f64.Vec2) f64.Vec4 {
		return f64.Vec4{uv[0], uv[1], 0, 1}
	}}
	if got := m.Point(f64.Vec2{0.25, 0.75}); !approx4(got, f64.Vec4{0.25, 0.75, 0, 1}, 1e-12) {
		t.Errorf("zero UV matrix not treated as identity: %v", got)
	}
}

func TestNewOrbit(t *testing.T) {
	// A unit circular orbit: position angle is the mean anomaly.
	solve := func(mjd float64, el OrbitElements) r3.Vector {
		m := el.Ma + el.N*(mjd-el.Epoch)
		s, c := math.Sincos(m)
		return r3.Vector{X: c, Y: s}
	}
	el := OrbitElements{Epoch: 59000, A: 1, N: 0.5, Ma: 1}

	m := NewOrbit(solve, el)
	start := m.Point(f64.Vec2{0, 0})
	s, c := math.Sincos(el.Ma)
	if !approx4(start, f64.Vec4{c, s, 0, 1}, 1e-12) {
		t.Errorf("orbit at u=0 = %v, want epoch position", start)
	}

	quarter := m.Point(f64.Vec2{0.25, 0})
	s, c = math.Sincos(el.Ma + math.Pi/2)
	if !approx4(quarter, f64.Vec4{c, s, 0, 1}, 1e-9) {
		t.Errorf("orbit at u=0.25 = %v, want quarter period", quarter)
	}

	end := m.Point(f64.Vec2{1, 0})
	if !approx4(end, start, 1e-9) {
		t.Errorf("orbit does not close: %v vs %v", end, start)
	}
}
