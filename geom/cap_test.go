package geom

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// zdir returns the unit vector tilted by deg degrees from +z in the xz
// plane.
func zdir(deg float64) r3.Vector {
	s, c := math.Sincos(deg * math.Pi / 180)
	return r3.Vector{X: s, Y: 0, Z: c}
}

func TestCap_Intersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Cap
		want bool
	}{
		{"same cap", NewCap(zdir(0), 30*s1.Degree), NewCap(zdir(0), 30*s1.Degree), true},
		{"overlapping", NewCap(zdir(0), 30*s1.Degree), NewCap(zdir(40), 15*s1.Degree), true},
		{"disjoint", NewCap(zdir(0), 30*s1.Degree), NewCap(zdir(40), 5*s1.Degree), false},
		{"near touch inside", NewCap(zdir(0), 30*s1.Degree), NewCap(zdir(39.9), 10*s1.Degree), true},
		{"near touch outside", NewCap(zdir(0), 30*s1.Degree), NewCap(zdir(40.1), 10*s1.Degree), false},
		{"contained", NewCap(zdir(0), 60*s1.Degree), NewCap(zdir(10), 5*s1.Degree), true},
		{"antipodal hemispheres", NewCap(zdir(0), 90*s1.Degree), NewCap(zdir(180), 90*s1.Degree), true},
		{"antipodal small", NewCap(zdir(0), 10*s1.Degree), NewCap(zdir(180), 10*s1.Degree), false},
		{"full cap vs point", FullCap(zdir(0)), PointCap(zdir(180)), true},
		{"wide caps far apart", NewCap(zdir(0), 100*s1.Degree), NewCap(zdir(175), 100*s1.Degree), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			// The relation is symmetric.
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCap_SelfIntersection(t *testing.T) {
	caps := []Cap{
		PointCap(zdir(0)),
		PointCap(zdir(123)),
		NewCap(zdir(45), 1*s1.Degree),
		NewCap(zdir(90), 90*s1.Degree),
		NewCap(zdir(170), 150*s1.Degree),
		FullCap(zdir(0)),
	}
	for _, c := range caps {
		if !c.Intersects(c) {
			t.Errorf("cap %+v does not intersect itself", c)
		}
		if !c.ContainsVector(c.Center) {
			t.Errorf("cap %+v does not contain its center", c)
		}
	}
}

func TestCap_ContainsVector(t *testing.T) {
	cap30 := NewCap(zdir(0), 30*s1.Degree)
	tests := []struct {
		name string
		v    r3.Vector
		want bool
	}{
		{"center", zdir(0), true},
		{"inside", zdir(29.9), true},
		{"outside", zdir(30.1), false},
		{"far", zdir(120), false},
		{"antipode", zdir(180), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cap30.ContainsVector(tt.v); got != tt.want {
				t.Errorf("ContainsVector(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestCap_ContainsVectorImpliesIntersects(t *testing.T) {
	c := NewCap(zdir(20), 25*s1.Degree)
	for _, deg := range []float64{0, 10, 20, 30, 44, 46, 90, 180} {
		v := zdir(deg)
		if c.ContainsVector(v) && !c.Intersects(PointCap(v)) {
			t.Errorf("contained direction %v not reported as intersecting point cap", v)
		}
	}
}

func TestCap_Contains(t *testing.T) {
	tests := []struct {
		name string
		a, b Cap
		want bool
	}{
		{"same", NewCap(zdir(0), 30*s1.Degree), NewCap(zdir(0), 30*s1.Degree), true},
		{"smaller inside", NewCap(zdir(0), 30*s1.Degree), NewCap(zdir(10), 5*s1.Degree), true},
		{"poking out", NewCap(zdir(0), 30*s1.Degree), NewCap(zdir(28), 5*s1.Degree), false},
		{"larger", NewCap(zdir(0), 10*s1.Degree), NewCap(zdir(0), 30*s1.Degree), false},
		{"full contains all", FullCap(zdir(0)), NewCap(zdir(170), 60*s1.Degree), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Contains(tt.b); got != tt.want {
				t.Errorf("Contains = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCap_Angle(t *testing.T) {
	for _, deg := range []float64{0, 10, 45, 90, 135, 180} {
		c := NewCap(zdir(0), s1.Angle(deg)*s1.Degree)
		if got := c.Angle().Degrees(); math.Abs(got-deg) > 1e-9 {
			t.Errorf("Angle() = %v deg, want %v", got, deg)
		}
	}
}
