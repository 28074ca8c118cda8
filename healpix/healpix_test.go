package healpix

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"
)

func dirLonZ(lonDeg, z float64) r3.Vector {
	r := math.Sqrt(1 - z*z)
	s, c := math.Sincos(lonDeg * math.Pi / 180)
	return r3.Vector{X: r * c, Y: r * s, Z: z}
}

func TestNPix(t *testing.T) {
	tests := []struct {
		order int
		want  int64
	}{
		{0, 12},
		{1, 48},
		{2, 192},
		{5, 12288},
	}
	for _, tt := range tests {
		if got := NPix(tt.order); got != tt.want {
			t.Errorf("NPix(%d) = %d, want %d", tt.order, got, tt.want)
		}
	}
}

func TestNestXyf_RoundTrip(t *testing.T) {
	for order := 0; order <= 4; order++ {
		step := NPix(order)/7 + 1
		for pix := int64(0); pix < NPix(order); pix += step {
			f, x, y := NestToXyf(order, pix)
			if back := XyfToNest(order, f, x, y); back != pix {
				t.Fatalf("order %d pix %d: round trip gave %d", order, pix, back)
			}
			if n := NSide(order); x < 0 || x >= n || y < 0 || y >= n {
				t.Fatalf("order %d pix %d: xy (%d, %d) out of face", order, pix, x, y)
			}
		}
	}
}

func TestNestXyf_Children(t *testing.T) {
	// Child k of pixel p is 4p+k one order deeper, occupying the (k&1,
	// k>>1) quadrant of p's square.
	for _, order := range []int{0, 1, 3} {
		for pix := int64(0); pix < NPix(order); pix += NPix(order)/5 + 1 {
			f, x, y := NestToXyf(order, pix)
			for k := int64(0); k < 4; k++ {
				cf, cx, cy := NestToXyf(order+1, pix*4+k)
				if cf != f || cx != 2*x+(k&1) || cy != 2*y+(k>>1) {
					t.Fatalf("order %d pix %d child %d: got face %d xy (%d, %d)",
						order, pix, k, cf, cx, cy)
				}
			}
		}
	}
}

func TestPixelCenter_BaseFaces(t *testing.T) {
	tests := []struct {
		face int
		want r3.Vector
	}{
		{0, dirLonZ(45, 2.0/3)},
		{1, dirLonZ(135, 2.0/3)},
		{2, dirLonZ(225, 2.0/3)},
		{3, dirLonZ(315, 2.0/3)},
		{4, dirLonZ(0, 0)},
		{5, dirLonZ(90, 0)},
		{6, dirLonZ(180, 0)},
		{7, dirLonZ(270, 0)},
		{8, dirLonZ(45, -2.0/3)},
		{9, dirLonZ(135, -2.0/3)},
		{10, dirLonZ(225, -2.0/3)},
		{11, dirLonZ(315, -2.0/3)},
	}

	for _, tt := range tests {
		got := PixelCenter(0, int64(tt.face))
		if got.Dot(tt.want) < 1-1e-12 {
			t.Errorf("face %d center = %v, want %v", tt.face, got, tt.want)
		}
	}
}

func TestPixelCenter_UnitLength(t *testing.T) {
	for _, order := range []int{0, 1, 2, 4} {
		for pix := int64(0); pix < NPix(order); pix += NPix(order)/9 + 1 {
			v := PixelCenter(order, pix)
			if math.Abs(v.Norm()-1) > 1e-12 {
				t.Fatalf("order %d pix %d: |center| = %v", order, pix, v.Norm())
			}
		}
	}
}

func TestPlaneToSphere_BeltContinuity(t *testing.T) {
	const eps = 1e-9
	for _, x := range []float64{-2.3, -0.6, 0.2, 1.4, 2.9} {
		a := PlaneToSphere(f64.Vec2{x, math.Pi/4 - eps})
		b := PlaneToSphere(f64.Vec2{x, math.Pi/4 + eps})
		if a.Sub(b).Norm() > 1e-6 {
			t.Errorf("x = %v: discontinuity across the belt edge: %v vs %v", x, a, b)
		}
		c := PlaneToSphere(f64.Vec2{x, -math.Pi/4 + eps})
		d := PlaneToSphere(f64.Vec2{x, -math.Pi/4 - eps})
		if c.Sub(d).Norm() > 1e-6 {
			t.Errorf("x = %v: discontinuity across the south belt edge", x)
		}
	}
}

func TestPlaneToSphere_Poles(t *testing.T) {
	for _, x := range []float64{-3, 0, 1, 2.5} {
		if got := PlaneToSphere(f64.Vec2{x, math.Pi / 2}); math.Abs(got.Z-1) > 1e-12 {
			t.Errorf("north pole at x = %v: z = %v", x, got.Z)
		}
		if got := PlaneToSphere(f64.Vec2{x, -math.Pi / 2}); math.Abs(got.Z+1) > 1e-12 {
			t.Errorf("south pole at x = %v: z = %v", x, got.Z)
		}
	}
}

func TestPlaneToSphere_LongitudeWrap(t *testing.T) {
	a := PlaneToSphere(f64.Vec2{math.Pi - 0.1, 0})
	b := PlaneToSphere(f64.Vec2{-math.Pi - 0.1, 0})
	if a.Sub(b).Norm() > 1e-12 {
		t.Errorf("wrapped longitudes disagree: %v vs %v", a, b)
	}
}
