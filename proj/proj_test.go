package proj

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"golang.org/x/image/math/f64"
)

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestPerspective_Window(t *testing.T) {
	p := NewPerspective(90*s1.Degree, 800, 600)

	tests := []struct {
		name   string
		dir    f64.Vec4
		wx, wy float64
	}{
		{"center", f64.Vec4{0, 0, -1, 0}, 400, 300},
		{"top edge", f64.Vec4{0, 1, -1, 0}, 400, 0},
		{"bottom edge", f64.Vec4{0, -1, -1, 0}, 400, 600},
		{"scaled direction", f64.Vec4{0, 5, -5, 0}, 400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Project(OpToWindow, tt.dir)
			if !ok {
				t.Fatal("projection failed")
			}
			if !approx(got[0], tt.wx, 1e-9) || !approx(got[1], tt.wy, 1e-9) {
				t.Errorf("window = (%v, %v), want (%v, %v)", got[0], got[1], tt.wx, tt.wy)
			}
		})
	}
}

func TestPerspective_BehindCamera(t *testing.T) {
	p := NewPerspective(60*s1.Degree, 100, 100)
	if _, ok := p.Project(OpToWindow, f64.Vec4{0, 0, 1, 0}); ok {
		t.Error("point behind the camera projected to the window")
	}
	// Without OpToWindow the clip coordinates carry a negative w instead.
	clip, ok := p.Project(0, f64.Vec4{0, 0, 1, 0})
	if ok {
		t.Error("clip projection of a backward point reported ok")
	}
	if clip[3] >= 0 {
		t.Errorf("clip w = %v, want negative for a backward point", clip[3])
	}
}

func TestPerspective_BackwardRoundTrip(t *testing.T) {
	p := NewPerspective(75*s1.Degree, 640, 480)
	for _, ndc := range []f64.Vec2{{0, 0}, {0.5, 0.5}, {-0.8, 0.3}, {1, -1}} {
		d, ok := p.Project(OpBackward, f64.Vec4{ndc[0], ndc[1], 0, 0})
		if !ok {
			t.Fatalf("backward failed at %v", ndc)
		}
		if n := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2]); !approx(n, 1, 1e-9) {
			t.Fatalf("backward direction not unit at %v: %v", ndc, n)
		}
		clip, ok := p.Project(OpAlreadyNormalized, d)
		if !ok {
			t.Fatalf("forward failed at %v", ndc)
		}
		if !approx(clip[0]/clip[3], ndc[0], 1e-9) || !approx(clip[1]/clip[3], ndc[1], 1e-9) {
			t.Errorf("round trip %v -> (%v, %v)", ndc, clip[0]/clip[3], clip[1]/clip[3])
		}
	}
}

func TestStereographic_RoundTrip(t *testing.T) {
	p := NewStereographic(180*s1.Degree, 500, 500)
	dirs := []r3.Vector{
		{X: 0, Y: 0, Z: -1},
		{X: 0.3, Y: 0.2, Z: -0.8},
		{X: -0.5, Y: 0.5, Z: -0.2},
		{X: 0.9, Y: 0, Z: 0.1}, // more than 90 degrees off axis
	}
	for _, d := range dirs {
		d = d.Normalize()
		clip, ok := p.Project(OpAlreadyNormalized, f64.Vec4{d.X, d.Y, d.Z, 0})
		if !ok {
			t.Fatalf("forward failed for %v", d)
		}
		back, ok := p.Project(OpBackward, clip)
		if !ok {
			t.Fatalf("backward failed for %v", d)
		}
		if !approx(back[0], d.X, 1e-9) || !approx(back[1], d.Y, 1e-9) || !approx(back[2], d.Z, 1e-9) {
			t.Errorf("round trip %v -> %v", d, back)
		}
	}
}

func TestStereographic_Antipode(t *testing.T) {
	p := NewStereographic(90*s1.Degree, 500, 500)
	if _, ok := p.Project(OpAlreadyNormalized, f64.Vec4{0, 0, 1, 0}); ok {
		t.Error("antipode of the view center should not project")
	}
}

func TestHammer_RoundTrip(t *testing.T) {
	p := NewHammer(800, 400)
	dirs := []r3.Vector{
		{X: 0, Y: 0, Z: -1},
		{X: 0.5, Y: 0.5, Z: -0.5},
		{X: -0.7, Y: 0.1, Z: -0.3},
		{X: 0.2, Y: -0.9, Z: 0.1},
	}
	for _, d := range dirs {
		d = d.Normalize()
		clip, ok := p.Project(OpAlreadyNormalized, f64.Vec4{d.X, d.Y, d.Z, 0})
		if !ok {
			t.Fatalf("forward failed for %v", d)
		}
		back, ok := p.Project(OpBackward, clip)
		if !ok {
			t.Fatalf("backward failed for %v", d)
		}
		if !approx(back[0], d.X, 1e-9) || !approx(back[1], d.Y, 1e-9) || !approx(back[2], d.Z, 1e-9) {
			t.Errorf("round trip %v -> %v", d, back)
		}
	}
}

func TestHammer_OutsideEllipse(t *testing.T) {
	p := NewHammer(800, 400)
	if _, ok := p.Project(OpBackward, f64.Vec4{1, 1, 0, 0}); ok {
		t.Error("corner of NDC space lies outside the ellipse and should fail")
	}
}

func TestHammer_IntersectDiscontinuity(t *testing.T) {
	p := NewHammer(800, 400)
	tests := []struct {
		name string
		a, b r3.Vector
		want bool
	}{
		{"crossing behind", r3.Vector{X: -0.1, Z: 0.99}, r3.Vector{X: 0.1, Z: 0.99}, true},
		{"crossing in front", r3.Vector{X: -0.1, Z: -0.99}, r3.Vector{X: 0.1, Z: -0.99}, false},
		{"same side behind", r3.Vector{X: 0.2, Z: 0.97}, r3.Vector{X: 0.4, Z: 0.9}, false},
		{"one endpoint behind", r3.Vector{X: -0.3, Z: -0.9}, r3.Vector{X: 0.3, Z: 0.9}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.IntersectDiscontinuity(tt.a.Normalize(), tt.b.Normalize()); got != tt.want {
				t.Errorf("IntersectDiscontinuity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlipHorizontal(t *testing.T) {
	p := NewPerspective(90*s1.Degree, 800, 600)
	p.SetFlip(FlipHorizontal)
	if p.Flags()&FlipHorizontal == 0 {
		t.Fatal("flag not set")
	}
	// A direction to the right of the view axis lands on the left half.
	got, ok := p.Project(OpToWindow, f64.Vec4{0.5, 0, -1, 0})
	if !ok {
		t.Fatal("projection failed")
	}
	if got[0] >= 400 {
		t.Errorf("flipped window x = %v, want < 400", got[0])
	}
	// Backward undoes the flip.
	d, _ := p.Project(OpBackward, f64.Vec4{-0.5, 0, 0, 0})
	if d[0] <= 0 {
		t.Errorf("backward direction x = %v, want > 0 under horizontal flip", d[0])
	}
}

func TestNDCWindowCorners(t *testing.T) {
	b := base{w: 800, h: 600}
	wx, wy := b.ndcToWindow(-1, 1)
	if wx != 0 || wy != 0 {
		t.Errorf("NDC (-1, 1) = (%v, %v), want (0, 0)", wx, wy)
	}
	wx, wy = b.ndcToWindow(1, -1)
	if wx != 800 || wy != 600 {
		t.Errorf("NDC (1, -1) = (%v, %v), want (800, 600)", wx, wy)
	}
}
