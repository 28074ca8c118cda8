package skypaint

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/geom"
	"github.com/astroviz/skypaint/proj"
)

func TestProjectPoint_Center(t *testing.T) {
	p, _ := newViewPainter(t)
	win, ok := p.ProjectPoint(FrameView, f64.Vec4{0, 0, -1, 0}, false)
	if !ok {
		t.Fatal("ProjectPoint failed for the view center")
	}
	if math.Abs(win[0]-400) > 1e-9 || math.Abs(win[1]-300) > 1e-9 {
		t.Errorf("view center projects to %v, want (400, 300)", win)
	}
}

func TestProjectPoint_BehindCamera(t *testing.T) {
	p, _ := newViewPainter(t)
	win, ok := p.ProjectPoint(FrameView, f64.Vec4{0, 0, 1, 0}, false)
	if ok {
		t.Fatal("ProjectPoint succeeded behind the camera")
	}
	// Failed window projections carry NaN so callers that ignore the
	// boolean cannot mistake them for a real position.
	if !math.IsNaN(win[0]) {
		t.Errorf("failed projection returned %v, want NaN coordinates", win)
	}
}

func TestProjectPoint_ClipFirst(t *testing.T) {
	// 56 degrees to the right is past the window edge but still in front
	// of the camera: without pre-clipping it projects fine (outside the
	// window), with pre-clipping it is rejected.
	p, _ := newViewPainter(t)
	s, c := math.Sincos(56 * math.Pi / 180)
	pos := f64.Vec4{s, 0, -c, 0}

	win, ok := p.ProjectPoint(FrameView, pos, false)
	if !ok {
		t.Fatal("ProjectPoint failed for a point in front of the camera")
	}
	if win[0] <= 800 {
		t.Errorf("window x = %v, want > 800", win[0])
	}
	if _, ok := p.ProjectPoint(FrameView, pos, true); ok {
		t.Error("clipFirst did not reject an off-screen point")
	}
}

func TestUnprojectPoint_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		pr   proj.Projection
		wins []f64.Vec2
	}{
		{
			"perspective",
			proj.NewPerspective(90*s1.Degree, 800, 600),
			[]f64.Vec2{{400, 300}, {100, 80}, {700, 550}, {0, 0}},
		},
		{
			"stereographic",
			proj.NewStereographic(120*s1.Degree, 800, 600),
			[]f64.Vec2{{400, 300}, {50, 500}, {795, 5}},
		},
		{
			"hammer",
			proj.NewHammer(800, 400),
			[]f64.Vec2{{400, 200}, {500, 250}, {300, 150}, {600, 100}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPainter(WithProjection(tt.pr))
			p.RefreshClipInfo()
			for _, win := range tt.wins {
				d, ok := p.UnprojectPoint(FrameView, win)
				if !ok {
					t.Errorf("UnprojectPoint(%v) failed", win)
					continue
				}
				if math.Abs(d.Norm()-1) > 1e-9 {
					t.Errorf("UnprojectPoint(%v) norm = %v, want 1", win, d.Norm())
				}
				back, ok := p.ProjectPoint(FrameView, geom.Vec4(d, 0), false)
				if !ok {
					t.Errorf("ProjectPoint failed for unprojected %v", win)
					continue
				}
				if math.Abs(back[0]-win[0]) > 1e-6 || math.Abs(back[1]-win[1]) > 1e-6 {
					t.Errorf("round trip %v -> %v -> %v", win, d, back)
				}
			}
		})
	}
}

func TestUnprojectPoint_OutsideAllSkyMap(t *testing.T) {
	p := NewPainter(WithProjection(proj.NewHammer(800, 400)))
	p.RefreshClipInfo()
	// The window corner lies outside the 2:1 projection ellipse.
	d, ok := p.UnprojectPoint(FrameView, f64.Vec2{0, 0})
	if ok {
		t.Error("UnprojectPoint succeeded outside the projection ellipse")
	}
	if math.Abs(d.Norm()-1) > 1e-9 {
		t.Errorf("fallback direction norm = %v, want a unit vector", d.Norm())
	}
}

// ellipseObserver maps the ICRF x axis to the view center so ellipse
// projections land mid-window.
func ellipseObserver() *MatrixObserver {
	obs := NewMatrixObserver()
	obs.SetFrame(FrameView, geom.Mat3FromCols(
		r3.Vector{Y: -1},
		r3.Vector{Z: 1},
		r3.Vector{X: -1},
	))
	return obs
}

func TestProjectEllipse_Circle(t *testing.T) {
	p, _ := newViewPainter(t, WithObserver(ellipseObserver()))
	const diam = 2 * math.Pi / 180

	pos, size, winAngle, ok := p.ProjectEllipse(FrameICRF, 0, 0, math.NaN(), diam, math.NaN())
	if !ok {
		t.Fatal("ProjectEllipse failed at the view center")
	}
	if math.Abs(pos[0]-400) > 1e-9 || math.Abs(pos[1]-300) > 1e-9 {
		t.Errorf("pos = %v, want (400, 300)", pos)
	}
	// A 2 degree circle at the center of a 90 degree 600px-high view
	// spans 600*tan(1 degree) pixels on both axes.
	want := 600 * math.Tan(diam/2)
	if math.Abs(size[0]-want) > 1e-6 || math.Abs(size[1]-want) > 1e-6 {
		t.Errorf("size = %v, want (%v, %v)", size, want, want)
	}
	if winAngle != 0 {
		t.Errorf("winAngle = %v, want 0 for an orientation-free circle", winAngle)
	}
}

func TestProjectEllipse_Oriented(t *testing.T) {
	p, _ := newViewPainter(t, WithObserver(ellipseObserver()))
	const sizeX = 2 * math.Pi / 180
	const sizeY = sizeX / 2

	_, size, winAngle, ok := p.ProjectEllipse(FrameICRF, 0, 0, 0, sizeX, sizeY)
	if !ok {
		t.Fatal("ProjectEllipse failed at the view center")
	}
	// The first probe runs along the east axis and is squeezed by
	// sizeY/sizeX, the second along north keeps the full sizeX extent.
	wantMinor := 600 * (sizeY / sizeX) * math.Tan(sizeX/2)
	wantMajor := 600 * math.Tan(sizeX/2)
	if math.Abs(size[0]-wantMinor) > 1e-6 {
		t.Errorf("size[0] = %v, want %v", size[0], wantMinor)
	}
	if math.Abs(size[1]-wantMajor) > 1e-6 {
		t.Errorf("size[1] = %v, want %v", size[1], wantMajor)
	}
	// Growing RA maps to the window -x direction under this observer.
	if math.Abs(winAngle-math.Pi) > 1e-9 {
		t.Errorf("winAngle = %v, want pi", winAngle)
	}
}

func TestProjectEllipse_PointSize(t *testing.T) {
	p, _ := newViewPainter(t, WithObserver(ellipseObserver()))
	pos, size, winAngle, ok := p.ProjectEllipse(FrameICRF, 0, 0, math.NaN(), 0, math.NaN())
	if !ok {
		t.Fatal("ProjectEllipse failed for a point ellipse")
	}
	if size != (f64.Vec2{}) || winAngle != 0 {
		t.Errorf("size = %v, winAngle = %v, want zeros", size, winAngle)
	}
	if math.Abs(pos[0]-400) > 1e-9 || math.Abs(pos[1]-300) > 1e-9 {
		t.Errorf("pos = %v, want (400, 300)", pos)
	}
}

func TestProjectEllipse_BehindCamera(t *testing.T) {
	p, _ := newViewPainter(t, WithObserver(ellipseObserver()))
	// RA 180 degrees puts the center directly behind the viewer.
	_, _, _, ok := p.ProjectEllipse(FrameICRF, math.Pi, 0, math.NaN(), 0.01, math.NaN())
	if ok {
		t.Error("ProjectEllipse succeeded behind the camera")
	}
}
