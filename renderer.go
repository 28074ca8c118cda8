package skypaint

import (
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/uvmap"
)

// Point2D is a screen-space point primitive.
type Point2D struct {
	Pos   f64.Vec2
	Size  float64 // diameter in window pixels
	Color RGBA
}

// MeshMode selects how a mesh's indices are interpreted.
type MeshMode int

const (
	// MeshTriangles draws filled triangles, three indices each.
	MeshTriangles MeshMode = iota
	// MeshLines draws line segments, two indices each.
	MeshLines
)

// Align positions text relative to its anchor point.
type Align uint32

const (
	AlignLeft Align = 1 << iota
	AlignCenter
	AlignRight
	AlignTop
	AlignMiddle
	AlignBottom
	AlignBaseline
)

// TextEffect adjusts text styling.
type TextEffect uint32

const (
	TextUppercase TextEffect = 1 << iota
	TextBold
	TextSmallCap
	TextSemiSpaced
	TextSpaced
)

// Texture is the painter's view of a backend texture. Textures load
// asynchronously; Load reports readiness and paint operations skip
// primitives whose texture is not ready yet. Backends may type-assert
// richer capabilities (image access, size queries) on their own types.
type Texture interface {
	Load() bool
}

// Texture slots on the painter.
const (
	// TexColor is the color texture slot.
	TexColor = 0
	// TexNormal is the normal map slot.
	TexNormal = 1
)

// TextureSlot holds a bound texture and its UV transformation.
type TextureSlot struct {
	Tex Texture
	Mat f64.Mat3
}

// Renderer is the drawing backend interface. The painter culls and
// projects, then dispatches surviving primitives here. Methods receive the
// painter so backends can read its color, transform and projection;
// backends that need the full projection pipeline (Quad, Mesh) call back
// into it.
//
// Embed NopRenderer to implement only the methods a backend supports.
type Renderer interface {
	// Prepare starts a frame. scale is the pixel scale for high-dpi
	// windows. cullFlipped tells the backend the projection mirrors
	// exactly one axis, so front faces wind the other way.
	Prepare(w, h, scale float64, cullFlipped bool)

	// Finish ends a frame and flushes buffered primitives.
	Finish()

	// Points2D draws window-space points.
	Points2D(p *Painter, pts []Point2D) error

	// Quad draws a sky patch as a gridSize x gridSize grid of quads,
	// positions obtained from the uv map in the given frame.
	Quad(p *Painter, frame Frame, gridSize int, m *uvmap.Map) error

	// Line draws a tessellated polyline in window coordinates. Points
	// with NaN components mark unprojectable samples; the backend drops
	// the segments touching them.
	Line(p *Painter, win []f64.Vec2) error

	// Texture draws a textured screen-space quad centered at pos, size
	// pixels across, rotated by angle.
	Texture(tex Texture, uv [4]f64.Vec2, pos f64.Vec2, size, angle float64, c RGBA) error

	// Text draws a string anchored at pos.
	Text(s string, pos f64.Vec2, align Align, effects TextEffect, size float64, c RGBA, angle float64) error

	// TextBounds returns the window rectangle (x, y, w, h) the string
	// would occupy without drawing it.
	TextBounds(s string, pos f64.Vec2, align Align, effects TextEffect, size float64) ([4]float64, error)

	// Ellipse2D outlines an ellipse centered at pos with the given semi
	// axes, rotated by angle. A positive LineStripes on the painter is
	// the number of dashes around the outline.
	Ellipse2D(p *Painter, pos, size f64.Vec2, angle float64) error

	// Rect2D outlines a rectangle centered at pos with the given half
	// sizes, rotated by angle.
	Rect2D(p *Painter, pos, size f64.Vec2, angle float64) error

	// Line2D draws one window-space segment.
	Line2D(p *Painter, a, b f64.Vec2) error

	// Mesh draws a triangle or line mesh of frame-space vertices,
	// optionally transformed by the painter transform.
	Mesh(p *Painter, frame Frame, mode MeshMode, verts []f64.Vec3, idx []uint16, useTransform bool) error
}

// NopRenderer implements Renderer with no-ops. Backends embed it so they
// only implement the primitives they support.
type NopRenderer struct{}

func (NopRenderer) Prepare(w, h, scale float64, cullFlipped bool) {}
func (NopRenderer) Finish()                                       {}

func (NopRenderer) Points2D(p *Painter, pts []Point2D) error { return nil }

func (NopRenderer) Quad(p *Painter, frame Frame, gridSize int, m *uvmap.Map) error {
	return nil
}

func (NopRenderer) Line(p *Painter, win []f64.Vec2) error { return nil }

func (NopRenderer) Texture(tex Texture, uv [4]f64.Vec2, pos f64.Vec2, size, angle float64, c RGBA) error {
	return nil
}

func (NopRenderer) Text(s string, pos f64.Vec2, align Align, effects TextEffect, size float64, c RGBA, angle float64) error {
	return nil
}

func (NopRenderer) TextBounds(s string, pos f64.Vec2, align Align, effects TextEffect, size float64) ([4]float64, error) {
	return [4]float64{}, nil
}

func (NopRenderer) Ellipse2D(p *Painter, pos, size f64.Vec2, angle float64) error { return nil }

func (NopRenderer) Rect2D(p *Painter, pos, size f64.Vec2, angle float64) error { return nil }

func (NopRenderer) Line2D(p *Painter, a, b f64.Vec2) error { return nil }

func (NopRenderer) Mesh(p *Painter, frame Frame, mode MeshMode, verts []f64.Vec3, idx []uint16, useTransform bool) error {
	return nil
}
