package softrender

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/astroviz/skypaint"
)

// face is the fixed 7x13 bitmap face used for all labels. The size
// argument of Text is ignored; this backend exists for diagnostics, not
// typography.
var face = basicfont.Face7x13

// applyEffects rewrites the string for the effects the bitmap face can
// approximate. Small caps fall back to upper case, spaced text inserts
// a blank between runes.
func applyEffects(s string, effects skypaint.TextEffect) string {
	if effects&(skypaint.TextUppercase|skypaint.TextSmallCap) != 0 {
		s = strings.ToUpper(s)
	}
	if effects&skypaint.TextSpaced != 0 {
		s = strings.Join(strings.Split(s, ""), " ")
	}
	return s
}

// textOrigin aligns the string around pos and reports the baseline
// origin together with the window-space bounds as x, y, w, h with y at
// the glyph top.
func textOrigin(s string, pos f64.Vec2, align skypaint.Align) (x, y float64, bounds [4]float64) {
	w := float64(font.MeasureString(face, s)) / 64
	asc := float64(face.Ascent)
	desc := float64(face.Descent)
	h := float64(face.Height)

	x = pos[0]
	switch {
	case align&skypaint.AlignCenter != 0:
		x -= w / 2
	case align&skypaint.AlignRight != 0:
		x -= w
	}
	y = pos[1]
	switch {
	case align&skypaint.AlignTop != 0:
		y += asc
	case align&skypaint.AlignMiddle != 0:
		y += asc - h/2
	case align&skypaint.AlignBottom != 0:
		y -= desc
	}
	return x, y, [4]float64{x, y - asc, w, h}
}

// Text implements skypaint.Renderer. The label is drawn with the fixed
// bitmap face; angle is ignored and bold is faked by a one pixel double
// strike.
func (r *Renderer) Text(s string, pos f64.Vec2, align skypaint.Align, effects skypaint.TextEffect, size float64, c skypaint.RGBA, angle float64) error {
	if s == "" || c.A <= 0 {
		return nil
	}
	s = applyEffects(s, effects)
	x, y, _ := textOrigin(s, pos, align)
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c.Color()),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * r.scale * 64), Y: fixed.Int26_6(y * r.scale * 64)},
	}
	d.DrawString(s)
	if effects&skypaint.TextBold != 0 {
		d.Dot = fixed.Point26_6{X: fixed.Int26_6((x*r.scale + 1) * 64), Y: fixed.Int26_6(y * r.scale * 64)}
		d.DrawString(s)
	}
	return nil
}

// TextBounds implements skypaint.Renderer without drawing anything.
func (r *Renderer) TextBounds(s string, pos f64.Vec2, align skypaint.Align, effects skypaint.TextEffect, size float64) ([4]float64, error) {
	s = applyEffects(s, effects)
	_, _, b := textOrigin(s, pos, align)
	return b, nil
}
