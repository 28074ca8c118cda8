package skypaint

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/geom"
)

// Observer converts positions and directions between reference frames.
// The astronomy behind the conversions (precession, nutation, refraction,
// parallax) is the host's concern; the painter only calls through this
// interface.
type Observer interface {
	// Convert maps v from one frame to another. atInf marks v as a unit
	// direction to a point at infinity, exempt from parallax.
	Convert(from, to Frame, atInf bool, v r3.Vector) r3.Vector

	// ConvertVec4 maps a homogeneous position or direction between
	// frames. w = 0 marks a direction; w passes through unchanged.
	ConvertVec4(from, to Frame, v f64.Vec4) f64.Vec4
}

// MatrixObserver is an Observer built from one rotation matrix per frame.
// It covers every conversion a painter needs as long as frames differ only
// by rotation, which holds for sky directions. Each matrix maps its frame
// to ICRF; conversions compose through ICRF.
//
// A MatrixObserver is a snapshot: refresh the rotations when the
// observation time or the view direction changes.
type MatrixObserver struct {
	rot [frameCount]f64.Mat3
}

// NewMatrixObserver returns an observer with every frame equal to ICRF.
func NewMatrixObserver() *MatrixObserver {
	o := &MatrixObserver{}
	for i := range o.rot {
		o.rot[i] = geom.Mat3Identity()
	}
	return o
}

// SetFrame sets the rotation mapping frame f to ICRF.
func (o *MatrixObserver) SetFrame(f Frame, m f64.Mat3) {
	o.rot[f] = m
}

// Convert implements Observer. Pure rotations carry no parallax, so atInf
// has no effect here.
func (o *MatrixObserver) Convert(from, to Frame, atInf bool, v r3.Vector) r3.Vector {
	_ = atInf
	if from == to {
		return v
	}
	icrf := geom.Mat3MulVector(o.rot[from], v)
	return geom.Mat3MulVector(geom.Mat3Transpose(o.rot[to]), icrf)
}

// ConvertVec4 implements Observer.
func (o *MatrixObserver) ConvertVec4(from, to Frame, v f64.Vec4) f64.Vec4 {
	out := o.Convert(from, to, v[3] == 0, geom.XYZ(v))
	return geom.Vec4(out, v[3])
}

// LookAtView points the view frame at the given azimuth and altitude in the
// observed frame. Azimuth is measured from north through east. The camera
// keeps the horizon level except at the zenith and nadir, where the up
// direction follows the azimuth.
//
// Set the observed frame rotation before calling; LookAtView composes with
// it.
func (o *MatrixObserver) LookAtView(az, alt s1.Angle) {
	sa, ca := math.Sincos(az.Radians())
	sh, ch := math.Sincos(alt.Radians())
	fwd := r3.Vector{X: sa * ch, Y: ca * ch, Z: sh}

	right := fwd.Cross(r3.Vector{Z: 1})
	if right.Norm() < 1e-12 {
		// Looking straight up or down. Use the continuous limit of the
		// cross product as altitude approaches +-90 degrees.
		right = r3.Vector{X: ca, Y: -sa}
	}
	right = right.Normalize()
	up := right.Cross(fwd)

	viewToObs := geom.Mat3FromCols(right, up, fwd.Mul(-1))
	o.rot[FrameView] = geom.Mat3Mul(o.rot[FrameObserved], viewToObs)
}

// SiteRotation returns the rotation mapping the observed frame (x east,
// y north, z up) of a site at the given latitude to the equatorial frame,
// for the given local sidereal time. Feed it to SetFrame(FrameObserved)
// when equatorial and ICRF are close enough for the purpose at hand.
func SiteRotation(lat, lst s1.Angle) f64.Mat3 {
	sLat, cLat := math.Sincos(lat.Radians())
	sLst, cLst := math.Sincos(lst.Radians())
	east := r3.Vector{X: -sLst, Y: cLst}
	north := r3.Vector{X: -sLat * cLst, Y: -sLat * sLst, Z: cLat}
	up := r3.Vector{X: cLat * cLst, Y: cLat * sLst, Z: sLat}
	return geom.Mat3FromCols(east, north, up)
}
