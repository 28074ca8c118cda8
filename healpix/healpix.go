// Package healpix implements the pieces of the nested HEALPix scheme the
// sky painter needs: pixel indexing, the planar HEALPix projection, and
// the affine map from a pixel's unit UV square onto the projection plane.
//
// The projection plane spans [-pi, pi] in x (longitude) and
// [-pi/2, pi/2] in y. Each of the 12 base faces is a diamond of
// half-width pi/4; a pixel at a given order is a sub-diamond of its face.
package healpix

import (
	"math"

	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint/geom"
)

// Face ring rows and longitude offsets of the 12 base faces: four north
// polar, four equatorial, four south polar.
var (
	jrll = [12]float64{2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4}
	jpll = [12]float64{1, 3, 5, 7, 0, 2, 4, 6, 1, 3, 5, 7}
)

// NSide returns the per-face grid resolution at the given order.
func NSide(order int) int64 {
	return 1 << uint(order)
}

// NPix returns the total number of pixels at the given order.
func NPix(order int) int64 {
	return 12 << (2 * uint(order))
}

// NestToXyf splits a nested pixel index into its face number and in-face
// column and row.
func NestToXyf(order int, pix int64) (face int, x, y int64) {
	face = int(pix >> (2 * uint(order)))
	rem := pix & (NSide(order)*NSide(order) - 1)
	return face, compressBits(rem), compressBits(rem >> 1)
}

// XyfToNest combines a face number and in-face coordinates into a nested
// pixel index.
func XyfToNest(order int, face int, x, y int64) int64 {
	return int64(face)<<(2*uint(order)) | spreadBits(x) | spreadBits(y)<<1
}

// compressBits keeps the even-position bits of v, packed together.
func compressBits(v int64) int64 {
	v &= 0x5555555555555555
	v = (v | v>>1) & 0x3333333333333333
	v = (v | v>>2) & 0x0f0f0f0f0f0f0f0f
	v = (v | v>>4) & 0x00ff00ff00ff00ff
	v = (v | v>>8) & 0x0000ffff0000ffff
	v = (v | v>>16) & 0x00000000ffffffff
	return v
}

// spreadBits spaces the low 32 bits of v onto even positions.
func spreadBits(v int64) int64 {
	v &= 0x00000000ffffffff
	v = (v | v<<16) & 0x0000ffff0000ffff
	v = (v | v<<8) & 0x00ff00ff00ff00ff
	v = (v | v<<4) & 0x0f0f0f0f0f0f0f0f
	v = (v | v<<2) & 0x3333333333333333
	v = (v | v<<1) & 0x5555555555555555
	return v
}

// FaceMat returns the affine transform from the pixel's (u, v) unit square
// onto the projection plane. +u runs toward increasing longitude, +v
// toward decreasing; the pixel's south corner sits at (u, v) = (0, 0).
func FaceMat(order int, pix int64) f64.Mat3 {
	face, x, y := NestToXyf(order, pix)
	s := math.Pi / 4 / float64(NSide(order))
	cx := jpll[face] * math.Pi / 4
	cy := (3 - jrll[face]) * math.Pi / 4
	fx, fy := float64(x), float64(y)
	return f64.Mat3{
		s, -s, cx + (fx-fy)*s,
		s, s, cy + (fx+fy)*s - math.Pi/4,
		0, 0, 1,
	}
}

// PlaneToSphere maps a point of the projection plane to a unit direction.
// x wraps as longitude; |y| above pi/2 is clamped to the poles.
func PlaneToSphere(xy f64.Vec2) r3.Vector {
	x := wrapPi(xy[0])
	y := xy[1]

	var z, lon float64
	if math.Abs(y) <= math.Pi/4 {
		// Equatorial belt: z is linear in y.
		z = y * 8 / (3 * math.Pi)
		lon = x
	} else {
		// Polar zone: pixels shear toward the center of their column.
		sigma := 2 - math.Abs(y)*4/math.Pi
		if sigma < 0 {
			sigma = 0
		}
		z = 1 - sigma*sigma/3
		if y < 0 {
			z = -z
		}
		lon = x
		if sigma != 0 {
			xc := -math.Pi + (2*math.Floor((x+math.Pi)*2/math.Pi)+1)*math.Pi/4
			lon = xc + (x-xc)/sigma
		}
	}

	r := math.Sqrt(math.Max(0, 1-z*z))
	sl, cl := math.Sincos(lon)
	return r3.Vector{X: r * cl, Y: r * sl, Z: z}
}

// PixelCenter returns the direction at the center of a nested pixel.
func PixelCenter(order int, pix int64) r3.Vector {
	m := FaceMat(order, pix)
	p := geom.Mat3MulVec3(m, f64.Vec3{0.5, 0.5, 1})
	return PlaneToSphere(f64.Vec2{p[0], p[1]})
}

// wrapPi maps x into [-pi, pi).
func wrapPi(x float64) float64 {
	return x - 2*math.Pi*math.Floor((x+math.Pi)/(2*math.Pi))
}
