package geom

import (
	"math"

	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"
)

// Mat3Identity returns the 3×3 identity matrix.
func Mat3Identity() f64.Mat3 {
	return f64.Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromCols builds a matrix from its column vectors, the rotation that
// maps the basis axes onto a, b and c.
func Mat3FromCols(a, b, c r3.Vector) f64.Mat3 {
	return f64.Mat3{
		a.X, b.X, c.X,
		a.Y, b.Y, c.Y,
		a.Z, b.Z, c.Z,
	}
}

// Mat3Transpose returns the transpose of m.
func Mat3Transpose(m f64.Mat3) f64.Mat3 {
	return f64.Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Mat3Mul returns the product a·b.
func Mat3Mul(a, b f64.Mat3) f64.Mat3 {
	var out f64.Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[3*r+c] = a[3*r]*b[c] + a[3*r+1]*b[3+c] + a[3*r+2]*b[6+c]
		}
	}
	return out
}

// Mat3MulVec3 applies m to v.
func Mat3MulVec3(m f64.Mat3, v f64.Vec3) f64.Vec3 {
	return f64.Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Mat3MulVector applies m to a spatial vector. It is Mat3MulVec3 for the
// r3 type used by sphere directions.
func Mat3MulVector(m f64.Mat3, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Mat3RotateX returns m·Rx(a): a rotation about the x axis applied in m's
// local frame.
func Mat3RotateX(m f64.Mat3, a float64) f64.Mat3 {
	s, c := math.Sincos(a)
	return Mat3Mul(m, f64.Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}

// Mat3RotateY returns m·Ry(a).
func Mat3RotateY(m f64.Mat3, a float64) f64.Mat3 {
	s, c := math.Sincos(a)
	return Mat3Mul(m, f64.Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

// Mat3RotateZ returns m·Rz(a).
func Mat3RotateZ(m f64.Mat3, a float64) f64.Mat3 {
	s, c := math.Sincos(a)
	return Mat3Mul(m, f64.Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

// Mat3Scale returns m·S(sx, sy, sz).
func Mat3Scale(m f64.Mat3, sx, sy, sz float64) f64.Mat3 {
	out := m
	for r := 0; r < 3; r++ {
		out[3*r] *= sx
		out[3*r+1] *= sy
		out[3*r+2] *= sz
	}
	return out
}

// Mat3Translate returns m·T(x, y) for affine 2D transforms acting on
// (u, v, 1) vectors.
func Mat3Translate(m f64.Mat3, x, y float64) f64.Mat3 {
	out := m
	for r := 0; r < 3; r++ {
		out[3*r+2] = m[3*r]*x + m[3*r+1]*y + m[3*r+2]
	}
	return out
}

// Mat4Identity returns the 4×4 identity matrix.
func Mat4Identity() f64.Mat4 {
	return f64.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4IsIdentity reports whether m is the identity within a small
// tolerance.
func Mat4IsIdentity(m f64.Mat4) bool {
	id := Mat4Identity()
	for i := range m {
		if math.Abs(m[i]-id[i]) > 1e-9 {
			return false
		}
	}
	return true
}

// Mat4FromMat3 embeds a 3×3 rotation in a 4×4 transform.
func Mat4FromMat3(m f64.Mat3) f64.Mat4 {
	return f64.Mat4{
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns the product a·b.
func Mat4Mul(a, b f64.Mat4) f64.Mat4 {
	var out f64.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[4*r+c] = a[4*r]*b[c] + a[4*r+1]*b[4+c] + a[4*r+2]*b[8+c] + a[4*r+3]*b[12+c]
		}
	}
	return out
}

// Mat4MulVec4 applies m to v.
func Mat4MulVec4(m f64.Mat4, v f64.Vec4) f64.Vec4 {
	var out f64.Vec4
	for r := 0; r < 4; r++ {
		out[r] = m[4*r]*v[0] + m[4*r+1]*v[1] + m[4*r+2]*v[2] + m[4*r+3]*v[3]
	}
	return out
}

// Mat4MulDir applies the rotation and scale part of m to a direction,
// ignoring translation. The result is not renormalized.
func Mat4MulDir(m f64.Mat4, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// Mat4Translation returns the translation column of m.
func Mat4Translation(m f64.Mat4) r3.Vector {
	return r3.Vector{X: m[3], Y: m[7], Z: m[11]}
}

// Mat4Translate returns m·T(x, y, z).
func Mat4Translate(m f64.Mat4, x, y, z float64) f64.Mat4 {
	out := m
	for r := 0; r < 4; r++ {
		out[4*r+3] = m[4*r]*x + m[4*r+1]*y + m[4*r+2]*z + m[4*r+3]
	}
	return out
}

// Mat4Scale returns m·S(sx, sy, sz).
func Mat4Scale(m f64.Mat4, sx, sy, sz float64) f64.Mat4 {
	out := m
	for r := 0; r < 4; r++ {
		out[4*r] *= sx
		out[4*r+1] *= sy
		out[4*r+2] *= sz
	}
	return out
}
