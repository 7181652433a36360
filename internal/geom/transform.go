package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// RigidityTolerance is the tolerance on the rotation determinant when
// checking that a transform is a proper rigid transform.
const RigidityTolerance = 0.01

// Transform is a 4x4 rigid transform in row-major order:
// [m00,m01,m02,m03, m10,m11,m12,m13, m20,m21,m22,m23, m30,m31,m32,m33].
// It maps sensor-local coordinates into the global frame.
type Transform [16]float64

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a pure translation by (x, y, z).
func Translate(x, y, z float64) Transform {
	return Transform{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// RotZ returns a rotation by rad radians about the +Z axis.
func RotZ(rad float64) Transform {
	c, s := math.Cos(rad), math.Sin(rad)
	return Transform{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotX returns a rotation by rad radians about the +X axis.
func RotX(rad float64) Transform {
	c, s := math.Cos(rad), math.Sin(rad)
	return Transform{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// Mul composes two transforms such that
// Mul(a, b).Apply(v) == a.Apply(b.Apply(v)).
func Mul(a, b Transform) Transform {
	var out Transform
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[row*4+k] * b[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// Apply transforms the point v.
func (t Transform) Apply(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: t[0]*v.X + t[1]*v.Y + t[2]*v.Z + t[3],
		Y: t[4]*v.X + t[5]*v.Y + t[6]*v.Z + t[7],
		Z: t[8]*v.X + t[9]*v.Y + t[10]*v.Z + t[11],
	}
}

// ApplyPlanar transforms a point in the local z=0 plane.
func (t Transform) ApplyPlanar(l r2.Vec) r3.Vec {
	return t.Apply(r3.Vec{X: l.X, Y: l.Y})
}

// Inverse returns the inverse of a rigid transform: transposed rotation
// and back-rotated translation. Results are undefined for non-rigid input.
func (t Transform) Inverse() Transform {
	inv := Transform{
		t[0], t[4], t[8], 0,
		t[1], t[5], t[9], 0,
		t[2], t[6], t[10], 0,
		0, 0, 0, 1,
	}
	inv[3] = -(t[0]*t[3] + t[4]*t[7] + t[8]*t[11])
	inv[7] = -(t[1]*t[3] + t[5]*t[7] + t[9]*t[11])
	inv[11] = -(t[2]*t[3] + t[6]*t[7] + t[10]*t[11])
	return inv
}

// IsRigid reports whether t is a proper rigid transform:
// orthonormal rotation submatrix (det close to 1) and last row [0 0 0 1].
func (t Transform) IsRigid() bool {
	r00, r01, r02 := t[0], t[1], t[2]
	r10, r11, r12 := t[4], t[5], t[6]
	r20, r21, r22 := t[8], t[9], t[10]

	det := r00*(r11*r22-r12*r21) - r01*(r10*r22-r12*r20) + r02*(r10*r21-r11*r20)
	if math.Abs(det-1.0) > RigidityTolerance {
		return false
	}

	if t[12] != 0 || t[13] != 0 || t[14] != 0 || math.Abs(t[15]-1.0) > 0.001 {
		return false
	}

	return true
}
