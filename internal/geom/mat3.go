package geom

import "github.com/chewxy/math32"

// Mat3 is a 3x3 rotation matrix stored row-major: M[row][col].
type Mat3 [3][3]float32

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// RotationX returns a rotation of angle radians about the X axis.
func RotationX(angle float32) Mat3 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	return Mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

// RotationY returns a rotation of angle radians about the Y axis.
func RotationY(angle float32) Mat3 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	return Mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

// RotationZ returns a rotation of angle radians about the Z axis.
func RotationZ(angle float32) Mat3 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	return Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// Mul returns m*o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

// Apply returns m*v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Col returns column j as a vector.
func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[0][j], m[1][j], m[2][j]}
}

// FromBasis builds the matrix whose columns are x, y and z.
func FromBasis(x, y, z Vec3) Mat3 {
	return Mat3{
		{x.X, y.X, z.X},
		{x.Y, y.Y, z.Y},
		{x.Z, y.Z, z.Z},
	}
}
