package camera

import (
	"fmt"

	"axis-viewer/internal/geom"

	"github.com/chewxy/math32"
)

// Order is the axis order in which Euler rotations are applied, e.g. "XYZ"
// means the rotation matrix is Rx*Ry*Rz.
type Order string

const (
	XYZ Order = "XYZ"
	YXZ Order = "YXZ"
	ZXY Order = "ZXY"
	ZYX Order = "ZYX"
	YZX Order = "YZX"
	XZY Order = "XZY"
)

// Orders lists every supported rotation order.
var Orders = []Order{XYZ, YXZ, ZXY, ZYX, YZX, XZY}

// Valid reports whether o is one of Orders.
func (o Order) Valid() bool {
	for _, v := range Orders {
		if o == v {
			return true
		}
	}
	return false
}

// Euler is an orientation as three angles in radians plus their application order.
type Euler struct {
	X, Y, Z float32
	Order   Order
}

// gimbalLimit is where the middle angle is treated as +-90 degrees.
const gimbalLimit = 0.9999999

// Matrix returns the rotation matrix of e. An unknown order is applied as XYZ.
func (e Euler) Matrix() geom.Mat3 {
	order := e.Order
	if !order.Valid() {
		order = XYZ
	}
	m := geom.Identity3()
	for _, axis := range order {
		switch axis {
		case 'X':
			m = m.Mul(geom.RotationX(e.X))
		case 'Y':
			m = m.Mul(geom.RotationY(e.Y))
		case 'Z':
			m = m.Mul(geom.RotationZ(e.Z))
		}
	}
	return m
}

// EulerFromMatrix decomposes the pure rotation m into angles for the given order.
// At gimbal lock the last angle is set to zero.
func EulerFromMatrix(m geom.Mat3, order Order) (Euler, error) {
	if !order.Valid() {
		return Euler{}, fmt.Errorf("invalid euler order %q", order)
	}
	m11, m12, m13 := m[0][0], m[0][1], m[0][2]
	m21, m22, m23 := m[1][0], m[1][1], m[1][2]
	m31, m32, m33 := m[2][0], m[2][1], m[2][2]

	e := Euler{Order: order}
	switch order {
	case XYZ:
		e.Y = math32.Asin(clamp(m13))
		if math32.Abs(m13) < gimbalLimit {
			e.X = math32.Atan2(-m23, m33)
			e.Z = math32.Atan2(-m12, m11)
		} else {
			e.X = math32.Atan2(m32, m22)
		}
	case YXZ:
		e.X = math32.Asin(-clamp(m23))
		if math32.Abs(m23) < gimbalLimit {
			e.Y = math32.Atan2(m13, m33)
			e.Z = math32.Atan2(m21, m22)
		} else {
			e.Y = math32.Atan2(-m31, m11)
		}
	case ZXY:
		e.X = math32.Asin(clamp(m32))
		if math32.Abs(m32) < gimbalLimit {
			e.Y = math32.Atan2(-m31, m33)
			e.Z = math32.Atan2(-m12, m22)
		} else {
			e.Z = math32.Atan2(m21, m11)
		}
	case ZYX:
		e.Y = math32.Asin(-clamp(m31))
		if math32.Abs(m31) < gimbalLimit {
			e.X = math32.Atan2(m32, m33)
			e.Z = math32.Atan2(m21, m11)
		} else {
			e.Z = math32.Atan2(-m12, m22)
		}
	case YZX:
		e.Z = math32.Asin(clamp(m21))
		if math32.Abs(m21) < gimbalLimit {
			e.X = math32.Atan2(-m23, m22)
			e.Y = math32.Atan2(-m31, m11)
		} else {
			e.Y = math32.Atan2(m13, m33)
		}
	case XZY:
		e.Z = math32.Asin(-clamp(m12))
		if math32.Abs(m12) < gimbalLimit {
			e.X = math32.Atan2(m32, m22)
			e.Y = math32.Atan2(m13, m11)
		} else {
			e.X = math32.Atan2(-m23, m33)
		}
	}
	return e, nil
}

// LookAtMatrix returns the orientation of a camera at eye facing target, whose
// local -Z axis points at the target and whose local Y is as close to up as possible.
func LookAtMatrix(eye, target, up geom.Vec3) geom.Mat3 {
	z := eye.Sub(target)
	if z.Len() == 0 {
		z.Z = 1
	}
	z = z.Normalize()
	x := up.Cross(z)
	if x.Len() == 0 {
		// up and z are parallel; nudge z off the up axis.
		if math32.Abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)
	return geom.FromBasis(x, y, z)
}

func clamp(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
