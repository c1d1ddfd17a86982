package geom

import "github.com/chewxy/math32"

// Vec2 is a 2D vector (texture coordinates).
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D vector in world or local space. Y is up.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the Euclidean length.
func (v Vec3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// DistSq returns the squared distance between v and o.
func (v Vec3) DistSq(o Vec3) float32 {
	d := v.Sub(o)
	return d.Dot(d)
}

// Dist returns the distance between v and o.
func (v Vec3) Dist(o Vec3) float32 {
	return math32.Sqrt(v.DistSq(o))
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// RotateAxis rotates v by angle radians around the unit vector axis (Rodrigues).
func (v Vec3) RotateAxis(axis Vec3, angle float32) Vec3 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	return v.Scale(c).
		Add(axis.Cross(v).Scale(s)).
		Add(axis.Scale(axis.Dot(v) * (1 - c)))
}

// NearlyEqual reports whether every component of v and o differs by at most eps.
func (v Vec3) NearlyEqual(o Vec3, eps float32) bool {
	return math32.Abs(v.X-o.X) <= eps && math32.Abs(v.Y-o.Y) <= eps && math32.Abs(v.Z-o.Z) <= eps
}

// Array returns v as [x, y, z], the layout used by the render and prefs code.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
