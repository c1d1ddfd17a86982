package curve

import (
	"math"

	"axis-viewer/internal/geom"

	"github.com/chewxy/math32"
)

// frameEpsilon is the smallest tangent change that still rotates the frame.
const frameEpsilon = 1e-6

// Frames holds one orthonormal frame per sample along a curve.
type Frames struct {
	Tangents  []geom.Vec3
	Normals   []geom.Vec3
	Binormals []geom.Vec3
}

// FrenetFrames computes segments+1 rotation-minimising frames along c. The first
// normal is perpendicular to the tangent's smallest component; each later frame is
// the previous one rotated by the change in tangent. Closed curves spread the
// leftover twist evenly so the last frame meets the first.
func FrenetFrames(c Curve, segments int, closed bool) Frames {
	n := segments + 1
	f := Frames{
		Tangents:  make([]geom.Vec3, n),
		Normals:   make([]geom.Vec3, n),
		Binormals: make([]geom.Vec3, n),
	}
	for i := 0; i < n; i++ {
		f.Tangents[i] = c.TangentAt(float32(i) / float32(segments)).Normalize()
	}

	t0 := f.Tangents[0]
	tx, ty, tz := math32.Abs(t0.X), math32.Abs(t0.Y), math32.Abs(t0.Z)
	var normal geom.Vec3
	smallest := float32(math.MaxFloat32)
	if tx <= smallest {
		smallest = tx
		normal = geom.V3(1, 0, 0)
	}
	if ty <= smallest {
		smallest = ty
		normal = geom.V3(0, 1, 0)
	}
	if tz <= smallest {
		normal = geom.V3(0, 0, 1)
	}
	vec := t0.Cross(normal).Normalize()
	f.Normals[0] = t0.Cross(vec)
	f.Binormals[0] = t0.Cross(f.Normals[0])

	for i := 1; i < n; i++ {
		f.Normals[i] = f.Normals[i-1]
		axis := f.Tangents[i-1].Cross(f.Tangents[i])
		if axis.Len() > frameEpsilon {
			axis = axis.Normalize()
			theta := math32.Acos(clamp(f.Tangents[i-1].Dot(f.Tangents[i]), -1, 1))
			f.Normals[i] = f.Normals[i].RotateAxis(axis, theta)
		}
		f.Binormals[i] = f.Tangents[i].Cross(f.Normals[i])
	}

	if closed && segments > 0 {
		theta := math32.Acos(clamp(f.Normals[0].Dot(f.Normals[segments]), -1, 1)) / float32(segments)
		if f.Tangents[0].Dot(f.Normals[0].Cross(f.Normals[segments])) > 0 {
			theta = -theta
		}
		for i := 1; i < n; i++ {
			f.Normals[i] = f.Normals[i].RotateAxis(f.Tangents[i], theta*float32(i))
			f.Binormals[i] = f.Tangents[i].Cross(f.Normals[i])
		}
	}
	return f
}

// Tube sweeps a circle of the given radius along c. The result has
// (tubular+1)*(radial+1) vertices: each ring repeats its first vertex so the UV
// seam is continuous. Closed tubes reuse the first frame for the last ring.
func Tube(c Curve, tubular int, radius float32, radial int, closed bool) geom.Mesh {
	frames := FrenetFrames(c, tubular, closed)
	ring := radial + 1
	m := geom.Mesh{
		Positions: make([]geom.Vec3, 0, (tubular+1)*ring),
		Normals:   make([]geom.Vec3, 0, (tubular+1)*ring),
		UVs:       make([]geom.Vec2, 0, (tubular+1)*ring),
		Indices:   make([]uint32, 0, 6*tubular*radial),
	}

	addRing := func(i int) {
		p := c.PointAt(float32(i) / float32(tubular))
		nrm, bin := frames.Normals[i], frames.Binormals[i]
		for j := 0; j <= radial; j++ {
			v := float32(j) / float32(radial) * 2 * math32.Pi
			sin, cos := math32.Sin(v), -math32.Cos(v)
			dir := nrm.Scale(cos).Add(bin.Scale(sin)).Normalize()
			m.Normals = append(m.Normals, dir)
			m.Positions = append(m.Positions, p.Add(dir.Scale(radius)))
		}
	}
	for i := 0; i < tubular; i++ {
		addRing(i)
	}
	if closed {
		addRing(0)
	} else {
		addRing(tubular)
	}

	for i := 0; i <= tubular; i++ {
		for j := 0; j <= radial; j++ {
			m.UVs = append(m.UVs, geom.Vec2{X: float32(i) / float32(tubular), Y: float32(j) / float32(radial)})
		}
	}

	for j := 1; j <= tubular; j++ {
		for i := 1; i <= radial; i++ {
			a := uint32(ring*(j-1) + (i - 1))
			b := uint32(ring*j + (i - 1))
			cc := uint32(ring*j + i)
			d := uint32(ring*(j-1) + i)
			m.Indices = append(m.Indices, a, b, d, b, cc, d)
		}
	}
	return m
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
