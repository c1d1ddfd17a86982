package geom

import (
	"math"

	"github.com/chewxy/math32"
)

// Segment is a line segment between two points.
type Segment struct {
	A, B Vec3
}

// Translate returns s moved by offset.
func (s Segment) Translate(offset Vec3) Segment {
	return Segment{A: s.A.Add(offset), B: s.B.Add(offset)}
}

// TranslateSegments moves every segment by offset in place and returns segs.
func TranslateSegments(segs []Segment, offset Vec3) []Segment {
	for i := range segs {
		segs[i] = segs[i].Translate(offset)
	}
	return segs
}

// Box is an axis-aligned rectangular solid given by its center and full size.
type Box struct {
	Center Vec3
	Size   Vec3
}

// Min returns the lowest corner.
func (b Box) Min() Vec3 {
	return b.Center.Sub(b.Size.Scale(0.5))
}

// Max returns the highest corner.
func (b Box) Max() Vec3 {
	return b.Center.Add(b.Size.Scale(0.5))
}

// Contains reports whether p lies inside b, allowing eps of slack on every face.
func (b Box) Contains(p Vec3, eps float32) bool {
	lo, hi := b.Min(), b.Max()
	return p.X >= lo.X-eps && p.X <= hi.X+eps &&
		p.Y >= lo.Y-eps && p.Y <= hi.Y+eps &&
		p.Z >= lo.Z-eps && p.Z <= hi.Z+eps
}

// Mesh is an indexed triangle mesh. Normals and UVs, when present, are per vertex.
type Mesh struct {
	Positions []Vec3
	Normals   []Vec3
	UVs       []Vec2
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of the vertices. An empty mesh has a zero box.
func (m *Mesh) Bounds() Box {
	if len(m.Positions) == 0 {
		return Box{}
	}
	lo := Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi := lo.Scale(-1)
	for _, p := range m.Positions {
		lo = Vec3{math32.Min(lo.X, p.X), math32.Min(lo.Y, p.Y), math32.Min(lo.Z, p.Z)}
		hi = Vec3{math32.Max(hi.X, p.X), math32.Max(hi.Y, p.Y), math32.Max(hi.Z, p.Z)}
	}
	return Box{Center: lo.Add(hi).Scale(0.5), Size: hi.Sub(lo)}
}
