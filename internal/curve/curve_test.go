package curve

import (
	"testing"

	"axis-viewer/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markerCurve(x, z float32) *CatmullRom {
	return NewCatmullRom(geom.V3(x, 0, z), geom.V3(x+5, 10, z), geom.V3(x, 20, z))
}

func assertVecNear(t *testing.T, want, got geom.Vec3, eps float32) {
	t.Helper()
	assert.True(t, want.NearlyEqual(got, eps), "want %v, got %v", want, got)
}

func TestCatmullRom_PassesThroughControlPoints(t *testing.T) {
	t.Parallel()

	for _, typ := range []Type{Centripetal, Chordal, Uniform} {
		c := markerCurve(50, 3)
		c.Type = typ
		assertVecNear(t, geom.V3(50, 0, 3), c.Point(0), 1e-4)
		assertVecNear(t, geom.V3(55, 10, 3), c.Point(0.5), 1e-4)
		assertVecNear(t, geom.V3(50, 20, 3), c.Point(1), 1e-4)
	}
}

func TestCatmullRom_StaysInPlane(t *testing.T) {
	t.Parallel()

	c := markerCurve(80, 7)
	for i := 0; i <= 50; i++ {
		p := c.Point(float32(i) / 50)
		assert.InDelta(t, 7, p.Z, 1e-5)
		assert.GreaterOrEqual(t, p.X, float32(80)-1e-3)
	}
}

func TestCatmullRom_Degenerate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, geom.Vec3{}, NewCatmullRom().Point(0.3))
	assert.Equal(t, geom.V3(1, 2, 3), NewCatmullRom(geom.V3(1, 2, 3)).Point(0.7))

	// Coincident points must not produce NaNs.
	c := NewCatmullRom(geom.V3(1, 1, 1), geom.V3(1, 1, 1), geom.V3(1, 1, 1))
	assertVecNear(t, geom.V3(1, 1, 1), c.PointAt(0.5), 1e-6)
}

func TestCatmullRom_ArcLength(t *testing.T) {
	t.Parallel()

	// A straight line: arc length equals chord length and u maps linearly.
	c := NewCatmullRom(geom.V3(0, 0, 0), geom.V3(5, 0, 0), geom.V3(10, 0, 0))
	assert.InDelta(t, 10, c.Length(), 1e-3)
	assert.Len(t, c.Lengths(), DefaultArcLengthDivisions+1)
	assertVecNear(t, geom.V3(2.5, 0, 0), c.PointAt(0.25), 1e-2)
	assert.Equal(t, float32(0), c.UtoT(0))
	assert.Equal(t, float32(1), c.UtoT(1))

	m := markerCurve(0, 0)
	// The bulge towards +X makes the curve longer than the straight 20 unit chord.
	assert.Greater(t, m.Length(), float32(20))
	prev := float32(-1)
	for i := 0; i <= 20; i++ {
		tt := m.UtoT(float32(i) / 20)
		assert.Greater(t, tt, prev)
		prev = tt
	}

	m.Points[1] = geom.V3(10, 10, 0)
	before := m.Length()
	m.Invalidate()
	assert.Greater(t, m.Length(), before)
}

func TestCatmullRom_Closed(t *testing.T) {
	t.Parallel()

	c := NewCatmullRom(geom.V3(0, 0, 0), geom.V3(10, 0, 0), geom.V3(10, 10, 0), geom.V3(0, 10, 0))
	c.Closed = true
	assertVecNear(t, c.Point(0), c.Point(1), 1e-4)
	assertVecNear(t, geom.V3(10, 0, 0), c.Point(0.25), 1e-4)
}

func TestFrenetFrames_Orthonormal(t *testing.T) {
	t.Parallel()

	f := FrenetFrames(markerCurve(10, 0), 64, false)
	require.Len(t, f.Tangents, 65)
	for i := range f.Tangents {
		tg, n, b := f.Tangents[i], f.Normals[i], f.Binormals[i]
		assert.InDelta(t, 1, tg.Len(), 1e-4)
		assert.InDelta(t, 1, n.Len(), 1e-3)
		assert.InDelta(t, 1, b.Len(), 1e-3)
		assert.InDelta(t, 0, tg.Dot(n), 1e-3)
		assert.InDelta(t, 0, tg.Dot(b), 1e-3)
		assert.InDelta(t, 0, n.Dot(b), 1e-3)
	}
}

func TestTube_Counts(t *testing.T) {
	t.Parallel()

	m := Tube(markerCurve(80, 0), 100, 1, 100, false)
	assert.Equal(t, 101*101, m.VertexCount())
	assert.Len(t, m.Normals, 101*101)
	assert.Len(t, m.UVs, 101*101)
	assert.Equal(t, 2*100*100, m.TriangleCount())

	for _, idx := range m.Indices {
		require.Less(t, int(idx), m.VertexCount())
	}
	assert.Equal(t, geom.Vec2{X: 1, Y: 1}, m.UVs[len(m.UVs)-1])
}

func TestTube_Radius(t *testing.T) {
	t.Parallel()

	c := markerCurve(30, 4)
	const tubular, radial = 16, 12
	m := Tube(c, tubular, 0.75, radial, false)
	for i := 0; i <= tubular; i++ {
		center := c.PointAt(float32(i) / tubular)
		for j := 0; j <= radial; j++ {
			k := i*(radial+1) + j
			assert.InDelta(t, 0.75, m.Positions[k].Dist(center), 1e-3)
			assert.InDelta(t, 1, m.Normals[k].Len(), 1e-4)
		}
	}
	// Ring seam: the first and last vertex of every ring coincide.
	assertVecNear(t, m.Positions[0], m.Positions[radial], 1e-4)
}
