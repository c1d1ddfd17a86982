package overlay

import (
	"errors"
	"math"
	"testing"

	"axis-viewer/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_CutPlane(t *testing.T) {
	t.Parallel()

	g, err := Build(Descriptor{ID: 3, Position: 80, Kind: CutPlane, Depth: 2, Color: geom.Red})
	require.NoError(t, err)
	require.NotNil(t, g.Box)
	assert.Empty(t, g.Tubes)
	assert.Equal(t, 3, g.ID)
	assert.Equal(t, geom.Red, g.Color)
	assert.Equal(t, geom.V3(80, 10, 10), g.Box.Center)
	assert.Equal(t, geom.V3(2, 20, 20), g.Box.Size)
}

func TestBuild_CurveTube(t *testing.T) {
	t.Parallel()

	g, err := Build(Descriptor{Position: 50, Kind: CurveTube, Depth: 1, Color: geom.Blue})
	require.NoError(t, err)
	assert.Nil(t, g.Box)
	require.Len(t, g.Tubes, TubeCount)

	for i, tube := range g.Tubes {
		assert.Equal(t, (TubularSegments+1)*(RadialSegments+1), tube.VertexCount())
		b := tube.Bounds()
		// Each tube sits at z=i with radius 0.5.
		assert.InDelta(t, float64(i), b.Center.Z, 1e-3)
		assert.InDelta(t, 1, b.Size.Z, 1e-2)
		// It spans y 0..20 plus the radius at each end.
		assert.InDelta(t, 0, b.Min().Y, 0.51)
		assert.InDelta(t, 20, b.Max().Y, 0.51)
		assert.GreaterOrEqual(t, b.Max().X, float32(54.5))
	}
}

func TestBuild_Depth(t *testing.T) {
	t.Parallel()

	for _, depth := range []float32{0, -1, float32(math.NaN())} {
		for _, kind := range []Kind{CutPlane, CurveTube} {
			_, err := Build(Descriptor{ID: 1, Kind: kind, Depth: depth})
			assert.True(t, errors.Is(err, ErrInvalidDescriptor), "depth %v kind %s: %v", depth, kind, err)
		}
	}

	g, err := Build(Descriptor{Kind: CutPlane, Depth: 0.01})
	require.NoError(t, err)
	assert.Equal(t, float32(0.01), g.Box.Size.X)
}

func TestBuild_UnsupportedKind(t *testing.T) {
	t.Parallel()

	for _, kind := range []Kind{"", "sphere", "CUT_PLANE"} {
		_, err := Build(Descriptor{Kind: kind, Depth: 1})
		assert.True(t, errors.Is(err, ErrUnsupportedKind), "kind %q", kind)
		assert.False(t, errors.Is(err, ErrInvalidDescriptor))
	}
}

func TestAppend(t *testing.T) {
	t.Parallel()

	var list []Descriptor
	list = Append(list, 10, CutPlane, 1, geom.Red)
	list = Append(list, 20, CurveTube, 2, geom.Green)
	require.Len(t, list, 2)
	assert.Equal(t, 0, list[0].ID)
	assert.Equal(t, 1, list[1].ID)
	assert.Equal(t, CurveTube, list[1].Kind)

	// A replaced list whose length collides with an existing ID skips ahead.
	list = []Descriptor{{ID: 1}}
	list = Append(list, 0, CutPlane, 1, geom.Red)
	assert.Equal(t, 2, list[1].ID)
	assert.Empty(t, DuplicateIDs(list))
	assert.Equal(t, []int{4}, DuplicateIDs([]Descriptor{{ID: 4}, {ID: 5}, {ID: 4}, {ID: 4}}))
}
