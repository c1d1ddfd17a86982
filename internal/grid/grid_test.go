package grid

import (
	"errors"
	"math"
	"testing"

	"axis-viewer/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ReferenceBox(t *testing.T) {
	t.Parallel()

	segs, err := Generate(100, 20, 20, 10)
	require.NoError(t, err)

	// 11 x-steps * (3 y-steps + 3 z-steps) + 3 y-steps * 3 z-steps
	assert.Len(t, segs, 11*(3+3)+3*3)
	assert.Equal(t, Count(100, 20, 20, 10), len(segs))

	// First family: x=-50, y=-10, along Z.
	assert.Equal(t, geom.Segment{A: geom.V3(-50, -10, -10), B: geom.V3(-50, -10, 10)}, segs[0])
	// Second family starts after the three Y lines of the first x step.
	assert.Equal(t, geom.Segment{A: geom.V3(-50, -10, -10), B: geom.V3(-50, 10, -10)}, segs[3])
	// Last segment: the X-spanning line at the max y/z corner.
	assert.Equal(t, geom.Segment{A: geom.V3(-50, 10, 10), B: geom.V3(50, 10, 10)}, segs[len(segs)-1])
}

func TestGenerate_PartialCell(t *testing.T) {
	t.Parallel()

	// 25/10 does not divide evenly: x steps at -12.5, -2.5, 7.5; 17.5 is past the face.
	segs, err := Generate(25, 10, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 3*(2+2)+2*2, len(segs))

	var xs []float32
	for _, s := range segs[:3*(2+2)] {
		if len(xs) == 0 || xs[len(xs)-1] != s.A.X {
			xs = append(xs, s.A.X)
		}
	}
	assert.Equal(t, []float32{-12.5, -2.5, 7.5}, xs)
}

func TestGenerate_EndpointsInsideBox(t *testing.T) {
	t.Parallel()

	tests := []struct {
		w, h, d, spacing float32
	}{
		{100, 20, 20, 10},
		{100, 20, 20, 3},
		{7.5, 2.25, 11, 0.7},
		{1, 1, 1, 5},
		{33.3, 20, 20, 0.1},
		{0, 0, 0, 1},
	}
	for _, tt := range tests {
		segs, err := Generate(tt.w, tt.h, tt.d, tt.spacing)
		require.NoError(t, err)
		assert.Equal(t, Count(tt.w, tt.h, tt.d, tt.spacing), len(segs), "count for %+v", tt)

		box := geom.Box{Size: geom.V3(tt.w, tt.h, tt.d)}
		for _, s := range segs {
			require.True(t, box.Contains(s.A, 1e-4), "%v outside %+v", s.A, tt)
			require.True(t, box.Contains(s.B, 1e-4), "%v outside %+v", s.B, tt)
		}
	}
}

func TestGenerate_ClosedFormCount(t *testing.T) {
	t.Parallel()

	n := func(e, s float64) int { return int(math.Floor(e/s)) + 1 }
	for _, tt := range []struct{ w, h, d, s float64 }{
		{100, 20, 20, 10},
		{100, 20, 20, 7},
		{12, 8, 4, 2},
		{5, 5, 5, 10},
	} {
		nx, ny, nz := n(tt.w, tt.s), n(tt.h, tt.s), n(tt.d, tt.s)
		want := nx*(ny+nz) + ny*nz
		got, err := Generate(float32(tt.w), float32(tt.h), float32(tt.d), float32(tt.s))
		require.NoError(t, err)
		assert.Len(t, got, want, "%+v", tt)
	}
}

func TestGenerate_InvalidSpacing(t *testing.T) {
	t.Parallel()

	for _, s := range []float32{0, -1, float32(math.NaN())} {
		_, err := Generate(10, 10, 10, s)
		assert.True(t, errors.Is(err, ErrInvalidSpacing), "spacing %v", s)
		assert.Zero(t, Count(10, 10, 10, s))
	}
}

func TestGenerate_TooManyLines(t *testing.T) {
	t.Parallel()

	for _, width := range []float32{1e12, 1e30, float32(math.Inf(1)), float32(math.NaN()), MaxSteps * 10} {
		segs, err := Generate(width, 20, 20, 10)
		assert.ErrorIs(t, err, ErrTooManyLines, "width %v", width)
		assert.Nil(t, segs)
		assert.Zero(t, Count(width, 20, 20, 10), "width %v", width)
	}

	// A tiny spacing overflows the short extents too.
	_, err := Generate(100, 20, 20, 1e-6)
	assert.ErrorIs(t, err, ErrTooManyLines)
}

func TestCheckExtent(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckExtent(MaxSteps*10-10, 10))
	assert.ErrorIs(t, CheckExtent(MaxSteps*10, 10), ErrTooManyLines)
	assert.ErrorIs(t, CheckExtent(100, 0), ErrInvalidSpacing)
	// Negative extents produce no lines rather than an error.
	assert.NoError(t, CheckExtent(-5, 10))
}
