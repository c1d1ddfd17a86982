package grid

import (
	"errors"
	"fmt"

	"axis-viewer/internal/geom"

	"github.com/chewxy/math32"
)

var (
	// ErrInvalidSpacing is returned when the grid spacing is not a positive number.
	ErrInvalidSpacing = errors.New("grid spacing must be > 0")
	// ErrTooManyLines is returned when an extent needs more than MaxSteps coordinates.
	ErrTooManyLines = errors.New("grid has too many lines")
)

// MaxSteps caps the coordinates in one sweep across an extent.
const MaxSteps = 100000

// stepTolerance absorbs float32 rounding in extent/spacing so the terminal line
// of an evenly divided extent is never dropped.
const stepTolerance = 1e-4

// Generate returns the wireframe grid for a box of the given extents, centered at
// the origin, with lines every spacing units.
//
// Lines are emitted in three families: for every X step, lines along Z (one per
// Y step) and lines along Y (one per Z step); then for every Y step, lines along X
// (one per Z step). Each sweep starts at -extent/2 and keeps the terminal
// coordinate while it is <= extent/2. The far faces are not all covered; that
// matches the look of the reference view.
func Generate(width, height, depth, spacing float32) ([]geom.Segment, error) {
	if !(spacing > 0) {
		return nil, ErrInvalidSpacing
	}
	for _, extent := range [...]float32{width, height, depth} {
		if err := CheckExtent(extent, spacing); err != nil {
			return nil, err
		}
	}
	xs := sweep(width, spacing)
	ys := sweep(height, spacing)
	zs := sweep(depth, spacing)
	hw, hh, hd := width/2, height/2, depth/2

	segs := make([]geom.Segment, 0, Count(width, height, depth, spacing))
	for _, x := range xs {
		for _, y := range ys {
			segs = append(segs, geom.Segment{A: geom.V3(x, y, -hd), B: geom.V3(x, y, hd)})
		}
		for _, z := range zs {
			segs = append(segs, geom.Segment{A: geom.V3(x, -hh, z), B: geom.V3(x, hh, z)})
		}
	}
	for _, y := range ys {
		for _, z := range zs {
			segs = append(segs, geom.Segment{A: geom.V3(-hw, y, z), B: geom.V3(hw, y, z)})
		}
	}
	return segs, nil
}

// Count returns the number of segments Generate produces for the same arguments,
// nx*(ny+nz) + ny*nz where n = floor(extent/spacing)+1. Zero when Generate would
// fail.
func Count(width, height, depth, spacing float32) int {
	if !(spacing > 0) {
		return 0
	}
	for _, extent := range [...]float32{width, height, depth} {
		if CheckExtent(extent, spacing) != nil {
			return 0
		}
	}
	nx, ny, nz := steps(width, spacing), steps(height, spacing), steps(depth, spacing)
	return nx*(ny+nz) + ny*nz
}

// CheckExtent reports ErrTooManyLines when a sweep across extent would exceed
// MaxSteps coordinates, or when extent/spacing is not finite.
func CheckExtent(extent, spacing float32) error {
	if !(spacing > 0) {
		return ErrInvalidSpacing
	}
	if r := extent / spacing; math32.IsNaN(r) || r >= MaxSteps {
		return fmt.Errorf("%w: extent %v at spacing %v", ErrTooManyLines, extent, spacing)
	}
	return nil
}

// steps is the number of coordinates in one inclusive sweep across extent.
// extent must have passed CheckExtent.
func steps(extent, spacing float32) int {
	if extent < 0 {
		return 0
	}
	return int(math32.Floor(extent/spacing+stepTolerance)) + 1
}

// sweep returns the coordinates -extent/2, -extent/2+spacing, ... up to and including extent/2.
func sweep(extent, spacing float32) []float32 {
	n := steps(extent, spacing)
	out := make([]float32, n)
	start, end := -extent/2, extent/2
	for i := range out {
		v := start + float32(i)*spacing
		if v > end {
			// Only reachable through stepTolerance; snap to the boundary.
			v = end
		}
		out[i] = v
	}
	return out
}
