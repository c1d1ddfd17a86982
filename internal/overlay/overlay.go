package overlay

import (
	"errors"
	"fmt"

	"axis-viewer/internal/curve"
	"axis-viewer/internal/geom"
)

var (
	// ErrInvalidDescriptor is returned for descriptors with a non-positive depth.
	ErrInvalidDescriptor = errors.New("invalid overlay descriptor")
	// ErrUnsupportedKind is returned for overlay kinds the builder does not know.
	ErrUnsupportedKind = errors.New("unsupported overlay kind")
)

// Kind is the marker style of an overlay.
type Kind string

const (
	CutPlane  Kind = "cut_plane"
	CurveTube Kind = "curve_tube"
)

// Cross-section and tube parameters shared by every overlay.
const (
	// CrossSection is the side of the square cut plane, equal to the reference box height and depth.
	CrossSection = 20
	// TubeCount is the number of parallel tubes in a curve marker, one per unit along Z.
	TubeCount = 20
	// TubularSegments and RadialSegments set the resolution of each tube.
	TubularSegments = 100
	RadialSegments  = 100
	// CurveBulge is how far the middle control point sits past the marker position on X.
	CurveBulge = 5
)

// Descriptor is one user-placed marker along the axis.
type Descriptor struct {
	ID       int        `yaml:"id" json:"id"`
	Position float32    `yaml:"position" json:"position"`
	Kind     Kind       `yaml:"kind" json:"kind"`
	Depth    float32    `yaml:"depth" json:"depth"`
	Color    geom.Color `yaml:"color" json:"color"`
}

// Geometry is the renderable output for one descriptor: Box for a cut plane,
// Tubes for a curve marker.
type Geometry struct {
	ID    int
	Kind  Kind
	Color geom.Color
	Box   *geom.Box
	Tubes []geom.Mesh
}

// Validate checks the descriptor without building anything.
func (d Descriptor) Validate() error {
	if !(d.Depth > 0) {
		return fmt.Errorf("overlay %d: depth %v: %w", d.ID, d.Depth, ErrInvalidDescriptor)
	}
	switch d.Kind {
	case CutPlane, CurveTube:
		return nil
	}
	return fmt.Errorf("overlay %d: kind %q: %w", d.ID, d.Kind, ErrUnsupportedKind)
}

// Build turns d into geometry in the reference box frame.
func Build(d Descriptor) (Geometry, error) {
	if err := d.Validate(); err != nil {
		return Geometry{}, err
	}
	g := Geometry{ID: d.ID, Kind: d.Kind, Color: d.Color}
	switch d.Kind {
	case CutPlane:
		box := CutPlaneBox(d.Position, d.Depth)
		g.Box = &box
	case CurveTube:
		g.Tubes = CurveTubes(d.Position, d.Depth)
	}
	return g, nil
}

// CutPlaneBox returns the thin solid of thickness depth centered on the axis at position.
func CutPlaneBox(position, depth float32) geom.Box {
	const half = CrossSection / 2
	return geom.Box{
		Center: geom.V3(position, half, half),
		Size:   geom.V3(depth, CrossSection, CrossSection),
	}
}

// CurveTubes returns TubeCount tubes of diameter depth, the i-th following the
// curve through (position,0,i), (position+5,10,i) and (position,20,i).
func CurveTubes(position, depth float32) []geom.Mesh {
	tubes := make([]geom.Mesh, TubeCount)
	for i := range tubes {
		z := float32(i)
		c := curve.NewCatmullRom(
			geom.V3(position, 0, z),
			geom.V3(position+CurveBulge, CrossSection/2, z),
			geom.V3(position, CrossSection, z),
		)
		tubes[i] = curve.Tube(c, TubularSegments, depth/2, RadialSegments, false)
	}
	return tubes
}

// Append returns list with a new descriptor whose ID is the current list length,
// or the next free ID after it when a replaced list already uses that value.
func Append(list []Descriptor, position float32, kind Kind, depth float32, color geom.Color) []Descriptor {
	return append(list, Descriptor{
		ID:       nextID(list),
		Position: position,
		Kind:     kind,
		Depth:    depth,
		Color:    color,
	})
}

func nextID(list []Descriptor) int {
	used := make(map[int]bool, len(list))
	for _, d := range list {
		used[d.ID] = true
	}
	id := len(list)
	for used[id] {
		id++
	}
	return id
}

// DuplicateIDs returns the IDs that appear more than once in list.
func DuplicateIDs(list []Descriptor) []int {
	seen := make(map[int]int, len(list))
	var dups []int
	for _, d := range list {
		seen[d.ID]++
		if seen[d.ID] == 2 {
			dups = append(dups, d.ID)
		}
	}
	return dups
}
