package scene

import (
	"axis-viewer/internal/axis"
	"axis-viewer/internal/geom"
	"axis-viewer/internal/overlay"
)

// Reference box cross-section; the length along X comes from AxisConfig.
const (
	BoxHeight = overlay.CrossSection
	BoxDepth  = overlay.CrossSection
)

// AxisConfig is the displayed range of the measurement axis.
type AxisConfig struct {
	Start  float64 `yaml:"start" json:"start"`
	Length float64 `yaml:"length" json:"length"`
}

// DefaultAxis is the range shown before the user submits anything.
func DefaultAxis() AxisConfig {
	return AxisConfig{Start: 0, Length: 100}
}

// ReferenceBox returns the box spanning [0, Length] x [0, 20] x [0, 20].
func (c AxisConfig) ReferenceBox() geom.Box {
	l := float32(c.Length)
	return geom.Box{
		Center: geom.V3(l/2, BoxHeight/2, BoxDepth/2),
		Size:   geom.V3(l, BoxHeight, BoxDepth),
	}
}

// OverlayFailure records one descriptor that could not be built.
type OverlayFailure struct {
	ID  int
	Err error
}

// Frame is the complete, renderable scene for one configuration. All geometry is
// in the world frame of the reference box.
type Frame struct {
	Axis     AxisConfig
	Box      geom.Box
	Grid     []geom.Segment
	Overlays []overlay.Geometry
	Labels   []axis.Label
	Failures []OverlayFailure
}

// MeshCount returns the number of tube meshes across all overlays.
func (f *Frame) MeshCount() int {
	n := 0
	for _, o := range f.Overlays {
		n += len(o.Tubes)
	}
	return n
}
