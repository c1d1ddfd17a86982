package scene

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"axis-viewer/internal/axis"
	"axis-viewer/internal/camera"
	"axis-viewer/internal/geom"
	"axis-viewer/internal/grid"
	"axis-viewer/internal/overlay"
)

var (
	// ErrInvalidAxis is returned for a non-positive or non-finite axis length, a
	// length whose grid would exceed grid.MaxSteps lines per sweep, or a non-finite start.
	ErrInvalidAxis = errors.New("invalid axis config")
	// ErrAlreadyInitialised is returned when Init is called a second time.
	ErrAlreadyInitialised = errors.New("scene already initialised")
)

const (
	// DefaultDivisions is the number of tick intervals along the axis.
	DefaultDivisions = 10
	// DefaultGridSpacing is the distance between grid lines on the reference box.
	DefaultGridSpacing = 10
)

// Surface displays frames and owns the live viewpoint.
type Surface interface {
	Present(f *Frame)
	SetViewpoint(s camera.State)
	Viewpoint() camera.State
}

// Logger receives one line per notable event.
type Logger interface {
	Log(line string)
}

type nopLogger struct{}

func (nopLogger) Log(string) {}

// Assembler owns the axis config and overlay list and rebuilds the whole Frame
// whenever either changes. It is not safe for concurrent use; drive it from the
// render loop.
type Assembler struct {
	surface   Surface
	cameras   *camera.Store
	log       Logger
	divisions int
	spacing   float32

	axis     AxisConfig
	overlays []overlay.Descriptor
	frame    *Frame

	initialised bool
}

// Option configures an Assembler.
type Option func(*Assembler)

func WithLogger(l Logger) Option {
	return func(a *Assembler) { a.log = l }
}

func WithDivisions(n int) Option {
	return func(a *Assembler) { a.divisions = n }
}

func WithGridSpacing(s float32) Option {
	return func(a *Assembler) { a.spacing = s }
}

// WithAxis sets the initial axis config. It is validated by Init.
func WithAxis(c AxisConfig) Option {
	return func(a *Assembler) { a.axis = c }
}

// WithOverlays sets the initial overlay list.
func WithOverlays(list []overlay.Descriptor) Option {
	return func(a *Assembler) { a.overlays = cloneDescriptors(list) }
}

// New returns an assembler that presents to surface and persists the camera in
// cameras. Either may be nil: frames are then only kept, or camera state is not
// persisted.
func New(surface Surface, cameras *camera.Store, opts ...Option) *Assembler {
	a := &Assembler{
		surface:   surface,
		cameras:   cameras,
		log:       nopLogger{},
		divisions: DefaultDivisions,
		spacing:   DefaultGridSpacing,
		axis:      DefaultAxis(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init assembles the first frame and restores the saved camera exactly once.
// When no state was saved, or it cannot be read, the default viewpoint is applied;
// a read failure is logged and returned for user feedback but the scene is
// assembled regardless. restored reports whether the saved viewpoint was used.
func (a *Assembler) Init() (restored bool, err error) {
	if a.initialised {
		return false, ErrAlreadyInitialised
	}
	if err := validateAxis(a.axis, a.spacing); err != nil {
		return false, err
	}
	a.initialised = true
	a.regenerate()

	view := camera.Default()
	if a.cameras != nil {
		saved, ok, loadErr := a.cameras.Load()
		switch {
		case loadErr != nil:
			a.log.Log(fmt.Sprintf("camera: %v; using default viewpoint", loadErr))
			err = loadErr
		case ok:
			view, restored = saved, true
			a.log.Log("camera: restored saved viewpoint")
		}
	}
	if a.surface != nil {
		a.surface.SetViewpoint(view)
	}
	return restored, err
}

// SetAxis replaces the axis config and regenerates the scene. Invalid configs
// are rejected and leave the current scene untouched.
func (a *Assembler) SetAxis(c AxisConfig) error {
	if err := validateAxis(c, a.spacing); err != nil {
		return err
	}
	a.axis = c
	a.regenerate()
	return nil
}

// SetOverlays replaces the overlay list and regenerates the scene. IDs must be unique.
func (a *Assembler) SetOverlays(list []overlay.Descriptor) error {
	if dups := overlay.DuplicateIDs(list); len(dups) > 0 {
		return fmt.Errorf("duplicate overlay ids %v", dups)
	}
	a.overlays = cloneDescriptors(list)
	a.regenerate()
	return nil
}

// AddOverlay appends a descriptor with a fresh ID and regenerates the scene.
// The descriptor is kept even if it fails to build; the failure shows in Frame().Failures.
func (a *Assembler) AddOverlay(position float32, kind overlay.Kind, depth float32, color geom.Color) overlay.Descriptor {
	next := overlay.Append(cloneDescriptors(a.overlays), position, kind, depth, color)
	a.overlays = next
	a.regenerate()
	return next[len(next)-1]
}

// RemoveOverlay drops the descriptor with id and regenerates the scene. It reports
// whether one was found; when not, nothing changes.
func (a *Assembler) RemoveOverlay(id int) bool {
	for i, d := range a.overlays {
		if d.ID != id {
			continue
		}
		next := make([]overlay.Descriptor, 0, len(a.overlays)-1)
		next = append(next, a.overlays[:i]...)
		a.overlays = append(next, a.overlays[i+1:]...)
		a.regenerate()
		return true
	}
	return false
}

// ClearOverlays removes every overlay and regenerates the scene.
func (a *Assembler) ClearOverlays() {
	a.overlays = nil
	a.regenerate()
}

// Axis returns the current axis config.
func (a *Assembler) Axis() AxisConfig {
	return a.axis
}

// Overlays returns a copy of the current overlay list.
func (a *Assembler) Overlays() []overlay.Descriptor {
	return cloneDescriptors(a.overlays)
}

// Frame returns the last assembled frame, or nil before Init.
func (a *Assembler) Frame() *Frame {
	return a.frame
}

// SaveCamera stores the surface's live viewpoint, replacing any earlier save.
func (a *Assembler) SaveCamera() error {
	if a.surface == nil || a.cameras == nil {
		return errors.New("camera saving is not configured")
	}
	if err := a.cameras.Save(a.surface.Viewpoint()); err != nil {
		a.log.Log(fmt.Sprintf("camera: %v", err))
		return err
	}
	a.log.Log("camera: viewpoint saved")
	return nil
}

// regenerate rebuilds the frame from scratch. Before Init it only records config.
func (a *Assembler) regenerate() {
	if !a.initialised {
		return
	}
	f := Assemble(a.axis, a.overlays, a.divisions, a.spacing)
	for _, fail := range f.Failures {
		a.log.Log(fmt.Sprintf("overlay %d skipped: %v", fail.ID, fail.Err))
	}
	a.frame = f
	if a.surface != nil {
		a.surface.Present(f)
	}
}

// Assemble builds the frame for one configuration. Overlays that fail to build
// are reported in Failures; the rest of the frame is still produced. A grid or
// label error (bad spacing or divisions) leaves that part empty and is reported
// with ID -1.
func Assemble(c AxisConfig, overlays []overlay.Descriptor, divisions int, spacing float32) *Frame {
	box := c.ReferenceBox()
	f := &Frame{Axis: c, Box: box}

	segs, err := grid.Generate(box.Size.X, box.Size.Y, box.Size.Z, spacing)
	if err != nil {
		f.Failures = append(f.Failures, OverlayFailure{ID: -1, Err: fmt.Errorf("grid: %w", err)})
	}
	f.Grid = geom.TranslateSegments(segs, box.Center)

	f.Overlays = make([]overlay.Geometry, 0, len(overlays))
	for _, d := range overlays {
		g, err := overlay.Build(d)
		if err != nil {
			f.Failures = append(f.Failures, OverlayFailure{ID: d.ID, Err: err})
			continue
		}
		f.Overlays = append(f.Overlays, g)
	}

	labels, err := axis.Labels(c.Start, c.Length, divisions)
	if err != nil {
		f.Failures = append(f.Failures, OverlayFailure{ID: -1, Err: fmt.Errorf("labels: %w", err)})
	}
	f.Labels = labels
	return f
}

// validateAxis checks c before any geometry is built. The box is float32, so the
// length must also be finite there and fit the grid at spacing. An invalid spacing
// is left to Assemble, which reports it as a grid failure.
func validateAxis(c AxisConfig, spacing float32) error {
	if math.IsNaN(c.Start) || math.IsInf(c.Start, 0) {
		return fmt.Errorf("%w: start %v", ErrInvalidAxis, c.Start)
	}
	if !(c.Length > 0) || math.IsInf(c.Length, 0) || math.IsInf(float64(float32(c.Length)), 0) {
		return fmt.Errorf("%w: length %v", ErrInvalidAxis, c.Length)
	}
	if spacing > 0 {
		if err := grid.CheckExtent(float32(c.Length), spacing); err != nil {
			return fmt.Errorf("%w: length %v: %w", ErrInvalidAxis, c.Length, err)
		}
	}
	return nil
}

func cloneDescriptors(list []overlay.Descriptor) []overlay.Descriptor {
	return slices.Clone(list)
}
