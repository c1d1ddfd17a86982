package render

import (
	"fmt"

	"axis-viewer/internal/camera"
	"axis-viewer/internal/geom"
	"axis-viewer/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// Fovy is the vertical field of view in degrees.
	Fovy = 75
	// AxesSize is the length of each world axis line drawn from the origin.
	AxesSize = 100
	// BoxAlpha and GridAlpha are the opacity (0.3) of the reference box and its grid lines.
	BoxAlpha  = 77
	GridAlpha = 77
	labelSize = 20
)

// Background is the clear color of the 3D view.
var Background = rl.NewColor(0x80, 0x80, 0x80, 255)

var (
	axisX     = rl.NewColor(255, 0, 0, 255)
	axisY     = rl.NewColor(0, 255, 0, 255)
	axisZ     = rl.NewColor(0, 0, 255, 255)
	gridColor = rl.NewColor(0, 0, 0, GridAlpha)
	boxColor  = rl.NewColor(255, 255, 255, BoxAlpha)
)

// Surface draws scene frames with raylib and owns the live camera. It implements
// scene.Surface. Present only records the frame; GPU work happens in Draw on the
// render thread.
type Surface struct {
	Camera      rl.Camera3D
	GridVisible bool
	AxesVisible bool
	// OnError, if set, receives mesh upload failures.
	OnError func(err error)

	frame      *scene.Frame
	pending    bool
	meshes     *meshCache
	cursorDone bool
}

// NewSurface returns a surface at the default viewpoint with grid and axes visible.
func NewSurface() *Surface {
	s := &Surface{
		GridVisible: true,
		AxesVisible: true,
		meshes:      newMeshCache(),
	}
	s.Camera.Fovy = Fovy
	s.Camera.Projection = rl.CameraPerspective
	s.SetViewpoint(camera.Default())
	return s
}

// Present records f for drawing. Meshes are uploaded on the next Draw.
func (s *Surface) Present(f *scene.Frame) {
	s.frame = f
	s.pending = true
}

// Frame returns the frame being drawn, or nil.
func (s *Surface) Frame() *scene.Frame {
	return s.frame
}

// SetViewpoint moves the camera to v. The up vector comes from v's rotation so a
// restored view keeps its roll.
func (s *Surface) SetViewpoint(v camera.State) {
	target := v.Target
	if target.DistSq(v.Position) < 1e-12 {
		target = v.Position.Add(v.Forward())
	}
	s.Camera.Position = toVector(v.Position)
	s.Camera.Target = toVector(target)
	s.Camera.Up = toVector(v.Up())
}

// Viewpoint returns the live camera as a storable state.
func (s *Surface) Viewpoint() camera.State {
	return camera.LookAt(fromVector(s.Camera.Position), fromVector(s.Camera.Target), fromVector(s.Camera.Up))
}

// SetGridVisible sets whether the reference grid is drawn.
func (s *Surface) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update runs once per frame. When active, raylib UpdateCamera with CameraFree moves the
// camera with mouse (look, pan, zoom) and keyboard; pass false while the terminal has input.
// The cursor is captured on the first frame.
func (s *Surface) Update(active bool) {
	if !s.cursorDone {
		rl.DisableCursor()
		s.cursorDone = true
	}
	if active {
		rl.UpdateCamera(&s.Camera, rl.CameraFree)
	}
}

// Draw renders the 3D scene and the axis labels. Call after ClearBackground and
// before 2D overlays (terminal, drawer).
func (s *Surface) Draw() {
	if s.pending {
		s.pending = false
		for _, err := range s.meshes.sync(s.frame) {
			if s.OnError != nil {
				s.OnError(err)
			}
		}
	}
	p := s.Camera.Position
	s.meshes.SetView([3]float32{p.X, p.Y, p.Z})

	rl.BeginMode3D(s.Camera)
	if s.AxesVisible {
		drawAxes()
	}
	if f := s.frame; f != nil {
		if s.GridVisible {
			drawSegments(f.Grid, gridColor)
		}
		for _, o := range f.Overlays {
			if o.Box != nil {
				rl.DrawCubeV(toVector(o.Box.Center), toVector(o.Box.Size), toColor(o.Color, 255))
			}
		}
		s.meshes.draw()
		// Translucent box last so the markers inside it stay visible.
		rl.DrawCubeV(toVector(f.Box.Center), toVector(f.Box.Size), boxColor)
	}
	rl.EndMode3D()

	if s.frame != nil {
		drawLabels(s.Camera, s.frame.Labels, labelSize, rl.Black)
	}
}

// Close releases GPU resources. Call before the window closes.
func (s *Surface) Close() {
	s.meshes.close()
}

// Stats returns one line per scene quantity for the debug overlay.
func (s *Surface) Stats() []string {
	f := s.frame
	if f == nil {
		return []string{"Scene: empty"}
	}
	return []string{
		fmt.Sprintf("Grid lines: %d", len(f.Grid)),
		fmt.Sprintf("Overlays: %d (%d failed)", len(f.Overlays), len(f.Failures)),
		fmt.Sprintf("Tube meshes: %d", s.meshes.count()),
		fmt.Sprintf("Labels: %d", len(f.Labels)),
	}
}

// drawAxes draws the world axes from the origin (X=red, Y=green, Z=blue).
func drawAxes() {
	origin := rl.NewVector3(0, 0, 0)
	rl.DrawLine3D(origin, rl.NewVector3(AxesSize, 0, 0), axisX)
	rl.DrawLine3D(origin, rl.NewVector3(0, AxesSize, 0), axisY)
	rl.DrawLine3D(origin, rl.NewVector3(0, 0, AxesSize), axisZ)
}

// drawSegments reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawSegments(segs []geom.Segment, c rl.Color) {
	var start, end rl.Vector3
	for _, seg := range segs {
		start.X, start.Y, start.Z = seg.A.X, seg.A.Y, seg.A.Z
		end.X, end.Y, end.Z = seg.B.X, seg.B.Y, seg.B.Z
		rl.DrawLine3D(start, end, c)
	}
}

func toVector(v geom.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

func fromVector(v rl.Vector3) geom.Vec3 {
	return geom.V3(v.X, v.Y, v.Z)
}
