// Package camera persists the interactive viewpoint: position, orientation and orbit target.
package camera

import (
	"encoding/json"
	"errors"
	"fmt"

	"axis-viewer/internal/geom"
	"axis-viewer/internal/kv"
)

// ErrMalformedState is returned when a stored camera blob cannot be decoded.
var ErrMalformedState = errors.New("malformed camera state")

// DefaultKey is the key under which the camera blob is stored.
const DefaultKey = "axisview.camera"

// State is one saved viewpoint.
type State struct {
	Position geom.Vec3
	Rotation Euler
	Target   geom.Vec3
}

// WorldUp is the up direction used when deriving a rotation from position and target.
var WorldUp = geom.V3(0, 1, 0)

// LookAt returns the state of a camera at position facing target with the given up vector.
func LookAt(position, target, up geom.Vec3) State {
	// XYZ is always valid, so the error is impossible here.
	rot, _ := EulerFromMatrix(LookAtMatrix(position, target, up), XYZ)
	return State{Position: position, Rotation: rot, Target: target}
}

// Default is the initial viewpoint: above and in front of the axis, orbiting the origin.
func Default() State {
	return LookAt(geom.V3(50, 50, 100), geom.Vec3{}, WorldUp)
}

// Up returns the camera's local Y axis in world space.
func (s State) Up() geom.Vec3 {
	return s.Rotation.Matrix().Col(1)
}

// Forward returns the direction the camera looks along (its local -Z axis).
func (s State) Forward() geom.Vec3 {
	return s.Rotation.Matrix().Col(2).Scale(-1)
}

type vec3JSON struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

type eulerJSON struct {
	X     float32 `json:"_x"`
	Y     float32 `json:"_y"`
	Z     float32 `json:"_z"`
	Order Order   `json:"_order"`
}

// stateJSON is the stored record. Pointers detect missing sections.
type stateJSON struct {
	Position *vec3JSON  `json:"position"`
	Rotation *eulerJSON `json:"rotation"`
	Target   *vec3JSON  `json:"target"`
}

func toJSON(v geom.Vec3) *vec3JSON {
	return &vec3JSON{X: v.X, Y: v.Y, Z: v.Z}
}

func (v *vec3JSON) vec() geom.Vec3 {
	return geom.V3(v.X, v.Y, v.Z)
}

// Marshal encodes s in the stored record format.
func Marshal(s State) (string, error) {
	if !s.Rotation.Order.Valid() {
		return "", fmt.Errorf("camera rotation order %q is not supported", s.Rotation.Order)
	}
	data, err := json.Marshal(stateJSON{
		Position: toJSON(s.Position),
		Rotation: &eulerJSON{X: s.Rotation.X, Y: s.Rotation.Y, Z: s.Rotation.Z, Order: s.Rotation.Order},
		Target:   toJSON(s.Target),
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Unmarshal decodes a stored record. Any failure wraps ErrMalformedState.
func Unmarshal(blob string) (State, error) {
	var rec stateJSON
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	switch {
	case rec.Position == nil:
		return State{}, fmt.Errorf("%w: missing position", ErrMalformedState)
	case rec.Rotation == nil:
		return State{}, fmt.Errorf("%w: missing rotation", ErrMalformedState)
	case rec.Target == nil:
		return State{}, fmt.Errorf("%w: missing target", ErrMalformedState)
	case !rec.Rotation.Order.Valid():
		return State{}, fmt.Errorf("%w: rotation order %q", ErrMalformedState, rec.Rotation.Order)
	}
	return State{
		Position: rec.Position.vec(),
		Rotation: Euler{X: rec.Rotation.X, Y: rec.Rotation.Y, Z: rec.Rotation.Z, Order: rec.Rotation.Order},
		Target:   rec.Target.vec(),
	}, nil
}

// Store reads and writes one camera State under a fixed key.
type Store struct {
	kv  kv.Store
	key string
}

// NewStore returns a Store over backend. An empty key uses DefaultKey.
func NewStore(backend kv.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: backend, key: key}
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Load returns the saved state. ok is false when nothing has been saved yet.
func (s *Store) Load() (st State, ok bool, err error) {
	blob, ok, err := s.kv.Get(s.key)
	if err != nil {
		return State{}, false, fmt.Errorf("load camera: %w", err)
	}
	if !ok {
		return State{}, false, nil
	}
	st, err = Unmarshal(blob)
	if err != nil {
		return State{}, false, err
	}
	return st, true, nil
}

// Save replaces the stored state with st.
func (s *Store) Save(st State) error {
	blob, err := Marshal(st)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.key, blob); err != nil {
		return fmt.Errorf("save camera: %w", err)
	}
	return nil
}
