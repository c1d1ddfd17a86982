package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"axis-viewer/internal/geom"
	"axis-viewer/internal/overlay"
	"axis-viewer/internal/scene"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// ScenePath is the default location of the scene file.
const ScenePath = "config/scene.yaml"

// ErrMissingField is returned when a required scene file value is absent.
var ErrMissingField = errors.New("missing required field")

// DefaultOverlayColor is used for overlays that do not name a color.
var DefaultOverlayColor = geom.Red

// Scene is the user-editable part of the viewer: the axis range, overlay markers
// and the grid/label resolution.
type Scene struct {
	Axis        scene.AxisConfig
	Divisions   int
	GridSpacing float32
	Overlays    []overlay.Descriptor
}

// DefaultScene returns the scene shown when no file exists.
func DefaultScene() Scene {
	return Scene{
		Axis:        scene.DefaultAxis(),
		Divisions:   scene.DefaultDivisions,
		GridSpacing: scene.DefaultGridSpacing,
	}
}

// Pointer fields tell an absent value from an explicit zero.
type sceneFile struct {
	Axis        *axisFile     `yaml:"axis"`
	Divisions   *int          `yaml:"divisions,omitempty"`
	GridSpacing *float32      `yaml:"grid_spacing,omitempty"`
	Overlays    []overlayFile `yaml:"overlays" copier:"-"`
}

// presentOnly copies the set pointer fields of a file struct onto defaults; nil
// fields leave the default in place.
var presentOnly = copier.Option{IgnoreEmpty: true}

type axisFile struct {
	Start  *float64 `yaml:"start"`
	Length *float64 `yaml:"length"`
}

type overlayFile struct {
	ID       *int        `yaml:"id,omitempty"`
	Position *float32    `yaml:"position"`
	Kind     *string     `yaml:"kind"`
	Depth    *float32    `yaml:"depth"`
	Color    *geom.Color `yaml:"color,omitempty"`
}

// LoadScene reads a scene file. A missing file returns an error wrapping
// os.ErrNotExist so callers can fall back to DefaultScene.
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, err
	}
	s, err := ParseScene(data)
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes and validates scene YAML. The axis start and length and every
// overlay's kind, position and depth must be present. Overlays without an id get
// the next free one; ids must be unique. Values are not range-checked here: the
// assembler and overlay builder report those.
func ParseScene(data []byte) (Scene, error) {
	var raw sceneFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return Scene{}, fmt.Errorf("decode scene: %w", err)
	}

	if raw.Axis == nil {
		return Scene{}, fmt.Errorf("axis: %w", ErrMissingField)
	}
	if raw.Axis.Start == nil {
		return Scene{}, fmt.Errorf("axis.start: %w", ErrMissingField)
	}
	if raw.Axis.Length == nil {
		return Scene{}, fmt.Errorf("axis.length: %w", ErrMissingField)
	}
	s := DefaultScene()
	if err := copier.CopyWithOption(&s, raw, presentOnly); err != nil {
		return Scene{}, fmt.Errorf("decode scene: %w", err)
	}

	for i, o := range raw.Overlays {
		switch {
		case o.Kind == nil:
			return Scene{}, fmt.Errorf("overlays[%d].kind: %w", i, ErrMissingField)
		case o.Position == nil:
			return Scene{}, fmt.Errorf("overlays[%d].position: %w", i, ErrMissingField)
		case o.Depth == nil:
			return Scene{}, fmt.Errorf("overlays[%d].depth: %w", i, ErrMissingField)
		}
		d := overlay.Descriptor{Color: DefaultOverlayColor}
		if err := copier.CopyWithOption(&d, o, presentOnly); err != nil {
			return Scene{}, fmt.Errorf("overlays[%d]: %w", i, err)
		}
		if o.ID == nil {
			s.Overlays = overlay.Append(s.Overlays, d.Position, d.Kind, d.Depth, d.Color)
			continue
		}
		s.Overlays = append(s.Overlays, d)
	}
	if dups := overlay.DuplicateIDs(s.Overlays); len(dups) > 0 {
		return Scene{}, fmt.Errorf("duplicate overlay ids %v", dups)
	}
	return s, nil
}

// SaveScene writes s as YAML, creating the directory if needed.
func SaveScene(path string, s Scene) error {
	raw := sceneFile{
		Axis:        &axisFile{Start: &s.Axis.Start, Length: &s.Axis.Length},
		Divisions:   &s.Divisions,
		GridSpacing: &s.GridSpacing,
		Overlays:    make([]overlayFile, len(s.Overlays)),
	}
	for i := range s.Overlays {
		d := &s.Overlays[i]
		kind := string(d.Kind)
		raw.Overlays[i] = overlayFile{ID: &d.ID, Position: &d.Position, Kind: &kind, Depth: &d.Depth, Color: &d.Color}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
