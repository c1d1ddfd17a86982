package ui

import (
	"fmt"

	"axis-viewer/internal/overlay"
	"axis-viewer/internal/scene"
)

// Settings is what the drawer shows: the submitted axis range and overlay list,
// plus the current view toggles. Pass it from the app layer every frame.
type Settings struct {
	Axis        scene.AxisConfig
	Overlays    []overlay.Descriptor
	Failures    []scene.OverlayFailure
	GridVisible bool
	Store       string
}

// Drawer is a right-side panel listing the configuration. It owns its nodes and
// updates their text when AppendNodes is called with visible true.
type Drawer struct {
	panel *Node
	hint  *Node
}

// NewDrawer creates a Drawer with nodes styled by the engine's CSS (.drawer, .drawer-hint).
func NewDrawer() *Drawer {
	return &Drawer{
		panel: NewNode("panel", "drawer", "", "Settings"),
		hint:  NewNode("label", "drawer-hint", "", "ESC: terminal   cmd help: commands"),
	}
}

// AppendNodes appends drawer nodes to dst when visible is true, after updating lines from s.
// The hint is always appended. Call every frame so visibility and content stay in sync.
func (d *Drawer) AppendNodes(dst []*Node, visible bool, s Settings) []*Node {
	dst = append(dst, d.hint)
	if !visible {
		return dst
	}
	d.panel.Lines = SettingsLines(s, d.panel.Lines[:0])
	return append(dst, d.panel)
}

// SettingsLines formats s for the drawer, appending to dst.
func SettingsLines(s Settings, dst []string) []string {
	dst = append(dst,
		"",
		fmt.Sprintf("Axis start:  %g", s.Axis.Start),
		fmt.Sprintf("Axis length: %g", s.Axis.Length),
		fmt.Sprintf("Grid: %s", onOff(s.GridVisible)),
		fmt.Sprintf("Camera store: %s", s.Store),
		"",
	)
	if len(s.Overlays) == 0 {
		dst = append(dst, "Overlays: none")
	} else {
		dst = append(dst, fmt.Sprintf("Overlays (%d):", len(s.Overlays)))
	}
	failed := make(map[int]bool, len(s.Failures))
	for _, f := range s.Failures {
		failed[f.ID] = true
	}
	for _, o := range s.Overlays {
		line := fmt.Sprintf("  #%d %-10s at %g depth %g %s", o.ID, o.Kind, o.Position, o.Depth, o.Color.Hex())
		if failed[o.ID] {
			line += "  (skipped)"
		}
		dst = append(dst, line)
	}
	return dst
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
