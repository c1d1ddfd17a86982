// Package viewer binds terminal commands to the scene assembler and the view toggles.
package viewer

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"axis-viewer/internal/commands"
	"axis-viewer/internal/config"
	"axis-viewer/internal/geom"
	"axis-viewer/internal/overlay"
	"axis-viewer/internal/scene"
)

// Toggles are the view switches owned by the render side. Nil funcs are skipped.
type Toggles struct {
	Grid      func(visible bool)
	FPS       func(show bool)
	Stats     func(show bool)
	Drawer    func() (open bool)
	ResetView func()
}

// Viewer holds what the commands act on.
type Viewer struct {
	Scene     *scene.Assembler
	Log       scene.Logger
	Prefs     *config.Prefs
	PrefsPath string
	Toggles   Toggles

	divisions int
	spacing   float32
}

// New returns a Viewer over asm. The scene file's divisions and grid spacing are
// kept so "cmd save --scene" writes them back unchanged.
func New(asm *scene.Assembler, log scene.Logger, prefs *config.Prefs, prefsPath string, sc config.Scene, t Toggles) *Viewer {
	return &Viewer{
		Scene:     asm,
		Log:       log,
		Prefs:     prefs,
		PrefsPath: prefsPath,
		Toggles:   t,
		divisions: sc.Divisions,
		spacing:   sc.GridSpacing,
	}
}

// Register adds the viewer commands to reg.
func (v *Viewer) Register(reg *commands.Registry) {
	reg.Register("axis", "set the displayed axis range", v.axisCmd)
	reg.Register("overlay", "add a cut_plane or curve_tube marker", v.overlayCmd)
	reg.Register("remove", "remove the overlay with the given id", v.removeCmd)
	reg.Register("clear", "remove every overlay", v.clearCmd)
	reg.Register("list", "log the axis and overlays", v.listCmd)
	reg.Register("save", "save the camera viewpoint (--scene also writes the scene file)", v.saveCmd)
	reg.Register("grid", "show or hide the grid", v.gridCmd)
	reg.Register("fps", "show or hide the FPS counter", v.fpsCmd)
	reg.Register("stats", "show or hide scene statistics", v.statsCmd)
	reg.Register("drawer", "toggle the settings drawer", v.drawerCmd)
	reg.Register("view", "reset the camera to the default viewpoint", v.viewCmd)
	reg.Register("help", "list commands", func(*flag.FlagSet) func() error {
		return func() error {
			for _, line := range reg.Help() {
				v.Log.Log(line)
			}
			return nil
		}
	})
}

func (v *Viewer) axisCmd(fs *flag.FlagSet) func() error {
	start := fs.Float64("start", 0, "first tick value")
	length := fs.Float64("length", 0, "axis length, > 0")
	return func() error {
		if err := commands.Required(fs, "start", "length"); err != nil {
			return err
		}
		if err := v.Scene.SetAxis(scene.AxisConfig{Start: *start, Length: *length}); err != nil {
			return err
		}
		v.Log.Log(fmt.Sprintf("axis: start %g length %g", *start, *length))
		return nil
	}
}

func (v *Viewer) overlayCmd(fs *flag.FlagSet) func() error {
	kind := fs.String("kind", "", "cut_plane or curve_tube")
	position := fs.Float64("position", 0, "distance along the axis")
	depth := fs.Float64("depth", 0, "marker depth, > 0")
	color := fs.String("color", "", "marker color (#rgb, #rrggbb or a name)")
	return func() error {
		if err := commands.Required(fs, "kind", "position", "depth"); err != nil {
			return err
		}
		c := config.DefaultOverlayColor
		if *color != "" {
			var err error
			if c, err = geom.ParseColor(*color); err != nil {
				return err
			}
		}
		k := overlay.Kind(strings.ToLower(*kind))
		probe := overlay.Descriptor{Position: float32(*position), Kind: k, Depth: float32(*depth), Color: c}
		if err := probe.Validate(); err != nil {
			return err
		}
		d := v.Scene.AddOverlay(float32(*position), k, float32(*depth), c)
		v.Log.Log(fmt.Sprintf("overlay #%d: %s at %g depth %g", d.ID, d.Kind, d.Position, d.Depth))
		return nil
	}
}

func (v *Viewer) removeCmd(fs *flag.FlagSet) func() error {
	id := fs.Int("id", 0, "overlay id")
	return func() error {
		if err := commands.Required(fs, "id"); err != nil {
			return err
		}
		if !v.Scene.RemoveOverlay(*id) {
			return fmt.Errorf("no overlay with id %d", *id)
		}
		v.Log.Log(fmt.Sprintf("overlay #%d removed", *id))
		return nil
	}
}

func (v *Viewer) clearCmd(*flag.FlagSet) func() error {
	return func() error {
		v.Scene.ClearOverlays()
		v.Log.Log("overlays cleared")
		return nil
	}
}

func (v *Viewer) listCmd(*flag.FlagSet) func() error {
	return func() error {
		a := v.Scene.Axis()
		v.Log.Log(fmt.Sprintf("axis: start %g length %g", a.Start, a.Length))
		list := v.Scene.Overlays()
		if len(list) == 0 {
			v.Log.Log("overlays: none")
		}
		for _, d := range list {
			v.Log.Log(fmt.Sprintf("  #%d %s at %g depth %g %s", d.ID, d.Kind, d.Position, d.Depth, d.Color.Hex()))
		}
		return nil
	}
}

func (v *Viewer) saveCmd(fs *flag.FlagSet) func() error {
	withScene := fs.Bool("scene", false, "also write the scene file")
	return func() error {
		if err := v.Scene.SaveCamera(); err != nil {
			return err
		}
		if !*withScene {
			return nil
		}
		path := v.scenePath()
		if err := config.SaveScene(path, v.Current()); err != nil {
			return err
		}
		v.Log.Log("scene saved to " + path)
		return nil
	}
}

func (v *Viewer) gridCmd(fs *flag.FlagSet) func() error {
	visible := fs.Bool("visible", true, "grid visibility")
	return func() error {
		if err := commands.Required(fs, "visible"); err != nil {
			return err
		}
		if v.Toggles.Grid != nil {
			v.Toggles.Grid(*visible)
		}
		return v.updatePrefs(func(p *config.Prefs) { p.GridVisible = *visible })
	}
}

func (v *Viewer) fpsCmd(fs *flag.FlagSet) func() error {
	show := fs.Bool("show", true, "FPS counter visibility")
	return func() error {
		if err := commands.Required(fs, "show"); err != nil {
			return err
		}
		if v.Toggles.FPS != nil {
			v.Toggles.FPS(*show)
		}
		return v.updatePrefs(func(p *config.Prefs) { p.ShowFPS = *show })
	}
}

func (v *Viewer) statsCmd(fs *flag.FlagSet) func() error {
	show := fs.Bool("show", true, "scene statistics visibility")
	return func() error {
		if err := commands.Required(fs, "show"); err != nil {
			return err
		}
		if v.Toggles.Stats != nil {
			v.Toggles.Stats(*show)
		}
		return v.updatePrefs(func(p *config.Prefs) { p.ShowStats = *show })
	}
}

func (v *Viewer) drawerCmd(*flag.FlagSet) func() error {
	return func() error {
		if v.Toggles.Drawer == nil {
			return errors.New("drawer is not available")
		}
		if v.Toggles.Drawer() {
			v.Log.Log("drawer opened")
		} else {
			v.Log.Log("drawer closed")
		}
		return nil
	}
}

func (v *Viewer) viewCmd(fs *flag.FlagSet) func() error {
	reset := fs.Bool("reset", false, "move to the default viewpoint")
	return func() error {
		if err := commands.Required(fs, "reset"); err != nil {
			return err
		}
		if !*reset {
			return nil
		}
		if v.Toggles.ResetView != nil {
			v.Toggles.ResetView()
		}
		v.Log.Log("view reset")
		return nil
	}
}

// Current returns the live configuration as a scene file.
func (v *Viewer) Current() config.Scene {
	return config.Scene{
		Axis:        v.Scene.Axis(),
		Divisions:   v.divisions,
		GridSpacing: v.spacing,
		Overlays:    v.Scene.Overlays(),
	}
}

func (v *Viewer) scenePath() string {
	if v.Prefs != nil && v.Prefs.ScenePath != "" {
		return v.Prefs.ScenePath
	}
	return config.ScenePath
}

// updatePrefs applies fn and writes the prefs file. Without prefs nothing is saved.
func (v *Viewer) updatePrefs(fn func(p *config.Prefs)) error {
	if v.Prefs == nil {
		return nil
	}
	fn(v.Prefs)
	if v.PrefsPath == "" {
		return nil
	}
	if err := config.SavePrefs(v.PrefsPath, *v.Prefs); err != nil {
		return fmt.Errorf("saving prefs: %w", err)
	}
	return nil
}
