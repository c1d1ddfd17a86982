package viewer

import (
	"path/filepath"
	"testing"

	"axis-viewer/internal/camera"
	"axis-viewer/internal/commands"
	"axis-viewer/internal/config"
	"axis-viewer/internal/geom"
	"axis-viewer/internal/kv"
	"axis-viewer/internal/overlay"
	"axis-viewer/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineLog struct{ lines []string }

func (l *lineLog) Log(line string) { l.lines = append(l.lines, line) }

type fakeSurface struct{ view camera.State }

func (s *fakeSurface) Present(*scene.Frame)        {}
func (s *fakeSurface) SetViewpoint(v camera.State) { s.view = v }
func (s *fakeSurface) Viewpoint() camera.State     { return s.view }

type fixture struct {
	reg     *commands.Registry
	viewer  *Viewer
	asm     *scene.Assembler
	log     *lineLog
	backend *kv.Memory
	dir     string
	grid    []bool
	drawer  bool
	resets  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{reg: commands.NewRegistry(), log: &lineLog{}, backend: kv.NewMemory(), dir: t.TempDir()}
	f.asm = scene.New(&fakeSurface{}, camera.NewStore(f.backend, ""), scene.WithLogger(f.log))
	_, err := f.asm.Init()
	require.NoError(t, err)

	prefs := config.Default()
	prefs.ScenePath = filepath.Join(f.dir, "scene.yaml")
	f.viewer = New(f.asm, f.log, &prefs, filepath.Join(f.dir, "viewer.json"), config.DefaultScene(), Toggles{
		Grid:      func(v bool) { f.grid = append(f.grid, v) },
		Drawer:    func() bool { f.drawer = !f.drawer; return f.drawer },
		ResetView: func() { f.resets++ },
	})
	f.viewer.Register(f.reg)
	return f
}

func TestAxisCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, f.reg.Handle("cmd axis --start 5 --length 250"))
	assert.Equal(t, scene.AxisConfig{Start: 5, Length: 250}, f.asm.Axis())

	// Both flags are required, even when the value would equal the default.
	err := f.reg.Handle("cmd axis --length 10")
	assert.ErrorIs(t, err, commands.ErrMissingFlag)
	require.NoError(t, f.reg.Handle("cmd axis --start 0 --length 10"))
	assert.Equal(t, scene.AxisConfig{Start: 0, Length: 10}, f.asm.Axis())

	err = f.reg.Handle("cmd axis --start 0 --length -1")
	assert.ErrorIs(t, err, scene.ErrInvalidAxis)
	assert.Equal(t, scene.AxisConfig{Start: 0, Length: 10}, f.asm.Axis())
}

func TestOverlayCommands(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, f.reg.Handle("cmd overlay --kind cut_plane --position 20 --depth 4"))
	require.NoError(t, f.reg.Handle("cmd overlay --kind CURVE_TUBE --position 60 --depth 8 --color blue"))

	got := f.asm.Overlays()
	require.Len(t, got, 2)
	assert.Equal(t, overlay.Descriptor{ID: 0, Position: 20, Kind: overlay.CutPlane, Depth: 4, Color: config.DefaultOverlayColor}, got[0])
	assert.Equal(t, overlay.CurveTube, got[1].Kind)
	assert.Equal(t, geom.Blue, got[1].Color)

	assert.ErrorIs(t, f.reg.Handle("cmd overlay --kind cut_plane --position 20"), commands.ErrMissingFlag)
	assert.ErrorIs(t, f.reg.Handle("cmd overlay --kind spiral --position 20 --depth 1"), overlay.ErrUnsupportedKind)
	assert.ErrorIs(t, f.reg.Handle("cmd overlay --kind cut_plane --position 20 --depth 0"), overlay.ErrInvalidDescriptor)
	assert.Error(t, f.reg.Handle("cmd overlay --kind cut_plane --position 20 --depth 1 --color nope"))
	assert.Len(t, f.asm.Overlays(), 2)

	require.NoError(t, f.reg.Handle("cmd remove --id 0"))
	assert.Len(t, f.asm.Overlays(), 1)
	assert.Error(t, f.reg.Handle("cmd remove --id 0"))
	assert.ErrorIs(t, f.reg.Handle("cmd remove"), commands.ErrMissingFlag)

	require.NoError(t, f.reg.Handle("cmd clear"))
	assert.Empty(t, f.asm.Overlays())
}

func TestSaveCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, f.reg.Handle("cmd save"))
	_, ok, err := f.backend.Get(camera.DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoFileExists(t, filepath.Join(f.dir, "scene.yaml"))

	require.NoError(t, f.reg.Handle("cmd axis --start 2 --length 40"))
	require.NoError(t, f.reg.Handle("cmd overlay --kind cut_plane --position 10 --depth 3"))
	require.NoError(t, f.reg.Handle("cmd save --scene"))

	loaded, err := config.LoadScene(filepath.Join(f.dir, "scene.yaml"))
	require.NoError(t, err)
	assert.Equal(t, f.viewer.Current(), loaded)
}

func TestToggleCommands(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, f.reg.Handle("cmd grid --visible=false"))
	require.NoError(t, f.reg.Handle("cmd grid --visible"))
	assert.Equal(t, []bool{false, true}, f.grid)
	assert.ErrorIs(t, f.reg.Handle("cmd grid"), commands.ErrMissingFlag)

	require.NoError(t, f.reg.Handle("cmd fps --show"))
	prefs, err := config.LoadPrefs(f.viewer.PrefsPath)
	require.NoError(t, err)
	assert.True(t, prefs.ShowFPS)
	assert.True(t, prefs.GridVisible)

	require.NoError(t, f.reg.Handle("cmd drawer"))
	assert.True(t, f.drawer)
	require.NoError(t, f.reg.Handle("cmd drawer"))
	assert.False(t, f.drawer)

	require.NoError(t, f.reg.Handle("cmd view --reset"))
	assert.Equal(t, 1, f.resets)
}

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, f.reg.Handle("cmd help"))
	assert.Len(t, f.log.lines, len(f.reg.Names()))
	assert.Contains(t, f.log.lines, "cmd axis --length <length> --start <start>  set the displayed axis range")
}
