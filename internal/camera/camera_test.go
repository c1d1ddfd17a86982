package camera

import (
	"errors"
	"math"
	"testing"

	"axis-viewer/internal/geom"
	"axis-viewer/internal/kv"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingKV always errors, standing in for an unavailable backend.
type failingKV struct{ err error }

func (f failingKV) Get(string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(string, string) error         { return f.err }

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore(kv.NewMemory(), "")
	assert.Equal(t, DefaultKey, store.Key())

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok, "nothing saved yet")

	for i, order := range Orders {
		want := State{
			Position: geom.V3(12.5, -3.25, 100+float32(i)),
			Rotation: Euler{X: 0.1 * float32(i), Y: -1.2345678, Z: 3.0000001, Order: order},
			Target:   geom.V3(50, 0.1, 1e-7),
		}
		require.NoError(t, store.Save(want))
		got, ok, err := store.Load()
		require.NoError(t, err)
		require.True(t, ok)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("order %s round trip mismatch (-want +got):\n%s", order, diff)
		}
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	t.Parallel()

	backend := kv.NewMemory()
	store := NewStore(backend, "cam")
	require.NoError(t, store.Save(Default()))
	second := LookAt(geom.V3(0, 10, 0), geom.V3(1, 0, 0), WorldUp)
	require.NoError(t, store.Save(second))

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, cmp.Diff(second, got))

	blob, _, _ := backend.Get("cam")
	assert.JSONEq(t, mustMarshal(t, second), blob)
}

func TestStore_RejectsInvalidOrder(t *testing.T) {
	t.Parallel()

	store := NewStore(kv.NewMemory(), "")
	err := store.Save(State{Rotation: Euler{Order: "XXY"}})
	assert.Error(t, err)
	_, ok, _ := store.Load()
	assert.False(t, ok)
}

func TestStore_BackendErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk gone")
	store := NewStore(failingKV{err: boom}, "")
	_, _, err := store.Load()
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrMalformedState))
	assert.ErrorIs(t, store.Save(Default()), boom)
}

func TestUnmarshal_Malformed(t *testing.T) {
	t.Parallel()

	blobs := map[string]string{
		"not json":      `{"position":`,
		"wrong type":    `{"position":"here","rotation":{"_order":"XYZ"},"target":{}}`,
		"no position":   `{"rotation":{"_x":0,"_y":0,"_z":0,"_order":"XYZ"},"target":{"x":0,"y":0,"z":0}}`,
		"no rotation":   `{"position":{"x":0,"y":0,"z":0},"target":{"x":0,"y":0,"z":0}}`,
		"no target":     `{"position":{"x":0,"y":0,"z":0},"rotation":{"_x":0,"_y":0,"_z":0,"_order":"XYZ"}}`,
		"bad order":     `{"position":{"x":0,"y":0,"z":0},"rotation":{"_x":0,"_y":0,"_z":0,"_order":"ABC"},"target":{"x":0,"y":0,"z":0}}`,
		"missing order": `{"position":{"x":0,"y":0,"z":0},"rotation":{"_x":0,"_y":0,"_z":0},"target":{"x":0,"y":0,"z":0}}`,
		"array":         `[1,2,3]`,
		"empty":         ``,
	}
	for name, blob := range blobs {
		blob := blob
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			backend := kv.NewMemory()
			require.NoError(t, backend.Set(DefaultKey, blob))
			_, ok, err := NewStore(backend, "").Load()
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrMalformedState)
		})
	}
}

func TestUnmarshal_BrowserRecord(t *testing.T) {
	t.Parallel()

	// Shape produced by serialising a three.js camera position, rotation and orbit target.
	blob := `{"position":{"x":50,"y":50,"z":100},` +
		`"rotation":{"isEuler":true,"_x":-0.4636476,"_y":0.4115168,"_z":0.1973956,"_order":"XYZ"},` +
		`"target":{"x":0,"y":0,"z":0}}`
	got, err := Unmarshal(blob)
	require.NoError(t, err)
	assert.Equal(t, geom.V3(50, 50, 100), got.Position)
	assert.Equal(t, XYZ, got.Rotation.Order)
	assert.InDelta(t, -0.4636476, got.Rotation.X, 1e-7)
}

func TestEuler_MatrixRoundTrip(t *testing.T) {
	t.Parallel()

	for _, order := range Orders {
		for _, e := range []Euler{
			{X: 0.3, Y: -0.7, Z: 1.1},
			{X: -2.5, Y: 0.2, Z: -0.4},
			{X: 0, Y: 0, Z: 0},
		} {
			e.Order = order
			m := e.Matrix()
			back, err := EulerFromMatrix(m, order)
			require.NoError(t, err)
			// Angles may differ by 2pi equivalents; compare the rotations instead.
			assertMatNear(t, m, back.Matrix(), 1e-5)
		}
	}

	_, err := EulerFromMatrix(geom.Identity3(), "")
	assert.Error(t, err)
	assertMatNear(t, Euler{X: 0.5, Order: "bogus"}.Matrix(), Euler{X: 0.5, Order: XYZ}.Matrix(), 0)
}

func TestEuler_GimbalLock(t *testing.T) {
	t.Parallel()

	e := Euler{X: 0.4, Y: math.Pi / 2, Z: 0, Order: XYZ}
	back, err := EulerFromMatrix(e.Matrix(), XYZ)
	require.NoError(t, err)
	assert.Equal(t, float32(0), back.Z)
	assertMatNear(t, e.Matrix(), back.Matrix(), 1e-4)
}

func TestLookAt(t *testing.T) {
	t.Parallel()

	s := Default()
	assert.Equal(t, geom.V3(50, 50, 100), s.Position)
	assert.Equal(t, geom.Vec3{}, s.Target)
	assert.Equal(t, XYZ, s.Rotation.Order)

	want := s.Target.Sub(s.Position).Normalize()
	assert.True(t, want.NearlyEqual(s.Forward(), 1e-5), "forward %v want %v", s.Forward(), want)
	assert.InDelta(t, 0, s.Up().Dot(s.Forward()), 1e-5)
	assert.Greater(t, s.Up().Y, float32(0))

	// Looking straight down must not produce NaNs.
	down := LookAt(geom.V3(0, 10, 0), geom.Vec3{}, WorldUp)
	assert.True(t, geom.V3(0, -1, 0).NearlyEqual(down.Forward(), 1e-3), "forward %v", down.Forward())
	assert.False(t, math.IsNaN(float64(down.Rotation.X)))
}

func assertMatNear(t *testing.T, want, got geom.Mat3, eps float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, want[i][j], got[i][j], eps, "m[%d][%d]", i, j)
		}
	}
}

func mustMarshal(t *testing.T, s State) string {
	t.Helper()
	blob, err := Marshal(s)
	require.NoError(t, err)
	return blob
}
