package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore checks the contract every backend shares.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("camera", `{"a":1}`))
	v, ok, err := s.Get("camera")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, v)

	// Set replaces, never merges.
	require.NoError(t, s.Set("camera", "second"))
	v, _, err = s.Get("camera")
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	require.NoError(t, s.Set("empty", ""))
	v, ok, err = s.Get("empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestMemory(t *testing.T) {
	t.Parallel()
	exerciseStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "state.json")
	f := NewFile(path)
	exerciseStore(t, f)
	assert.Equal(t, path, f.Path())

	// A second handle sees what the first one wrote.
	v, ok, err := NewFile(path).Get("camera")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFile_Corrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, _, err := NewFile(path).Get("camera")
	assert.Error(t, err)
	assert.Error(t, NewFile(path).Set("camera", "x"))
}

func TestSQLite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "db", "axisview.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	// Values survive reopening.
	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get("camera")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, tc := range []struct {
		backend string
		path    string
	}{
		{BackendMemory, ""},
		{BackendFile, filepath.Join(dir, "state.json")},
		{BackendSQLite, filepath.Join(dir, "state.db")},
	} {
		s, closeFn, err := Open(tc.backend, tc.path)
		require.NoError(t, err, tc.backend)
		exerciseStore(t, s)
		require.NoError(t, closeFn())
	}

	_, closeFn, err := Open("redis", "")
	assert.ErrorContains(t, err, "redis")
	assert.NoError(t, closeFn())
}
