package commands

import (
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		args []string
		ok   bool
	}{
		{"cmd axis --start 0 --length 100", []string{"axis", "--start", "0", "--length", "100"}, true},
		{"cmd   clear  ", []string{"clear"}, true},
		{"cmd ", nil, true},
		{"hello", nil, false},
		{"CMD axis", nil, false},
	}
	for _, tt := range tests {
		args, ok := Parse(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.args, args, tt.line)
	}
}

func axisRegistry(got *[2]float64) *Registry {
	r := NewRegistry()
	r.Register("axis", "set the axis range", func(fs *flag.FlagSet) func() error {
		start := fs.Float64("start", 0, "")
		length := fs.Float64("length", 0, "")
		return func() error {
			if err := Required(fs, "start", "length"); err != nil {
				return err
			}
			*got = [2]float64{*start, *length}
			return nil
		}
	})
	return r
}

func TestExecute_RequiredFlags(t *testing.T) {
	t.Parallel()

	var got [2]float64
	r := axisRegistry(&got)

	require.NoError(t, r.Execute([]string{"axis", "--start", "-5", "--length", "20"}))
	assert.Equal(t, [2]float64{-5, 20}, got)

	// Flags from the previous line must not count as given.
	err := r.Execute([]string{"axis", "--length", "30"})
	assert.ErrorIs(t, err, ErrMissingFlag)
	assert.Contains(t, err.Error(), "--start")
	assert.Equal(t, [2]float64{-5, 20}, got)

	// An explicit zero is present, not missing.
	require.NoError(t, r.Execute([]string{"axis", "--start=0", "--length=1"}))
	assert.Equal(t, [2]float64{0, 1}, got)
}

func TestExecute_Errors(t *testing.T) {
	t.Parallel()

	var got [2]float64
	r := axisRegistry(&got)

	assert.Error(t, r.Execute(nil))
	assert.ErrorContains(t, r.Execute([]string{"zoom"}), "unknown command")
	err := r.Execute([]string{"axis", "--start", "abc", "--length", "1"})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissingFlag))

	boom := errors.New("boom")
	r.Register("fail", "", func(fs *flag.FlagSet) func() error {
		return func() error { return boom }
	})
	assert.ErrorIs(t, r.Execute([]string{"fail"}), boom)
}

func TestHelp(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register("grid", "toggle the grid", func(fs *flag.FlagSet) func() error {
		fs.Bool("visible", true, "")
		return func() error { return nil }
	})
	r.Register("axis", "set the axis range", func(fs *flag.FlagSet) func() error {
		fs.Float64("length", 0, "")
		fs.Float64("start", 0, "")
		return func() error { return nil }
	})
	assert.Equal(t, []string{"axis", "grid"}, r.Names())
	assert.Equal(t, []string{
		"cmd axis --length <length> --start <start>  set the axis range",
		"cmd grid --visible  toggle the grid",
	}, r.Help())
}

func TestHandle(t *testing.T) {
	t.Parallel()

	var got [2]float64
	r := axisRegistry(&got)
	require.NoError(t, r.Handle("cmd axis --start 10 --length 5"))
	assert.Equal(t, [2]float64{10, 5}, got)
	assert.ErrorIs(t, r.Handle("axis --start 1"), ErrNotCommand)
	assert.ErrorContains(t, r.Handle("cmd "), "missing subcommand")
}
