package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd "

var (
	// ErrMissingFlag is returned by Required when a flag was not given on the command line.
	ErrMissingFlag = errors.New("missing required flag")
	// ErrNotCommand is returned by Handle for lines without the "cmd " prefix.
	ErrNotCommand = errors.New(`not a command (try "cmd help")`)
)

// Setup defines a command's flags on fs and returns the function to run once
// they are parsed. It is called with a fresh FlagSet for every execution.
type Setup func(fs *flag.FlagSet) (run func() error)

// Command is a subcommand with its own flags and a Run function.
type Command struct {
	Name        string
	Description string
	Setup       Setup
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. name is the first token after "cmd" (e.g. "grid").
func (r *Registry) Register(name, description string, setup Setup) {
	r.cmds[name] = &Command{Name: name, Description: description, Setup: setup}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Help returns one line per command: its name, flags and description.
func (r *Registry) Help() []string {
	lines := make([]string, 0, len(r.cmds))
	for _, name := range r.Names() {
		cmd := r.cmds[name]
		fs := newFlagSet(name)
		cmd.Setup(fs)

		var b strings.Builder
		b.WriteString(prefix + name)
		fs.VisitAll(func(f *flag.Flag) {
			b.WriteString(" --" + f.Name)
			if !isBoolFlag(f) {
				b.WriteString(" <" + f.Name + ">")
			}
		})
		if cmd.Description != "" {
			b.WriteString("  " + cmd.Description)
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Parse interprets line as a terminal line. If line starts with "cmd " (case-sensitive),
// the rest is tokenized by spaces and returned with ok true. Otherwise nil, false.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from run.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	fs := newFlagSet(name)
	run := cmd.Setup(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return run()
}

// Handle parses line and executes it. Lines that are not commands return ErrNotCommand.
func (r *Registry) Handle(line string) error {
	args, ok := Parse(line)
	if !ok {
		return ErrNotCommand
	}
	return r.Execute(args)
}

// Required reports ErrMissingFlag unless every named flag was given on the command line.
// Call it from run.
func Required(fs *flag.FlagSet, names ...string) error {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	var missing []string
	for _, n := range names {
		if !set[n] {
			missing = append(missing, "--"+n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w %s", fs.Name(), ErrMissingFlag, strings.Join(missing, ", "))
	}
	return nil
}

// Usage output is discarded; parse errors are returned from Execute instead.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
