package commands

import (
	"bytes"
	"flag"
	"fmt"
	"sort"
	"strings"
)

const prefix = "cmd "

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
// Print, when set, receives the output of commands that report something (e.g. help).
type Registry struct {
	cmds  map[string]*Command
	Print func(line string)
}

// NewRegistry returns a registry that only knows "help".
func NewRegistry() *Registry {
	r := &Registry{cmds: make(map[string]*Command)}
	r.Register("help", "list console commands", flag.NewFlagSet("help", flag.ContinueOnError), func() error {
		for _, line := range strings.Split(r.Help(), "\n") {
			r.Println(line)
		}
		return nil
	})
	return r
}

// Println sends line to Print if set.
func (r *Registry) Println(line string) {
	if r.Print != nil {
		r.Print(line)
	}
}

// Register adds a subcommand. name is the first token after "cmd" (e.g. "wave").
// fs is that command's FlagSet; run is called after fs.Parse(args[1:]) succeeds.
// Flag errors are returned from Execute rather than printed.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	fs.SetOutput(new(bytes.Buffer))
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Help is one line per command: "cmd name: usage".
func (r *Registry) Help() string {
	var b strings.Builder
	for i, n := range r.Names() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s%s: %s", prefix, n, r.cmds[n].Usage)
	}
	return b.String()
}

// Parse interprets line as a console line. If line starts with "cmd " (case-sensitive),
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
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand (try: cmd help)")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	// Flags keep their values between runs otherwise.
	cmd.FlagSet.VisitAll(func(f *flag.Flag) { _ = f.Value.Set(f.DefValue) })
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run()
}

// ExecuteLine parses and runs a console line. ok is false when line is not a command.
func (r *Registry) ExecuteLine(line string) (ok bool, err error) {
	args, isCmd := Parse(line)
	if !isCmd {
		return false, nil
	}
	return true, r.Execute(args)
}
