// Package commands provides the CLI command interface and implementations.
// Commands project and mutate checklist state exclusively through the sync
// orchestrator.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	gosync "sync"

	"weekly/internal/config"
	"weekly/internal/exitcode"
	"weekly/internal/remote"
	"weekly/internal/sync"
)

// Command is one CLI subcommand.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsRemote reports whether the command requires a configured
	// remote document. help and version do not.
	NeedsRemote() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command. orc is nil when NeedsRemote is false.
	Run(ctx context.Context, cfg *config.Config, orc *sync.Orchestrator, args []string, out, errOut io.Writer) int
}

// Registry maps names and aliases to commands.
type Registry struct {
	mu   gosync.RWMutex
	cmds map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]Command)}
}

// Register adds a command under its name and aliases, rejecting collisions.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range append([]string{c.Name()}, c.Aliases()...) {
		if _, exists := r.cmds[name]; exists {
			return fmt.Errorf("command already registered: %s", name)
		}
		r.cmds[name] = c
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cmds[name]
	return c, ok
}

// All returns the unique commands sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]Command)
	for _, c := range r.cmds {
		seen[c.Name()] = c
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Command, len(names))
	for i, name := range names {
		out[i] = seen[name]
	}
	return out
}

// DefaultRegistry is the global command registry; commands add themselves
// via init().
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}

// usageError reports a malformed invocation of c.
func usageError(errOut io.Writer, c Command) int {
	fmt.Fprintf(errOut, "error: usage: %s\n", c.Usage())
	return exitcode.UserError
}

// fail prints err and maps it to an exit code by taxonomy: authorization
// failures, remote failures, then user errors.
func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	var authErr *sync.AuthorizationError
	var patchErr *remote.PatchError
	var fetchErr *remote.FetchError
	switch {
	case errors.As(err, &authErr):
		return exitcode.AuthError
	case errors.As(err, &patchErr), errors.As(err, &fetchErr):
		return exitcode.RemoteError
	default:
		return exitcode.UserError
	}
}
