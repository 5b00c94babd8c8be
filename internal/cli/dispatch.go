// Package cli parses arguments and dispatches subcommands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"weekly/internal/commands"
	"weekly/internal/config"
	"weekly/internal/exitcode"
	"weekly/internal/sync"
)

// OrchestratorFactory builds the session orchestrator from configuration:
// remote client, initial document fetch, state. Injected so tests can supply
// a fake remote.
type OrchestratorFactory func(ctx context.Context, cfg *config.Config, logger *log.Logger) (*sync.Orchestrator, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  OrchestratorFactory
}

// NewDispatcher creates a dispatcher over a registry and factory.
func NewDispatcher(registry *commands.Registry, factory OrchestratorFactory) *Dispatcher {
	return &Dispatcher{registry: registry, factory: factory}
}

// Run parses arguments and dispatches to the appropriate command, returning
// the process exit code. No arguments dispatches to status.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	cmdName := "status"
	rest := args
	if len(args) > 0 {
		if strings.HasPrefix(args[0], "-") {
			// Flags require a command first.
			fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
			return exitcode.UserError
		}
		cmdName = args[0]
		rest = args[1:]
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatch(ctx, cmd, rest, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configDir string
		quiet     bool
		debug     bool
		roleParam string
		editParam bool
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")
	fs.StringVar(&roleParam, "role", "", "")
	fs.BoolVar(&editParam, "edit", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return flagError(errOut, err)
	}

	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	cfg.RoleParam = roleParam
	cfg.EditParam = editParam

	logger := log.NewWithOptions(errOut, log.Options{Prefix: "weekly"})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}

	var orc *sync.Orchestrator
	if cmd.NeedsRemote() {
		if !cfg.HasRemote() {
			fmt.Fprintln(errOut, "error: remote_url not configured (set it in config.toml or WEEKLY_REMOTE_URL)")
			return exitcode.AuthError
		}
		orc, err = d.factory(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.AuthError
		}
	}

	return cmd.Run(ctx, cfg, orc, positional, out, errOut)
}

// flagError maps stdlib flag parse failures to clean messages.
func flagError(errOut io.Writer, err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "flag needs an argument"):
		parts := strings.SplitN(msg, ":", 2)
		fmt.Fprintf(errOut, "error: %s\n", strings.TrimSpace(parts[0]))
	case strings.HasPrefix(msg, "flag provided but not defined:"):
		name := strings.TrimPrefix(msg, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", name)
	default:
		fmt.Fprintf(errOut, "error: %s\n", msg)
	}
	return exitcode.UserError
}
