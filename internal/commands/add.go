package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"weekly/internal/config"
	"weekly/internal/exitcode"
	"weekly/internal/output"
	"weekly/internal/sync"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd appends a task to the checklist config. Keyholder only.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Add a task (keyholder)" }
func (c *AddCmd) Usage() string     { return "weekly add <label...>" }
func (c *AddCmd) NeedsRemote() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, orc *sync.Orchestrator, args []string, out, errOut io.Writer) int {
	label := strings.TrimSpace(strings.Join(args, " "))
	if label == "" {
		fmt.Fprintln(errOut, "error: label required")
		return exitcode.UserError
	}
	if _, err := orc.AddTask(label); err != nil {
		return fail(errOut, err)
	}
	return saveConfig(ctx, cfg, orc, out, errOut)
}

// saveConfig runs the config save patch shared by the editor commands.
func saveConfig(ctx context.Context, cfg *config.Config, orc *sync.Orchestrator, out, errOut io.Writer) int {
	if _, err := orc.SaveConfig(ctx); err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		output.New(out).Success("Weekly tasks saved")
	}
	return exitcode.Success
}
