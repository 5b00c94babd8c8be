package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"weekly/internal/config"
	"weekly/internal/exitcode"
	"weekly/internal/sync"
)

func init() {
	Register(&RenameCmd{})
}

// RenameCmd edits a task's label in place. Keyholder only; the task id is
// preserved, so completion history stays attached.
type RenameCmd struct{}

func (c *RenameCmd) Name() string      { return "rename" }
func (c *RenameCmd) Aliases() []string { return nil }
func (c *RenameCmd) Synopsis() string  { return "Rename a task (keyholder)" }
func (c *RenameCmd) Usage() string     { return "weekly rename <task> <label...>" }
func (c *RenameCmd) NeedsRemote() bool { return true }

func (c *RenameCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RenameCmd) Run(ctx context.Context, cfg *config.Config, orc *sync.Orchestrator, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		return usageError(errOut, c)
	}
	label := strings.TrimSpace(strings.Join(args[1:], " "))
	if label == "" {
		fmt.Fprintln(errOut, "error: label required")
		return exitcode.UserError
	}
	task, err := ResolveTask(orc.Snapshot().Tasks, args[0])
	if err != nil {
		return fail(errOut, err)
	}
	if err := orc.RenameTask(task.ID, label); err != nil {
		return fail(errOut, err)
	}
	return saveConfig(ctx, cfg, orc, out, errOut)
}
