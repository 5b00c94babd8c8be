package commands

import (
	"context"
	"flag"
	"io"

	"weekly/internal/config"
	"weekly/internal/sync"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd removes a task from the checklist config. Keyholder only. Historical
// completion rows for the removed task are retained in the document.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"remove"} }
func (c *RmCmd) Synopsis() string  { return "Remove a task (keyholder)" }
func (c *RmCmd) Usage() string     { return "weekly rm <task>" }
func (c *RmCmd) NeedsRemote() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, orc *sync.Orchestrator, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		return usageError(errOut, c)
	}
	task, err := ResolveTask(orc.Snapshot().Tasks, args[0])
	if err != nil {
		return fail(errOut, err)
	}
	if err := orc.RemoveTask(task.ID); err != nil {
		return fail(errOut, err)
	}
	return saveConfig(ctx, cfg, orc, out, errOut)
}
