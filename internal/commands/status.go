package commands

import (
	"context"
	"flag"
	"io"

	"weekly/internal/config"
	"weekly/internal/exitcode"
	"weekly/internal/output"
	"weekly/internal/sync"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd renders the current week's checklist.
type StatusCmd struct{}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return []string{"st"} }
func (c *StatusCmd) Synopsis() string  { return "Show this week's checklist" }
func (c *StatusCmd) Usage() string     { return "weekly status [-edit]" }
func (c *StatusCmd) NeedsRemote() bool { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, orc *sync.Orchestrator, args []string, out, errOut io.Writer) int {
	snap := orc.Snapshot()
	p := output.New(out)
	p.WeekTable(snap)
	if snap.ShowEditor {
		p.EditorList(snap)
	}
	return exitcode.Success
}
