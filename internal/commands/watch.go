package commands

import (
	"context"
	"flag"
	"io"
	"time"

	"weekly/internal/config"
	"weekly/internal/exitcode"
	"weekly/internal/output"
	"weekly/internal/sync"
	"weekly/internal/timekey"
)

func init() {
	Register(&WatchCmd{})
}

// WatchCmd renders the checklist and then watches for day rollovers,
// re-rendering derived display state on each change. It never re-fetches the
// document and issues no patches.
type WatchCmd struct {
	interval time.Duration
}

func (c *WatchCmd) Name() string      { return "watch" }
func (c *WatchCmd) Aliases() []string { return nil }
func (c *WatchCmd) Synopsis() string  { return "Watch for day rollovers" }
func (c *WatchCmd) Usage() string     { return "weekly watch [-interval 30s]" }
func (c *WatchCmd) NeedsRemote() bool { return true }

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&c.interval, "interval", sync.WatchInterval, "")
}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, orc *sync.Orchestrator, args []string, out, errOut io.Writer) int {
	p := output.New(out)
	p.WeekTable(orc.Snapshot())

	w := &sync.Watcher{Interval: c.interval}
	w.Run(ctx, func(keys timekey.Keys) {
		p.Rollover(keys)
		p.WeekTable(orc.Snapshot())
	})
	return exitcode.Success
}
