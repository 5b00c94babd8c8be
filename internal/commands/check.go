package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"weekly/internal/config"
	"weekly/internal/exitcode"
	"weekly/internal/output"
	"weekly/internal/sync"
	"weekly/internal/timekey"
)

func init() {
	Register(&CheckCmd{})
	Register(&UncheckCmd{})
}

// CheckCmd marks a task cell complete.
type CheckCmd struct{}

func (c *CheckCmd) Name() string      { return "check" }
func (c *CheckCmd) Aliases() []string { return []string{"x"} }
func (c *CheckCmd) Synopsis() string  { return "Mark a task done for a day" }
func (c *CheckCmd) Usage() string     { return "weekly check <task> [mon..fri]" }
func (c *CheckCmd) NeedsRemote() bool { return true }

func (c *CheckCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CheckCmd) Run(ctx context.Context, cfg *config.Config, orc *sync.Orchestrator, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, orc, args, true, out, errOut)
}

// UncheckCmd clears a task cell.
type UncheckCmd struct{}

func (c *UncheckCmd) Name() string      { return "uncheck" }
func (c *UncheckCmd) Aliases() []string { return nil }
func (c *UncheckCmd) Synopsis() string  { return "Clear a task's done mark for a day" }
func (c *UncheckCmd) Usage() string     { return "weekly uncheck <task> [mon..fri]" }
func (c *UncheckCmd) NeedsRemote() bool { return true }

func (c *UncheckCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UncheckCmd) Run(ctx context.Context, cfg *config.Config, orc *sync.Orchestrator, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, orc, args, false, out, errOut)
}

// runToggle is the shared toggle pipeline: resolve the task and column,
// submit the patch, and report the cascade outcome.
func runToggle(ctx context.Context, cfg *config.Config, orc *sync.Orchestrator, args []string, value bool, out, errOut io.Writer) int {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(errOut, "error: usage: weekly check|uncheck <task> [mon..fri]")
		return exitcode.UserError
	}

	task, err := ResolveTask(orc.Snapshot().Tasks, args[0])
	if err != nil {
		return fail(errOut, err)
	}

	var column int
	if len(args) == 2 {
		column, err = ParseDay(args[1])
		if err != nil {
			return fail(errOut, err)
		}
	} else {
		column = orc.Now().Column
		if column == timekey.NoColumn {
			fmt.Fprintln(errOut, "error: no weekday column today; pass a day (mon..fri)")
			return exitcode.UserError
		}
	}

	res, err := orc.Toggle(ctx, task.ID, column, value)
	if err != nil {
		return fail(errOut, err)
	}

	p := output.New(out)
	if !cfg.Quiet {
		p.Success("Saved")
	}
	if res.AllDoneToday {
		if res.CalendarErr != nil {
			fmt.Fprintf(errOut, "warning: all tasks done today, but tagging the calendar failed: %v\n", res.CalendarErr)
		} else if !cfg.Quiet {
			p.Success(fmt.Sprintf("All tasks done for %s — calendar tagged", res.Keys.DayKey))
		}
	}
	return exitcode.Success
}
