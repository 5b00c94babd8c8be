package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"weekly/internal/config"
	"weekly/internal/exitcode"
	"weekly/internal/sync"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "weekly help" }
func (c *HelpCmd) NeedsRemote() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, orc *sync.Orchestrator, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  weekly                                    Show this week's checklist
  weekly status [common flags]              Show this week's checklist
  weekly check [common flags] <task> [day]  Mark a task done (day: mon..fri, default today)
  weekly uncheck [common flags] <task> [day]
  weekly add [common flags] <label...>      Add a task (keyholder)
  weekly rm [common flags] <task>           Remove a task (keyholder)
  weekly rename [common flags] <task> <label...>
  weekly watch [common flags] [-interval 30s]
  weekly help
  weekly version

Tasks are addressed by their number in the checklist or by id.

Common flags:
  -config <dir>   Override config directory
  -role <role>    Act as keyholder|sub|viewer for this invocation
  -edit           Show the config editor listing
  -quiet          Suppress informational output
  -debug          Print debug logs to stderr
`
