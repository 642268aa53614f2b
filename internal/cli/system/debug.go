package system

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/streakline/internal/cli"
)

type DebugCmd struct {
	DBPath         *DebugDBPathCmd         `cmd:"" help:"Show database path."`
	DumpGoal       *DebugDumpGoalCmd       `cmd:"" help:"Dump goal data as JSON."`
	DumpEvents     *DebugDumpEventsCmd     `cmd:"" help:"Dump a goal's completion events as JSON."`
	DumpMilestones *DebugDumpMilestonesCmd `cmd:"" help:"Dump milestones as JSON."`
	DumpSettings   *DebugDumpSettingsCmd   `cmd:"" help:"Dump settings data as JSON."`
}

// stdout is swapped in tests.
var stdout io.Writer = os.Stdout

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(jsonBytes))
	return err
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpGoalCmd struct {
	Name string `arg:"" help:"Name of the goal to dump."`
}

func (cmd *DebugDumpGoalCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.FindGoal(cmd.Name)
	if err != nil {
		return err
	}
	return printJSON(goal)
}

type DebugDumpEventsCmd struct {
	Goal string `arg:"" help:"Name of the goal whose events to dump."`
}

func (cmd *DebugDumpEventsCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.FindGoal(cmd.Goal)
	if err != nil {
		return err
	}
	events, err := ctx.Store.ListEvents(ctx.Ctx(), goal.ID)
	if err != nil {
		return fmt.Errorf("failed to get completion events: %w", err)
	}
	return printJSON(events)
}

type DebugDumpMilestonesCmd struct{}

func (cmd *DebugDumpMilestonesCmd) Run(ctx *cli.Context) error {
	milestones, err := ctx.Store.GetAllMilestones(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get milestones: %w", err)
	}
	return printJSON(milestones)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}
