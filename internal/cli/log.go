package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/streakline/internal/streak"
	"github.com/julianstephens/streakline/internal/tracker"
	"github.com/julianstephens/streakline/internal/utils"
)

type LogCmd struct {
	Goal string `arg:"" help:"Goal name."`
	At   string `help:"When it happened: YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339 (default: now)."`
	Note string `help:"Optional note for this entry."`
}

func (c *LogCmd) Run(ctx *Context) error {
	goal, err := ctx.FindGoal(c.Goal)
	if err != nil {
		return err
	}

	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	loggedAt, err := utils.ParseLoggedAt(c.At, svc.Location(), ctx.Now())
	if err != nil {
		return err
	}

	event, err := svc.LogCompletion(ctx.Ctx(), goal.ID, loggedAt, c.Note)
	if err != nil {
		if errors.Is(err, tracker.ErrFutureEvent) {
			return fmt.Errorf("cannot log %s for %s: that day has not happened yet", goal.Name, streak.DayOf(loggedAt, svc.Location()))
		}
		return err
	}

	fmt.Printf("Logged %s for %s\n", goal.Name, streak.DayOf(event.LoggedAt, svc.Location()))

	report, err := svc.Streak(ctx.Ctx(), goal)
	if err == nil && report.Available() {
		fmt.Printf("Current streak: %d day(s)\n", report.CurrentStreak)
	}
	return nil
}
