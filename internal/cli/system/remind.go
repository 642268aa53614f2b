package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/streakline/internal/cli"
	"github.com/julianstephens/streakline/internal/logger"
	"github.com/julianstephens/streakline/internal/notifier"
	"github.com/julianstephens/streakline/internal/tracker"
)

type sender interface {
	Notify(ctx context.Context, title, text string) error
}

var newSender = func() sender { return notifier.New() }

// RemindCmd is meant to be run by cron or a systemd timer in the evening.
type RemindCmd struct {
	DryRun bool `help:"Print reminders to stdout instead of sending them."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.ReminderEnabled {
		if c.DryRun {
			fmt.Println("Reminders are disabled in settings.")
		}
		return nil
	}

	goals, err := ctx.Store.GetAllGoals(ctx.Ctx(), false, false)
	if err != nil {
		return err
	}
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	risky, err := svc.AtRisk(ctx.Ctx(), goals)
	if err != nil {
		// Goals that could be computed still get a reminder.
		logger.Warn("Some streaks could not be computed", "error", err)
	}
	if len(risky) == 0 {
		if c.DryRun {
			fmt.Println("No streaks at risk today.")
		}
		return nil
	}

	n := newSender()
	var sendErrs []error
	for _, r := range risky {
		title, text := reminderText(r)
		if c.DryRun {
			fmt.Printf("[DryRun] %s: %s\n", title, text)
			continue
		}
		if err := n.Notify(ctx.Ctx(), title, text); err != nil {
			if errors.Is(err, notifier.ErrTrayNotRunning) {
				return err
			}
			sendErrs = append(sendErrs, fmt.Errorf("%s: %w", r.GoalName, err))
		}
	}
	return errors.Join(sendErrs...)
}

func reminderText(r tracker.Report) (title, text string) {
	title = fmt.Sprintf("Keep your %s streak", r.GoalName)
	text = fmt.Sprintf("%d day(s) and counting. Log %s today to keep it going.", r.CurrentStreak, r.GoalName)
	return title, text
}
