package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/logger"
	"github.com/julianstephens/streakline/internal/models"
	"github.com/julianstephens/streakline/internal/tracker"
)

type StreakCmd struct {
	Goal string `arg:"" optional:"" help:"Goal name (default: every active goal)."`
	JSON bool   `name:"json" help:"Print reports as JSON."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	var goals []models.Goal
	if c.Goal != "" {
		goal, err := ctx.FindGoal(c.Goal)
		if err != nil {
			return err
		}
		goals = []models.Goal{goal}
	} else {
		all, err := ctx.Store.GetAllGoals(ctx.Ctx(), false, false)
		if err != nil {
			return err
		}
		goals = all
	}

	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	// Per-goal failures are carried in the reports.
	reports, err := svc.Streaks(ctx.Ctx(), goals)
	if err != nil {
		logger.Warn("Some streaks could not be computed", "error", err)
	}

	if c.JSON {
		return writeReportsJSON(os.Stdout, reports)
	}

	if len(reports) == 0 {
		fmt.Println("No goals found.")
		return nil
	}
	for _, r := range reports {
		fmt.Println(FormatReport(r))
	}

	var unavailable int
	for _, r := range reports {
		if r.Status == tracker.StatusUnavailable {
			unavailable++
		}
	}
	if unavailable == len(reports) {
		return errors.New("streaks are unavailable: could not read completion events")
	}
	return nil
}

func writeReportsJSON(w io.Writer, reports []tracker.Report) error {
	if reports == nil {
		reports = []tracker.Report{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("failed to marshal reports: %w", err)
	}
	return nil
}

// FormatReport renders one report as a single line.
func FormatReport(r tracker.Report) string {
	switch r.Status {
	case tracker.StatusUnsupported:
		return fmt.Sprintf("%s: streak unavailable (%s goals are not tracked as streaks)", r.GoalName, r.Frequency)
	case tracker.StatusUnavailable:
		return fmt.Sprintf("%s: streak unavailable (could not read completion events)", r.GoalName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d day(s) current, %d best, %d total", r.GoalName, r.CurrentStreak, r.BestStreak, r.TotalDays)
	switch {
	case r.ActiveToday:
		b.WriteString(" ✓ done today")
	case r.AtRisk():
		b.WriteString(" ⚠ log today to keep it")
	case r.LastLogged != nil:
		fmt.Fprintf(&b, " (last %s)", r.LastLogged)
	}
	if r.Stale {
		fmt.Fprintf(&b, " [stale since %s]", r.ComputedAt.Format("15:04:05"))
	}
	return b.String()
}

type HistoryCmd struct {
	Goal string `arg:"" help:"Goal name."`
	Days int    `help:"Number of days to show (at most 366)." default:"14"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if c.Days < 1 || c.Days > constants.MaxHistoryDays {
		return fmt.Errorf("--days must be between 1 and %d, got %d", constants.MaxHistoryDays, c.Days)
	}

	goal, err := ctx.FindGoal(c.Goal)
	if err != nil {
		return err
	}

	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	marks, err := svc.History(ctx.Ctx(), goal, c.Days)
	if err != nil {
		return err
	}

	fmt.Printf("%s (last %d days):\n\n", goal.Name, c.Days)
	fmt.Println(RenderHistory(marks))
	return nil
}

// RenderHistory draws a two-row calendar strip: dates on top, x for a logged
// day and . for a gap underneath.
func RenderHistory(marks []tracker.DayMark) string {
	var header, row strings.Builder
	for _, m := range marks {
		fmt.Fprintf(&header, " %5s", m.Day.In(time.UTC).Format("01/02"))
		if m.Logged {
			row.WriteString("   x  ")
		} else {
			row.WriteString("   .  ")
		}
	}
	return header.String() + "\n" + row.String()
}
