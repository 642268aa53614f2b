package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/streakline/internal/backup"
	"github.com/julianstephens/streakline/internal/cli"
	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/models"
	"github.com/julianstephens/streakline/internal/storage/sqlite"
	"github.com/julianstephens/streakline/internal/streak"
	"github.com/julianstephens/streakline/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*cli.Context) error
	needsDB bool
	// warnOnly checks report a warning instead of failing the run.
	warnOnly bool
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Goal integrity", run: checkGoalIntegrity, needsDB: true},
	{name: "Completion events", run: checkEventIntegrity, needsDB: true},
	{name: "Future-dated events", run: checkFutureEvents, needsDB: true, warnOnly: true},
	{name: "Milestone dates", run: checkMilestoneDates, needsDB: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}

		if c.name == "Database reachable" {
			dbReachable = err == nil
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return errors.New("database connection is nil")
		}
		var result int
		if err := db.QueryRowContext(ctx.Ctx(), "SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := runnerFor(ctx)
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := runnerFor(ctx)
	if err != nil {
		return err
	}
	status, err := runner.Status()
	if err != nil {
		return fmt.Errorf("failed to read schema status: %w", err)
	}
	if status.Current < status.Latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", status.Current, status.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}

	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("stored timezone %q is not a valid IANA zone", settings.Timezone)
	}
	if ctx.Config.Timezone != "" && !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("configured timezone %q is not a valid IANA zone", ctx.Config.Timezone)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}

func checkGoalIntegrity(ctx *cli.Context) error {
	goals, err := ctx.Store.GetAllGoals(ctx.Ctx(), true, true)
	if err != nil {
		return fmt.Errorf("failed to get goals: %w", err)
	}

	ids := make(map[string]bool, len(goals))
	for _, g := range goals {
		if ids[g.ID] {
			return fmt.Errorf("duplicate goal ID found: %s", g.ID)
		}
		ids[g.ID] = true
		if _, err := models.ParseFrequency(string(g.Frequency)); err != nil {
			return fmt.Errorf("goal %q: %w", g.Name, err)
		}
		if g.CreatedAt.IsZero() {
			return fmt.Errorf("goal %q has no creation time", g.Name)
		}
	}
	return nil
}

func checkEventIntegrity(ctx *cli.Context) error {
	goals, err := ctx.Store.GetAllGoals(ctx.Ctx(), true, true)
	if err != nil {
		return fmt.Errorf("failed to get goals: %w", err)
	}
	known := make(map[string]bool, len(goals))
	for _, g := range goals {
		known[g.ID] = true
	}

	events, err := ctx.Store.GetAllEvents(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get completion events: %w", err)
	}

	var orphaned, untimed int
	for _, e := range events {
		if !known[e.GoalID] {
			orphaned++
		}
		if e.LoggedAt.IsZero() {
			untimed++
		}
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d completion events referencing non-existent goals", orphaned)
	}
	if untimed > 0 {
		return fmt.Errorf("found %d completion events without a timestamp", untimed)
	}
	return nil
}

// checkFutureEvents only warns: such events are ignored by streak
// computation until their day arrives.
func checkFutureEvents(ctx *cli.Context) error {
	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	events, err := ctx.Store.GetAllEvents(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get completion events: %w", err)
	}

	today := streak.DayOf(ctx.Now(), loc)
	var future int
	for _, e := range events {
		if streak.DayOf(e.LoggedAt, loc).After(today) {
			future++
		}
	}
	if future > 0 {
		return fmt.Errorf("found %d completion events dated after today in %s; they are ignored until then", future, loc)
	}
	return nil
}

func checkMilestoneDates(ctx *cli.Context) error {
	milestones, err := ctx.Store.GetAllMilestones(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get milestones: %w", err)
	}
	for _, m := range milestones {
		if _, err := streak.ParseDay(m.StartDate); err != nil {
			return fmt.Errorf("milestone %q: %w", m.Name, err)
		}
	}
	return nil
}
