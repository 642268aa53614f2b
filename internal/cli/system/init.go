package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/streakline/internal/cli"
	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/storage"
	"github.com/julianstephens/streakline/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

// reset deletes the SQLite file. PostgreSQL databases are never dropped.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force is only supported for SQLite storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		// Close first to release the file handle
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyData copies everything from the source store into the freshly
// initialized destination, keeping ids and timestamps.
func (c *InitCmd) copyData(ctx *cli.Context) error {
	source, err := cli.OpenStore(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	return copyStore(ctx, source, ctx.Store)
}

func copyStore(ctx *cli.Context, src, dst storage.Provider) error {
	c := ctx.Ctx()

	fmt.Println("  Copying settings...")
	settings, err := src.GetSettings(c)
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(c, settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Copying goals...")
	goals, err := src.GetAllGoals(c, true, true)
	if err != nil {
		return fmt.Errorf("failed to get goals from source: %w", err)
	}
	for _, goal := range goals {
		if err := dst.AddGoal(c, goal); err != nil {
			return fmt.Errorf("failed to add goal %s: %w", goal.ID, err)
		}
	}
	fmt.Printf("    Copied %d goals\n", len(goals))

	fmt.Println("  Copying completion events...")
	events, err := src.GetAllEvents(c)
	if err != nil {
		return fmt.Errorf("failed to get completion events from source: %w", err)
	}
	for _, event := range events {
		if err := dst.AppendEvent(c, event); err != nil {
			return fmt.Errorf("failed to add completion event %s: %w", event.ID, err)
		}
	}
	fmt.Printf("    Copied %d completion events\n", len(events))

	fmt.Println("  Copying milestones...")
	milestones, err := src.GetAllMilestones(c)
	if err != nil {
		return fmt.Errorf("failed to get milestones from source: %w", err)
	}
	for _, m := range milestones {
		if err := dst.AddMilestone(c, m); err != nil {
			return fmt.Errorf("failed to add milestone %s: %w", m.ID, err)
		}
	}
	fmt.Printf("    Copied %d milestones\n", len(milestones))

	return nil
}
