package system

import (
	"fmt"

	"github.com/julianstephens/streakline/internal/cli"
	"github.com/julianstephens/streakline/internal/migration"
)

// migrator is implemented by both SQL stores.
type migrator interface {
	Migrator() (*migration.Runner, error)
}

func runnerFor(ctx *cli.Context) (*migration.Runner, error) {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil, fmt.Errorf("storage backend does not support migrations")
	}
	return m.Migrator()
}

type MigrateCmd struct {
	Status bool `help:"Show schema versions without applying anything."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	runner, err := runnerFor(ctx)
	if err != nil {
		return err
	}

	if c.Status {
		status, err := runner.Status()
		if err != nil {
			return fmt.Errorf("failed to read schema status: %w", err)
		}
		fmt.Printf("Current version: %d\n", status.Current)
		fmt.Printf("Latest version:  %d\n", status.Latest)
		if status.UpToDate() {
			fmt.Println("Database is up to date.")
		} else {
			fmt.Printf("%d migration(s) pending.\n", len(status.Pending))
		}
		return nil
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
