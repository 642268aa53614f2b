package system

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/streakline/internal/cli"
	"github.com/julianstephens/streakline/internal/config"
	"github.com/julianstephens/streakline/internal/models"
	"github.com/julianstephens/streakline/internal/storage/sqlite"
)

var testNow = time.Date(2025, time.January, 10, 18, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Timezone = "UTC"
	return cfg
}

// setupTestDB returns a context over an initialized SQLite store with the
// clock fixed at testNow.
func setupTestDB(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(context.Background(), store, testConfig(),
		cli.WithClock(func() time.Time { return testNow }))
	return ctx, store
}

func addGoal(t *testing.T, ctx *cli.Context, name string) models.Goal {
	t.Helper()
	goal, err := ctx.AddGoal(name, "daily")
	if err != nil {
		t.Fatalf("failed to add goal %q: %v", name, err)
	}
	return goal
}

// logDays appends one completion at noon UTC for each YYYY-MM-DD date.
func logDays(t *testing.T, ctx *cli.Context, goal models.Goal, dates ...string) {
	t.Helper()
	for i, d := range dates {
		day, err := time.Parse(time.DateOnly, d)
		if err != nil {
			t.Fatalf("bad date %q: %v", d, err)
		}
		event := models.CompletionEvent{
			ID:        goal.ID + "-" + d + "-" + string(rune('a'+i)),
			GoalID:    goal.ID,
			LoggedAt:  day.Add(12 * time.Hour),
			CreatedAt: testNow,
		}
		if err := ctx.Store.AppendEvent(ctx.Ctx(), event); err != nil {
			t.Fatalf("failed to append event: %v", err)
		}
	}
}
