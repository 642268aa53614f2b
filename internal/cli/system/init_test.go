package system

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/streakline/internal/cli"
	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/models"
	"github.com/julianstephens/streakline/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	ctx := cli.NewContext(context.Background(), store, testConfig(),
		cli.WithClock(func() time.Time { return testNow }))
	return ctx, dbPath
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Errorf("init command failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _ := setupTestInitDB(t)
	cmd := &InitCmd{}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	goal := addGoal(t, ctx, "Run")

	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
	if _, err := ctx.Store.GetGoal(ctx.Ctx(), goal.ID); err != nil {
		t.Errorf("goal lost after re-init: %v", err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		t.Fatalf("failed to get initial settings: %v", err)
	}
	settings.Timezone = "Asia/Tokyo"
	if err := ctx.Store.SaveSettings(ctx.Ctx(), settings); err != nil {
		t.Fatalf("failed to save modified settings: %v", err)
	}
	addGoal(t, ctx, "Meditate")

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not recreated after force")
	}

	newSettings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		t.Fatalf("failed to get settings after force: %v", err)
	}
	if newSettings.Timezone != constants.DefaultTimezone {
		t.Errorf("expected default timezone %q, got %q", constants.DefaultTimezone, newSettings.Timezone)
	}

	goals, err := ctx.Store.GetAllGoals(ctx.Ctx(), true, true)
	if err != nil {
		t.Fatalf("failed to list goals: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("expected no goals after force, got %d", len(goals))
	}
}

func TestInitCmd_ForceWithNonExistentDatabase(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("database file should not exist initially")
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force on non-existent database failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created")
	}
}

func TestInitCmd_ForceRefusesSameSource(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}

	err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx)
	if err == nil {
		t.Fatal("expected error when source and destination are the same")
	}
	if _, statErr := os.Stat(dbPath); statErr != nil {
		t.Errorf("database should survive a refused force: %v", statErr)
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	srcCtx, srcStore := setupTestDB(t)

	settings, err := srcCtx.Store.GetSettings(srcCtx.Ctx())
	if err != nil {
		t.Fatalf("failed to get source settings: %v", err)
	}
	settings.Timezone = "Europe/Berlin"
	if err := srcCtx.Store.SaveSettings(srcCtx.Ctx(), settings); err != nil {
		t.Fatalf("failed to save source settings: %v", err)
	}

	run := addGoal(t, srcCtx, "Run")
	logDays(t, srcCtx, run, "2025-01-08", "2025-01-09")
	read := addGoal(t, srcCtx, "Read")
	if err := srcCtx.Store.DeleteGoal(srcCtx.Ctx(), read.ID); err != nil {
		t.Fatalf("failed to delete goal: %v", err)
	}
	if err := srcCtx.Store.AddMilestone(srcCtx.Ctx(), models.Milestone{
		ID: "m1", Name: "Sober", StartDate: "2024-03-02", CreatedAt: testNow,
	}); err != nil {
		t.Fatalf("failed to add milestone: %v", err)
	}
	if err := srcStore.Close(); err != nil {
		t.Fatalf("failed to close source: %v", err)
	}

	dst, _ := setupTestInitDB(t)
	if err := (&InitCmd{Source: srcStore.GetConfigPath()}).Run(dst); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	gotSettings, err := dst.Store.GetSettings(dst.Ctx())
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if gotSettings.Timezone != "Europe/Berlin" {
		t.Errorf("timezone = %q, want Europe/Berlin", gotSettings.Timezone)
	}

	goals, err := dst.Store.GetAllGoals(dst.Ctx(), true, true)
	if err != nil {
		t.Fatalf("failed to list goals: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals (one deleted), got %d", len(goals))
	}

	n, err := dst.Store.CountEvents(dst.Ctx(), run.ID)
	if err != nil {
		t.Fatalf("failed to count events: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 events for %s, got %d", run.Name, n)
	}

	if _, err := dst.Store.GetMilestoneByName(dst.Ctx(), "Sober"); err != nil {
		t.Errorf("milestone not copied: %v", err)
	}
}
