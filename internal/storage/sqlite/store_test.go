package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/models"
	"github.com/julianstephens/streakline/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newGoal(name string) models.Goal {
	return models.Goal{
		ID:        uuid.NewString(),
		Name:      name,
		Frequency: constants.FrequencyDaily,
		CreatedAt: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestInitWritesDefaultSettings(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	settings, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("expected default settings, got %+v", settings)
	}

	for _, table := range []string{"goals", "completion_events", "milestones", "settings", "schema_version"} {
		exists, err := store.TableExists(table)
		if err != nil {
			t.Fatalf("TableExists(%s) failed: %v", table, err)
		}
		if !exists {
			t.Errorf("expected table %s to exist", table)
		}
	}
}

func TestReinitKeepsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	want := models.Settings{Timezone: "America/New_York", ReminderEnabled: false}
	if err := store.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	store.Close()

	store = NewStore(path)
	defer store.Close()
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	got, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != want {
		t.Errorf("settings changed across init: got %+v, want %+v", got, want)
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestLoadAfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	store.Close()

	store = NewStore(path)
	defer store.Close()
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.GetDB() == nil {
		t.Error("expected database handle after Load")
	}
}

func TestGoalLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	goal := newGoal("Meditate")
	if err := store.AddGoal(ctx, goal); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	t.Run("get by id", func(t *testing.T) {
		got, err := store.GetGoal(ctx, goal.ID)
		if err != nil {
			t.Fatalf("GetGoal failed: %v", err)
		}
		if got.Name != "Meditate" || got.Frequency != constants.FrequencyDaily {
			t.Errorf("unexpected goal: %+v", got)
		}
		if !got.CreatedAt.Equal(goal.CreatedAt) {
			t.Errorf("created_at = %v, want %v", got.CreatedAt, goal.CreatedAt)
		}
	})

	t.Run("get by name is case-insensitive", func(t *testing.T) {
		got, err := store.GetGoalByName(ctx, "meditate")
		if err != nil {
			t.Fatalf("GetGoalByName failed: %v", err)
		}
		if got.ID != goal.ID {
			t.Errorf("got goal %s, want %s", got.ID, goal.ID)
		}
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		if err := store.AddGoal(ctx, newGoal("MEDITATE")); err == nil {
			t.Error("expected duplicate name to fail")
		}
	})

	t.Run("archive hides from default list", func(t *testing.T) {
		if err := store.ArchiveGoal(ctx, goal.ID); err != nil {
			t.Fatalf("ArchiveGoal failed: %v", err)
		}
		goals, err := store.GetAllGoals(ctx, false, false)
		if err != nil {
			t.Fatalf("GetAllGoals failed: %v", err)
		}
		if len(goals) != 0 {
			t.Errorf("expected no active goals, got %d", len(goals))
		}
		goals, err = store.GetAllGoals(ctx, true, false)
		if err != nil {
			t.Fatalf("GetAllGoals failed: %v", err)
		}
		if len(goals) != 1 || goals[0].ArchivedAt == nil {
			t.Errorf("expected one archived goal, got %+v", goals)
		}
		if err := store.UnarchiveGoal(ctx, goal.ID); err != nil {
			t.Fatalf("UnarchiveGoal failed: %v", err)
		}
	})

	t.Run("delete and restore", func(t *testing.T) {
		if err := store.DeleteGoal(ctx, goal.ID); err != nil {
			t.Fatalf("DeleteGoal failed: %v", err)
		}
		if _, err := store.GetGoal(ctx, goal.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for deleted goal, got %v", err)
		}
		goals, err := store.GetAllGoals(ctx, true, true)
		if err != nil {
			t.Fatalf("GetAllGoals failed: %v", err)
		}
		if len(goals) != 1 || goals[0].DeletedAt == nil {
			t.Errorf("expected deleted goal in full listing, got %+v", goals)
		}
		if err := store.RestoreGoal(ctx, goal.ID); err != nil {
			t.Fatalf("RestoreGoal failed: %v", err)
		}
		if _, err := store.GetGoal(ctx, goal.ID); err != nil {
			t.Errorf("GetGoal after restore failed: %v", err)
		}
	})

	t.Run("restore blocked by live name", func(t *testing.T) {
		if err := store.DeleteGoal(ctx, goal.ID); err != nil {
			t.Fatalf("DeleteGoal failed: %v", err)
		}
		if err := store.AddGoal(ctx, newGoal("Meditate")); err != nil {
			t.Fatalf("AddGoal replacement failed: %v", err)
		}
		if err := store.RestoreGoal(ctx, goal.ID); err == nil {
			t.Error("expected restore to fail while the name is taken")
		}
	})

	t.Run("update", func(t *testing.T) {
		other := newGoal("Read")
		if err := store.AddGoal(ctx, other); err != nil {
			t.Fatalf("AddGoal failed: %v", err)
		}
		other.Frequency = constants.FrequencyWeekly
		if err := store.UpdateGoal(ctx, other); err != nil {
			t.Fatalf("UpdateGoal failed: %v", err)
		}
		got, err := store.GetGoal(ctx, other.ID)
		if err != nil {
			t.Fatalf("GetGoal failed: %v", err)
		}
		if got.Frequency != constants.FrequencyWeekly {
			t.Errorf("frequency = %s, want weekly", got.Frequency)
		}
	})

	t.Run("missing ids", func(t *testing.T) {
		if err := store.ArchiveGoal(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("ArchiveGoal: expected ErrNotFound, got %v", err)
		}
		if err := store.UpdateGoal(ctx, newGoal("ghost")); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateGoal: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetGoalByName(ctx, "ghost"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGoalByName: expected ErrNotFound, got %v", err)
		}
	})
}

func TestEvents(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	goal := newGoal("Run")
	other := newGoal("Swim")
	for _, g := range []models.Goal{goal, other} {
		if err := store.AddGoal(ctx, g); err != nil {
			t.Fatalf("AddGoal failed: %v", err)
		}
	}

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	logged := []time.Time{
		time.Date(2025, 1, 9, 23, 30, 0, 123456789, tokyo),
		time.Date(2025, 1, 8, 7, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 10, 7, 0, 0, 0, time.UTC),
	}
	for i, ts := range logged {
		e := models.CompletionEvent{
			ID:        uuid.NewString(),
			GoalID:    goal.ID,
			LoggedAt:  ts,
			Note:      []string{"", "easy", "long"}[i],
			CreatedAt: ts,
		}
		if err := store.AppendEvent(ctx, e); err != nil {
			t.Fatalf("AppendEvent failed: %v", err)
		}
	}
	if err := store.AppendEvent(ctx, models.CompletionEvent{
		ID: uuid.NewString(), GoalID: other.ID, LoggedAt: logged[0], CreatedAt: logged[0],
	}); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}

	events, err := store.ListEvents(ctx, goal.ID)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].LoggedAt.Before(events[i-1].LoggedAt) {
			t.Errorf("events not in ascending order: %v before %v", events[i].LoggedAt, events[i-1].LoggedAt)
		}
	}
	// 2025-01-09 23:30 JST is 14:30 UTC, so it sorts between the two UTC events.
	if !events[1].LoggedAt.Equal(logged[0]) {
		t.Errorf("instant not preserved: got %v, want %v", events[1].LoggedAt, logged[0])
	}
	if events[0].Note != "easy" {
		t.Errorf("note = %q, want easy", events[0].Note)
	}

	count, err := store.CountEvents(ctx, goal.ID)
	if err != nil {
		t.Fatalf("CountEvents failed: %v", err)
	}
	if count != 3 {
		t.Errorf("CountEvents = %d, want 3", count)
	}

	all, err := store.GetAllEvents(ctx)
	if err != nil {
		t.Fatalf("GetAllEvents failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("GetAllEvents returned %d events, want 4", len(all))
	}

	none, err := store.ListEvents(ctx, "unknown")
	if err != nil {
		t.Fatalf("ListEvents(unknown) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no events for unknown goal, got %d", len(none))
	}
}

func TestAppendEventRequiresGoal(t *testing.T) {
	store := setupTestStore(t)
	err := store.AppendEvent(context.Background(), models.CompletionEvent{
		ID:        uuid.NewString(),
		GoalID:    "missing",
		LoggedAt:  time.Now(),
		CreatedAt: time.Now(),
	})
	if err == nil {
		t.Fatal("expected foreign key violation for unknown goal")
	}
}

func TestMilestones(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	m := models.Milestone{
		ID:        uuid.NewString(),
		Name:      "Sober",
		StartDate: "2024-03-02",
		CreatedAt: time.Now(),
	}
	if err := store.AddMilestone(ctx, m); err != nil {
		t.Fatalf("AddMilestone failed: %v", err)
	}

	got, err := store.GetMilestoneByName(ctx, "sober")
	if err != nil {
		t.Fatalf("GetMilestoneByName failed: %v", err)
	}
	if got.StartDate != "2024-03-02" {
		t.Errorf("start date = %s", got.StartDate)
	}

	all, err := store.GetAllMilestones(ctx)
	if err != nil {
		t.Fatalf("GetAllMilestones failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 milestone, got %d", len(all))
	}

	if err := store.DeleteMilestone(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMilestone failed: %v", err)
	}
	if _, err := store.GetMilestoneByName(ctx, "Sober"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteMilestone(ctx, m.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}
