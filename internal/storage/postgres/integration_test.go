package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/models"
	"github.com/julianstephens/streakline/internal/storage"
)

// TestStore_Integration tests PostgreSQL store with a real database
// Set POSTGRES_TEST_URL environment variable to run this test
// Example: POSTGRES_TEST_URL="postgres://streakline_user@localhost:5432/streakline_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	suffix := uuid.NewString()[:8]

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings(ctx)
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		if settings.Timezone == "" {
			t.Error("Expected a default timezone")
		}

		settings.Timezone = "Europe/Berlin"
		if err := store.SaveSettings(ctx, settings); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}

		updated, err := store.GetSettings(ctx)
		if err != nil {
			t.Fatalf("Failed to get updated settings: %v", err)
		}
		if updated.Timezone != "Europe/Berlin" {
			t.Errorf("Expected timezone Europe/Berlin, got %s", updated.Timezone)
		}
	})

	goal := models.Goal{
		ID:        uuid.NewString(),
		Name:      "pg-goal-" + suffix,
		Frequency: constants.FrequencyDaily,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	t.Run("Goals", func(t *testing.T) {
		if err := store.AddGoal(ctx, goal); err != nil {
			t.Fatalf("Failed to add goal: %v", err)
		}

		byName, err := store.GetGoalByName(ctx, goal.Name)
		if err != nil {
			t.Fatalf("Failed to get goal by name: %v", err)
		}
		if byName.ID != goal.ID {
			t.Errorf("Expected goal %s, got %s", goal.ID, byName.ID)
		}

		if err := store.ArchiveGoal(ctx, goal.ID); err != nil {
			t.Fatalf("Failed to archive goal: %v", err)
		}
		archived, err := store.GetGoal(ctx, goal.ID)
		if err != nil {
			t.Fatalf("Failed to get goal: %v", err)
		}
		if archived.ArchivedAt == nil {
			t.Error("Expected goal to be archived")
		}
		if err := store.UnarchiveGoal(ctx, goal.ID); err != nil {
			t.Fatalf("Failed to unarchive goal: %v", err)
		}
	})

	t.Run("Events", func(t *testing.T) {
		loggedAt := time.Date(2025, 1, 10, 7, 30, 0, 0, time.UTC)
		event := models.CompletionEvent{
			ID:        uuid.NewString(),
			GoalID:    goal.ID,
			LoggedAt:  loggedAt,
			Note:      "morning",
			CreatedAt: loggedAt,
		}
		if err := store.AppendEvent(ctx, event); err != nil {
			t.Fatalf("Failed to append event: %v", err)
		}

		events, err := store.ListEvents(ctx, goal.ID)
		if err != nil {
			t.Fatalf("Failed to list events: %v", err)
		}
		if len(events) != 1 || !events[0].LoggedAt.Equal(loggedAt) {
			t.Errorf("Unexpected events: %+v", events)
		}

		count, err := store.CountEvents(ctx, goal.ID)
		if err != nil {
			t.Fatalf("Failed to count events: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 event, got %d", count)
		}
	})

	t.Run("Milestones", func(t *testing.T) {
		m := models.Milestone{
			ID:        uuid.NewString(),
			Name:      "pg-milestone-" + suffix,
			StartDate: "2024-03-02",
			CreatedAt: time.Now().UTC(),
		}
		if err := store.AddMilestone(ctx, m); err != nil {
			t.Fatalf("Failed to add milestone: %v", err)
		}
		got, err := store.GetMilestoneByName(ctx, m.Name)
		if err != nil {
			t.Fatalf("Failed to get milestone: %v", err)
		}
		if got.StartDate != "2024-03-02" {
			t.Errorf("Expected start date 2024-03-02, got %s", got.StartDate)
		}
		if err := store.DeleteMilestone(ctx, m.ID); err != nil {
			t.Fatalf("Failed to delete milestone: %v", err)
		}
	})

	t.Run("DeleteGoal", func(t *testing.T) {
		if err := store.DeleteGoal(ctx, goal.ID); err != nil {
			t.Fatalf("Failed to delete goal: %v", err)
		}
		if _, err := store.GetGoal(ctx, goal.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
