package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/streakline/internal/models"
)

// ErrNotFound is returned when a requested row does not exist or is soft-deleted.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Goals
	AddGoal(ctx context.Context, goal models.Goal) error
	GetGoal(ctx context.Context, id string) (models.Goal, error)
	// GetGoalByName matches case-insensitively and skips deleted goals.
	GetGoalByName(ctx context.Context, name string) (models.Goal, error)
	GetAllGoals(ctx context.Context, includeArchived, includeDeleted bool) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, goal models.Goal) error
	ArchiveGoal(ctx context.Context, id string) error
	UnarchiveGoal(ctx context.Context, id string) error
	DeleteGoal(ctx context.Context, id string) error
	RestoreGoal(ctx context.Context, id string) error

	// Completion events are append-only; there is no update or delete.
	AppendEvent(ctx context.Context, event models.CompletionEvent) error
	// ListEvents returns every event for the goal, oldest first.
	ListEvents(ctx context.Context, goalID string) ([]models.CompletionEvent, error)
	CountEvents(ctx context.Context, goalID string) (int, error)
	GetAllEvents(ctx context.Context) ([]models.CompletionEvent, error)

	// Milestones
	AddMilestone(ctx context.Context, milestone models.Milestone) error
	GetMilestoneByName(ctx context.Context, name string) (models.Milestone, error)
	GetAllMilestones(ctx context.Context) ([]models.Milestone, error)
	DeleteMilestone(ctx context.Context, id string) error

	// Utils
	GetConfigPath() string
}
