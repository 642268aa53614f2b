package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/models"
)

const goalColumns = "id, name, frequency, created_at, archived_at, deleted_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (models.Goal, error) {
	var g models.Goal
	var frequency, createdAt string
	var archivedAt, deletedAt sql.NullString

	if err := row.Scan(&g.ID, &g.Name, &frequency, &createdAt, &archivedAt, &deletedAt); err != nil {
		return models.Goal{}, err
	}
	g.Frequency = constants.Frequency(frequency)

	var err error
	if g.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Goal{}, err
	}
	if g.ArchivedAt, err = parseNullTime("archived_at", archivedAt); err != nil {
		return models.Goal{}, err
	}
	if g.DeletedAt, err = parseNullTime("deleted_at", deletedAt); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

func (s *Store) AddGoal(ctx context.Context, goal models.Goal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.Name, string(goal.Frequency), formatTime(goal.CreatedAt),
		nullTime(goal.ArchivedAt), nullTime(goal.DeletedAt))
	if err != nil {
		return fmt.Errorf("failed to add goal %q: %w", goal.Name, err)
	}
	return nil
}

func (s *Store) GetGoal(ctx context.Context, id string) (models.Goal, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+goalColumns+`
		FROM goals WHERE id = ? AND deleted_at IS NULL`, id)

	g, err := scanGoal(row)
	if err != nil {
		return models.Goal{}, notFound(err, "goal "+id)
	}
	return g, nil
}

func (s *Store) GetGoalByName(ctx context.Context, name string) (models.Goal, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+goalColumns+`
		FROM goals WHERE name = ? COLLATE NOCASE AND deleted_at IS NULL`, name)

	g, err := scanGoal(row)
	if err != nil {
		return models.Goal{}, notFound(err, "goal "+name)
	}
	return g, nil
}

// getGoalAny returns a goal regardless of its deleted state.
func (s *Store) getGoalAny(ctx context.Context, id string) (models.Goal, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+goalColumns+" FROM goals WHERE id = ?", id)
	g, err := scanGoal(row)
	if err != nil {
		return models.Goal{}, notFound(err, "goal "+id)
	}
	return g, nil
}

func (s *Store) GetAllGoals(ctx context.Context, includeArchived, includeDeleted bool) ([]models.Goal, error) {
	query := "SELECT " + goalColumns + " FROM goals WHERE 1=1"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includeArchived {
		query += " AND archived_at IS NULL"
	}
	query += " ORDER BY created_at, name"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) UpdateGoal(ctx context.Context, goal models.Goal) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE goals
		SET name = ?, frequency = ?, archived_at = ?, deleted_at = ?
		WHERE id = ?`,
		goal.Name, string(goal.Frequency), nullTime(goal.ArchivedAt), nullTime(goal.DeletedAt), goal.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "goal "+goal.ID)
}

func (s *Store) ArchiveGoal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE goals SET archived_at = ? WHERE id = ? AND deleted_at IS NULL",
		formatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return requireRow(res, "goal "+id)
}

func (s *Store) UnarchiveGoal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE goals SET archived_at = NULL WHERE id = ? AND deleted_at IS NULL", id)
	if err != nil {
		return err
	}
	return requireRow(res, "goal "+id)
}

func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE goals SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		formatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return requireRow(res, "goal "+id)
}

// RestoreGoal clears deleted_at. It fails if a live goal already uses the name.
func (s *Store) RestoreGoal(ctx context.Context, id string) error {
	g, err := s.getGoalAny(ctx, id)
	if err != nil {
		return err
	}
	if g.DeletedAt == nil {
		return nil
	}
	if _, err := s.GetGoalByName(ctx, g.Name); err == nil {
		return fmt.Errorf("cannot restore goal %q: a goal with that name already exists", g.Name)
	}
	_, err = s.db.ExecContext(ctx, "UPDATE goals SET deleted_at = NULL WHERE id = ?", id)
	return err
}
