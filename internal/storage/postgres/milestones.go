package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/models"
)

func scanMilestone(row rowScanner) (models.Milestone, error) {
	var m models.Milestone
	var start time.Time
	var deletedAt sql.NullTime
	if err := row.Scan(&m.ID, &m.Name, &start, &m.CreatedAt, &deletedAt); err != nil {
		return models.Milestone{}, err
	}
	m.StartDate = start.Format(constants.DateFormat)
	m.DeletedAt = timePtr(deletedAt)
	return m, nil
}

func (s *Store) AddMilestone(ctx context.Context, m models.Milestone) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO milestones (id, name, start_date, created_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Name, m.StartDate, m.CreatedAt.UTC(), nullTime(m.DeletedAt))
	if err != nil {
		return fmt.Errorf("failed to add milestone %q: %w", m.Name, err)
	}
	return nil
}

func (s *Store) GetMilestoneByName(ctx context.Context, name string) (models.Milestone, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, start_date, created_at, deleted_at
		FROM milestones WHERE lower(name) = lower($1) AND deleted_at IS NULL`, name)
	m, err := scanMilestone(row)
	if err != nil {
		return models.Milestone{}, notFound(err, "milestone "+name)
	}
	return m, nil
}

func (s *Store) GetAllMilestones(ctx context.Context) ([]models.Milestone, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, start_date, created_at, deleted_at
		FROM milestones WHERE deleted_at IS NULL
		ORDER BY start_date, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

func (s *Store) DeleteMilestone(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE milestones SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL", time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "milestone "+id)
}
