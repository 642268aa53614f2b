package postgres

import (
	"context"
	"fmt"

	"github.com/julianstephens/streakline/internal/models"
)

const eventColumns = "id, goal_id, logged_at, note, created_at"

func (s *Store) AppendEvent(ctx context.Context, event models.CompletionEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO completion_events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5)`,
		event.ID, event.GoalID, event.LoggedAt.UTC(), event.Note, event.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to append event for goal %s: %w", event.GoalID, err)
	}
	return nil
}

func (s *Store) ListEvents(ctx context.Context, goalID string) ([]models.CompletionEvent, error) {
	return s.queryEvents(ctx,
		"SELECT "+eventColumns+" FROM completion_events WHERE goal_id = $1 ORDER BY logged_at, id", goalID)
}

func (s *Store) GetAllEvents(ctx context.Context) ([]models.CompletionEvent, error) {
	return s.queryEvents(ctx,
		"SELECT "+eventColumns+" FROM completion_events ORDER BY goal_id, logged_at, id")
}

func (s *Store) CountEvents(ctx context.Context, goalID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM completion_events WHERE goal_id = $1", goalID).Scan(&n)
	return n, err
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...any) ([]models.CompletionEvent, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.CompletionEvent
	for rows.Next() {
		var e models.CompletionEvent
		if err := rows.Scan(&e.ID, &e.GoalID, &e.LoggedAt, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
