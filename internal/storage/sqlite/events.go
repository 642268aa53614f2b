package sqlite

import (
	"context"
	"fmt"

	"github.com/julianstephens/streakline/internal/models"
)

const eventColumns = "id, goal_id, logged_at, note, created_at"

func scanEvent(row rowScanner) (models.CompletionEvent, error) {
	var e models.CompletionEvent
	var loggedAt, createdAt string
	if err := row.Scan(&e.ID, &e.GoalID, &loggedAt, &e.Note, &createdAt); err != nil {
		return models.CompletionEvent{}, err
	}

	var err error
	if e.LoggedAt, err = parseTime("logged_at", loggedAt); err != nil {
		return models.CompletionEvent{}, err
	}
	if e.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.CompletionEvent{}, err
	}
	return e, nil
}

func (s *Store) AppendEvent(ctx context.Context, event models.CompletionEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO completion_events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.GoalID, formatTime(event.LoggedAt), event.Note, formatTime(event.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to append event for goal %s: %w", event.GoalID, err)
	}
	return nil
}

func (s *Store) ListEvents(ctx context.Context, goalID string) ([]models.CompletionEvent, error) {
	return s.queryEvents(ctx, `
		SELECT `+eventColumns+`
		FROM completion_events WHERE goal_id = ?
		ORDER BY logged_at, id`, goalID)
}

func (s *Store) GetAllEvents(ctx context.Context) ([]models.CompletionEvent, error) {
	return s.queryEvents(ctx, `
		SELECT `+eventColumns+`
		FROM completion_events
		ORDER BY goal_id, logged_at, id`)
}

func (s *Store) CountEvents(ctx context.Context, goalID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM completion_events WHERE goal_id = ?", goalID).Scan(&n)
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
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
