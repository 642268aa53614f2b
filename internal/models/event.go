package models

import "time"

// CompletionEvent records that the activity tracked by a goal happened.
// Events are append-only: once stored they are never updated or removed.
type CompletionEvent struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goal_id"`
	LoggedAt  time.Time `json:"logged_at"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
