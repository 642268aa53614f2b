package models

import "time"

// Milestone tracks a continuous run that started on a given day, e.g. a
// sobriety date. It has no completion events.
type Milestone struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartDate string     `json:"start_date"` // YYYY-MM-DD format
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
