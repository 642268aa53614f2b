package models

// Settings represents per-database settings
type Settings struct {
	Timezone        string `json:"timezone"`         // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	ReminderEnabled bool   `json:"reminder_enabled"` // whether `remind` sends at-risk notifications
}
