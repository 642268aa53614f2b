package constants

const (
	SettingTimezone        = "timezone"
	SettingReminderEnabled = "reminder_enabled"

	DefaultTimezone        = "Local" // Use system local timezone by default
	DefaultReminderEnabled = true
)
