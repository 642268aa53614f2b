package constants

import "time"

// Frequency is the declared cadence of a goal.
type Frequency string

const (
	AppName            = "streakline"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/streakline/streakline.db"
	KeyringConfigValue = "keyring"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DateTimeFormat is accepted by `log --at` for local wall-clock input
	DateTimeFormat = "2006-01-02T15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "streakline-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "streakline-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.streakline"
	TrayAppExecutable      = "streakline-tray"

	// Cache constants
	DefaultCacheTTL = 30 * time.Second

	// MaxHistoryDays bounds the history strip to a year.
	MaxHistoryDays = 366

	// Goal frequencies. Only daily goals produce streaks.
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)
