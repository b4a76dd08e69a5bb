package constants

import "time"

const (
	AppName            = "moodcast"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/moodcast/moodcast.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Environment variables
	EnvConfig       = "MOODCAST_CONFIG"
	EnvDebug        = "MOODCAST_DEBUG"
	EnvTimezone     = "MOODCAST_TIMEZONE"
	EnvDBConnection = "MOODCAST_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "moodcast-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "daylit-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.daylit"
	TrayProcessName        = "daylit-tray"
)
