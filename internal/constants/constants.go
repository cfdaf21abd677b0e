package constants

const (
	AppName            = "gymsched"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/gymsched/gymsched.db"
	Version            = "v0.3.0"

	// EnvDBConnection names the environment variable holding a PostgreSQL connection string.
	EnvDBConnection = "GYMSCHED_DB_CONNECTION"

	// DateFormat is the canonical date key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the session time-of-day format (HH:MM)
	TimeFormat = "15:04"

	// MonthFormat is the report month token format (YYYY-MM)
	MonthFormat = "2006-01"

	// Billing periods run from PeriodStartDay of the previous month to PeriodEndDay
	// of the closing month.
	PeriodStartDay = 26
	PeriodEndDay   = 25

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "gymsched-"
	BackupFileSuffix = ".db"
)
