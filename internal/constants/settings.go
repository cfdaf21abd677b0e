package constants

const (
	SettingTimezone       = "timezone"
	SettingSessionMinutes = "session_minutes"

	DefaultTimezone = "Local" // system local timezone
	// DefaultSessionMinutes is the worked time credited per resolved session.
	DefaultSessionMinutes = 60
)
