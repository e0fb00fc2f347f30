package constants

import "time"

const (
	AppName            = "lingohabit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/lingohabit/lingohabit.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "lingohabit-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.lucasmonteiro.lingohabit"

	// Threshold ratios for progress notifications
	AlmostThreshold = 0.8
	GoalThreshold   = 1.0

	// Weekly summary fires Sundays at this local clock time
	WeeklySummaryTime = "20:00"

	// Env var holding a Postgres connection string
	DBConnectionEnv = "LINGOHABIT_DB_CONNECTION"
)

// Default study settings, applied on first load or when stored settings
// are missing/corrupt.
const (
	DefaultDailyGoalMinutes = 20
	DefaultQuietHoursStart  = "22:00"
	DefaultQuietHoursEnd    = "08:00"
	DefaultTimezone         = "America/Sao_Paulo"
)

// DefaultPreferredTimes returns the default reminder times.
func DefaultPreferredTimes() []string {
	return []string{"08:00", "19:00"}
}

// DefaultPreferredDays returns the default reminder days (Mon-Fri, 0=Sunday).
func DefaultPreferredDays() []int {
	return []int{1, 2, 3, 4, 5}
}
