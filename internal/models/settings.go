package models

import "github.com/lucasmonteiro/lingohabit/internal/constants"

// StudySettings holds the user's study-time goal and reminder preferences
type StudySettings struct {
	DailyGoalMinutes      int      `json:"daily_goal_minutes"`      // daily study goal in minutes
	PreferredTimes        []string `json:"preferred_times"`         // reminder times, HH:MM, index 0 is the primary reminder
	PreferredDays         []int    `json:"preferred_days"`          // weekdays to remind on, 0=Sunday..6=Saturday
	QuietHoursStart       string   `json:"quiet_hours_start"`       // start of the quiet window, HH:MM
	QuietHoursEnd         string   `json:"quiet_hours_end"`         // end of the quiet window, HH:MM (may cross midnight)
	SmartRemindersEnabled bool     `json:"smart_reminders_enabled"` // whether reminder and threshold notifications fire at all
	Timezone              string   `json:"timezone"`                // IANA timezone name (e.g. "America/Sao_Paulo")
}

// DefaultStudySettings returns the settings applied on first load or when
// stored settings cannot be decoded.
func DefaultStudySettings() StudySettings {
	return StudySettings{
		DailyGoalMinutes:      constants.DefaultDailyGoalMinutes,
		PreferredTimes:        constants.DefaultPreferredTimes(),
		PreferredDays:         constants.DefaultPreferredDays(),
		QuietHoursStart:       constants.DefaultQuietHoursStart,
		QuietHoursEnd:         constants.DefaultQuietHoursEnd,
		SmartRemindersEnabled: true,
		Timezone:              constants.DefaultTimezone,
	}
}

// WeeklyGoalMinutes returns the weekly goal derived from the daily goal and
// the number of preferred days.
func (s StudySettings) WeeklyGoalMinutes() int {
	return s.DailyGoalMinutes * len(s.PreferredDays)
}

// RemindsOn reports whether the given weekday (0=Sunday) is a preferred day.
func (s StudySettings) RemindsOn(weekday int) bool {
	for _, d := range s.PreferredDays {
		if d == weekday {
			return true
		}
	}
	return false
}
