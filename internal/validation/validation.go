package validation

import (
	"errors"
	"fmt"

	"github.com/lucasmonteiro/lingohabit/internal/models"
	"github.com/lucasmonteiro/lingohabit/internal/utils"
)

// ErrConfigInvalid marks settings that fail validation. It is surfaced to the
// settings-editing caller rather than silently coerced.
var ErrConfigInvalid = errors.New("invalid configuration")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfigInvalid, fmt.Sprintf(format, args...))
}

// ValidateSettings checks a StudySettings value against the configuration
// invariants. It returns the first violation found, wrapped in ErrConfigInvalid.
func ValidateSettings(s models.StudySettings) error {
	if s.DailyGoalMinutes <= 0 {
		return invalidf("daily goal must be a positive number of minutes, got %d", s.DailyGoalMinutes)
	}

	if len(s.PreferredTimes) < 1 || len(s.PreferredTimes) > 3 {
		return invalidf("preferred times must have 1-3 entries, got %d", len(s.PreferredTimes))
	}
	for _, t := range s.PreferredTimes {
		if !utils.ValidateTimeFormat(t) {
			return invalidf("invalid preferred time %q (expected HH:MM)", t)
		}
	}

	if s.SmartRemindersEnabled && len(s.PreferredDays) == 0 {
		return invalidf("preferred days cannot be empty while reminders are enabled")
	}
	seen := make(map[int]bool)
	for _, d := range s.PreferredDays {
		if d < 0 || d > 6 {
			return invalidf("invalid preferred day %d (expected 0-6, 0=Sunday)", d)
		}
		if seen[d] {
			return invalidf("duplicate preferred day %d", d)
		}
		seen[d] = true
	}

	if !utils.ValidateTimeFormat(s.QuietHoursStart) {
		return invalidf("invalid quiet hours start %q (expected HH:MM)", s.QuietHoursStart)
	}
	if !utils.ValidateTimeFormat(s.QuietHoursEnd) {
		return invalidf("invalid quiet hours end %q (expected HH:MM)", s.QuietHoursEnd)
	}

	if !utils.ValidateTimezone(s.Timezone) {
		return invalidf("unknown timezone %q", s.Timezone)
	}

	return nil
}
