// Package utils holds the HH:MM and YYYY-MM-DD parsing helpers shared by the
// scheduler, tracker and validation packages.
package utils

import (
	"fmt"
	"time"

	"github.com/lucasmonteiro/lingohabit/internal/constants"
)

// LoadLocation resolves an IANA timezone name. Empty or "Local" means the
// system zone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseTimeToMinutes converts an HH:MM string to minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesOfDay is the minutes-from-midnight of an instant in its own location.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// AtTimeOfDay pins an HH:MM clock time onto day's calendar date, keeping
// day's location.
func AtTimeOfDay(day time.Time, timeStr string) (time.Time, error) {
	clock, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", timeStr, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}

// PreviousDate steps a YYYY-MM-DD date string back one calendar day in loc,
// so month and leap-year boundaries are handled by the time package.
func PreviousDate(dateStr string, loc *time.Location) (string, error) {
	d, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return midnight.AddDate(0, 0, -1).Format(constants.DateFormat), nil
}

// ValidateTimeFormat reports whether the string is a well-formed HH:MM time.
func ValidateTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// ValidateTimezone reports whether the timezone name resolves.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// FormatTimeRemaining renders a minute count as a short duration string.
func FormatTimeRemaining(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
}
