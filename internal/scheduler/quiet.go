package scheduler

import (
	"time"

	"github.com/lucasmonteiro/lingohabit/internal/utils"
)

// IsQuietHours reports whether the time-of-day of now falls inside the quiet
// window [start, end]. Both bounds are inclusive and comparison is
// date-independent. When end < start the window crosses midnight: quiet iff
// now >= start or now <= end.
//
// Malformed time strings are a configuration-validation concern handled before
// this call; they are treated here as an empty window.
func IsQuietHours(now time.Time, start, end string) bool {
	startMin, err := utils.ParseTimeToMinutes(start)
	if err != nil {
		return false
	}
	endMin, err := utils.ParseTimeToMinutes(end)
	if err != nil {
		return false
	}

	nowMin := utils.MinutesOfDay(now)

	if endMin < startMin {
		return nowMin >= startMin || nowMin <= endMin
	}
	return nowMin >= startMin && nowMin <= endMin
}

// QuietSuppressesFire reports whether a reminder firing now, scheduled for
// fireAt, should be suppressed by quiet hours. The quiet-end bound is
// inclusive for IsQuietHours, but a fire landing exactly on that minute at
// its own scheduled time is allowed through: the window end is the moment
// reminders become permissible again, and the default settings place the
// primary reminder (08:00) right on the default quiet end (08:00).
func QuietSuppressesFire(now, fireAt time.Time, start, end string) bool {
	if !IsQuietHours(now, start, end) {
		return false
	}
	endMin, err := utils.ParseTimeToMinutes(end)
	if err != nil {
		return false
	}
	nowMin := utils.MinutesOfDay(now)
	if nowMin == endMin && nowMin == utils.MinutesOfDay(fireAt) {
		return false
	}
	return true
}
