// Package scheduler decides when reminder notifications fire. Evaluation is
// idempotent and re-entrant: a cycle that produces no reminders (off-day,
// goal already met) is simply re-run by the caller at the next check rather
// than committing to anything. Quiet hours gate delivery at fire time, not
// evaluation.
package scheduler

import (
	"time"

	"github.com/lucasmonteiro/lingohabit/internal/models"
	"github.com/lucasmonteiro/lingohabit/internal/utils"
)

// ReminderKind distinguishes the primary reminder (first preferred time)
// from secondary ones.
type ReminderKind int

const (
	ReminderPrimary ReminderKind = iota
	ReminderSecondary
)

// NotificationKind maps a reminder to its notification kind.
func (k ReminderKind) NotificationKind() models.NotificationKind {
	if k == ReminderPrimary {
		return models.KindReminderPrimary
	}
	return models.KindReminderSecondary
}

// ScheduledReminder is one computed future fire.
type ScheduledReminder struct {
	FireAt time.Time
	Kind   ReminderKind
}

type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// Evaluate computes the reminders to schedule for the current cycle.
//
// No reminders are produced when today is not a preferred day or when today's
// goal is already met. Quiet hours do not gate evaluation: running inside the
// window still yields the future fires (evaluating at 07:30 with quiet ending
// 08:00 must produce the 08:00 reminder). Quiet hours suppress delivery, and
// that check happens at fire time via QuietSuppressesFire. Each preferred
// time yields its next occurrence at or after now, rolling to the same time
// tomorrow when it has already passed.
func (s *Scheduler) Evaluate(settings models.StudySettings, progress models.DailyProgress, now time.Time) []ScheduledReminder {
	if !settings.SmartRemindersEnabled {
		return nil
	}

	if !settings.RemindsOn(int(now.Weekday())) {
		return nil
	}

	if progress.Reached100 {
		return nil
	}

	var reminders []ScheduledReminder
	for i, timeStr := range settings.PreferredTimes {
		fireAt, err := utils.AtTimeOfDay(now, timeStr)
		if err != nil {
			continue
		}
		if fireAt.Before(now) {
			fireAt = fireAt.AddDate(0, 0, 1)
		}

		kind := ReminderSecondary
		if i == 0 {
			kind = ReminderPrimary
		}
		reminders = append(reminders, ScheduledReminder{FireAt: fireAt, Kind: kind})
	}

	return reminders
}
