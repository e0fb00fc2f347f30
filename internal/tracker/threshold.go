// Package tracker holds the pure progress-state logic: threshold latches and
// the day-over-day streak. Nothing here schedules timers; both functions are
// plain functions of their inputs and run whenever progress is updated.
package tracker

import (
	"github.com/lucasmonteiro/lingohabit/internal/constants"
	"github.com/lucasmonteiro/lingohabit/internal/models"
)

// Request asks the dispatcher for one notification and optionally for the
// cancellation of still-pending reminder timers.
type Request struct {
	Kind            models.NotificationKind
	CancelReminders bool
}

// OnProgressUpdate runs the 80%/100% threshold checks against the current
// progress and returns the updated record plus the notification requests that
// crossed a threshold for the first time today.
//
// The latches are monotonic for a given date: once a threshold notification
// has been emitted it is never emitted again until the day rolls over, no
// matter how often this runs. Reaching 100% also latches 80%, so a single
// large update cannot produce a late "almost there" notification.
func OnProgressUpdate(progress models.DailyProgress, settings models.StudySettings) (models.DailyProgress, []Request) {
	ratio := progress.Ratio()

	var requests []Request

	if ratio >= constants.AlmostThreshold && ratio < constants.GoalThreshold && !progress.Reached80 {
		progress.Reached80 = true
		if settings.SmartRemindersEnabled {
			requests = append(requests, Request{Kind: models.KindAlmost})
		}
	}

	if ratio >= constants.GoalThreshold && !progress.Reached100 {
		progress.Reached100 = true
		progress.Reached80 = true
		if settings.SmartRemindersEnabled {
			requests = append(requests, Request{Kind: models.KindGoalDone, CancelReminders: true})
		}
	}

	return progress, requests
}
