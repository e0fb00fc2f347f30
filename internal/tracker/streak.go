package tracker

import (
	"time"

	"github.com/lucasmonteiro/lingohabit/internal/models"
	"github.com/lucasmonteiro/lingohabit/internal/utils"
)

// UpdateStreak folds one day's final outcome into the streak state.
//
// Reaching the goal extends the streak when yesterday was the last completed
// day (or when no streak was running); any longer gap restarts at 1. Missing
// the goal resets the current streak to zero while longest and the last
// completed date are preserved.
//
// This must be called at most once per date, with the day's final outcome.
// AlreadyFinalized is the caller's guard for that.
func UpdateStreak(state models.StreakState, dateLocal string, reachedGoalToday bool, loc *time.Location) (models.StreakState, error) {
	if !reachedGoalToday {
		state.Current = 0
		state.LastFinalizedDate = dateLocal
		return state, nil
	}

	yesterday, err := utils.PreviousDate(dateLocal, loc)
	if err != nil {
		return state, err
	}

	if state.LastCompletedDate == yesterday || state.Current == 0 {
		state.Current++
	} else {
		// Gap of two or more days: restart, don't increment
		state.Current = 1
	}
	if state.Current > state.Longest {
		state.Longest = state.Current
	}
	state.LastCompletedDate = dateLocal
	state.LastFinalizedDate = dateLocal

	return state, nil
}

// AlreadyFinalized reports whether the streak has been updated for the given
// date. Calling UpdateStreak twice for one date with different outcomes would
// corrupt the streak, so callers check this first.
func AlreadyFinalized(state models.StreakState, dateLocal string) bool {
	return state.LastFinalizedDate == dateLocal
}
