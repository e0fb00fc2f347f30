package models

import "time"

// DailyProgress is one calendar day's study record. A fresh record is created
// on the first study activity of each local day; past days are retained
// read-only, keyed by date.
type DailyProgress struct {
	DateLocal   string `json:"date_local"`   // YYYY-MM-DD in the configured timezone
	MinutesDone int    `json:"minutes_done"` // minutes studied so far today
	GoalMinutes int    `json:"goal_minutes"` // goal snapshot at record creation
	Reached80   bool   `json:"reached_80"`   // latch: 80% of goal crossed
	Reached100  bool   `json:"reached_100"`  // latch: goal reached
}

// NewDailyProgress creates an empty progress record for the given local date.
func NewDailyProgress(dateLocal string, goalMinutes int) DailyProgress {
	return DailyProgress{
		DateLocal:   dateLocal,
		GoalMinutes: goalMinutes,
	}
}

// Ratio returns minutes done as a fraction of the goal.
func (p DailyProgress) Ratio() float64 {
	if p.GoalMinutes <= 0 {
		return 0
	}
	return float64(p.MinutesDone) / float64(p.GoalMinutes)
}

// StudySession is an immutable record of one completed timer run.
type StudySession struct {
	ID              string    `json:"id"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	DurationMinutes int       `json:"duration_minutes"`
	WasManual       bool      `json:"was_manual"`
	Device          string    `json:"device"`
}

// SessionDuration returns the whole minutes between start and end.
func SessionDuration(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}
