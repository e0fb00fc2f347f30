package models

import (
	"testing"
	"time"
)

func TestRatio(t *testing.T) {
	cases := []struct {
		done, goal int
		want       float64
	}{
		{0, 20, 0},
		{16, 20, 0.8},
		{20, 20, 1.0},
		{30, 20, 1.5},
		{10, 0, 0}, // zero goal never divides
		{10, -5, 0},
	}

	for _, tc := range cases {
		p := DailyProgress{MinutesDone: tc.done, GoalMinutes: tc.goal}
		if got := p.Ratio(); got != tc.want {
			t.Errorf("Ratio(%d/%d) = %v, want %v", tc.done, tc.goal, got, tc.want)
		}
	}
}

func TestSessionDuration(t *testing.T) {
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

	if got := SessionDuration(start, start.Add(25*time.Minute)); got != 25 {
		t.Errorf("SessionDuration = %d, want 25", got)
	}
	// Partial minutes truncate
	if got := SessionDuration(start, start.Add(90*time.Second)); got != 1 {
		t.Errorf("SessionDuration = %d, want 1", got)
	}
	// End before start is invalid input, not a negative duration
	if got := SessionDuration(start, start.Add(-time.Minute)); got != 0 {
		t.Errorf("SessionDuration = %d, want 0", got)
	}
}

func TestWeeklyGoalMinutes(t *testing.T) {
	s := DefaultStudySettings()
	if got := s.WeeklyGoalMinutes(); got != 100 {
		t.Errorf("WeeklyGoalMinutes = %d, want 100 for the defaults", got)
	}

	s.PreferredDays = []int{0, 1, 2, 3, 4, 5, 6}
	s.DailyGoalMinutes = 30
	if got := s.WeeklyGoalMinutes(); got != 210 {
		t.Errorf("WeeklyGoalMinutes = %d, want 210", got)
	}
}

func TestRemindsOn(t *testing.T) {
	s := DefaultStudySettings() // Mon-Fri
	if !s.RemindsOn(1) {
		t.Error("Monday should be a preferred day by default")
	}
	if s.RemindsOn(0) {
		t.Error("Sunday should not be a preferred day by default")
	}
}
