package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lucasmonteiro/lingohabit/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "lingohabit.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_InitSeedsDefaults(t *testing.T) {
	s := newTestSQLiteStore(t)

	settings, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	want := models.DefaultStudySettings()
	if settings.DailyGoalMinutes != want.DailyGoalMinutes {
		t.Errorf("DailyGoalMinutes = %d, want %d", settings.DailyGoalMinutes, want.DailyGoalMinutes)
	}
	if len(settings.PreferredTimes) != len(want.PreferredTimes) {
		t.Errorf("PreferredTimes = %v, want %v", settings.PreferredTimes, want.PreferredTimes)
	}
}

func TestSQLiteStore_LoadWithoutInit(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := s.Load(); err == nil {
		t.Error("Load should fail when the database file does not exist")
	}
}

func TestSQLiteStore_SettingsRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)

	settings := models.DefaultStudySettings()
	settings.DailyGoalMinutes = 45
	settings.PreferredTimes = []string{"07:30", "12:00", "21:00"}
	settings.PreferredDays = []int{0, 6}
	settings.SmartRemindersEnabled = false
	if err := s.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.DailyGoalMinutes != 45 {
		t.Errorf("DailyGoalMinutes = %d, want 45", got.DailyGoalMinutes)
	}
	if len(got.PreferredTimes) != 3 || got.PreferredTimes[2] != "21:00" {
		t.Errorf("PreferredTimes = %v", got.PreferredTimes)
	}
	if len(got.PreferredDays) != 2 || got.PreferredDays[1] != 6 {
		t.Errorf("PreferredDays = %v", got.PreferredDays)
	}
	if got.SmartRemindersEnabled {
		t.Error("SmartRemindersEnabled should round-trip false")
	}
}

func TestSQLiteStore_ProgressRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)

	if _, err := s.GetProgress("2024-03-04"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	p := models.DailyProgress{DateLocal: "2024-03-04", MinutesDone: 16, GoalMinutes: 20, Reached80: true}
	if err := s.SaveProgress(p); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}

	// Upsert replaces the record
	p.MinutesDone = 20
	p.Reached100 = true
	if err := s.SaveProgress(p); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}

	got, err := s.GetProgress("2024-03-04")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if got != p {
		t.Errorf("GetProgress = %+v, want %+v", got, p)
	}
}

func TestSQLiteStore_ProgressRange(t *testing.T) {
	s := newTestSQLiteStore(t)

	for _, date := range []string{"2024-03-06", "2024-03-01", "2024-02-28"} {
		if err := s.SaveProgress(models.DailyProgress{DateLocal: date, MinutesDone: 10, GoalMinutes: 20}); err != nil {
			t.Fatalf("SaveProgress failed: %v", err)
		}
	}

	records, err := s.GetProgressRange("2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("GetProgressRange failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].DateLocal != "2024-03-01" || records[1].DateLocal != "2024-03-06" {
		t.Errorf("records out of order: %v, %v", records[0].DateLocal, records[1].DateLocal)
	}
}

func TestSQLiteStore_StreakRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)

	// Fresh database reports a zero streak, not an error
	streak, err := s.GetStreak()
	if err != nil {
		t.Fatalf("GetStreak failed: %v", err)
	}
	if streak.Current != 0 || streak.Longest != 0 {
		t.Errorf("fresh streak = %+v, want zeros", streak)
	}

	want := models.StreakState{Current: 3, Longest: 9, LastCompletedDate: "2024-03-04", LastFinalizedDate: "2024-03-04"}
	if err := s.SaveStreak(want); err != nil {
		t.Fatalf("SaveStreak failed: %v", err)
	}

	got, err := s.GetStreak()
	if err != nil {
		t.Fatalf("GetStreak failed: %v", err)
	}
	if got != want {
		t.Errorf("GetStreak = %+v, want %+v", got, want)
	}
}

func TestSQLiteStore_NotificationLogs(t *testing.T) {
	s := newTestSQLiteStore(t)

	deliveredAt := time.Date(2024, 3, 4, 19, 0, 5, 0, time.UTC)
	entries := []models.NotificationLogEntry{
		{ID: "a", Kind: models.KindReminderPrimary, ScheduledFor: time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), Result: models.ResultSkipped},
		{ID: "b", Kind: models.KindReminderSecondary, ScheduledFor: time.Date(2024, 3, 4, 19, 0, 0, 0, time.UTC), DeliveredAt: &deliveredAt, Result: models.ResultDelivered},
		{ID: "c", Kind: models.KindGoalDone, ScheduledFor: time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC), Canceled: true, Result: models.ResultSkipped},
	}
	for _, entry := range entries {
		if err := s.AppendNotificationLog(entry); err != nil {
			t.Fatalf("AppendNotificationLog failed: %v", err)
		}
	}

	all, err := s.GetNotificationLogs(0)
	if err != nil {
		t.Fatalf("GetNotificationLogs failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].ID != "a" || all[2].ID != "c" {
		t.Errorf("logs out of append order: %v", all)
	}
	if all[1].DeliveredAt == nil || !all[1].DeliveredAt.Equal(deliveredAt) {
		t.Errorf("DeliveredAt did not round-trip: %v", all[1].DeliveredAt)
	}
	if !all[2].Canceled {
		t.Error("Canceled flag did not round-trip")
	}

	limited, err := s.GetNotificationLogs(2)
	if err != nil {
		t.Fatalf("GetNotificationLogs failed: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "b" || limited[1].ID != "c" {
		t.Errorf("limit should keep the newest entries oldest-first, got %v", limited)
	}
}

func TestSQLiteStore_Sessions(t *testing.T) {
	s := newTestSQLiteStore(t)

	session := models.StudySession{
		ID:              "s1",
		StartAt:         time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC),
		EndAt:           time.Date(2024, 3, 4, 8, 25, 0, 0, time.UTC),
		DurationMinutes: 25,
		WasManual:       true,
		Device:          "cli",
	}
	if err := s.AddSession(session); err != nil {
		t.Fatalf("AddSession failed: %v", err)
	}

	got, err := s.GetSessions("2024-03-04")
	if err != nil {
		t.Fatalf("GetSessions failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 session, got %d", len(got))
	}
	if got[0].ID != "s1" || got[0].DurationMinutes != 25 || !got[0].WasManual {
		t.Errorf("session did not round-trip: %+v", got[0])
	}

	other, err := s.GetSessions("2024-03-05")
	if err != nil {
		t.Fatalf("GetSessions failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no sessions on another day, got %d", len(other))
	}
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lingohabit.db")
	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.SaveProgress(models.DailyProgress{DateLocal: "2024-03-04", MinutesDone: 20, GoalMinutes: 20, Reached80: true, Reached100: true}); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetProgress("2024-03-04")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if !got.Reached100 {
		t.Error("progress lost across reopen")
	}
}
