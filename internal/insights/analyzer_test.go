package insights

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/lucasmonteiro/lingohabit/internal/clock"
	"github.com/lucasmonteiro/lingohabit/internal/models"
	"github.com/lucasmonteiro/lingohabit/internal/storage"
)

var testInstant = time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestAnalyzer(t *testing.T) (*Analyzer, storage.Provider) {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "lingohabit.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return NewAnalyzer(store, clock.Fixed{Instant: testInstant}), store
}

// seedDays writes n progress records ending the day before testInstant.
func seedDays(t *testing.T, store storage.Provider, n, minutesPerDay, goal int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		date := testInstant.AddDate(0, 0, -i).Format("2006-01-02")
		p := models.DailyProgress{
			DateLocal:   date,
			MinutesDone: minutesPerDay,
			GoalMinutes: goal,
			Reached80:   minutesPerDay*10 >= goal*8,
			Reached100:  minutesPerDay >= goal,
		}
		if err := store.SaveProgress(p); err != nil {
			t.Fatalf("SaveProgress failed: %v", err)
		}
	}
}

func TestAnalyze_NoHistoryNoSuggestions(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t)

	suggestions, err := analyzer.Analyze(14)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions without history, got %v", suggestions)
	}
}

func TestAnalyze_StrugglingSuggestsLowerGoal(t *testing.T) {
	analyzer, store := newTestAnalyzer(t)

	// Goal is 20 but only 8 minutes a day actually happen
	seedDays(t, store, 7, 8, 20)

	suggestions, err := analyzer.Analyze(14)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var found *Suggestion
	for i := range suggestions {
		if suggestions[i].Type == SuggestionLowerGoal {
			found = &suggestions[i]
		}
	}
	if found == nil {
		t.Fatalf("expected a lower-goal suggestion, got %v", suggestions)
	}
	if found.SuggestedValue != 10 {
		t.Errorf("suggested goal = %v, want 10", found.SuggestedValue)
	}
}

func TestAnalyze_OvershootingSuggestsRaiseGoal(t *testing.T) {
	analyzer, store := newTestAnalyzer(t)

	// 35 minutes a day against a 20 minute goal, every day
	seedDays(t, store, 7, 35, 20)

	suggestions, err := analyzer.Analyze(14)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var found *Suggestion
	for i := range suggestions {
		if suggestions[i].Type == SuggestionRaiseGoal {
			found = &suggestions[i]
		}
	}
	if found == nil {
		t.Fatalf("expected a raise-goal suggestion, got %v", suggestions)
	}
	if found.SuggestedValue != 35 {
		t.Errorf("suggested goal = %v, want 35", found.SuggestedValue)
	}
}

func TestAnalyze_SteadyHabitStaysQuiet(t *testing.T) {
	analyzer, store := newTestAnalyzer(t)

	// Goal hit daily with modest overshoot: nothing to change
	seedDays(t, store, 7, 22, 20)

	suggestions, err := analyzer.Analyze(14)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions for a steady habit, got %v", suggestions)
	}
}

func TestAnalyze_TooFewDaysStaysQuiet(t *testing.T) {
	analyzer, store := newTestAnalyzer(t)

	seedDays(t, store, 3, 5, 20)

	suggestions, err := analyzer.Analyze(14)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions from 3 days of history, got %v", suggestions)
	}
}

func TestAnalyze_DisabledRemindersSuggested(t *testing.T) {
	analyzer, store := newTestAnalyzer(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	settings.SmartRemindersEnabled = false
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	seedDays(t, store, 7, 8, 20)

	suggestions, err := analyzer.Analyze(14)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	found := false
	for _, s := range suggestions {
		if s.Type == SuggestionEnableReminders {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an enable-reminders suggestion, got %v", suggestions)
	}
}

func TestAnalyze_SkippedNotificationsSuggestFixingDelivery(t *testing.T) {
	analyzer, store := newTestAnalyzer(t)

	for i := 0; i < 5; i++ {
		entry := models.NotificationLogEntry{
			ID:           fmt.Sprintf("entry-%d", i),
			Kind:         models.KindReminderPrimary,
			ScheduledFor: testInstant.AddDate(0, 0, -i),
			Result:       models.ResultSkipped,
		}
		if err := store.AppendNotificationLog(entry); err != nil {
			t.Fatal(err)
		}
	}

	suggestions, err := analyzer.Analyze(14)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	found := false
	for _, s := range suggestions {
		if s.Type == SuggestionFixDelivery {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a fix-delivery suggestion, got %v", suggestions)
	}
}

func TestAnalyze_CancelledEntriesIgnoredForDelivery(t *testing.T) {
	analyzer, store := newTestAnalyzer(t)

	// Cancelled reminders are logged as skipped but say nothing about delivery
	for i := 0; i < 5; i++ {
		entry := models.NotificationLogEntry{
			ID:           fmt.Sprintf("cancelled-%d", i),
			Kind:         models.KindReminderSecondary,
			ScheduledFor: testInstant,
			Canceled:     true,
			Result:       models.ResultSkipped,
		}
		if err := store.AppendNotificationLog(entry); err != nil {
			t.Fatal(err)
		}
	}

	suggestions, err := analyzer.Analyze(14)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	for _, s := range suggestions {
		if s.Type == SuggestionFixDelivery {
			t.Errorf("cancelled entries must not trigger a delivery suggestion")
		}
	}
}
