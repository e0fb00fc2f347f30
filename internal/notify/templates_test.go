package notify

import (
	"strings"
	"testing"

	"github.com/lucasmonteiro/lingohabit/internal/models"
)

func TestBuildPayload_CoversEveryKind(t *testing.T) {
	kinds := []models.NotificationKind{
		models.KindReminderPrimary,
		models.KindReminderSecondary,
		models.KindAlmost,
		models.KindGoalDone,
		models.KindWeeklySummary,
		models.KindTest,
	}

	for _, kind := range kinds {
		payload, ok := BuildPayload(kind, TemplateData{Settings: models.DefaultStudySettings()})
		if !ok {
			t.Errorf("BuildPayload(%s) returned not ok", kind)
			continue
		}
		if payload.Title == "" || payload.Body == "" {
			t.Errorf("BuildPayload(%s) produced an empty title or body", kind)
		}
		if payload.Options.Tag != "lingohabit-"+string(kind) {
			t.Errorf("BuildPayload(%s) tag = %q", kind, payload.Options.Tag)
		}
	}
}

func TestBuildPayload_UnknownKind(t *testing.T) {
	if _, ok := BuildPayload(models.NotificationKind("nope"), TemplateData{}); ok {
		t.Error("unknown kind should not render")
	}
}

func TestBuildPayload_AlmostShowsRemainingMinutes(t *testing.T) {
	data := TemplateData{
		Progress: models.DailyProgress{MinutesDone: 16, GoalMinutes: 20},
	}
	payload, ok := BuildPayload(models.KindAlmost, data)
	if !ok {
		t.Fatal("BuildPayload returned not ok")
	}
	if !strings.Contains(payload.Body, "4 min") {
		t.Errorf("almost body should mention the 4 remaining minutes, got %q", payload.Body)
	}
}

func TestBuildPayload_WeeklySummaryShowsTotals(t *testing.T) {
	data := TemplateData{WeeklyMinutes: 85, WeeklyGoal: 100}
	payload, ok := BuildPayload(models.KindWeeklySummary, data)
	if !ok {
		t.Fatal("BuildPayload returned not ok")
	}
	if !strings.Contains(payload.Body, "85/100") {
		t.Errorf("summary body should contain the totals, got %q", payload.Body)
	}
}

func TestBuildPayload_RemindersRequireInteraction(t *testing.T) {
	for _, kind := range []models.NotificationKind{models.KindReminderPrimary, models.KindReminderSecondary} {
		payload, _ := BuildPayload(kind, TemplateData{Settings: models.DefaultStudySettings()})
		if !payload.Options.RequireInteraction {
			t.Errorf("%s should require interaction", kind)
		}
		if len(payload.Options.Actions) == 0 {
			t.Errorf("%s should offer actions", kind)
		}
	}
}
