package notify

import (
	"fmt"

	"github.com/lucasmonteiro/lingohabit/internal/models"
)

// Payload is a rendered notification ready for delivery.
type Payload struct {
	Title   string
	Body    string
	Options ShowOptions
}

// TemplateData is the state a template may draw on. Templates are pure
// functions of this value; they hold no hidden state.
type TemplateData struct {
	Settings      models.StudySettings
	Progress      models.DailyProgress
	WeeklyMinutes int
	WeeklyGoal    int
}

// BuildPayload renders the message for the given notification kind. The kind
// set is closed; an unknown kind yields a zero Payload and false.
func BuildPayload(kind models.NotificationKind, data TemplateData) (Payload, bool) {
	tag := "lingohabit-" + string(kind)

	switch kind {
	case models.KindReminderPrimary:
		return Payload{
			Title: "🎯 Time to practice!",
			Body:  fmt.Sprintf("%d min today? Skip it and your streak is on the line! 😄", data.Settings.DailyGoalMinutes),
			Options: ShowOptions{
				Tag:                tag,
				RequireInteraction: true,
				Actions: []Action{
					{Action: "start", Title: "Start now"},
					{Action: "snooze", Title: "Snooze 1h"},
				},
			},
		}, true
	case models.KindReminderSecondary:
		return Payload{
			Title: "⏰ Still time today!",
			Body:  "15-20 min and your streak stays alive. 🌟",
			Options: ShowOptions{
				Tag:                tag,
				RequireInteraction: true,
				Actions: []Action{
					{Action: "start", Title: "Let's go"},
					{Action: "dismiss", Title: "Later"},
				},
			},
		}, true
	case models.KindAlmost:
		remaining := data.Progress.GoalMinutes - data.Progress.MinutesDone
		if remaining < 0 {
			remaining = 0
		}
		return Payload{
			Title: "🔥 Almost there!",
			Body:  fmt.Sprintf("Only %d min left to hit today's goal! 👏", remaining),
			Options: ShowOptions{
				Tag: tag,
				Actions: []Action{
					{Action: "continue", Title: "Finish it"},
				},
			},
		}, true
	case models.KindGoalDone:
		return Payload{
			Title: "✅ Goal complete!",
			Body:  "Nice work! Streak kept. 🎉",
			Options: ShowOptions{
				Tag: tag,
			},
		}, true
	case models.KindWeeklySummary:
		return Payload{
			Title: "📊 Weekly summary",
			Body:  fmt.Sprintf("You studied %d/%d min this week. Let's close strong next week! 🚀", data.WeeklyMinutes, data.WeeklyGoal),
			Options: ShowOptions{
				Tag: tag,
			},
		}, true
	case models.KindTest:
		return Payload{
			Title: "🧪 Test notification",
			Body:  "Your notifications are working. ✨",
			Options: ShowOptions{
				Tag: tag,
			},
		}, true
	default:
		return Payload{}, false
	}
}
