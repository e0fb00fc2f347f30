// Package insights analyzes recent study history and suggests settings
// adjustments. Suggestions are advisory; nothing here mutates state.
package insights

import (
	"fmt"

	"github.com/lucasmonteiro/lingohabit/internal/clock"
	"github.com/lucasmonteiro/lingohabit/internal/constants"
	"github.com/lucasmonteiro/lingohabit/internal/models"
	"github.com/lucasmonteiro/lingohabit/internal/storage"
)

// SuggestionType represents the type of adjustment suggested
type SuggestionType string

const (
	SuggestionLowerGoal       SuggestionType = "lower_goal"
	SuggestionRaiseGoal       SuggestionType = "raise_goal"
	SuggestionEnableReminders SuggestionType = "enable_reminders"
	SuggestionFixDelivery     SuggestionType = "fix_delivery"
)

// Suggestion represents one suggested settings adjustment
type Suggestion struct {
	Type           SuggestionType `json:"type"`
	Reason         string         `json:"reason"`
	CurrentValue   interface{}    `json:"current_value,omitempty"`
	SuggestedValue interface{}    `json:"suggested_value,omitempty"`
}

// Analyzer inspects study history and suggests adjustments
type Analyzer struct {
	store storage.Provider
	clock clock.Clock
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer(store storage.Provider, clk clock.Clock) *Analyzer {
	return &Analyzer{store: store, clock: clk}
}

// Analyze looks at the trailing days of progress plus recent notification
// outcomes and returns adjustment suggestions. No history means no suggestions.
func (a *Analyzer) Analyze(days int) ([]Suggestion, error) {
	if days < 1 {
		days = 14
	}

	settings, err := a.store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	endDay := a.clock.Today()
	startDay := a.clock.Now().AddDate(0, 0, -(days - 1)).Format(constants.DateFormat)
	records, err := a.store.GetProgressRange(startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress history: %w", err)
	}

	var suggestions []Suggestion
	suggestions = append(suggestions, a.analyzeGoal(settings, records)...)

	deliverySuggestions, err := a.analyzeDelivery(settings)
	if err != nil {
		return nil, err
	}
	suggestions = append(suggestions, deliverySuggestions...)

	return suggestions, nil
}

func (a *Analyzer) analyzeGoal(settings models.StudySettings, records []models.DailyProgress) []Suggestion {
	// Too little history to say anything useful
	if len(records) < 5 {
		return nil
	}

	totalMinutes := 0
	hitCount := 0
	for _, p := range records {
		totalMinutes += p.MinutesDone
		if p.Reached100 {
			hitCount++
		}
	}
	hitPercent := float64(hitCount) / float64(len(records)) * 100
	avgMinutes := totalMinutes / len(records)

	var suggestions []Suggestion

	// Goal rarely hit and actual study time well below it: the goal is
	// discouraging rather than motivating
	if hitPercent < 30 && float64(avgMinutes) < float64(settings.DailyGoalMinutes)*0.75 {
		suggested := roundToFive(avgMinutes)
		if suggested < 5 {
			suggested = 5
		}
		if suggested < settings.DailyGoalMinutes {
			suggestions = append(suggestions, Suggestion{
				Type:           SuggestionLowerGoal,
				Reason:         fmt.Sprintf("goal reached on only %.0f%% of active days (average %d min studied)", hitPercent, avgMinutes),
				CurrentValue:   settings.DailyGoalMinutes,
				SuggestedValue: suggested,
			})
		}
	}

	// Goal hit nearly every day with plenty of overshoot: room to push
	if hitPercent > 90 && float64(avgMinutes) >= float64(settings.DailyGoalMinutes)*1.3 {
		suggested := roundToFive(avgMinutes)
		if suggested > settings.DailyGoalMinutes {
			suggestions = append(suggestions, Suggestion{
				Type:           SuggestionRaiseGoal,
				Reason:         fmt.Sprintf("goal reached on %.0f%% of active days with %d min studied on average", hitPercent, avgMinutes),
				CurrentValue:   settings.DailyGoalMinutes,
				SuggestedValue: suggested,
			})
		}
	}

	if hitPercent < 50 && !settings.SmartRemindersEnabled {
		suggestions = append(suggestions, Suggestion{
			Type:           SuggestionEnableReminders,
			Reason:         fmt.Sprintf("goal reached on only %.0f%% of active days and reminders are off", hitPercent),
			CurrentValue:   false,
			SuggestedValue: true,
		})
	}

	return suggestions
}

func (a *Analyzer) analyzeDelivery(settings models.StudySettings) ([]Suggestion, error) {
	if !settings.SmartRemindersEnabled {
		return nil, nil
	}

	logs, err := a.store.GetNotificationLogs(20)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification logs: %w", err)
	}

	skipped := 0
	attempted := 0
	for _, entry := range logs {
		if entry.Canceled {
			continue
		}
		attempted++
		if entry.Result == models.ResultSkipped {
			skipped++
		}
	}

	if attempted == 0 {
		return nil, nil
	}

	skippedPercent := float64(skipped) / float64(attempted) * 100
	if skipped >= 3 && skippedPercent > 40 {
		return []Suggestion{{
			Type:   SuggestionFixDelivery,
			Reason: fmt.Sprintf("%.0f%% of recent notifications were skipped; the tray agent may not be running", skippedPercent),
		}}, nil
	}

	return nil, nil
}

func roundToFive(minutes int) int {
	return (minutes + 2) / 5 * 5
}
