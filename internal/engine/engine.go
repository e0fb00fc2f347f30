// Package engine composes the reminder scheduler, threshold tracker, streak
// calculator and dispatcher into one service. The service is constructed
// explicitly with its collaborators injected; there is no ambient global
// instance. All state mutation funnels through the service, one trigger at a
// time.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lucasmonteiro/lingohabit/internal/clock"
	"github.com/lucasmonteiro/lingohabit/internal/constants"
	"github.com/lucasmonteiro/lingohabit/internal/logger"
	"github.com/lucasmonteiro/lingohabit/internal/models"
	"github.com/lucasmonteiro/lingohabit/internal/notify"
	"github.com/lucasmonteiro/lingohabit/internal/scheduler"
	"github.com/lucasmonteiro/lingohabit/internal/storage"
	"github.com/lucasmonteiro/lingohabit/internal/tracker"
	"github.com/lucasmonteiro/lingohabit/internal/validation"
)

type Service struct {
	store      storage.Provider
	clock      clock.Clock
	dispatcher *notify.Dispatcher
	scheduler  *scheduler.Scheduler
	registry   *scheduler.Registry
	weekly     *scheduler.WeeklySummaryScheduler

	// Serializes triggers: CLI calls and timer callbacks never mutate
	// progress or streak state concurrently.
	mu sync.Mutex
}

func New(store storage.Provider, clk clock.Clock, notifier notify.Notifier) *Service {
	s := &Service{
		store:      store,
		clock:      clk,
		dispatcher: notify.NewDispatcher(notifier, store, clk),
		scheduler:  scheduler.New(),
		registry:   scheduler.NewRegistry(),
	}
	s.weekly = scheduler.NewWeeklySummaryScheduler(clk, func() {
		if err := s.SendWeeklySummary(); err != nil {
			logger.Error("Weekly summary dispatch failed", "error", err)
		}
	})
	return s
}

// TodayProgress returns today's progress record, creating a fresh one (not
// persisting it) when the day has rolled over since the last study activity.
func (s *Service) TodayProgress() (models.DailyProgress, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.DailyProgress{}, err
	}
	return s.progressFor(s.clock.Today(), settings)
}

func (s *Service) progressFor(date string, settings models.StudySettings) (models.DailyProgress, error) {
	p, err := s.store.GetProgress(date)
	if err == storage.ErrNotFound {
		return models.NewDailyProgress(date, settings.DailyGoalMinutes), nil
	}
	if err != nil {
		return models.DailyProgress{}, err
	}
	return p, nil
}

// RecordSession persists a completed study session and feeds its duration
// through the progress pipeline.
func (s *Service) RecordSession(start, end time.Time, wasManual bool, device string) (models.DailyProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := models.StudySession{
		ID:              uuid.NewString(),
		StartAt:         start,
		EndAt:           end,
		DurationMinutes: models.SessionDuration(start, end),
		WasManual:       wasManual,
		Device:          device,
	}
	if err := s.store.AddSession(session); err != nil {
		return models.DailyProgress{}, err
	}

	return s.addMinutes(session.DurationMinutes)
}

// AddMinutes applies a manual progress increment without a session record.
func (s *Service) AddMinutes(minutes int) (models.DailyProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addMinutes(minutes)
}

// addMinutes is the single progress-update path: it bumps today's record,
// runs the threshold checks, persists the latched record, and dispatches the
// resulting notification requests in emission order. Reaching the goal
// cancels any still-pending reminder timers for today.
func (s *Service) addMinutes(minutes int) (models.DailyProgress, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.DailyProgress{}, err
	}

	today := s.clock.Today()
	progress, err := s.progressFor(today, settings)
	if err != nil {
		return models.DailyProgress{}, err
	}

	if minutes > 0 {
		progress.MinutesDone += minutes
	}

	progress, requests := tracker.OnProgressUpdate(progress, settings)

	// Persist before dispatching so the latches hold even if dispatch fails
	if err := s.store.SaveProgress(progress); err != nil {
		return models.DailyProgress{}, err
	}

	for _, req := range requests {
		if req.CancelReminders {
			if n := s.cancelPendingReminders(); n > 0 {
				logger.Info("Cancelled pending reminders, goal reached", "count", n)
			}
		}
		data := notify.TemplateData{Settings: settings, Progress: progress}
		if _, err := s.dispatcher.Dispatch(req.Kind, data); err != nil {
			logger.Error("Threshold notification failed", "kind", req.Kind, "error", err)
		}
	}

	return progress, nil
}

func (s *Service) cancelPendingReminders() int {
	pending := s.registry.Pending()
	n := s.registry.CancelAll()
	for _, t := range pending {
		if err := s.dispatcher.LogCanceled(t.Kind.NotificationKind(), t.FireAt); err != nil {
			logger.Warn("Failed to log cancelled reminder", "error", err)
		}
	}
	return n
}

// EvaluateReminders computes this cycle's reminders without registering timers.
func (s *Service) EvaluateReminders() ([]scheduler.ScheduledReminder, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return nil, err
	}
	progress, err := s.progressFor(s.clock.Today(), settings)
	if err != nil {
		return nil, err
	}
	return s.scheduler.Evaluate(settings, progress, s.clock.Now()), nil
}

// ScheduleReminders evaluates the current cycle and registers a timer per
// reminder. Conditions are re-validated when each timer fires, because state
// can change between scheduling and firing.
func (s *Service) ScheduleReminders() ([]scheduler.ScheduledReminder, error) {
	reminders, err := s.EvaluateReminders()
	if err != nil {
		return nil, err
	}

	for _, rem := range reminders {
		s.registry.Schedule(rem, s.clock.Now(), s.fireReminder)
	}
	return reminders, nil
}

// fireReminder runs on the timer goroutine. It reloads state and re-checks
// every scheduling condition before dispatching; a reminder whose trigger has
// gone stale is logged as cancelled instead of delivered.
func (s *Service) fireReminder(rem scheduler.ScheduledReminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind := rem.Kind.NotificationKind()

	settings, err := s.store.GetSettings()
	if err != nil {
		logger.Error("Reminder fire aborted, settings unavailable", "error", err)
		return
	}
	progress, err := s.progressFor(s.clock.Today(), settings)
	if err != nil {
		logger.Error("Reminder fire aborted, progress unavailable", "error", err)
		return
	}

	now := s.clock.Now()
	stale := !settings.SmartRemindersEnabled ||
		!settings.RemindsOn(int(now.Weekday())) ||
		progress.Reached100 ||
		scheduler.QuietSuppressesFire(now, rem.FireAt, settings.QuietHoursStart, settings.QuietHoursEnd)
	if stale {
		logger.Debug("Reminder stale at fire time, suppressing", "kind", kind)
		if err := s.dispatcher.LogCanceled(kind, rem.FireAt); err != nil {
			logger.Warn("Failed to log suppressed reminder", "error", err)
		}
		return
	}

	data := notify.TemplateData{Settings: settings, Progress: progress}
	if _, err := s.dispatcher.Dispatch(kind, data); err != nil {
		logger.Error("Reminder dispatch failed", "kind", kind, "error", err)
	}
}

// UpdateSettings validates and persists new settings. Pending reminder timers
// were computed against the old settings, so they are invalidated.
func (s *Service) UpdateSettings(settings models.StudySettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}
	if err := s.store.SaveSettings(settings); err != nil {
		return err
	}
	if n := s.registry.CancelAll(); n > 0 {
		logger.Info("Cancelled pending reminders, settings changed", "count", n)
	}
	return nil
}

// FinalizeDay folds the day's final outcome into the streak, at most once per
// date. It reports whether the streak was updated by this call.
func (s *Service) FinalizeDay(date string) (models.StreakState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	streak, err := s.store.GetStreak()
	if err != nil {
		return models.StreakState{}, false, err
	}
	if tracker.AlreadyFinalized(streak, date) {
		return streak, false, nil
	}

	settings, err := s.store.GetSettings()
	if err != nil {
		return models.StreakState{}, false, err
	}
	progress, err := s.progressFor(date, settings)
	if err != nil {
		return models.StreakState{}, false, err
	}

	updated, err := tracker.UpdateStreak(streak, date, progress.Reached100, s.clock.Location())
	if err != nil {
		return models.StreakState{}, false, err
	}
	if err := s.store.SaveStreak(updated); err != nil {
		return models.StreakState{}, false, err
	}
	return updated, true, nil
}

// Streak returns the current streak state.
func (s *Service) Streak() (models.StreakState, error) {
	return s.store.GetStreak()
}

// WeeklyTotals sums the minutes studied over the trailing 7 days (today
// included) and pairs them with the configured weekly goal.
func (s *Service) WeeklyTotals() (minutes, goal int, err error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return 0, 0, err
	}

	today := s.clock.Today()
	start := s.clock.Now().AddDate(0, 0, -6).Format(constants.DateFormat)
	records, err := s.store.GetProgressRange(start, today)
	if err != nil {
		return 0, 0, err
	}

	for _, p := range records {
		minutes += p.MinutesDone
	}
	return minutes, settings.WeeklyGoalMinutes(), nil
}

// SendWeeklySummary dispatches the weekly summary notification. It takes the
// trigger mutex because the weekly timer invokes it on its own goroutine,
// concurrently with reminder fires in watch mode.
func (s *Service) SendWeeklySummary() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	minutes, goal, err := s.WeeklyTotals()
	if err != nil {
		return err
	}
	settings, err := s.store.GetSettings()
	if err != nil {
		return err
	}

	data := notify.TemplateData{Settings: settings, WeeklyMinutes: minutes, WeeklyGoal: goal}
	if _, err := s.dispatcher.Dispatch(models.KindWeeklySummary, data); err != nil {
		return fmt.Errorf("weekly summary dispatch: %w", err)
	}
	return nil
}

// StartWeeklySummaries arms the self-rearming Sunday 20:00 timer.
func (s *Service) StartWeeklySummaries() {
	s.weekly.Start()
}

// SendTestNotification dispatches a test notification.
func (s *Service) SendTestNotification() (models.DispatchResult, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.ResultFailed, err
	}
	return s.dispatcher.Dispatch(models.KindTest, notify.TemplateData{Settings: settings})
}

// PendingReminders exposes the registered timers, ordered by fire time.
func (s *Service) PendingReminders() []scheduler.ScheduledTimer {
	return s.registry.Pending()
}

// Stop cancels all pending timers and the weekly scheduler.
func (s *Service) Stop() {
	s.weekly.Stop()
	s.registry.CancelAll()
}
