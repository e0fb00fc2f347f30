package scheduler

import (
	"sync"
	"time"

	"github.com/lucasmonteiro/lingohabit/internal/clock"
	"github.com/lucasmonteiro/lingohabit/internal/constants"
	"github.com/lucasmonteiro/lingohabit/internal/logger"
	"github.com/lucasmonteiro/lingohabit/internal/utils"
)

// WeeklySummaryScheduler is a self-rearming timer that fires every Sunday at
// 20:00 local time. It is the only unbounded recurring process in the engine
// and is cancellable as a unit via Stop.
type WeeklySummaryScheduler struct {
	clock clock.Clock
	fire  func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func NewWeeklySummaryScheduler(clk clock.Clock, fire func()) *WeeklySummaryScheduler {
	return &WeeklySummaryScheduler{
		clock: clk,
		fire:  fire,
	}
}

// NextSummaryTime returns the next Sunday at 20:00 strictly after computation
// when that instant has already passed this week.
func NextSummaryTime(now time.Time) time.Time {
	daysUntilSunday := (7 - int(now.Weekday())) % 7
	candidate := now.AddDate(0, 0, daysUntilSunday)
	at, err := utils.AtTimeOfDay(candidate, constants.WeeklySummaryTime)
	if err != nil {
		// WeeklySummaryTime is a compile-time constant; this cannot happen
		return now.AddDate(0, 0, 7)
	}
	if at.Before(now) {
		at = at.AddDate(0, 0, 7)
	}
	return at
}

// Start arms the timer for the next period boundary. On fire it invokes the
// summary callback and re-arms itself for the following week.
func (w *WeeklySummaryScheduler) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.arm()
}

func (w *WeeklySummaryScheduler) arm() {
	now := w.clock.Now()
	next := NextSummaryTime(now)
	logger.Debug("Weekly summary armed", "next", next)

	w.timer = time.AfterFunc(next.Sub(now), func() {
		w.fire()

		w.mu.Lock()
		defer w.mu.Unlock()
		if !w.stopped {
			w.arm()
		}
	})
}

// Stop cancels the scheduler as a unit. It does not fire again after Stop.
func (w *WeeklySummaryScheduler) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
