package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasmonteiro/lingohabit/internal/clock"
	"github.com/lucasmonteiro/lingohabit/internal/engine"
	"github.com/lucasmonteiro/lingohabit/internal/models"
	"github.com/lucasmonteiro/lingohabit/internal/notifier"
	"github.com/lucasmonteiro/lingohabit/internal/notify"
	"github.com/lucasmonteiro/lingohabit/internal/storage"
)

type Context struct {
	Store storage.Provider
	Debug bool

	// Notifier override for tests; nil means the tray agent notifier
	Notifier notify.Notifier
}

// Service builds the engine service from the stored settings. The clock is
// pinned to the configured timezone so date and weekday arithmetic never
// falls back to the machine-local zone.
func (c *Context) Service() (*engine.Service, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	clk, err := clock.New(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	n := c.Notifier
	if n == nil {
		n = notifier.New()
	}

	return engine.New(c.Store, clk, n), nil
}

// ParseWeekdays parses a comma-separated list of weekdays into day numbers
// (0=Sunday..6=Saturday). Names, short names and digits are accepted.
func ParseWeekdays(s string) ([]int, error) {
	dayMap := map[string]int{
		"sun": 0, "sunday": 0,
		"mon": 1, "monday": 1,
		"tue": 2, "tuesday": 2,
		"wed": 3, "wednesday": 3,
		"thu": 4, "thursday": 4,
		"fri": 5, "friday": 5,
		"sat": 6, "saturday": 6,
	}

	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if d, ok := dayMap[part]; ok {
			days = append(days, d)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}

	return days, nil
}

// FormatWeekdays renders day numbers as short weekday names.
func FormatWeekdays(days []int) string {
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	var out []string
	for _, d := range days {
		if d >= 0 && d <= 6 {
			out = append(out, names[d])
		}
	}
	return strings.Join(out, ",")
}

// FormatProgress renders a one-line progress summary.
func FormatProgress(p models.DailyProgress) string {
	pct := int(p.Ratio() * 100)
	return fmt.Sprintf("%s: %d/%d min (%d%%)", p.DateLocal, p.MinutesDone, p.GoalMinutes, pct)
}
