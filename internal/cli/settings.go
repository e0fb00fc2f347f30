package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/lucasmonteiro/lingohabit/internal/utils"
	"github.com/lucasmonteiro/lingohabit/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`
	Edit bool `help:"Edit settings interactively."`

	DailyGoalMinutes *int    `help:"Daily study goal in minutes."`
	PreferredTimes   *string `help:"Comma-separated reminder times (HH:MM), first is primary."`
	PreferredDays    *string `help:"Comma-separated reminder days (names or 0-6, 0=Sunday)."`
	QuietHoursStart  *string `help:"Start of quiet hours (HH:MM)."`
	QuietHoursEnd    *string `help:"End of quiet hours (HH:MM)."`
	SmartReminders   *bool   `help:"Enable or disable smart reminders."`
	Timezone         *string `help:"IANA timezone name (e.g. America/Sao_Paulo)."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Daily Goal:        %d min\n", settings.DailyGoalMinutes)
		fmt.Printf("  Preferred Times:   %s\n", strings.Join(settings.PreferredTimes, ", "))
		fmt.Printf("  Preferred Days:    %s\n", FormatWeekdays(settings.PreferredDays))
		fmt.Printf("  Quiet Hours:       %s - %s\n", settings.QuietHoursStart, settings.QuietHoursEnd)
		fmt.Printf("  Smart Reminders:   %v\n", settings.SmartRemindersEnabled)
		fmt.Printf("  Timezone:          %s\n", settings.Timezone)
		return nil
	}

	if c.Edit {
		return c.runEditForm(ctx)
	}

	updated := false
	if c.DailyGoalMinutes != nil {
		settings.DailyGoalMinutes = *c.DailyGoalMinutes
		updated = true
	}
	if c.PreferredTimes != nil {
		var times []string
		for _, t := range strings.Split(*c.PreferredTimes, ",") {
			times = append(times, strings.TrimSpace(t))
		}
		settings.PreferredTimes = times
		updated = true
	}
	if c.PreferredDays != nil {
		days, err := ParseWeekdays(*c.PreferredDays)
		if err != nil {
			return err
		}
		settings.PreferredDays = days
		updated = true
	}
	if c.QuietHoursStart != nil {
		settings.QuietHoursStart = *c.QuietHoursStart
		updated = true
	}
	if c.QuietHoursEnd != nil {
		settings.QuietHoursEnd = *c.QuietHoursEnd
		updated = true
	}
	if c.SmartReminders != nil {
		settings.SmartRemindersEnabled = *c.SmartReminders
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	service, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := service.UpdateSettings(settings); err != nil {
		return err
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func (c *SettingsCmd) runEditForm(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	goal := strconv.Itoa(settings.DailyGoalMinutes)
	times := strings.Join(settings.PreferredTimes, ",")
	days := FormatWeekdays(settings.PreferredDays)
	quietStart := settings.QuietHoursStart
	quietEnd := settings.QuietHoursEnd
	smart := settings.SmartRemindersEnabled
	timezone := settings.Timezone

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Daily goal (min)").
				Value(&goal).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i <= 0 {
						return fmt.Errorf("goal must be a positive number of minutes")
					}
					return nil
				}),
			huh.NewInput().
				Title("Reminder times (HH:MM, comma-separated)").
				Value(&times).
				Validate(func(s string) error {
					for _, t := range strings.Split(s, ",") {
						if !utils.ValidateTimeFormat(strings.TrimSpace(t)) {
							return fmt.Errorf("invalid time %q", strings.TrimSpace(t))
						}
					}
					return nil
				}),
			huh.NewInput().
				Title("Reminder days (e.g. mon,tue,wed,thu,fri)").
				Value(&days).
				Validate(func(s string) error {
					_, err := ParseWeekdays(s)
					return err
				}),
			huh.NewInput().
				Title("Quiet hours start (HH:MM)").
				Value(&quietStart),
			huh.NewInput().
				Title("Quiet hours end (HH:MM)").
				Value(&quietEnd),
			huh.NewConfirm().
				Title("Smart reminders enabled").
				Value(&smart),
			huh.NewInput().
				Title("Timezone (IANA name)").
				Value(&timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(s) {
						return fmt.Errorf("unknown timezone %q", s)
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	settings.DailyGoalMinutes, _ = strconv.Atoi(goal)
	var parsedTimes []string
	for _, t := range strings.Split(times, ",") {
		parsedTimes = append(parsedTimes, strings.TrimSpace(t))
	}
	settings.PreferredTimes = parsedTimes
	settings.PreferredDays, err = ParseWeekdays(days)
	if err != nil {
		return err
	}
	settings.QuietHoursStart = quietStart
	settings.QuietHoursEnd = quietEnd
	settings.SmartRemindersEnabled = smart
	settings.Timezone = timezone

	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}

	service, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := service.UpdateSettings(settings); err != nil {
		return err
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
