package validation

import (
	"errors"
	"testing"

	"github.com/lucasmonteiro/lingohabit/internal/models"
)

func validSettings() models.StudySettings {
	return models.StudySettings{
		DailyGoalMinutes:      20,
		PreferredTimes:        []string{"08:00", "19:00"},
		PreferredDays:         []int{1, 2, 3, 4, 5},
		QuietHoursStart:       "22:00",
		QuietHoursEnd:         "08:00",
		SmartRemindersEnabled: true,
		Timezone:              "America/Sao_Paulo",
	}
}

func TestValidateSettings_Valid(t *testing.T) {
	if err := ValidateSettings(validSettings()); err != nil {
		t.Errorf("expected valid settings, got %v", err)
	}
}

func TestValidateSettings_Defaults(t *testing.T) {
	if err := ValidateSettings(models.DefaultStudySettings()); err != nil {
		t.Errorf("default settings should validate, got %v", err)
	}
}

func TestValidateSettings_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.StudySettings)
	}{
		{"zero goal", func(s *models.StudySettings) { s.DailyGoalMinutes = 0 }},
		{"negative goal", func(s *models.StudySettings) { s.DailyGoalMinutes = -5 }},
		{"no preferred times", func(s *models.StudySettings) { s.PreferredTimes = nil }},
		{"too many preferred times", func(s *models.StudySettings) {
			s.PreferredTimes = []string{"08:00", "12:00", "16:00", "20:00"}
		}},
		{"malformed time", func(s *models.StudySettings) { s.PreferredTimes = []string{"8am"} }},
		{"out of range time", func(s *models.StudySettings) { s.PreferredTimes = []string{"25:00"} }},
		{"empty days with reminders on", func(s *models.StudySettings) { s.PreferredDays = nil }},
		{"day out of range", func(s *models.StudySettings) { s.PreferredDays = []int{1, 7} }},
		{"negative day", func(s *models.StudySettings) { s.PreferredDays = []int{-1} }},
		{"duplicate day", func(s *models.StudySettings) { s.PreferredDays = []int{1, 1} }},
		{"bad quiet start", func(s *models.StudySettings) { s.QuietHoursStart = "22" }},
		{"bad quiet end", func(s *models.StudySettings) { s.QuietHoursEnd = "8:0:0" }},
		{"unknown timezone", func(s *models.StudySettings) { s.Timezone = "Mars/Olympus" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSettings()
			tc.mutate(&s)
			err := ValidateSettings(s)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !errors.Is(err, ErrConfigInvalid) {
				t.Errorf("error should wrap ErrConfigInvalid, got %v", err)
			}
		})
	}
}

func TestValidateSettings_EmptyDaysAllowedWhenDisabled(t *testing.T) {
	s := validSettings()
	s.SmartRemindersEnabled = false
	s.PreferredDays = nil
	if err := ValidateSettings(s); err != nil {
		t.Errorf("empty days should be allowed with reminders off, got %v", err)
	}
}
