package storage

import (
	"errors"

	"github.com/lucasmonteiro/lingohabit/internal/models"
)

var (
	// ErrNotLoaded is returned when a provider is used before Load
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("record not found")
)

// Provider is the single narrow interface to persisted state. No component
// reads the underlying store directly; everything goes through a Provider.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.StudySettings, error)
	SaveSettings(models.StudySettings) error

	// Daily progress, keyed by local date (YYYY-MM-DD). Past dates are
	// retained and treated as read-only once the date has passed.
	GetProgress(date string) (models.DailyProgress, error)
	SaveProgress(models.DailyProgress) error
	// GetProgressRange returns progress records with startDay <= date <= endDay,
	// ordered by date ascending.
	GetProgressRange(startDay, endDay string) ([]models.DailyProgress, error)

	// Streak
	GetStreak() (models.StreakState, error)
	SaveStreak(models.StreakState) error

	// Notification log, append-only
	AppendNotificationLog(models.NotificationLogEntry) error
	GetNotificationLogs(limit int) ([]models.NotificationLogEntry, error)

	// Study sessions
	AddSession(models.StudySession) error
	GetSessions(day string) ([]models.StudySession, error)

	// Utils
	GetConfigPath() string
}
