package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lucasmonteiro/lingohabit/internal/constants"
	"github.com/lucasmonteiro/lingohabit/internal/logger"
	"github.com/lucasmonteiro/lingohabit/internal/models"
)

// Store is the on-disk JSON document
type Store struct {
	Version  int                             `json:"version"`
	Settings models.StudySettings            `json:"settings"`
	Progress map[string]models.DailyProgress `json:"progress"` // date -> record
	Streak   models.StreakState              `json:"streak"`
	Logs     []models.NotificationLogEntry   `json:"notification_logs"`
	Sessions []models.StudySession           `json:"study_sessions"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:  1,
		Settings: models.DefaultStudySettings(),
		Progress: make(map[string]models.DailyProgress),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'lingohabit init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// Corrupt document: recover with defaults rather than failing the
		// whole application. This is a recovery, not a user-visible error.
		logger.Warn("Stored data could not be decoded, falling back to defaults", "error", err)
		s.store = &Store{
			Version:  1,
			Settings: models.DefaultStudySettings(),
			Progress: make(map[string]models.DailyProgress),
		}
		return nil
	}

	if s.store.Progress == nil {
		s.store.Progress = make(map[string]models.DailyProgress)
	}
	if s.store.Settings.DailyGoalMinutes == 0 {
		s.store.Settings = models.DefaultStudySettings()
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.StudySettings, error) {
	if s.store == nil {
		return models.StudySettings{}, ErrNotLoaded
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.StudySettings) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	prev := s.store.Settings
	s.store.Settings = settings
	if err := s.save(); err != nil {
		s.store.Settings = prev
		return err
	}
	return nil
}

func (s *JSONStore) GetProgress(date string) (models.DailyProgress, error) {
	if s.store == nil {
		return models.DailyProgress{}, ErrNotLoaded
	}
	p, ok := s.store.Progress[date]
	if !ok {
		return models.DailyProgress{}, ErrNotFound
	}
	return p, nil
}

func (s *JSONStore) SaveProgress(p models.DailyProgress) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	prev, had := s.store.Progress[p.DateLocal]
	s.store.Progress[p.DateLocal] = p
	if err := s.save(); err != nil {
		if had {
			s.store.Progress[p.DateLocal] = prev
		} else {
			delete(s.store.Progress, p.DateLocal)
		}
		return err
	}
	return nil
}

func (s *JSONStore) GetProgressRange(startDay, endDay string) ([]models.DailyProgress, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	var out []models.DailyProgress
	for date, p := range s.store.Progress {
		if date >= startDay && date <= endDay {
			out = append(out, p)
		}
	}
	// Dates are ISO strings, so lexicographic order is chronological
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateLocal < out[j].DateLocal
	})
	return out, nil
}

func (s *JSONStore) GetStreak() (models.StreakState, error) {
	if s.store == nil {
		return models.StreakState{}, ErrNotLoaded
	}
	return s.store.Streak, nil
}

func (s *JSONStore) SaveStreak(streak models.StreakState) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	prev := s.store.Streak
	s.store.Streak = streak
	if err := s.save(); err != nil {
		s.store.Streak = prev
		return err
	}
	return nil
}

func (s *JSONStore) AppendNotificationLog(entry models.NotificationLogEntry) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.Logs = append(s.store.Logs, entry)
	if err := s.save(); err != nil {
		s.store.Logs = s.store.Logs[:len(s.store.Logs)-1]
		return err
	}
	return nil
}

func (s *JSONStore) GetNotificationLogs(limit int) ([]models.NotificationLogEntry, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	logs := s.store.Logs
	if limit > 0 && len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}
	out := make([]models.NotificationLogEntry, len(logs))
	copy(out, logs)
	return out, nil
}

func (s *JSONStore) AddSession(session models.StudySession) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.Sessions = append(s.store.Sessions, session)
	if err := s.save(); err != nil {
		s.store.Sessions = s.store.Sessions[:len(s.store.Sessions)-1]
		return err
	}
	return nil
}

func (s *JSONStore) GetSessions(day string) ([]models.StudySession, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	var out []models.StudySession
	for _, sess := range s.store.Sessions {
		if sess.StartAt.Format(constants.DateFormat) == day {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

var _ Provider = (*JSONStore)(nil)
