package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lucasmonteiro/lingohabit/internal/logger"
	"github.com/lucasmonteiro/lingohabit/internal/migration"
	"github.com/lucasmonteiro/lingohabit/internal/models"
	"github.com/lucasmonteiro/lingohabit/migrations"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed default settings on first init
	if _, err := s.GetSettings(); err == ErrNotFound {
		if err := s.SaveSettings(models.DefaultStudySettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'lingohabit init' first")
	}
	if err := s.open(); err != nil {
		return err
	}
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.DriverSQLite)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg)
	})
	return err
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) GetSettings() (models.StudySettings, error) {
	if s.db == nil {
		return models.StudySettings{}, ErrNotLoaded
	}

	var (
		settings            models.StudySettings
		timesJSON, daysJSON string
		smart               int
	)
	err := s.db.QueryRow(`
		SELECT daily_goal_minutes, preferred_times, preferred_days,
		       quiet_hours_start, quiet_hours_end, smart_reminders_enabled, timezone
		FROM settings WHERE id = 1`).Scan(
		&settings.DailyGoalMinutes, &timesJSON, &daysJSON,
		&settings.QuietHoursStart, &settings.QuietHoursEnd, &smart, &settings.Timezone,
	)
	if err == sql.ErrNoRows {
		return models.StudySettings{}, ErrNotFound
	}
	if err != nil {
		return models.StudySettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	if err := json.Unmarshal([]byte(timesJSON), &settings.PreferredTimes); err != nil {
		return models.DefaultStudySettings(), nil
	}
	if err := json.Unmarshal([]byte(daysJSON), &settings.PreferredDays); err != nil {
		return models.DefaultStudySettings(), nil
	}
	settings.SmartRemindersEnabled = smart != 0

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.StudySettings) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	timesJSON, err := json.Marshal(settings.PreferredTimes)
	if err != nil {
		return err
	}
	daysJSON, err := json.Marshal(settings.PreferredDays)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO settings (id, daily_goal_minutes, preferred_times, preferred_days,
			quiet_hours_start, quiet_hours_end, smart_reminders_enabled, timezone)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			daily_goal_minutes = excluded.daily_goal_minutes,
			preferred_times = excluded.preferred_times,
			preferred_days = excluded.preferred_days,
			quiet_hours_start = excluded.quiet_hours_start,
			quiet_hours_end = excluded.quiet_hours_end,
			smart_reminders_enabled = excluded.smart_reminders_enabled,
			timezone = excluded.timezone`,
		settings.DailyGoalMinutes, string(timesJSON), string(daysJSON),
		settings.QuietHoursStart, settings.QuietHoursEnd, boolToInt(settings.SmartRemindersEnabled), settings.Timezone,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetProgress(date string) (models.DailyProgress, error) {
	if s.db == nil {
		return models.DailyProgress{}, ErrNotLoaded
	}

	var (
		p                     models.DailyProgress
		reached80, reached100 int
	)
	err := s.db.QueryRow(`
		SELECT date_local, minutes_done, goal_minutes, reached_80, reached_100
		FROM daily_progress WHERE date_local = ?`, date).Scan(
		&p.DateLocal, &p.MinutesDone, &p.GoalMinutes, &reached80, &reached100,
	)
	if err == sql.ErrNoRows {
		return models.DailyProgress{}, ErrNotFound
	}
	if err != nil {
		return models.DailyProgress{}, fmt.Errorf("failed to get progress: %w", err)
	}
	p.Reached80 = reached80 != 0
	p.Reached100 = reached100 != 0
	return p, nil
}

func (s *SQLiteStore) SaveProgress(p models.DailyProgress) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	_, err := s.db.Exec(`
		INSERT INTO daily_progress (date_local, minutes_done, goal_minutes, reached_80, reached_100)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date_local) DO UPDATE SET
			minutes_done = excluded.minutes_done,
			goal_minutes = excluded.goal_minutes,
			reached_80 = excluded.reached_80,
			reached_100 = excluded.reached_100`,
		p.DateLocal, p.MinutesDone, p.GoalMinutes, boolToInt(p.Reached80), boolToInt(p.Reached100),
	)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetProgressRange(startDay, endDay string) ([]models.DailyProgress, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}

	rows, err := s.db.Query(`
		SELECT date_local, minutes_done, goal_minutes, reached_80, reached_100
		FROM daily_progress
		WHERE date_local >= ? AND date_local <= ?
		ORDER BY date_local ASC`, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress range: %w", err)
	}
	defer rows.Close()

	var out []models.DailyProgress
	for rows.Next() {
		var (
			p                     models.DailyProgress
			reached80, reached100 int
		)
		if err := rows.Scan(&p.DateLocal, &p.MinutesDone, &p.GoalMinutes, &reached80, &reached100); err != nil {
			return nil, err
		}
		p.Reached80 = reached80 != 0
		p.Reached100 = reached100 != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetStreak() (models.StreakState, error) {
	if s.db == nil {
		return models.StreakState{}, ErrNotLoaded
	}

	var (
		streak                       models.StreakState
		lastCompleted, lastFinalized sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT current, longest, last_completed_date, last_finalized_date
		FROM streak WHERE id = 1`).Scan(
		&streak.Current, &streak.Longest, &lastCompleted, &lastFinalized,
	)
	if err == sql.ErrNoRows {
		return models.StreakState{}, nil
	}
	if err != nil {
		return models.StreakState{}, fmt.Errorf("failed to get streak: %w", err)
	}
	streak.LastCompletedDate = lastCompleted.String
	streak.LastFinalizedDate = lastFinalized.String
	return streak, nil
}

func (s *SQLiteStore) SaveStreak(streak models.StreakState) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	_, err := s.db.Exec(`
		INSERT INTO streak (id, current, longest, last_completed_date, last_finalized_date)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current = excluded.current,
			longest = excluded.longest,
			last_completed_date = excluded.last_completed_date,
			last_finalized_date = excluded.last_finalized_date`,
		streak.Current, streak.Longest, nullString(streak.LastCompletedDate), nullString(streak.LastFinalizedDate),
	)
	if err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AppendNotificationLog(entry models.NotificationLogEntry) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	var deliveredAt sql.NullString
	if entry.DeliveredAt != nil {
		deliveredAt = sql.NullString{String: entry.DeliveredAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO notification_logs (id, kind, scheduled_for, delivered_at, action_taken, canceled, result, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM notification_logs))`,
		entry.ID, string(entry.Kind), entry.ScheduledFor.Format(time.RFC3339),
		deliveredAt, nullString(entry.ActionTaken), boolToInt(entry.Canceled), string(entry.Result),
	)
	if err != nil {
		return fmt.Errorf("failed to append notification log: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetNotificationLogs(limit int) ([]models.NotificationLogEntry, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}

	query := `
		SELECT id, kind, scheduled_for, delivered_at, action_taken, canceled, result
		FROM notification_logs ORDER BY seq ASC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		// Keep the newest entries but return them oldest first
		query = `
			SELECT id, kind, scheduled_for, delivered_at, action_taken, canceled, result
			FROM (
				SELECT * FROM notification_logs ORDER BY seq DESC LIMIT ?
			) ORDER BY seq ASC`
		rows, err = s.db.Query(query, limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notification logs: %w", err)
	}
	defer rows.Close()

	var out []models.NotificationLogEntry
	for rows.Next() {
		var (
			entry                    models.NotificationLogEntry
			kind, scheduledFor       string
			deliveredAt, actionTaken sql.NullString
			canceled                 int
			result                   string
		)
		if err := rows.Scan(&entry.ID, &kind, &scheduledFor, &deliveredAt, &actionTaken, &canceled, &result); err != nil {
			return nil, err
		}
		entry.Kind = models.NotificationKind(kind)
		entry.Result = models.DispatchResult(result)
		entry.Canceled = canceled != 0
		entry.ActionTaken = actionTaken.String
		if t, err := time.Parse(time.RFC3339, scheduledFor); err == nil {
			entry.ScheduledFor = t
		}
		if deliveredAt.Valid {
			if t, err := time.Parse(time.RFC3339, deliveredAt.String); err == nil {
				entry.DeliveredAt = &t
			}
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) AddSession(session models.StudySession) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	_, err := s.db.Exec(`
		INSERT INTO study_sessions (id, start_at, end_at, duration_minutes, was_manual, device)
		VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID, session.StartAt.Format(time.RFC3339), session.EndAt.Format(time.RFC3339),
		session.DurationMinutes, boolToInt(session.WasManual), session.Device,
	)
	if err != nil {
		return fmt.Errorf("failed to add session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetSessions(day string) ([]models.StudySession, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}

	rows, err := s.db.Query(`
		SELECT id, start_at, end_at, duration_minutes, was_manual, device
		FROM study_sessions
		WHERE substr(start_at, 1, 10) = ?
		ORDER BY start_at ASC`, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var out []models.StudySession
	for rows.Next() {
		var (
			session        models.StudySession
			startAt, endAt string
			wasManual      int
		)
		if err := rows.Scan(&session.ID, &startAt, &endAt, &session.DurationMinutes, &wasManual, &session.Device); err != nil {
			return nil, err
		}
		session.WasManual = wasManual != 0
		if t, err := time.Parse(time.RFC3339, startAt); err == nil {
			session.StartAt = t
		}
		if t, err := time.Parse(time.RFC3339, endAt); err == nil {
			session.EndAt = t
		}
		out = append(out, session)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ Provider = (*SQLiteStore)(nil)
