package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/lucasmonteiro/lingohabit/internal/logger"
	"github.com/lucasmonteiro/lingohabit/internal/migration"
	"github.com/lucasmonteiro/lingohabit/internal/models"
	"github.com/lucasmonteiro/lingohabit/migrations"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

// HasEmbeddedCredentials reports whether the connection string carries a
// password, which is rejected in favor of env vars, .pgpass, or the OS keyring.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		_, isSet := parsedURL.User.Password()
		return isSet
	}
	for _, pair := range strings.Fields(connStr) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[0]), "password") {
			return true
		}
	}
	return false
}

// ValidateConnString checks that a connection string is a well-formed
// PostgreSQL URI or DSN and contains no embedded password.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if HasEmbeddedCredentials(connStr) {
		return false, ErrEmbeddedCredentials
	}

	return true, nil
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.GetSettings(); err == ErrNotFound {
		if err := s.SaveSettings(models.DefaultStudySettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}
	return s.open()
}

func (s *PostgresStore) open() error {
	if _, err := ValidateConnString(s.connStr); err != nil {
		return err
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		s.db = nil
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.DriverPostgres)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg)
	})
	return err
}

func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *PostgresStore) GetSettings() (models.StudySettings, error) {
	if s.db == nil {
		return models.StudySettings{}, ErrNotLoaded
	}

	var (
		settings            models.StudySettings
		timesJSON, daysJSON string
	)
	err := s.db.QueryRow(`
		SELECT daily_goal_minutes, preferred_times, preferred_days,
		       quiet_hours_start, quiet_hours_end, smart_reminders_enabled, timezone
		FROM settings WHERE id = 1`).Scan(
		&settings.DailyGoalMinutes, &timesJSON, &daysJSON,
		&settings.QuietHoursStart, &settings.QuietHoursEnd, &settings.SmartRemindersEnabled, &settings.Timezone,
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

	return settings, nil
}

func (s *PostgresStore) SaveSettings(settings models.StudySettings) error {
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
		VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			daily_goal_minutes = EXCLUDED.daily_goal_minutes,
			preferred_times = EXCLUDED.preferred_times,
			preferred_days = EXCLUDED.preferred_days,
			quiet_hours_start = EXCLUDED.quiet_hours_start,
			quiet_hours_end = EXCLUDED.quiet_hours_end,
			smart_reminders_enabled = EXCLUDED.smart_reminders_enabled,
			timezone = EXCLUDED.timezone`,
		settings.DailyGoalMinutes, string(timesJSON), string(daysJSON),
		settings.QuietHoursStart, settings.QuietHoursEnd, settings.SmartRemindersEnabled, settings.Timezone,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetProgress(date string) (models.DailyProgress, error) {
	if s.db == nil {
		return models.DailyProgress{}, ErrNotLoaded
	}

	var p models.DailyProgress
	err := s.db.QueryRow(`
		SELECT date_local, minutes_done, goal_minutes, reached_80, reached_100
		FROM daily_progress WHERE date_local = $1`, date).Scan(
		&p.DateLocal, &p.MinutesDone, &p.GoalMinutes, &p.Reached80, &p.Reached100,
	)
	if err == sql.ErrNoRows {
		return models.DailyProgress{}, ErrNotFound
	}
	if err != nil {
		return models.DailyProgress{}, fmt.Errorf("failed to get progress: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) SaveProgress(p models.DailyProgress) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	_, err := s.db.Exec(`
		INSERT INTO daily_progress (date_local, minutes_done, goal_minutes, reached_80, reached_100)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date_local) DO UPDATE SET
			minutes_done = EXCLUDED.minutes_done,
			goal_minutes = EXCLUDED.goal_minutes,
			reached_80 = EXCLUDED.reached_80,
			reached_100 = EXCLUDED.reached_100`,
		p.DateLocal, p.MinutesDone, p.GoalMinutes, p.Reached80, p.Reached100,
	)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetProgressRange(startDay, endDay string) ([]models.DailyProgress, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}

	rows, err := s.db.Query(`
		SELECT date_local, minutes_done, goal_minutes, reached_80, reached_100
		FROM daily_progress
		WHERE date_local >= $1 AND date_local <= $2
		ORDER BY date_local ASC`, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress range: %w", err)
	}
	defer rows.Close()

	var out []models.DailyProgress
	for rows.Next() {
		var p models.DailyProgress
		if err := rows.Scan(&p.DateLocal, &p.MinutesDone, &p.GoalMinutes, &p.Reached80, &p.Reached100); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetStreak() (models.StreakState, error) {
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

func (s *PostgresStore) SaveStreak(streak models.StreakState) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	_, err := s.db.Exec(`
		INSERT INTO streak (id, current, longest, last_completed_date, last_finalized_date)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			current = EXCLUDED.current,
			longest = EXCLUDED.longest,
			last_completed_date = EXCLUDED.last_completed_date,
			last_finalized_date = EXCLUDED.last_finalized_date`,
		streak.Current, streak.Longest, nullString(streak.LastCompletedDate), nullString(streak.LastFinalizedDate),
	)
	if err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}
	return nil
}

func (s *PostgresStore) AppendNotificationLog(entry models.NotificationLogEntry) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	var deliveredAt *time.Time
	if entry.DeliveredAt != nil {
		t := entry.DeliveredAt.UTC()
		deliveredAt = &t
	}

	_, err := s.db.Exec(`
		INSERT INTO notification_logs (id, kind, scheduled_for, delivered_at, action_taken, canceled, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, string(entry.Kind), entry.ScheduledFor.UTC(),
		deliveredAt, nullString(entry.ActionTaken), entry.Canceled, string(entry.Result),
	)
	if err != nil {
		return fmt.Errorf("failed to append notification log: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetNotificationLogs(limit int) ([]models.NotificationLogEntry, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(`
			SELECT id, kind, scheduled_for, delivered_at, action_taken, canceled, result
			FROM (
				SELECT * FROM notification_logs ORDER BY seq DESC LIMIT $1
			) newest ORDER BY seq ASC`, limit)
	} else {
		rows, err = s.db.Query(`
			SELECT id, kind, scheduled_for, delivered_at, action_taken, canceled, result
			FROM notification_logs ORDER BY seq ASC`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notification logs: %w", err)
	}
	defer rows.Close()

	var out []models.NotificationLogEntry
	for rows.Next() {
		var (
			entry       models.NotificationLogEntry
			kind        string
			deliveredAt sql.NullTime
			actionTaken sql.NullString
			result      string
		)
		if err := rows.Scan(&entry.ID, &kind, &entry.ScheduledFor, &deliveredAt, &actionTaken, &entry.Canceled, &result); err != nil {
			return nil, err
		}
		entry.Kind = models.NotificationKind(kind)
		entry.Result = models.DispatchResult(result)
		entry.ActionTaken = actionTaken.String
		if deliveredAt.Valid {
			t := deliveredAt.Time
			entry.DeliveredAt = &t
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddSession(session models.StudySession) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	_, err := s.db.Exec(`
		INSERT INTO study_sessions (id, start_at, end_at, duration_minutes, was_manual, device)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		session.ID, session.StartAt.UTC(), session.EndAt.UTC(),
		session.DurationMinutes, session.WasManual, session.Device,
	)
	if err != nil {
		return fmt.Errorf("failed to add session: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetSessions(day string) ([]models.StudySession, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}

	rows, err := s.db.Query(`
		SELECT id, start_at, end_at, duration_minutes, was_manual, device
		FROM study_sessions
		WHERE to_char(start_at, 'YYYY-MM-DD') = $1
		ORDER BY start_at ASC`, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var out []models.StudySession
	for rows.Next() {
		var session models.StudySession
		if err := rows.Scan(&session.ID, &session.StartAt, &session.EndAt, &session.DurationMinutes, &session.WasManual, &session.Device); err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}

var _ Provider = (*PostgresStore)(nil)
