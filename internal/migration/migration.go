// Package migration applies versioned SQL schema migrations. Files are named
// NNN_name.sql and run in version order, each inside its own transaction; the
// applied version lives in a single-row schema_version table.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

// Driver selects the placeholder style for version bookkeeping statements.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner applies the migrations found in a filesystem to one database.
type Runner struct {
	db     *sql.DB
	fs     fs.FS
	driver Driver
}

func NewRunner(db *sql.DB, migrationFS fs.FS, driver Driver) *Runner {
	return &Runner{db: db, fs: migrationFS, driver: driver}
}

// execer is satisfied by both *sql.DB and *sql.Tx so the version row can be
// written standalone or inside a migration's transaction.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func (r *Runner) writeVersion(e execer, version int) error {
	if _, err := e.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("clear schema version: %w", err)
	}
	placeholder := "?"
	if r.driver == DriverPostgres {
		placeholder = "$1"
	}
	if _, err := e.Exec("INSERT INTO schema_version (version) VALUES ("+placeholder+")", version); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec("CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)")
	return err
}

// GetCurrentVersion reports the applied schema version, 0 for a fresh database.
func (r *Runner) GetCurrentVersion() (int, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, fmt.Errorf("ensure schema_version table: %w", err)
	}
	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// SetVersion overwrites the recorded schema version without running anything.
func (r *Runner) SetVersion(version int) error {
	if err := r.ensureVersionTable(); err != nil {
		return fmt.Errorf("ensure schema_version table: %w", err)
	}
	return r.writeVersion(r.db, version)
}

func parseMigrationName(filename string) (version int, title string, err error) {
	prefix, rest, found := strings.Cut(filename, "_")
	if !found {
		return 0, "", fmt.Errorf("migration %s: expected NNN_name.sql", filename)
	}
	version, err = strconv.Atoi(prefix)
	if err != nil {
		return 0, "", fmt.Errorf("migration %s: version prefix must be numeric", filename)
	}
	if version < 1 {
		return 0, "", fmt.Errorf("migration %s: version must be 1 or higher", filename)
	}
	return version, strings.TrimSuffix(rest, ".sql"), nil
}

// ReadMigrationFiles loads every *.sql migration, sorted by version. Files
// without a .sql suffix are ignored; malformed or duplicate versions are
// errors.
func (r *Runner) ReadMigrationFiles() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		version, title, err := parseMigrationName(entry.Name())
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(r.fs, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{Version: version, Name: title, SQL: string(body)})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}
	return migrations, nil
}

// ApplyMigrations runs every migration newer than the recorded version and
// returns how many were applied. Each migration and its version bump commit
// together, so a failure leaves the database at the last good version. A
// database already past the newest known migration is refused.
func (r *Runner) ApplyMigrations(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	current, err := r.GetCurrentVersion()
	if err != nil {
		return 0, err
	}
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		return 0, nil
	}

	latest := migrations[len(migrations)-1].Version
	if current > latest {
		return 0, errSchemaTooNew(current, latest)
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		logFn(fmt.Sprintf("applying migration %d (%s)", m.Version, m.Name))

		tx, err := r.db.Begin()
		if err != nil {
			return applied, fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if err := r.writeVersion(tx, m.Version); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
		applied++
	}

	if applied > 0 {
		logFn(fmt.Sprintf("schema now at version %d (%d applied)", latest, applied))
	}
	return applied, nil
}

// ValidateVersion fails when the database schema is newer than this build
// knows about.
func (r *Runner) ValidateVersion() error {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return err
	}
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return err
	}
	latest := 0
	if len(migrations) > 0 {
		latest = migrations[len(migrations)-1].Version
	}
	if current > latest {
		return errSchemaTooNew(current, latest)
	}
	return nil
}

func errSchemaTooNew(current, latest int) error {
	return fmt.Errorf("database schema version %d is newer than this build supports (%d); upgrade lingohabit", current, latest)
}
