package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lucasmonteiro/lingohabit/internal/cli"
	"github.com/lucasmonteiro/lingohabit/internal/constants"
	apperrors "github.com/lucasmonteiro/lingohabit/internal/errors"
	"github.com/lucasmonteiro/lingohabit/internal/keyring"
	"github.com/lucasmonteiro/lingohabit/internal/logger"
	"github.com/lucasmonteiro/lingohabit/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path (.db for SQLite, .json for JSON) or PostgreSQL connection string. Use \"postgres\" to resolve the connection string from the environment or OS keyring." default:"${default_config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize lingohabit storage."`
	Settings cli.SettingsCmd `cmd:"" help:"View or update study settings."`
	Study    cli.StudyCmd    `cmd:"" help:"Run an interactive study timer."`
	Session  cli.SessionCmd  `cmd:"" help:"Record study sessions."`
	Progress cli.ProgressCmd `cmd:"" help:"Show or bump today's progress."`
	Streak   cli.StreakCmd   `cmd:"" help:"Show the current streak."`
	Finalize cli.FinalizeCmd `cmd:"" help:"Fold a day's outcome into the streak."`
	Remind   cli.RemindCmd   `cmd:"" help:"Evaluate and schedule reminders."`
	Summary  cli.SummaryCmd  `cmd:"" help:"Show or send the weekly summary."`
	Insights cli.InsightsCmd `cmd:"" help:"Suggest settings adjustments from recent history."`
	Logs     cli.LogsCmd     `cmd:"" help:"Show the notification log."`
	Notify   cli.NotifyCmd   `cmd:"" help:"Notification utilities."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage stored database credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("lingohabit"),
		kong.Description("Study-habit reminder engine: daily goals, smart reminders, streaks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":             constants.Version,
			"default_config_path": constants.DefaultConfigPath,
		},
	)

	config := expandHome(CLI.Config)

	var store storage.Provider
	switch {
	case strings.HasPrefix(config, "postgres://"), strings.HasPrefix(config, "postgresql://"):
		if storage.HasEmbeddedCredentials(config) {
			fmt.Fprintln(os.Stderr, "Error: connection strings with embedded credentials are not allowed.")
			fmt.Fprintln(os.Stderr, "Store credentials with 'lingohabit keyring set', the "+constants.DBConnectionEnv+" env var, or a .pgpass file.")
			os.Exit(1)
		}
		store = storage.NewPostgresStore(config)
	case config == "postgres":
		connStr, err := resolveConnectionString()
		if err != nil {
			apperrors.Fatal(err)
		}
		store = storage.NewPostgresStore(connStr)
	case strings.HasSuffix(config, ".json"):
		store = storage.NewJSONStore(config)
	default:
		store = storage.NewSQLiteStore(config)
	}

	logDir := filepath.Dir(config)
	if strings.HasPrefix(config, "postgres") {
		logDir = expandHome("~/.config/lingohabit")
	}
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: logDir,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	appCtx := &cli.Context{
		Store: store,
		Debug: CLI.Debug,
	}

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" && ctx.Selected().Name != "keyring" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// resolveConnectionString finds a Postgres connection string in the
// environment first, then the OS keyring.
func resolveConnectionString() (string, error) {
	if connStr := os.Getenv(constants.DBConnectionEnv); connStr != "" {
		return connStr, nil
	}
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		return "", fmt.Errorf("no connection string found in %s or OS keyring: %w", constants.DBConnectionEnv, err)
	}
	return connStr, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
