// Package logger owns the process-wide structured logger. Commands log to a
// rotating file under the config directory; the --debug flag widens the level
// and mirrors output to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var global *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
}

// Init wires the global logger. Tests may skip it; the package-level helpers
// drop messages until Init has run.
func Init(cfg Config) error {
	dir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	rotated := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "lingohabit.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var out io.Writer = rotated
	level := log.WarnLevel
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, rotated)
		level = log.DebugLevel
	}

	global = log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "lingohabit",
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
	})
	return nil
}

func Debug(msg string, keyvals ...interface{}) {
	if global != nil {
		global.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if global != nil {
		global.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if global != nil {
		global.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if global != nil {
		global.Error(msg, keyvals...)
	}
}
