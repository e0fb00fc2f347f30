// Package errors holds the CLI exit helpers. Commands return errors up the
// stack; Fatal is the single place a nonzero exit happens.
package errors

import (
	"fmt"
	"os"

	"github.com/lucasmonteiro/lingohabit/internal/logger"
)

// Format renders an error the way the CLI presents it to the user.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs err, reports it on stderr and exits with status 1. A nil err is
// a no-op so callers can pass a command result through unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
