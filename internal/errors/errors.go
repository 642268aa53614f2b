// Package errors formats failures at the CLI edge.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/streakline/internal/config"
	"github.com/julianstephens/streakline/internal/keyring"
	"github.com/julianstephens/streakline/internal/logger"
	"github.com/julianstephens/streakline/internal/storage"
	"github.com/julianstephens/streakline/internal/storage/postgres"
	"github.com/julianstephens/streakline/internal/storage/sqlite"
	"github.com/julianstephens/streakline/internal/tracker"
)

var hints = []struct {
	target error
	hint   string
}{
	{sqlite.ErrNotInitialized, "run 'streakline init' to create the database"},
	{postgres.ErrEmbeddedCredentials, "store the full connection string with 'streakline keyring set' and pass --db keyring, or use .pgpass"},
	{keyring.ErrNotFound, "store a connection string with 'streakline keyring set <conn>'"},
	{keyring.ErrKeyringUnavailable, "pass the connection string with --db instead"},
	{tracker.ErrFutureEvent, "completions can only be logged for today or earlier"},
	{tracker.ErrUnsupportedFrequency, "streaks are computed for daily goals only"},
	{tracker.ErrGoalInactive, "unarchive or restore the goal first"},
	{storage.ErrNotFound, "check the name with 'streakline goal list'"},
	{config.ErrInvalidConfig, "check STREAKLINE_* variables and the config file"},
}

// Hint returns a follow-up suggestion for known errors, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
