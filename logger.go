package shaper

import (
	"log/slog"

	"github.com/gogpu/shaper/internal/logging"
)

// SetLogger configures the logger for shaper and all its sub-packages.
// By default, shaper produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by shaper:
//   - [slog.LevelDebug]: per-call diagnostics (run and line counts, font parsing)
//   - [slog.LevelInfo]: system font scanning
//   - [slog.LevelWarn]: recovered engine failures, unusable fallback fonts
//
// Example:
//
//	shaper.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by shaper.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
