package noyastate

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so the caller skips message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with reducers running on any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for noyastate and all its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by noyastate:
//   - [slog.LevelDebug]: actions that matched no target (unknown layer or page IDs)
//   - [slog.LevelInfo]: document lifecycle (initial state created, fonts registered)
//   - [slog.LevelWarn]: recoverable data problems (undecodable images, unresolved symbols)
//
// Example:
//
//	noyastate.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. The paragraph package and the CLI call
// this to share the same configuration without their own setter. The bitmap
// and sketch packages only return errors; the reducers that call them log
// those at Warn.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// logMissing records an action whose target does not exist.
func logMissing(action Action, attrs ...any) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug("noyastate: action target not found", append([]any{"action", ActionType(action)}, attrs...)...)
}
