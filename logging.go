package rhi

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler silently discards all log records. Enabled returns false so
// callers skip message formatting entirely, keeping disabled logging
// effectively free.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by this package for resource
// lifecycle events, validation failures, and backend diagnostics. By
// default the package produces no log output; pass nil to restore that.
//
// Levels used:
//   - [slog.LevelDebug]: resource create/destroy, GL object ids allocated.
//   - [slog.LevelWarn]: transient logic warnings (redundant begin/end,
//     destroying a missing handle, end_render_pass with no open pass).
//   - [slog.LevelError]: validation and backend errors (a create call or a
//     queue command was dropped).
//
// Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the currently configured logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
