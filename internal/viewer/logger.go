package viewer

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures logging for the viewer. By default nothing is logged.
// Pass nil to silence it again.
//
// Levels used:
//   - [slog.LevelDebug]: rebuilds and released resource counts
//   - [slog.LevelInfo]: mount and unmount
//   - [slog.LevelWarn]: frames that failed to render
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current viewer logger.
func Logger() *slog.Logger { return loggerPtr.Load() }
