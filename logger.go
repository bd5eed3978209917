package inkwell

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard is a slog.Handler that is never enabled, so log calls made while
// no logger is installed cost one atomic load and a level check.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var (
	silent    = slog.New(discard{})
	pkgLogger atomic.Pointer[slog.Logger]
)

func init() {
	pkgLogger.Store(silent)
}

// SetLogger installs l as the destination for inkwell's diagnostics. Nil
// switches logging back off, which is also the state at startup.
//
// Debug records trace resource churn: a glyph list or face created for a new
// size, a text texture uploaded, and the per-frame summary written by
// Renderer.EndFrame when Config.Debug is set. Warn records point at
// something the caller may want to fix: text textures still alive when
// stats are logged, runes the glyph list backend had to drop, and font
// faces that failed to close.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	pkgLogger.Store(l)
}

// Logger returns the logger inkwell writes to.
func Logger() *slog.Logger {
	return pkgLogger.Load()
}
