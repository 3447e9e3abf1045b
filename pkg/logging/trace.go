package logging

import (
	"log/slog"
	"sync/atomic"
)

var tracing atomic.Bool

// SetTrace turns per-write tracing of store, binder and renderer activity on
// or off. Set from log.trace in the config.
func SetTrace(on bool) { tracing.Store(on) }

// Tracing reports whether tracing is on.
func Tracing() bool { return tracing.Load() }

// Trace logs at DEBUG on the default logger when tracing is on.
func Trace(msg string, args ...any) {
	if tracing.Load() {
		slog.Debug(msg, args...)
	}
}
