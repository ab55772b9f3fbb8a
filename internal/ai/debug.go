package ai

import "sync/atomic"

// debugLoggingEnabled guards per-tick debug logs of AI controllers.
// Companion and sentinel ticks run every frame; checking slog's level for
// each of them is wasted work when debug output is off.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging is called once by the server after reading log_level.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether AI debug logs should be emitted:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("companion state", "state", c.State())
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
