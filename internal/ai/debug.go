package ai

import "sync/atomic"

// debugLoggingEnabled guards per-monster debug logs in the world tick.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for the AI subsystem.
// Call during initialization, from main after reading the logging config.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
//
//	if ai.IsDebugEnabled() {
//	    log.Debug("chase", zap.Int64("monster", id))
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
