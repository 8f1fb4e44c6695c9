// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings.
// Instruction tracing is logged at trace level, which also enables debug output.
func CreateLogger(debug, trace, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case trace:
		cfg.Level = log.TraceLevel
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
