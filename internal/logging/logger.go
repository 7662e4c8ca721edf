// Package logging provides the process-wide structured logger used by
// every internal package. It follows the teacher's pattern of a single
// package-level *zap.SugaredLogger initialized once at startup.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance. It defaults to a no-op logger so
// packages (and their tests) can log before InitLogger runs without a nil
// dereference; InitLogger replaces it with a real one.
var Logger = zap.NewNop().Sugar()

// InitLogger initializes the global logger. development selects
// zap.NewDevelopment (console-friendly, DEBUG-level) over
// zap.NewProduction (JSON, INFO-level).
func InitLogger(development bool) error {
	var logger *zap.Logger
	var err error

	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	Logger = logger.Sugar()
	return nil
}

// InitLoggerAtLevel initializes the global logger at an explicit level,
// used when config.LogLevel is set independently of Environment.
func InitLoggerAtLevel(development bool, level zap.AtomicLevel) error {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = level

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Logger = logger.Sugar()
	return nil
}

// CloseLogger flushes any buffered log entries.
func CloseLogger() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
