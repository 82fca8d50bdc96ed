// Package logging wraps zap to give the searcher and its CLI a single,
// consistently-configured structured logger.
//
// Grounded on theRebelliousNerd-codenerd/cmd/nerd/main.go's
// PersistentPreRunE, which builds a zap.Logger from zap.NewProductionConfig
// (or NewDevelopmentConfig under --verbose) and Syncs it on exit.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger suited to the searcher's CLI: zap's
// development configuration (human-readable console output with caller
// info) at info level, or at debug level when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: failed to build logger: %w", err)
	}
	return logger, nil
}

// Sync flushes any buffered log entries. Call it once at shutdown; stdout
// sync errors on some platforms are expected and intentionally ignored.
func Sync(logger *zap.Logger) {
	_ = logger.Sync()
}
