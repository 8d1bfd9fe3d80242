// Package logger builds the service's zap logger and keeps the process-wide
// instance for packages constructed without one.
package logger

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select the encoder and minimum level.
type Options struct {
	// Production selects JSON output; otherwise entries go to a colored
	// console encoder.
	Production bool
	Level      string

	// Service is attached to every entry.
	Service string
}

var process atomic.Pointer[zap.Logger]

// New builds a logger from opts. An empty level keeps the encoder default.
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if opts.Production {
		config = zap.NewProductionConfig()
	}

	if opts.Level != "" {
		level, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}
	if opts.Service != "" {
		config.InitialFields = map[string]any{"service": opts.Service}
	}

	return config.Build()
}

// Init builds the process logger and returns it.
func Init(opts Options) (*zap.Logger, error) {
	l, err := New(opts)
	if err != nil {
		return nil, err
	}
	process.Store(l)
	return l, nil
}

// L returns the process logger, or a no-op logger before Init.
func L() *zap.Logger {
	if l := process.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// Named returns a child of the process logger for one component.
func Named(component string) *zap.Logger {
	return L().Named(component)
}

// Sync flushes buffered entries of the process logger.
func Sync() {
	if l := process.Load(); l != nil {
		_ = l.Sync()
	}
}
