// Package logger provides structured logging for Markbase.
//
// This package wraps Uber's zap logger to provide high-performance, structured
// logging with configurable log levels. It initializes a global logger instance
// for use throughout the application.
//
// # Usage
//
// After initialization, use the global Log variable:
//
//	logger.Log.Info("user logged in",
//	    zap.String("email", email),
//	)
//
//	logger.Log.Error("token store lookup failed",
//	    zap.Error(err),
//	)
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.Logger

func InitLogger(level string) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zap.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	Log, err = cfg.Build()
	if err != nil {
		panic(err)
	}
}

func init() {
	// Packages may log before main calls InitLogger (and tests never do).
	Log = zap.NewNop()
}
