// Package logging builds the process zap logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bnema/fhe-strength-tracker/internal/sdkerrors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB   = 20
	maxLogBackups  = 5
	maxLogAgeDays  = 28
	logDirFileMode = 0o700
)

type Options struct {
	Level string
	// File switches to JSON lines in a rotated file. Empty logs to Console.
	File    string
	Console io.Writer
}

// New returns the logger and a close func that flushes and releases the log file.
func New(opts Options) (*zap.Logger, func() error, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	var (
		core    zapcore.Core
		closeFn = func() error { return nil }
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), logDirFileMode); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}

		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
			Compress:   true,
		}
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		core = zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), level)
		closeFn = rotator.Close
	} else {
		console := opts.Console
		if console == nil {
			console = os.Stderr
		}
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(console)), level)
	}

	logger := zap.New(sdkerrors.NewFilterCore(core), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return logger, func() error {
		_ = logger.Sync()
		return closeFn()
	}, nil
}
