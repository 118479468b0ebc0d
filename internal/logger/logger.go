// Package logger builds the process-wide slog.Logger.
//
// Development gets a colored console handler (tint), production a JSON
// handler. Optionally a rotating log file (lumberjack) is attached.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ekisa-team/modelprobe/internal/env"
)

// Option customizes logger construction.
type Option func(*options)

type options struct {
	level     slog.Level
	logToFile bool
	logFile   string
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithLogToFile enables or disables the rotating file output.
func WithLogToFile(enabled bool) Option {
	return func(o *options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the log file path used when file output is enabled.
func WithLogFile(path string) Option {
	return func(o *options) {
		o.logFile = path
	}
}

// New creates a logger appropriate for the given environment.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := &options{
		level:   slog.LevelInfo,
		logFile: "logs/modelprobe.log",
	}
	for _, opt := range opts {
		opt(o)
	}

	w := io.Writer(os.Stderr)
	if o.logToFile {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    20, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	var handler slog.Handler
	if environment.IsProduction() {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: o.level})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      o.level,
			TimeFormat: time.Kitchen,
		})
	}

	return slog.New(handler)
}
