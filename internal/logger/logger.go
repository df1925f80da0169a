package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/duplex3d/printflow/internal/env"
)

// Options controls logger construction.
type Options struct {
	logToFile bool
	logFile   string
	level     slog.Leveler
}

// Option mutates logger Options.
type Option func(*Options)

// WithLogToFile enables or disables the rotated log file sink.
func WithLogToFile(enabled bool) Option {
	return func(o *Options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the log file path.
func WithLogFile(path string) Option {
	return func(o *Options) {
		o.logFile = path
	}
}

// WithLevel overrides the level derived from the environment.
func WithLevel(level slog.Leveler) Option {
	return func(o *Options) {
		o.level = level
	}
}

// New builds the process logger: a tint handler on stderr, optionally teed
// into a size-rotated log file.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	options := &Options{
		logFile: "logs/printflow.log",
	}
	for _, opt := range opts {
		opt(options)
	}

	level := options.level
	if level == nil {
		if environment.IsDevelopment() {
			level = slog.LevelDebug
		} else {
			level = slog.LevelInfo
		}
	}

	var w io.Writer = os.Stderr
	if options.logToFile {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   options.logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    options.logToFile || !environment.IsDevelopment(),
	}))
}
