package log

import (
	"github.com/rs/zerolog"
)

// Option configures a Logger.
type Option func(*Logger)

// WithLevel sets the minimum log level.
func WithLevel(level zerolog.Level) Option {
	return func(l *Logger) {
		l.Logger = l.Logger.Level(level)
	}
}

// WithCaller adds caller information to every event.
func WithCaller() Option {
	return func(l *Logger) {
		l.Logger = l.Logger.With().Caller().Logger()
	}
}

// WithCallerSkip adds caller information, skipping the given frame count.
func WithCallerSkip(skip int) Option {
	return func(l *Logger) {
		l.Logger = l.Logger.With().CallerWithSkipFrameCount(skip).Logger()
	}
}
