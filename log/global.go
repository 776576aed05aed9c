package log

import (
	"github.com/rs/zerolog"
)

var (
	// G is the global logger instance.
	G *Logger
)

func init() {
	G = New()
}

// SetGlobalLogger replaces the global logger.
func SetGlobalLogger(logger *Logger) {
	G = logger
}

// SetGlobalLevel sets the level of the global logger.
func SetGlobalLevel(level zerolog.Level) {
	G.Logger = G.Logger.Level(level)
}

// Debug returns a debug-level log event.
func Debug() *zerolog.Event {
	return G.Debug()
}

// Info returns an info-level log event.
func Info() *zerolog.Event {
	return G.Info()
}

// Warn returns a warn-level log event.
func Warn() *zerolog.Event {
	return G.Warn()
}

// Error returns an error-level log event with stack trace.
func Error() *zerolog.Event {
	return G.Error().Stack()
}

// Fatal returns a fatal-level log event with stack trace.
func Fatal() *zerolog.Event {
	return G.Fatal().Stack()
}

// Debugf writes a formatted debug message.
func Debugf(format string, args ...any) {
	G.Debug().Msgf(format, args...)
}

// Infof writes a formatted info message.
func Infof(format string, args ...any) {
	G.Info().Msgf(format, args...)
}

// Warnf writes a formatted warn message.
func Warnf(format string, args ...any) {
	G.Warn().Msgf(format, args...)
}

// Errorf writes a formatted error message with stack trace.
func Errorf(format string, args ...any) {
	G.Error().Stack().Msgf(format, args...)
}
