package log

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/mdrianislam0or1/admin-dashboard/core/tag"
	"github.com/mdrianislam0or1/admin-dashboard/log/writer"
)

// Logger wraps a zerolog.Logger together with the writer that backs it, so
// file-backed loggers can release their resources on Close.
type Logger struct {
	zerolog.Logger
	writer io.Writer
	closer io.Closer
}

// Close releases the underlying writer, if it holds any resources.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

func newLogger(w io.Writer, opts ...Option) *Logger {
	logger := &Logger{
		writer: w,
		Logger: zerolog.New(w).With().Timestamp().Logger(),
	}

	for _, opt := range opts {
		opt(logger)
	}

	return logger
}

// New creates a Logger that writes to the console.
func New(opts ...Option) *Logger {
	return newLogger(writer.Console(), opts...)
}

// NewFile creates a Logger that writes to a rotating log file.
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	if err := tag.ApplyDefaults(&c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	w, err := writer.File(c.toWriterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}

	logger := newLogger(w, opts...)

	if closer, ok := w.(io.Closer); ok {
		logger.closer = closer
	}

	return logger, nil
}

// NewMulti creates a Logger that writes to both a rotating file and the
// console.
func NewMulti(c FileConfig, opts ...Option) (*Logger, error) {
	if err := tag.ApplyDefaults(&c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	fw, err := writer.File(c.toWriterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}

	multi := zerolog.MultiLevelWriter(fw, writer.Console())
	logger := newLogger(multi, opts...)

	if closer, ok := fw.(io.Closer); ok {
		logger.closer = closer
	}

	return logger, nil
}
