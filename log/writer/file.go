package writer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// RotateConfig configures log rotation.
type RotateConfig struct {
	Mode             RotateMode
	Filepath         string
	Filename         string
	FileExt          string
	TimeRotateConfig TimeRotateConfig
	SizeRotateConfig SizeRotateConfig
}

// TimeRotateConfig holds time-based rotation settings.
type TimeRotateConfig struct {
	MaxAge       int // retention in hours
	RotationTime int // rotation interval in hours
}

// SizeRotateConfig holds size-based rotation settings.
type SizeRotateConfig struct {
	MaxSize    int  // max size per file in MB
	MaxBackups int  // number of old files to keep
	MaxAge     int  // retention in days
	Compress   bool // compress rotated files
}

// File creates a file output writer for the configured rotation mode.
func File(config RotateConfig) (io.Writer, error) {
	switch config.Mode {
	case RotateModeTime:
		return timeRotateWriter(config)
	case RotateModeSize:
		return sizeRotateWriter(config)
	default:
		return nil, fmt.Errorf("unsupported rotate mode: %v", config.Mode)
	}
}

func (c *RotateConfig) fileFullPath() string {
	return c.fileFullPathWithFormat("")
}

func (c *RotateConfig) fileFullPathWithFormat(format string) string {
	var builder strings.Builder
	builder.Grow(len(c.Filename) + len(format) + len(c.FileExt) + 3)

	builder.WriteString(c.Filename)
	if format != "" {
		builder.WriteByte('.')
		builder.WriteString(format)
	}
	builder.WriteByte('.')
	builder.WriteString(c.FileExt)

	return filepath.Join(c.Filepath, builder.String())
}
