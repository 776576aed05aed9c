package errors

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
)

const (
	// UnknownCode is assigned to errors that carry no HTTP status of their own.
	UnknownCode = 500

	// NetworkCode marks transport-level failures where no response was
	// received. It sits outside the HTTP status range so callers can tell
	// "the server said no" apart from "the server never answered".
	NetworkCode = 0
)

// Status carries the error code, the human-readable message and optional
// metadata attached along the way.
type Status struct {
	Code     int               `json:"code,omitempty"`
	Message  string            `json:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Error is the structured error used across the client core. Code holds the
// HTTP status for server-side failures and NetworkCode for transport
// failures; the cause preserves the underlying error chain.
type Error struct {
	Status
	cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("code=")
	b.WriteString(strconv.Itoa(e.Code))
	b.WriteString(", message=")
	b.WriteString(e.Message)

	if len(e.Metadata) > 0 {
		b.WriteString(", metadata={")
		first := true
		for k, v := range e.Metadata {
			if !first {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
			first = false
		}
		b.WriteByte('}')
	}

	if e.cause != nil {
		b.WriteString(", cause=")
		b.WriteString(e.cause.Error())
	}

	return b.String()
}

// Unwrap returns the cause of the error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether err is an *Error with the same code and message.
func (e *Error) Is(err error) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return e.Code == ge.Code && e.Message == ge.Message
	}
	return false
}

// WithMetadata adds metadata to the error. Returns a new instance to keep
// shared error values immutable.
func (e *Error) WithMetadata(m map[string]string) *Error {
	if len(m) == 0 {
		return e
	}

	err := e.clone()
	if err.Metadata == nil {
		err.Metadata = make(map[string]string, len(m))
	}
	maps.Copy(err.Metadata, m)
	return err
}

// WithCause attaches a cause to the error. Returns a new instance.
func (e *Error) WithCause(cause error) *Error {
	if cause == nil {
		return e
	}

	err := e.clone()
	err.cause = cause
	return err
}

func (e *Error) clone() *Error {
	var metadata map[string]string
	if len(e.Metadata) > 0 {
		metadata = make(map[string]string, len(e.Metadata))
		maps.Copy(metadata, e.Metadata)
	}

	return &Error{
		Status: Status{
			Code:     e.Code,
			Message:  e.Message,
			Metadata: metadata,
		},
		cause: e.cause,
	}
}

// GetCode returns the error code.
func (e *Error) GetCode() int {
	return e.Code
}

// GetMessage returns the error message.
func (e *Error) GetMessage() string {
	return e.Message
}

// GetCause returns the underlying cause of the error.
func (e *Error) GetCause() error {
	return e.cause
}

// New creates a new error with the given code and formatted message.
func New(code int, format string, args ...any) *Error {
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}

	return &Error{
		Status: Status{
			Code:    code,
			Message: message,
		},
	}
}

// FromError converts a generic error to *Error. Errors that are already
// *Error are returned as-is; anything else gets UnknownCode.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	if ge, ok := err.(*Error); ok {
		return ge
	}

	return New(UnknownCode, "%v", err)
}

// Wrap wraps an error with additional context while preserving the original
// chain. Returns nil if err is nil.
func Wrap(err error, code int, format string, args ...any) *Error {
	if err == nil {
		return nil
	}

	return New(code, format, args...).WithCause(err)
}
