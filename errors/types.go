package errors

// Constructors for the error classes the client core produces. HTTP-coded
// errors mirror what the dashboard API actually returns; Network wraps
// failures where no response arrived at all.

func BadRequest(format string, args ...any) *Error {
	return New(400, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(401, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(403, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(404, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(409, format, args...)
}

func UnprocessableEntity(format string, args ...any) *Error {
	return New(422, format, args...)
}

func TooManyRequests(format string, args ...any) *Error {
	return New(429, format, args...)
}

func Internal(format string, args ...any) *Error {
	return New(500, format, args...)
}

func ServiceUnavailable(format string, args ...any) *Error {
	return New(503, format, args...)
}

// Network creates a transport-failure error wrapping the underlying cause.
func Network(cause error, format string, args ...any) *Error {
	return New(NetworkCode, format, args...).WithCause(cause)
}

// IsNetwork reports whether err represents a transport failure (no response
// received from the server).
func IsNetwork(err error) bool {
	if err == nil {
		return false
	}
	var ge *Error
	if As(err, &ge) {
		return ge.Code == NetworkCode
	}
	return false
}

// IsHTTP reports whether err carries an HTTP failure status from the server.
func IsHTTP(err error) bool {
	if err == nil {
		return false
	}
	var ge *Error
	if As(err, &ge) {
		return ge.Code >= 400
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or UnknownCode when err
// has no structured status.
func StatusOf(err error) int {
	if err == nil {
		return 0
	}
	var ge *Error
	if As(err, &ge) {
		return ge.Code
	}
	return UnknownCode
}
