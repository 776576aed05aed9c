package tag

import (
	"fmt"
	"reflect"
)

var (
	ErrTargetMustBePointer = fmt.Errorf("target must be a pointer")
	ErrTargetIsNil         = fmt.Errorf("target is nil")
	ErrUnsupportedType     = fmt.Errorf("unsupported type")
	ErrMaxDepthExceeded    = fmt.Errorf("max recursion depth exceeded")
)

// FieldError wraps a parse failure with field path context.
type FieldError struct {
	Path  string
	Kind  reflect.Kind
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (type: %s, value: %q): %v", e.Path, e.Kind, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func newFieldError(path string, kind reflect.Kind, value string, err error) error {
	return &FieldError{
		Path:  path,
		Kind:  kind,
		Value: value,
		Err:   err,
	}
}
