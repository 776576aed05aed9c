package tag

import (
	"reflect"
)

const (
	tagName  = "default"
	maxDepth = 8
)

// ApplyDefaults sets default values on struct fields from `default:"..."`
// tags. The target must be a pointer to a struct; fields that already hold a
// non-zero value are left untouched. Nested structs and pointers to structs
// are processed recursively.
//
// Example:
//
//	type API struct {
//	    BaseURL string        `default:"http://localhost:5000/api"`
//	    Timeout time.Duration `default:"30s"`
//	}
func ApplyDefaults(target any) error {
	valueOf := reflect.ValueOf(target)
	if valueOf.Kind() != reflect.Pointer {
		return ErrTargetMustBePointer
	}
	if valueOf.IsNil() {
		return ErrTargetIsNil
	}

	elem := valueOf.Elem()
	if elem.Kind() != reflect.Struct {
		return ErrUnsupportedType
	}

	return applyStruct(elem, "", 0)
}

func applyStruct(value reflect.Value, path string, depth int) error {
	if depth >= maxDepth {
		return ErrMaxDepthExceeded
	}

	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldValue := value.Field(i)

		if !fieldValue.CanSet() {
			continue
		}

		fieldPath := joinPath(path, field.Name)
		tagValue := field.Tag.Get(tagName)

		if err := applyField(fieldValue, tagValue, fieldPath, depth); err != nil {
			return err
		}
	}

	return nil
}

func applyField(value reflect.Value, tagValue, path string, depth int) error {
	switch value.Kind() {
	case reflect.Struct:
		return applyStruct(value, path, depth+1)

	case reflect.Pointer:
		if value.Type().Elem().Kind() != reflect.Struct {
			return nil
		}
		if value.IsNil() {
			value.Set(reflect.New(value.Type().Elem()))
		}
		return applyStruct(value.Elem(), path, depth+1)

	default:
		if tagValue == "" || !value.IsZero() {
			return nil
		}
		if err := parseValue(value, tagValue); err != nil {
			return newFieldError(path, value.Kind(), tagValue, err)
		}
		return nil
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
