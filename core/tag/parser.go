package tag

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// parseValue parses a tag string into a basic-kind reflect.Value.
// time.Duration fields accept Go duration syntax ("30s", "5m").
func parseValue(value reflect.Value, str string) error {
	str = strings.TrimSpace(str)

	switch value.Kind() {
	case reflect.String:
		value.SetString(str)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if value.Type() == reflect.TypeFor[time.Duration]() {
			d, err := time.ParseDuration(str)
			if err != nil {
				return err
			}
			value.SetInt(int64(d))
			return nil
		}
		parsed, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return err
		}
		value.SetInt(parsed)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return err
		}
		value.SetUint(parsed)
		return nil

	case reflect.Float32, reflect.Float64:
		bits := 64
		if value.Kind() == reflect.Float32 {
			bits = 32
		}
		parsed, err := strconv.ParseFloat(str, bits)
		if err != nil {
			return err
		}
		value.SetFloat(parsed)
		return nil

	case reflect.Bool:
		parsed, err := strconv.ParseBool(str)
		if err != nil {
			return err
		}
		value.SetBool(parsed)
		return nil

	default:
		return ErrUnsupportedType
	}
}
