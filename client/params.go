package client

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Params holds query parameters for a request. Nil and empty-string values
// are omitted entirely, never serialized as "key=", matching what the API
// expects from its web clients.
type Params map[string]any

// Values converts the params to url.Values, dropping unset values.
func (p Params) Values() url.Values {
	if len(p) == 0 {
		return nil
	}

	values := make(url.Values, len(p))
	for key, value := range p {
		s, ok := stringify(value)
		if !ok {
			continue
		}
		values.Set(key, s)
	}
	return values
}

// Encode returns the canonical query string: url.Values sorts by key, so two
// param sets with the same content encode identically regardless of how they
// were built. The cache relies on this for key identity.
func (p Params) Encode() string {
	return p.Values().Encode()
}

func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return v.Format(time.RFC3339), true
	case fmt.Stringer:
		s := v.String()
		if s == "" {
			return "", false
		}
		return s, true
	default:
		return fmt.Sprintf("%v", v), true
	}
}
