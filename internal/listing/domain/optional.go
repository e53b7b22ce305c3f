package domain

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// OptionalString is a string that may be absent.
type OptionalString struct {
	Value string
	Valid bool
}

// OptionalFloat is a finite number that may be absent.
type OptionalFloat struct {
	Value float64
	Valid bool
}

func SomeString(s string) OptionalString { return OptionalString{Value: s, Valid: true} }

func SomeFloat(f float64) OptionalFloat { return OptionalFloat{Value: f, Valid: true} }

// Or returns the value, or fallback when absent.
func (o OptionalString) Or(fallback string) string {
	if !o.Valid {
		return fallback
	}
	return o.Value
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o OptionalFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// leadingNumber matches the numeric prefix a lenient float parse accepts.
var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// CoerceString renders scalars as text. Objects, arrays, null and non-finite
// numbers are absent.
func CoerceString(v any) OptionalString {
	switch t := v.(type) {
	case string:
		return SomeString(t)
	case json.Number:
		return SomeString(t.String())
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return OptionalString{}
		}
		return SomeString(strconv.FormatFloat(t, 'f', -1, 64))
	case int:
		return SomeString(strconv.Itoa(t))
	case int64:
		return SomeString(strconv.FormatInt(t, 10))
	case bool:
		return SomeString(strconv.FormatBool(t))
	default:
		return OptionalString{}
	}
}

// CoerceFloat converts numbers and numeric strings to a finite float.
// Strings may carry a currency sign, thousands separators and trailing text
// ("$1,850.00/Monthly"); anything else is absent.
func CoerceFloat(v any) OptionalFloat {
	switch t := v.(type) {
	case float64:
		return finite(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return OptionalFloat{}
		}
		return finite(f)
	case int:
		return SomeFloat(float64(t))
	case int64:
		return SomeFloat(float64(t))
	case string:
		return parseLenient(t)
	default:
		return OptionalFloat{}
	}
}

func parseLenient(s string) OptionalFloat {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return OptionalFloat{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return finite(f)
	}
	prefix := leadingNumber.FindString(s)
	if prefix == "" {
		return OptionalFloat{}
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return OptionalFloat{}
	}
	return finite(f)
}

func finite(f float64) OptionalFloat {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return OptionalFloat{}
	}
	return SomeFloat(f)
}
