// Package mapsafe provides typed accessors for loosely typed option maps,
// such as provider options decoded from YAML.
package mapsafe

import (
	"fmt"
	"strconv"
)

// Get retrieves a typed value from a map[string]any.
// If the key is missing or the type cannot be converted, it returns the default value.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	val, ok := m[key]
	if !ok {
		return defaultValue
	}

	switch any(defaultValue).(type) {
	case int:
		switch x := val.(type) {
		case int:
			return any(x).(T)
		case float64:
			return any(int(x)).(T)
		}
	case float64:
		switch x := val.(type) {
		case float64:
			return any(x).(T)
		case int:
			return any(float64(x)).(T)
		}
	case string:
		if s, ok := val.(string); ok {
			return any(s).(T)
		}
	case bool:
		if b, ok := val.(bool); ok {
			return any(b).(T)
		}
	default:
		// fallback: if type matches exactly
		if v, ok := val.(T); ok {
			return v
		}
	}

	return defaultValue
}

// Strings converts an option map to map[string]string, formatting scalar
// values the way C-style option APIs expect them.
func Strings(m map[string]any) map[string]string {
	if len(m) == 0 {
		return nil
	}

	out := make(map[string]string, len(m))
	for k, v := range m {
		switch x := v.(type) {
		case string:
			out[k] = x
		case bool:
			out[k] = strconv.FormatBool(x)
		case int:
			out[k] = strconv.Itoa(x)
		case int64:
			out[k] = strconv.FormatInt(x, 10)
		case float64:
			out[k] = strconv.FormatFloat(x, 'f', -1, 64)
		default:
			out[k] = fmt.Sprintf("%v", x)
		}
	}

	return out
}
