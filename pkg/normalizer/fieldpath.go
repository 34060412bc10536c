package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The field-extraction engine resolves one semantic field from a raw object
// that may carry it under any of several key names or nested paths. Callers
// pass candidate dot-paths in priority order; the first candidate that
// resolves to a usable value wins. Absence is reported through the ok result,
// never through a panic or error: every path segment is existence-checked.

// lookupPath resolves a dot-separated path ("pricebreakdown.totalPrice.amount")
// by sequential map access. Any missing or non-object intermediate yields nil.
func lookupPath(doc map[string]interface{}, path string) interface{} {
	if doc == nil {
		return nil
	}
	segments := strings.Split(path, ".")
	var current interface{} = doc
	for _, seg := range segments {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = obj[seg]
		if !ok {
			return nil
		}
	}
	return current
}

// firstValue returns the first candidate path that resolves to a non-nil
// value.
func firstValue(doc map[string]interface{}, paths ...string) (interface{}, bool) {
	for _, p := range paths {
		if v := lookupPath(doc, p); v != nil {
			return v, true
		}
	}
	return nil, false
}

// firstString returns the first candidate that resolves to a non-empty
// string. Numeric scalars are stringified, so id fields that arrive as JSON
// numbers still resolve.
func firstString(doc map[string]interface{}, paths ...string) (string, bool) {
	for _, p := range paths {
		if s, ok := asString(lookupPath(doc, p)); ok {
			return s, true
		}
	}
	return "", false
}

// firstNumber returns the first candidate that coerces to a finite number.
// Candidates holding non-numeric strings or NaN/Inf are skipped, not errors.
func firstNumber(doc map[string]interface{}, paths ...string) (float64, bool) {
	for _, p := range paths {
		if f, ok := asNumber(lookupPath(doc, p)); ok {
			return f, true
		}
	}
	return 0, false
}

// firstInt is firstNumber truncated to int, for counters and day numbers.
func firstInt(doc map[string]interface{}, paths ...string) (int, bool) {
	f, ok := firstNumber(doc, paths...)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// asString coerces a scalar to a trimmed display string. Objects, arrays,
// booleans and empty strings do not qualify.
func asString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		trimmed := strings.TrimSpace(s)
		return trimmed, trimmed != ""
	case float64:
		// JSON ids often arrive as numbers; render integers without ".0".
		if s == math.Trunc(s) && math.Abs(s) < 1e15 {
			return strconv.FormatInt(int64(s), 10), true
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case json.Number:
		return s.String(), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	default:
		return "", false
	}
}

// asNumber coerces a scalar to a finite float64. Strings go through
// ParseFloat, matching the source's parseFloat acceptance.
func asNumber(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// asMap narrows a value to a JSON object, or nil.
func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

// asSlice narrows a value to a JSON array. A scalar where an array was
// expected yields nil and the caller skips the field.
func asSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

// sliceOfMaps resolves a path expected to hold an array of objects.
// Non-object elements are dropped.
func sliceOfMaps(doc map[string]interface{}, path string) []map[string]interface{} {
	raw := asSlice(lookupPath(doc, path))
	if raw == nil {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if m := asMap(item); m != nil {
			out = append(out, m)
		}
	}
	return out
}
