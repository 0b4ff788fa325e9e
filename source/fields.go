package source

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is a decoded JSON object from an upstream payload.
// Lookups accept dotted paths such as "data.chapterList".
type Record map[string]any

// Lookup resolves a dotted path.
func (r Record) Lookup(path string) (any, bool) {
	var current any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		obj, ok := asObject(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// String returns the first candidate path holding a non-empty scalar, formatted as a string.
func (r Record) String(candidates ...string) string {
	for _, path := range candidates {
		v, ok := r.Lookup(path)
		if !ok {
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return ""
}

// Number returns the first candidate path holding a finite number or numeric string.
func (r Record) Number(candidates ...string) (float64, bool) {
	for _, path := range candidates {
		v, ok := r.Lookup(path)
		if !ok {
			continue
		}
		if n, ok := numeric(v); ok {
			return n, true
		}
	}
	return 0, false
}

// Int is Number truncated to an int.
func (r Record) Int(candidates ...string) (int, bool) {
	n, ok := r.Number(candidates...)
	return int(n), ok
}

// Bool reports whether path holds true, a non-zero number or the string "true".
func (r Record) Bool(path string) bool {
	v, ok := r.Lookup(path)
	if !ok {
		return false
	}
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value == "true" || value == "1"
	default:
		n, ok := numeric(value)
		return ok && n != 0
	}
}

// Object returns the object at path, or nil.
func (r Record) Object(path string) Record {
	v, ok := r.Lookup(path)
	if !ok {
		return nil
	}
	obj, _ := asObject(v)
	return obj
}

// Records returns the elements of the first candidate path holding an array.
// Elements that are not objects are skipped.
func (r Record) Records(candidates ...string) []Record {
	for _, path := range candidates {
		v, ok := r.Lookup(path)
		if !ok {
			continue
		}
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		records := make([]Record, 0, len(arr))
		for _, el := range arr {
			if obj, ok := asObject(el); ok {
				records = append(records, obj)
			}
		}
		return records
	}
	return nil
}

func asObject(v any) (Record, bool) {
	switch obj := v.(type) {
	case Record:
		return obj, true
	case map[string]any:
		return obj, true
	default:
		return nil, false
	}
}

func stringify(v any) string {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case json.Number:
		return value.String()
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

func numeric(v any) (float64, bool) {
	var (
		n   float64
		err error
	)
	switch value := v.(type) {
	case float64:
		n = value
	case int:
		n = float64(value)
	case json.Number:
		n, err = value.Float64()
	case string:
		n, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
