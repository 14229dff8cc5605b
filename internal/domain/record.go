package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags a Record as recognized or opaque.
type Kind string

const (
	KindRecognized Kind = "recognized"
	KindOpaque     Kind = "opaque"
)

// Record keeps the original payload element next to whatever was lifted from it.
type Record struct {
	Kind Kind `json:"kind"`
	// Fields is the element when it was a JSON object.
	Fields map[string]any `json:"fields,omitempty"`
	// Value is the element when it was not an object.
	Value any `json:"value,omitempty"`
}

// Recognized reports whether the element had the shape the screen expects.
func (r Record) Recognized() bool {
	return r.Kind == KindRecognized
}

// Raw returns the original element.
func (r Record) Raw() any {
	if r.Fields != nil {
		return r.Fields
	}
	return r.Value
}

var listKeys = []string{"data", "items", "results", "devices", "spaces", "incidents", "tickets"}

// Elements unwraps a list payload. Bare arrays are returned as is, wrapped
// arrays are found under the usual envelope keys, and anything else becomes
// a single element.
func Elements(payload any) []any {
	switch v := payload.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	case map[string]any:
		for _, k := range listKeys {
			if inner, ok := v[k]; ok {
				if list, ok := inner.([]any); ok {
					return list
				}
				if m, ok := inner.(map[string]any); ok {
					return Elements(m)
				}
			}
		}
		return []any{v}
	default:
		return []any{v}
	}
}

// object unwraps single-object payloads that arrive inside a data envelope.
func object(payload any) (map[string]any, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	if inner, ok := m["data"].(map[string]any); ok {
		return inner, true
	}
	return m, true
}

// str returns the first key holding a scalar, formatted as text.
func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		case json.Number:
			return t.String()
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case int, int64, int32, uint, uint64:
			return fmt.Sprint(t)
		case bool:
			return strconv.FormatBool(t)
		}
	}
	return ""
}

// flag returns the first key holding something boolean-like.
func flag(m map[string]any, keys ...string) *bool {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		var b bool
		switch t := v.(type) {
		case bool:
			b = t
		case string:
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "true", "yes", "1", "online", "on":
				b = true
			case "false", "no", "0", "offline", "off":
				b = false
			default:
				continue
			}
		case json.Number:
			b = t.String() != "0"
		case float64:
			b = t != 0
		default:
			continue
		}
		return &b
	}
	return nil
}

// count returns the first key holding an integer, or the length of a list.
func count(m map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case json.Number:
			if n, err := t.Int64(); err == nil {
				return int(n), true
			}
		case float64:
			return int(t), true
		case int:
			return t, true
		case int64:
			return int(t), true
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				return n, true
			}
		case []any:
			return len(t), true
		}
	}
	return 0, false
}

func wrap(el any) (map[string]any, Record) {
	m, ok := el.(map[string]any)
	if !ok {
		return nil, Record{Kind: KindOpaque, Value: el}
	}
	return m, Record{Kind: KindOpaque, Fields: m}
}
