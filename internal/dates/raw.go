package dates

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Raw holds a date exactly as it appeared in an import document: a string,
// a YAML timestamp, or a {seconds, nanoseconds} object. It is normalized to a
// date key at the boundary with Key.
type Raw struct {
	value any
}

// RawString wraps an already formatted date string.
func RawString(s string) Raw {
	return Raw{value: s}
}

func (r Raw) Value() any {
	return r.value
}

func (r Raw) IsZero() bool {
	return r.value == nil
}

// Key normalizes the raw value with n. Empty input gives "".
func (r Raw) Key(n *Normalizer) string {
	if r.value == nil {
		return ""
	}
	if s, ok := r.value.(string); ok && s == "" {
		return ""
	}
	return n.ToDateKey(r.value)
}

func (r *Raw) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		r.value = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		r.value = s
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("date must be a string or a timestamp object: %w", err)
	}
	r.value = m
	return nil
}

func (r Raw) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

func (r *Raw) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			r.value = nil
			return nil
		}
		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		// Unquoted 2025-09-01 decodes as a timestamp; keep its calendar day.
		if s, ok := v.(string); ok {
			r.value = s
		} else {
			r.value = node.Value
		}
		return nil
	case yaml.MappingNode:
		var m map[string]any
		if err := node.Decode(&m); err != nil {
			return err
		}
		r.value = m
		return nil
	default:
		return fmt.Errorf("line %d: date must be a string or a timestamp object", node.Line)
	}
}

func (r Raw) MarshalYAML() (any, error) {
	return r.value, nil
}
