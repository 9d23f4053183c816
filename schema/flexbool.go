package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FlexBool is a boolean-like flag that tolerates the heterogeneous encodings
// the tracking system emits: integer 1/0, string "1"/"0" (possibly padded),
// native booleans, or null. The truth rule is fixed: a value is true iff its
// trimmed string form equals "1" or its native value equals 1. Centralizing
// the conversion here keeps representation mismatches out of the comparison
// sites; a producer/consumer type mismatch once misclassified every
// commitment as missed.
type FlexBool struct {
	raw any
}

// NewFlexBool wraps a raw flag value.
func NewFlexBool(v any) FlexBool {
	return FlexBool{raw: v}
}

// Bool normalizes the underlying value to a boolean.
func (f FlexBool) Bool() bool {
	switch v := f.raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case int:
		return v == 1
	case int64:
		return v == 1
	case float64:
		return v == 1
	case string:
		return strings.TrimSpace(v) == "1"
	default:
		return strings.TrimSpace(fmt.Sprint(v)) == "1"
	}
}

// String renders the normalized value as "1" or "0".
func (f FlexBool) String() string {
	if f.Bool() {
		return "1"
	}
	return "0"
}

// UnmarshalJSON accepts numbers, strings, booleans and null.
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid flag value %s: %w", data, err)
	}
	f.raw = v
	return nil
}

// MarshalJSON writes the normalized numeric form.
func (f FlexBool) MarshalJSON() ([]byte, error) {
	if f.Bool() {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalYAML accepts the same scalar forms as JSON.
func (f *FlexBool) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("invalid flag value %q: %w", node.Value, err)
	}
	f.raw = v
	return nil
}
