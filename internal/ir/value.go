package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"
)

// Value is a sealed interface representing the constrained payload types
// attribute data serializes into. Only StringValue, IntValue, BoolValue,
// ArrayValue, and DictValue implement it. There is no float and no null:
// both break deterministic canonical hashing.
type Value interface {
	irValue() // sealed
}

// StringValue represents a string payload.
type StringValue string

func (StringValue) irValue() {}

// IntValue represents an integer payload. Always int64, never float64.
type IntValue int64

func (IntValue) irValue() {}

// BoolValue represents a boolean payload.
type BoolValue bool

func (BoolValue) irValue() {}

// ArrayValue represents an ordered list of Values.
type ArrayValue []Value

func (ArrayValue) irValue() {}

// DictValue represents a map of string keys to Values.
// Use SortedKeys for deterministic iteration.
type DictValue map[string]Value

func (DictValue) irValue() {}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code
// units). Go's sort.Strings compares UTF-8 bytes, which produces a
// different order for strings outside the BMP.
func (d DictValue) SortedKeys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units as required
// by RFC 8785 canonical JSON. utf16.Encode handles surrogate pairs.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := len(a16)
	if len(b16) < minLen {
		minLen = len(b16)
	}
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	if len(a16) < len(b16) {
		return -1
	}
	if len(a16) > len(b16) {
		return 1
	}
	return 0
}

// MarshalValue marshals a Value to JSON bytes with RFC 8785 key order.
// This is not the canonical encoding (strings are not NFC normalized and
// escaping follows encoding/json); use MarshalCanonical for hashing.
func MarshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case StringValue:
		return json.Marshal(string(val))
	case IntValue:
		return json.Marshal(int64(val))
	case BoolValue:
		return json.Marshal(bool(val))
	case ArrayValue:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := MarshalValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case DictValue:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range val.SortedKeys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, fmt.Errorf("marshal key %q: %w", k, err)
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := MarshalValue(val[k])
			if err != nil {
				return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}

// UnmarshalValue deserializes JSON into a Value with strict validation:
// floats and null are rejected, only string/int/bool/array/dict are
// allowed. This is the primary API for external JSON parsing.
func UnmarshalValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return ToValue(raw)
}

// ToValue recursively converts a decoded Go value to a Value.
// Rejects null and floats.
func ToValue(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in attribute payloads: only string, int, bool, array, dict allowed")
	case bool:
		return BoolValue(val), nil
	case string:
		return StringValue(val), nil
	case int:
		return IntValue(val), nil
	case int64:
		return IntValue(val), nil
	case json.Number:
		s := string(val)
		if strings.ContainsAny(s, ".eE") {
			return nil, fmt.Errorf("floats are forbidden in attribute payloads: %s", val)
		}
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("number out of int64 range: %s", val)
		}
		return IntValue(n), nil
	case []any:
		arr := make(ArrayValue, len(val))
		for i, elem := range val {
			elemVal, err := ToValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = elemVal
		}
		return arr, nil
	case map[string]any:
		dict := make(DictValue, len(val))
		for k, elem := range val {
			elemVal, err := ToValue(elem)
			if err != nil {
				return nil, fmt.Errorf("dict[%q]: %w", k, err)
			}
			dict[k] = elemVal
		}
		return dict, nil
	case Value:
		return val, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// FromValue converts a Value back into plain Go data (string, int64,
// bool, []any, map[string]any), for handing to YAML or JSON encoders.
func FromValue(v Value) (any, error) {
	switch val := v.(type) {
	case StringValue:
		return string(val), nil
	case IntValue:
		return int64(val), nil
	case BoolValue:
		return bool(val), nil
	case ArrayValue:
		out := make([]any, len(val))
		for i, elem := range val {
			conv, err := FromValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			out[i] = conv
		}
		return out, nil
	case DictValue:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			conv, err := FromValue(elem)
			if err != nil {
				return nil, fmt.Errorf("dict[%q]: %w", k, err)
			}
			out[k] = conv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}
