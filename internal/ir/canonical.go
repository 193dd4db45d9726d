package ir

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON for a Value tree.
// This is the only serialization that may be used for fingerprint
// computation.
//
// Differences from standard json.Marshal:
//  1. Dict keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping (< > & are not escaped)
//  3. Strings are NFC normalized
//  4. No floats, no null (error)
func MarshalCanonical(v Value) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case StringValue:
		return marshalCanonicalString(string(val))
	case IntValue:
		return fmt.Appendf(nil, "%d", int64(val)), nil
	case BoolValue:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case ArrayValue:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := MarshalCanonical(elem)
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
			kb, err := marshalCanonicalString(k)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := MarshalCanonical(val[k])
			if err != nil {
				return nil, fmt.Errorf("value for key %q: %w", k, err)
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// marshalCanonicalString produces a canonical JSON string literal.
// RFC 8785 requirements:
//   - strings are NFC normalized at the serialization boundary
//   - no HTML escaping (<, >, & stay literal)
//   - U+2028 and U+2029 are not escaped; only control characters
//     (U+0000-U+001F), backslash, and quote are
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	// Go's encoder escapes U+2028/U+2029 for JavaScript compatibility,
	// which violates RFC 8785. Undo that, leaving literal-backslash
	// sequences ("\\u2028") untouched.
	return unescapeSeparators(result), nil
}

// unescapeSeparators converts   and   escape sequences back to
// the literal characters. A sequence preceded by an odd run of
// backslashes in the output is a real escape; an even run means the
// backslashes pair up as escaped backslashes and the "u2028" text is
// literal data.
func unescapeSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	result := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		if i+6 <= len(data) && data[i] == '\\' && data[i+1] == 'u' &&
			data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') {
			trailing := 0
			for j := len(result) - 1; j >= 0 && result[j] == '\\'; j-- {
				trailing++
			}
			if trailing%2 == 0 {
				if data[i+5] == '8' {
					result = append(result, 0xE2, 0x80, 0xA8) // U+2028
				} else {
					result = append(result, 0xE2, 0x80, 0xA9) // U+2029
				}
				i += 6
				continue
			}
		}
		result = append(result, data[i])
		i++
	}
	return result
}
