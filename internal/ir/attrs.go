package ir

import "fmt"

// Standard attribute kinds. Extension code is free to implement
// Attribute directly; these cover the common payload shapes and are what
// the script decoder rebuilds generic documents into.

// StringAttr is a string-valued attribute.
type StringAttr string

// MarshalIR implements Attribute.
func (a StringAttr) MarshalIR() (Value, error) { return StringValue(a), nil }

// IntAttr is an integer-valued attribute.
type IntAttr int64

// MarshalIR implements Attribute.
func (a IntAttr) MarshalIR() (Value, error) { return IntValue(a), nil }

// BoolAttr is a boolean-valued attribute.
type BoolAttr bool

// MarshalIR implements Attribute.
func (a BoolAttr) MarshalIR() (Value, error) { return BoolValue(a), nil }

// ArrayAttr is an ordered list of attributes.
type ArrayAttr []Attribute

// MarshalIR implements Attribute.
func (a ArrayAttr) MarshalIR() (Value, error) {
	arr := make(ArrayValue, len(a))
	for i, elem := range a {
		v, err := elem.MarshalIR()
		if err != nil {
			return nil, fmt.Errorf("array attribute [%d]: %w", i, err)
		}
		arr[i] = v
	}
	return arr, nil
}

// DictAttr is a nested name->attribute mapping.
type DictAttr map[string]Attribute

// MarshalIR implements Attribute.
func (a DictAttr) MarshalIR() (Value, error) {
	dict := make(DictValue, len(a))
	for k, elem := range a {
		v, err := elem.MarshalIR()
		if err != nil {
			return nil, fmt.Errorf("dict attribute [%q]: %w", k, err)
		}
		dict[k] = v
	}
	return dict, nil
}

// TypeAttr names a type in some external type universe. The core does
// no type-checking; the name is carried opaquely.
type TypeAttr string

// MarshalIR implements Attribute.
func (a TypeAttr) MarshalIR() (Value, error) {
	return DictValue{"type": StringValue(a)}, nil
}

// AttrFromValue rebuilds a standard attribute from a Value tree.
// Used by collaborators that round-trip attribute maps generically.
func AttrFromValue(v Value) (Attribute, error) {
	switch val := v.(type) {
	case StringValue:
		return StringAttr(val), nil
	case IntValue:
		return IntAttr(val), nil
	case BoolValue:
		return BoolAttr(val), nil
	case ArrayValue:
		arr := make(ArrayAttr, len(val))
		for i, elem := range val {
			a, err := AttrFromValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = a
		}
		return arr, nil
	case DictValue:
		if t, ok := val["type"]; ok && len(val) == 1 {
			if name, ok := t.(StringValue); ok {
				return TypeAttr(name), nil
			}
		}
		dict := make(DictAttr, len(val))
		for k, elem := range val {
			a, err := AttrFromValue(elem)
			if err != nil {
				return nil, fmt.Errorf("dict[%q]: %w", k, err)
			}
			dict[k] = a
		}
		return dict, nil
	default:
		return nil, NewCaselessError(fmt.Sprintf("no attribute kind for value type %T", v))
	}
}
