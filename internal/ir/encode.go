package ir

import "fmt"

// EncodeOperation renders a finished operation tree as a Value tree.
// The encoding is structural and loss-free for everything the
// construction contract needs: intrinsic name, operand Vars, attribute
// payloads (via their MarshalIR capability), nested regions, and
// successor blocks. Collaborators use it for canonical hashing and for
// persistence; the script package re-drives a builder from the same
// shape to rebuild the tree.
func EncodeOperation(op *Operation) (DictValue, error) {
	operands := make(ArrayValue, len(op.Operands()))
	for i, v := range op.Operands() {
		operands[i] = IntValue(v)
	}

	attrs := make(DictValue, op.NumAttributes())
	for _, k := range op.AttributeKeys() {
		a, _ := op.Attribute(k)
		v, err := a.MarshalIR()
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		attrs[k] = v
	}

	regions := make(ArrayValue, len(op.Regions()))
	for i, r := range op.Regions() {
		enc, err := encodeRegion(r)
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		regions[i] = enc
	}

	successors := make(ArrayValue, len(op.Successors()))
	for i, blk := range op.Successors() {
		enc, err := encodeBlock(blk)
		if err != nil {
			return nil, fmt.Errorf("successor %d: %w", i, err)
		}
		successors[i] = enc
	}

	return DictValue{
		"intrinsic":  StringValue(op.Intrinsic().Name()),
		"operands":   operands,
		"attributes": attrs,
		"regions":    regions,
		"successors": successors,
	}, nil
}

func encodeRegion(r *Region) (DictValue, error) {
	blocks := make(ArrayValue, len(r.Blocks()))
	for i, blk := range r.Blocks() {
		enc, err := encodeBlock(blk)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		blocks[i] = enc
	}
	return DictValue{"blocks": blocks}, nil
}

func encodeBlock(blk *BasicBlock) (DictValue, error) {
	args := make(ArrayValue, len(blk.Arguments()))
	for i, v := range blk.Arguments() {
		args[i] = IntValue(v)
	}

	ops := make(ArrayValue, len(blk.Operations()))
	for i, op := range blk.Operations() {
		enc, err := EncodeOperation(op)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		enc["result"] = IntValue(blk.Result(i))
		ops[i] = enc
	}

	return DictValue{
		"arguments":  args,
		"operations": ops,
	}, nil
}
