package script

import (
	"fmt"

	"github.com/femtomc/abstrap/internal/ir"
)

// Encode renders a finished operation tree as a rebuild document.
func Encode(name string, op *ir.Operation) (*Document, error) {
	node, err := encodeOp(op)
	if err != nil {
		return nil, err
	}
	return &Document{Name: name, Operation: *node}, nil
}

func encodeOp(op *ir.Operation) (*OpNode, error) {
	node := &OpNode{Intrinsic: op.Intrinsic().Name()}

	if len(op.Operands()) > 0 {
		node.Operands = make([]int64, len(op.Operands()))
		for i, v := range op.Operands() {
			node.Operands[i] = int64(v)
		}
	}

	if op.NumAttributes() > 0 {
		node.Attributes = make(map[string]any, op.NumAttributes())
		for _, key := range op.AttributeKeys() {
			attr, _ := op.Attribute(key)
			v, err := attr.MarshalIR()
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", key, err)
			}
			plain, err := ir.FromValue(v)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", key, err)
			}
			node.Attributes[key] = plain
		}
	}

	for i, r := range op.Regions() {
		rn := RegionNode{}
		for j, blk := range r.Blocks() {
			bn, err := encodeBlock(blk)
			if err != nil {
				return nil, fmt.Errorf("regions[%d].blocks[%d]: %w", i, j, err)
			}
			rn.Blocks = append(rn.Blocks, *bn)
		}
		node.Regions = append(node.Regions, rn)
	}

	for i, blk := range op.Successors() {
		bn, err := encodeBlock(blk)
		if err != nil {
			return nil, fmt.Errorf("successors[%d]: %w", i, err)
		}
		node.Successors = append(node.Successors, *bn)
	}

	return node, nil
}

func encodeBlock(blk *ir.BasicBlock) (*BlockNode, error) {
	bn := &BlockNode{Arguments: len(blk.Arguments())}
	for k, child := range blk.Operations() {
		cn, err := encodeOp(child)
		if err != nil {
			return nil, fmt.Errorf("operations[%d]: %w", k, err)
		}
		bn.Operations = append(bn.Operations, *cn)
	}
	return bn, nil
}
