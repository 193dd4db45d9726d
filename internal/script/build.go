package script

import (
	"fmt"

	"github.com/femtomc/abstrap/internal/ir"
)

// Resolver maps fully qualified intrinsic names to intrinsic handles.
// dialect.Registry.Resolve satisfies it.
type Resolver func(name string) (ir.Intrinsic, error)

// Build rebuilds the document's operation tree by re-driving the
// builder sequence it describes.
func Build(doc *Document, resolve Resolver) (*ir.Operation, error) {
	return buildOp(&doc.Operation, resolve, "operation")
}

func buildOp(node *OpNode, resolve Resolver, path string) (*ir.Operation, error) {
	intr, err := resolve(node.Intrinsic)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	b := ir.NewOperationBuilder(intr)

	for i := range node.Regions {
		b.PushRegion(ir.NewRegion())
		// PushRegion carries the block cursor over from the previous
		// region; reposition to the new region's start before driving
		// its blocks.
		b.SetCursor(i+1, 0)

		for j := range node.Regions[i].Blocks {
			blk := &node.Regions[i].Blocks[j]
			if err := b.PushBlock(ir.NewBasicBlock()); err != nil {
				return nil, fmt.Errorf("%s.regions[%d].blocks[%d]: %w", path, i, j, err)
			}
			for a := 0; a < blk.Arguments; a++ {
				if _, err := b.PushBlockArgument(); err != nil {
					return nil, fmt.Errorf("%s.regions[%d].blocks[%d]: argument %d: %w", path, i, j, a, err)
				}
			}
			for k := range blk.Operations {
				childPath := fmt.Sprintf("%s.regions[%d].blocks[%d].operations[%d]", path, i, j, k)
				child, err := buildOp(&blk.Operations[k], resolve, childPath)
				if err != nil {
					return nil, err
				}
				if _, err := b.PushOperation(child); err != nil {
					return nil, fmt.Errorf("%s: %w", childPath, err)
				}
			}
		}
	}

	if node.Operands != nil {
		operands := make([]ir.Var, len(node.Operands))
		for i, v := range node.Operands {
			operands[i] = ir.Var(v)
		}
		b.SetOperands(operands)
	}

	for key, payload := range node.Attributes {
		attr, err := attrFromAny(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: attribute %q: %w", path, key, err)
		}
		b.InsertAttribute(key, attr)
	}

	for i := range node.Successors {
		blk, err := buildSuccessor(&node.Successors[i], resolve, fmt.Sprintf("%s.successors[%d]", path, i))
		if err != nil {
			return nil, err
		}
		b.PushSuccessor(blk)
	}

	return b.Finish(), nil
}

// buildSuccessor materializes a standalone successor block. A scratch
// region does the Var minting; the block keeps its arguments.
func buildSuccessor(node *BlockNode, resolve Resolver, path string) (*ir.BasicBlock, error) {
	blk := ir.NewBasicBlock()
	scratch := ir.NewRegion()
	scratch.PushBlock(blk)

	for a := 0; a < node.Arguments; a++ {
		if _, err := scratch.PushArgument(0); err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", path, a, err)
		}
	}
	for k := range node.Operations {
		childPath := fmt.Sprintf("%s.operations[%d]", path, k)
		child, err := buildOp(&node.Operations[k], resolve, childPath)
		if err != nil {
			return nil, err
		}
		if _, err := scratch.PushOperation(0, child); err != nil {
			return nil, fmt.Errorf("%s: %w", childPath, err)
		}
	}
	return blk, nil
}

// attrFromAny converts a decoded YAML/JSON payload into a standard
// attribute. Floats and null are rejected by the Value model.
func attrFromAny(payload any) (ir.Attribute, error) {
	v, err := ir.ToValue(normalizeYAML(payload))
	if err != nil {
		return nil, err
	}
	return ir.AttrFromValue(v)
}

// normalizeYAML converts YAML decoder shapes (map[any]any keys, plain
// ints) into the map[string]any / int64 shapes ir.ToValue accepts.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[fmt.Sprint(k)] = normalizeYAML(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = normalizeYAML(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalizeYAML(elem)
		}
		return out
	case int:
		return int64(val)
	default:
		return v
	}
}
