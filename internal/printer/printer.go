// Package printer renders finished operation trees in a human-readable
// textual form.
//
// The output is deterministic: attribute keys print in canonical order
// and attribute payloads print as canonical JSON, so the same tree
// always renders to the same bytes. The printer consumes trees
// read-only; it is a collaborator of the construction layer, not part
// of it.
package printer

import (
	"fmt"
	"strings"

	"github.com/femtomc/abstrap/internal/ir"
)

const indentUnit = "  "

// Print renders the tree rooted at op.
//
// An operation prints as
//
//	name(%operands) {key: payload} { regions } -> { successors }
//
// with each region's blocks labelled ^bb0, ^bb1, ... and block
// arguments listed after the label. Operations inside a block are
// prefixed with their result Var.
func Print(op *ir.Operation) (string, error) {
	var sb strings.Builder
	if err := writeOp(&sb, op, 0); err != nil {
		return "", err
	}
	sb.WriteByte('\n')
	return sb.String(), nil
}

func writeOp(sb *strings.Builder, op *ir.Operation, depth int) error {
	sb.WriteString(op.Intrinsic().Name())

	if operands := op.Operands(); len(operands) > 0 {
		sb.WriteByte('(')
		for i, v := range operands {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%%%d", int(v))
		}
		sb.WriteByte(')')
	}

	if err := writeAttrs(sb, op); err != nil {
		return err
	}

	for _, r := range op.Regions() {
		sb.WriteString(" {")
		if err := writeBlocks(sb, r.Blocks(), depth+1); err != nil {
			return err
		}
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(indentUnit, depth))
		sb.WriteByte('}')
	}

	if successors := op.Successors(); len(successors) > 0 {
		sb.WriteString(" -> {")
		if err := writeBlocks(sb, successors, depth+1); err != nil {
			return err
		}
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(indentUnit, depth))
		sb.WriteByte('}')
	}

	return nil
}

// writeAttrs prints the attribute map in canonical key order with
// canonical JSON payloads.
func writeAttrs(sb *strings.Builder, op *ir.Operation) error {
	if op.NumAttributes() == 0 {
		return nil
	}

	payloads := make(ir.DictValue, op.NumAttributes())
	for _, key := range op.AttributeKeys() {
		attr, _ := op.Attribute(key)
		v, err := attr.MarshalIR()
		if err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		payloads[key] = v
	}

	sb.WriteString(" {")
	for i, key := range payloads.SortedKeys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		data, err := ir.MarshalCanonical(payloads[key])
		if err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.Write(data)
	}
	sb.WriteByte('}')
	return nil
}

func writeBlocks(sb *strings.Builder, blocks []*ir.BasicBlock, depth int) error {
	indent := strings.Repeat(indentUnit, depth)
	for j, blk := range blocks {
		sb.WriteByte('\n')
		sb.WriteString(indent)
		fmt.Fprintf(sb, "^bb%d", j)
		if args := blk.Arguments(); len(args) > 0 {
			sb.WriteByte('(')
			for i, v := range args {
				if i > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(sb, "%%%d", int(v))
			}
			sb.WriteByte(')')
		}
		sb.WriteByte(':')

		for k, child := range blk.Operations() {
			sb.WriteByte('\n')
			sb.WriteString(indent)
			sb.WriteString(indentUnit)
			fmt.Fprintf(sb, "%%%d = ", int(blk.Result(k)))
			if err := writeOp(sb, child, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
