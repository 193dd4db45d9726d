package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/femtomc/abstrap/internal/dialect"
	"github.com/femtomc/abstrap/internal/ir"
)

func mustSpec(t *testing.T, name string) *dialect.OpSpec {
	t.Helper()
	spec, ok := dialect.DefaultRegistry().Lookup(name)
	require.True(t, ok, "missing op spec %s", name)
	return spec
}

func buildFunc(t *testing.T, body func(b *ir.OperationBuilder)) *ir.Operation {
	t.Helper()
	b := ir.NewOperationBuilder(mustSpec(t, "base.func"))
	b.InsertAttribute("sym_name", ir.StringAttr("main"))
	b.PushRegion(ir.NewRegion())
	require.NoError(t, b.PushBlock(ir.NewBasicBlock()))
	body(b)
	return b.Finish()
}

func pushOp(t *testing.T, b *ir.OperationBuilder, op *ir.Operation) {
	t.Helper()
	_, err := b.PushOperation(op)
	require.NoError(t, err)
}

func returnOp(t *testing.T) *ir.Operation {
	t.Helper()
	return ir.NewOperationBuilder(mustSpec(t, "base.return")).Finish()
}

func codes(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestVerifyCleanTree(t *testing.T) {
	op := buildFunc(t, func(b *ir.OperationBuilder) {
		c := ir.NewOperationBuilder(mustSpec(t, "base.constant"))
		c.InsertAttribute("value", ir.IntAttr(1))
		pushOp(t, b, c.Finish())
		pushOp(t, b, returnOp(t))
	})

	assert.Empty(t, Verify(op, DefaultOptions()))
}

func TestVerifyEmptyBlock(t *testing.T) {
	op := buildFunc(t, func(b *ir.OperationBuilder) {})

	diags := Verify(op, DefaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, CodeEmptyBlock, diags[0].Code)
	assert.Equal(t, "operation.regions[0].blocks[0]", diags[0].Path)
}

func TestVerifyMissingTerminator(t *testing.T) {
	op := buildFunc(t, func(b *ir.OperationBuilder) {
		c := ir.NewOperationBuilder(mustSpec(t, "base.constant"))
		c.InsertAttribute("value", ir.IntAttr(1))
		pushOp(t, b, c.Finish())
	})

	diags := Verify(op, DefaultOptions())
	assert.Contains(t, codes(diags), CodeMissingTerminator)
}

func TestVerifyMidBlockTerminator(t *testing.T) {
	op := buildFunc(t, func(b *ir.OperationBuilder) {
		pushOp(t, b, returnOp(t))
		pushOp(t, b, returnOp(t))
	})

	diags := Verify(op, DefaultOptions())
	assert.Contains(t, codes(diags), CodeMidBlockTerminator)
}

func TestVerifyOperandArity(t *testing.T) {
	op := buildFunc(t, func(b *ir.OperationBuilder) {
		add := ir.NewOperationBuilder(mustSpec(t, "base.add"))
		add.PushOperand(ir.Var(0)) // base.add expects 2
		pushOp(t, b, add.Finish())
		pushOp(t, b, returnOp(t))
	})

	diags := Verify(op, DefaultOptions())
	require.Contains(t, codes(diags), CodeOperandArity)
	for _, d := range diags {
		if d.Code == CodeOperandArity {
			assert.Contains(t, d.Message, "base.add")
			assert.Contains(t, d.Path, "operations[0]")
		}
	}
}

func TestVerifyRegionArity(t *testing.T) {
	// base.func expects exactly one region.
	b := ir.NewOperationBuilder(mustSpec(t, "base.func"))
	b.InsertAttribute("sym_name", ir.StringAttr("empty"))
	op := b.Finish()

	diags := Verify(op, DefaultOptions())
	assert.Contains(t, codes(diags), CodeRegionArity)
}

func TestVerifyMissingRequiredAttribute(t *testing.T) {
	op := buildFunc(t, func(b *ir.OperationBuilder) {
		c := ir.NewOperationBuilder(mustSpec(t, "base.constant")) // no "value"
		pushOp(t, b, c.Finish())
		pushOp(t, b, returnOp(t))
	})

	diags := Verify(op, DefaultOptions())
	assert.Contains(t, codes(diags), CodeMissingAttribute)
}

func TestVerifySuccessorArity(t *testing.T) {
	op := buildFunc(t, func(b *ir.OperationBuilder) {
		br := ir.NewOperationBuilder(mustSpec(t, "base.br")) // expects 1 successor
		pushOp(t, b, br.Finish())
	})

	diags := Verify(op, DefaultOptions())
	assert.Contains(t, codes(diags), CodeSuccessorArity)
}

type unregisteredIntrinsic struct{}

func (unregisteredIntrinsic) Name() string       { return "mystery.op" }
func (unregisteredIntrinsic) Traits() []ir.Trait { return []ir.Trait{ir.TraitTerminator} }

func TestVerifyUnknownOp(t *testing.T) {
	op := buildFunc(t, func(b *ir.OperationBuilder) {
		pushOp(t, b, ir.NewOperationBuilder(unregisteredIntrinsic{}).Finish())
	})

	// Skipped silently by default.
	opts := DefaultOptions()
	assert.Empty(t, Verify(op, opts))

	opts.RequireRegistered = true
	diags := Verify(op, opts)
	require.Len(t, diags, 1)
	assert.Equal(t, CodeUnknownOp, diags[0].Code)
}

func TestVerifyStructuralOnly(t *testing.T) {
	// Without a registry, arity violations are not reported.
	b := ir.NewOperationBuilder(mustSpec(t, "base.add"))
	op := b.Finish()

	diags := Verify(op, Options{})
	assert.Empty(t, diags)
}
