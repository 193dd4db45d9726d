package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleOp(t *testing.T, value int64) *Operation {
	t.Helper()

	child := NewOperationBuilder(testIntrinsic{name: "base.constant"})
	child.InsertAttribute("value", IntAttr(value))
	childOp := child.Finish()

	b := NewOperationBuilder(testIntrinsic{name: "base.func"})
	b.InsertAttribute("sym_name", StringAttr("main"))
	b.PushRegion(NewRegion())
	require.NoError(t, b.PushBlock(NewBasicBlock()))
	_, err := b.PushBlockArgument()
	require.NoError(t, err)
	_, err = b.PushOperation(childOp)
	require.NoError(t, err)
	return b.Finish()
}

func TestFingerprintStable(t *testing.T) {
	// The same construction sequence fingerprints identically.
	a := buildSampleOp(t, 7)
	b := buildSampleOp(t, 7)

	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.Len(t, fa, 64) // hex SHA-256
}

func TestFingerprintSensitiveToPayload(t *testing.T) {
	fa, err := Fingerprint(buildSampleOp(t, 7))
	require.NoError(t, err)
	fb, err := Fingerprint(buildSampleOp(t, 8))
	require.NoError(t, err)
	assert.NotEqual(t, fa, fb)
}

func TestFingerprintDomainSeparation(t *testing.T) {
	attr := IntAttr(7)
	av, err := attr.MarshalIR()
	require.NoError(t, err)
	canonical, err := MarshalCanonical(av)
	require.NoError(t, err)

	opStyle := hashWithDomain(DomainOperation, canonical)
	attrStyle := hashWithDomain(DomainAttribute, canonical)
	assert.NotEqual(t, opStyle, attrStyle)
}

func TestEncodeOperationShape(t *testing.T) {
	op := buildSampleOp(t, 7)

	enc, err := EncodeOperation(op)
	require.NoError(t, err)

	assert.Equal(t, StringValue("base.func"), enc["intrinsic"])

	regions, ok := enc["regions"].(ArrayValue)
	require.True(t, ok)
	require.Len(t, regions, 1)

	blocks := regions[0].(DictValue)["blocks"].(ArrayValue)
	require.Len(t, blocks, 1)

	entry := blocks[0].(DictValue)
	assert.Len(t, entry["arguments"].(ArrayValue), 1)
	ops := entry["operations"].(ArrayValue)
	require.Len(t, ops, 1)
	assert.Equal(t, StringValue("base.constant"), ops[0].(DictValue)["intrinsic"])

	// Entry-block argument is linked into the operand list.
	operands := enc["operands"].(ArrayValue)
	require.Len(t, operands, 1)
	assert.Equal(t, IntValue(0), operands[0])
}

func TestAttributeFingerprint(t *testing.T) {
	f1, err := AttributeFingerprint(DictAttr{"k": IntAttr(1)})
	require.NoError(t, err)
	f2, err := AttributeFingerprint(DictAttr{"k": IntAttr(1)})
	require.NoError(t, err)
	assert.Equal(t, f1, f2)
}
