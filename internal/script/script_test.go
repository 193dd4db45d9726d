package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/femtomc/abstrap/internal/dialect"
	"github.com/femtomc/abstrap/internal/ir"
)

const sampleYAML = `
name: sample
operation:
  intrinsic: base.func
  attributes:
    sym_name: main
  regions:
    - blocks:
        - arguments: 2
          operations:
            - intrinsic: base.constant
              attributes:
                value: 40
            - intrinsic: base.add
              operands: [0, 2]
            - intrinsic: base.return
              operands: [3]
`

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	doc, err := Load(writeScript(t, "sample.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "sample", doc.Name)
	assert.Equal(t, "base.func", doc.Operation.Intrinsic)
	require.Len(t, doc.Operation.Regions, 1)
	require.Len(t, doc.Operation.Regions[0].Blocks, 1)
	entry := doc.Operation.Regions[0].Blocks[0]
	assert.Equal(t, 2, entry.Arguments)
	assert.Len(t, entry.Operations, 3)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(writeScript(t, "typo.yaml", `
operation:
  intrinsic: base.return
  atributes: {}
`))
	require.Error(t, err)
}

func TestLoadRejectsMissingIntrinsic(t *testing.T) {
	_, err := Load(writeScript(t, "bad.yaml", `
operation:
  regions: []
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intrinsic is required")
}

func TestLoadJSON(t *testing.T) {
	doc, err := Load(writeScript(t, "sample.json", `{
  "operation": {"intrinsic": "base.return"}
}`))
	require.NoError(t, err)
	assert.Equal(t, "base.return", doc.Operation.Intrinsic)
}

func TestBuildRebuildsTree(t *testing.T) {
	doc, err := Load(writeScript(t, "sample.yaml", sampleYAML))
	require.NoError(t, err)

	op, err := Build(doc, dialect.DefaultRegistry().Resolve)
	require.NoError(t, err)

	assert.Equal(t, "base.func", op.Intrinsic().Name())
	require.Len(t, op.Regions(), 1)
	entry := op.Regions()[0].Blocks()[0]
	require.Len(t, entry.Arguments(), 2)
	require.Len(t, entry.Operations(), 3)

	// Entry-block arguments link into the func's operand list.
	assert.Equal(t, []ir.Var{0, 1}, op.Operands())

	// The add references the first block argument and the constant's
	// result, in the region-scoped numbering the builder minted.
	add := entry.Operations()[1]
	assert.Equal(t, "base.add", add.Intrinsic().Name())
	assert.Equal(t, []ir.Var{0, 2}, add.Operands())

	// Attribute payloads survive the boundary.
	attr, ok := op.Attribute("sym_name")
	require.True(t, ok)
	assert.Equal(t, ir.StringAttr("main"), attr)
}

func TestBuildUnknownIntrinsic(t *testing.T) {
	doc := &Document{Operation: OpNode{Intrinsic: "ghost.op"}}
	_, err := Build(doc, dialect.DefaultRegistry().Resolve)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost.op")
}

func TestBuildRejectsFloatAttribute(t *testing.T) {
	doc := &Document{Operation: OpNode{
		Intrinsic:  "base.constant",
		Attributes: map[string]any{"value": 1.5},
	}}
	_, err := Build(doc, dialect.DefaultRegistry().Resolve)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "float")
}

func TestRoundTripFingerprint(t *testing.T) {
	// Build from a document, encode back, rebuild: fingerprints match.
	doc, err := Load(writeScript(t, "sample.yaml", sampleYAML))
	require.NoError(t, err)

	resolve := dialect.DefaultRegistry().Resolve
	op, err := Build(doc, resolve)
	require.NoError(t, err)

	encoded, err := Encode("sample", op)
	require.NoError(t, err)

	rebuilt, err := Build(encoded, resolve)
	require.NoError(t, err)

	f1, err := ir.Fingerprint(op)
	require.NoError(t, err)
	f2, err := ir.Fingerprint(rebuilt)
	require.NoError(t, err)
	assert.Equal(t, f1, f2)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	doc, err := Load(writeScript(t, "sample.yaml", sampleYAML))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, Save(out, doc))

	again, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestBuildMultiRegion(t *testing.T) {
	// The loader repositions the cursor per region, so the builder's
	// block-cursor carry-over never leaks into rebuilt trees.
	doc := &Document{Operation: OpNode{
		Intrinsic: "base.module",
		Regions: []RegionNode{
			{Blocks: []BlockNode{{Arguments: 1}, {Arguments: 1}}},
			{Blocks: []BlockNode{{Arguments: 2}}},
		},
	}}

	op, err := Build(doc, dialect.DefaultRegistry().Resolve)
	require.NoError(t, err)
	require.Len(t, op.Regions(), 2)
	assert.Len(t, op.Regions()[0].Blocks(), 2)
	assert.Len(t, op.Regions()[1].Blocks(), 1)
	assert.Len(t, op.Regions()[1].Blocks()[0].Arguments(), 2)
}
