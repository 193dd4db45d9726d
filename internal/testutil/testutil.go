// Package testutil provides deterministic helpers for tests across the
// abstrap packages: fixed id generation for stable store rows and
// ready-made operation trees.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/femtomc/abstrap/internal/dialect"
	"github.com/femtomc/abstrap/internal/ir"
)

// SequentialIDGenerator mints "test-module-000001", "test-module-000002",
// ... so store rows are byte-identical across runs.
//
// Unlike the default UUIDv7 generator, output depends only on call
// order. Not safe for concurrent use; tests drive it from one
// goroutine.
type SequentialIDGenerator struct {
	prefix string
	n      int
}

// NewSequentialIDGenerator creates a generator with the given prefix.
// An empty prefix defaults to "test-module".
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "test-module"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

// Generate returns the next id in sequence.
//
// Implements store.IDGenerator.
func (g *SequentialIDGenerator) Generate() string {
	g.n++
	return fmt.Sprintf("%s-%06d", g.prefix, g.n)
}

// Spec resolves a fully qualified op name against the default registry,
// failing the test if it is not declared.
func Spec(t *testing.T, name string) *dialect.OpSpec {
	t.Helper()
	spec, ok := dialect.DefaultRegistry().Lookup(name)
	require.True(t, ok, "missing op spec %s", name)
	return spec
}

// AddFunc builds a small well-formed tree:
//
//	func main(a, b) { c = constant value; d = add(a, c); return d }
func AddFunc(t *testing.T, value int64) *ir.Operation {
	t.Helper()

	b := ir.NewOperationBuilder(Spec(t, "base.func"))
	b.InsertAttribute("sym_name", ir.StringAttr("main"))
	b.PushRegion(ir.NewRegion())
	require.NoError(t, b.PushBlock(ir.NewBasicBlock()))

	a0, err := b.PushBlockArgument()
	require.NoError(t, err)
	_, err = b.PushBlockArgument()
	require.NoError(t, err)

	c := ir.NewOperationBuilder(Spec(t, "base.constant"))
	c.InsertAttribute("value", ir.IntAttr(value))
	cv, err := b.PushOperation(c.Finish())
	require.NoError(t, err)

	add := ir.NewOperationBuilder(Spec(t, "base.add"))
	add.PushOperand(a0)
	add.PushOperand(cv)
	av, err := b.PushOperation(add.Finish())
	require.NoError(t, err)

	ret := ir.NewOperationBuilder(Spec(t, "base.return"))
	ret.PushOperand(av)
	_, err = b.PushOperation(ret.Finish())
	require.NoError(t, err)

	return b.Finish()
}
