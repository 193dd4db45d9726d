package printer

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/femtomc/abstrap/internal/dialect"
	"github.com/femtomc/abstrap/internal/ir"
)

func spec(t *testing.T, name string) *dialect.OpSpec {
	t.Helper()
	s, ok := dialect.DefaultRegistry().Lookup(name)
	require.True(t, ok, "missing op spec %s", name)
	return s
}

// buildAddFunc builds: func main(a, b) { c = const 40; d = add(a, c); return d }
func buildAddFunc(t *testing.T) *ir.Operation {
	t.Helper()

	b := ir.NewOperationBuilder(spec(t, "base.func"))
	b.InsertAttribute("sym_name", ir.StringAttr("main"))
	b.PushRegion(ir.NewRegion())
	require.NoError(t, b.PushBlock(ir.NewBasicBlock()))

	a0, err := b.PushBlockArgument()
	require.NoError(t, err)
	_, err = b.PushBlockArgument()
	require.NoError(t, err)

	c := ir.NewOperationBuilder(spec(t, "base.constant"))
	c.InsertAttribute("value", ir.IntAttr(40))
	cv, err := b.PushOperation(c.Finish())
	require.NoError(t, err)

	add := ir.NewOperationBuilder(spec(t, "base.add"))
	add.PushOperand(a0)
	add.PushOperand(cv)
	av, err := b.PushOperation(add.Finish())
	require.NoError(t, err)

	ret := ir.NewOperationBuilder(spec(t, "base.return"))
	ret.PushOperand(av)
	_, err = b.PushOperation(ret.Finish())
	require.NoError(t, err)

	return b.Finish()
}

// buildModule builds: module { func id(x) { return x } }
func buildModule(t *testing.T) *ir.Operation {
	t.Helper()

	fn := ir.NewOperationBuilder(spec(t, "base.func"))
	fn.InsertAttribute("sym_name", ir.StringAttr("id"))
	fn.PushRegion(ir.NewRegion())
	require.NoError(t, fn.PushBlock(ir.NewBasicBlock()))
	x, err := fn.PushBlockArgument()
	require.NoError(t, err)
	ret := ir.NewOperationBuilder(spec(t, "base.return"))
	ret.PushOperand(x)
	_, err = fn.PushOperation(ret.Finish())
	require.NoError(t, err)

	m := ir.NewOperationBuilder(spec(t, "base.module"))
	m.PushRegion(ir.NewRegion())
	require.NoError(t, m.PushBlock(ir.NewBasicBlock()))
	_, err = m.PushOperation(fn.Finish())
	require.NoError(t, err)

	return m.Finish()
}

func TestPrintAddFunc(t *testing.T) {
	out, err := Print(buildAddFunc(t))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "add_func", []byte(out))
}

func TestPrintNestedModule(t *testing.T) {
	out, err := Print(buildModule(t))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "nested_module", []byte(out))
}

func TestPrintDeterministic(t *testing.T) {
	op := buildAddFunc(t)
	first, err := Print(op)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Print(op)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPrintAttributeOrder(t *testing.T) {
	b := ir.NewOperationBuilder(spec(t, "base.constant"))
	b.InsertAttribute("value", ir.IntAttr(1))
	b.InsertAttribute("label", ir.StringAttr("x"))

	out, err := Print(b.Finish())
	require.NoError(t, err)
	assert.Equal(t, "base.constant {label: \"x\", value: 1}\n", out)
}

func TestPrintSuccessors(t *testing.T) {
	target := ir.NewBasicBlock()

	br := ir.NewOperationBuilder(spec(t, "base.br"))
	br.PushSuccessor(target)

	out, err := Print(br.Finish())
	require.NoError(t, err)
	assert.Equal(t, "base.br -> {\n  ^bb0:\n}\n", out)
}
