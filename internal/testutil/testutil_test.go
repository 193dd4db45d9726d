package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/femtomc/abstrap/internal/ir"
)

func TestSequentialIDGenerator(t *testing.T) {
	g := NewSequentialIDGenerator("")
	assert.Equal(t, "test-module-000001", g.Generate())
	assert.Equal(t, "test-module-000002", g.Generate())

	custom := NewSequentialIDGenerator("fix")
	assert.Equal(t, "fix-000001", custom.Generate())
}

func TestAddFuncIsDeterministic(t *testing.T) {
	a := AddFunc(t, 40)
	b := AddFunc(t, 40)

	fa, err := ir.Fingerprint(a)
	require.NoError(t, err)
	fb, err := ir.Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
}
