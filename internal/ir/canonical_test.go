package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalNoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical(StringValue("<a> & <b>"))
	require.NoError(t, err)
	assert.Equal(t, `"<a> & <b>"`, string(data))
}

func TestCanonicalNFCNormalization(t *testing.T) {
	// "e" + combining acute accent normalizes to precomposed U+00E9.
	decomposed := StringValue("é")
	precomposed := StringValue("é")

	d1, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	d2, err := MarshalCanonical(precomposed)
	require.NoError(t, err)
	assert.Equal(t, d2, d1)
}

func TestCanonicalLineSeparatorsNotEscaped(t *testing.T) {
	data, err := MarshalCanonical(StringValue("a b c"))
	require.NoError(t, err)
	assert.Equal(t, "\"a b c\"", string(data))
}

func TestCanonicalLiteralBackslashU2028Preserved(t *testing.T) {
	// A literal backslash followed by the text "u2028" must stay escaped.
	data, err := MarshalCanonical(StringValue("\\u2028"))
	require.NoError(t, err)
	assert.Equal(t, `"\\u2028"`, string(data))
}

func TestCanonicalDictKeyOrder(t *testing.T) {
	d := DictValue{"b": IntValue(2), "a": IntValue(1), "c": IntValue(3)}
	data, err := MarshalCanonical(d)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(data))
}

func TestCanonicalRejectsNil(t *testing.T) {
	_, err := MarshalCanonical(nil)
	require.Error(t, err)
}

func TestCanonicalDeterministic(t *testing.T) {
	d := DictValue{
		"ops":  ArrayValue{StringValue("add"), StringValue("mul")},
		"n":    IntValue(12),
		"flag": BoolValue(true),
	}
	first, err := MarshalCanonical(d)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalCanonical(d)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
