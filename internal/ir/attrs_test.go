package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardAttrsMarshal(t *testing.T) {
	tests := []struct {
		name string
		attr Attribute
		want Value
	}{
		{"string", StringAttr("main"), StringValue("main")},
		{"int", IntAttr(-3), IntValue(-3)},
		{"bool", BoolAttr(true), BoolValue(true)},
		{"array", ArrayAttr{IntAttr(1), StringAttr("x")}, ArrayValue{IntValue(1), StringValue("x")}},
		{"dict", DictAttr{"n": IntAttr(1)}, DictValue{"n": IntValue(1)}},
		{"type", TypeAttr("i64"), DictValue{"type": StringValue("i64")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.attr.MarshalIR()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttrFromValueRoundTrip(t *testing.T) {
	attrs := []Attribute{
		StringAttr("x"),
		IntAttr(9),
		BoolAttr(false),
		ArrayAttr{IntAttr(1), IntAttr(2)},
		DictAttr{"inner": StringAttr("y")},
		TypeAttr("f.tensor"),
	}
	for _, a := range attrs {
		v, err := a.MarshalIR()
		require.NoError(t, err)
		back, err := AttrFromValue(v)
		require.NoError(t, err)
		assert.Equal(t, a, back)
	}
}
