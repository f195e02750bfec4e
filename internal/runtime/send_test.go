package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_IntegerArithmetic(t *testing.T) {
	v, err := Send(int64(1), "+", []Value{int64(2)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	v, err = Send(int64(2), "*", []Value{int64(4)})
	require.NoError(t, err)
	assert.Equal(t, int64(8), v)
}

func TestSend_IntegerDivisionPromotesToFloatWhenInexact(t *testing.T) {
	v, err := Send(int64(1), "/", []Value{int64(2)})
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	v, err = Send(int64(4), "/", []Value{int64(2)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestSend_MixedIntFloatPromotesToFloat(t *testing.T) {
	v, err := Send(int64(1), "+", []Value{2.5})
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
}

func TestSend_FloorDivAndMod(t *testing.T) {
	v, err := Send(int64(-7), "//", []Value{int64(2)})
	require.NoError(t, err)
	assert.Equal(t, int64(-4), v)

	v, err = Send(int64(-7), "\\\\", []Value{int64(2)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestSend_StringConcatenation(t *testing.T) {
	v, err := Send("foo", ",", []Value{"bar"})
	require.NoError(t, err)
	assert.Equal(t, "foobar", v)
}

func TestSend_UnknownSelectorReturnsMessageNotUnderstood(t *testing.T) {
	_, err := Send(int64(1), "frobnicate", nil)
	require.Error(t, err)
	var mnu *MessageNotUnderstood
	require.ErrorAs(t, err, &mnu)
	assert.Equal(t, "frobnicate", mnu.Selector)
}

func TestSend_ValueSelectorFallsThroughToCallable(t *testing.T) {
	called := false
	prim := &PrimitiveFunction{Name: "p", Fn: func(args ...Value) (Value, error) {
		called = true
		return int64(len(args)), nil
	}}
	v, err := Send(prim, "value:value:", []Value{int64(1), int64(2)})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, int64(2), v)
}

func TestSend_ObjectMethodTakesPriority(t *testing.T) {
	stream := NewStream(new(discardWriter))
	v, err := Send(stream, "print:", []Value{"hi"})
	require.NoError(t, err)
	assert.Same(t, stream, v)
}

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }
