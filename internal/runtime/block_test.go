package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock_CallPassesCapturesAndArgumentsToInvoke(t *testing.T) {
	var gotCaptures, gotArgs []Value
	template := &BlockTemplate{
		ArgumentCount: 1,
		Invoke: func(captures, args []Value) (Value, error) {
			gotCaptures = captures
			gotArgs = args
			return int64(42), nil
		},
	}
	block := &Block{Template: template, Captures: []Value{int64(7)}}

	v, err := block.Call(int64(9))
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
	assert.Equal(t, []Value{int64(7)}, gotCaptures)
	assert.Equal(t, []Value{int64(9)}, gotArgs)
}

func TestBlock_CallArityMismatch(t *testing.T) {
	template := &BlockTemplate{ArgumentCount: 2}
	block := &Block{Template: template}

	_, err := block.Call(int64(1))
	require.Error(t, err)
}
