package runtime

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdio_PrintThenNl(t *testing.T) {
	var buf bytes.Buffer
	stdio := NewStdio(&buf)

	stdoutFn, ok := stdio.Method("stdout")
	require.True(t, ok)
	stdout, err := stdoutFn()
	require.NoError(t, err)

	stream, ok := stdout.(*Stream)
	require.True(t, ok)

	_, err = Send(stream, "print:", []Value{"hi"})
	require.NoError(t, err)
	_, err = Send(stream, "nl", nil)
	require.NoError(t, err)

	assert.Equal(t, "hi\n", buf.String())
}

func TestStdio_UnknownSelectorNotUnderstood(t *testing.T) {
	stdio := NewStdio(&bytes.Buffer{})
	_, err := Send(stdio, "frobnicate", nil)
	require.Error(t, err)
}
