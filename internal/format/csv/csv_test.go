package csv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRows(t *testing.T) {
	var buf bytes.Buffer

	f := New([]string{"Name", "Priority"}, &buf)
	require.NoError(t, f.WriteRow("a,b", 1))
	require.NoError(t, f.WriteRow("c", nil))
	require.NoError(t, f.Flush())

	assert.Equal(t, "Name,Priority\n\"a,b\",1\nc,\n", buf.String())
}

func TestWithoutHeader(t *testing.T) {
	var buf bytes.Buffer

	f := New(nil, &buf)
	require.NoError(t, f.WriteRow("a"))
	require.NoError(t, f.Flush())

	assert.Equal(t, "a\n", buf.String())
}
