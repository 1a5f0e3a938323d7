package table

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnsAreAligned(t *testing.T) {
	var buf bytes.Buffer

	f := New([]string{"Name", "Queue", "Tasks"}, &buf)
	require.NoError(t, f.WriteRow("website", "dotnet", []string{"msbuild", "nunit"}))
	require.NoError(t, f.WriteRow("docs", nil, nil))
	require.NoError(t, f.Flush())

	assert.Equal(t,
		"Name       Queue     Tasks\n"+
			"website    dotnet    msbuild, nunit\n"+
			"docs                 \n",
		buf.String(),
	)
}
