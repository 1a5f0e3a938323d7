package flag

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields(t *testing.T) {
	f := NewFields([]string{"Name", "Queue", "Category"})
	assert.Equal(t, []string{"name", "queue", "category"}, f.Fields)

	require.NoError(t, f.Set("Category, name"))
	assert.Equal(t, []string{"category", "name"}, f.Fields)

	assert.Error(t, f.Set("name,owner"))
	assert.Error(t, f.Set(""))
	assert.Equal(t, []string{"category", "name"}, f.Fields, "failed Set must not modify the fields")
	assert.Equal(t, "category, name, queue", f.ValidValues())
}

func TestFormat(t *testing.T) {
	f := NewFormatFlag()
	assert.Equal(t, FormatPlain, f.Val)

	require.NoError(t, f.Set("JSON"))
	assert.Equal(t, FormatJSON, f.String())

	assert.False(t, f.IsPlain())

	err := f.Set("yaml")
	require.Error(t, err)
	assert.Equal(t, "format must be one of: csv, json, plain", err.Error())
	assert.Equal(t, "FORMAT", f.Type())
}

func TestOneOf(t *testing.T) {
	f := NewOneOfFlag("category", "", "filter by category", "trigger", "task", "sourcecontrol")

	require.NoError(t, f.Set("SourceControl"))
	assert.Equal(t, "sourcecontrol", f.Value())

	err := f.Set("publisher")
	require.Error(t, err)
	assert.Equal(t, "category must be one of: sourcecontrol, task, trigger", err.Error())

	assert.Equal(t,
		"filter by category\none of: sourcecontrol, task, trigger",
		f.Usage(fmt.Sprint),
	)
	assert.Equal(t, "CATEGORY", f.Type())
}

func TestOneOfPanicsOnUppercaseValues(t *testing.T) {
	assert.Panics(t, func() {
		NewOneOfFlag("category", "", "", "Trigger")
	})
}
