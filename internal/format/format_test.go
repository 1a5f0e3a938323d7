package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCells(t *testing.T) {
	var nilSlice []string

	assert.Equal(t,
		[]string{"website", "", "3", "git, svn", "", "true"},
		Cells([]any{"website", nil, 3, []string{"git", "svn"}, nilSlice, true}),
	)
}
