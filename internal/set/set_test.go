package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := From([]string{"svn", "git"})

	assert.True(t, s.Contains("git"))
	assert.False(t, s.AddIfMissing("git"))
	assert.True(t, s.AddIfMissing("hg"))
	assert.Equal(t, []string{"git", "hg", "svn"}, Sorted(s))
}
