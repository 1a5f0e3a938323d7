package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColoredValuesWithoutColors(t *testing.T) {
	DisableColors()

	assert.Equal(t, "yes", ColoredRequired(true))
	assert.Equal(t, "no", ColoredRequired(false))
	assert.Equal(t, "0", ColoredCount(0))
	assert.Equal(t, "3", ColoredCount(3))
}
