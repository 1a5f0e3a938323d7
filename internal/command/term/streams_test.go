package term

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrPrint(t *testing.T) {
	DisableColors()

	var buf bytes.Buffer
	s := NewStream(&buf)

	s.ErrPrintln(errors.New("broken"))
	s.ErrPrintf(errors.New("broken"), "loading %s failed", "ccnet.config")

	assert.Equal(t,
		"ERROR: broken\nERROR: loading ccnet.config failed: broken\n",
		buf.String(),
	)
}
