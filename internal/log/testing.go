package log

import (
	"fmt"
	"strings"
	"testing"
)

// tbOutput forwards log messages to the log of a test.
type tbOutput struct {
	tb testing.TB
}

func (o *tbOutput) Printf(format string, v ...any) {
	o.tb.Helper()
	o.tb.Log(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
}

func (o *tbOutput) Println(v ...any) {
	o.tb.Helper()
	o.tb.Log(v...)
}

// RedirectToTestingLog sends the messages of StdLogger to tb.Log and enables
// debug messages until the test finished.
func RedirectToTestingLog(tb testing.TB) {
	prevOut := StdLogger.GetOutput()
	prevDebug := StdLogger.DebugEnabled()

	StdLogger.SetOutput(&tbOutput{tb: tb})
	StdLogger.EnableDebug(true)

	tb.Cleanup(func() {
		StdLogger.SetOutput(prevOut)
		StdLogger.EnableDebug(prevDebug)
	})
}
