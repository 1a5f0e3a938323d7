// Package logwriter provides an io.Writer that mirrors command output to the
// log of a test.
package logwriter

import (
	"bytes"
	"io"
	"sync"
	"testing"
)

// Writer passes all data to an underlying io.Writer and logs every complete
// line via testing.TB.Log.
type Writer struct {
	tb      testing.TB
	w       io.Writer
	mu      sync.Mutex
	partial []byte
}

// New returns a Writer that writes to w and logs to tb.
// An incomplete last line is logged when the test finished.
func New(tb testing.TB, w io.Writer) *Writer {
	lw := Writer{tb: tb, w: w}
	tb.Cleanup(lw.flush)

	return &lw
}

func (lw *Writer) Write(p []byte) (int, error) {
	lw.tb.Helper()

	lw.mu.Lock()
	defer lw.mu.Unlock()

	n, err := lw.w.Write(p)

	lw.partial = append(lw.partial, p[:n]...)
	for {
		line, rest, found := bytes.Cut(lw.partial, []byte{'\n'})
		if !found {
			break
		}

		lw.tb.Log(string(line))
		lw.partial = rest
	}

	return n, err
}

func (lw *Writer) flush() {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if len(lw.partial) > 0 {
		lw.tb.Log(string(lw.partial))
		lw.partial = nil
	}
}
