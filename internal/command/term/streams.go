package term

import (
	"fmt"
	"io"
	"sync"
)

func errPrefix() string {
	return RedHighlight("ERROR:")
}

// Stream serializes writes of concurrent callers to a terminal output.
type Stream struct {
	out io.Writer
	mu  sync.Mutex
}

func NewStream(out io.Writer) *Stream {
	return &Stream{out: out}
}

func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.out.Write(p)
}

func (s *Stream) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s, format, a...)
}

func (s *Stream) Println(a ...any) {
	_, _ = fmt.Fprintln(s, a...)
}

// ErrPrintln prints err prefixed with "ERROR: ".
func (s *Stream) ErrPrintln(err error) {
	s.Println(errPrefix(), err)
}

// ErrPrintf prints "ERROR: <msg>: <err>", msg is created from format and a.
func (s *Stream) ErrPrintf(err error, format string, a ...any) {
	s.Println(errPrefix(), fmt.Sprintf(format, a...)+":", err)
}
