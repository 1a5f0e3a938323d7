// Package log provides the leveled logger of ccnetcfg.
// Messages are written unstructured to stderr, warnings are prefixed with
// their colored level.
package log

import (
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"
)

var warnPrefix = color.New(color.FgYellow).Sprint("WARNING: ")

// Output is where a Logger writes its messages to.
type Output interface {
	Printf(format string, v ...any)
	Println(v ...any)
}

// Logger writes debug and warning messages to an Output.
type Logger struct {
	debug atomic.Bool

	mu  sync.Mutex
	out Output
}

// StdLogger is used by the package-level log functions.
var StdLogger = New(false)

// New returns a Logger that writes to stderr.
func New(debug bool) *Logger {
	l := Logger{out: log.New(os.Stderr, "", 0)}
	l.debug.Store(debug)

	return &l
}

func (l *Logger) EnableDebug(enabled bool) {
	l.debug.Store(enabled)
}

func (l *Logger) DebugEnabled() bool {
	return l.debug.Load()
}

// Debugf logs a message if debug logging is enabled.
func (l *Logger) Debugf(format string, v ...any) {
	if l.DebugEnabled() {
		l.GetOutput().Printf(format, v...)
	}
}

// Warnf logs a problem that does not prevent the operation from succeeding.
func (l *Logger) Warnf(format string, v ...any) {
	l.GetOutput().Printf(warnPrefix+format, v...)
}

func (l *Logger) GetOutput() Output {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.out
}

func (l *Logger) SetOutput(o Output) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.out = o
}

// Debugf logs a debug message via StdLogger.
func Debugf(format string, v ...any) {
	StdLogger.Debugf(format, v...)
}

// Warnf logs a warning via StdLogger.
func Warnf(format string, v ...any) {
	StdLogger.Warnf(format, v...)
}
