package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger provides leveled logging for CLI tools. Info lines need Verbose,
// Debug lines need DebugMode; warnings and errors are always written.
type Logger struct {
	Verbose   bool
	DebugMode bool

	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// NewLogger creates a logger writing to out.
func NewLogger(out io.Writer, verbose, debug bool) *Logger {
	return &Logger{
		Verbose:   verbose,
		DebugMode: debug,
		out:       out,
		now:       time.Now,
	}
}

func (l *Logger) write(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] %s: %s\n", level, l.now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose {
		l.write("INFO", format, args...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		l.write("DEBUG", format, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.write("WARN", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.write("ERROR", format, args...)
}
