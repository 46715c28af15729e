// Package term answers whether a file descriptor is an interactive terminal
// and colours diagnostics when it is.
package term

import "os"

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return isTerminal(int(fd))
}

// IsStdinTerminal reports whether standard input is interactive.
func IsStdinTerminal() bool { return IsTerminal(os.Stdin.Fd()) }

// IsStderrTerminal reports whether standard error is interactive.
func IsStderrTerminal() bool { return IsTerminal(os.Stderr.Fd()) }

// Palette wraps text in ANSI colours when enabled.
type Palette struct {
	Enabled bool
}

func (p Palette) wrap(code, s string) string {
	if !p.Enabled {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func (p Palette) Red(s string) string   { return p.wrap("31", s) }
func (p Palette) Green(s string) string { return p.wrap("32", s) }
func (p Palette) Blue(s string) string  { return p.wrap("94", s) }
func (p Palette) Dim(s string) string   { return p.wrap("2", s) }
