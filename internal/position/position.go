// Package position tracks source locations for cookable scripts so that
// every diagnostic can point back at the line it came from.
package position

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Position is a single point in a script.
type Position struct {
	Filename string // Script path, may be empty for in-memory sources
	Line     int    // 1-based line number
	Column   int    // 1-based column number
}

// IsValid reports whether the position points at a real location.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// String renders the position as file:line:col (or line:col without a file).
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SourceFile keeps the text of a script split into lines for diagnostics.
type SourceFile struct {
	Filename string
	Content  string
	Lines    []string
}

// NewSourceFile creates a source file from its content.
func NewSourceFile(filename, content string) *SourceFile {
	return &SourceFile{
		Filename: filename,
		Content:  content,
		Lines:    strings.Split(content, "\n"),
	}
}

// GetLine returns the specified line (1-based) or an empty string if out of range.
func (sf *SourceFile) GetLine(lineNum int) string {
	if lineNum < 1 || lineNum > len(sf.Lines) {
		return ""
	}
	return strings.TrimRight(sf.Lines[lineNum-1], "\r")
}

// Excerpt renders the given line with a gutter, the way error reports show it.
func (sf *SourceFile) Excerpt(lineNum int) string {
	text := sf.GetLine(lineNum)
	if text == "" {
		return ""
	}
	return fmt.Sprintf("%4d | %s", lineNum, text)
}
