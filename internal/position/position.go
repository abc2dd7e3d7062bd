// Package position provides source position tracking for the Pythia
// frontend. Every token and AST node carries a Span so downstream
// consumers (diagnostics, editor layers) can map results back to the
// original source text.
package position

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Position is a single point in source code.
type Position struct {
	Filename string // source file name, may be empty
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Offset   int    // 0-based byte offset in source
}

// IsValid reports whether the position refers to an actual source location.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String returns "file:line:col" or "line:col" when no filename is set.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes before other in the same file.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Span is a source range. Start is inclusive, End exclusive.
type Span struct {
	Start Position
	End   Position
}

// NewSpan builds a span from two positions.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// IsValid reports whether the span is well formed (start <= end).
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.Start.Offset <= s.End.Offset
}

// String returns a compact representation, collapsing single-line spans.
func (s Span) String() string {
	if s.Start.Filename != "" {
		filename := filepath.Base(s.Start.Filename)
		if s.Start.Line == s.End.Line {
			return fmt.Sprintf("%s:%d:%d-%d", filename, s.Start.Line, s.Start.Column, s.End.Column)
		}
		return fmt.Sprintf("%s:%d:%d-%d:%d", filename, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
	}
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d-%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// Contains reports whether the span contains pos.
func (s Span) Contains(pos Position) bool {
	if !s.IsValid() || !pos.IsValid() {
		return false
	}
	return s.Start.Offset <= pos.Offset && pos.Offset < s.End.Offset
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() {
		return s
	}
	start := s.Start
	if other.Start.Before(start) {
		start = other.Start
	}
	end := s.End
	if end.Before(other.End) {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Length returns the span length in bytes.
func (s Span) Length() int {
	if !s.IsValid() {
		return 0
	}
	return s.End.Offset - s.Start.Offset
}

// SourceFile holds source content with a line index for diagnostics.
type SourceFile struct {
	Filename string
	Content  string
	lines    []string
}

// NewSourceFile creates a source file wrapper from raw content.
func NewSourceFile(filename, content string) *SourceFile {
	return &SourceFile{
		Filename: filename,
		Content:  content,
		lines:    strings.Split(content, "\n"),
	}
}

// NumLines returns the number of lines in the file.
func (sf *SourceFile) NumLines() int { return len(sf.lines) }

// Line returns the given 1-based line without its trailing newline, or
// an empty string for out-of-range line numbers.
func (sf *SourceFile) Line(lineNum int) string {
	if lineNum < 1 || lineNum > len(sf.lines) {
		return ""
	}
	return strings.TrimSuffix(sf.lines[lineNum-1], "\r")
}

// SpanText returns the text covered by span, or "" if out of range.
func (sf *SourceFile) SpanText(span Span) string {
	if !span.IsValid() || span.End.Offset > len(sf.Content) {
		return ""
	}
	return sf.Content[span.Start.Offset:span.End.Offset]
}
