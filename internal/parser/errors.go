package parser

import (
	"fmt"
	"strings"

	"github.com/pythia-lang/pythia/internal/position"
)

// Error is a syntax error with the offending source line attached.
// Parsing stops at the first error; there is no recovery mode.
type Error struct {
	Pos        position.Position
	Message    string
	LineText   string
	Suggestion string // empty when the parser has nothing useful to offer
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: syntax error: %s", e.Pos, e.Message)
	if e.LineText != "" {
		b.WriteString("\n  ")
		b.WriteString(e.LineText)
		if e.Pos.Column > 0 {
			b.WriteString("\n  ")
			b.WriteString(strings.Repeat(" ", e.Pos.Column-1))
			b.WriteString("^")
		}
	}
	if e.Suggestion != "" {
		b.WriteString("\n  hint: ")
		b.WriteString(e.Suggestion)
	}
	return b.String()
}

// bailout unwinds the parser on the first syntax error.
type bailout struct{}

func (p *Parser) errorf(pos position.Position, format string, args ...any) {
	p.errorWithHint(pos, "", format, args...)
}

func (p *Parser) errorWithHint(pos position.Position, hint, format string, args ...any) {
	if p.err == nil {
		p.err = &Error{
			Pos:        pos,
			Message:    fmt.Sprintf(format, args...),
			LineText:   p.file.Line(pos.Line),
			Suggestion: hint,
		}
	}
	panic(bailout{})
}
