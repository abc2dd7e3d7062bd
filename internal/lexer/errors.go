package lexer

import (
	"fmt"

	"github.com/pythia-lang/pythia/internal/position"
)

// ErrorKind classifies lexical errors.
type ErrorKind int

const (
	// ErrIndentation is reported when a dedent does not land on any
	// previously seen indentation level.
	ErrIndentation ErrorKind = iota
	// ErrUnterminatedString is reported for string literals that reach
	// end of line (single-quoted forms) or end of input (triple-quoted
	// forms) before their closing quote.
	ErrUnterminatedString
	// ErrInvalidCharacter is reported for bytes that cannot start any token.
	ErrInvalidCharacter
	// ErrInvalidNumber is reported for malformed numeric literals, such
	// as an exponent with no digits.
	ErrInvalidNumber
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIndentation:
		return "indentation"
	case ErrUnterminatedString:
		return "unterminated string"
	case ErrInvalidCharacter:
		return "invalid character"
	case ErrInvalidNumber:
		return "invalid number"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error is a fatal lexical error. Lexing stops at the first one.
type Error struct {
	Kind     ErrorKind
	Pos      position.Position
	Message  string
	LineText string // offending source line, verbatim
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Message)
}

func (l *Lexer) errorAt(kind ErrorKind, pos position.Position, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
		LineText: l.file.Line(pos.Line),
	}
}
