package lexer

import (
	"strings"

	"github.com/pythia-lang/pythia/internal/position"
)

// tabWidth is the column weight of a tab character when measuring
// leading indentation. Spaces count as 1.
const tabWidth = 8

// Lexer scans a source buffer into tokens. It is single-use: create one
// per Tokenize call. All state is local to the instance.
type Lexer struct {
	src      string
	filename string
	file     *position.SourceFile

	pos  int // 0-based byte offset of the next unread byte
	line int // 1-based
	col  int // 1-based

	// Indentation stack of observed leading widths, always starting at 0.
	indents []int

	// Open bracket counters. While any is positive, newlines are
	// swallowed instead of emitted (implicit line joining).
	parens   int
	brackets int
	braces   int

	atLineStart bool
	tokens      []Token
}

// Tokenize scans source into a flat token sequence ending in ENDMARKER.
// The first lexical error aborts the scan; no tokens are returned with
// an error. The function is pure: it has no side effects beyond its
// return values.
func Tokenize(source, filename string) ([]Token, error) {
	l := &Lexer{
		src:         source,
		filename:    filename,
		file:        position.NewSourceFile(filename, source),
		line:        1,
		col:         1,
		indents:     []int{0},
		atLineStart: true,
	}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *Lexer) run() error {
	for {
		if l.atLineStart && l.groupingDepth() == 0 {
			if err := l.scanIndentation(); err != nil {
				return err
			}
		}
		if l.atEnd() {
			break
		}
		if err := l.scanToken(); err != nil {
			return err
		}
	}

	// Unwind the remaining indentation stack, then finish the stream.
	end := l.current()
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.tokens = append(l.tokens, Token{Type: TokenDedent, Span: position.NewSpan(end, end)})
	}
	l.tokens = append(l.tokens, Token{Type: TokenEndMarker, Span: position.NewSpan(end, end)})
	return nil
}

// scanIndentation measures the leading width of the next logical line
// and emits INDENT/DEDENT tokens against the indentation stack. Blank
// and comment-only lines are consumed without affecting the stack.
func (l *Lexer) scanIndentation() error {
	for {
		start := l.current()
		width := 0
		for !l.atEnd() && (l.peek() == ' ' || l.peek() == '\t') {
			if l.peek() == '\t' {
				width += tabWidth
			} else {
				width++
			}
			l.advance()
		}
		if l.atEnd() {
			return nil
		}

		switch l.peek() {
		case '\r':
			l.advance()
			continue
		case '\n':
			nlStart := l.current()
			l.advance()
			l.tokens = append(l.tokens, Token{
				Type:    TokenNL,
				Literal: "\n",
				Span:    position.NewSpan(nlStart, l.current()),
			})
			continue
		case '#':
			l.scanComment()
			if !l.atEnd() && l.peek() == '\r' {
				l.advance()
			}
			if !l.atEnd() && l.peek() == '\n' {
				nlStart := l.current()
				l.advance()
				l.tokens = append(l.tokens, Token{
					Type:    TokenNL,
					Literal: "\n",
					Span:    position.NewSpan(nlStart, l.current()),
				})
			}
			continue
		}

		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			l.tokens = append(l.tokens, Token{
				Type:    TokenIndent,
				Literal: l.src[start.Offset:l.pos],
				Span:    position.NewSpan(start, l.current()),
			})
		case width < top:
			here := l.current()
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
				l.indents = l.indents[:len(l.indents)-1]
				l.tokens = append(l.tokens, Token{Type: TokenDedent, Span: position.NewSpan(here, here)})
			}
			if l.indents[len(l.indents)-1] != width {
				return l.errorAt(ErrIndentation, here,
					"unindent does not match any outer indentation level")
			}
		}
		l.atLineStart = false
		return nil
	}
}

func (l *Lexer) scanToken() error {
	start := l.current()
	ch := l.peek()

	switch {
	case ch == ' ' || ch == '\t' || ch == '\r':
		l.advance()
		return nil

	case ch == '\n':
		l.advance()
		if l.groupingDepth() > 0 {
			// Implicit line joining inside brackets.
			return nil
		}
		l.tokens = append(l.tokens, Token{
			Type:    TokenNewline,
			Literal: "\n",
			Span:    position.NewSpan(start, l.current()),
		})
		l.atLineStart = true
		return nil

	case ch == '#':
		l.scanComment()
		return nil

	case ch == '\\':
		// Explicit line joining: backslash immediately before a newline.
		if l.peekAt(1) == '\n' {
			l.advance()
			l.advance()
			return nil
		}
		if l.peekAt(1) == '\r' && l.peekAt(2) == '\n' {
			l.advance()
			l.advance()
			l.advance()
			return nil
		}
		return l.errorAt(ErrInvalidCharacter, start,
			"unexpected character after line continuation character")

	case isIdentStart(ch):
		return l.scanName()

	case isDigit(ch) || (ch == '.' && isDigit(l.peekAt(1))):
		return l.scanNumber()

	case ch == '"' || ch == '\'':
		return l.scanString(start, "")
	}

	if l.pos+3 <= len(l.src) {
		if tt, ok := operators3[l.src[l.pos:l.pos+3]]; ok {
			l.advance()
			l.advance()
			l.advance()
			l.emit(tt, start)
			return nil
		}
	}
	if l.pos+2 <= len(l.src) {
		if tt, ok := operators2[l.src[l.pos:l.pos+2]]; ok {
			l.advance()
			l.advance()
			l.emit(tt, start)
			return nil
		}
	}
	if tt, ok := operators1[ch]; ok {
		l.advance()
		switch tt {
		case TokenLParen:
			l.parens++
		case TokenRParen:
			if l.parens > 0 {
				l.parens--
			}
		case TokenLBracket:
			l.brackets++
		case TokenRBracket:
			if l.brackets > 0 {
				l.brackets--
			}
		case TokenLBrace:
			l.braces++
		case TokenRBrace:
			if l.braces > 0 {
				l.braces--
			}
		}
		l.emit(tt, start)
		return nil
	}

	return l.errorAt(ErrInvalidCharacter, start, "invalid character %q", rune(ch))
}

// scanName scans an identifier, classifying keywords. An identifier
// that spells a string prefix (r, b, u, f and two-letter combinations)
// directly followed by a quote starts a string literal instead.
func (l *Lexer) scanName() error {
	start := l.current()
	for !l.atEnd() && isIdentChar(l.peek()) {
		l.advance()
	}
	text := l.src[start.Offset:l.pos]

	if !l.atEnd() && (l.peek() == '"' || l.peek() == '\'') && isStringPrefix(text) {
		return l.scanString(start, text)
	}

	l.tokens = append(l.tokens, Token{
		Type:    lookupIdent(text),
		Literal: text,
		Span:    position.NewSpan(start, l.current()),
	})
	return nil
}

// scanNumber scans decimal, hex, octal, binary, float, exponent and
// imaginary literal forms, all with optional underscore separators.
// The raw spelling is kept as the token literal.
func (l *Lexer) scanNumber() error {
	start := l.current()

	if l.peek() == '0' && isBasePrefix(l.peekAt(1)) {
		base := l.peekAt(1)
		l.advance()
		l.advance()
		digits := 0
		for !l.atEnd() && (isBaseDigit(l.peek(), base) || l.peek() == '_') {
			if l.peek() != '_' {
				digits++
			}
			l.advance()
		}
		if digits == 0 {
			return l.errorAt(ErrInvalidNumber, start, "invalid literal %q", l.src[start.Offset:l.pos])
		}
	} else {
		l.consumeDigits()
		if !l.atEnd() && l.peek() == '.' {
			l.advance()
			l.consumeDigits()
		}
		if !l.atEnd() && (l.peek() == 'e' || l.peek() == 'E') {
			next := l.peekAt(1)
			if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
				l.advance()
				if l.peek() == '+' || l.peek() == '-' {
					l.advance()
				}
				l.consumeDigits()
			}
		}
		if !l.atEnd() && (l.peek() == 'j' || l.peek() == 'J') {
			l.advance()
		}
	}

	if !l.atEnd() && isIdentStart(l.peek()) {
		for !l.atEnd() && isIdentChar(l.peek()) {
			l.advance()
		}
		return l.errorAt(ErrInvalidNumber, start, "invalid literal %q", l.src[start.Offset:l.pos])
	}

	l.emit(TokenNumber, start)
	return nil
}

// scanString scans a string literal starting at the opening quote,
// given any already-consumed prefix letters. Handles single and triple
// quoting and backslash escapes. Inside a non-triple-quoted string a
// raw newline is an unterminated-literal error rather than implicit
// continuation.
func (l *Lexer) scanString(start position.Position, prefix string) error {
	lower := strings.ToLower(prefix)
	isFString := strings.Contains(lower, "f")

	quote := l.advance()
	triple := false
	if l.peek() == quote && l.peekAt(1) == quote {
		l.advance()
		l.advance()
		triple = true
	}

	for {
		if l.atEnd() {
			return l.errorAt(ErrUnterminatedString, start, "unterminated string literal")
		}
		ch := l.peek()
		if !triple && ch == '\n' {
			return l.errorAt(ErrUnterminatedString, start,
				"unterminated string literal (newline before closing quote)")
		}
		if ch == '\\' {
			// A backslash always consumes the following byte for the
			// purpose of finding the terminator, raw strings included.
			l.advance()
			if l.atEnd() {
				return l.errorAt(ErrUnterminatedString, start, "unterminated string literal")
			}
			l.advance()
			continue
		}
		if ch == quote {
			l.advance()
			if !triple {
				break
			}
			if l.peek() == quote && l.peekAt(1) == quote {
				l.advance()
				l.advance()
				break
			}
			continue
		}
		l.advance()
	}

	tt := TokenString
	if isFString {
		tt = TokenFString
	}
	l.emit(tt, start)
	return nil
}

func (l *Lexer) scanComment() {
	start := l.current()
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
	l.tokens = append(l.tokens, Token{
		Type:    TokenComment,
		Literal: strings.TrimSuffix(l.src[start.Offset:l.pos], "\r"),
		Span:    position.NewSpan(start, l.current()),
	})
}

// ---- low-level scanning helpers ----

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(k int) byte {
	if l.pos+k >= len(l.src) {
		return 0
	}
	return l.src[l.pos+k]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) current() position.Position {
	return position.Position{Filename: l.filename, Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) groupingDepth() int { return l.parens + l.brackets + l.braces }

func (l *Lexer) emit(tt TokenType, start position.Position) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Literal: l.src[start.Offset:l.pos],
		Span:    position.NewSpan(start, l.current()),
	})
}

func (l *Lexer) consumeDigits() {
	for !l.atEnd() && (isDigit(l.peek()) || l.peek() == '_') {
		l.advance()
	}
}

// ---- character classes ----

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isIdentStart accepts ASCII letters, underscore and any byte >= 0x80,
// a conservative stand-in for full Unicode identifier rules.
func isIdentStart(ch byte) bool {
	return isLetter(ch) || ch == '_' || ch >= 0x80
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isBasePrefix(ch byte) bool {
	switch ch {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

func isBaseDigit(ch, base byte) bool {
	switch base {
	case 'x', 'X':
		return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
	case 'o', 'O':
		return '0' <= ch && ch <= '7'
	case 'b', 'B':
		return ch == '0' || ch == '1'
	}
	return false
}

// stringPrefixes are the accepted literal prefixes, compared
// case-insensitively.
var stringPrefixes = map[string]bool{
	"r": true, "b": true, "u": true, "f": true,
	"br": true, "rb": true, "fr": true, "rf": true,
}

func isStringPrefix(s string) bool {
	if len(s) > 2 {
		return false
	}
	return stringPrefixes[strings.ToLower(s)]
}
