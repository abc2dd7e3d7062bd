package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
	"github.com/pythia-lang/pythia/internal/position"
)

// stringParts is the decomposition of one string token: its prefix
// letters, quote character, and the text between the quotes.
type stringParts struct {
	body    string
	isRaw   bool
	isBytes bool
	isF     bool
}

func splitStringLiteral(lit string) stringParts {
	var sp stringParts
	i := 0
	for i < len(lit) && lit[i] != '\'' && lit[i] != '"' {
		switch lit[i] | 0x20 { // lowercase
		case 'r':
			sp.isRaw = true
		case 'b':
			sp.isBytes = true
		case 'f':
			sp.isF = true
		}
		i++
	}
	quote := lit[i]
	rest := lit[i:]
	if strings.HasPrefix(rest, strings.Repeat(string(quote), 3)) {
		sp.body = rest[3 : len(rest)-3]
	} else {
		sp.body = rest[1 : len(rest)-1]
	}
	return sp
}

// decodeStringBody resolves backslash escapes. Raw strings keep their
// text verbatim. Unrecognized escapes keep the backslash, matching the
// reference behavior for strings like "\d".
func decodeStringBody(body string, isRaw bool) string {
	if isRaw || !strings.ContainsRune(body, '\\') {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 == len(body) {
			b.WriteByte(body[i])
			continue
		}
		i++
		switch body[i] {
		case '\n':
			// escaped newline: line continuation inside the literal
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			val := int(body[i] - '0')
			for n := 0; n < 2 && i+1 < len(body) && body[i+1] >= '0' && body[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(body[i]-'0')
			}
			b.WriteByte(byte(val))
		case 'x':
			if v, n := hexValue(body[i+1:], 2); n == 2 {
				b.WriteByte(byte(v))
				i += 2
			} else {
				b.WriteString("\\x")
			}
		case 'u':
			if v, n := hexValue(body[i+1:], 4); n == 4 {
				b.WriteRune(rune(v))
				i += 4
			} else {
				b.WriteString("\\u")
			}
		case 'U':
			if v, n := hexValue(body[i+1:], 8); n == 8 && v <= utf8.MaxRune {
				b.WriteRune(rune(v))
				i += 8
			} else {
				b.WriteString("\\U")
			}
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

func hexValue(s string, want int) (int, int) {
	val := 0
	for i := 0; i < want; i++ {
		if i >= len(s) {
			return val, i
		}
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val = val*16 + int(c-'0')
		case c >= 'a' && c <= 'f':
			val = val*16 + int(c-'a'+10)
		case c >= 'A' && c <= 'F':
			val = val*16 + int(c-'A'+10)
		default:
			return val, i
		}
	}
	return val, want
}

// parseStrings parses a run of adjacent string literals into one node.
// Adjacent plain strings concatenate into a single StringLit; when any
// piece is an f-string the whole run becomes a JoinedStr.
func (p *Parser) parseStrings() ast.Expression {
	start := p.cur().Span
	var toks []lexer.Token
	anyF := false
	for p.at(lexer.TokenString) || p.at(lexer.TokenFString) {
		if p.at(lexer.TokenFString) {
			anyF = true
		}
		toks = append(toks, p.advance())
	}
	span := position.NewSpan(start.Start, toks[len(toks)-1].Span.End)

	if !anyF {
		var value strings.Builder
		allRaw := true
		sawBytes, sawStr := false, false
		for _, tok := range toks {
			sp := splitStringLiteral(tok.Literal)
			if sp.isBytes {
				sawBytes = true
			} else {
				sawStr = true
			}
			if !sp.isRaw {
				allRaw = false
			}
			value.WriteString(decodeStringBody(sp.body, sp.isRaw))
		}
		if sawBytes && sawStr {
			p.errorf(start.Start, "cannot mix bytes and string literals in concatenation")
		}
		return &ast.StringLit{
			Span:    span,
			Value:   value.String(),
			IsRaw:   allRaw && len(toks) == 1,
			IsBytes: sawBytes,
		}
	}

	joined := &ast.JoinedStr{Span: span}
	for _, tok := range toks {
		sp := splitStringLiteral(tok.Literal)
		if sp.isBytes {
			p.errorf(tok.Span.Start, "cannot mix bytes and f-string literals in concatenation")
		}
		if !sp.isF {
			appendLiteralPart(joined, tok.Span, decodeStringBody(sp.body, sp.isRaw))
			continue
		}
		for _, part := range p.parseFStringBody(tok, sp) {
			if lit, ok := part.(*ast.StringLit); ok {
				appendLiteralPart(joined, lit.Span, lit.Value)
			} else {
				joined.Parts = append(joined.Parts, part)
			}
		}
	}
	return joined
}

// appendLiteralPart adds literal text to a JoinedStr, merging with a
// trailing text chunk so reparsing the rendered form is stable.
func appendLiteralPart(j *ast.JoinedStr, span position.Span, text string) {
	if text == "" {
		return
	}
	if n := len(j.Parts); n > 0 {
		if prev, ok := j.Parts[n-1].(*ast.StringLit); ok {
			prev.Value += text
			prev.Span = position.NewSpan(prev.Span.Start, span.End)
			return
		}
	}
	j.Parts = append(j.Parts, &ast.StringLit{Span: span, Value: text})
}
