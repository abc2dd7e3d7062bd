package parser

import (
	"strings"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
	"github.com/pythia-lang/pythia/internal/position"
)

// parseFStringBody splits the text of one f-string literal into literal
// chunks and replacement fields. The embedded expressions are parsed
// with a fresh sub-parser over their own token stream.
func (p *Parser) parseFStringBody(tok lexer.Token, sp stringParts) []ast.Expression {
	body := sp.body
	var parts []ast.Expression
	var run strings.Builder

	flush := func() {
		if run.Len() > 0 {
			parts = append(parts, &ast.StringLit{
				Span:  tok.Span,
				Value: decodeStringBody(run.String(), sp.isRaw),
			})
			run.Reset()
		}
	}

	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			run.WriteByte(c)
			run.WriteByte(body[i+1])
			i += 2
		case c == '{' && i+1 < len(body) && body[i+1] == '{':
			run.WriteString("{{")
			i += 2
		case c == '}' && i+1 < len(body) && body[i+1] == '}':
			run.WriteString("}}")
			i += 2
		case c == '{':
			flush()
			field, next := p.scanReplacementField(tok, body, i+1)
			parts = append(parts, field...)
			i = next
		case c == '}':
			p.errorf(tok.Span.Start, "f-string: single '}' is not allowed")
		default:
			run.WriteByte(c)
			i++
		}
	}
	flush()

	// literal chunks were accumulated with doubled braces; undo that
	for _, part := range parts {
		if lit, ok := part.(*ast.StringLit); ok {
			lit.Value = strings.ReplaceAll(lit.Value, "{{", "{")
			lit.Value = strings.ReplaceAll(lit.Value, "}}", "}")
		}
	}
	return parts
}

// scanReplacementField parses "{expr[=][!conv][:spec]}" starting just
// after the opening brace. It returns the produced parts (two of them
// for the "expr=" debug form) and the index past the closing brace.
func (p *Parser) scanReplacementField(tok lexer.Token, body string, start int) ([]ast.Expression, int) {
	i := start
	depth := 0
scan:
	for i < len(body) {
		switch c := body[i]; c {
		case '(', '[', '{':
			depth++
			i++
		case ')', ']', '}':
			if depth == 0 {
				if c != '}' {
					p.errorf(tok.Span.Start, "f-string: unmatched '%c'", c)
				}
				break scan
			}
			depth--
			i++
		case '\'', '"':
			i = p.skipNestedString(tok, body, i)
		case '!':
			if i+1 < len(body) && body[i+1] == '=' {
				i += 2 // '!=' operator
				continue
			}
			if depth == 0 {
				break scan
			}
			i++
		case ':':
			if i+1 < len(body) && body[i+1] == '=' {
				i += 2 // ':=' walrus
				continue
			}
			if depth == 0 {
				break scan
			}
			i++
		default:
			i++
		}
	}
	if i >= len(body) {
		p.errorf(tok.Span.Start, "f-string: expecting '}'")
	}

	exprText := body[start:i]
	debug := isDebugField(exprText)
	if debug {
		trimmed := strings.TrimRight(exprText, " \t")
		exprText = trimmed[:len(trimmed)-1]
	}

	fv := &ast.FormattedValue{Span: tok.Span}
	fv.Value = p.parseEmbeddedExpression(exprText, tok.Span.Start)

	if body[i] == '!' {
		conv := body[i+1]
		if conv != 'r' && conv != 's' && conv != 'a' {
			p.errorf(tok.Span.Start, "f-string: invalid conversion character %q, expected 's', 'r' or 'a'", string(conv))
		}
		fv.Conversion = conv
		i += 2
		if i >= len(body) || (body[i] != ':' && body[i] != '}') {
			p.errorf(tok.Span.Start, "f-string: expecting ':' or '}' after conversion")
		}
	}
	if body[i] == ':' {
		spec, next := p.scanFormatSpec(tok, body, i+1)
		fv.FormatSpec = spec
		i = next
	}
	if i >= len(body) || body[i] != '}' {
		p.errorf(tok.Span.Start, "f-string: expecting '}'")
	}
	i++ // closing brace

	if debug {
		if fv.Conversion == 0 && fv.FormatSpec == nil {
			fv.Conversion = 'r'
		}
		// echo everything up to and including the '='
		text := &ast.StringLit{Span: tok.Span, Value: debugEchoText(body[start : i-1])}
		return []ast.Expression{text, fv}, i
	}
	return []ast.Expression{fv}, i
}

// debugEchoText extracts the "expr=" prefix of a debug field, cutting
// any conversion or format spec that follows the '='.
func debugEchoText(field string) string {
	depth := 0
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '=':
			if depth == 0 && i+1 < len(field) && field[i+1] == '=' {
				i++
				continue
			}
			if depth == 0 && i > 0 {
				switch field[i-1] {
				case '=', '!', '<', '>', '+', '-', '*', '/', '%', '&', '|', '^', ':':
					continue
				}
				return field[:i+1]
			}
		}
	}
	return field
}

// isDebugField reports whether the expression text ends with a bare '='
// requesting the self-documenting form.
func isDebugField(exprText string) bool {
	t := strings.TrimRight(exprText, " \t")
	if !strings.HasSuffix(t, "=") || len(t) < 2 {
		return false
	}
	switch t[len(t)-2] {
	case '=', '!', '<', '>', '+', '-', '*', '/', '%', '&', '|', '^', ':':
		return false
	}
	return true
}

// skipNestedString advances past a string literal inside a replacement
// field expression.
func (p *Parser) skipNestedString(tok lexer.Token, body string, i int) int {
	quote := body[i]
	i++
	for i < len(body) {
		switch body[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		default:
			i++
		}
	}
	p.errorf(tok.Span.Start, "f-string: unterminated string inside replacement field")
	return i
}

// scanFormatSpec parses the text after ':' up to the field's closing
// brace. Nested replacement fields inside the spec are parsed in full.
func (p *Parser) scanFormatSpec(tok lexer.Token, body string, start int) (*ast.JoinedStr, int) {
	spec := &ast.JoinedStr{Span: tok.Span}
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			appendLiteralPart(spec, tok.Span, run.String())
			run.Reset()
		}
	}
	i := start
	for i < len(body) {
		switch body[i] {
		case '}':
			flush()
			return spec, i
		case '{':
			flush()
			fields, next := p.scanReplacementField(tok, body, i+1)
			spec.Parts = append(spec.Parts, fields...)
			i = next
		default:
			run.WriteByte(body[i])
			i++
		}
	}
	p.errorf(tok.Span.Start, "f-string: expecting '}' after format spec")
	return nil, i
}

// parseEmbeddedExpression re-tokenizes and parses the expression text
// of a replacement field.
func (p *Parser) parseEmbeddedExpression(text string, pos position.Position) ast.Expression {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		p.errorf(pos, "f-string: empty replacement field")
	}
	tokens, err := lexer.Tokenize(trimmed, p.file.Filename)
	if err != nil {
		p.errorf(pos, "f-string: %v", err)
	}
	sub := &Parser{file: p.file, tokens: stripComments(tokens), version: p.version}

	var expr ast.Expression
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(bailout); !ok {
					panic(r)
				}
				p.errorf(pos, "f-string: invalid expression %q: %s", trimmed, sub.err.Message)
			}
		}()
		expr = sub.parseExpressionList()
		if !sub.at(lexer.TokenEndMarker) {
			sub.errorf(sub.cur().Span.Start, "unexpected %s after expression", describe(sub.cur()))
		}
	}()
	return expr
}
