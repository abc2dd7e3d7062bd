package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
	"github.com/pythia-lang/pythia/internal/position"
)

// parsePatterns parses the pattern of a case clause. A top-level comma
// makes an open sequence pattern: "case a, b:".
func (p *Parser) parsePatterns() ast.Pattern {
	first := p.parsePattern()
	if !p.at(lexer.TokenComma) {
		return first
	}
	pats := []ast.Pattern{first}
	for p.match(lexer.TokenComma) {
		if p.at(lexer.TokenColon) || p.at(lexer.TokenIf) {
			break
		}
		pats = append(pats, p.parsePattern())
	}
	return &ast.MatchSequence{
		Span:     position.NewSpan(first.GetSpan().Start, pats[len(pats)-1].GetSpan().End),
		Patterns: pats,
	}
}

// parsePattern parses one pattern: an or-chain with an optional
// trailing "as name" binding.
func (p *Parser) parsePattern() ast.Pattern {
	return p.parseAsSuffix(p.parseOrPattern())
}

// parseAsSuffix attaches an optional "as name" binding.
func (p *Parser) parseAsSuffix(pat ast.Pattern) ast.Pattern {
	if !p.at(lexer.TokenAs) {
		return pat
	}
	p.advance()
	name := p.expectName()
	if name.Literal == "_" {
		p.errorf(name.Span.Start, "cannot use '_' as a capture target in an as-pattern")
	}
	return &ast.MatchAs{
		Span:    position.NewSpan(pat.GetSpan().Start, name.Span.End),
		Pattern: pat,
		Name:    name.Literal,
	}
}

func (p *Parser) parseOrPattern() ast.Pattern {
	first := p.parseClosedPattern()
	if !p.at(lexer.TokenVBar) {
		return first
	}
	pats := []ast.Pattern{first}
	for p.match(lexer.TokenVBar) {
		pats = append(pats, p.parseClosedPattern())
	}
	return &ast.MatchOr{
		Span:     position.NewSpan(first.GetSpan().Start, pats[len(pats)-1].GetSpan().End),
		Patterns: pats,
	}
}

func (p *Parser) parseClosedPattern() ast.Pattern {
	tok := p.cur()
	switch tok.Type {
	case lexer.TokenNone, lexer.TokenTrue, lexer.TokenFalse:
		return p.parseSingletonPattern()
	case lexer.TokenNumber, lexer.TokenString, lexer.TokenMinus:
		return p.parseLiteralPattern()
	case lexer.TokenName, lexer.TokenMatch, lexer.TokenCase, lexer.TokenTypeKw:
		return p.parseNameOrClassPattern()
	case lexer.TokenLParen:
		return p.parseGroupOrSequencePattern()
	case lexer.TokenLBracket:
		return p.parseBracketSequencePattern()
	case lexer.TokenLBrace:
		return p.parseMappingPattern()
	case lexer.TokenStar:
		return p.parseStarPattern()
	}
	p.errorf(tok.Span.Start, "expected a pattern, found %s", describe(tok))
	return nil
}

func (p *Parser) parseSingletonPattern() ast.Pattern {
	tok := p.advance()
	var value ast.Expression
	switch tok.Type {
	case lexer.TokenNone:
		value = &ast.NoneLit{Span: tok.Span}
	case lexer.TokenTrue:
		value = &ast.BoolLit{Span: tok.Span, Value: true}
	case lexer.TokenFalse:
		value = &ast.BoolLit{Span: tok.Span, Value: false}
	}
	return &ast.MatchSingleton{Span: tok.Span, Value: value}
}

// parseLiteralPattern covers number literals (including negated and
// complex forms like "3 + 4j") and string literals.
func (p *Parser) parseLiteralPattern() ast.Pattern {
	start := p.cur().Span.Start
	var value ast.Expression
	if p.at(lexer.TokenString) || p.at(lexer.TokenFString) {
		if p.at(lexer.TokenFString) {
			p.errorf(start, "f-strings are not allowed as patterns")
		}
		value = p.parseStrings()
	} else {
		value = p.parseNumberPattern()
	}
	return &ast.MatchValue{
		Span:  position.NewSpan(start, value.GetSpan().End),
		Value: value,
	}
}

// parseNumberPattern parses "[-]NUMBER [(+|-) NUMBER]" for real and
// complex literal patterns.
func (p *Parser) parseNumberPattern() ast.Expression {
	var value ast.Expression
	if p.at(lexer.TokenMinus) {
		minus := p.advance()
		num := p.expect(lexer.TokenNumber)
		value = &ast.UnaryOp{
			Span:    position.NewSpan(minus.Span.Start, num.Span.End),
			Op:      ast.USub,
			Operand: &ast.NumberLit{Span: num.Span, Literal: num.Literal},
		}
	} else {
		num := p.expect(lexer.TokenNumber)
		value = &ast.NumberLit{Span: num.Span, Literal: num.Literal}
	}
	var op ast.BinOpKind
	switch p.cur().Type {
	case lexer.TokenPlus:
		op = ast.Add
	case lexer.TokenMinus:
		op = ast.Sub
	default:
		return value
	}
	p.advance()
	imag := p.expect(lexer.TokenNumber)
	return binop(value, op, &ast.NumberLit{Span: imag.Span, Literal: imag.Literal})
}

// parseNameOrClassPattern disambiguates captures, wildcards, dotted
// value patterns and class patterns, which all start with a name.
func (p *Parser) parseNameOrClassPattern() ast.Pattern {
	tok := p.advance()
	if tok.Literal == "_" && !p.at(lexer.TokenDot) && !p.at(lexer.TokenLParen) {
		return &ast.MatchAs{Span: tok.Span}
	}

	var value ast.Expression = &ast.Name{Span: tok.Span, ID: tok.Literal}
	dotted := false
	for p.at(lexer.TokenDot) {
		p.advance()
		attr := p.expectName()
		value = &ast.Attribute{
			Span:  position.NewSpan(tok.Span.Start, attr.Span.End),
			Value: value,
			Attr:  attr.Literal,
		}
		dotted = true
	}

	if p.at(lexer.TokenLParen) {
		return p.parseClassPattern(value)
	}
	if dotted {
		return &ast.MatchValue{Span: value.GetSpan(), Value: value}
	}
	return &ast.MatchAs{Span: tok.Span, Name: tok.Literal}
}

func (p *Parser) parseClassPattern(cls ast.Expression) ast.Pattern {
	p.expect(lexer.TokenLParen)
	pat := &ast.MatchClass{Cls: cls}
	sawKeyword := false
	for !p.at(lexer.TokenRParen) {
		if p.atName() && p.peek(1).Type == lexer.TokenAssign {
			name := p.advance()
			p.advance() // =
			pat.KwdAttrs = append(pat.KwdAttrs, name.Literal)
			pat.KwdPatterns = append(pat.KwdPatterns, p.parsePattern())
			sawKeyword = true
		} else {
			if sawKeyword {
				p.errorf(p.cur().Span.Start, "positional pattern follows keyword pattern")
			}
			pat.Patterns = append(pat.Patterns, p.parsePattern())
		}
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	rparen := p.expect(lexer.TokenRParen)
	pat.Span = position.NewSpan(cls.GetSpan().Start, rparen.Span.End)
	return pat
}

// parseGroupOrSequencePattern handles "(p)" grouping and "(p, ...)"
// sequence patterns.
func (p *Parser) parseGroupOrSequencePattern() ast.Pattern {
	lparen := p.expect(lexer.TokenLParen)
	if p.at(lexer.TokenRParen) {
		rparen := p.advance()
		return &ast.MatchSequence{Span: position.NewSpan(lparen.Span.Start, rparen.Span.End)}
	}
	first := p.parsePattern()
	if !p.at(lexer.TokenComma) {
		p.expect(lexer.TokenRParen)
		return first
	}
	pats := []ast.Pattern{first}
	for p.match(lexer.TokenComma) {
		if p.at(lexer.TokenRParen) {
			break
		}
		pats = append(pats, p.parsePattern())
	}
	rparen := p.expect(lexer.TokenRParen)
	return &ast.MatchSequence{
		Span:     position.NewSpan(lparen.Span.Start, rparen.Span.End),
		Patterns: pats,
	}
}

func (p *Parser) parseBracketSequencePattern() ast.Pattern {
	lbracket := p.expect(lexer.TokenLBracket)
	pat := &ast.MatchSequence{}
	for !p.at(lexer.TokenRBracket) {
		pat.Patterns = append(pat.Patterns, p.parsePattern())
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	rbracket := p.expect(lexer.TokenRBracket)
	pat.Span = position.NewSpan(lbracket.Span.Start, rbracket.Span.End)
	return pat
}

func (p *Parser) parseMappingPattern() ast.Pattern {
	lbrace := p.expect(lexer.TokenLBrace)
	pat := &ast.MatchMapping{}
	for !p.at(lexer.TokenRBrace) {
		if p.at(lexer.TokenDoubleStar) {
			star := p.advance()
			name := p.expectName()
			if name.Literal == "_" {
				p.errorf(star.Span.Start, "cannot use '_' to capture the rest of a mapping")
			}
			if pat.Rest != "" {
				p.errorf(star.Span.Start, "only one '**' capture is allowed in a mapping pattern")
			}
			pat.Rest = name.Literal
		} else {
			pat.Keys = append(pat.Keys, p.parseMappingKey())
			p.expect(lexer.TokenColon)
			pat.Patterns = append(pat.Patterns, p.parsePattern())
		}
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	rbrace := p.expect(lexer.TokenRBrace)
	pat.Span = position.NewSpan(lbrace.Span.Start, rbrace.Span.End)
	return pat
}

// parseMappingKey is a literal or a dotted value expression.
func (p *Parser) parseMappingKey() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.TokenNone:
		p.advance()
		return &ast.NoneLit{Span: tok.Span}
	case lexer.TokenTrue:
		p.advance()
		return &ast.BoolLit{Span: tok.Span, Value: true}
	case lexer.TokenFalse:
		p.advance()
		return &ast.BoolLit{Span: tok.Span, Value: false}
	case lexer.TokenString:
		return p.parseStrings()
	case lexer.TokenNumber, lexer.TokenMinus:
		return p.parseNumberPattern()
	case lexer.TokenName, lexer.TokenMatch, lexer.TokenCase, lexer.TokenTypeKw:
		var value ast.Expression = &ast.Name{Span: tok.Span, ID: tok.Literal}
		p.advance()
		if !p.at(lexer.TokenDot) {
			p.errorf(tok.Span.Start, "mapping pattern keys must be literals or dotted names")
		}
		for p.at(lexer.TokenDot) {
			p.advance()
			attr := p.expectName()
			value = &ast.Attribute{
				Span:  position.NewSpan(tok.Span.Start, attr.Span.End),
				Value: value,
				Attr:  attr.Literal,
			}
		}
		return value
	}
	p.errorf(tok.Span.Start, "expected a mapping pattern key, found %s", describe(tok))
	return nil
}

func (p *Parser) parseStarPattern() ast.Pattern {
	star := p.expect(lexer.TokenStar)
	name := p.expectName()
	pat := &ast.MatchStar{Span: position.NewSpan(star.Span.Start, name.Span.End)}
	if name.Literal != "_" {
		pat.Name = name.Literal
	}
	return pat
}
