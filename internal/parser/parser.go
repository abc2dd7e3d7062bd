package parser

import (
	"github.com/Masterminds/semver/v3"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
	"github.com/pythia-lang/pythia/internal/position"
	"github.com/pythia-lang/pythia/internal/pyver"
)

// Options controls target-version feature gating.
type Options struct {
	// Version is the language version to parse for. Nil means the newest
	// supported version, so every gated construct is accepted.
	Version *semver.Version
}

// Parser consumes the token stream produced by the lexer and builds a
// Module. It stops at the first syntax error.
type Parser struct {
	file    *position.SourceFile
	tokens  []lexer.Token
	pos     int
	version *semver.Version
	err     *Error
}

// Parse tokenizes and parses source into a module tree.
func Parse(source, filename string) (*ast.Module, error) {
	return ParseWithOptions(source, filename, Options{})
}

// ParseWithOptions is Parse with explicit version gating.
func ParseWithOptions(source, filename string, opts Options) (*ast.Module, error) {
	tokens, err := lexer.Tokenize(source, filename)
	if err != nil {
		return nil, err
	}
	version := opts.Version
	if version == nil {
		version = pyver.Latest()
	}
	p := &Parser{
		file:    position.NewSourceFile(filename, source),
		tokens:  stripComments(tokens),
		version: version,
	}
	return p.parse()
}

// stripComments removes COMMENT tokens. A comment-only line contributes
// a trailing NL token as well; that is dropped with it so comment lines
// do not read as blank lines.
func stripComments(tokens []lexer.Token) []lexer.Token {
	out := tokens[:0:0]
	for i := 0; i < len(tokens); i++ {
		if tokens[i].Type == lexer.TokenComment {
			if i+1 < len(tokens) && tokens[i+1].Type == lexer.TokenNL {
				i++
			}
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}

func (p *Parser) parse() (mod *ast.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			mod, err = nil, p.err
		}
	}()
	mod = p.parseModule()
	return mod, nil
}

// ====== Token stream ======

func (p *Parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // ENDMARKER
	}
	return p.tokens[i]
}

func (p *Parser) at(t lexer.TokenType) bool {
	return p.cur().Type == t
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// match consumes the current token when it has the given type.
func (p *Parser) match(t lexer.TokenType) bool {
	if p.at(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	if !p.at(t) {
		p.errorf(p.cur().Span.Start, "expected %s, found %s", t, describe(p.cur()))
	}
	return p.advance()
}

// isNameToken reports whether a token type is usable as an identifier.
// The soft keywords count: they are ordinary names outside the
// statement positions that reserve them.
func isNameToken(t lexer.TokenType) bool {
	switch t {
	case lexer.TokenName, lexer.TokenMatch, lexer.TokenCase, lexer.TokenTypeKw:
		return true
	}
	return false
}

func (p *Parser) atName() bool {
	return isNameToken(p.cur().Type)
}

// expectName consumes an identifier, accepting the soft keywords.
func (p *Parser) expectName() lexer.Token {
	if p.atName() {
		return p.advance()
	}
	return p.expect(lexer.TokenName)
}

// expectColon reports a missing suite colon and suggests the corrected
// header line, since it is by far the most common typo after
// if/for/def headers.
func (p *Parser) expectColon() {
	if p.at(lexer.TokenColon) {
		p.advance()
		return
	}
	pos := p.cur().Span.Start
	hint := ""
	if line := p.file.Line(pos.Line); line != "" {
		col := pos.Column - 1
		if col < 0 || col > len(line) {
			col = len(line)
		}
		hint = "did you mean: " + line[:col] + ":" + line[col:]
	}
	p.errorWithHint(pos, hint, "expected ':', found %s", describe(p.cur()))
}

// expectNewline ends a logical line. DEDENT and ENDMARKER terminate a
// statement without being consumed.
func (p *Parser) expectNewline() {
	switch p.cur().Type {
	case lexer.TokenNewline:
		p.advance()
	case lexer.TokenDedent, lexer.TokenEndMarker:
	default:
		p.errorf(p.cur().Span.Start, "expected end of line, found %s", describe(p.cur()))
	}
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEndMarker:
		return "end of file"
	case lexer.TokenNewline, lexer.TokenNL:
		return "end of line"
	case lexer.TokenIndent:
		return "indent"
	case lexer.TokenDedent:
		return "dedent"
	case lexer.TokenName, lexer.TokenNumber:
		return "'" + tok.Literal + "'"
	case lexer.TokenString, lexer.TokenFString:
		return "string literal"
	default:
		return "'" + tok.Literal + "'"
	}
}

func (p *Parser) require(f pyver.Feature, pos position.Position) {
	if !pyver.Supports(p.version, f) {
		p.errorf(pos, "%s requires language version %s or newer (parsing for %s)",
			f, pyver.MinVersion(f), p.version)
	}
}

// ====== Module and suites ======

func (p *Parser) parseModule() *ast.Module {
	mod := &ast.Module{}
	start := p.cur().Span.Start
	blanks := 0
	for !p.at(lexer.TokenEndMarker) {
		if p.at(lexer.TokenNL) {
			nl := p.advance()
			if len(mod.Body) > 0 {
				if blanks == 0 {
					// remember where the blank run began
					start = nl.Span.Start
				}
				blanks++
			}
			continue
		}
		if blanks > 0 {
			span := position.NewSpan(start, p.cur().Span.Start)
			mod.Body = append(mod.Body, &ast.BlankLine{Span: span, Count: blanks})
			blanks = 0
		}
		mod.Body = append(mod.Body, p.parseStatementLine()...)
	}
	end := p.cur().Span.End
	first := end
	if len(mod.Body) > 0 {
		first = mod.Body[0].GetSpan().Start
	}
	mod.Span = position.NewSpan(first, end)
	return mod
}

// parseStatementLine parses one logical line: a compound statement or a
// semicolon-separated run of simple statements.
func (p *Parser) parseStatementLine() []ast.Statement {
	if stmt := p.parseCompoundStatement(); stmt != nil {
		return []ast.Statement{stmt}
	}
	stmts := []ast.Statement{p.parseSimpleStatement()}
	for p.match(lexer.TokenSemicolon) {
		if p.at(lexer.TokenNewline) || p.at(lexer.TokenDedent) || p.at(lexer.TokenEndMarker) {
			break
		}
		stmts = append(stmts, p.parseSimpleStatement())
	}
	p.expectNewline()
	return stmts
}

// parseSuite parses the statements after a header colon: either an
// inline simple-statement list or an indented block.
func (p *Parser) parseSuite() []ast.Statement {
	if !p.at(lexer.TokenNewline) {
		stmts := []ast.Statement{p.parseSimpleStatement()}
		for p.match(lexer.TokenSemicolon) {
			if p.at(lexer.TokenNewline) || p.at(lexer.TokenDedent) || p.at(lexer.TokenEndMarker) {
				break
			}
			stmts = append(stmts, p.parseSimpleStatement())
		}
		p.expectNewline()
		return stmts
	}
	p.advance() // NEWLINE
	for p.at(lexer.TokenNL) {
		p.advance()
	}
	p.expect(lexer.TokenIndent)
	var body []ast.Statement
	for !p.at(lexer.TokenDedent) && !p.at(lexer.TokenEndMarker) {
		if p.at(lexer.TokenNL) {
			p.advance()
			continue
		}
		body = append(body, p.parseStatementLine()...)
	}
	p.expect(lexer.TokenDedent)
	if len(body) == 0 {
		p.errorf(p.cur().Span.Start, "expected an indented block")
	}
	return body
}
