package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
	"github.com/pythia-lang/pythia/internal/position"
	"github.com/pythia-lang/pythia/internal/pyver"
)

// parseCompoundStatement dispatches on the leading keyword and returns
// nil when the line is not a compound statement.
func (p *Parser) parseCompoundStatement() ast.Statement {
	switch p.cur().Type {
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenFor:
		return p.parseFor(false, p.cur().Span.Start)
	case lexer.TokenTry:
		return p.parseTry()
	case lexer.TokenWith:
		return p.parseWith(false, p.cur().Span.Start)
	case lexer.TokenDef:
		return p.parseFunctionDef(nil, false, p.cur().Span.Start)
	case lexer.TokenClass:
		return p.parseClassDef(nil, p.cur().Span.Start)
	case lexer.TokenAt:
		return p.parseDecorated()
	case lexer.TokenAsync:
		return p.parseAsync()
	case lexer.TokenMatch:
		if p.isMatchStatement() {
			return p.parseMatch()
		}
	}
	return nil
}

func (p *Parser) parseIf() ast.Statement {
	start := p.advance().Span.Start // if / elif
	cond := p.parseNamedExpr()
	p.expectColon()
	body := p.parseSuite()
	var orelse []ast.Statement
	switch p.cur().Type {
	case lexer.TokenElif:
		orelse = []ast.Statement{p.parseIf()}
	case lexer.TokenElse:
		p.advance()
		p.expectColon()
		orelse = p.parseSuite()
	}
	return &ast.If{
		Span: p.spanFrom(start, body, orelse),
		Cond: cond,
		Body: body,
		Else: orelse,
	}
}

func (p *Parser) parseWhile() ast.Statement {
	start := p.advance().Span.Start
	cond := p.parseNamedExpr()
	p.expectColon()
	body := p.parseSuite()
	var orelse []ast.Statement
	if p.match(lexer.TokenElse) {
		p.expectColon()
		orelse = p.parseSuite()
	}
	return &ast.While{
		Span: p.spanFrom(start, body, orelse),
		Cond: cond,
		Body: body,
		Else: orelse,
	}
}

func (p *Parser) parseFor(isAsync bool, start position.Position) ast.Statement {
	p.expect(lexer.TokenFor)
	target := p.parseTargetList()
	p.expect(lexer.TokenIn)
	iter := p.parseExpressionList()
	p.expectColon()
	body := p.parseSuite()
	var orelse []ast.Statement
	if p.match(lexer.TokenElse) {
		p.expectColon()
		orelse = p.parseSuite()
	}
	return &ast.For{
		Span:    p.spanFrom(start, body, orelse),
		Target:  target,
		Iter:    iter,
		Body:    body,
		Else:    orelse,
		IsAsync: isAsync,
	}
}

func (p *Parser) parseTry() ast.Statement {
	start := p.advance().Span.Start
	p.expectColon()
	body := p.parseSuite()
	stmt := &ast.Try{Body: body}
	end := lastSpanEnd(body)

	for p.at(lexer.TokenExcept) {
		hstart := p.advance().Span.Start
		if p.at(lexer.TokenStar) {
			p.require(pyver.FeatureExceptStar, p.cur().Span.Start)
			p.advance()
			stmt.IsStar = true
		}
		handler := &ast.ExceptHandler{}
		if !p.at(lexer.TokenColon) {
			handler.Type = p.parseExpression()
			if p.match(lexer.TokenAs) {
				handler.Name = p.expectName().Literal
			}
		}
		p.expectColon()
		handler.Body = p.parseSuite()
		handler.Span = position.NewSpan(hstart, lastSpanEnd(handler.Body))
		end = handler.Span.End
		stmt.Handlers = append(stmt.Handlers, handler)
	}
	if p.match(lexer.TokenElse) {
		if len(stmt.Handlers) == 0 {
			p.errorf(p.cur().Span.Start, "try statement has an else clause but no except clause")
		}
		p.expectColon()
		stmt.Else = p.parseSuite()
		end = lastSpanEnd(stmt.Else)
	}
	if p.match(lexer.TokenFinally) {
		p.expectColon()
		stmt.Finally = p.parseSuite()
		end = lastSpanEnd(stmt.Finally)
	}
	if len(stmt.Handlers) == 0 && stmt.Finally == nil {
		p.errorf(start, "try statement must have at least one except or finally clause")
	}
	stmt.Span = position.NewSpan(start, end)
	return stmt
}

func (p *Parser) parseWith(isAsync bool, start position.Position) ast.Statement {
	p.expect(lexer.TokenWith)
	var items []*ast.WithItem
	if p.at(lexer.TokenLParen) && p.withItemsParenthesized() {
		p.require(pyver.FeatureParenContextManagers, p.cur().Span.Start)
		p.advance()
		for !p.at(lexer.TokenRParen) {
			items = append(items, p.parseWithItem())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
		p.expect(lexer.TokenRParen)
	} else {
		for {
			items = append(items, p.parseWithItem())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.expectColon()
	body := p.parseSuite()
	return &ast.With{
		Span:    position.NewSpan(start, lastSpanEnd(body)),
		Items:   items,
		Body:    body,
		IsAsync: isAsync,
	}
}

func (p *Parser) parseWithItem() *ast.WithItem {
	item := &ast.WithItem{}
	item.ContextExpr = p.parseExpression()
	istart := item.ContextExpr.GetSpan().Start
	iend := item.ContextExpr.GetSpan().End
	if p.match(lexer.TokenAs) {
		item.OptionalVars = p.parseTarget()
		iend = item.OptionalVars.GetSpan().End
	}
	item.Span = position.NewSpan(istart, iend)
	return item
}

// withItemsParenthesized distinguishes a parenthesized with-item list
// from a parenthesized context-manager expression. A top-level "as"
// inside the parens decides it; a top-level comma does too, but only
// when the group is directly followed by the suite colon, so
// "with (a, b) as t:" keeps its tuple reading.
func (p *Parser) withItemsParenthesized() bool {
	depth := 0
	sawAs := false
	sawComma := false
	for i := 0; ; i++ {
		switch p.peek(i).Type {
		case lexer.TokenLParen, lexer.TokenLBracket, lexer.TokenLBrace:
			depth++
		case lexer.TokenRParen, lexer.TokenRBracket, lexer.TokenRBrace:
			depth--
			if depth == 0 {
				if sawAs {
					return true
				}
				// before 3.10 "with (a, b):" is a tuple context manager
				return sawComma && p.peek(i+1).Type == lexer.TokenColon &&
					pyver.Supports(p.version, pyver.FeatureParenContextManagers)
			}
		case lexer.TokenAs:
			if depth == 1 {
				sawAs = true
			}
		case lexer.TokenComma:
			if depth == 1 {
				sawComma = true
			}
		case lexer.TokenFor, lexer.TokenLambda:
			// generator or lambda groups carry their own commas
			if depth == 1 {
				return false
			}
		case lexer.TokenEndMarker:
			return false
		}
	}
}

func (p *Parser) parseDecorated() ast.Statement {
	start := p.cur().Span.Start
	var decorators []ast.Expression
	for p.at(lexer.TokenAt) {
		p.advance()
		decorators = append(decorators, p.parseNamedExpr())
		p.expectNewline()
		for p.at(lexer.TokenNL) {
			p.advance()
		}
	}
	switch p.cur().Type {
	case lexer.TokenDef:
		return p.parseFunctionDef(decorators, false, start)
	case lexer.TokenClass:
		return p.parseClassDef(decorators, start)
	case lexer.TokenAsync:
		p.advance()
		if !p.at(lexer.TokenDef) {
			p.errorf(p.cur().Span.Start, "expected 'def' after 'async' in decorated statement")
		}
		return p.parseFunctionDef(decorators, true, start)
	}
	p.errorf(p.cur().Span.Start, "expected a function or class definition after decorators")
	return nil
}

func (p *Parser) parseAsync() ast.Statement {
	start := p.advance().Span.Start // async
	switch p.cur().Type {
	case lexer.TokenDef:
		return p.parseFunctionDef(nil, true, start)
	case lexer.TokenFor:
		return p.parseFor(true, start)
	case lexer.TokenWith:
		return p.parseWith(true, start)
	}
	p.errorf(p.cur().Span.Start, "expected 'def', 'for' or 'with' after 'async'")
	return nil
}

func (p *Parser) parseFunctionDef(decorators []ast.Expression, isAsync bool, start position.Position) ast.Statement {
	p.expect(lexer.TokenDef)
	name := p.expectName().Literal
	p.expect(lexer.TokenLParen)
	args := p.parseParameters(true)
	p.expect(lexer.TokenRParen)
	var returns ast.Expression
	if p.match(lexer.TokenArrow) {
		returns = p.parseExpression()
	}
	p.expectColon()
	body := p.parseSuite()
	return &ast.FunctionDef{
		Span:       position.NewSpan(start, lastSpanEnd(body)),
		Name:       name,
		Args:       args,
		Body:       body,
		Decorators: decorators,
		Returns:    returns,
		IsAsync:    isAsync,
	}
}

func (p *Parser) parseClassDef(decorators []ast.Expression, start position.Position) ast.Statement {
	p.expect(lexer.TokenClass)
	name := p.expectName().Literal
	cls := &ast.ClassDef{Name: name, Decorators: decorators}
	if p.match(lexer.TokenLParen) {
		for !p.at(lexer.TokenRParen) {
			if p.at(lexer.TokenDoubleStar) {
				kstart := p.advance().Span.Start
				value := p.parseExpression()
				cls.Keywords = append(cls.Keywords, &ast.Keyword{
					Span:  position.NewSpan(kstart, value.GetSpan().End),
					Value: value,
				})
			} else if p.atName() && p.peek(1).Type == lexer.TokenAssign {
				key := p.advance()
				p.advance() // =
				value := p.parseExpression()
				cls.Keywords = append(cls.Keywords, &ast.Keyword{
					Span:  position.NewSpan(key.Span.Start, value.GetSpan().End),
					Arg:   key.Literal,
					Value: value,
				})
			} else {
				cls.Bases = append(cls.Bases, p.parseExpression())
			}
			if !p.match(lexer.TokenComma) {
				break
			}
		}
		p.expect(lexer.TokenRParen)
	}
	p.expectColon()
	cls.Body = p.parseSuite()
	cls.Span = position.NewSpan(start, lastSpanEnd(cls.Body))
	return cls
}

// parseParameters parses the contents of a def parameter list or a
// lambda parameter list. Annotations are only legal in defs.
func (p *Parser) parseParameters(allowAnnotations bool) *ast.Arguments {
	args := &ast.Arguments{Span: p.cur().Span}
	seenDefault := false
	seenStar := false

	parseOne := func() *ast.Arg {
		tok := p.expectName()
		arg := &ast.Arg{Span: tok.Span, Name: tok.Literal}
		if allowAnnotations && p.match(lexer.TokenColon) {
			arg.Annotation = p.parseExpression()
			arg.Span = position.NewSpan(tok.Span.Start, arg.Annotation.GetSpan().End)
		}
		return arg
	}

	for p.atName() || p.at(lexer.TokenStar) || p.at(lexer.TokenDoubleStar) || p.at(lexer.TokenSlash) {
		switch {
		case p.match(lexer.TokenSlash):
			p.require(pyver.FeaturePosOnlyParams, p.cur().Span.Start)
			if len(args.Args) == 0 || len(args.PosOnly) > 0 || seenStar {
				p.errorf(p.cur().Span.Start, "unexpected '/' in parameter list")
			}
			args.PosOnly = args.Args
			args.Args = nil
		case p.at(lexer.TokenStar):
			star := p.advance()
			if seenStar {
				p.errorf(star.Span.Start, "duplicate '*' in parameter list")
			}
			seenStar = true
			if p.atName() {
				args.Vararg = parseOne()
			}
		case p.at(lexer.TokenDoubleStar):
			p.advance()
			args.Kwarg = parseOne()
			if p.match(lexer.TokenComma) {
				if !p.at(lexer.TokenRParen) && !p.at(lexer.TokenColon) {
					p.errorf(p.cur().Span.Start, "no parameters allowed after **%s", args.Kwarg.Name)
				}
			}
			return args
		default:
			arg := parseOne()
			var deflt ast.Expression
			if p.match(lexer.TokenAssign) {
				deflt = p.parseExpression()
				seenDefault = true
			} else if seenDefault && !seenStar {
				p.errorf(arg.Span.Start, "parameter without a default follows parameter with a default")
			}
			if seenStar {
				args.KwOnly = append(args.KwOnly, arg)
				args.KwDefaults = append(args.KwDefaults, deflt)
			} else {
				args.Args = append(args.Args, arg)
				if deflt != nil {
					args.Defaults = append(args.Defaults, deflt)
				}
			}
		}
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	if seenStar && args.Vararg == nil && len(args.KwOnly) == 0 {
		p.errorf(p.cur().Span.Start, "named parameter must follow bare '*'")
	}
	return args
}

// ====== Simple statements ======

func (p *Parser) parseSimpleStatement() ast.Statement {
	switch p.cur().Type {
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenPass:
		tok := p.advance()
		return &ast.Pass{Span: tok.Span}
	case lexer.TokenBreak:
		tok := p.advance()
		return &ast.Break{Span: tok.Span}
	case lexer.TokenContinue:
		tok := p.advance()
		return &ast.Continue{Span: tok.Span}
	case lexer.TokenRaise:
		return p.parseRaise()
	case lexer.TokenAssert:
		return p.parseAssert()
	case lexer.TokenImport:
		return p.parseImport()
	case lexer.TokenFrom:
		return p.parseImportFrom()
	case lexer.TokenDel:
		return p.parseDelete()
	case lexer.TokenGlobal:
		return p.parseGlobal()
	case lexer.TokenNonlocal:
		return p.parseNonlocal()
	case lexer.TokenTypeKw:
		if p.isTypeAlias() {
			return p.parseTypeAlias()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseReturn() ast.Statement {
	tok := p.advance()
	stmt := &ast.Return{Span: tok.Span}
	if !p.atLineEnd() {
		stmt.Value = p.parseExpressionList()
		stmt.Span = position.NewSpan(tok.Span.Start, stmt.Value.GetSpan().End)
	}
	return stmt
}

func (p *Parser) parseRaise() ast.Statement {
	tok := p.advance()
	stmt := &ast.Raise{Span: tok.Span}
	if !p.atLineEnd() {
		stmt.Exc = p.parseExpression()
		end := stmt.Exc.GetSpan().End
		if p.match(lexer.TokenFrom) {
			stmt.Cause = p.parseExpression()
			end = stmt.Cause.GetSpan().End
		}
		stmt.Span = position.NewSpan(tok.Span.Start, end)
	}
	return stmt
}

func (p *Parser) parseAssert() ast.Statement {
	tok := p.advance()
	test := p.parseExpression()
	stmt := &ast.Assert{Test: test}
	end := test.GetSpan().End
	if p.match(lexer.TokenComma) {
		stmt.Msg = p.parseExpression()
		end = stmt.Msg.GetSpan().End
	}
	stmt.Span = position.NewSpan(tok.Span.Start, end)
	return stmt
}

func (p *Parser) parseImport() ast.Statement {
	tok := p.advance()
	stmt := &ast.Import{}
	for {
		stmt.Names = append(stmt.Names, p.parseDottedAlias())
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	last := stmt.Names[len(stmt.Names)-1]
	stmt.Span = position.NewSpan(tok.Span.Start, last.Span.End)
	return stmt
}

func (p *Parser) parseImportFrom() ast.Statement {
	tok := p.advance() // from
	stmt := &ast.ImportFrom{}
	for {
		if p.at(lexer.TokenDot) {
			p.advance()
			stmt.Level++
		} else if p.at(lexer.TokenEllipsis) {
			p.advance()
			stmt.Level += 3
		} else {
			break
		}
	}
	if p.atName() {
		stmt.Module = p.parseDottedName()
	} else if stmt.Level == 0 {
		p.errorf(p.cur().Span.Start, "expected a module name after 'from'")
	}
	p.expect(lexer.TokenImport)

	end := p.cur().Span.End
	switch {
	case p.at(lexer.TokenStar):
		star := p.advance()
		stmt.Names = []*ast.Alias{{Span: star.Span, Name: "*"}}
		end = star.Span.End
	case p.match(lexer.TokenLParen):
		for !p.at(lexer.TokenRParen) {
			stmt.Names = append(stmt.Names, p.parseAlias())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
		end = p.expect(lexer.TokenRParen).Span.End
	default:
		for {
			stmt.Names = append(stmt.Names, p.parseAlias())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
		end = stmt.Names[len(stmt.Names)-1].Span.End
	}
	if len(stmt.Names) == 0 {
		p.errorf(p.cur().Span.Start, "expected at least one name to import")
	}
	stmt.Span = position.NewSpan(tok.Span.Start, end)
	return stmt
}

func (p *Parser) parseDottedName() string {
	name := p.expectName().Literal
	for p.at(lexer.TokenDot) && isNameToken(p.peek(1).Type) {
		p.advance()
		name += "." + p.advance().Literal
	}
	return name
}

func (p *Parser) parseDottedAlias() *ast.Alias {
	start := p.cur().Span.Start
	alias := &ast.Alias{Name: p.parseDottedName()}
	end := p.tokens[p.pos-1].Span.End
	if p.match(lexer.TokenAs) {
		tok := p.expectName()
		alias.AsName = tok.Literal
		end = tok.Span.End
	}
	alias.Span = position.NewSpan(start, end)
	return alias
}

func (p *Parser) parseAlias() *ast.Alias {
	tok := p.expectName()
	alias := &ast.Alias{Span: tok.Span, Name: tok.Literal}
	if p.match(lexer.TokenAs) {
		as := p.expectName()
		alias.AsName = as.Literal
		alias.Span = position.NewSpan(tok.Span.Start, as.Span.End)
	}
	return alias
}

func (p *Parser) parseDelete() ast.Statement {
	tok := p.advance()
	stmt := &ast.Delete{}
	for {
		stmt.Targets = append(stmt.Targets, p.parseTarget())
		if !p.match(lexer.TokenComma) {
			break
		}
		if p.atLineEnd() {
			break
		}
	}
	last := stmt.Targets[len(stmt.Targets)-1]
	stmt.Span = position.NewSpan(tok.Span.Start, last.GetSpan().End)
	return stmt
}

func (p *Parser) parseGlobal() ast.Statement {
	tok := p.advance()
	stmt := &ast.Global{}
	end := tok.Span.End
	for {
		name := p.expectName()
		stmt.Names = append(stmt.Names, name.Literal)
		end = name.Span.End
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	stmt.Span = position.NewSpan(tok.Span.Start, end)
	return stmt
}

func (p *Parser) parseNonlocal() ast.Statement {
	tok := p.advance()
	stmt := &ast.Nonlocal{}
	end := tok.Span.End
	for {
		name := p.expectName()
		stmt.Names = append(stmt.Names, name.Literal)
		end = name.Span.End
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	stmt.Span = position.NewSpan(tok.Span.Start, end)
	return stmt
}

// isTypeAlias decides whether a leading 'type' token begins a type
// alias statement rather than a use of the name "type".
func (p *Parser) isTypeAlias() bool {
	return isNameToken(p.peek(1).Type) && p.peek(2).Type == lexer.TokenAssign
}

func (p *Parser) parseTypeAlias() ast.Statement {
	tok := p.advance() // type
	p.require(pyver.FeatureTypeAlias, tok.Span.Start)
	name := p.expectName().Literal
	p.expect(lexer.TokenAssign)
	value := p.parseExpression()
	return &ast.TypeAlias{
		Span:  position.NewSpan(tok.Span.Start, value.GetSpan().End),
		Name:  name,
		Value: value,
	}
}

// parseExpressionStatement covers plain expressions, assignment chains,
// augmented assignment and annotated assignment.
func (p *Parser) parseExpressionStatement() ast.Statement {
	start := p.cur().Span.Start
	first := p.parseExpressionList()

	// annotated assignment: one unparenthesized target, then ':'
	if p.at(lexer.TokenColon) {
		p.checkAssignTarget(first)
		p.advance()
		annotation := p.parseExpression()
		stmt := &ast.AnnAssign{Target: first, Annotation: annotation}
		end := annotation.GetSpan().End
		if p.match(lexer.TokenAssign) {
			stmt.Value = p.parseExpressionList()
			end = stmt.Value.GetSpan().End
		}
		stmt.Span = position.NewSpan(start, end)
		return stmt
	}

	if op, ok := augOps[p.cur().Type]; ok {
		p.checkAssignTarget(first)
		p.advance()
		value := p.parseAssignValue()
		return &ast.AugAssign{
			Span:   position.NewSpan(start, value.GetSpan().End),
			Target: first,
			Op:     op,
			Value:  value,
		}
	}

	if p.at(lexer.TokenAssign) {
		targets := []ast.Expression{first}
		var value ast.Expression = first
		for p.match(lexer.TokenAssign) {
			value = p.parseAssignValue()
			if p.at(lexer.TokenAssign) {
				targets = append(targets, value)
			}
		}
		for _, t := range targets {
			p.checkAssignTarget(t)
		}
		return &ast.Assign{
			Span:    position.NewSpan(start, value.GetSpan().End),
			Targets: targets,
			Value:   value,
		}
	}

	return &ast.ExprStmt{Span: first.GetSpan(), Value: first}
}

// parseAssignValue is the right side of '=': an expression list or a
// yield expression.
func (p *Parser) parseAssignValue() ast.Expression {
	if p.at(lexer.TokenYield) {
		return p.parseYield()
	}
	return p.parseExpressionList()
}

var augOps = map[lexer.TokenType]ast.BinOpKind{
	lexer.TokenPlusAssign:        ast.Add,
	lexer.TokenMinusAssign:       ast.Sub,
	lexer.TokenStarAssign:        ast.Mult,
	lexer.TokenAtAssign:          ast.MatMult,
	lexer.TokenSlashAssign:       ast.Div,
	lexer.TokenDoubleSlashAssign: ast.FloorDiv,
	lexer.TokenPercentAssign:     ast.Mod,
	lexer.TokenDoubleStarAssign:  ast.Pow,
	lexer.TokenLShiftAssign:      ast.LShift,
	lexer.TokenRShiftAssign:      ast.RShift,
	lexer.TokenAmperAssign:       ast.BitAnd,
	lexer.TokenVBarAssign:        ast.BitOr,
	lexer.TokenCaretAssign:       ast.BitXor,
}

// checkAssignTarget rejects expressions that can never be assigned to.
func (p *Parser) checkAssignTarget(e ast.Expression) {
	switch e := e.(type) {
	case *ast.Name, *ast.Attribute, *ast.Subscript:
	case *ast.Starred:
		p.checkAssignTarget(e.Value)
	case *ast.Tuple:
		for _, el := range e.Elts {
			p.checkAssignTarget(el)
		}
	case *ast.List:
		for _, el := range e.Elts {
			p.checkAssignTarget(el)
		}
	default:
		p.errorf(e.GetSpan().Start, "cannot assign to this expression")
	}
}

func (p *Parser) atLineEnd() bool {
	switch p.cur().Type {
	case lexer.TokenNewline, lexer.TokenSemicolon, lexer.TokenDedent, lexer.TokenEndMarker:
		return true
	}
	return false
}

// ====== Match statements ======

// isMatchStatement scans the rest of the logical line: 'match' opens a
// match statement when a suite colon appears at bracket depth zero with
// no assignment before it. Otherwise "match" is an ordinary name.
func (p *Parser) isMatchStatement() bool {
	depth := 0
	for i := p.pos + 1; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case lexer.TokenLParen, lexer.TokenLBracket, lexer.TokenLBrace:
			depth++
		case lexer.TokenRParen, lexer.TokenRBracket, lexer.TokenRBrace:
			depth--
		case lexer.TokenColon:
			if depth == 0 {
				// "match:" with no subject is an annotation, not a match
				return i > p.pos+1
			}
		case lexer.TokenAssign, lexer.TokenSemicolon:
			if depth == 0 {
				return false
			}
		case lexer.TokenNewline, lexer.TokenEndMarker:
			return false
		default:
			if depth == 0 {
				if _, aug := augOps[p.tokens[i].Type]; aug {
					return false
				}
			}
		}
	}
	return false
}

func (p *Parser) parseMatch() ast.Statement {
	tok := p.advance() // match
	p.require(pyver.FeatureMatch, tok.Span.Start)
	subject := p.parseExpressionList()
	p.expectColon()
	p.expect(lexer.TokenNewline)
	for p.at(lexer.TokenNL) {
		p.advance()
	}
	p.expect(lexer.TokenIndent)

	stmt := &ast.Match{Subject: subject}
	end := subject.GetSpan().End
	for !p.at(lexer.TokenDedent) && !p.at(lexer.TokenEndMarker) {
		if p.at(lexer.TokenNL) {
			p.advance()
			continue
		}
		cstart := p.expect(lexer.TokenCase).Span.Start
		mc := &ast.MatchCase{}
		mc.Pattern = p.parsePatterns()
		if p.match(lexer.TokenIf) {
			mc.Guard = p.parseNamedExpr()
		}
		p.expectColon()
		mc.Body = p.parseSuite()
		mc.Span = position.NewSpan(cstart, lastSpanEnd(mc.Body))
		end = mc.Span.End
		stmt.Cases = append(stmt.Cases, mc)
	}
	p.expect(lexer.TokenDedent)
	if len(stmt.Cases) == 0 {
		p.errorf(tok.Span.Start, "match statement must have at least one case clause")
	}
	stmt.Span = position.NewSpan(tok.Span.Start, end)
	return stmt
}

// ====== Span helpers ======

func lastSpanEnd(body []ast.Statement) position.Position {
	return body[len(body)-1].GetSpan().End
}

func (p *Parser) spanFrom(start position.Position, body, orelse []ast.Statement) position.Span {
	end := lastSpanEnd(body)
	if len(orelse) > 0 {
		end = lastSpanEnd(orelse)
	}
	return position.NewSpan(start, end)
}
