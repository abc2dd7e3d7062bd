package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
	"github.com/pythia-lang/pythia/internal/position"
	"github.com/pythia-lang/pythia/internal/pyver"
)

// parseExpressionList parses "expr (',' expr)* [',']". A comma makes
// the result a tuple; starred elements are allowed.
func (p *Parser) parseExpressionList() ast.Expression {
	first := p.parseStarOrExpression()
	if !p.at(lexer.TokenComma) {
		return first
	}
	elts := []ast.Expression{first}
	for p.match(lexer.TokenComma) {
		if !p.startsExpression() {
			break
		}
		elts = append(elts, p.parseStarOrExpression())
	}
	end := elts[len(elts)-1].GetSpan().End
	return &ast.Tuple{
		Span: position.NewSpan(first.GetSpan().Start, end),
		Elts: elts,
	}
}

func (p *Parser) parseStarOrExpression() ast.Expression {
	if p.at(lexer.TokenStar) {
		star := p.advance()
		value := p.parseOrTest()
		return &ast.Starred{
			Span:  position.NewSpan(star.Span.Start, value.GetSpan().End),
			Value: value,
		}
	}
	return p.parseExpression()
}

// parseNamedExpr parses "target := value" where the grammar allows the
// walrus operator, falling back to an ordinary expression.
func (p *Parser) parseNamedExpr() ast.Expression {
	expr := p.parseExpression()
	if !p.at(lexer.TokenColonEqual) {
		return expr
	}
	p.require(pyver.FeatureWalrus, p.cur().Span.Start)
	name, ok := expr.(*ast.Name)
	if !ok {
		p.errorf(p.cur().Span.Start, "cannot use ':=' with this target; only a plain name can be assigned")
	}
	p.advance()
	value := p.parseExpression()
	return &ast.NamedExpr{
		Span:   position.NewSpan(name.Span.Start, value.GetSpan().End),
		Target: name,
		Value:  value,
	}
}

// parseExpression parses a conditional expression or lambda, the
// lowest-precedence single expression.
func (p *Parser) parseExpression() ast.Expression {
	if p.at(lexer.TokenLambda) {
		return p.parseLambda()
	}
	body := p.parseOrTest()
	if !p.at(lexer.TokenIf) {
		return body
	}
	p.advance()
	cond := p.parseOrTest()
	p.expect(lexer.TokenElse)
	orelse := p.parseExpression()
	return &ast.IfExp{
		Span:   position.NewSpan(body.GetSpan().Start, orelse.GetSpan().End),
		Body:   body,
		Cond:   cond,
		OrElse: orelse,
	}
}

func (p *Parser) parseLambda() ast.Expression {
	start := p.expect(lexer.TokenLambda).Span.Start
	var args *ast.Arguments
	if !p.at(lexer.TokenColon) {
		args = p.parseParameters(false)
	} else {
		args = &ast.Arguments{Span: p.cur().Span}
	}
	p.expect(lexer.TokenColon)
	body := p.parseExpression()
	return &ast.Lambda{
		Span: position.NewSpan(start, body.GetSpan().End),
		Args: args,
		Body: body,
	}
}

func (p *Parser) parseOrTest() ast.Expression {
	left := p.parseAndTest()
	if !p.at(lexer.TokenOr) {
		return left
	}
	values := []ast.Expression{left}
	for p.match(lexer.TokenOr) {
		values = append(values, p.parseAndTest())
	}
	return &ast.BoolOp{
		Span:   position.NewSpan(left.GetSpan().Start, values[len(values)-1].GetSpan().End),
		Op:     ast.Or,
		Values: values,
	}
}

func (p *Parser) parseAndTest() ast.Expression {
	left := p.parseNotTest()
	if !p.at(lexer.TokenAnd) {
		return left
	}
	values := []ast.Expression{left}
	for p.match(lexer.TokenAnd) {
		values = append(values, p.parseNotTest())
	}
	return &ast.BoolOp{
		Span:   position.NewSpan(left.GetSpan().Start, values[len(values)-1].GetSpan().End),
		Op:     ast.And,
		Values: values,
	}
}

func (p *Parser) parseNotTest() ast.Expression {
	if p.at(lexer.TokenNot) {
		tok := p.advance()
		operand := p.parseNotTest()
		return &ast.UnaryOp{
			Span:    position.NewSpan(tok.Span.Start, operand.GetSpan().End),
			Op:      ast.Not,
			Operand: operand,
		}
	}
	return p.parseComparison()
}

// parseComparison parses a chained comparison such as "a < b <= c" into
// a single node with parallel operator and comparator lists.
func (p *Parser) parseComparison() ast.Expression {
	left := p.parseBitOr()
	var ops []ast.CmpOpKind
	var comparators []ast.Expression
	for {
		op, ok := p.comparisonOp()
		if !ok {
			break
		}
		ops = append(ops, op)
		comparators = append(comparators, p.parseBitOr())
	}
	if len(ops) == 0 {
		return left
	}
	return &ast.Compare{
		Span:        position.NewSpan(left.GetSpan().Start, comparators[len(comparators)-1].GetSpan().End),
		Left:        left,
		Ops:         ops,
		Comparators: comparators,
	}
}

func (p *Parser) comparisonOp() (ast.CmpOpKind, bool) {
	switch p.cur().Type {
	case lexer.TokenLess:
		p.advance()
		return ast.Lt, true
	case lexer.TokenGreater:
		p.advance()
		return ast.Gt, true
	case lexer.TokenLessEqual:
		p.advance()
		return ast.LtE, true
	case lexer.TokenGreaterEqual:
		p.advance()
		return ast.GtE, true
	case lexer.TokenEqual:
		p.advance()
		return ast.Eq, true
	case lexer.TokenNotEqual:
		p.advance()
		return ast.NotEq, true
	case lexer.TokenIn:
		p.advance()
		return ast.In, true
	case lexer.TokenIs:
		p.advance()
		if p.match(lexer.TokenNot) {
			return ast.IsNot, true
		}
		return ast.Is, true
	case lexer.TokenNot:
		if p.peek(1).Type == lexer.TokenIn {
			p.advance()
			p.advance()
			return ast.NotIn, true
		}
	}
	return 0, false
}

func (p *Parser) parseBitOr() ast.Expression {
	left := p.parseBitXor()
	for p.at(lexer.TokenVBar) {
		p.advance()
		right := p.parseBitXor()
		left = binop(left, ast.BitOr, right)
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expression {
	left := p.parseBitAnd()
	for p.at(lexer.TokenCaret) {
		p.advance()
		right := p.parseBitAnd()
		left = binop(left, ast.BitXor, right)
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expression {
	left := p.parseShift()
	for p.at(lexer.TokenAmper) {
		p.advance()
		right := p.parseShift()
		left = binop(left, ast.BitAnd, right)
	}
	return left
}

func (p *Parser) parseShift() ast.Expression {
	left := p.parseArith()
	for {
		var op ast.BinOpKind
		switch p.cur().Type {
		case lexer.TokenLShift:
			op = ast.LShift
		case lexer.TokenRShift:
			op = ast.RShift
		default:
			return left
		}
		p.advance()
		left = binop(left, op, p.parseArith())
	}
}

func (p *Parser) parseArith() ast.Expression {
	left := p.parseTerm()
	for {
		var op ast.BinOpKind
		switch p.cur().Type {
		case lexer.TokenPlus:
			op = ast.Add
		case lexer.TokenMinus:
			op = ast.Sub
		default:
			return left
		}
		p.advance()
		left = binop(left, op, p.parseTerm())
	}
}

func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()
	for {
		var op ast.BinOpKind
		switch p.cur().Type {
		case lexer.TokenStar:
			op = ast.Mult
		case lexer.TokenSlash:
			op = ast.Div
		case lexer.TokenDoubleSlash:
			op = ast.FloorDiv
		case lexer.TokenPercent:
			op = ast.Mod
		case lexer.TokenAt:
			op = ast.MatMult
		default:
			return left
		}
		p.advance()
		left = binop(left, op, p.parseFactor())
	}
}

// parseFactor parses prefix +, - and ~. The operand of a unary sign is
// another factor, so "-2**2" binds as "-(2**2)".
func (p *Parser) parseFactor() ast.Expression {
	var op ast.UnaryOpKind
	switch p.cur().Type {
	case lexer.TokenPlus:
		op = ast.UAdd
	case lexer.TokenMinus:
		op = ast.USub
	case lexer.TokenTilde:
		op = ast.Invert
	default:
		return p.parsePower()
	}
	tok := p.advance()
	operand := p.parseFactor()
	return &ast.UnaryOp{
		Span:    position.NewSpan(tok.Span.Start, operand.GetSpan().End),
		Op:      op,
		Operand: operand,
	}
}

// parsePower parses "base ** exp" with a right-associative exponent
// that binds tighter on the left than unary minus.
func (p *Parser) parsePower() ast.Expression {
	base := p.parseAwaitPrimary()
	if !p.at(lexer.TokenDoubleStar) {
		return base
	}
	p.advance()
	exp := p.parseFactor()
	return binop(base, ast.Pow, exp)
}

func (p *Parser) parseAwaitPrimary() ast.Expression {
	if p.at(lexer.TokenAwait) {
		tok := p.advance()
		value := p.parsePrimary()
		return &ast.Await{
			Span:  position.NewSpan(tok.Span.Start, value.GetSpan().End),
			Value: value,
		}
	}
	return p.parsePrimary()
}

// parsePrimary parses an atom followed by call, subscript and
// attribute trailers.
func (p *Parser) parsePrimary() ast.Expression {
	expr := p.parseAtom()
	for {
		switch p.cur().Type {
		case lexer.TokenLParen:
			expr = p.parseCall(expr)
		case lexer.TokenLBracket:
			expr = p.parseSubscript(expr)
		case lexer.TokenDot:
			p.advance()
			attr := p.expectName()
			expr = &ast.Attribute{
				Span:  position.NewSpan(expr.GetSpan().Start, attr.Span.End),
				Value: expr,
				Attr:  attr.Literal,
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCall(fn ast.Expression) ast.Expression {
	p.expect(lexer.TokenLParen)
	call := &ast.Call{Func: fn}
	sawKeyword := false
	for !p.at(lexer.TokenRParen) {
		switch {
		case p.at(lexer.TokenStar):
			star := p.advance()
			value := p.parseExpression()
			call.Args = append(call.Args, &ast.Starred{
				Span:  position.NewSpan(star.Span.Start, value.GetSpan().End),
				Value: value,
			})
		case p.at(lexer.TokenDoubleStar):
			star := p.advance()
			value := p.parseExpression()
			call.Keywords = append(call.Keywords, &ast.Keyword{
				Span:  position.NewSpan(star.Span.Start, value.GetSpan().End),
				Value: value,
			})
			sawKeyword = true
		case p.isKeywordArg():
			key := p.advance()
			p.advance() // =
			value := p.parseExpression()
			call.Keywords = append(call.Keywords, &ast.Keyword{
				Span:  position.NewSpan(key.Span.Start, value.GetSpan().End),
				Arg:   key.Literal,
				Value: value,
			})
			sawKeyword = true
		default:
			arg := p.parseNamedExpr()
			if p.at(lexer.TokenAsync) || p.at(lexer.TokenFor) {
				// bare generator argument: f(x for x in xs)
				arg = p.parseGeneratorFrom(arg)
			} else if sawKeyword {
				p.errorf(arg.GetSpan().Start, "positional argument follows keyword argument")
			}
			call.Args = append(call.Args, arg)
		}
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	rparen := p.expect(lexer.TokenRParen)
	call.Span = position.NewSpan(fn.GetSpan().Start, rparen.Span.End)
	return call
}

// isKeywordArg reports whether the current position starts "name=value"
// (and not "name==value", which is a comparison).
func (p *Parser) isKeywordArg() bool {
	if !p.atName() {
		return false
	}
	return p.peek(1).Type == lexer.TokenAssign
}

func (p *Parser) parseSubscript(value ast.Expression) ast.Expression {
	p.expect(lexer.TokenLBracket)
	first := p.parseSubscriptItem()
	var index ast.Expression = first
	if p.at(lexer.TokenComma) {
		elts := []ast.Expression{first}
		for p.match(lexer.TokenComma) {
			if p.at(lexer.TokenRBracket) {
				break
			}
			elts = append(elts, p.parseSubscriptItem())
		}
		index = &ast.Tuple{
			Span: position.NewSpan(first.GetSpan().Start, elts[len(elts)-1].GetSpan().End),
			Elts: elts,
		}
	}
	rbracket := p.expect(lexer.TokenRBracket)
	return &ast.Subscript{
		Span:  position.NewSpan(value.GetSpan().Start, rbracket.Span.End),
		Value: value,
		Index: index,
	}
}

// parseSubscriptItem parses one subscript element: a slice when a ':'
// appears, otherwise an ordinary expression.
func (p *Parser) parseSubscriptItem() ast.Expression {
	start := p.cur().Span.Start
	var lower ast.Expression
	if !p.at(lexer.TokenColon) {
		if p.at(lexer.TokenStar) {
			return p.parseStarOrExpression()
		}
		lower = p.parseNamedExpr()
		if !p.at(lexer.TokenColon) {
			return lower
		}
		start = lower.GetSpan().Start
	}
	colon := p.expect(lexer.TokenColon)
	sl := &ast.Slice{Lower: lower}
	end := colon.Span.End
	if p.startsExpression() {
		sl.Upper = p.parseExpression()
		end = sl.Upper.GetSpan().End
	}
	if p.at(lexer.TokenColon) {
		end = p.advance().Span.End
		if p.startsExpression() {
			sl.Step = p.parseExpression()
			end = sl.Step.GetSpan().End
		}
	}
	sl.Span = position.NewSpan(start, end)
	return sl
}

// ====== Targets ======

// parseTarget parses a single assignment target for "as" clauses and
// del statements.
func (p *Parser) parseTarget() ast.Expression {
	target := p.parseTargetItem()
	p.checkAssignTarget(target)
	return target
}

// parseTargetList parses the comma-separated targets of a for loop or
// comprehension clause.
func (p *Parser) parseTargetList() ast.Expression {
	first := p.parseTargetItem()
	var target ast.Expression = first
	if p.at(lexer.TokenComma) {
		elts := []ast.Expression{first}
		for p.match(lexer.TokenComma) {
			if !p.startsExpression() {
				break
			}
			elts = append(elts, p.parseTargetItem())
		}
		target = &ast.Tuple{
			Span: position.NewSpan(first.GetSpan().Start, elts[len(elts)-1].GetSpan().End),
			Elts: elts,
		}
	}
	p.checkAssignTarget(target)
	return target
}

// parseTargetItem parses one bindable target: a primary (name with
// attribute/subscript trailers), a starred target, or a parenthesized
// or bracketed target list. Binary and comparison operators never bind
// here, which leaves the "in" of a for clause for the caller.
func (p *Parser) parseTargetItem() ast.Expression {
	switch p.cur().Type {
	case lexer.TokenStar:
		star := p.advance()
		value := p.parseTargetItem()
		return &ast.Starred{
			Span:  position.NewSpan(star.Span.Start, value.GetSpan().End),
			Value: value,
		}
	case lexer.TokenLParen:
		lparen := p.advance()
		if p.at(lexer.TokenRParen) {
			rparen := p.advance()
			return &ast.Tuple{Span: position.NewSpan(lparen.Span.Start, rparen.Span.End)}
		}
		first := p.parseTargetItem()
		if !p.at(lexer.TokenComma) {
			p.expect(lexer.TokenRParen)
			return first
		}
		elts := []ast.Expression{first}
		for p.match(lexer.TokenComma) {
			if p.at(lexer.TokenRParen) {
				break
			}
			elts = append(elts, p.parseTargetItem())
		}
		rparen := p.expect(lexer.TokenRParen)
		return &ast.Tuple{
			Span: position.NewSpan(lparen.Span.Start, rparen.Span.End),
			Elts: elts,
		}
	case lexer.TokenLBracket:
		lbracket := p.advance()
		var elts []ast.Expression
		for !p.at(lexer.TokenRBracket) {
			elts = append(elts, p.parseTargetItem())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
		rbracket := p.expect(lexer.TokenRBracket)
		return &ast.List{
			Span: position.NewSpan(lbracket.Span.Start, rbracket.Span.End),
			Elts: elts,
		}
	}
	return p.parsePrimary()
}

// ====== Yield ======

func (p *Parser) parseYield() ast.Expression {
	tok := p.expect(lexer.TokenYield)
	if p.match(lexer.TokenFrom) {
		value := p.parseExpression()
		return &ast.YieldFrom{
			Span:  position.NewSpan(tok.Span.Start, value.GetSpan().End),
			Value: value,
		}
	}
	y := &ast.Yield{Span: tok.Span}
	if p.startsExpression() {
		y.Value = p.parseExpressionList()
		y.Span = position.NewSpan(tok.Span.Start, y.Value.GetSpan().End)
	}
	return y
}

// ====== Atoms ======

func (p *Parser) parseAtom() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.TokenName, lexer.TokenMatch, lexer.TokenCase, lexer.TokenTypeKw:
		p.advance()
		return &ast.Name{Span: tok.Span, ID: tok.Literal}
	case lexer.TokenNumber:
		p.advance()
		return &ast.NumberLit{Span: tok.Span, Literal: tok.Literal}
	case lexer.TokenString, lexer.TokenFString:
		return p.parseStrings()
	case lexer.TokenTrue:
		p.advance()
		return &ast.BoolLit{Span: tok.Span, Value: true}
	case lexer.TokenFalse:
		p.advance()
		return &ast.BoolLit{Span: tok.Span, Value: false}
	case lexer.TokenNone:
		p.advance()
		return &ast.NoneLit{Span: tok.Span}
	case lexer.TokenEllipsis:
		p.advance()
		return &ast.EllipsisLit{Span: tok.Span}
	case lexer.TokenLParen:
		return p.parseParenAtom()
	case lexer.TokenLBracket:
		return p.parseListAtom()
	case lexer.TokenLBrace:
		return p.parseBraceAtom()
	case lexer.TokenLambda:
		return p.parseLambda()
	case lexer.TokenYield:
		return p.parseYield()
	}
	p.errorf(tok.Span.Start, "expected an expression, found %s", describe(tok))
	return nil
}

func (p *Parser) parseParenAtom() ast.Expression {
	lparen := p.expect(lexer.TokenLParen)
	if p.at(lexer.TokenRParen) {
		rparen := p.advance()
		return &ast.Tuple{Span: position.NewSpan(lparen.Span.Start, rparen.Span.End)}
	}
	if p.at(lexer.TokenYield) {
		y := p.parseYield()
		p.expect(lexer.TokenRParen)
		return y
	}
	first := p.parseStarOrNamedExpr()
	if p.at(lexer.TokenAsync) || p.at(lexer.TokenFor) {
		gen := p.parseGeneratorFrom(first)
		rparen := p.expect(lexer.TokenRParen)
		g := gen.(*ast.GeneratorExp)
		g.Span = position.NewSpan(lparen.Span.Start, rparen.Span.End)
		return g
	}
	if p.at(lexer.TokenComma) {
		elts := []ast.Expression{first}
		for p.match(lexer.TokenComma) {
			if p.at(lexer.TokenRParen) {
				break
			}
			elts = append(elts, p.parseStarOrNamedExpr())
		}
		rparen := p.expect(lexer.TokenRParen)
		return &ast.Tuple{
			Span: position.NewSpan(lparen.Span.Start, rparen.Span.End),
			Elts: elts,
		}
	}
	p.expect(lexer.TokenRParen)
	// grouping parentheses are not recorded in the tree
	return first
}

func (p *Parser) parseStarOrNamedExpr() ast.Expression {
	if p.at(lexer.TokenStar) {
		return p.parseStarOrExpression()
	}
	return p.parseNamedExpr()
}

func (p *Parser) parseListAtom() ast.Expression {
	lbracket := p.expect(lexer.TokenLBracket)
	if p.at(lexer.TokenRBracket) {
		rbracket := p.advance()
		return &ast.List{Span: position.NewSpan(lbracket.Span.Start, rbracket.Span.End)}
	}
	first := p.parseStarOrNamedExpr()
	if p.at(lexer.TokenAsync) || p.at(lexer.TokenFor) {
		gens := p.parseComprehensionClauses()
		rbracket := p.expect(lexer.TokenRBracket)
		return &ast.ListComp{
			Span:       position.NewSpan(lbracket.Span.Start, rbracket.Span.End),
			Elt:        first,
			Generators: gens,
		}
	}
	elts := []ast.Expression{first}
	for p.match(lexer.TokenComma) {
		if p.at(lexer.TokenRBracket) {
			break
		}
		elts = append(elts, p.parseStarOrNamedExpr())
	}
	rbracket := p.expect(lexer.TokenRBracket)
	return &ast.List{
		Span: position.NewSpan(lbracket.Span.Start, rbracket.Span.End),
		Elts: elts,
	}
}

// parseBraceAtom parses dict and set displays and their comprehension
// forms. The first element decides which one it is.
func (p *Parser) parseBraceAtom() ast.Expression {
	lbrace := p.expect(lexer.TokenLBrace)
	if p.at(lexer.TokenRBrace) {
		rbrace := p.advance()
		return &ast.Dict{Span: position.NewSpan(lbrace.Span.Start, rbrace.Span.End)}
	}

	if p.at(lexer.TokenDoubleStar) {
		return p.parseDictRest(lbrace, nil, nil)
	}
	if p.at(lexer.TokenStar) {
		first := p.parseStarOrExpression()
		return p.parseSetRest(lbrace, first)
	}

	first := p.parseNamedExpr()
	if p.at(lexer.TokenColon) {
		p.advance()
		value := p.parseExpression()
		if p.at(lexer.TokenAsync) || p.at(lexer.TokenFor) {
			gens := p.parseComprehensionClauses()
			rbrace := p.expect(lexer.TokenRBrace)
			return &ast.DictComp{
				Span:       position.NewSpan(lbrace.Span.Start, rbrace.Span.End),
				Key:        first,
				Value:      value,
				Generators: gens,
			}
		}
		return p.parseDictRest(lbrace, []ast.Expression{first}, []ast.Expression{value})
	}
	if p.at(lexer.TokenAsync) || p.at(lexer.TokenFor) {
		gens := p.parseComprehensionClauses()
		rbrace := p.expect(lexer.TokenRBrace)
		return &ast.SetComp{
			Span:       position.NewSpan(lbrace.Span.Start, rbrace.Span.End),
			Elt:        first,
			Generators: gens,
		}
	}
	return p.parseSetRest(lbrace, first)
}

func (p *Parser) parseDictRest(lbrace lexer.Token, keys, values []ast.Expression) ast.Expression {
	for {
		if len(values) > 0 && !p.match(lexer.TokenComma) {
			break
		}
		if p.at(lexer.TokenRBrace) {
			break
		}
		if p.at(lexer.TokenDoubleStar) {
			p.advance()
			keys = append(keys, nil)
			values = append(values, p.parseBitOr())
			continue
		}
		key := p.parseExpression()
		p.expect(lexer.TokenColon)
		keys = append(keys, key)
		values = append(values, p.parseExpression())
	}
	rbrace := p.expect(lexer.TokenRBrace)
	return &ast.Dict{
		Span:   position.NewSpan(lbrace.Span.Start, rbrace.Span.End),
		Keys:   keys,
		Values: values,
	}
}

func (p *Parser) parseSetRest(lbrace lexer.Token, first ast.Expression) ast.Expression {
	elts := []ast.Expression{first}
	for p.match(lexer.TokenComma) {
		if p.at(lexer.TokenRBrace) {
			break
		}
		elts = append(elts, p.parseStarOrNamedExpr())
	}
	rbrace := p.expect(lexer.TokenRBrace)
	return &ast.Set{
		Span: position.NewSpan(lbrace.Span.Start, rbrace.Span.End),
		Elts: elts,
	}
}

// ====== Comprehensions ======

func (p *Parser) parseGeneratorFrom(elt ast.Expression) ast.Expression {
	gens := p.parseComprehensionClauses()
	return &ast.GeneratorExp{
		Span:       position.NewSpan(elt.GetSpan().Start, gens[len(gens)-1].Span.End),
		Elt:        elt,
		Generators: gens,
	}
}

func (p *Parser) parseComprehensionClauses() []*ast.Comprehension {
	var gens []*ast.Comprehension
	for {
		isAsync := false
		start := p.cur().Span.Start
		if p.at(lexer.TokenAsync) {
			p.advance()
			isAsync = true
		} else if !p.at(lexer.TokenFor) {
			break
		}
		p.expect(lexer.TokenFor)
		target := p.parseTargetList()
		p.expect(lexer.TokenIn)
		iter := p.parseOrTest()
		gen := &ast.Comprehension{
			Target:  target,
			Iter:    iter,
			IsAsync: isAsync,
		}
		end := iter.GetSpan().End
		for p.at(lexer.TokenIf) {
			p.advance()
			cond := p.parseOrTestNamed()
			gen.Ifs = append(gen.Ifs, cond)
			end = cond.GetSpan().End
		}
		gen.Span = position.NewSpan(start, end)
		gens = append(gens, gen)
	}
	return gens
}

// parseOrTestNamed is an or-test that also permits a walrus binding,
// for comprehension filter clauses.
func (p *Parser) parseOrTestNamed() ast.Expression {
	expr := p.parseOrTest()
	if !p.at(lexer.TokenColonEqual) {
		return expr
	}
	p.require(pyver.FeatureWalrus, p.cur().Span.Start)
	name, ok := expr.(*ast.Name)
	if !ok {
		p.errorf(p.cur().Span.Start, "cannot use ':=' with this target; only a plain name can be assigned")
	}
	p.advance()
	value := p.parseExpression()
	return &ast.NamedExpr{
		Span:   position.NewSpan(name.Span.Start, value.GetSpan().End),
		Target: name,
		Value:  value,
	}
}

// ====== Helpers ======

func binop(left ast.Expression, op ast.BinOpKind, right ast.Expression) ast.Expression {
	return &ast.BinOp{
		Span:  position.NewSpan(left.GetSpan().Start, right.GetSpan().End),
		Op:    op,
		Left:  left,
		Right: right,
	}
}

// startsExpression reports whether the current token can begin an
// expression, for optional trailing operands.
func (p *Parser) startsExpression() bool {
	switch p.cur().Type {
	case lexer.TokenName, lexer.TokenNumber, lexer.TokenString, lexer.TokenFString,
		lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNone, lexer.TokenEllipsis,
		lexer.TokenLParen, lexer.TokenLBracket, lexer.TokenLBrace,
		lexer.TokenPlus, lexer.TokenMinus, lexer.TokenTilde, lexer.TokenStar,
		lexer.TokenNot, lexer.TokenLambda, lexer.TokenAwait, lexer.TokenYield,
		lexer.TokenMatch, lexer.TokenCase, lexer.TokenTypeKw:
		return true
	}
	return false
}
