package unparse

import (
	"fmt"
	"strings"

	"github.com/pythia-lang/pythia/internal/ast"
)

// Operator precedence levels, lowest first. An expression is wrapped in
// parentheses when its own level is below the context's.
const (
	precLowest = iota // named expressions, yield, bare tuples
	precTest          // lambda, conditional expression
	precOr
	precAnd
	precNot
	precCmp
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precArith
	precTerm
	precUnary
	precPower
	precAwait
	precAtom
)

var binOpPrec = map[ast.BinOpKind]int{
	ast.BitOr:    precBitOr,
	ast.BitXor:   precBitXor,
	ast.BitAnd:   precBitAnd,
	ast.LShift:   precShift,
	ast.RShift:   precShift,
	ast.Add:      precArith,
	ast.Sub:      precArith,
	ast.Mult:     precTerm,
	ast.MatMult:  precTerm,
	ast.Div:      precTerm,
	ast.FloorDiv: precTerm,
	ast.Mod:      precTerm,
	ast.Pow:      precPower,
}

func exprPrec(e ast.Expression) int {
	switch e := e.(type) {
	case *ast.NamedExpr, *ast.Yield, *ast.YieldFrom, *ast.Tuple:
		return precLowest
	case *ast.Lambda, *ast.IfExp:
		return precTest
	case *ast.BoolOp:
		if e.Op == ast.Or {
			return precOr
		}
		return precAnd
	case *ast.UnaryOp:
		if e.Op == ast.Not {
			return precNot
		}
		return precUnary
	case *ast.Compare:
		return precCmp
	case *ast.BinOp:
		return binOpPrec[e.Op]
	case *ast.Await:
		return precAwait
	default:
		return precAtom
	}
}

// exprList renders an expression in a position where a bare tuple is
// legal, such as the right side of '=' or a return value.
func (w *writer) exprList(e ast.Expression) {
	tup, ok := e.(*ast.Tuple)
	if !ok {
		w.expr(e, precLowest)
		return
	}
	if len(tup.Elts) == 0 {
		w.write("()")
		return
	}
	for i, el := range tup.Elts {
		if i > 0 {
			w.write(", ")
		}
		w.expr(el, precTest)
	}
	if len(tup.Elts) == 1 {
		w.write(",")
	}
}

func (w *writer) expr(e ast.Expression, ctx int) {
	if exprPrec(e) < ctx {
		w.write("(")
		w.exprBody(e)
		w.write(")")
		return
	}
	w.exprBody(e)
}

func (w *writer) exprBody(e ast.Expression) {
	switch e := e.(type) {
	case *ast.Name:
		w.write(e.ID)
	case *ast.NumberLit:
		w.write(e.Literal)
	case *ast.StringLit:
		w.stringLit(e)
	case *ast.JoinedStr:
		w.fstring(e)
	case *ast.BoolLit:
		if e.Value {
			w.write("True")
		} else {
			w.write("False")
		}
	case *ast.NoneLit:
		w.write("None")
	case *ast.EllipsisLit:
		w.write("...")

	case *ast.BinOp:
		p := binOpPrec[e.Op]
		leftCtx, rightCtx := p, p+1
		if e.Op == ast.Pow {
			// right-associative
			leftCtx, rightCtx = p+1, p
		}
		w.expr(e.Left, leftCtx)
		w.write(" " + e.Op.String() + " ")
		w.expr(e.Right, rightCtx)

	case *ast.UnaryOp:
		if e.Op == ast.Not {
			w.write("not ")
			w.expr(e.Operand, precNot)
			return
		}
		w.write(e.Op.String())
		w.expr(e.Operand, precUnary)

	case *ast.BoolOp:
		p := precAnd
		if e.Op == ast.Or {
			p = precOr
		}
		for i, v := range e.Values {
			if i > 0 {
				w.write(" " + e.Op.String() + " ")
			}
			w.expr(v, p+1)
		}

	case *ast.Compare:
		w.expr(e.Left, precBitOr)
		for i, op := range e.Ops {
			w.write(" " + op.String() + " ")
			w.expr(e.Comparators[i], precBitOr)
		}

	case *ast.NamedExpr:
		w.expr(e.Target, precAtom)
		w.write(" := ")
		w.expr(e.Value, precTest)

	case *ast.IfExp:
		w.expr(e.Body, precOr)
		w.write(" if ")
		w.expr(e.Cond, precOr)
		w.write(" else ")
		w.expr(e.OrElse, precTest)

	case *ast.Lambda:
		w.write("lambda")
		if e.Args != nil && (len(e.Args.PosOnly)+len(e.Args.Args)+len(e.Args.KwOnly) > 0 ||
			e.Args.Vararg != nil || e.Args.Kwarg != nil) {
			w.write(" ")
			w.parameters(e.Args)
		}
		w.write(": ")
		w.expr(e.Body, precTest)

	case *ast.Await:
		w.write("await ")
		w.expr(e.Value, precAtom)

	case *ast.Yield:
		w.write("yield")
		if e.Value != nil {
			w.write(" ")
			w.exprList(e.Value)
		}
	case *ast.YieldFrom:
		w.write("yield from ")
		w.expr(e.Value, precTest)

	case *ast.Starred:
		w.write("*")
		w.expr(e.Value, precBitOr)

	case *ast.Attribute:
		if _, isNum := e.Value.(*ast.NumberLit); isNum {
			w.write("(")
			w.exprBody(e.Value)
			w.write(")")
		} else {
			w.expr(e.Value, precAtom)
		}
		w.write("." + e.Attr)

	case *ast.Call:
		w.expr(e.Func, precAtom)
		w.write("(")
		sep := ""
		for _, arg := range e.Args {
			w.write(sep)
			sep = ", "
			if _, isGen := arg.(*ast.GeneratorExp); isGen && len(e.Args) == 1 && len(e.Keywords) == 0 {
				// f(x for x in xs): the call parens double as the
				// generator's, so render it bare
				w.generatorBare(arg.(*ast.GeneratorExp))
				continue
			}
			w.expr(arg, precTest)
		}
		for _, kw := range e.Keywords {
			w.write(sep)
			sep = ", "
			w.keyword(kw)
		}
		w.write(")")

	case *ast.Subscript:
		w.expr(e.Value, precAtom)
		w.write("[")
		w.subscriptIndex(e.Index)
		w.write("]")

	case *ast.Slice:
		w.slice(e)

	case *ast.Tuple:
		if len(e.Elts) == 0 {
			w.write("()")
			break
		}
		w.write("(")
		w.exprList(e)
		w.write(")")

	case *ast.List:
		w.write("[")
		w.elts(e.Elts)
		w.write("]")

	case *ast.Set:
		w.write("{")
		w.elts(e.Elts)
		w.write("}")

	case *ast.Dict:
		w.write("{")
		for i := range e.Values {
			if i > 0 {
				w.write(", ")
			}
			if e.Keys[i] == nil {
				w.write("**")
				w.expr(e.Values[i], precBitOr)
				continue
			}
			w.expr(e.Keys[i], precTest)
			w.write(": ")
			w.expr(e.Values[i], precTest)
		}
		w.write("}")

	case *ast.ListComp:
		w.write("[")
		w.expr(e.Elt, precTest)
		w.comprehensions(e.Generators)
		w.write("]")
	case *ast.SetComp:
		w.write("{")
		w.expr(e.Elt, precTest)
		w.comprehensions(e.Generators)
		w.write("}")
	case *ast.DictComp:
		w.write("{")
		w.expr(e.Key, precTest)
		w.write(": ")
		w.expr(e.Value, precTest)
		w.comprehensions(e.Generators)
		w.write("}")
	case *ast.GeneratorExp:
		w.write("(")
		w.generatorBare(e)
		w.write(")")

	case *ast.FormattedValue:
		// only reachable when rendered outside a JoinedStr; normal
		// rendering happens in fstring
		w.formattedValue(e)

	default:
		w.write(fmt.Sprintf("<%T>", e))
	}
}

func (w *writer) generatorBare(e *ast.GeneratorExp) {
	w.expr(e.Elt, precTest)
	w.comprehensions(e.Generators)
}

func (w *writer) elts(elts []ast.Expression) {
	for i, el := range elts {
		if i > 0 {
			w.write(", ")
		}
		w.expr(el, precTest)
	}
}

func (w *writer) comprehensions(gens []*ast.Comprehension) {
	for _, g := range gens {
		if g.IsAsync {
			w.write(" async for ")
		} else {
			w.write(" for ")
		}
		w.exprList(g.Target)
		w.write(" in ")
		w.expr(g.Iter, precOr)
		for _, cond := range g.Ifs {
			w.write(" if ")
			w.expr(cond, precOr)
		}
	}
}

// subscriptIndex renders the index with tuple parentheses suppressed:
// "a[1, 2]" and "a[1:2, ::3]" keep their flat form.
func (w *writer) subscriptIndex(index ast.Expression) {
	tup, ok := index.(*ast.Tuple)
	if !ok || len(tup.Elts) == 0 {
		w.expr(index, precLowest)
		return
	}
	for i, el := range tup.Elts {
		if i > 0 {
			w.write(", ")
		}
		if sl, isSlice := el.(*ast.Slice); isSlice {
			w.slice(sl)
		} else {
			w.expr(el, precTest)
		}
	}
	if len(tup.Elts) == 1 {
		w.write(",")
	}
}

func (w *writer) slice(sl *ast.Slice) {
	if sl.Lower != nil {
		w.expr(sl.Lower, precTest)
	}
	w.write(":")
	if sl.Upper != nil {
		w.expr(sl.Upper, precTest)
	}
	if sl.Step != nil {
		w.write(":")
		w.expr(sl.Step, precTest)
	}
}

// ====== Patterns ======

func (w *writer) pattern(p ast.Pattern) {
	switch p := p.(type) {
	case *ast.MatchValue:
		w.expr(p.Value, precTest)
	case *ast.MatchSingleton:
		w.expr(p.Value, precTest)
	case *ast.MatchSequence:
		w.write("[")
		for i, el := range p.Patterns {
			if i > 0 {
				w.write(", ")
			}
			w.pattern(el)
		}
		w.write("]")
	case *ast.MatchMapping:
		w.write("{")
		sep := ""
		for i := range p.Patterns {
			w.write(sep)
			sep = ", "
			w.expr(p.Keys[i], precTest)
			w.write(": ")
			w.pattern(p.Patterns[i])
		}
		if p.Rest != "" {
			w.write(sep + "**" + p.Rest)
		}
		w.write("}")
	case *ast.MatchClass:
		w.expr(p.Cls, precAtom)
		w.write("(")
		sep := ""
		for _, el := range p.Patterns {
			w.write(sep)
			sep = ", "
			w.pattern(el)
		}
		for i, name := range p.KwdAttrs {
			w.write(sep)
			sep = ", "
			w.write(name + "=")
			w.pattern(p.KwdPatterns[i])
		}
		w.write(")")
	case *ast.MatchStar:
		if p.Name == "" {
			w.write("*_")
		} else {
			w.write("*" + p.Name)
		}
	case *ast.MatchAs:
		if p.Pattern == nil {
			if p.Name == "" {
				w.write("_")
			} else {
				w.write(p.Name)
			}
			return
		}
		w.patternClosed(p.Pattern)
		w.write(" as " + p.Name)
	case *ast.MatchOr:
		for i, alt := range p.Patterns {
			if i > 0 {
				w.write(" | ")
			}
			w.patternClosed(alt)
		}
	}
}

// patternClosed parenthesizes pattern forms that would not reparse in a
// closed position.
func (w *writer) patternClosed(p ast.Pattern) {
	switch p := p.(type) {
	case *ast.MatchOr:
		w.write("(")
		w.pattern(p)
		w.write(")")
	case *ast.MatchAs:
		if p.Pattern != nil {
			w.write("(")
			w.pattern(p)
			w.write(")")
			return
		}
		w.pattern(p)
	default:
		w.pattern(p)
	}
}

// ====== String rendering ======

func flipQuote(q byte) byte {
	if q == '\'' {
		return '"'
	}
	return '\''
}

func (w *writer) stringLit(s *ast.StringLit) {
	prefix := ""
	if s.IsBytes {
		prefix = "b"
	}
	if s.IsRaw {
		if quoted, ok := rawQuoted(s.Value, w.quote); ok {
			w.write(prefix + "r" + quoted)
			return
		}
		// not representable in raw form; escape instead
	}
	w.write(prefix)
	w.writeQuoted(s.Value, w.quote)
}

// rawQuoted finds quoting that reproduces value verbatim with a raw
// prefix, trying both quote chars and triple quotes.
func rawQuoted(value string, preferred byte) (string, bool) {
	if oddTrailingBackslashes(value) {
		return "", false
	}
	quotes := []string{string(preferred), string(flipQuote(preferred))}
	multiline := strings.ContainsAny(value, "\n\r")
	if !multiline {
		for _, q := range quotes {
			if !strings.Contains(value, q) {
				return q + value + q, true
			}
		}
	}
	for _, q := range quotes {
		triple := strings.Repeat(q, 3)
		if !strings.Contains(value, triple) && !strings.HasSuffix(value, q) {
			return triple + value + triple, true
		}
	}
	return "", false
}

func oddTrailingBackslashes(value string) bool {
	n := 0
	for i := len(value) - 1; i >= 0 && value[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

func (w *writer) writeQuoted(value string, quote byte) {
	w.b.WriteByte(quote)
	w.writeEscaped(value, quote)
	w.b.WriteByte(quote)
}

func (w *writer) writeEscaped(value string, quote byte) {
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '\\':
			w.write("\\\\")
		case c == quote:
			w.b.WriteByte('\\')
			w.b.WriteByte(c)
		case c == '\n':
			w.write("\\n")
		case c == '\r':
			w.write("\\r")
		case c == '\t':
			w.write("\\t")
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&w.b, "\\x%02x", c)
		default:
			w.b.WriteByte(c)
		}
	}
}

// fstring renders a JoinedStr. Literal chunks escape the delimiter,
// but expression and spec text is emitted verbatim, so the delimiter
// must not occur inside it or the rendered token would terminate
// early. The quote is chosen after inspecting the rendered parts;
// triple quotes are the last resort.
func (w *writer) fstring(j *ast.JoinedStr) {
	quotes := []byte{w.quote, flipQuote(w.quote)}
	for _, q := range quotes {
		body, verbatim := w.fstringBody(j, q)
		if !strings.Contains(verbatim, string(q)) {
			w.write("f")
			w.b.WriteByte(q)
			w.write(body)
			w.b.WriteByte(q)
			return
		}
	}
	// both quote chars occur inside embedded expressions
	for _, q := range quotes {
		body, verbatim := w.fstringBody(j, q)
		delim := strings.Repeat(string(q), 3)
		if !strings.Contains(verbatim, delim) && !strings.HasSuffix(body, string(q)) {
			w.write("f" + delim + body + delim)
			return
		}
	}
	// unreachable for parser-produced trees
	body, _ := w.fstringBody(j, w.quote)
	w.write("f")
	w.b.WriteByte(w.quote)
	w.write(body)
	w.b.WriteByte(w.quote)
}

// fstringBody renders the parts against a candidate delimiter. It
// returns the body text and the subset emitted verbatim (expression
// and format-spec text), which is what a delimiter collision check
// must inspect: literal chunks are backslash-escaped and cannot
// collide.
func (w *writer) fstringBody(j *ast.JoinedStr, quote byte) (string, string) {
	var body writer
	body.style = w.style
	body.quote = quote
	var verbatim strings.Builder
	for _, part := range j.Parts {
		switch part := part.(type) {
		case *ast.StringLit:
			body.writeFLiteral(part.Value, quote)
		case *ast.FormattedValue:
			verbatim.WriteString(body.formattedValue(part))
		}
	}
	return body.b.String(), verbatim.String()
}

func (w *writer) writeFLiteral(value string, quote byte) {
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '{':
			w.write("{{")
		case '}':
			w.write("}}")
		default:
			// reuse the regular escaping for one byte
			w.writeEscaped(value[i:i+1], quote)
		}
	}
}

// formattedValue renders one replacement field and returns the text
// it emitted verbatim, for the caller's delimiter collision check.
func (w *writer) formattedValue(fv *ast.FormattedValue) string {
	w.write("{")
	saved := w.quote
	w.quote = flipQuote(saved)
	var inner writer
	inner.style = w.style
	inner.quote = w.quote
	if _, isLambda := fv.Value.(*ast.Lambda); isLambda {
		// a bare lambda's ':' would read as a format spec
		inner.expr(fv.Value, precOr)
	} else {
		inner.exprList(fv.Value)
	}
	text := inner.b.String()
	w.quote = saved
	verbatim := text
	if strings.HasPrefix(text, "{") {
		w.write(" ")
	}
	w.write(text)
	if strings.HasSuffix(text, "}") {
		w.write(" ")
	}
	if fv.Conversion != 0 {
		w.write("!")
		w.b.WriteByte(fv.Conversion)
	}
	if fv.FormatSpec != nil {
		w.write(":")
		for _, part := range fv.FormatSpec.Parts {
			switch part := part.(type) {
			case *ast.StringLit:
				w.write(part.Value)
				verbatim += part.Value
			case *ast.FormattedValue:
				verbatim += w.formattedValue(part)
			}
		}
	}
	w.write("}")
	return verbatim
}
