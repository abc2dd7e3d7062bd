// Package unparse renders a syntax tree back to source text. The
// output reparses to a tree structurally equal to the input.
package unparse

import (
	"strings"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/config"
)

// Unparse renders a module with the default style.
func Unparse(mod *ast.Module) string {
	return UnparseWithStyle(mod, config.Default().Style)
}

// UnparseWithStyle renders a module using the given style options.
func UnparseWithStyle(mod *ast.Module, style config.Style) string {
	w := &writer{style: style, quote: '\''}
	if style.Quote == "double" {
		w.quote = '"'
	}
	if style.IndentWidth <= 0 {
		w.style.IndentWidth = 4
	}
	w.stmts(mod.Body)
	return w.b.String()
}

type writer struct {
	b      strings.Builder
	style  config.Style
	indent int
	quote  byte
}

func (w *writer) write(s string) {
	w.b.WriteString(s)
}

func (w *writer) startLine() {
	w.write(strings.Repeat(" ", w.indent*w.style.IndentWidth))
}

func (w *writer) endLine() {
	w.b.WriteByte('\n')
}

func (w *writer) line(parts ...string) {
	w.startLine()
	for _, s := range parts {
		w.write(s)
	}
	w.endLine()
}

func (w *writer) stmts(body []ast.Statement) {
	for _, s := range body {
		w.stmt(s)
	}
}

func (w *writer) suite(body []ast.Statement) {
	w.write(":")
	w.endLine()
	w.indent++
	w.stmts(body)
	w.indent--
}

func (w *writer) stmt(s ast.Statement) {
	switch s := s.(type) {
	case *ast.BlankLine:
		n := s.Count
		if w.style.MaxBlankLines > 0 && n > w.style.MaxBlankLines {
			n = w.style.MaxBlankLines
		}
		for i := 0; i < n; i++ {
			w.endLine()
		}

	case *ast.FunctionDef:
		w.decorators(s.Decorators)
		w.startLine()
		if s.IsAsync {
			w.write("async ")
		}
		w.write("def " + s.Name + "(")
		w.parameters(s.Args)
		w.write(")")
		if s.Returns != nil {
			w.write(" -> ")
			w.expr(s.Returns, precTest)
		}
		w.suite(s.Body)

	case *ast.ClassDef:
		w.decorators(s.Decorators)
		w.startLine()
		w.write("class " + s.Name)
		if len(s.Bases) > 0 || len(s.Keywords) > 0 {
			w.write("(")
			sep := ""
			for _, base := range s.Bases {
				w.write(sep)
				w.expr(base, precTest)
				sep = ", "
			}
			for _, kw := range s.Keywords {
				w.write(sep)
				w.keyword(kw)
				sep = ", "
			}
			w.write(")")
		}
		w.suite(s.Body)

	case *ast.If:
		w.ifChain(s, "if")

	case *ast.While:
		w.startLine()
		w.write("while ")
		w.expr(s.Cond, precLowest)
		w.suite(s.Body)
		if len(s.Else) > 0 {
			w.startLine()
			w.write("else")
			w.suite(s.Else)
		}

	case *ast.For:
		w.startLine()
		if s.IsAsync {
			w.write("async ")
		}
		w.write("for ")
		w.exprList(s.Target)
		w.write(" in ")
		w.exprList(s.Iter)
		w.suite(s.Body)
		if len(s.Else) > 0 {
			w.startLine()
			w.write("else")
			w.suite(s.Else)
		}

	case *ast.With:
		w.startLine()
		if s.IsAsync {
			w.write("async ")
		}
		w.write("with ")
		for i, item := range s.Items {
			if i > 0 {
				w.write(", ")
			}
			w.expr(item.ContextExpr, precTest)
			if item.OptionalVars != nil {
				w.write(" as ")
				w.expr(item.OptionalVars, precTest)
			}
		}
		w.suite(s.Body)

	case *ast.Try:
		w.startLine()
		w.write("try")
		w.suite(s.Body)
		for _, h := range s.Handlers {
			w.startLine()
			if s.IsStar {
				w.write("except*")
			} else {
				w.write("except")
			}
			if h.Type != nil {
				w.write(" ")
				w.expr(h.Type, precTest)
				if h.Name != "" {
					w.write(" as " + h.Name)
				}
			}
			w.suite(h.Body)
		}
		if len(s.Else) > 0 {
			w.startLine()
			w.write("else")
			w.suite(s.Else)
		}
		if len(s.Finally) > 0 {
			w.startLine()
			w.write("finally")
			w.suite(s.Finally)
		}

	case *ast.Match:
		w.startLine()
		w.write("match ")
		w.exprList(s.Subject)
		w.write(":")
		w.endLine()
		w.indent++
		for _, c := range s.Cases {
			w.startLine()
			w.write("case ")
			w.pattern(c.Pattern)
			if c.Guard != nil {
				w.write(" if ")
				w.expr(c.Guard, precLowest)
			}
			w.suite(c.Body)
		}
		w.indent--

	case *ast.Return:
		w.startLine()
		w.write("return")
		if s.Value != nil {
			w.write(" ")
			w.exprList(s.Value)
		}
		w.endLine()

	case *ast.Raise:
		w.startLine()
		w.write("raise")
		if s.Exc != nil {
			w.write(" ")
			w.expr(s.Exc, precTest)
			if s.Cause != nil {
				w.write(" from ")
				w.expr(s.Cause, precTest)
			}
		}
		w.endLine()

	case *ast.Assert:
		w.startLine()
		w.write("assert ")
		w.expr(s.Test, precTest)
		if s.Msg != nil {
			w.write(", ")
			w.expr(s.Msg, precTest)
		}
		w.endLine()

	case *ast.Import:
		w.startLine()
		w.write("import ")
		w.aliases(s.Names)
		w.endLine()

	case *ast.ImportFrom:
		w.startLine()
		w.write("from " + strings.Repeat(".", s.Level) + s.Module + " import ")
		w.aliases(s.Names)
		w.endLine()

	case *ast.Assign:
		w.startLine()
		for _, t := range s.Targets {
			w.exprList(t)
			w.write(" = ")
		}
		w.exprList(s.Value)
		w.endLine()

	case *ast.AugAssign:
		w.startLine()
		w.expr(s.Target, precTest)
		w.write(" " + s.Op.String() + "= ")
		w.exprList(s.Value)
		w.endLine()

	case *ast.AnnAssign:
		w.startLine()
		w.expr(s.Target, precTest)
		w.write(": ")
		w.expr(s.Annotation, precTest)
		if s.Value != nil {
			w.write(" = ")
			w.exprList(s.Value)
		}
		w.endLine()

	case *ast.TypeAlias:
		w.startLine()
		w.write("type " + s.Name + " = ")
		w.expr(s.Value, precTest)
		w.endLine()

	case *ast.Delete:
		w.startLine()
		w.write("del ")
		for i, t := range s.Targets {
			if i > 0 {
				w.write(", ")
			}
			w.expr(t, precTest)
		}
		w.endLine()

	case *ast.Global:
		w.line("global ", strings.Join(s.Names, ", "))
	case *ast.Nonlocal:
		w.line("nonlocal ", strings.Join(s.Names, ", "))
	case *ast.Pass:
		w.line("pass")
	case *ast.Break:
		w.line("break")
	case *ast.Continue:
		w.line("continue")

	case *ast.ExprStmt:
		w.startLine()
		w.exprList(s.Value)
		w.endLine()
	}
}

// ifChain renders if/elif chains without re-nesting the else suites.
func (w *writer) ifChain(s *ast.If, keyword string) {
	w.startLine()
	w.write(keyword + " ")
	w.expr(s.Cond, precLowest)
	w.suite(s.Body)
	if len(s.Else) == 0 {
		return
	}
	if elif, ok := s.Else[0].(*ast.If); ok && len(s.Else) == 1 {
		w.ifChain(elif, "elif")
		return
	}
	w.startLine()
	w.write("else")
	w.suite(s.Else)
}

func (w *writer) decorators(decs []ast.Expression) {
	for _, d := range decs {
		w.startLine()
		w.write("@")
		w.expr(d, precLowest)
		w.endLine()
	}
}

func (w *writer) aliases(names []*ast.Alias) {
	for i, a := range names {
		if i > 0 {
			w.write(", ")
		}
		w.write(a.Name)
		if a.AsName != "" {
			w.write(" as " + a.AsName)
		}
	}
}

func (w *writer) keyword(kw *ast.Keyword) {
	if kw.Arg == "" {
		w.write("**")
		w.expr(kw.Value, precTest)
		return
	}
	w.write(kw.Arg + "=")
	w.expr(kw.Value, precTest)
}

// parameters renders an Arguments group, reinserting the '/' and '*'
// markers the parser folded into the field layout.
func (w *writer) parameters(args *ast.Arguments) {
	if args == nil {
		return
	}
	// defaults align with the tail of PosOnly+Args
	positional := len(args.PosOnly) + len(args.Args)
	firstDefault := positional - len(args.Defaults)

	sep := ""
	idx := 0
	writeArg := func(a *ast.Arg) {
		w.write(sep)
		sep = ", "
		w.write(a.Name)
		annotated := a.Annotation != nil
		if annotated {
			w.write(": ")
			w.expr(a.Annotation, precTest)
		}
		if idx >= firstDefault {
			if annotated {
				w.write(" = ")
			} else {
				w.write("=")
			}
			w.expr(args.Defaults[idx-firstDefault], precTest)
		}
		idx++
	}
	for _, a := range args.PosOnly {
		writeArg(a)
	}
	if len(args.PosOnly) > 0 {
		w.write(sep + "/")
		sep = ", "
	}
	for _, a := range args.Args {
		writeArg(a)
	}
	if args.Vararg != nil {
		w.write(sep + "*" + args.Vararg.Name)
		sep = ", "
		if args.Vararg.Annotation != nil {
			w.write(": ")
			w.expr(args.Vararg.Annotation, precTest)
		}
	} else if len(args.KwOnly) > 0 {
		w.write(sep + "*")
		sep = ", "
	}
	for i, a := range args.KwOnly {
		w.write(sep)
		sep = ", "
		w.write(a.Name)
		annotated := a.Annotation != nil
		if annotated {
			w.write(": ")
			w.expr(a.Annotation, precTest)
		}
		if args.KwDefaults[i] != nil {
			if annotated {
				w.write(" = ")
			} else {
				w.write("=")
			}
			w.expr(args.KwDefaults[i], precTest)
		}
	}
	if args.Kwarg != nil {
		w.write(sep + "**" + args.Kwarg.Name)
		if args.Kwarg.Annotation != nil {
			w.write(": ")
			w.expr(args.Kwarg.Annotation, precTest)
		}
	}
}
