package ast

import (
	"fmt"
	"strings"
)

// Dump renders a node as an indented tree for debugging. The output is
// read-only: it never mutates the tree and is not meant to re-parse.
func Dump(node Node) string {
	var b strings.Builder
	d := dumper{b: &b}
	d.node(node)
	return b.String()
}

type dumper struct {
	b     *strings.Builder
	depth int
}

func (d *dumper) line(format string, args ...any) {
	for i := 0; i < d.depth; i++ {
		d.b.WriteString("  ")
	}
	fmt.Fprintf(d.b, format, args...)
	d.b.WriteByte('\n')
}

func (d *dumper) nested(fn func()) {
	d.depth++
	fn()
	d.depth--
}

func (d *dumper) stmts(label string, body []Statement) {
	if len(body) == 0 {
		return
	}
	d.line("%s:", label)
	d.nested(func() {
		for _, s := range body {
			d.node(s)
		}
	})
}

func (d *dumper) exprs(label string, list []Expression) {
	if len(list) == 0 {
		return
	}
	d.line("%s:", label)
	d.nested(func() {
		for _, e := range list {
			d.node(e)
		}
	})
}

func (d *dumper) child(label string, n Node) {
	if n == nil {
		return
	}
	d.line("%s:", label)
	d.nested(func() { d.node(n) })
}

func (d *dumper) node(n Node) {
	switch n := n.(type) {
	case nil:
		d.line("<nil>")

	case *Module:
		d.line("Module")
		d.nested(func() {
			for _, s := range n.Body {
				d.node(s)
			}
		})

	case *FunctionDef:
		kind := "FunctionDef"
		if n.IsAsync {
			kind = "AsyncFunctionDef"
		}
		d.line("%s %s", kind, n.Name)
		d.nested(func() {
			d.exprs("decorators", n.Decorators)
			d.arguments(n.Args)
			d.child("returns", n.Returns)
			d.stmts("body", n.Body)
		})
	case *ClassDef:
		d.line("ClassDef %s", n.Name)
		d.nested(func() {
			d.exprs("decorators", n.Decorators)
			d.exprs("bases", n.Bases)
			for _, kw := range n.Keywords {
				d.child("keyword "+kw.Arg, kw.Value)
			}
			d.stmts("body", n.Body)
		})
	case *If:
		d.line("If")
		d.nested(func() {
			d.child("cond", n.Cond)
			d.stmts("body", n.Body)
			d.stmts("else", n.Else)
		})
	case *While:
		d.line("While")
		d.nested(func() {
			d.child("cond", n.Cond)
			d.stmts("body", n.Body)
			d.stmts("else", n.Else)
		})
	case *For:
		kind := "For"
		if n.IsAsync {
			kind = "AsyncFor"
		}
		d.line("%s", kind)
		d.nested(func() {
			d.child("target", n.Target)
			d.child("iter", n.Iter)
			d.stmts("body", n.Body)
			d.stmts("else", n.Else)
		})
	case *With:
		kind := "With"
		if n.IsAsync {
			kind = "AsyncWith"
		}
		d.line("%s", kind)
		d.nested(func() {
			for _, item := range n.Items {
				d.child("context", item.ContextExpr)
				d.child("as", item.OptionalVars)
			}
			d.stmts("body", n.Body)
		})
	case *Try:
		if n.IsStar {
			d.line("TryStar")
		} else {
			d.line("Try")
		}
		d.nested(func() {
			d.stmts("body", n.Body)
			for _, h := range n.Handlers {
				if h.Name != "" {
					d.line("except as %s", h.Name)
				} else {
					d.line("except")
				}
				d.nested(func() {
					d.child("type", h.Type)
					d.stmts("body", h.Body)
				})
			}
			d.stmts("else", n.Else)
			d.stmts("finally", n.Finally)
		})
	case *Match:
		d.line("Match")
		d.nested(func() {
			d.child("subject", n.Subject)
			for _, c := range n.Cases {
				d.line("case")
				d.nested(func() {
					d.child("pattern", c.Pattern)
					d.child("guard", c.Guard)
					d.stmts("body", c.Body)
				})
			}
		})
	case *Raise:
		d.line("Raise")
		d.nested(func() {
			d.child("exc", n.Exc)
			d.child("cause", n.Cause)
		})
	case *Assert:
		d.line("Assert")
		d.nested(func() {
			d.child("test", n.Test)
			d.child("msg", n.Msg)
		})
	case *Import:
		d.line("Import")
		d.nested(func() {
			for _, a := range n.Names {
				d.alias(a)
			}
		})
	case *ImportFrom:
		d.line("ImportFrom %s%s", strings.Repeat(".", n.Level), n.Module)
		d.nested(func() {
			for _, a := range n.Names {
				d.alias(a)
			}
		})
	case *Assign:
		d.line("Assign")
		d.nested(func() {
			d.exprs("targets", n.Targets)
			d.child("value", n.Value)
		})
	case *AugAssign:
		d.line("AugAssign %s=", n.Op)
		d.nested(func() {
			d.child("target", n.Target)
			d.child("value", n.Value)
		})
	case *AnnAssign:
		d.line("AnnAssign")
		d.nested(func() {
			d.child("target", n.Target)
			d.child("annotation", n.Annotation)
			d.child("value", n.Value)
		})
	case *Return:
		d.line("Return")
		d.nested(func() { d.child("value", n.Value) })
	case *Pass:
		d.line("Pass")
	case *Break:
		d.line("Break")
	case *Continue:
		d.line("Continue")
	case *Delete:
		d.line("Delete")
		d.nested(func() { d.exprs("targets", n.Targets) })
	case *Global:
		d.line("Global %s", strings.Join(n.Names, ", "))
	case *Nonlocal:
		d.line("Nonlocal %s", strings.Join(n.Names, ", "))
	case *ExprStmt:
		d.line("ExprStmt")
		d.nested(func() { d.node(n.Value) })
	case *TypeAlias:
		d.line("TypeAlias %s", n.Name)
		d.nested(func() { d.child("value", n.Value) })
	case *BlankLine:
		d.line("BlankLine x%d", n.Count)

	case *Name:
		d.line("Name %s", n.ID)
	case *NumberLit:
		d.line("Number %s", n.Literal)
	case *StringLit:
		d.line("String %q", n.Value)
	case *JoinedStr:
		d.line("JoinedStr")
		d.nested(func() {
			for _, p := range n.Parts {
				d.node(p)
			}
		})
	case *FormattedValue:
		if n.Conversion != 0 {
			d.line("FormattedValue !%c", n.Conversion)
		} else {
			d.line("FormattedValue")
		}
		d.nested(func() {
			d.node(n.Value)
			if n.FormatSpec != nil {
				d.child("format", n.FormatSpec)
			}
		})
	case *BoolLit:
		d.line("Bool %v", n.Value)
	case *NoneLit:
		d.line("None")
	case *EllipsisLit:
		d.line("Ellipsis")
	case *BinOp:
		d.line("BinOp %s", n.Op)
		d.nested(func() {
			d.node(n.Left)
			d.node(n.Right)
		})
	case *UnaryOp:
		d.line("UnaryOp %s", n.Op)
		d.nested(func() { d.node(n.Operand) })
	case *BoolOp:
		d.line("BoolOp %s", n.Op)
		d.nested(func() {
			for _, v := range n.Values {
				d.node(v)
			}
		})
	case *Compare:
		ops := make([]string, len(n.Ops))
		for i, op := range n.Ops {
			ops[i] = op.String()
		}
		d.line("Compare %s", strings.Join(ops, " "))
		d.nested(func() {
			d.node(n.Left)
			for _, c := range n.Comparators {
				d.node(c)
			}
		})
	case *Call:
		d.line("Call")
		d.nested(func() {
			d.child("func", n.Func)
			d.exprs("args", n.Args)
			for _, kw := range n.Keywords {
				if kw.Arg == "" {
					d.child("**", kw.Value)
				} else {
					d.child(kw.Arg+"=", kw.Value)
				}
			}
		})
	case *Attribute:
		d.line("Attribute .%s", n.Attr)
		d.nested(func() { d.node(n.Value) })
	case *Subscript:
		d.line("Subscript")
		d.nested(func() {
			d.child("value", n.Value)
			d.child("index", n.Index)
		})
	case *Slice:
		d.line("Slice")
		d.nested(func() {
			d.child("lower", n.Lower)
			d.child("upper", n.Upper)
			d.child("step", n.Step)
		})
	case *Lambda:
		d.line("Lambda")
		d.nested(func() {
			d.arguments(n.Args)
			d.child("body", n.Body)
		})
	case *IfExp:
		d.line("IfExp")
		d.nested(func() {
			d.child("body", n.Body)
			d.child("cond", n.Cond)
			d.child("else", n.OrElse)
		})
	case *Tuple:
		d.line("Tuple")
		d.nested(func() {
			for _, e := range n.Elts {
				d.node(e)
			}
		})
	case *List:
		d.line("List")
		d.nested(func() {
			for _, e := range n.Elts {
				d.node(e)
			}
		})
	case *Set:
		d.line("Set")
		d.nested(func() {
			for _, e := range n.Elts {
				d.node(e)
			}
		})
	case *Dict:
		d.line("Dict")
		d.nested(func() {
			for i := range n.Values {
				if n.Keys[i] == nil {
					d.child("**", n.Values[i])
				} else {
					d.child("key", n.Keys[i])
					d.child("value", n.Values[i])
				}
			}
		})
	case *ListComp:
		d.line("ListComp")
		d.comprehension(n.Elt, nil, n.Generators)
	case *SetComp:
		d.line("SetComp")
		d.comprehension(n.Elt, nil, n.Generators)
	case *DictComp:
		d.line("DictComp")
		d.comprehension(n.Key, n.Value, n.Generators)
	case *GeneratorExp:
		d.line("GeneratorExp")
		d.comprehension(n.Elt, nil, n.Generators)
	case *Starred:
		d.line("Starred")
		d.nested(func() { d.node(n.Value) })
	case *NamedExpr:
		d.line("NamedExpr")
		d.nested(func() {
			d.child("target", n.Target)
			d.child("value", n.Value)
		})
	case *Await:
		d.line("Await")
		d.nested(func() { d.node(n.Value) })
	case *Yield:
		d.line("Yield")
		d.nested(func() { d.child("value", n.Value) })
	case *YieldFrom:
		d.line("YieldFrom")
		d.nested(func() { d.node(n.Value) })

	case *MatchValue:
		d.line("MatchValue")
		d.nested(func() { d.node(n.Value) })
	case *MatchSingleton:
		d.line("MatchSingleton")
		d.nested(func() { d.node(n.Value) })
	case *MatchSequence:
		d.line("MatchSequence")
		d.nested(func() {
			for _, p := range n.Patterns {
				d.node(p)
			}
		})
	case *MatchMapping:
		d.line("MatchMapping")
		d.nested(func() {
			for i := range n.Patterns {
				d.child("key", n.Keys[i])
				d.child("pattern", n.Patterns[i])
			}
			if n.Rest != "" {
				d.line("**%s", n.Rest)
			}
		})
	case *MatchClass:
		d.line("MatchClass")
		d.nested(func() {
			d.child("cls", n.Cls)
			for _, p := range n.Patterns {
				d.node(p)
			}
			for i := range n.KwdPatterns {
				d.child(n.KwdAttrs[i]+"=", n.KwdPatterns[i])
			}
		})
	case *MatchStar:
		if n.Name == "" {
			d.line("MatchStar _")
		} else {
			d.line("MatchStar %s", n.Name)
		}
	case *MatchAs:
		if n.Pattern == nil && n.Name == "" {
			d.line("MatchAs _")
		} else {
			d.line("MatchAs %s", n.Name)
			if n.Pattern != nil {
				d.nested(func() { d.node(n.Pattern) })
			}
		}
	case *MatchOr:
		d.line("MatchOr")
		d.nested(func() {
			for _, p := range n.Patterns {
				d.node(p)
			}
		})

	default:
		d.line("<%T>", n)
	}
}

func (d *dumper) comprehension(first, second Expression, gens []*Comprehension) {
	d.nested(func() {
		d.node(first)
		if second != nil {
			d.node(second)
		}
		for _, g := range gens {
			if g.IsAsync {
				d.line("async for")
			} else {
				d.line("for")
			}
			d.nested(func() {
				d.child("target", g.Target)
				d.child("iter", g.Iter)
				d.exprs("ifs", g.Ifs)
			})
		}
	})
}

func (d *dumper) arguments(args *Arguments) {
	if args == nil {
		return
	}
	d.line("args:")
	d.nested(func() {
		for _, a := range args.PosOnly {
			d.arg(a, "posonly ")
		}
		for _, a := range args.Args {
			d.arg(a, "")
		}
		if args.Vararg != nil {
			d.arg(args.Vararg, "*")
		}
		for _, a := range args.KwOnly {
			d.arg(a, "kwonly ")
		}
		if args.Kwarg != nil {
			d.arg(args.Kwarg, "**")
		}
		d.exprs("defaults", args.Defaults)
	})
}

func (d *dumper) arg(a *Arg, prefix string) {
	d.line("%s%s", prefix, a.Name)
	if a.Annotation != nil {
		d.nested(func() { d.child("annotation", a.Annotation) })
	}
}

func (d *dumper) alias(a *Alias) {
	if a.AsName != "" {
		d.line("%s as %s", a.Name, a.AsName)
	} else {
		d.line("%s", a.Name)
	}
}
