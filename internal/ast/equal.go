package ast

// Equal reports whether two nodes are structurally identical, ignoring
// source spans. Blank-line markers count: two modules that differ only in
// blank-line placement are not equal.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Module:
		b, ok := b.(*Module)
		return ok && equalStmts(a.Body, b.Body)

	case *FunctionDef:
		o, ok := b.(*FunctionDef)
		return ok && a.Name == o.Name && a.IsAsync == o.IsAsync &&
			equalArguments(a.Args, o.Args) && Equal(a.Returns, o.Returns) &&
			equalExprs(a.Decorators, o.Decorators) && equalStmts(a.Body, o.Body)
	case *ClassDef:
		o, ok := b.(*ClassDef)
		return ok && a.Name == o.Name && equalExprs(a.Bases, o.Bases) &&
			equalKeywords(a.Keywords, o.Keywords) &&
			equalExprs(a.Decorators, o.Decorators) && equalStmts(a.Body, o.Body)
	case *If:
		o, ok := b.(*If)
		return ok && Equal(a.Cond, o.Cond) && equalStmts(a.Body, o.Body) && equalStmts(a.Else, o.Else)
	case *While:
		o, ok := b.(*While)
		return ok && Equal(a.Cond, o.Cond) && equalStmts(a.Body, o.Body) && equalStmts(a.Else, o.Else)
	case *For:
		o, ok := b.(*For)
		return ok && a.IsAsync == o.IsAsync && Equal(a.Target, o.Target) &&
			Equal(a.Iter, o.Iter) && equalStmts(a.Body, o.Body) && equalStmts(a.Else, o.Else)
	case *With:
		o, ok := b.(*With)
		if !ok || a.IsAsync != o.IsAsync || len(a.Items) != len(o.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i].ContextExpr, o.Items[i].ContextExpr) ||
				!Equal(a.Items[i].OptionalVars, o.Items[i].OptionalVars) {
				return false
			}
		}
		return equalStmts(a.Body, o.Body)
	case *Try:
		o, ok := b.(*Try)
		if !ok || a.IsStar != o.IsStar || len(a.Handlers) != len(o.Handlers) {
			return false
		}
		for i := range a.Handlers {
			h, g := a.Handlers[i], o.Handlers[i]
			if h.Name != g.Name || !Equal(h.Type, g.Type) || !equalStmts(h.Body, g.Body) {
				return false
			}
		}
		return equalStmts(a.Body, o.Body) && equalStmts(a.Else, o.Else) && equalStmts(a.Finally, o.Finally)
	case *Match:
		o, ok := b.(*Match)
		if !ok || !Equal(a.Subject, o.Subject) || len(a.Cases) != len(o.Cases) {
			return false
		}
		for i := range a.Cases {
			c, g := a.Cases[i], o.Cases[i]
			if !Equal(c.Pattern, g.Pattern) || !Equal(c.Guard, g.Guard) || !equalStmts(c.Body, g.Body) {
				return false
			}
		}
		return true
	case *Raise:
		o, ok := b.(*Raise)
		return ok && Equal(a.Exc, o.Exc) && Equal(a.Cause, o.Cause)
	case *Assert:
		o, ok := b.(*Assert)
		return ok && Equal(a.Test, o.Test) && Equal(a.Msg, o.Msg)
	case *Import:
		o, ok := b.(*Import)
		return ok && equalAliases(a.Names, o.Names)
	case *ImportFrom:
		o, ok := b.(*ImportFrom)
		return ok && a.Module == o.Module && a.Level == o.Level && equalAliases(a.Names, o.Names)
	case *Assign:
		o, ok := b.(*Assign)
		return ok && equalExprs(a.Targets, o.Targets) && Equal(a.Value, o.Value)
	case *AugAssign:
		o, ok := b.(*AugAssign)
		return ok && a.Op == o.Op && Equal(a.Target, o.Target) && Equal(a.Value, o.Value)
	case *AnnAssign:
		o, ok := b.(*AnnAssign)
		return ok && Equal(a.Target, o.Target) && Equal(a.Annotation, o.Annotation) && Equal(a.Value, o.Value)
	case *Return:
		o, ok := b.(*Return)
		return ok && Equal(a.Value, o.Value)
	case *Pass:
		_, ok := b.(*Pass)
		return ok
	case *Break:
		_, ok := b.(*Break)
		return ok
	case *Continue:
		_, ok := b.(*Continue)
		return ok
	case *Delete:
		o, ok := b.(*Delete)
		return ok && equalExprs(a.Targets, o.Targets)
	case *Global:
		o, ok := b.(*Global)
		return ok && equalStrings(a.Names, o.Names)
	case *Nonlocal:
		o, ok := b.(*Nonlocal)
		return ok && equalStrings(a.Names, o.Names)
	case *ExprStmt:
		o, ok := b.(*ExprStmt)
		return ok && Equal(a.Value, o.Value)
	case *TypeAlias:
		o, ok := b.(*TypeAlias)
		return ok && a.Name == o.Name && Equal(a.Value, o.Value)
	case *BlankLine:
		o, ok := b.(*BlankLine)
		return ok && a.Count == o.Count

	case *Name:
		o, ok := b.(*Name)
		return ok && a.ID == o.ID
	case *NumberLit:
		o, ok := b.(*NumberLit)
		return ok && a.Literal == o.Literal
	case *StringLit:
		o, ok := b.(*StringLit)
		return ok && a.Value == o.Value && a.IsRaw == o.IsRaw && a.IsBytes == o.IsBytes
	case *JoinedStr:
		o, ok := b.(*JoinedStr)
		return ok && equalExprs(a.Parts, o.Parts)
	case *FormattedValue:
		o, ok := b.(*FormattedValue)
		if !ok || a.Conversion != o.Conversion || !Equal(a.Value, o.Value) {
			return false
		}
		if a.FormatSpec == nil || o.FormatSpec == nil {
			return a.FormatSpec == nil && o.FormatSpec == nil
		}
		return Equal(a.FormatSpec, o.FormatSpec)
	case *BoolLit:
		o, ok := b.(*BoolLit)
		return ok && a.Value == o.Value
	case *NoneLit:
		_, ok := b.(*NoneLit)
		return ok
	case *EllipsisLit:
		_, ok := b.(*EllipsisLit)
		return ok
	case *BinOp:
		o, ok := b.(*BinOp)
		return ok && a.Op == o.Op && Equal(a.Left, o.Left) && Equal(a.Right, o.Right)
	case *UnaryOp:
		o, ok := b.(*UnaryOp)
		return ok && a.Op == o.Op && Equal(a.Operand, o.Operand)
	case *BoolOp:
		o, ok := b.(*BoolOp)
		return ok && a.Op == o.Op && equalExprs(a.Values, o.Values)
	case *Compare:
		o, ok := b.(*Compare)
		if !ok || !Equal(a.Left, o.Left) || len(a.Ops) != len(o.Ops) {
			return false
		}
		for i := range a.Ops {
			if a.Ops[i] != o.Ops[i] {
				return false
			}
		}
		return equalExprs(a.Comparators, o.Comparators)
	case *Call:
		o, ok := b.(*Call)
		return ok && Equal(a.Func, o.Func) && equalExprs(a.Args, o.Args) && equalKeywords(a.Keywords, o.Keywords)
	case *Attribute:
		o, ok := b.(*Attribute)
		return ok && a.Attr == o.Attr && Equal(a.Value, o.Value)
	case *Subscript:
		o, ok := b.(*Subscript)
		return ok && Equal(a.Value, o.Value) && Equal(a.Index, o.Index)
	case *Slice:
		o, ok := b.(*Slice)
		return ok && Equal(a.Lower, o.Lower) && Equal(a.Upper, o.Upper) && Equal(a.Step, o.Step)
	case *Lambda:
		o, ok := b.(*Lambda)
		return ok && equalArguments(a.Args, o.Args) && Equal(a.Body, o.Body)
	case *IfExp:
		o, ok := b.(*IfExp)
		return ok && Equal(a.Body, o.Body) && Equal(a.Cond, o.Cond) && Equal(a.OrElse, o.OrElse)
	case *Tuple:
		o, ok := b.(*Tuple)
		return ok && equalExprs(a.Elts, o.Elts)
	case *List:
		o, ok := b.(*List)
		return ok && equalExprs(a.Elts, o.Elts)
	case *Set:
		o, ok := b.(*Set)
		return ok && equalExprs(a.Elts, o.Elts)
	case *Dict:
		o, ok := b.(*Dict)
		if !ok || len(a.Keys) != len(o.Keys) {
			return false
		}
		for i := range a.Keys {
			if (a.Keys[i] == nil) != (o.Keys[i] == nil) {
				return false
			}
			if a.Keys[i] != nil && !Equal(a.Keys[i], o.Keys[i]) {
				return false
			}
		}
		return equalExprs(a.Values, o.Values)
	case *ListComp:
		o, ok := b.(*ListComp)
		return ok && Equal(a.Elt, o.Elt) && equalComprehensions(a.Generators, o.Generators)
	case *SetComp:
		o, ok := b.(*SetComp)
		return ok && Equal(a.Elt, o.Elt) && equalComprehensions(a.Generators, o.Generators)
	case *DictComp:
		o, ok := b.(*DictComp)
		return ok && Equal(a.Key, o.Key) && Equal(a.Value, o.Value) && equalComprehensions(a.Generators, o.Generators)
	case *GeneratorExp:
		o, ok := b.(*GeneratorExp)
		return ok && Equal(a.Elt, o.Elt) && equalComprehensions(a.Generators, o.Generators)
	case *Starred:
		o, ok := b.(*Starred)
		return ok && Equal(a.Value, o.Value)
	case *NamedExpr:
		o, ok := b.(*NamedExpr)
		return ok && Equal(a.Target, o.Target) && Equal(a.Value, o.Value)
	case *Await:
		o, ok := b.(*Await)
		return ok && Equal(a.Value, o.Value)
	case *Yield:
		o, ok := b.(*Yield)
		return ok && Equal(a.Value, o.Value)
	case *YieldFrom:
		o, ok := b.(*YieldFrom)
		return ok && Equal(a.Value, o.Value)

	case *MatchValue:
		o, ok := b.(*MatchValue)
		return ok && Equal(a.Value, o.Value)
	case *MatchSingleton:
		o, ok := b.(*MatchSingleton)
		return ok && Equal(a.Value, o.Value)
	case *MatchSequence:
		o, ok := b.(*MatchSequence)
		return ok && equalPatterns(a.Patterns, o.Patterns)
	case *MatchMapping:
		o, ok := b.(*MatchMapping)
		return ok && a.Rest == o.Rest && equalExprs(a.Keys, o.Keys) && equalPatterns(a.Patterns, o.Patterns)
	case *MatchClass:
		o, ok := b.(*MatchClass)
		return ok && Equal(a.Cls, o.Cls) && equalPatterns(a.Patterns, o.Patterns) &&
			equalStrings(a.KwdAttrs, o.KwdAttrs) && equalPatterns(a.KwdPatterns, o.KwdPatterns)
	case *MatchStar:
		o, ok := b.(*MatchStar)
		return ok && a.Name == o.Name
	case *MatchAs:
		o, ok := b.(*MatchAs)
		return ok && a.Name == o.Name && Equal(a.Pattern, o.Pattern)
	case *MatchOr:
		o, ok := b.(*MatchOr)
		return ok && equalPatterns(a.Patterns, o.Patterns)
	}
	return false
}

func equalStmts(a, b []Statement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalExprs(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalPatterns(a, b []Pattern) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalComprehensions(a, b []*Comprehension) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].IsAsync != b[i].IsAsync || !Equal(a[i].Target, b[i].Target) ||
			!Equal(a[i].Iter, b[i].Iter) || !equalExprs(a[i].Ifs, b[i].Ifs) {
			return false
		}
	}
	return true
}

func equalAliases(a, b []*Alias) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].AsName != b[i].AsName {
			return false
		}
	}
	return true
}

func equalKeywords(a, b []*Keyword) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Arg != b[i].Arg || !Equal(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func equalArguments(a, b *Arguments) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !equalArgs(a.PosOnly, b.PosOnly) || !equalArgs(a.Args, b.Args) || !equalArgs(a.KwOnly, b.KwOnly) {
		return false
	}
	if (a.Vararg == nil) != (b.Vararg == nil) || (a.Kwarg == nil) != (b.Kwarg == nil) {
		return false
	}
	if a.Vararg != nil && !equalArg(a.Vararg, b.Vararg) {
		return false
	}
	if a.Kwarg != nil && !equalArg(a.Kwarg, b.Kwarg) {
		return false
	}
	return equalExprs(a.Defaults, b.Defaults) && equalDefaultList(a.KwDefaults, b.KwDefaults)
}

// KwDefaults entries may be nil for keyword-only args without defaults.
func equalDefaultList(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if (a[i] == nil) != (b[i] == nil) {
			return false
		}
		if a[i] != nil && !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalArgs(a, b []*Arg) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalArg(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalArg(a, b *Arg) bool {
	return a.Name == b.Name && Equal(a.Annotation, b.Annotation)
}
