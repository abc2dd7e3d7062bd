package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"

	"github.com/pythia-lang/pythia/internal/ast"
)

func mustParse(t *testing.T, source string) *ast.Module {
	t.Helper()
	mod, err := Parse(source, "test.py")
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", source, err)
	}
	return mod
}

// parseOne parses a source expected to hold exactly one statement.
func parseOne(t *testing.T, source string) ast.Statement {
	t.Helper()
	mod := mustParse(t, source)
	if len(mod.Body) != 1 {
		t.Fatalf("Parse(%q): %d statements, want 1", source, len(mod.Body))
	}
	return mod.Body[0]
}

func parseExpr(t *testing.T, source string) ast.Expression {
	t.Helper()
	stmt, ok := parseOne(t, source).(*ast.ExprStmt)
	if !ok {
		t.Fatalf("Parse(%q): not an expression statement", source)
	}
	return stmt.Value
}

func TestSimpleAssignment(t *testing.T) {
	assign, ok := parseOne(t, "x = 42").(*ast.Assign)
	if !ok {
		t.Fatal("not an Assign")
	}
	if len(assign.Targets) != 1 {
		t.Fatalf("%d targets, want 1", len(assign.Targets))
	}
	name, ok := assign.Targets[0].(*ast.Name)
	if !ok || name.ID != "x" {
		t.Errorf("target = %#v, want Name x", assign.Targets[0])
	}
	num, ok := assign.Value.(*ast.NumberLit)
	if !ok || num.Literal != "42" {
		t.Errorf("value = %#v, want NumberLit 42", assign.Value)
	}
}

func TestChainedAssignment(t *testing.T) {
	assign, ok := parseOne(t, "a = b = 1").(*ast.Assign)
	if !ok {
		t.Fatal("not an Assign")
	}
	if len(assign.Targets) != 2 {
		t.Fatalf("%d targets, want 2", len(assign.Targets))
	}
	for i, want := range []string{"a", "b"} {
		name, ok := assign.Targets[i].(*ast.Name)
		if !ok || name.ID != want {
			t.Errorf("target %d = %#v, want Name %s", i, assign.Targets[i], want)
		}
	}
}

func TestFunctionDef(t *testing.T) {
	fn, ok := parseOne(t, "def f(a, b=1):\n    return a + b\n").(*ast.FunctionDef)
	if !ok {
		t.Fatal("not a FunctionDef")
	}
	if fn.Name != "f" {
		t.Errorf("name = %q, want f", fn.Name)
	}
	if len(fn.Args.Args) != 2 {
		t.Fatalf("%d parameters, want 2", len(fn.Args.Args))
	}
	if len(fn.Args.Defaults) != 1 {
		t.Fatalf("%d defaults, want 1", len(fn.Args.Defaults))
	}
	if len(fn.Body) != 1 {
		t.Fatalf("%d body statements, want 1", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*ast.Return)
	if !ok {
		t.Fatal("body is not a Return")
	}
	if _, ok := ret.Value.(*ast.BinOp); !ok {
		t.Errorf("return value = %#v, want BinOp", ret.Value)
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	// multiplication binds tighter: 1 + (2 * 3)
	bin, ok := parseExpr(t, "1 + 2 * 3").(*ast.BinOp)
	if !ok {
		t.Fatal("not a BinOp")
	}
	if bin.Op != ast.Add {
		t.Errorf("top op = %s, want +", bin.Op)
	}
	left, ok := bin.Left.(*ast.NumberLit)
	if !ok || left.Literal != "1" {
		t.Errorf("left = %#v, want 1", bin.Left)
	}
	right, ok := bin.Right.(*ast.BinOp)
	if !ok || right.Op != ast.Mult {
		t.Fatalf("right = %#v, want 2 * 3", bin.Right)
	}
}

func TestPowerBindsTighterThanUnaryMinus(t *testing.T) {
	// -2 ** 2 is -(2 ** 2)
	un, ok := parseExpr(t, "-2 ** 2").(*ast.UnaryOp)
	if !ok {
		t.Fatal("not a UnaryOp")
	}
	if un.Op != ast.USub {
		t.Errorf("op = %s, want -", un.Op)
	}
	pow, ok := un.Operand.(*ast.BinOp)
	if !ok || pow.Op != ast.Pow {
		t.Errorf("operand = %#v, want 2 ** 2", un.Operand)
	}
}

func TestPowerRightAssociative(t *testing.T) {
	// 2 ** 3 ** 4 is 2 ** (3 ** 4)
	pow, ok := parseExpr(t, "2 ** 3 ** 4").(*ast.BinOp)
	if !ok || pow.Op != ast.Pow {
		t.Fatal("not a Pow")
	}
	right, ok := pow.Right.(*ast.BinOp)
	if !ok || right.Op != ast.Pow {
		t.Errorf("right = %#v, want 3 ** 4", pow.Right)
	}
}

func TestComparisonChain(t *testing.T) {
	cmp, ok := parseExpr(t, "a < b <= c").(*ast.Compare)
	if !ok {
		t.Fatal("not a Compare")
	}
	if len(cmp.Ops) != 2 || len(cmp.Comparators) != 2 {
		t.Fatalf("%d ops / %d comparators, want 2/2", len(cmp.Ops), len(cmp.Comparators))
	}
	if cmp.Ops[0] != ast.Lt || cmp.Ops[1] != ast.LtE {
		t.Errorf("ops = %v %v, want < <=", cmp.Ops[0], cmp.Ops[1])
	}
}

func TestBoolOpFlattened(t *testing.T) {
	b, ok := parseExpr(t, "a and b and c").(*ast.BoolOp)
	if !ok {
		t.Fatal("not a BoolOp")
	}
	if b.Op != ast.And {
		t.Errorf("op = %s, want and", b.Op)
	}
	if len(b.Values) != 3 {
		t.Errorf("%d operands, want 3", len(b.Values))
	}
}

func TestMissingColonSuggestion(t *testing.T) {
	_, err := Parse("if x > 3\n    pass\n", "test.py")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *Error", err)
	}
	if !strings.Contains(perr.Message, ":") {
		t.Errorf("message %q does not mention the missing ':'", perr.Message)
	}
	if !strings.Contains(perr.Suggestion, "if x > 3:") {
		t.Errorf("suggestion %q, want it to offer %q", perr.Suggestion, "if x > 3:")
	}
	if perr.Pos.Line != 1 {
		t.Errorf("error line %d, want 1", perr.Pos.Line)
	}
}

func TestStopsAtFirstError(t *testing.T) {
	// both lines are bad; only the first is reported
	_, err := Parse("if x >\nwhile\n", "test.py")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *Error", err)
	}
	if perr.Pos.Line != 1 {
		t.Errorf("error line %d, want 1", perr.Pos.Line)
	}
}

func TestDictUnpacking(t *testing.T) {
	d, ok := parseExpr(t, "{**a, **b}").(*ast.Dict)
	if !ok {
		t.Fatal("not a Dict")
	}
	if len(d.Keys) != 2 || len(d.Values) != 2 {
		t.Fatalf("%d keys / %d values, want 2/2", len(d.Keys), len(d.Values))
	}
	for i := range d.Keys {
		if d.Keys[i] != nil {
			t.Errorf("key %d = %#v, want nil for ** unpacking", i, d.Keys[i])
		}
		if _, ok := d.Values[i].(*ast.Name); !ok {
			t.Errorf("value %d = %#v, want Name", i, d.Values[i])
		}
	}
}

func TestMatchSequencePattern(t *testing.T) {
	m, ok := parseOne(t, "match p:\n    case [1, *rest]:\n        pass\n").(*ast.Match)
	if !ok {
		t.Fatal("not a Match")
	}
	if len(m.Cases) != 1 {
		t.Fatalf("%d cases, want 1", len(m.Cases))
	}
	seq, ok := m.Cases[0].Pattern.(*ast.MatchSequence)
	if !ok {
		t.Fatalf("pattern = %#v, want MatchSequence", m.Cases[0].Pattern)
	}
	if len(seq.Patterns) != 2 {
		t.Fatalf("%d sub-patterns, want 2", len(seq.Patterns))
	}
	val, ok := seq.Patterns[0].(*ast.MatchValue)
	if !ok {
		t.Fatalf("first sub-pattern = %#v, want MatchValue", seq.Patterns[0])
	}
	if num, ok := val.Value.(*ast.NumberLit); !ok || num.Literal != "1" {
		t.Errorf("first value = %#v, want 1", val.Value)
	}
	star, ok := seq.Patterns[1].(*ast.MatchStar)
	if !ok || star.Name != "rest" {
		t.Errorf("second sub-pattern = %#v, want *rest", seq.Patterns[1])
	}
}

func TestMatchPatterns(t *testing.T) {
	source := `match command:
    case "quit" | "exit":
        pass
    case Point(x=0, y=0):
        pass
    case {"action": act, **extra}:
        pass
    case [x, y] if x > y:
        pass
    case _:
        pass
`
	m, ok := parseOne(t, source).(*ast.Match)
	if !ok {
		t.Fatal("not a Match")
	}
	if len(m.Cases) != 5 {
		t.Fatalf("%d cases, want 5", len(m.Cases))
	}
	if _, ok := m.Cases[0].Pattern.(*ast.MatchOr); !ok {
		t.Errorf("case 0 pattern = %#v, want MatchOr", m.Cases[0].Pattern)
	}
	cls, ok := m.Cases[1].Pattern.(*ast.MatchClass)
	if !ok {
		t.Fatalf("case 1 pattern = %#v, want MatchClass", m.Cases[1].Pattern)
	}
	if len(cls.KwdAttrs) != 2 || cls.KwdAttrs[0] != "x" || cls.KwdAttrs[1] != "y" {
		t.Errorf("class keyword attrs = %v, want [x y]", cls.KwdAttrs)
	}
	mapping, ok := m.Cases[2].Pattern.(*ast.MatchMapping)
	if !ok {
		t.Fatalf("case 2 pattern = %#v, want MatchMapping", m.Cases[2].Pattern)
	}
	if mapping.Rest != "extra" {
		t.Errorf("mapping rest = %q, want extra", mapping.Rest)
	}
	if m.Cases[3].Guard == nil {
		t.Error("case 3 has no guard")
	}
	wild, ok := m.Cases[4].Pattern.(*ast.MatchAs)
	if !ok || wild.Pattern != nil || wild.Name != "" {
		t.Errorf("case 4 pattern = %#v, want wildcard", m.Cases[4].Pattern)
	}
}

func TestMatchAsName(t *testing.T) {
	// match used as a plain identifier
	assign, ok := parseOne(t, "match = re.match(pat, s)").(*ast.Assign)
	if !ok {
		t.Fatal("not an Assign")
	}
	if name, ok := assign.Targets[0].(*ast.Name); !ok || name.ID != "match" {
		t.Errorf("target = %#v, want Name match", assign.Targets[0])
	}
}

func TestMatchCallStatement(t *testing.T) {
	// match(...) followed by a colon-free line is a call, not a match stmt
	stmt, ok := parseOne(t, "match(x)").(*ast.ExprStmt)
	if !ok {
		t.Fatal("not an ExprStmt")
	}
	if _, ok := stmt.Value.(*ast.Call); !ok {
		t.Errorf("value = %#v, want Call", stmt.Value)
	}
}

func TestWalrus(t *testing.T) {
	iff, ok := parseOne(t, "if (n := len(a)) > 10:\n    pass\n").(*ast.If)
	if !ok {
		t.Fatal("not an If")
	}
	cmp, ok := iff.Cond.(*ast.Compare)
	if !ok {
		t.Fatalf("condition = %#v, want Compare", iff.Cond)
	}
	named, ok := cmp.Left.(*ast.NamedExpr)
	if !ok {
		t.Fatalf("left = %#v, want NamedExpr", cmp.Left)
	}
	if name, ok := named.Target.(*ast.Name); !ok || name.ID != "n" {
		t.Errorf("walrus target = %#v, want Name n", named.Target)
	}
}

func TestVersionGating(t *testing.T) {
	tests := []struct {
		source  string
		version string
		ok      bool
	}{
		{"(x := 1)", "3.7.0", false},
		{"(x := 1)", "3.8.0", true},
		{"def f(a, /, b): pass", "3.7.0", false},
		{"def f(a, /, b): pass", "3.8.0", true},
		{"match x:\n    case 1:\n        pass\n", "3.9.0", false},
		{"match x:\n    case 1:\n        pass\n", "3.10.0", true},
		{"try:\n    pass\nexcept* ValueError:\n    pass\n", "3.10.0", false},
		{"try:\n    pass\nexcept* ValueError:\n    pass\n", "3.11.0", true},
		{"type Vec = list[float]", "3.11.0", false},
		{"type Vec = list[float]", "3.12.0", true},
	}
	for _, tt := range tests {
		opts := Options{Version: semver.MustParse(tt.version)}
		_, err := ParseWithOptions(tt.source, "test.py", opts)
		if tt.ok && err != nil {
			t.Errorf("ParseWithOptions(%q, %s) failed: %v", tt.source, tt.version, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseWithOptions(%q, %s) succeeded, want version error", tt.source, tt.version)
		}
	}
}

func TestElifChain(t *testing.T) {
	source := "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n"
	iff, ok := parseOne(t, source).(*ast.If)
	if !ok {
		t.Fatal("not an If")
	}
	if len(iff.Else) != 1 {
		t.Fatalf("%d else statements, want 1 nested If", len(iff.Else))
	}
	elif, ok := iff.Else[0].(*ast.If)
	if !ok {
		t.Fatalf("else[0] = %#v, want nested If", iff.Else[0])
	}
	if len(elif.Else) != 1 {
		t.Errorf("%d final else statements, want 1", len(elif.Else))
	}
}

func TestDecorators(t *testing.T) {
	source := "@cached\n@app.route('/')\ndef index():\n    pass\n"
	fn, ok := parseOne(t, source).(*ast.FunctionDef)
	if !ok {
		t.Fatal("not a FunctionDef")
	}
	if len(fn.Decorators) != 2 {
		t.Fatalf("%d decorators, want 2", len(fn.Decorators))
	}
	if _, ok := fn.Decorators[0].(*ast.Name); !ok {
		t.Errorf("decorator 0 = %#v, want Name", fn.Decorators[0])
	}
	if _, ok := fn.Decorators[1].(*ast.Call); !ok {
		t.Errorf("decorator 1 = %#v, want Call", fn.Decorators[1])
	}
}

func TestAsyncFunctions(t *testing.T) {
	source := "async def fetch(url):\n    async with session.get(url) as resp:\n        return await resp.json()\n"
	fn, ok := parseOne(t, source).(*ast.FunctionDef)
	if !ok {
		t.Fatal("not a FunctionDef")
	}
	if !fn.IsAsync {
		t.Error("IsAsync not set")
	}
	with, ok := fn.Body[0].(*ast.With)
	if !ok {
		t.Fatalf("body = %#v, want With", fn.Body[0])
	}
	if !with.IsAsync {
		t.Error("with.IsAsync not set")
	}
	ret := with.Body[0].(*ast.Return)
	if _, ok := ret.Value.(*ast.Await); !ok {
		t.Errorf("return value = %#v, want Await", ret.Value)
	}
}

func TestComprehensions(t *testing.T) {
	lc, ok := parseExpr(t, "[x * 2 for x in items if x > 0]").(*ast.ListComp)
	if !ok {
		t.Fatal("not a ListComp")
	}
	if len(lc.Generators) != 1 {
		t.Fatalf("%d generators, want 1", len(lc.Generators))
	}
	if len(lc.Generators[0].Ifs) != 1 {
		t.Errorf("%d conditions, want 1", len(lc.Generators[0].Ifs))
	}

	dc, ok := parseExpr(t, "{k: v for k, v in pairs}").(*ast.DictComp)
	if !ok {
		t.Fatal("not a DictComp")
	}
	if _, ok := dc.Generators[0].Target.(*ast.Tuple); !ok {
		t.Errorf("target = %#v, want Tuple", dc.Generators[0].Target)
	}

	if _, ok := parseExpr(t, "{x for x in s}").(*ast.SetComp); !ok {
		t.Error("not a SetComp")
	}
	if _, ok := parseExpr(t, "(x for x in s)").(*ast.GeneratorExp); !ok {
		t.Error("not a GeneratorExp")
	}
}

func TestSlices(t *testing.T) {
	sub, ok := parseExpr(t, "a[1:10:2]").(*ast.Subscript)
	if !ok {
		t.Fatal("not a Subscript")
	}
	sl, ok := sub.Index.(*ast.Slice)
	if !ok {
		t.Fatalf("index = %#v, want Slice", sub.Index)
	}
	if sl.Lower == nil || sl.Upper == nil || sl.Step == nil {
		t.Error("slice parts missing")
	}

	sub, ok = parseExpr(t, "a[:]").(*ast.Subscript)
	if !ok {
		t.Fatal("not a Subscript")
	}
	sl, ok = sub.Index.(*ast.Slice)
	if !ok {
		t.Fatalf("index = %#v, want Slice", sub.Index)
	}
	if sl.Lower != nil || sl.Upper != nil || sl.Step != nil {
		t.Error("empty slice should have nil parts")
	}

	sub, ok = parseExpr(t, "d[a, b]").(*ast.Subscript)
	if !ok {
		t.Fatal("not a Subscript")
	}
	if _, ok := sub.Index.(*ast.Tuple); !ok {
		t.Errorf("index = %#v, want Tuple", sub.Index)
	}
}

func TestFString(t *testing.T) {
	js, ok := parseExpr(t, "f'value is {x!r:>{width}}'").(*ast.JoinedStr)
	if !ok {
		t.Fatal("not a JoinedStr")
	}
	var fv *ast.FormattedValue
	for _, part := range js.Parts {
		if v, ok := part.(*ast.FormattedValue); ok {
			fv = v
		}
	}
	if fv == nil {
		t.Fatal("no FormattedValue part")
	}
	if fv.Conversion != 'r' {
		t.Errorf("conversion = %q, want r", fv.Conversion)
	}
	if fv.FormatSpec == nil {
		t.Fatal("format spec missing")
	}
	nested := false
	for _, part := range fv.FormatSpec.Parts {
		if _, ok := part.(*ast.FormattedValue); ok {
			nested = true
		}
	}
	if !nested {
		t.Error("format spec lost its nested replacement field")
	}
}

func TestFStringDoubledBraces(t *testing.T) {
	js, ok := parseExpr(t, "f'{{literal}} {x}'").(*ast.JoinedStr)
	if !ok {
		t.Fatal("not a JoinedStr")
	}
	lit, ok := js.Parts[0].(*ast.StringLit)
	if !ok {
		t.Fatalf("part 0 = %#v, want StringLit", js.Parts[0])
	}
	if lit.Value != "{literal} " {
		t.Errorf("literal chunk = %q, want %q", lit.Value, "{literal} ")
	}
}

func TestImplicitStringConcat(t *testing.T) {
	lit, ok := parseExpr(t, "'foo' \"bar\"").(*ast.StringLit)
	if !ok {
		t.Fatal("not a StringLit")
	}
	if lit.Value != "foobar" {
		t.Errorf("value = %q, want foobar", lit.Value)
	}
}

func TestStarredAssignment(t *testing.T) {
	assign, ok := parseOne(t, "a, *rest = values").(*ast.Assign)
	if !ok {
		t.Fatal("not an Assign")
	}
	tup, ok := assign.Targets[0].(*ast.Tuple)
	if !ok {
		t.Fatalf("target = %#v, want Tuple", assign.Targets[0])
	}
	if _, ok := tup.Elts[1].(*ast.Starred); !ok {
		t.Errorf("second element = %#v, want Starred", tup.Elts[1])
	}
}

func TestInvalidAssignTarget(t *testing.T) {
	for _, source := range []string{"1 = x", "f() = x", "a + b = x"} {
		if _, err := Parse(source, "test.py"); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", source)
		}
	}
}

func TestImports(t *testing.T) {
	imp, ok := parseOne(t, "import os.path as p, sys").(*ast.Import)
	if !ok {
		t.Fatal("not an Import")
	}
	if len(imp.Names) != 2 {
		t.Fatalf("%d aliases, want 2", len(imp.Names))
	}
	if imp.Names[0].Name != "os.path" || imp.Names[0].AsName != "p" {
		t.Errorf("alias 0 = %+v, want os.path as p", imp.Names[0])
	}

	from, ok := parseOne(t, "from ..pkg import a, b as c").(*ast.ImportFrom)
	if !ok {
		t.Fatal("not an ImportFrom")
	}
	if from.Level != 2 || from.Module != "pkg" {
		t.Errorf("level %d module %q, want 2 pkg", from.Level, from.Module)
	}
	if len(from.Names) != 2 || from.Names[1].AsName != "c" {
		t.Errorf("aliases = %+v", from.Names)
	}
}

func TestTryExceptStar(t *testing.T) {
	source := "try:\n    pass\nexcept* ValueError as e:\n    pass\nfinally:\n    pass\n"
	try, ok := parseOne(t, source).(*ast.Try)
	if !ok {
		t.Fatal("not a Try")
	}
	if !try.IsStar {
		t.Error("IsStar not set")
	}
	if len(try.Handlers) != 1 || try.Handlers[0].Name != "e" {
		t.Errorf("handlers = %+v", try.Handlers)
	}
	if len(try.Finally) != 1 {
		t.Errorf("%d finally statements, want 1", len(try.Finally))
	}
}

func TestLambda(t *testing.T) {
	lam, ok := parseExpr(t, "lambda a, *args, k=1, **kw: a").(*ast.Lambda)
	if !ok {
		t.Fatal("not a Lambda")
	}
	if len(lam.Args.Args) != 1 || lam.Args.Vararg == nil || len(lam.Args.KwOnly) != 1 || lam.Args.Kwarg == nil {
		t.Errorf("parameter groups = %+v", lam.Args)
	}
}

func TestParameterMarkers(t *testing.T) {
	fn, ok := parseOne(t, "def f(a, b, /, c, *, d):\n    pass\n").(*ast.FunctionDef)
	if !ok {
		t.Fatal("not a FunctionDef")
	}
	if len(fn.Args.PosOnly) != 2 {
		t.Errorf("%d positional-only, want 2", len(fn.Args.PosOnly))
	}
	if len(fn.Args.Args) != 1 {
		t.Errorf("%d regular, want 1", len(fn.Args.Args))
	}
	if len(fn.Args.KwOnly) != 1 {
		t.Errorf("%d keyword-only, want 1", len(fn.Args.KwOnly))
	}
	if fn.Args.Vararg != nil {
		t.Error("bare * should not produce a vararg")
	}
}

func TestCommentsAreDropped(t *testing.T) {
	source := "# leading comment\nx = 1  # trailing\n# between\ny = 2\n"
	mod := mustParse(t, source)
	if len(mod.Body) != 2 {
		t.Fatalf("%d statements, want 2", len(mod.Body))
	}
	for i, stmt := range mod.Body {
		if _, ok := stmt.(*ast.Assign); !ok {
			t.Errorf("statement %d = %#v, want Assign", i, stmt)
		}
	}
}

func TestBlankLineMarkers(t *testing.T) {
	mod := mustParse(t, "x = 1\n\n\ny = 2\n")
	if len(mod.Body) != 3 {
		t.Fatalf("%d statements, want assign/blank/assign", len(mod.Body))
	}
	blank, ok := mod.Body[1].(*ast.BlankLine)
	if !ok {
		t.Fatalf("middle = %#v, want BlankLine", mod.Body[1])
	}
	if blank.Count != 2 {
		t.Errorf("blank count = %d, want 2", blank.Count)
	}
}

func TestSemicolonStatements(t *testing.T) {
	mod := mustParse(t, "x = 1; y = 2; z = 3\n")
	if len(mod.Body) != 3 {
		t.Fatalf("%d statements, want 3", len(mod.Body))
	}
}

func TestGlobalNonlocalDel(t *testing.T) {
	g, ok := parseOne(t, "global a, b").(*ast.Global)
	if !ok || len(g.Names) != 2 {
		t.Errorf("got %#v, want Global [a b]", g)
	}
	d, ok := parseOne(t, "del x[0], y").(*ast.Delete)
	if !ok || len(d.Targets) != 2 {
		t.Errorf("got %#v, want Delete with 2 targets", d)
	}
}

func TestAnnotatedAssignment(t *testing.T) {
	ann, ok := parseOne(t, "count: int = 0").(*ast.AnnAssign)
	if !ok {
		t.Fatal("not an AnnAssign")
	}
	if name, ok := ann.Annotation.(*ast.Name); !ok || name.ID != "int" {
		t.Errorf("annotation = %#v, want Name int", ann.Annotation)
	}
	bare, ok := parseOne(t, "count: int").(*ast.AnnAssign)
	if !ok {
		t.Fatal("not an AnnAssign")
	}
	if bare.Value != nil {
		t.Errorf("value = %#v, want nil", bare.Value)
	}
}

func TestTypeAliasStatement(t *testing.T) {
	ta, ok := parseOne(t, "type Vector = list[float]").(*ast.TypeAlias)
	if !ok {
		t.Fatal("not a TypeAlias")
	}
	if ta.Name != "Vector" {
		t.Errorf("name = %q, want Vector", ta.Name)
	}
	// "type" still works as a plain name
	if _, ok := parseOne(t, "type(x)").(*ast.ExprStmt); !ok {
		t.Error("type(x) should parse as a call statement")
	}
}

func TestCallArguments(t *testing.T) {
	call, ok := parseExpr(t, "f(1, *a, k=2, **kw)").(*ast.Call)
	if !ok {
		t.Fatal("not a Call")
	}
	if len(call.Args) != 2 {
		t.Fatalf("%d positional args, want 2", len(call.Args))
	}
	if _, ok := call.Args[1].(*ast.Starred); !ok {
		t.Errorf("arg 1 = %#v, want Starred", call.Args[1])
	}
	if len(call.Keywords) != 2 {
		t.Fatalf("%d keywords, want 2", len(call.Keywords))
	}
	if call.Keywords[0].Arg != "k" {
		t.Errorf("keyword 0 = %q, want k", call.Keywords[0].Arg)
	}
	if call.Keywords[1].Arg != "" {
		t.Errorf("keyword 1 = %q, want empty for ** unpacking", call.Keywords[1].Arg)
	}
}

func TestPositionalAfterKeyword(t *testing.T) {
	if _, err := Parse("f(k=1, 2)", "test.py"); err == nil {
		t.Error("positional after keyword should be rejected")
	}
}

func TestEmptyBlock(t *testing.T) {
	if _, err := Parse("if x:\ny = 1\n", "test.py"); err == nil {
		t.Error("empty block should be rejected")
	}
}

func TestSpans(t *testing.T) {
	mod := mustParse(t, "x = 42\n")
	assign := mod.Body[0].(*ast.Assign)
	span := assign.GetSpan()
	if span.Start.Line != 1 || span.Start.Column != 1 {
		t.Errorf("start at %d:%d, want 1:1", span.Start.Line, span.Start.Column)
	}
	value := assign.Value.GetSpan()
	if value.Start.Column != 5 {
		t.Errorf("value starts at column %d, want 5", value.Start.Column)
	}
}

func TestForStatement(t *testing.T) {
	f, ok := parseOne(t, "for i in range(10):\n    print(i)\n").(*ast.For)
	if !ok {
		t.Fatal("not a For")
	}
	if name, ok := f.Target.(*ast.Name); !ok || name.ID != "i" {
		t.Errorf("target = %#v, want Name i", f.Target)
	}
	if _, ok := f.Iter.(*ast.Call); !ok {
		t.Errorf("iter = %#v, want Call", f.Iter)
	}
}

func TestForTargetForms(t *testing.T) {
	tests := []struct {
		source string
		check  func(t *testing.T, target ast.Expression)
	}{
		{"for k, v in items.items():\n    pass\n", func(t *testing.T, target ast.Expression) {
			tup, ok := target.(*ast.Tuple)
			if !ok || len(tup.Elts) != 2 {
				t.Errorf("target = %#v, want 2-element Tuple", target)
			}
		}},
		{"for a, *rest in rows:\n    pass\n", func(t *testing.T, target ast.Expression) {
			tup, ok := target.(*ast.Tuple)
			if !ok {
				t.Fatalf("target = %#v, want Tuple", target)
			}
			if _, ok := tup.Elts[1].(*ast.Starred); !ok {
				t.Errorf("second element = %#v, want Starred", tup.Elts[1])
			}
		}},
		{"for (a, b) in pairs:\n    pass\n", func(t *testing.T, target ast.Expression) {
			tup, ok := target.(*ast.Tuple)
			if !ok || len(tup.Elts) != 2 {
				t.Errorf("target = %#v, want 2-element Tuple", target)
			}
		}},
		{"for obj.attr in xs:\n    pass\n", func(t *testing.T, target ast.Expression) {
			if _, ok := target.(*ast.Attribute); !ok {
				t.Errorf("target = %#v, want Attribute", target)
			}
		}},
		{"for buf[0] in xs:\n    pass\n", func(t *testing.T, target ast.Expression) {
			if _, ok := target.(*ast.Subscript); !ok {
				t.Errorf("target = %#v, want Subscript", target)
			}
		}},
	}
	for _, tt := range tests {
		f, ok := parseOne(t, tt.source).(*ast.For)
		if !ok {
			t.Fatalf("Parse(%q): not a For", tt.source)
		}
		tt.check(t, f.Target)
	}
}

func TestForElse(t *testing.T) {
	f, ok := parseOne(t, "for x in xs:\n    pass\nelse:\n    done()\n").(*ast.For)
	if !ok {
		t.Fatal("not a For")
	}
	if len(f.Else) != 1 {
		t.Errorf("%d else statements, want 1", len(f.Else))
	}
}

func TestSoftKeywordNames(t *testing.T) {
	// soft keywords are ordinary identifiers outside their statements
	attr, ok := parseExpr(t, "self.pattern.match(s)").(*ast.Call)
	if !ok {
		t.Fatal("not a Call")
	}
	if a, ok := attr.Func.(*ast.Attribute); !ok || a.Attr != "match" {
		t.Errorf("callee = %#v, want Attribute match", attr.Func)
	}
	ev, ok := parseExpr(t, "event.type").(*ast.Attribute)
	if !ok || ev.Attr != "type" {
		t.Errorf("got %#v, want Attribute type", ev)
	}

	call, ok := parseExpr(t, "f(type=int, case=1)").(*ast.Call)
	if !ok {
		t.Fatal("not a Call")
	}
	if len(call.Keywords) != 2 || call.Keywords[0].Arg != "type" || call.Keywords[1].Arg != "case" {
		t.Errorf("keywords = %+v", call.Keywords)
	}

	fn, ok := parseOne(t, "def f(match, case=1):\n    return match\n").(*ast.FunctionDef)
	if !ok {
		t.Fatal("not a FunctionDef")
	}
	if len(fn.Args.Args) != 2 || fn.Args.Args[0].Name != "match" || fn.Args.Args[1].Name != "case" {
		t.Errorf("parameters = %+v", fn.Args.Args)
	}

	g, ok := parseOne(t, "global match, type").(*ast.Global)
	if !ok || len(g.Names) != 2 {
		t.Errorf("got %#v, want Global [match type]", g)
	}

	imp, ok := parseOne(t, "import types as type").(*ast.Import)
	if !ok || imp.Names[0].AsName != "type" {
		t.Errorf("got %#v, want alias type", imp)
	}
}

func TestParenthesizedWithItems(t *testing.T) {
	source := "with (open(a) as f, open(b) as g):\n    pass\n"
	w, ok := parseOne(t, source).(*ast.With)
	if !ok {
		t.Fatal("not a With")
	}
	if len(w.Items) != 2 {
		t.Fatalf("%d items, want 2", len(w.Items))
	}
	for i, item := range w.Items {
		if item.OptionalVars == nil {
			t.Errorf("item %d has no as-target", i)
		}
	}

	// trailing comma form
	w, ok = parseOne(t, "with (ctx() as c,):\n    pass\n").(*ast.With)
	if !ok || len(w.Items) != 1 {
		t.Fatalf("trailing comma: got %#v", w)
	}

	// a parenthesized tuple bound with "as" is one context manager
	w, ok = parseOne(t, "with (a, b) as t:\n    pass\n").(*ast.With)
	if !ok {
		t.Fatal("not a With")
	}
	if len(w.Items) != 1 {
		t.Fatalf("%d items, want 1", len(w.Items))
	}
	if _, ok := w.Items[0].ContextExpr.(*ast.Tuple); !ok {
		t.Errorf("context = %#v, want Tuple", w.Items[0].ContextExpr)
	}
}

func TestParenthesizedWithItemsGating(t *testing.T) {
	source := "with (open(a) as f, open(b) as g):\n    pass\n"
	old := Options{Version: semver.MustParse("3.9.0")}
	if _, err := ParseWithOptions(source, "test.py", old); err == nil {
		t.Error("parenthesized with-items accepted below 3.10")
	}
	if _, err := ParseWithOptions(source, "test.py", Options{Version: semver.MustParse("3.10.0")}); err != nil {
		t.Errorf("rejected at 3.10: %v", err)
	}

	// before 3.10 a parenthesized comma group is a tuple context manager
	mod, err := ParseWithOptions("with (a, b):\n    pass\n", "test.py", old)
	if err != nil {
		t.Fatalf("tuple context manager rejected at 3.9: %v", err)
	}
	w := mod.Body[0].(*ast.With)
	if len(w.Items) != 1 {
		t.Fatalf("%d items, want 1", len(w.Items))
	}
	if _, ok := w.Items[0].ContextExpr.(*ast.Tuple); !ok {
		t.Errorf("context = %#v, want Tuple", w.Items[0].ContextExpr)
	}
}
