package unparse

import (
	"testing"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/config"
	"github.com/pythia-lang/pythia/internal/parser"
)

// checkRoundTrip parses a source, regenerates it and reparses the
// result; both trees must be structurally equal ignoring spans.
func checkRoundTrip(t *testing.T, source string) string {
	t.Helper()
	first, err := parser.Parse(source, "test.py")
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", source, err)
	}
	out := Unparse(first)
	second, err := parser.Parse(out, "test.py")
	if err != nil {
		t.Fatalf("reparse of %q (from %q) failed: %v", out, source, err)
	}
	if !ast.Equal(first, second) {
		t.Errorf("round trip of %q changed the tree:\nregenerated: %q\nfirst:\n%s\nsecond:\n%s",
			source, out, ast.Dump(first), ast.Dump(second))
	}
	return out
}

func TestRoundTripStatements(t *testing.T) {
	sources := []string{
		"x = 42\n",
		"a = b = c = 0\n",
		"x += 1\n",
		"x //= 2\n",
		"count: int = 0\n",
		"pass\n",
		"del a, b[0]\n",
		"global g\n",
		"nonlocal n\n",
		"assert x, 'message'\n",
		"raise ValueError('bad') from err\n",
		"return\n",
		"import os.path as p, sys\n",
		"from ..pkg import a as b, c\n",
		"from . import mod\n",
		"type Vector = list[float]\n",
		"x = 1; y = 2\n",
	}
	for _, source := range sources {
		checkRoundTrip(t, source)
	}
}

func TestRoundTripCompound(t *testing.T) {
	sources := []string{
		"def f(a, b=1, *args, k, m=2, **kw):\n    return a\n",
		"def g(a, b, /, c, *, d):\n    pass\n",
		"async def fetch(url):\n    return await get(url)\n",
		"@wraps(fn)\ndef wrapper(*args, **kwargs):\n    return fn(*args, **kwargs)\n",
		"class C(Base, metaclass=Meta):\n    x = 1\n",
		"if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n",
		"while x:\n    x -= 1\nelse:\n    done()\n",
		"for i in range(10):\n    print(i)\n",
		"async def f():\n    async for item in source:\n        yield item\n",
		"with open(p) as f, lock:\n    f.read()\n",
		"try:\n    risky()\nexcept ValueError as e:\n    handle(e)\nexcept Exception:\n    raise\nelse:\n    ok()\nfinally:\n    cleanup()\n",
		"try:\n    pass\nexcept* OSError:\n    pass\n",
		"match point:\n    case Point(x=0, y=0):\n        origin()\n    case Point(x=0) | Point(y=0):\n        axis()\n    case [1, *rest]:\n        seq(rest)\n    case {'k': v, **extra}:\n        mapping(v)\n    case _ if fallback:\n        other()\n",
		"def gen():\n    yield\n    yield 1\n    yield from inner()\n",
	}
	for _, source := range sources {
		checkRoundTrip(t, source)
	}
}

func TestRoundTripExpressions(t *testing.T) {
	sources := []string{
		"x = 1 + 2 * 3\n",
		"x = (1 + 2) * 3\n",
		"x = -2 ** 2\n",
		"x = (-2) ** 2\n",
		"x = 2 ** 3 ** 4\n",
		"x = a < b <= c != d\n",
		"x = a and b or not c\n",
		"x = a if cond else b\n",
		"x = lambda a, b=1: a + b\n",
		"x = y[1:10:2]\n",
		"x = y[:]\n",
		"x = y[::2]\n",
		"x = d[a, b]\n",
		"x = d[(a, b)]\n",
		"x = t[1,]\n",
		"x = a.b.c(d).e[f]\n",
		"x = (1).bit_length()\n",
		"x = [1, 2, 3]\n",
		"x = (1, 2)\n",
		"x = 1, 2\n",
		"x = ()\n",
		"x = (1,)\n",
		"x = {1, 2}\n",
		"x = {}\n",
		"x = {'a': 1, **rest}\n",
		"x = [i * i for i in range(10) if i % 2]\n",
		"x = {k: v for k, v in pairs}\n",
		"x = {s for s in seen}\n",
		"x = sum(i for i in nums)\n",
		"x = (i for i in nums)\n",
		"x = f(1, *a, k=2, **kw)\n",
		"x = a, *rest\n",
		"if (n := len(a)) > 10:\n    pass\n",
		"x = not a in b\n",
		"x = a not in b\n",
		"x = a is not b\n",
		"x = ...\n",
		"x = None\n",
		"x = True, False\n",
	}
	for _, source := range sources {
		checkRoundTrip(t, source)
	}
}

func TestRoundTripStrings(t *testing.T) {
	sources := []string{
		"x = 'hello'\n",
		"x = \"it's\"\n",
		"x = 'line\\nbreak'\n",
		"x = '\\x00\\t\\\\'\n",
		"x = r'raw\\d+'\n",
		"x = b'bytes\\x01'\n",
		"x = rb'raw bytes\\d'\n",
		"x = '''already joined'''\n",
		"x = 'foo' 'bar'\n",
		"x = f'plain text'\n",
		"x = f'{a}{b}'\n",
		"x = f'v={x!r}'\n",
		"x = f'{x:>10}'\n",
		"x = f'{x:{width}.{prec}}'\n",
		"x = f'{{literal}} {v}'\n",
		"x = f'{x=}'\n",
		"x = f'{x = }'\n",
		"x = f'nested {f(\"inner\")}'\n",
		"x = f\"{'a\\'b'}\"\n",
		"x = f'{\"say \\\"hi\\\"\"}'\n",
		"x = f'{a[\"k\"]} and {b}'\n",
	}
	for _, source := range sources {
		checkRoundTrip(t, source)
	}
}

func TestRoundTripNumbers(t *testing.T) {
	// raw spellings survive because the literal text is preserved
	sources := []string{
		"x = 0xFF\n",
		"x = 0o755\n",
		"x = 0b1010\n",
		"x = 1_000_000\n",
		"x = 2.5e-3\n",
		"x = 3j\n",
		"x = .5\n",
	}
	for _, source := range sources {
		out := checkRoundTrip(t, source)
		if out != source {
			t.Errorf("regenerated %q, want spelling preserved as %q", out, source)
		}
	}
}

func TestRoundTripBlankLines(t *testing.T) {
	source := "x = 1\n\n\ny = 2\n"
	out := checkRoundTrip(t, source)
	if out != source {
		t.Errorf("regenerated %q, want blank lines preserved as %q", out, source)
	}
}

func TestRegenerateFunction(t *testing.T) {
	source := "def f():\n    pass\n"
	mod, err := parser.Parse(source, "test.py")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if out := Unparse(mod); out != source {
		t.Errorf("Unparse = %q, want %q", out, source)
	}
}

func TestExactOutput(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"x=1+2*3", "x = 1 + 2 * 3\n"},
		{"if a:\n  b()\n", "if a:\n    b()\n"},
		{"x = (1 +\n     2)\n", "x = 1 + 2\n"},
		{"f( a , b )", "f(a, b)\n"},
		{"x = 'a'  'b'", "x = 'ab'\n"},
		{"x = ()", "x = ()\n"},
		{"x = ((), ())", "x = ((), ())\n"},
	}
	for _, tt := range tests {
		mod, err := parser.Parse(tt.source, "test.py")
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.source, err)
		}
		if got := Unparse(mod); got != tt.want {
			t.Errorf("Unparse(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestStyleOptions(t *testing.T) {
	mod, err := parser.Parse("if a:\n    x = 'v'\n", "test.py")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	style := config.Style{IndentWidth: 2, Quote: "double"}
	got := UnparseWithStyle(mod, style)
	want := "if a:\n  x = \"v\"\n"
	if got != want {
		t.Errorf("UnparseWithStyle = %q, want %q", got, want)
	}
}

func TestQuotePreference(t *testing.T) {
	// preferred quote flips when the value contains it
	mod, err := parser.Parse("x = \"it's\"\n", "test.py")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got := Unparse(mod)
	if got != "x = \"it's\"\n" {
		t.Errorf("Unparse = %q, want the double-quoted form", got)
	}
}

func TestParenthesizationInserted(t *testing.T) {
	// hand-built tree: (1 + 2) * 3 needs parens to keep its shape
	mul := &ast.BinOp{
		Left:  &ast.BinOp{Left: &ast.NumberLit{Literal: "1"}, Op: ast.Add, Right: &ast.NumberLit{Literal: "2"}},
		Op:    ast.Mult,
		Right: &ast.NumberLit{Literal: "3"},
	}
	mod := &ast.Module{Body: []ast.Statement{
		&ast.Assign{Targets: []ast.Expression{&ast.Name{ID: "x"}}, Value: mul},
	}}
	if got := Unparse(mod); got != "x = (1 + 2) * 3\n" {
		t.Errorf("Unparse = %q, want %q", got, "x = (1 + 2) * 3\n")
	}
}

// Whole-file programs mixing many constructs, the shape of real
// sources rather than single statements exercising one production.
func TestRoundTripPrograms(t *testing.T) {
	programs := map[string]string{
		"fstrings": `name = 'World'
value = 42
greeting = f'Hello, {name}!'
formatted = f'Value: {value:>10.2f}'
nested = f'Result: {f"{value}"}'
multiline = f'''
Name: {name}
Value: {value}
'''
expr = f'{value + 1} and {name.upper()}'
conversion = f'{name!r} or {value!s:>8}'
`,
		"comprehensions": `squares = [x ** 2 for x in range(10)]
evens = [x for x in numbers if x % 2 == 0]
pairs = [(x, y) for x in range(3) for y in range(3) if x != y]
lookup = {k: v for k, v in items.items() if v is not None}
unique = {word.lower() for word in words}
lazy = (line.strip() for line in lines if line)
matrix = [[row[i] for row in matrix] for i in range(len(matrix[0]))]
total = sum(x * weight for x, weight in zip(values, weights))
`,
		"context_managers": `with open('data.txt') as f:
    content = f.read()
with open('a.txt') as a, open('b.txt') as b:
    merged = a.read() + b.read()
with (
    open('first.txt') as first,
    open('second.txt') as second,
):
    compare(first, second)
with lock:
    counter += 1

async def copy(src, dst):
    async with aiofiles.open(src) as f:
        data = await f.read()
    async with aiofiles.open(dst, 'w') as f:
        await f.write(data)
`,
		"async": `import asyncio

async def fetch(session, url):
    async with session.get(url) as response:
        return await response.json()

async def gather_all(urls):
    results = []
    async for batch in paginate(urls):
        tasks = [fetch(session, u) for u in batch]
        results.extend(await asyncio.gather(*tasks))
    return results

async def main():
    payloads = [p async for p in stream() if p.ok]
    await asyncio.sleep(0.1)
    return payloads
`,
		"pattern_matching": `def describe(shape):
    match shape:
        case Circle(radius=r) if r > 0:
            return f'circle of radius {r}'
        case Rectangle(width=w, height=h) if w == h:
            return 'square'
        case Point(x=0, y=0) | Origin():
            return 'origin'
        case [first, *rest]:
            return f'sequence starting with {first}'
        case {'kind': kind, **attrs}:
            return kind
        case str() as s:
            return s
        case _:
            return 'unknown'
`,
		"functions": `from functools import wraps

def retry(times=3):
    def decorator(fn):
        @wraps(fn)
        def wrapper(*args, **kwargs):
            last = None
            for attempt in range(times):
                try:
                    return fn(*args, **kwargs)
                except TransientError as e:
                    last = e
            raise last
        return wrapper
    return decorator

key = lambda item: (item.priority, -item.age)
apply = lambda f, x=0, *rest: f(x, *rest)

@retry(times=5)
def flaky(url, timeout=1.0, /, *, verbose=False):
    if verbose:
        log(f'fetching {url}')
    return fetch(url, timeout=timeout)
`,
		"classes": `class Registry:
    '''Keeps named factories and builds instances on demand.'''

    _instances: dict = {}

    def __init__(self, name, *, strict=True):
        self.name = name
        self.strict = strict
        self._factories = {}

    def register(self, key, factory):
        if key in self._factories and self.strict:
            raise KeyError(f'duplicate factory: {key!r}')
        self._factories[key] = factory
        return factory

    def build(self, key, /, **options):
        try:
            factory = self._factories[key]
        except KeyError:
            if not self.strict:
                return None
            raise
        return factory(**options)

    @classmethod
    def shared(cls, name):
        if name not in cls._instances:
            cls._instances[name] = cls(name)
        return cls._instances[name]
`,
		"control_flow": `def process(records):
    seen = set()
    good, bad = [], []
    for i, record in enumerate(records):
        if record.id in seen:
            continue
        seen.add(record.id)
        while record.parent is not None:
            record = record.parent
        match record.status:
            case 'ok':
                good.append(record)
            case 'error' | 'failed':
                bad.append(record)
            case _:
                pass
    else:
        log('walked all records')
    if not bad:
        return good
    raise ProcessingError(f'{len(bad)} bad records') from None
`,
	}
	for name, source := range programs {
		t.Run(name, func(t *testing.T) {
			checkRoundTrip(t, source)
		})
	}
}
