package ast

import (
	"github.com/pythia-lang/pythia/internal/position"
)

// ====== Expressions ======

// Name is an identifier reference.
type Name struct {
	Span position.Span
	ID   string
}

func (n *Name) GetSpan() position.Span { return n.Span }
func (n *Name) expressionNode()        {}

// NumberLit is a numeric literal. The raw source spelling is kept so
// hex/octal/binary/underscore forms survive a round trip.
type NumberLit struct {
	Span    position.Span
	Literal string
}

func (n *NumberLit) GetSpan() position.Span { return n.Span }
func (n *NumberLit) expressionNode()        {}

// StringLit is a plain (non-f) string literal with its decoded value.
type StringLit struct {
	Span    position.Span
	Value   string
	IsRaw   bool
	IsBytes bool
}

func (s *StringLit) GetSpan() position.Span { return s.Span }
func (s *StringLit) expressionNode()        {}

// JoinedStr is an f-string: an alternating sequence of StringLit text
// chunks and FormattedValue embedded expressions.
type JoinedStr struct {
	Span  position.Span
	Parts []Expression
}

func (j *JoinedStr) GetSpan() position.Span { return j.Span }
func (j *JoinedStr) expressionNode()        {}

// FormattedValue is one "{expr!conv:spec}" slot inside an f-string.
// Conversion is 0 or one of 'r', 's', 'a'.
type FormattedValue struct {
	Span       position.Span
	Value      Expression
	Conversion byte
	FormatSpec *JoinedStr // nil when absent
}

func (f *FormattedValue) GetSpan() position.Span { return f.Span }
func (f *FormattedValue) expressionNode()        {}

// BoolLit is True or False.
type BoolLit struct {
	Span  position.Span
	Value bool
}

func (b *BoolLit) GetSpan() position.Span { return b.Span }
func (b *BoolLit) expressionNode()        {}

// NoneLit is the None constant.
type NoneLit struct {
	Span position.Span
}

func (n *NoneLit) GetSpan() position.Span { return n.Span }
func (n *NoneLit) expressionNode()        {}

// EllipsisLit is the "..." constant.
type EllipsisLit struct {
	Span position.Span
}

func (e *EllipsisLit) GetSpan() position.Span { return e.Span }
func (e *EllipsisLit) expressionNode()        {}

// BinOp is a binary arithmetic/bitwise operation.
type BinOp struct {
	Span  position.Span
	Left  Expression
	Op    BinOpKind
	Right Expression
}

func (b *BinOp) GetSpan() position.Span { return b.Span }
func (b *BinOp) expressionNode()        {}

// UnaryOp is a prefix operation: +x, -x, ~x, not x.
type UnaryOp struct {
	Span    position.Span
	Op      UnaryOpKind
	Operand Expression
}

func (u *UnaryOp) GetSpan() position.Span { return u.Span }
func (u *UnaryOp) expressionNode()        {}

// BoolOp is an and/or chain flattened into a single node with two or
// more operands, mirroring the short-circuit evaluation order.
type BoolOp struct {
	Span   position.Span
	Op     BoolOpKind
	Values []Expression
}

func (b *BoolOp) GetSpan() position.Span { return b.Span }
func (b *BoolOp) expressionNode()        {}

// Compare is an N-ary comparison chain: one left operand plus parallel
// operator and comparator lists, so "a < b < c" is a single node.
type Compare struct {
	Span        position.Span
	Left        Expression
	Ops         []CmpOpKind
	Comparators []Expression
}

func (c *Compare) GetSpan() position.Span { return c.Span }
func (c *Compare) expressionNode()        {}

// Call is a function call with positional and keyword arguments.
// Starred positional unpacking appears as a Starred arg; "**kwargs"
// unpacking is a Keyword with an empty Arg name.
type Call struct {
	Span     position.Span
	Func     Expression
	Args     []Expression
	Keywords []*Keyword
}

func (c *Call) GetSpan() position.Span { return c.Span }
func (c *Call) expressionNode()        {}

// Attribute is "value.attr".
type Attribute struct {
	Span  position.Span
	Value Expression
	Attr  string
}

func (a *Attribute) GetSpan() position.Span { return a.Span }
func (a *Attribute) expressionNode()        {}

// Subscript is "value[index]". A tuple index covers "d[a, b]" and a
// Slice (possibly inside a tuple) covers slicing forms.
type Subscript struct {
	Span  position.Span
	Value Expression
	Index Expression
}

func (s *Subscript) GetSpan() position.Span { return s.Span }
func (s *Subscript) expressionNode()        {}

// Slice is "lower:upper:step" inside a subscript; any part may be nil.
type Slice struct {
	Span  position.Span
	Lower Expression
	Upper Expression
	Step  Expression
}

func (s *Slice) GetSpan() position.Span { return s.Span }
func (s *Slice) expressionNode()        {}

// Lambda is an anonymous function expression.
type Lambda struct {
	Span position.Span
	Args *Arguments
	Body Expression
}

func (l *Lambda) GetSpan() position.Span { return l.Span }
func (l *Lambda) expressionNode()        {}

// IfExp is the conditional expression "body if cond else orelse".
type IfExp struct {
	Span   position.Span
	Body   Expression
	Cond   Expression
	OrElse Expression
}

func (i *IfExp) GetSpan() position.Span { return i.Span }
func (i *IfExp) expressionNode()        {}

// Tuple is a tuple display. Parenthesization is not recorded; the
// unparser adds parentheses where the context requires them.
type Tuple struct {
	Span position.Span
	Elts []Expression
}

func (t *Tuple) GetSpan() position.Span { return t.Span }
func (t *Tuple) expressionNode()        {}

// List is a list display.
type List struct {
	Span position.Span
	Elts []Expression
}

func (l *List) GetSpan() position.Span { return l.Span }
func (l *List) expressionNode()        {}

// Set is a set display.
type Set struct {
	Span position.Span
	Elts []Expression
}

func (s *Set) GetSpan() position.Span { return s.Span }
func (s *Set) expressionNode()        {}

// Dict is a dict display. A nil entry in Keys marks "**value"
// unpacking of the parallel Values entry.
type Dict struct {
	Span   position.Span
	Keys   []Expression
	Values []Expression
}

func (d *Dict) GetSpan() position.Span { return d.Span }
func (d *Dict) expressionNode()        {}

// ListComp is "[elt for ...]".
type ListComp struct {
	Span       position.Span
	Elt        Expression
	Generators []*Comprehension
}

func (l *ListComp) GetSpan() position.Span { return l.Span }
func (l *ListComp) expressionNode()        {}

// SetComp is "{elt for ...}".
type SetComp struct {
	Span       position.Span
	Elt        Expression
	Generators []*Comprehension
}

func (s *SetComp) GetSpan() position.Span { return s.Span }
func (s *SetComp) expressionNode()        {}

// DictComp is "{key: value for ...}".
type DictComp struct {
	Span       position.Span
	Key        Expression
	Value      Expression
	Generators []*Comprehension
}

func (d *DictComp) GetSpan() position.Span { return d.Span }
func (d *DictComp) expressionNode()        {}

// GeneratorExp is "(elt for ...)".
type GeneratorExp struct {
	Span       position.Span
	Elt        Expression
	Generators []*Comprehension
}

func (g *GeneratorExp) GetSpan() position.Span { return g.Span }
func (g *GeneratorExp) expressionNode()        {}

// Starred is "*value" in calls, assignment targets and displays.
type Starred struct {
	Span  position.Span
	Value Expression
}

func (s *Starred) GetSpan() position.Span { return s.Span }
func (s *Starred) expressionNode()        {}

// NamedExpr is the walrus assignment expression "target := value".
type NamedExpr struct {
	Span   position.Span
	Target Expression
	Value  Expression
}

func (n *NamedExpr) GetSpan() position.Span { return n.Span }
func (n *NamedExpr) expressionNode()        {}

// Await is "await value".
type Await struct {
	Span  position.Span
	Value Expression
}

func (a *Await) GetSpan() position.Span { return a.Span }
func (a *Await) expressionNode()        {}

// Yield is "yield" or "yield value".
type Yield struct {
	Span  position.Span
	Value Expression // nil for bare yield
}

func (y *Yield) GetSpan() position.Span { return y.Span }
func (y *Yield) expressionNode()        {}

// YieldFrom is "yield from value".
type YieldFrom struct {
	Span  position.Span
	Value Expression
}

func (y *YieldFrom) GetSpan() position.Span { return y.Span }
func (y *YieldFrom) expressionNode()        {}
