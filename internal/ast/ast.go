// Package ast defines the Pythia abstract syntax tree: a closed set of
// statement, expression and pattern nodes produced by the parser and
// consumed by the unparser and downstream tools. Nodes are plain data
// with source spans; they are never mutated after construction.
package ast

import (
	"github.com/pythia-lang/pythia/internal/position"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// GetSpan returns the source span for this node.
	GetSpan() position.Span
}

// Statement is implemented by all statement nodes. The set is closed:
// consumers can switch exhaustively over the concrete types.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by all expression nodes. The set is closed.
type Expression interface {
	Node
	expressionNode()
}

// Pattern is implemented by all match-statement pattern nodes.
type Pattern interface {
	Node
	patternNode()
}

// Module is the root of the AST, owning an ordered statement sequence.
type Module struct {
	Span position.Span
	Body []Statement
}

func (m *Module) GetSpan() position.Span { return m.Span }

// ====== Statements ======

// FunctionDef represents a def (or async def) statement.
type FunctionDef struct {
	Span       position.Span
	Name       string
	Args       *Arguments
	Body       []Statement
	Decorators []Expression
	Returns    Expression // nil if no annotation
	IsAsync    bool
}

func (f *FunctionDef) GetSpan() position.Span { return f.Span }
func (f *FunctionDef) statementNode()         {}

// ClassDef represents a class statement.
type ClassDef struct {
	Span       position.Span
	Name       string
	Bases      []Expression
	Keywords   []*Keyword
	Body       []Statement
	Decorators []Expression
}

func (c *ClassDef) GetSpan() position.Span { return c.Span }
func (c *ClassDef) statementNode()         {}

// If represents an if/elif/else chain. elif clauses are nested If
// statements in the Else slice.
type If struct {
	Span position.Span
	Cond Expression
	Body []Statement
	Else []Statement // nil when absent
}

func (i *If) GetSpan() position.Span { return i.Span }
func (i *If) statementNode()         {}

// While represents a while loop with an optional else clause.
type While struct {
	Span position.Span
	Cond Expression
	Body []Statement
	Else []Statement
}

func (w *While) GetSpan() position.Span { return w.Span }
func (w *While) statementNode()         {}

// For represents a for (or async for) loop with an optional else clause.
type For struct {
	Span    position.Span
	Target  Expression
	Iter    Expression
	Body    []Statement
	Else    []Statement
	IsAsync bool
}

func (f *For) GetSpan() position.Span { return f.Span }
func (f *For) statementNode()         {}

// With represents a with (or async with) statement.
type With struct {
	Span    position.Span
	Items   []*WithItem
	Body    []Statement
	IsAsync bool
}

func (w *With) GetSpan() position.Span { return w.Span }
func (w *With) statementNode()         {}

// Try represents try/except/else/finally. IsStar is set for
// except* exception groups.
type Try struct {
	Span     position.Span
	Body     []Statement
	Handlers []*ExceptHandler
	Else     []Statement
	Finally  []Statement
	IsStar   bool
}

func (t *Try) GetSpan() position.Span { return t.Span }
func (t *Try) statementNode()         {}

// Match represents a match statement with ordered case clauses.
type Match struct {
	Span    position.Span
	Subject Expression
	Cases   []*MatchCase
}

func (m *Match) GetSpan() position.Span { return m.Span }
func (m *Match) statementNode()         {}

// Raise represents a raise statement with optional exception and cause.
type Raise struct {
	Span  position.Span
	Exc   Expression // nil for bare raise
	Cause Expression // nil unless "raise X from Y"
}

func (r *Raise) GetSpan() position.Span { return r.Span }
func (r *Raise) statementNode()         {}

// Assert represents an assert statement.
type Assert struct {
	Span position.Span
	Test Expression
	Msg  Expression // nil when absent
}

func (a *Assert) GetSpan() position.Span { return a.Span }
func (a *Assert) statementNode()         {}

// Import represents "import a.b as c, d".
type Import struct {
	Span  position.Span
	Names []*Alias
}

func (i *Import) GetSpan() position.Span { return i.Span }
func (i *Import) statementNode()         {}

// ImportFrom represents "from .mod import a as b, c". Level counts the
// leading relative-import dots; Module may be empty for "from . import x".
type ImportFrom struct {
	Span   position.Span
	Module string
	Names  []*Alias
	Level  int
}

func (i *ImportFrom) GetSpan() position.Span { return i.Span }
func (i *ImportFrom) statementNode()         {}

// Assign represents "a = b = value" with one target per "=".
type Assign struct {
	Span    position.Span
	Targets []Expression
	Value   Expression
}

func (a *Assign) GetSpan() position.Span { return a.Span }
func (a *Assign) statementNode()         {}

// AugAssign represents an augmented assignment such as "x += 1".
type AugAssign struct {
	Span   position.Span
	Target Expression
	Op     BinOpKind
	Value  Expression
}

func (a *AugAssign) GetSpan() position.Span { return a.Span }
func (a *AugAssign) statementNode()         {}

// AnnAssign represents an annotated assignment "x: T" or "x: T = v".
type AnnAssign struct {
	Span       position.Span
	Target     Expression
	Annotation Expression
	Value      Expression // nil when only annotating
}

func (a *AnnAssign) GetSpan() position.Span { return a.Span }
func (a *AnnAssign) statementNode()         {}

// Return represents a return statement.
type Return struct {
	Span  position.Span
	Value Expression // nil for bare return
}

func (r *Return) GetSpan() position.Span { return r.Span }
func (r *Return) statementNode()         {}

// Pass represents a pass statement.
type Pass struct {
	Span position.Span
}

func (p *Pass) GetSpan() position.Span { return p.Span }
func (p *Pass) statementNode()         {}

// Break represents a break statement.
type Break struct {
	Span position.Span
}

func (b *Break) GetSpan() position.Span { return b.Span }
func (b *Break) statementNode()         {}

// Continue represents a continue statement.
type Continue struct {
	Span position.Span
}

func (c *Continue) GetSpan() position.Span { return c.Span }
func (c *Continue) statementNode()         {}

// Delete represents a del statement.
type Delete struct {
	Span    position.Span
	Targets []Expression
}

func (d *Delete) GetSpan() position.Span { return d.Span }
func (d *Delete) statementNode()         {}

// Global represents a global declaration.
type Global struct {
	Span  position.Span
	Names []string
}

func (g *Global) GetSpan() position.Span { return g.Span }
func (g *Global) statementNode()         {}

// Nonlocal represents a nonlocal declaration.
type Nonlocal struct {
	Span  position.Span
	Names []string
}

func (n *Nonlocal) GetSpan() position.Span { return n.Span }
func (n *Nonlocal) statementNode()         {}

// ExprStmt represents a bare expression used as a statement.
type ExprStmt struct {
	Span  position.Span
	Value Expression
}

func (e *ExprStmt) GetSpan() position.Span { return e.Span }
func (e *ExprStmt) statementNode()         {}

// TypeAlias represents a "type X = T" alias statement.
type TypeAlias struct {
	Span  position.Span
	Name  string
	Value Expression
}

func (t *TypeAlias) GetSpan() position.Span { return t.Span }
func (t *TypeAlias) statementNode()         {}

// BlankLine is a formatting marker, not grammar: it records vertical
// spacing between statements so the unparser can reproduce it.
type BlankLine struct {
	Span  position.Span
	Count int
}

func (b *BlankLine) GetSpan() position.Span { return b.Span }
func (b *BlankLine) statementNode()         {}

// ====== Supporting structures ======

// Arguments collects the parameter groups of a def or lambda.
type Arguments struct {
	Span       position.Span
	PosOnly    []*Arg       // before the "/" marker
	Args       []*Arg       // regular parameters
	Defaults   []Expression // defaults for the tail of PosOnly+Args
	Vararg     *Arg         // *args, nil when absent
	KwOnly     []*Arg       // after "*" or *args
	KwDefaults []Expression // parallel to KwOnly, nil entries for no default
	Kwarg      *Arg         // **kwargs, nil when absent
}

func (a *Arguments) GetSpan() position.Span { return a.Span }

// Arg is a single parameter with an optional annotation.
type Arg struct {
	Span       position.Span
	Name       string
	Annotation Expression
}

func (a *Arg) GetSpan() position.Span { return a.Span }

// Keyword is a keyword argument in a call or class bases list. An
// empty Arg means "**value" unpacking.
type Keyword struct {
	Span  position.Span
	Arg   string
	Value Expression
}

func (k *Keyword) GetSpan() position.Span { return k.Span }

// Alias is an import alias "name as asname".
type Alias struct {
	Span   position.Span
	Name   string
	AsName string // empty when absent
}

func (a *Alias) GetSpan() position.Span { return a.Span }

// WithItem is one context manager of a with statement.
type WithItem struct {
	Span         position.Span
	ContextExpr  Expression
	OptionalVars Expression // nil when no "as target"
}

func (w *WithItem) GetSpan() position.Span { return w.Span }

// ExceptHandler is one except clause.
type ExceptHandler struct {
	Span position.Span
	Type Expression // nil for bare except
	Name string     // empty when no "as name"
	Body []Statement
}

func (e *ExceptHandler) GetSpan() position.Span { return e.Span }

// Comprehension is one "for target in iter [if cond]*" clause of a
// comprehension expression.
type Comprehension struct {
	Span    position.Span
	Target  Expression
	Iter    Expression
	Ifs     []Expression
	IsAsync bool
}

func (c *Comprehension) GetSpan() position.Span { return c.Span }

// MatchCase is one "case pattern [if guard]:" clause.
type MatchCase struct {
	Span    position.Span
	Pattern Pattern
	Guard   Expression // nil when absent
	Body    []Statement
}

func (m *MatchCase) GetSpan() position.Span { return m.Span }
