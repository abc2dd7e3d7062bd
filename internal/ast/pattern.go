package ast

import (
	"github.com/pythia-lang/pythia/internal/position"
)

// ====== Match patterns ======

// MatchValue matches against a literal or dotted-name value.
type MatchValue struct {
	Span  position.Span
	Value Expression
}

func (m *MatchValue) GetSpan() position.Span { return m.Span }
func (m *MatchValue) patternNode()           {}

// MatchSingleton matches None, True or False by identity.
type MatchSingleton struct {
	Span  position.Span
	Value Expression // NoneLit or BoolLit
}

func (m *MatchSingleton) GetSpan() position.Span { return m.Span }
func (m *MatchSingleton) patternNode()           {}

// MatchSequence matches a fixed or star-extended sequence.
type MatchSequence struct {
	Span     position.Span
	Patterns []Pattern
}

func (m *MatchSequence) GetSpan() position.Span { return m.Span }
func (m *MatchSequence) patternNode()           {}

// MatchMapping matches mapping keys; Rest captures "**rest" leftovers.
type MatchMapping struct {
	Span     position.Span
	Keys     []Expression
	Patterns []Pattern
	Rest     string // empty when no **rest
}

func (m *MatchMapping) GetSpan() position.Span { return m.Span }
func (m *MatchMapping) patternNode()           {}

// MatchClass matches a class pattern with positional sub-patterns and
// keyword attribute sub-patterns.
type MatchClass struct {
	Span        position.Span
	Cls         Expression
	Patterns    []Pattern
	KwdAttrs    []string
	KwdPatterns []Pattern
}

func (m *MatchClass) GetSpan() position.Span { return m.Span }
func (m *MatchClass) patternNode()           {}

// MatchStar is "*name" (or "*_") inside a sequence pattern.
type MatchStar struct {
	Span position.Span
	Name string // empty for *_
}

func (m *MatchStar) GetSpan() position.Span { return m.Span }
func (m *MatchStar) patternNode()           {}

// MatchAs is a capture or wildcard pattern: "pattern as name", a bare
// capture "name", or the wildcard "_" (Pattern nil, Name empty).
type MatchAs struct {
	Span    position.Span
	Pattern Pattern // nil for bare capture/wildcard
	Name    string  // empty for wildcard
}

func (m *MatchAs) GetSpan() position.Span { return m.Span }
func (m *MatchAs) patternNode()           {}

// MatchOr is an alternation "p1 | p2 | ...".
type MatchOr struct {
	Span     position.Span
	Patterns []Pattern
}

func (m *MatchOr) GetSpan() position.Span { return m.Span }
func (m *MatchOr) patternNode()           {}
