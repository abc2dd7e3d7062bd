package ast

// BinOpKind enumerates binary operators, shared by BinOp and AugAssign.
type BinOpKind int

const (
	Add BinOpKind = iota
	Sub
	Mult
	MatMult
	Div
	FloorDiv
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
)

// String returns the surface spelling of the operator.
func (op BinOpKind) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mult:
		return "*"
	case MatMult:
		return "@"
	case Div:
		return "/"
	case FloorDiv:
		return "//"
	case Mod:
		return "%"
	case Pow:
		return "**"
	case LShift:
		return "<<"
	case RShift:
		return ">>"
	case BitOr:
		return "|"
	case BitXor:
		return "^"
	case BitAnd:
		return "&"
	default:
		return "?"
	}
}

// UnaryOpKind enumerates prefix operators.
type UnaryOpKind int

const (
	UAdd UnaryOpKind = iota
	USub
	Invert
	Not
)

func (op UnaryOpKind) String() string {
	switch op {
	case UAdd:
		return "+"
	case USub:
		return "-"
	case Invert:
		return "~"
	case Not:
		return "not"
	default:
		return "?"
	}
}

// BoolOpKind enumerates the short-circuit boolean operators.
type BoolOpKind int

const (
	And BoolOpKind = iota
	Or
)

func (op BoolOpKind) String() string {
	if op == And {
		return "and"
	}
	return "or"
}

// CmpOpKind enumerates comparison operators used in Compare chains.
type CmpOpKind int

const (
	Eq CmpOpKind = iota
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

func (op CmpOpKind) String() string {
	switch op {
	case Eq:
		return "=="
	case NotEq:
		return "!="
	case Lt:
		return "<"
	case LtE:
		return "<="
	case Gt:
		return ">"
	case GtE:
		return ">="
	case Is:
		return "is"
	case IsNot:
		return "is not"
	case In:
		return "in"
	case NotIn:
		return "not in"
	default:
		return "?"
	}
}
