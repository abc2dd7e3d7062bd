// Package lexer implements the Pythia tokenizer: it turns source text
// into a flat token stream with synthetic INDENT/DEDENT/NEWLINE tokens
// derived from significant whitespace.
package lexer

import (
	"fmt"

	"github.com/pythia-lang/pythia/internal/position"
)

// TokenType identifies the lexical class of a token.
type TokenType int

// String returns the canonical name of the token type.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

const (
	// Structural tokens
	TokenEndMarker TokenType = iota
	TokenNewline
	TokenNL // non-logical newline: blank or comment-only line
	TokenIndent
	TokenDedent
	TokenComment

	// Literals
	TokenName
	TokenNumber
	TokenString
	TokenFString

	// Keywords
	TokenFalse
	TokenNone
	TokenTrue
	TokenAnd
	TokenAs
	TokenAssert
	TokenAsync
	TokenAwait
	TokenBreak
	TokenClass
	TokenContinue
	TokenDef
	TokenDel
	TokenElif
	TokenElse
	TokenExcept
	TokenFinally
	TokenFor
	TokenFrom
	TokenGlobal
	TokenIf
	TokenImport
	TokenIn
	TokenIs
	TokenLambda
	TokenNonlocal
	TokenNot
	TokenOr
	TokenPass
	TokenRaise
	TokenReturn
	TokenTry
	TokenWhile
	TokenWith
	TokenYield

	// Soft keywords: reserved only in specific statement positions,
	// ordinary identifiers elsewhere. The parser decides.
	TokenMatch
	TokenCase
	TokenTypeKw

	// Delimiters
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenColon
	TokenSemicolon
	TokenDot
	TokenEllipsis
	TokenArrow
	TokenAt

	// Operators
	TokenAssign
	TokenColonEqual
	TokenPlus
	TokenMinus
	TokenStar
	TokenDoubleStar
	TokenSlash
	TokenDoubleSlash
	TokenPercent
	TokenAmper
	TokenVBar
	TokenCaret
	TokenTilde
	TokenLShift
	TokenRShift
	TokenLess
	TokenGreater
	TokenLessEqual
	TokenGreaterEqual
	TokenEqual
	TokenNotEqual

	// Augmented assignment operators
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenDoubleSlashAssign
	TokenPercentAssign
	TokenAtAssign
	TokenAmperAssign
	TokenVBarAssign
	TokenCaretAssign
	TokenLShiftAssign
	TokenRShiftAssign
	TokenDoubleStarAssign
)

// tokenNames provides string representations for token types.
var tokenNames = map[TokenType]string{
	TokenEndMarker: "ENDMARKER",
	TokenNewline:   "NEWLINE",
	TokenNL:        "NL",
	TokenIndent:    "INDENT",
	TokenDedent:    "DEDENT",
	TokenComment:   "COMMENT",

	TokenName:    "NAME",
	TokenNumber:  "NUMBER",
	TokenString:  "STRING",
	TokenFString: "FSTRING",

	TokenFalse:    "FALSE",
	TokenNone:     "NONE",
	TokenTrue:     "TRUE",
	TokenAnd:      "AND",
	TokenAs:       "AS",
	TokenAssert:   "ASSERT",
	TokenAsync:    "ASYNC",
	TokenAwait:    "AWAIT",
	TokenBreak:    "BREAK",
	TokenClass:    "CLASS",
	TokenContinue: "CONTINUE",
	TokenDef:      "DEF",
	TokenDel:      "DEL",
	TokenElif:     "ELIF",
	TokenElse:     "ELSE",
	TokenExcept:   "EXCEPT",
	TokenFinally:  "FINALLY",
	TokenFor:      "FOR",
	TokenFrom:     "FROM",
	TokenGlobal:   "GLOBAL",
	TokenIf:       "IF",
	TokenImport:   "IMPORT",
	TokenIn:       "IN",
	TokenIs:       "IS",
	TokenLambda:   "LAMBDA",
	TokenNonlocal: "NONLOCAL",
	TokenNot:      "NOT",
	TokenOr:       "OR",
	TokenPass:     "PASS",
	TokenRaise:    "RAISE",
	TokenReturn:   "RETURN",
	TokenTry:      "TRY",
	TokenWhile:    "WHILE",
	TokenWith:     "WITH",
	TokenYield:    "YIELD",

	TokenMatch:  "MATCH",
	TokenCase:   "CASE",
	TokenTypeKw: "TYPE",

	TokenLParen:    "LPAREN",
	TokenRParen:    "RPAREN",
	TokenLBracket:  "LBRACKET",
	TokenRBracket:  "RBRACKET",
	TokenLBrace:    "LBRACE",
	TokenRBrace:    "RBRACE",
	TokenComma:     "COMMA",
	TokenColon:     "COLON",
	TokenSemicolon: "SEMICOLON",
	TokenDot:       "DOT",
	TokenEllipsis:  "ELLIPSIS",
	TokenArrow:     "ARROW",
	TokenAt:        "AT",

	TokenAssign:       "ASSIGN",
	TokenColonEqual:   "COLON_EQUAL",
	TokenPlus:         "PLUS",
	TokenMinus:        "MINUS",
	TokenStar:         "STAR",
	TokenDoubleStar:   "DOUBLE_STAR",
	TokenSlash:        "SLASH",
	TokenDoubleSlash:  "DOUBLE_SLASH",
	TokenPercent:      "PERCENT",
	TokenAmper:        "AMPER",
	TokenVBar:         "VBAR",
	TokenCaret:        "CARET",
	TokenTilde:        "TILDE",
	TokenLShift:       "LSHIFT",
	TokenRShift:       "RSHIFT",
	TokenLess:         "LESS",
	TokenGreater:      "GREATER",
	TokenLessEqual:    "LESS_EQUAL",
	TokenGreaterEqual: "GREATER_EQUAL",
	TokenEqual:        "EQUAL",
	TokenNotEqual:     "NOT_EQUAL",

	TokenPlusAssign:        "PLUS_ASSIGN",
	TokenMinusAssign:       "MINUS_ASSIGN",
	TokenStarAssign:        "STAR_ASSIGN",
	TokenSlashAssign:       "SLASH_ASSIGN",
	TokenDoubleSlashAssign: "DOUBLE_SLASH_ASSIGN",
	TokenPercentAssign:     "PERCENT_ASSIGN",
	TokenAtAssign:          "AT_ASSIGN",
	TokenAmperAssign:       "AMPER_ASSIGN",
	TokenVBarAssign:        "VBAR_ASSIGN",
	TokenCaretAssign:       "CARET_ASSIGN",
	TokenLShiftAssign:      "LSHIFT_ASSIGN",
	TokenRShiftAssign:      "RSHIFT_ASSIGN",
	TokenDoubleStarAssign:  "DOUBLE_STAR_ASSIGN",
}

// keywords maps reserved words to their token types. Soft keywords
// (match, case, type) are included; the parser treats them contextually.
var keywords = map[string]TokenType{
	"False":    TokenFalse,
	"None":     TokenNone,
	"True":     TokenTrue,
	"and":      TokenAnd,
	"as":       TokenAs,
	"assert":   TokenAssert,
	"async":    TokenAsync,
	"await":    TokenAwait,
	"break":    TokenBreak,
	"class":    TokenClass,
	"continue": TokenContinue,
	"def":      TokenDef,
	"del":      TokenDel,
	"elif":     TokenElif,
	"else":     TokenElse,
	"except":   TokenExcept,
	"finally":  TokenFinally,
	"for":      TokenFor,
	"from":     TokenFrom,
	"global":   TokenGlobal,
	"if":       TokenIf,
	"import":   TokenImport,
	"in":       TokenIn,
	"is":       TokenIs,
	"lambda":   TokenLambda,
	"nonlocal": TokenNonlocal,
	"not":      TokenNot,
	"or":       TokenOr,
	"pass":     TokenPass,
	"raise":    TokenRaise,
	"return":   TokenReturn,
	"try":      TokenTry,
	"while":    TokenWhile,
	"with":     TokenWith,
	"yield":    TokenYield,
	"match":    TokenMatch,
	"case":     TokenCase,
	"type":     TokenTypeKw,
}

// operators3 maps three-character operator spellings to token types.
var operators3 = map[string]TokenType{
	"**=": TokenDoubleStarAssign,
	"//=": TokenDoubleSlashAssign,
	"<<=": TokenLShiftAssign,
	">>=": TokenRShiftAssign,
	"...": TokenEllipsis,
}

// operators2 maps two-character operator spellings to token types.
var operators2 = map[string]TokenType{
	"**": TokenDoubleStar,
	"//": TokenDoubleSlash,
	"<<": TokenLShift,
	">>": TokenRShift,
	"<=": TokenLessEqual,
	">=": TokenGreaterEqual,
	"==": TokenEqual,
	"!=": TokenNotEqual,
	"->": TokenArrow,
	":=": TokenColonEqual,
	"+=": TokenPlusAssign,
	"-=": TokenMinusAssign,
	"*=": TokenStarAssign,
	"/=": TokenSlashAssign,
	"%=": TokenPercentAssign,
	"@=": TokenAtAssign,
	"&=": TokenAmperAssign,
	"|=": TokenVBarAssign,
	"^=": TokenCaretAssign,
}

// operators1 maps single-character operator spellings to token types.
var operators1 = map[byte]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
	',': TokenComma,
	':': TokenColon,
	';': TokenSemicolon,
	'.': TokenDot,
	'@': TokenAt,
	'=': TokenAssign,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'%': TokenPercent,
	'&': TokenAmper,
	'|': TokenVBar,
	'^': TokenCaret,
	'~': TokenTilde,
	'<': TokenLess,
	'>': TokenGreater,
}

// Token is a classified lexical unit with its raw text and source span.
type Token struct {
	Type    TokenType
	Literal string
	Span    position.Span
}

// String returns a debug representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Pos: %s}", t.Type, t.Literal, t.Span.Start)
}

// IsKeyword reports whether the token is a reserved word, including
// the soft keywords.
func (t Token) IsKeyword() bool {
	return t.Type >= TokenFalse && t.Type <= TokenTypeKw
}

// lookupIdent classifies identifier-shaped text as a keyword or NAME.
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenName
}
