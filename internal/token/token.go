package token

import (
	"cstyle/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, character, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, CharLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a C keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwIf && t.Kind <= KwBool
}

// IsTypeKeyword reports whether the token names a built-in type or type
// qualifier that can start a declaration.
func (t Token) IsTypeKeyword() bool {
	switch t.Kind {
	case KwVoid, KwChar, KwShort, KwInt, KwLong, KwFloat, KwDouble,
		KwSigned, KwUnsigned, KwBool, KwConst, KwVolatile, KwStatic,
		KwExtern, KwInline, KwStruct, KwEnum, KwUnion:
		return true
	default:
		return false
	}
}

// IsComparison reports whether the token is an equality or ordering operator.
func (t Token) IsComparison() bool {
	switch t.Kind {
	case EqEq, BangEq, Lt, LtEq, Gt, GtEq:
		return true
	default:
		return false
	}
}

// IsBinaryOperator reports whether the token is unambiguously a binary
// operator. Star, Amp, Plus and Minus are excluded: they share a spelling
// with their unary forms, and callers must disambiguate from context.
func (t Token) IsBinaryOperator() bool {
	switch t.Kind {
	case Slash, Percent, Assign, PlusAssign, MinusAssign, StarAssign,
		SlashAssign, PercentAssign, AmpAssign, PipeAssign, CaretAssign,
		ShlAssign, ShrAssign, EqEq, BangEq, Lt, LtEq, Gt, GtEq,
		Shl, Shr, Pipe, Caret, AndAnd, OrOr:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
