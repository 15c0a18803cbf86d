package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Unknown is an unrecognized byte; lexing continues past it.
	Unknown

	// Ident represents an identifier token.
	Ident

	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwSwitch represents the 'switch' keyword.
	KwSwitch // switch
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwDefault represents the 'default' keyword.
	KwDefault // default
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwGoto represents the 'goto' keyword.
	KwGoto // goto
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwUnion represents the 'union' keyword.
	KwUnion // union
	// KwTypedef represents the 'typedef' keyword.
	KwTypedef // typedef
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwExtern represents the 'extern' keyword.
	KwExtern // extern
	// KwVolatile represents the 'volatile' keyword.
	KwVolatile // volatile
	// KwInline represents the 'inline' keyword.
	KwInline // inline
	// KwSizeof represents the 'sizeof' keyword.
	KwSizeof // sizeof
	// KwVoid represents the 'void' type keyword.
	KwVoid // void
	// KwChar represents the 'char' type keyword.
	KwChar // char
	// KwShort represents the 'short' type keyword.
	KwShort // short
	// KwInt represents the 'int' type keyword.
	KwInt // int
	// KwLong represents the 'long' type keyword.
	KwLong // long
	// KwFloat represents the 'float' type keyword.
	KwFloat // float
	// KwDouble represents the 'double' type keyword.
	KwDouble // double
	// KwSigned represents the 'signed' type keyword.
	KwSigned // signed
	// KwUnsigned represents the 'unsigned' type keyword.
	KwUnsigned // unsigned
	// KwBool represents the '_Bool'/'bool' type keyword.
	KwBool // bool

	// IntLit represents an integer literal (suffix kept in Text).
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// CharLit represents a character literal.
	CharLit
	// StringLit represents a string literal.
	StringLit

	// Directive represents one logical preprocessor directive.
	Directive

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Assign represents the assign operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// AmpAssign represents the amp assign operator token.
	AmpAssign // &=
	// PipeAssign represents the pipe assign operator token.
	PipeAssign // |=
	// CaretAssign represents the caret assign operator token.
	CaretAssign // ^=
	// ShlAssign represents the shl assign operator token.
	ShlAssign // <<=
	// ShrAssign represents the shr assign operator token.
	ShrAssign // >>=
	// EqEq represents the equality operator token.
	EqEq // ==
	// Bang represents the logical-not operator token.
	Bang // !
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// Shl represents the shift-left operator token.
	Shl // <<
	// Shr represents the shift-right operator token.
	Shr // >>
	// Amp represents the ampersand operator token.
	Amp // &
	// Pipe represents the pipe operator token.
	Pipe // |
	// Caret represents the caret operator token.
	Caret // ^
	// Tilde represents the bitwise-not operator token.
	Tilde // ~
	// AndAnd represents the logical-and operator token.
	AndAnd // &&
	// OrOr represents the logical-or operator token.
	OrOr // ||
	// PlusPlus represents the increment operator token.
	PlusPlus // ++
	// MinusMinus represents the decrement operator token.
	MinusMinus // --
	// Question represents the question operator token.
	Question // ?
	// Colon represents the colon token.
	Colon // :
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the dot token.
	Dot // .
	// Arrow represents the member-access arrow token.
	Arrow // ->
	// Ellipsis represents the vararg ellipsis token.
	Ellipsis // ...
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// Hash represents a stray '#' outside a directive position.
	Hash // #
)
