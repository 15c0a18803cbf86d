package lexer

import (
	"fmt"

	"cstyle/internal/diag"
	"cstyle/internal/token"
)

// scanOperatorOrPunct scans operators and punctuation, longest match first.
// Unrecognized bytes become an Unknown token so lexing always progresses.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	kind := token.Unknown
	switch {
	case lx.try3('<', '<', '='):
		kind = token.ShlAssign
	case lx.try3('>', '>', '='):
		kind = token.ShrAssign
	case lx.try3('.', '.', '.'):
		kind = token.Ellipsis

	case lx.try2('<', '<'):
		kind = token.Shl
	case lx.try2('>', '>'):
		kind = token.Shr
	case lx.try2('<', '='):
		kind = token.LtEq
	case lx.try2('>', '='):
		kind = token.GtEq
	case lx.try2('=', '='):
		kind = token.EqEq
	case lx.try2('!', '='):
		kind = token.BangEq
	case lx.try2('&', '&'):
		kind = token.AndAnd
	case lx.try2('|', '|'):
		kind = token.OrOr
	case lx.try2('+', '+'):
		kind = token.PlusPlus
	case lx.try2('-', '-'):
		kind = token.MinusMinus
	case lx.try2('-', '>'):
		kind = token.Arrow
	case lx.try2('+', '='):
		kind = token.PlusAssign
	case lx.try2('-', '='):
		kind = token.MinusAssign
	case lx.try2('*', '='):
		kind = token.StarAssign
	case lx.try2('/', '='):
		kind = token.SlashAssign
	case lx.try2('%', '='):
		kind = token.PercentAssign
	case lx.try2('&', '='):
		kind = token.AmpAssign
	case lx.try2('|', '='):
		kind = token.PipeAssign
	case lx.try2('^', '='):
		kind = token.CaretAssign

	default:
		b := lx.cursor.Bump()
		switch b {
		case '+':
			kind = token.Plus
		case '-':
			kind = token.Minus
		case '*':
			kind = token.Star
		case '/':
			kind = token.Slash
		case '%':
			kind = token.Percent
		case '=':
			kind = token.Assign
		case '<':
			kind = token.Lt
		case '>':
			kind = token.Gt
		case '!':
			kind = token.Bang
		case '&':
			kind = token.Amp
		case '|':
			kind = token.Pipe
		case '^':
			kind = token.Caret
		case '~':
			kind = token.Tilde
		case '?':
			kind = token.Question
		case ':':
			kind = token.Colon
		case ';':
			kind = token.Semicolon
		case ',':
			kind = token.Comma
		case '.':
			kind = token.Dot
		case '(':
			kind = token.LParen
		case ')':
			kind = token.RParen
		case '{':
			kind = token.LBrace
		case '}':
			kind = token.RBrace
		case '[':
			kind = token.LBracket
		case ']':
			kind = token.RBracket
		case '#':
			kind = token.Hash
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if kind == token.Unknown {
		lx.errLex(diag.LexUnknownChar, sp,
			fmt.Sprintf("unknown character %q", lx.textFrom(sp)))
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.textFrom(sp)}
}
