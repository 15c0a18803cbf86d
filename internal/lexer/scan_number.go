package lexer

import (
	"cstyle/internal/diag"
	"cstyle/internal/token"
)

// scanNumber scans C numeric literals: decimal, octal (leading 0),
// hex (0x/0X), binary (0b), floats with optional exponent, and the
// integer/float suffixes (u/U/l/L/f/F). Suffix and hex-digit case is kept
// verbatim in Token.Text so case rules can inspect it.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	// leading dot: ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.scanExponent(&kind, start)
		lx.eatSuffixes(kind)
		return lx.emitNumber(kind, start)
	}

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'x', 'X':
			lx.cursor.Bump()
			if !isHex(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected hex digit after 0x")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
			}
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.eatSuffixes(kind)
			return lx.emitNumber(kind, start)
		case 'b', 'B':
			lx.cursor.Bump()
			for lx.cursor.Peek() == '0' || lx.cursor.Peek() == '1' {
				lx.cursor.Bump()
			}
			lx.eatSuffixes(kind)
			return lx.emitNumber(kind, start)
		default:
			// plain 0, octal digits, or the start of a decimal fraction
			for isOct(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	lx.scanExponent(&kind, start)
	lx.eatSuffixes(kind)
	return lx.emitNumber(kind, start)
}

func (lx *Lexer) scanExponent(kind *token.Kind, start Mark) {
	b := lx.cursor.Peek()
	if b != 'e' && b != 'E' {
		return
	}
	// only a well-formed exponent belongs to the number
	_, b1, ok := lx.cursor.Peek2()
	if !ok || (b1 != '+' && b1 != '-' && !isDec(b1)) {
		return
	}
	lx.cursor.Bump() // e/E
	if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
		lx.cursor.Bump()
	}
	if !isDec(lx.cursor.Peek()) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
		return
	}
	*kind = token.FloatLit
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) eatSuffixes(kind token.Kind) {
	if kind == token.FloatLit {
		for isFloatSuffix(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return
	}
	for isIntSuffix(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) emitNumber(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.textFrom(sp)}
}
