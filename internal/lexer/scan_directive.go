package lexer

import (
	"cstyle/internal/token"
)

// scanDirective scans one logical preprocessor directive starting at '#'.
// A trailing backslash continues the directive onto the next physical line,
// so a multi-line #define is one token. Line comments end the directive;
// block comments inside it are consumed with it.
func (lx *Lexer) scanDirective() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == '\\' {
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
			lx.cursor.Bump()
			continue
		}

		if b == '\n' {
			break
		}

		if b == '/' {
			if _, b1, ok := lx.cursor.Peek2(); ok {
				if b1 == '/' {
					break // trailing line comment is separate trivia
				}
				if b1 == '*' {
					lx.skipBlockCommentInDirective()
					continue
				}
			}
		}

		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Directive, Span: sp, Text: lx.textFrom(sp)}
}

func (lx *Lexer) skipBlockCommentInDirective() {
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
}
