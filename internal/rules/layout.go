package rules

import (
	"fmt"
	"strings"

	"cstyle/internal/lexer"
	"cstyle/internal/source"
	"cstyle/internal/structure"
	"cstyle/internal/token"
)

func lineAt(ctx *Context, off uint32) uint32 {
	return ctx.File.LineColAt(off).Line
}

// continuationLines marks lines that belong to a multi-line construct
// (block comment interiors, continued preprocessor directives) whose
// indentation is free-form.
func continuationLines(ctx *Context) []bool {
	skip := make([]bool, len(ctx.Lines)+2)
	mark := func(sp source.Span) {
		if sp.Len() == 0 {
			return
		}
		lo := lineAt(ctx, sp.Start)
		hi := lineAt(ctx, sp.End-1)
		for l := lo + 1; l <= hi && int(l) < len(skip); l++ {
			skip[l] = true
		}
	}
	for _, tok := range ctx.Tokens {
		if tok.Kind == token.Directive {
			mark(tok.Span)
		}
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaBlockComment {
				mark(tr.Span)
			}
		}
	}
	return skip
}

func checkIndentation(ctx *Context) {
	width := ctx.Int("width")
	if width <= 0 {
		return
	}
	skip := continuationLines(ctx)
	for _, fact := range ctx.Lines {
		if fact.Blank || skip[fact.Num] {
			continue
		}
		leadSpan := source.Span{
			File:  ctx.File.ID,
			Start: fact.Start,
			End:   fact.Start + fact.LeadingSpaces + fact.LeadingTabs,
		}
		if fact.LeadingTabs > 0 {
			ctx.Report(leadSpan, "indentation uses tabs")
			continue
		}
		if fact.LeadingSpaces%uint32(width) != 0 {
			ctx.Report(leadSpan,
				fmt.Sprintf("indentation of %d spaces is not a multiple of %d", fact.LeadingSpaces, width))
		}
	}
}

func checkLineLength(ctx *Context) {
	max := ctx.Int("max")
	if max <= 0 {
		return
	}
	for _, fact := range ctx.Lines {
		if int(fact.RuneLen) > max {
			ctx.Report(source.Span{File: ctx.File.ID, Start: fact.Start, End: fact.Start + fact.Len},
				fmt.Sprintf("line is %d characters, limit is %d", fact.RuneLen, max))
		}
	}
}

func checkTrailingWhitespace(ctx *Context) {
	for _, fact := range ctx.Lines {
		if !fact.TrailingWS {
			continue
		}
		end := fact.Start + fact.Len
		start := end
		for start > fact.Start {
			b := ctx.File.Content[start-1]
			if b != ' ' && b != '\t' {
				break
			}
			start--
		}
		ctx.Report(source.Span{File: ctx.File.ID, Start: start, End: end}, "trailing whitespace")
	}
}

func checkFinalNewline(ctx *Context) {
	if lexer.EndsWithNewline(ctx.File) {
		return
	}
	end := uint32(len(ctx.File.Content))
	ctx.Report(source.Span{File: ctx.File.ID, Start: end, End: end}, "file does not end with a newline")
}

func checkBracePlacement(ctx *Context) {
	ctx.Index.EachScope(func(_ structure.ScopeID, sc *structure.Scope) {
		switch sc.Kind {
		case structure.ScopeFunction, structure.ScopeSwitch, structure.ScopeBlock:
		default:
			return
		}
		brace := ctx.Tokens[sc.TokLo]
		// headerless blocks have nothing to align against
		if sc.HeaderSpan.Start == brace.Span.Start {
			return
		}
		braceLine := lineAt(ctx, brace.Span.Start)
		headerLine := lineAt(ctx, sc.HeaderSpan.Start)
		if braceLine == lineAt(ctx, sc.HeaderSpan.End-1) {
			ctx.Report(brace.Span, "opening brace must begin a new line")
			return
		}
		braceFact := ctx.Lines[braceLine-1]
		headerFact := ctx.Lines[headerLine-1]
		lead := braceFact.LeadingSpaces + braceFact.LeadingTabs
		if braceFact.Start+lead != brace.Span.Start {
			ctx.Report(brace.Span, "opening brace must be the first character on its line")
			return
		}
		if braceFact.LeadingSpaces != headerFact.LeadingSpaces {
			ctx.Report(brace.Span,
				fmt.Sprintf("opening brace indented %d spaces, statement uses %d",
					braceFact.LeadingSpaces, headerFact.LeadingSpaces))
		}
	})
}

// matchingRParen scans forward from the '(' at index i to its ')'.
func matchingRParen(ctx *Context, i int) int {
	depth := 0
	for k := i; k < len(ctx.Tokens); k++ {
		switch ctx.Tokens[k].Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return -1
}

func checkAlwaysBrace(ctx *Context) {
	for i, tok := range ctx.Tokens {
		switch tok.Kind {
		case token.KwIf, token.KwFor, token.KwWhile:
			// the while of a do-while controls nothing
			if tok.Kind == token.KwWhile && i > 0 && ctx.Tokens[i-1].Kind == token.RBrace {
				continue
			}
			if i+1 >= len(ctx.Tokens) || ctx.Tokens[i+1].Kind != token.LParen {
				continue
			}
			rp := matchingRParen(ctx, i+1)
			if rp < 0 || rp+1 >= len(ctx.Tokens) {
				continue
			}
			if ctx.Tokens[rp+1].Kind != token.LBrace {
				ctx.Report(tok.Span, fmt.Sprintf("%s body must be braced", tok.Text))
			}

		case token.KwElse:
			if i+1 >= len(ctx.Tokens) {
				continue
			}
			next := ctx.Tokens[i+1].Kind
			if next != token.LBrace && next != token.KwIf {
				ctx.Report(tok.Span, "else body must be braced")
			}

		case token.KwDo:
			if i+1 < len(ctx.Tokens) && ctx.Tokens[i+1].Kind != token.LBrace {
				ctx.Report(tok.Span, "do body must be braced")
			}
		}
	}
}

// binaryPlusMinus resolves the operators whose unary and binary forms share
// a spelling: + and - read as binary when the preceding token can end an
// expression.
func binaryPlusMinus(prev, tok token.Token) bool {
	if tok.Kind != token.Plus && tok.Kind != token.Minus {
		return false
	}
	return prev.IsIdent() || prev.IsLiteral() ||
		prev.Kind == token.RParen || prev.Kind == token.RBracket
}

func checkOperatorSpacing(ctx *Context) {
	for i := 1; i < len(ctx.Tokens)-1; i++ {
		tok := ctx.Tokens[i]
		prev := ctx.Tokens[i-1]
		next := ctx.Tokens[i+1]
		if !tok.IsBinaryOperator() && !binaryPlusMinus(prev, tok) {
			continue
		}
		if next.Kind == token.EOF {
			continue
		}
		if lineAt(ctx, prev.Span.End-1) == lineAt(ctx, tok.Span.Start) {
			if !singleSpaceBetween(ctx, prev.Span.End, tok.Span.Start) {
				ctx.Report(tok.Span,
					fmt.Sprintf("operator %q must be preceded by a single space", tok.Text))
				continue
			}
		}
		if lineAt(ctx, tok.Span.End-1) == lineAt(ctx, next.Span.Start) {
			if !singleSpaceBetween(ctx, tok.Span.End, next.Span.Start) {
				ctx.Report(tok.Span,
					fmt.Sprintf("operator %q must be followed by a single space", tok.Text))
			}
		}
	}
}

func singleSpaceBetween(ctx *Context, lo, hi uint32) bool {
	return hi-lo == 1 && ctx.File.Content[lo] == ' '
}

func checkHexLiteralCase(ctx *Context) {
	for _, tok := range ctx.Tokens {
		if tok.Kind != token.IntLit {
			continue
		}
		text := tok.Text
		if strings.HasPrefix(text, "0X") {
			ctx.Report(tok.Span, "hex literal prefix must be lowercase 0x")
			continue
		}
		if !strings.HasPrefix(text, "0x") {
			continue
		}
		for k := 2; k < len(text); k++ {
			b := text[k]
			if !isHexDigit(b) {
				break // integer suffix
			}
			if b >= 'a' && b <= 'f' {
				ctx.Report(tok.Span, "hex digits must be uppercase")
				break
			}
		}
	}
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}
