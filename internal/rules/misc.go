package rules

import (
	"fmt"
	"strings"

	"cstyle/internal/source"
	"cstyle/internal/structure"
	"cstyle/internal/token"
)

func checkCommentStyle(ctx *Context) {
	if !ctx.Bool("line-comments-only") {
		return
	}
	for _, tok := range ctx.Tokens {
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaBlockComment {
				ctx.Report(tr.Span, "block comment; use // comments")
			}
		}
	}
}

func checkSingleReturnPath(ctx *Context) {
	max := ctx.Int("max-returns")
	ctx.Index.EachScope(func(_ structure.ScopeID, sc *structure.Scope) {
		if sc.Kind != structure.ScopeFunction {
			return
		}
		count := 0
		for k := sc.TokLo + 1; k < sc.TokHi; k++ {
			if ctx.Tokens[k].Kind == token.KwReturn {
				count++
			}
		}
		if count > max {
			ctx.Report(sc.HeaderSpan,
				fmt.Sprintf("function %s has %d return statements, limit is %d", sc.Name, count, max))
		}
	})
}

// constOperand reports whether tok reads as a compile-time constant: a
// literal or an UPPER_SNAKE_CASE identifier.
func constOperand(tok token.Token) bool {
	if tok.IsLiteral() {
		return true
	}
	return tok.Kind == token.Ident && isUpperSnake(tok.Text)
}

func checkYodaComparison(ctx *Context) {
	for i := 1; i < len(ctx.Tokens)-1; i++ {
		tok := ctx.Tokens[i]
		if tok.Kind != token.EqEq && tok.Kind != token.BangEq {
			continue
		}
		left := ctx.Tokens[i-1]
		right := ctx.Tokens[i+1]
		if left.Kind != token.Ident || constOperand(left) {
			continue
		}
		if !constOperand(right) {
			continue
		}
		ctx.Report(left.Span.Cover(right.Span),
			fmt.Sprintf("constant %s belongs on the left of %s", right.Text, tok.Text))
	}
}

func checkSwitchDefault(ctx *Context) {
	ctx.Index.EachScope(func(_ structure.ScopeID, sc *structure.Scope) {
		if sc.Kind != structure.ScopeSwitch {
			return
		}
		depth := 1
		for k := sc.TokLo + 1; k < sc.TokHi; k++ {
			switch ctx.Tokens[k].Kind {
			case token.LBrace:
				depth++
			case token.RBrace:
				depth--
			case token.KwDefault:
				if depth == 1 {
					return
				}
			}
		}
		ctx.Report(sc.HeaderSpan, "switch has no default case")
	})
}

func checkMacroParameterParen(ctx *Context) {
	for _, tok := range ctx.Tokens {
		if tok.Kind != token.Directive {
			continue
		}
		def, ok := structure.ParseDefine(tok)
		if !ok || !def.FunctionLike || def.Body == "" {
			continue
		}
		if strings.Contains(def.Body, "++") || strings.Contains(def.Body, "--") {
			ctx.Report(def.BodySpan,
				fmt.Sprintf("macro %s body uses ++/-- on its arguments", def.Name))
			continue
		}
		if p, ok := unparenthesizedParam(def); ok {
			ctx.ReportWithNote(def.BodySpan,
				fmt.Sprintf("macro %s: parameter %q is not parenthesized in the body", def.Name, p.Name),
				p.Span, "parameter declared here")
			continue
		}
		if !bodyFullyParenthesized(def.Body) {
			ctx.Report(def.BodySpan,
				fmt.Sprintf("macro %s: compound body is not parenthesized", def.Name))
		}
	}
}

// unparenthesizedParam finds the first parameter used in the macro body
// without an immediately surrounding pair of parentheses.
func unparenthesizedParam(def structure.Define) (structure.DefineParam, bool) {
	body := def.Body
	for _, p := range def.Params {
		for j := 0; j+len(p.Name) <= len(body); j++ {
			if body[j:j+len(p.Name)] != p.Name {
				continue
			}
			if j > 0 && isWordByte(body[j-1]) {
				continue
			}
			after := j + len(p.Name)
			if after < len(body) && isWordByte(body[after]) {
				continue
			}
			// stringize/paste operators take the raw spelling
			if j > 0 && body[j-1] == '#' {
				continue
			}
			prev := lastNonSpace(body, j)
			next := firstNonSpace(body, after)
			if prev != '(' || next != ')' {
				return p, true
			}
		}
	}
	return structure.DefineParam{}, false
}

// bodyFullyParenthesized accepts a single-word body or one wrapped in a
// matching outer pair of parentheses.
func bodyFullyParenthesized(body string) bool {
	body = strings.TrimSpace(body)
	if body == "" {
		return true
	}
	if body[0] != '(' {
		return singleWord(body)
	}
	depth := 0
	for j := 0; j < len(body); j++ {
		switch body[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j == len(body)-1
			}
		}
	}
	return false
}

func singleWord(s string) bool {
	for j := 0; j < len(s); j++ {
		if !isWordByte(s[j]) {
			return false
		}
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

func lastNonSpace(s string, i int) byte {
	for i > 0 {
		i--
		if s[i] != ' ' && s[i] != '\t' {
			return s[i]
		}
	}
	return 0
}

func firstNonSpace(s string, i int) byte {
	for i < len(s) {
		if s[i] != ' ' && s[i] != '\t' {
			return s[i]
		}
		i++
	}
	return 0
}

func checkMagicNumber(ctx *Context) {
	threshold := ctx.Int("threshold")
	if threshold <= 0 {
		return
	}
	type occurrence struct {
		span source.Span
		text string
	}
	var occs []occurrence
	counts := make(map[string]int)
	for i, tok := range ctx.Tokens {
		if tok.Kind != token.IntLit && tok.Kind != token.FloatLit {
			continue
		}
		if tok.Text == "0" || tok.Text == "1" {
			continue
		}
		if i > 0 && ctx.Tokens[i-1].Kind == token.KwCase {
			continue
		}
		if inConstStatement(ctx, i) {
			continue
		}
		occs = append(occs, occurrence{span: tok.Span, text: tok.Text})
		counts[tok.Text]++
	}
	for _, occ := range occs {
		if n := counts[occ.text]; n >= threshold {
			ctx.Report(occ.span,
				fmt.Sprintf("numeric literal %s appears %d times; give it a name", occ.text, n))
		}
	}
}

// inConstStatement scans back to the start of the enclosing statement and
// reports whether it binds the literal to a const declaration.
func inConstStatement(ctx *Context, i int) bool {
	for k := i - 1; k >= 0; k-- {
		switch ctx.Tokens[k].Kind {
		case token.Semicolon, token.LBrace, token.RBrace:
			return false
		case token.KwConst:
			return true
		}
	}
	return false
}

// expectedGuard derives the canonical guard macro from the file name:
// adc_driver.h -> _ADC_DRIVER_H.
func expectedGuard(path string) string {
	base := source.BaseName(path)
	var sb strings.Builder
	sb.WriteByte('_')
	for j := 0; j < len(base); j++ {
		b := base[j]
		switch {
		case b >= 'a' && b <= 'z':
			sb.WriteByte(b - 'a' + 'A')
		case b >= 'A' && b <= 'Z' || b >= '0' && b <= '9':
			sb.WriteByte(b)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// directiveParts splits a Directive token's text into the directive keyword
// and its first argument.
func directiveParts(text string) (kw, arg string) {
	text = strings.TrimPrefix(text, "#")
	fields := strings.Fields(text)
	if len(fields) > 0 {
		kw = fields[0]
	}
	if len(fields) > 1 {
		arg = fields[1]
	}
	return kw, arg
}

func checkHeaderGuard(ctx *Context) {
	if !source.IsHeaderPath(ctx.File.Path) {
		return
	}
	var directives []token.Token
	for _, tok := range ctx.Tokens {
		if tok.Kind == token.Directive {
			directives = append(directives, tok)
		}
	}
	fileStart := source.Span{File: ctx.File.ID, Start: 0, End: 0}
	if len(directives) == 0 {
		ctx.Report(fileStart, "header has no include guard")
		return
	}

	first := directives[0]
	kw, arg := directiveParts(first.Text)
	if kw == "pragma" && arg == "once" {
		if !ctx.Bool("allow-pragma-once") {
			ctx.Report(first.Span, "#pragma once is not an accepted include guard")
		}
		return
	}
	if kw != "ifndef" {
		ctx.Report(fileStart, "header has no include guard")
		return
	}
	want := expectedGuard(ctx.File.Path)
	if arg != want {
		ctx.Report(first.Span,
			fmt.Sprintf("include guard %s should be %s", arg, want))
		return
	}
	if len(directives) < 2 {
		ctx.Report(first.Span, "include guard #ifndef is not followed by a matching #define")
		return
	}
	kw2, arg2 := directiveParts(directives[1].Text)
	if kw2 != "define" || arg2 != arg {
		ctx.Report(directives[1].Span,
			fmt.Sprintf("include guard #ifndef %s is not followed by #define %s", arg, arg))
	}
}

func checkDynamicAllocation(ctx *Context) {
	banned := make(map[string]struct{})
	for _, s := range ctx.Strings("identifiers") {
		banned[s] = struct{}{}
	}
	for i, tok := range ctx.Tokens {
		if tok.Kind != token.Ident {
			continue
		}
		if _, ok := banned[tok.Text]; !ok {
			continue
		}
		// new/delete are operators in C++, call syntax is not required
		if tok.Text != "new" && tok.Text != "delete" {
			if i+1 >= len(ctx.Tokens) || ctx.Tokens[i+1].Kind != token.LParen {
				continue
			}
		}
		ctx.Report(tok.Span, fmt.Sprintf("dynamic allocation via %s is banned", tok.Text))
	}
}
