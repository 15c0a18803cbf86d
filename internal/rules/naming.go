package rules

import (
	"fmt"
	"strings"

	"cstyle/internal/source"
	"cstyle/internal/structure"
)

// isPascalSegment matches one PascalCase word: Uart, AdcDriver, Crc32.
func isPascalSegment(s string) bool {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		b := s[i]
		if !(b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9') {
			return false
		}
	}
	return true
}

// isPascalName matches PascalCase with an optional module separator, the
// documented form for functions and types: StartTimer, Uart_Init.
func isPascalName(s string) bool {
	for _, seg := range strings.Split(s, "_") {
		if !isPascalSegment(seg) {
			return false
		}
	}
	return true
}

// isLowerCamel matches lowerCamelCase: count, rxByteCount.
func isLowerCamel(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		b := s[i]
		if !(b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9') {
			return false
		}
	}
	return true
}

// isUpperSnake matches UPPER_SNAKE_CASE: MAX_RETRIES, CRC32_SEED.
func isUpperSnake(s string) bool {
	if s == "" {
		return false
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	prevUnderscore := false
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b >= 'A' && b <= 'Z' || b >= '0' && b <= '9':
			prevUnderscore = false
		case b == '_':
			if prevUnderscore {
				return false
			}
			prevUnderscore = true
		default:
			return false
		}
	}
	return !prevUnderscore
}

// prefixedLowerCamel matches prefix + lowerCamelCase, used for g_/s_ names.
func prefixedLowerCamel(s, prefix string) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	return isLowerCamel(s[len(prefix):])
}

func checkSymbols(ctx *Context, kind structure.SymbolKind, bad func(name string) bool, msg string) {
	ctx.Index.EachSymbol(func(_ structure.SymbolID, sym *structure.Symbol) {
		if sym.Kind != kind {
			return
		}
		if bad(sym.Name) {
			ctx.Report(sym.Span, fmt.Sprintf(msg, sym.Name))
		}
	})
}

func checkFunctionNaming(ctx *Context) {
	checkSymbols(ctx, structure.SymbolFunction,
		func(n string) bool { return !isPascalName(n) },
		"function %q is not PascalCase (expected e.g. Uart_Init)")
}

func checkTypeNaming(ctx *Context) {
	checkSymbols(ctx, structure.SymbolType,
		func(n string) bool { return !isPascalName(n) },
		"type %q is not PascalCase")
}

func checkGlobalNaming(ctx *Context) {
	checkSymbols(ctx, structure.SymbolGlobal,
		func(n string) bool { return !prefixedLowerCamel(n, "g_") },
		"global %q does not match g_ followed by lowerCamelCase")
}

func checkStaticNaming(ctx *Context) {
	checkSymbols(ctx, structure.SymbolStatic,
		func(n string) bool { return !prefixedLowerCamel(n, "s_") },
		"static %q does not match s_ followed by lowerCamelCase")
}

func checkLocalNaming(ctx *Context) {
	checkSymbols(ctx, structure.SymbolLocal,
		func(n string) bool { return !isLowerCamel(n) },
		"local %q is not lowerCamelCase")
}

func checkParameterNaming(ctx *Context) {
	checkSymbols(ctx, structure.SymbolParameter,
		func(n string) bool { return !isLowerCamel(n) },
		"parameter %q is not lowerCamelCase")
}

func checkConstantNaming(ctx *Context) {
	// the canonical include guard carries a leading underscore by design
	guard := ""
	if source.IsHeaderPath(ctx.File.Path) {
		guard = expectedGuard(ctx.File.Path)
	}
	ctx.Index.EachSymbol(func(_ structure.SymbolID, sym *structure.Symbol) {
		if sym.Kind != structure.SymbolConstant && sym.Kind != structure.SymbolMacroDefine {
			return
		}
		if sym.Kind == structure.SymbolMacroDefine && sym.Name == guard {
			return
		}
		if !isUpperSnake(sym.Name) {
			ctx.Report(sym.Span, fmt.Sprintf("constant %q is not UPPER_SNAKE_CASE", sym.Name))
		}
	})
}

// splitSegments breaks an identifier into comparable words: the g_/s_
// prefix is dropped, snake segments split at underscores, camel segments at
// case boundaries. AdcBufSize -> [adc, buf, size].
func splitSegments(name string) []string {
	for _, p := range []string{"g_", "s_"} {
		if strings.HasPrefix(name, p) {
			name = name[len(p):]
			break
		}
	}
	var segs []string
	for _, part := range strings.Split(name, "_") {
		start := 0
		for i := 1; i < len(part); i++ {
			if part[i] >= 'A' && part[i] <= 'Z' && part[i-1] >= 'a' && part[i-1] <= 'z' {
				segs = append(segs, part[start:i])
				start = i
			}
		}
		if start < len(part) {
			segs = append(segs, part[start:])
		}
	}
	return segs
}

func checkAbbreviations(ctx *Context) {
	blacklist := make(map[string]struct{})
	for _, s := range ctx.Strings("abbreviations") {
		blacklist[strings.ToLower(s)] = struct{}{}
	}
	if len(blacklist) == 0 {
		return
	}
	whitelist := make(map[string]struct{})
	for _, s := range ctx.Strings("acronyms") {
		whitelist[strings.ToUpper(s)] = struct{}{}
	}

	ctx.Index.EachSymbol(func(_ structure.SymbolID, sym *structure.Symbol) {
		for _, seg := range splitSegments(sym.Name) {
			if _, ok := whitelist[strings.ToUpper(seg)]; ok {
				continue
			}
			if _, ok := blacklist[strings.ToLower(seg)]; ok {
				ctx.Report(sym.Span,
					fmt.Sprintf("identifier %q contains blacklisted abbreviation %q", sym.Name, seg))
			}
		}
	})
}
