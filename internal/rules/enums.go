package rules

import (
	"fmt"

	"cstyle/internal/structure"
	"cstyle/internal/token"
)

// wrapperStruct returns the struct scope directly wrapping the enum when the
// documented wrapper convention holds: struct and enum share a name, or the
// enum is anonymous inside a named struct.
func wrapperStruct(ctx *Context, enum *structure.Scope) *structure.Scope {
	parent := ctx.Index.Scopes.Get(enum.Parent)
	if parent == nil || parent.Kind != structure.ScopeStruct {
		return nil
	}
	if enum.Name != "" && parent.Name != enum.Name {
		return nil
	}
	return parent
}

func checkEnumStructWrapper(ctx *Context) {
	ctx.Index.EachScope(func(_ structure.ScopeID, sc *structure.Scope) {
		if sc.Kind != structure.ScopeEnum {
			return
		}
		if wrapperStruct(ctx, sc) == nil {
			name := sc.Name
			if name == "" {
				name = "<anonymous>"
			}
			ctx.Report(sc.HeaderSpan,
				fmt.Sprintf("enum %s is not wrapped in a struct of matching name", name))
		}
	})
}

// structHasValueMember scans the struct body outside the nested enum for a
// member named exactly "Value".
func structHasValueMember(ctx *Context, wrapper, enum *structure.Scope) bool {
	for k := wrapper.TokLo + 1; k < wrapper.TokHi; k++ {
		if k >= enum.TokLo && k <= enum.TokHi {
			k = enum.TokHi
			continue
		}
		if ctx.Tokens[k].Kind == token.Ident && ctx.Tokens[k].Text == "Value" {
			return true
		}
	}
	return false
}

func checkEnumValueMember(ctx *Context) {
	ctx.Index.EachScope(func(id structure.ScopeID, sc *structure.Scope) {
		if sc.Kind != structure.ScopeEnum {
			return
		}
		wrapper := wrapperStruct(ctx, sc)
		if wrapper == nil {
			// the wrapper rule already covers unwrapped enums
			return
		}
		if structHasValueMember(ctx, wrapper, sc) {
			return
		}
		for _, sid := range sc.Symbols {
			sym := ctx.Index.Symbols.Get(sid)
			if sym == nil || sym.Kind != structure.SymbolEnumValue {
				continue
			}
			ctx.ReportWithNote(sym.Span,
				fmt.Sprintf("enum value %q: wrapping struct lacks a Value member", sym.Name),
				wrapper.HeaderSpan, "wrapping struct declared here")
		}
	})
}
