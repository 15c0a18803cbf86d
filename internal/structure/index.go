package structure

import (
	"cstyle/internal/source"
)

// Index is the structural view of one file: the scope tree plus the symbol
// table. It is immutable once Build returns.
type Index struct {
	File    *source.File
	Scopes  *Scopes
	Symbols *Symbols
	Root    ScopeID
	// Partial is set when the brace structure did not balance. Rules that
	// depend on scope shape skip partial files instead of guessing.
	Partial bool
}

// SymbolsIn returns the symbols declared directly in the given scope.
func (ix *Index) SymbolsIn(id ScopeID) []SymbolID {
	sc := ix.Scopes.Get(id)
	if sc == nil {
		return nil
	}
	return sc.Symbols
}

// EachScope visits every scope in allocation order (parents before children).
func (ix *Index) EachScope(visit func(ScopeID, *Scope)) {
	for i := range ix.Scopes.Data() {
		id := ScopeID(i + 1)
		visit(id, ix.Scopes.Get(id))
	}
}

// EachSymbol visits every symbol in declaration order.
func (ix *Index) EachSymbol(visit func(SymbolID, *Symbol)) {
	for i := range ix.Symbols.Data() {
		id := SymbolID(i + 1)
		visit(id, ix.Symbols.Get(id))
	}
}

// EnclosingFunction walks up from id to the nearest Function scope.
func (ix *Index) EnclosingFunction(id ScopeID) ScopeID {
	for id.IsValid() {
		sc := ix.Scopes.Get(id)
		if sc == nil {
			return NoScopeID
		}
		if sc.Kind == ScopeFunction {
			return id
		}
		id = sc.Parent
	}
	return NoScopeID
}

// FunctionSymbol returns the Function symbol declared under the file scope
// whose name matches the function scope's name, if any.
func (ix *Index) FunctionSymbol(fn *Scope) *Symbol {
	root := ix.Scopes.Get(ix.Root)
	if root == nil {
		return nil
	}
	for _, sid := range root.Symbols {
		sym := ix.Symbols.Get(sid)
		if sym != nil && sym.Kind == SymbolFunction && sym.Name == fn.Name {
			return sym
		}
	}
	return nil
}
