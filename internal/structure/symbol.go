package structure

import (
	"cstyle/internal/source"
)

// SymbolID addresses a symbol inside the arena. 0 is the invalid sentinel.
type SymbolID uint32

// NoSymbolID is the null symbol reference.
const NoSymbolID SymbolID = 0

// IsValid reports whether the ID references an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// SymbolKind classifies a declaration by its lexical context.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolGlobal
	SymbolStatic
	SymbolLocal
	SymbolParameter
	SymbolConstant
	SymbolMacroDefine
	SymbolFunction
	SymbolType
	SymbolEnumValue
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolGlobal:
		return "global"
	case SymbolStatic:
		return "static"
	case SymbolLocal:
		return "local"
	case SymbolParameter:
		return "parameter"
	case SymbolConstant:
		return "constant"
	case SymbolMacroDefine:
		return "macro"
	case SymbolFunction:
		return "function"
	case SymbolType:
		return "type"
	case SymbolEnumValue:
		return "enum value"
	default:
		return "invalid"
	}
}

// Symbol is one declaration found by the indexer. Append-only: once the
// indexer finishes a file no symbol is mutated.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Scope ScopeID     // declaring scope
	Span  source.Span // the declared name
	// TypeText is the raw declared type, e.g. "static const uint8_t". Empty
	// when no type tokens precede the name (macros, enum values).
	TypeText string
}
