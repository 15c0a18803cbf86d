package structure

import (
	"cstyle/internal/source"
)

// ScopeID addresses a scope inside the arena. 0 is the invalid sentinel.
type ScopeID uint32

// NoScopeID is the null scope reference.
const NoScopeID ScopeID = 0

// IsValid reports whether the ID references an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeFile               // root, one per file
	ScopeFunction           // function body
	ScopeBlock              // any other braced block
	ScopeSwitch             // switch statement body
	ScopeStruct             // struct body
	ScopeEnum               // enum body
	ScopeUnion              // union body
	ScopeMacro              // function-like macro definition
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeSwitch:
		return "switch"
	case ScopeStruct:
		return "struct"
	case ScopeEnum:
		return "enum"
	case ScopeUnion:
		return "union"
	case ScopeMacro:
		return "macro"
	default:
		return "invalid"
	}
}

// Scope models one lexical scope. Parent/Children form a tree rooted at the
// file scope; records live in an arena and reference each other by ID only.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID
	// Name is the associated identifier when one exists: function name,
	// struct/enum/union tag, macro name. Empty for blocks and the root.
	Name string
	// Span covers the whole scope including braces.
	Span source.Span
	// HeaderSpan covers the introducing construct: function signature up to
	// ')', the switch keyword, the struct/enum keyword and tag.
	HeaderSpan source.Span
	// TokLo/TokHi delimit the scope's token range in the file's token slice:
	// TokLo is the opening '{' (or the first header token for macros) and
	// TokHi the matching '}'. TokHi is len-1 for scopes clipped at EOF.
	TokLo, TokHi int
	Symbols      []SymbolID
	Children     []ScopeID
}
