package structure

import (
	"strings"

	"cstyle/internal/diag"
	"cstyle/internal/source"
	"cstyle/internal/token"
)

// Builder walks a token stream and produces the structural Index.
type Builder struct {
	file     *source.File
	tokens   []token.Token
	reporter diag.Reporter

	scopes  *Scopes
	symbols *Symbols
	stack   []ScopeID
	partial bool

	// stmtStart is the token index where the current statement began.
	stmtStart int
}

// Build indexes one file. The reporter may be nil.
func Build(file *source.File, tokens []token.Token, reporter diag.Reporter) *Index {
	b := &Builder{
		file:     file,
		tokens:   tokens,
		reporter: reporter,
		scopes:   NewScopes(0),
		symbols:  NewSymbols(0),
	}
	return b.run()
}

func (b *Builder) run() *Index {
	fileSpan := source.Span{File: b.file.ID, Start: 0, End: uint32(len(b.file.Content))}
	root := b.scopes.New(ScopeFile, NoScopeID, "", fileSpan)
	rootScope := b.scopes.Get(root)
	rootScope.TokLo = 0
	rootScope.TokHi = len(b.tokens) - 1
	b.stack = []ScopeID{root}

	for i := 0; i < len(b.tokens); i++ {
		tok := b.tokens[i]
		switch tok.Kind {
		case token.EOF:
			// fall through to the close-out below

		case token.Directive:
			b.handleDirective(i)
			b.stmtStart = i + 1

		case token.LBrace:
			b.openScopeAt(i)
			b.stmtStart = i + 1

		case token.RBrace:
			if len(b.stack) > 1 {
				top := b.scopes.Get(b.top())
				top.TokHi = i
				top.Span.End = tok.Span.End
				b.stack = b.stack[:len(b.stack)-1]
			} else {
				b.structErr(diag.StructUnbalancedBraces, tok.Span, "unmatched '}'")
			}
			b.stmtStart = i + 1

		case token.Semicolon:
			b.analyzeStatement(b.stmtStart, i)
			b.stmtStart = i + 1

		case token.Colon:
			// case/default labels end a statement boundary
			if b.topKind() == ScopeSwitch {
				b.stmtStart = i + 1
			}

		case token.Ident:
			if b.topKind() == ScopeEnum {
				b.maybeEnumValue(i)
			}
		}
	}

	if open := b.unclosedParen(); open >= 0 {
		b.structErr(diag.StructUnclosedParen, b.tokens[open].Span, "unclosed '('")
		b.partial = true
	}

	if len(b.stack) > 1 {
		// clip every open scope at EOF and degrade to a partial index
		last := len(b.tokens) - 1
		for len(b.stack) > 1 {
			top := b.scopes.Get(b.top())
			top.TokHi = last
			top.Span.End = uint32(len(b.file.Content))
			b.stack = b.stack[:len(b.stack)-1]
		}
		b.structErr(diag.StructUnbalancedBraces,
			source.Span{File: b.file.ID, Start: uint32(len(b.file.Content)), End: uint32(len(b.file.Content))},
			"unbalanced braces: scopes still open at end of file")
		b.partial = true
	}

	return &Index{
		File:    b.file,
		Scopes:  b.scopes,
		Symbols: b.symbols,
		Root:    root,
		Partial: b.partial,
	}
}

// unclosedParen returns the token index of the first '(' still open at end
// of file, or -1 when every paren pairs up.
func (b *Builder) unclosedParen() int {
	var open []int
	for i, tok := range b.tokens {
		switch tok.Kind {
		case token.LParen:
			open = append(open, i)
		case token.RParen:
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
	}
	if len(open) > 0 {
		return open[0]
	}
	return -1
}

func (b *Builder) top() ScopeID { return b.stack[len(b.stack)-1] }

func (b *Builder) topKind() ScopeKind {
	sc := b.scopes.Get(b.top())
	if sc == nil {
		return ScopeInvalid
	}
	return sc.Kind
}

func (b *Builder) structErr(code diag.Code, sp source.Span, msg string) {
	if b.reporter != nil {
		b.reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

// openScopeAt classifies the '{' at token index i and pushes the new scope.
func (b *Builder) openScopeAt(i int) {
	kind := ScopeBlock
	name := ""
	header := b.tokens[i].Span

	if i > 0 {
		prev := b.tokens[i-1]
		switch prev.Kind {
		case token.RParen:
			if j := b.matchingLParen(i - 1); j > 0 {
				before := b.tokens[j-1]
				switch {
				case before.Kind == token.KwSwitch:
					kind = ScopeSwitch
					header = before.Span
				case before.Kind == token.KwIf || before.Kind == token.KwFor || before.Kind == token.KwWhile:
					kind = ScopeBlock
					header = before.Span
				case before.Kind == token.Ident && b.topKind() == ScopeFile && b.looksLikeSignature(j):
					kind = ScopeFunction
					name = before.Text
					header = b.signatureSpan(j-1, i-1)
					b.recordFunction(j - 1)
				}
			}

		case token.KwEnum, token.KwStruct, token.KwUnion:
			kind = taggedKind(prev.Kind)
			header = prev.Span

		case token.Ident:
			if i > 1 {
				kw := b.tokens[i-2]
				switch kw.Kind {
				case token.KwEnum, token.KwStruct, token.KwUnion:
					kind = taggedKind(kw.Kind)
					name = prev.Text
					header = kw.Span.Cover(prev.Span)
					b.recordTypeTag(prev)
				}
			}
		}
	}

	id := b.scopes.New(kind, b.top(), name, b.tokens[i].Span)
	sc := b.scopes.Get(id)
	sc.TokLo = i
	sc.TokHi = len(b.tokens) - 1 // fixed up when the matching '}' closes it
	sc.HeaderSpan = header
	b.stack = append(b.stack, id)

	if kind == ScopeFunction {
		b.attachParams(id, i)
	}
}

func taggedKind(k token.Kind) ScopeKind {
	switch k {
	case token.KwEnum:
		return ScopeEnum
	case token.KwUnion:
		return ScopeUnion
	default:
		return ScopeStruct
	}
}

// matchingLParen scans backwards from the ')' at index i to its '('.
func (b *Builder) matchingLParen(i int) int {
	depth := 0
	for j := i; j >= 0; j-- {
		switch b.tokens[j].Kind {
		case token.RParen:
			depth++
		case token.LParen:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// looksLikeSignature reports whether the Ident before the '(' at index j is
// preceded by a type-like token, i.e. this is a definition header rather
// than a call or a control statement.
func (b *Builder) looksLikeSignature(j int) bool {
	if j < 2 {
		return false
	}
	before := b.tokens[j-2]
	return before.IsTypeKeyword() || before.Kind == token.Ident || before.Kind == token.Star
}

// signatureSpan covers the function header from the first type token of the
// statement through the closing ')'.
func (b *Builder) signatureSpan(nameIdx, rparenIdx int) source.Span {
	start := b.declStart(nameIdx)
	return b.tokens[start].Span.Cover(b.tokens[rparenIdx].Span)
}

// declStart walks backwards over the type/qualifier tokens preceding the
// declared name and returns the index of the first one.
func (b *Builder) declStart(nameIdx int) int {
	start := nameIdx
	for k := nameIdx - 1; k >= 0; k-- {
		t := b.tokens[k]
		if t.IsTypeKeyword() || t.Kind == token.Ident || t.Kind == token.Star {
			start = k
			continue
		}
		break
	}
	return start
}

func (b *Builder) recordFunction(nameIdx int) {
	name := b.tokens[nameIdx]
	start := b.declStart(nameIdx)
	sid := b.symbols.New(Symbol{
		Name:     name.Text,
		Kind:     SymbolFunction,
		Scope:    b.top(),
		Span:     name.Span,
		TypeText: b.tokenText(start, nameIdx-1),
	})
	b.addToScope(b.top(), sid)
}

func (b *Builder) recordTypeTag(name token.Token) {
	sid := b.symbols.New(Symbol{
		Name:  name.Text,
		Kind:  SymbolType,
		Scope: b.top(),
		Span:  name.Span,
	})
	b.addToScope(b.top(), sid)
}

// attachParams declares Parameter symbols for the function scope opened at
// the '{' with token index braceIdx.
func (b *Builder) attachParams(fn ScopeID, braceIdx int) {
	rparen := braceIdx - 1
	lparen := b.matchingLParen(rparen)
	if lparen < 0 {
		return
	}
	for _, seg := range b.splitTopLevel(lparen+1, rparen) {
		nameIdx := b.lastDeclName(seg.lo, seg.hi)
		if nameIdx < 0 {
			continue
		}
		name := b.tokens[nameIdx]
		// a lone type keyword segment ("void") has no parameter name
		if nameIdx == seg.lo && !name.IsIdent() {
			continue
		}
		if !name.IsIdent() {
			continue
		}
		sid := b.symbols.New(Symbol{
			Name:     name.Text,
			Kind:     SymbolParameter,
			Scope:    fn,
			Span:     name.Span,
			TypeText: b.tokenText(seg.lo, nameIdx-1),
		})
		b.addToScope(fn, sid)
	}
}

type segment struct{ lo, hi int } // token index range, inclusive

// splitTopLevel splits tokens[lo:hi) into comma-separated segments at
// paren/bracket depth zero.
func (b *Builder) splitTopLevel(lo, hi int) []segment {
	var segs []segment
	depth := 0
	start := lo
	for k := lo; k < hi; k++ {
		switch b.tokens[k].Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			depth--
		case token.Comma:
			if depth == 0 {
				if k > start {
					segs = append(segs, segment{start, k - 1})
				}
				start = k + 1
			}
		}
	}
	if hi > start {
		segs = append(segs, segment{start, hi - 1})
	}
	return segs
}

// lastDeclName finds the declared identifier of a declarator segment: the
// last Ident that is not inside brackets and not part of an array size.
func (b *Builder) lastDeclName(lo, hi int) int {
	depth := 0
	for k := hi; k >= lo; k-- {
		switch b.tokens[k].Kind {
		case token.RBracket, token.RParen:
			depth++
		case token.LBracket, token.LParen:
			depth--
		case token.Ident:
			if depth == 0 {
				return k
			}
		}
	}
	return -1
}

// analyzeStatement inspects tokens[lo:hi) (a ';'-terminated statement) for a
// declaration and records the symbol(s) it introduces.
func (b *Builder) analyzeStatement(lo, hi int) {
	if hi <= lo {
		return
	}
	topKind := b.topKind()
	if topKind != ScopeFile && topKind != ScopeFunction && topKind != ScopeBlock && topKind != ScopeSwitch {
		return
	}

	first := b.tokens[lo]
	if first.Kind == token.KwTypedef {
		b.recordTypedef(lo, hi)
		return
	}
	if first.Kind == token.KwReturn || first.Kind == token.KwBreak ||
		first.Kind == token.KwContinue || first.Kind == token.KwGoto ||
		first.Kind == token.KwCase || first.Kind == token.KwDefault {
		return
	}
	// a declaration starts with a type keyword, a qualifier, or a type name
	if !first.IsTypeKeyword() && first.Kind != token.Ident {
		return
	}

	// cut at the initializer if present
	declHi := hi
	depth := 0
	for k := lo; k < hi; k++ {
		switch b.tokens[k].Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			depth--
		case token.Assign:
			if depth == 0 {
				declHi = k
			}
		}
		if declHi != hi {
			break
		}
	}

	seg := b.tokens[lo:declHi]
	if len(seg) < 2 {
		return
	}

	// function prototype at file scope: type Ident ( ... ) ;
	if topKind == ScopeFile {
		if nameIdx, ok := b.prototypeName(lo, declHi); ok {
			name := b.tokens[nameIdx]
			sid := b.symbols.New(Symbol{
				Name:     name.Text,
				Kind:     SymbolFunction,
				Scope:    b.top(),
				Span:     name.Span,
				TypeText: b.tokenText(lo, nameIdx-1),
			})
			b.addToScope(b.top(), sid)
			return
		}
	}

	// split the declarator list first: in `int a, b, c;` only the first
	// segment carries the type, the rest are bare declarators
	segs := b.splitTopLevel(lo, declHi)
	if len(segs) == 0 {
		return
	}
	nameIdx := b.lastDeclName(segs[0].lo, segs[0].hi)
	if nameIdx <= lo {
		return
	}
	prev := b.tokens[nameIdx-1]
	if !prev.IsTypeKeyword() && prev.Kind != token.Ident && prev.Kind != token.Star {
		return
	}
	// reject call-like statements: name directly followed by '('
	if nameIdx+1 < declHi && b.tokens[nameIdx+1].Kind == token.LParen {
		return
	}

	b.recordVariable(lo, nameIdx-1, nameIdx)

	for _, s := range segs[1:] {
		if extraIdx := b.lastDeclName(s.lo, s.hi); extraIdx >= 0 {
			b.recordVariable(lo, nameIdx-1, extraIdx)
		}
	}
}

// prototypeName matches `type Ident ( ... ) ;` and returns the Ident index.
func (b *Builder) prototypeName(lo, hi int) (int, bool) {
	if hi-lo < 4 {
		return 0, false
	}
	if b.tokens[hi-1].Kind != token.RParen {
		return 0, false
	}
	lparen := b.matchingLParen(hi - 1)
	if lparen <= lo {
		return 0, false
	}
	name := b.tokens[lparen-1]
	if !name.IsIdent() {
		return 0, false
	}
	before := b.tokens[lparen-2]
	if !before.IsTypeKeyword() && before.Kind != token.Ident && before.Kind != token.Star {
		return 0, false
	}
	return lparen - 1, true
}

func (b *Builder) recordVariable(typeLo, typeHi, nameIdx int) {
	name := b.tokens[nameIdx]
	typeText := b.tokenText(typeLo, typeHi)

	kind := SymbolLocal
	switch {
	case b.hasKind(typeLo, typeHi+1, token.KwStatic):
		kind = SymbolStatic
	case b.hasKind(typeLo, typeHi+1, token.KwConst):
		kind = SymbolConstant
	case b.topKind() == ScopeFile:
		kind = SymbolGlobal
	case strings.HasPrefix(name.Text, "s_"):
		// the s_ prefix convention marks function-local statics even when
		// the keyword is out of sight
		kind = SymbolStatic
	}

	sid := b.symbols.New(Symbol{
		Name:     name.Text,
		Kind:     kind,
		Scope:    b.top(),
		Span:     name.Span,
		TypeText: typeText,
	})
	b.addToScope(b.top(), sid)
}

// hasKind reports whether any of tokens[lo:hi) has the given kind.
func (b *Builder) hasKind(lo, hi int, kind token.Kind) bool {
	for k := lo; k < hi; k++ {
		if b.tokens[k].Kind == kind {
			return true
		}
	}
	return false
}

func (b *Builder) recordTypedef(lo, hi int) {
	nameIdx := b.lastDeclName(lo+1, hi-1)
	if nameIdx < 0 {
		return
	}
	name := b.tokens[nameIdx]
	sid := b.symbols.New(Symbol{
		Name:     name.Text,
		Kind:     SymbolType,
		Scope:    b.top(),
		Span:     name.Span,
		TypeText: b.tokenText(lo+1, nameIdx-1),
	})
	b.addToScope(b.top(), sid)
}

// maybeEnumValue records the Ident at index i as an EnumValue when it sits in
// value position inside an enum body.
func (b *Builder) maybeEnumValue(i int) {
	if i == 0 {
		return
	}
	prev := b.tokens[i-1]
	if prev.Kind != token.LBrace && prev.Kind != token.Comma {
		return
	}
	if i+1 < len(b.tokens) {
		next := b.tokens[i+1]
		if next.Kind != token.Comma && next.Kind != token.RBrace && next.Kind != token.Assign {
			return
		}
	}
	name := b.tokens[i]
	sid := b.symbols.New(Symbol{
		Name:  name.Text,
		Kind:  SymbolEnumValue,
		Scope: b.top(),
		Span:  name.Span,
	})
	b.addToScope(b.top(), sid)
}

func (b *Builder) addToScope(id ScopeID, sid SymbolID) {
	if sc := b.scopes.Get(id); sc != nil {
		sc.Symbols = append(sc.Symbols, sid)
	}
}

func (b *Builder) tokenText(lo, hi int) string {
	if hi < lo {
		return ""
	}
	var sb strings.Builder
	for k := lo; k <= hi; k++ {
		if k > lo {
			sb.WriteByte(' ')
		}
		sb.WriteString(b.tokens[k].Text)
	}
	return sb.String()
}
