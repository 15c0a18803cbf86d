package structure

import (
	"cstyle/internal/source"
	"cstyle/internal/token"
)

// DefineParam is one parameter of a function-like macro.
type DefineParam struct {
	Name string
	Span source.Span
}

// Define is the parsed form of a #define directive. Offsets are absolute
// because the directive token's text is the exact source slice.
type Define struct {
	Name         string
	NameSpan     source.Span
	FunctionLike bool
	Variadic     bool
	Params       []DefineParam
	Body         string
	BodySpan     source.Span
}

// ParseDefine extracts macro name, parameters and body from a Directive
// token. Returns false for any other directive.
func ParseDefine(tok token.Token) (Define, bool) {
	if tok.Kind != token.Directive {
		return Define{}, false
	}
	text := tok.Text
	base := tok.Span.Start

	i := 0
	if i >= len(text) || text[i] != '#' {
		return Define{}, false
	}
	i++
	i = skipDirectiveWS(text, i)

	kw := readWord(text, i)
	if kw != "define" {
		return Define{}, false
	}
	i += len(kw)
	i = skipDirectiveWS(text, i)

	name := readWord(text, i)
	if name == "" {
		return Define{}, false
	}
	def := Define{
		Name: name,
		NameSpan: source.Span{
			File:  tok.Span.File,
			Start: base + uint32(i),
			End:   base + uint32(i+len(name)),
		},
	}
	i += len(name)

	// '(' immediately after the name means function-like; with a space it is
	// part of the body
	if i < len(text) && text[i] == '(' {
		def.FunctionLike = true
		i++
		for i < len(text) && text[i] != ')' {
			i = skipDirectiveWS(text, i)
			if i < len(text) && text[i] == '.' {
				// "..." variadic marker
				for i < len(text) && text[i] == '.' {
					i++
				}
				def.Variadic = true
				i = skipDirectiveWS(text, i)
				if i < len(text) && text[i] == ',' {
					i++
				}
				continue
			}
			p := readWord(text, i)
			if p == "" {
				break
			}
			def.Params = append(def.Params, DefineParam{
				Name: p,
				Span: source.Span{
					File:  tok.Span.File,
					Start: base + uint32(i),
					End:   base + uint32(i+len(p)),
				},
			})
			i += len(p)
			i = skipDirectiveWS(text, i)
			if i < len(text) && text[i] == ',' {
				i++
			}
		}
		if i < len(text) && text[i] == ')' {
			i++
		}
	}

	i = skipDirectiveWS(text, i)
	def.Body = text[i:]
	def.BodySpan = source.Span{
		File:  tok.Span.File,
		Start: base + uint32(i),
		End:   tok.Span.End,
	}
	return def, true
}

func skipDirectiveWS(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case ' ', '\t':
			i++
		case '\\':
			// backslash-newline continuation counts as whitespace
			if i+1 < len(text) && text[i+1] == '\n' {
				i += 2
			} else {
				return i
			}
		default:
			return i
		}
	}
	return i
}

func readWord(text string, i int) string {
	start := i
	for i < len(text) {
		b := text[i]
		if b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (i > start && b >= '0' && b <= '9') {
			i++
			continue
		}
		break
	}
	return text[start:i]
}

// handleDirective records the MacroDefine symbol (and a Macro scope for
// function-like macros) for the Directive token at index i.
func (b *Builder) handleDirective(i int) {
	def, ok := ParseDefine(b.tokens[i])
	if !ok {
		return
	}
	root := b.stack[0]
	sid := b.symbols.New(Symbol{
		Name:  def.Name,
		Kind:  SymbolMacroDefine,
		Scope: root,
		Span:  def.NameSpan,
	})
	b.addToScope(root, sid)

	if def.FunctionLike {
		id := b.scopes.New(ScopeMacro, root, def.Name, b.tokens[i].Span)
		sc := b.scopes.Get(id)
		sc.TokLo = i
		sc.TokHi = i
		sc.HeaderSpan = def.NameSpan
	}
}
