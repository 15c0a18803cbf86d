package token

var keywords = map[string]Kind{
	"if":       KwIf,
	"else":     KwElse,
	"for":      KwFor,
	"while":    KwWhile,
	"do":       KwDo,
	"switch":   KwSwitch,
	"case":     KwCase,
	"default":  KwDefault,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"goto":     KwGoto,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"union":    KwUnion,
	"typedef":  KwTypedef,
	"static":   KwStatic,
	"const":    KwConst,
	"extern":   KwExtern,
	"volatile": KwVolatile,
	"inline":   KwInline,
	"sizeof":   KwSizeof,
	"void":     KwVoid,
	"char":     KwChar,
	"short":    KwShort,
	"int":      KwInt,
	"long":     KwLong,
	"float":    KwFloat,
	"double":   KwDouble,
	"signed":   KwSigned,
	"unsigned": KwUnsigned,
	"bool":     KwBool,
	"_Bool":    KwBool,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
