package diag

import (
	"fmt"
)

// Code identifies a diagnostic category.
type Code uint16

const (
	// UnknownCode is the zero value; never reported deliberately.
	UnknownCode Code = 0

	// Lexical infra codes.
	LexUnterminatedString       Code = 1001
	LexUnterminatedChar         Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnknownChar              Code = 1005

	// Structural infra codes.
	StructUnbalancedBraces Code = 1501
	StructUnclosedParen    Code = 1502

	// Naming rules.
	RuleFunctionNamingPattern  Code = 2001
	RuleTypeNamingPattern      Code = 2002
	RuleGlobalNamingPattern    Code = 2003
	RuleStaticNamingPattern    Code = 2004
	RuleLocalNamingPattern     Code = 2005
	RuleParameterNamingPattern Code = 2006
	RuleConstantNamingPattern  Code = 2007
	RuleAbbreviationBlacklist  Code = 2008

	// Enum rules.
	RuleEnumStructWrapper Code = 2101
	RuleEnumValueMember   Code = 2102

	// Layout rules.
	RuleIndentationWidth   Code = 2201
	RuleBracePlacement     Code = 2202
	RuleAlwaysBrace        Code = 2203
	RuleLineLength         Code = 2204
	RuleOperatorSpacing    Code = 2205
	RuleHexLiteralCase     Code = 2206
	RuleTrailingWhitespace Code = 2207
	RuleFinalNewline       Code = 2208

	// Misc rules.
	RuleCommentStyle          Code = 2301
	RuleSingleReturnPath      Code = 2302
	RuleYodaComparison        Code = 2303
	RuleSwitchDefaultRequired Code = 2304
	RuleMacroParameterParen   Code = 2305
	RuleMagicNumber           Code = 2306
	RuleHeaderGuard           Code = 2307
	RuleDynamicAllocation     Code = 2308
	RuleFilePairing           Code = 2309

	// I/O codes.
	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002
)

// ruleNames maps rule codes onto their stable external identifiers. These
// strings are part of the tool's output contract; never rename them.
var ruleNames = map[Code]string{
	RuleFunctionNamingPattern:  "FunctionNamingPattern",
	RuleTypeNamingPattern:      "TypeNamingPattern",
	RuleGlobalNamingPattern:    "GlobalNamingPattern",
	RuleStaticNamingPattern:    "StaticNamingPattern",
	RuleLocalNamingPattern:     "LocalNamingPattern",
	RuleParameterNamingPattern: "ParameterNamingPattern",
	RuleConstantNamingPattern:  "ConstantNamingPattern",
	RuleAbbreviationBlacklist:  "AbbreviationBlacklist",
	RuleEnumStructWrapper:      "EnumStructWrapper",
	RuleEnumValueMember:        "EnumValueMember",
	RuleIndentationWidth:       "IndentationWidth",
	RuleBracePlacement:         "BracePlacement",
	RuleAlwaysBrace:            "AlwaysBrace",
	RuleLineLength:             "LineLength",
	RuleOperatorSpacing:        "OperatorSpacing",
	RuleHexLiteralCase:         "HexLiteralCase",
	RuleTrailingWhitespace:     "TrailingWhitespace",
	RuleFinalNewline:           "FinalNewline",
	RuleCommentStyle:           "CommentStyle",
	RuleSingleReturnPath:       "SingleReturnPath",
	RuleYodaComparison:         "YodaComparison",
	RuleSwitchDefaultRequired:  "SwitchDefaultRequired",
	RuleMacroParameterParen:    "MacroParameterParenthesization",
	RuleMagicNumber:            "MagicNumber",
	RuleHeaderGuard:            "HeaderGuard",
	RuleDynamicAllocation:      "DynamicAllocation",
	RuleFilePairing:            "FilePairing",
}

// IsRule reports whether the code belongs to the rule catalog rather than the
// lexer/indexer/I-O infrastructure.
func (c Code) IsRule() bool {
	_, ok := ruleNames[c]
	return ok
}

// ID returns the stable textual identifier of the code: the rule name for
// catalog rules, or a prefixed numeric ID for infra codes.
func (c Code) ID() string {
	if name, ok := ruleNames[c]; ok {
		return name
	}
	switch ic := int(c); {
	case ic >= 1000 && ic < 1500:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 1500 && ic < 2000:
		return fmt.Sprintf("STR%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) String() string {
	return c.ID()
}
