package rules

import (
	"cstyle/internal/diag"
)

// ParamKind types a rule tunable for config validation.
type ParamKind uint8

const (
	ParamInt ParamKind = iota
	ParamBool
	ParamStrings
)

// ParamSpec describes one tunable of a rule together with its default.
type ParamSpec struct {
	Name    string
	Kind    ParamKind
	Default any
}

// Descriptor is one entry of the closed rule catalog.
type Descriptor struct {
	Code            diag.Code
	Title           string
	DefaultSeverity diag.Severity
	DefaultEnabled  bool
	// NeedsStructure marks rules that interpret scope shape; they are
	// skipped when the indexer flagged the file partial rather than run
	// against a guessed tree.
	NeedsStructure bool
	Params         []ParamSpec
	Check          CheckFunc
}

// Catalog returns the full rule table in catalog order. The set is closed:
// rules are known at build time and dispatched through this table only.
func Catalog() []Descriptor {
	return catalog
}

// DescriptorFor finds the catalog entry for a rule code.
func DescriptorFor(code diag.Code) (Descriptor, bool) {
	for _, d := range catalog {
		if d.Code == code {
			return d, true
		}
	}
	return Descriptor{}, false
}

// DescriptorByName finds a catalog entry by its stable rule identifier.
func DescriptorByName(name string) (Descriptor, bool) {
	for _, d := range catalog {
		if d.Code.ID() == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// catalog is assigned in init: the check functions resolve their tunables
// back through the table, which a static initializer would reject as an
// initialization cycle.
var catalog []Descriptor

func init() {
	catalog = []Descriptor{
		{
			Code:            diag.RuleFunctionNamingPattern,
			Title:           "function names use PascalCase with optional module prefix",
			DefaultSeverity: diag.SevError,
			DefaultEnabled:  true,
			Check:           checkFunctionNaming,
		},
		{
			Code:            diag.RuleTypeNamingPattern,
			Title:           "type names use PascalCase",
			DefaultSeverity: diag.SevError,
			DefaultEnabled:  true,
			Check:           checkTypeNaming,
		},
		{
			Code:            diag.RuleGlobalNamingPattern,
			Title:           "globals use the g_ prefix followed by lowerCamelCase",
			DefaultSeverity: diag.SevError,
			DefaultEnabled:  true,
			Check:           checkGlobalNaming,
		},
		{
			Code:            diag.RuleStaticNamingPattern,
			Title:           "statics use the s_ prefix followed by lowerCamelCase",
			DefaultSeverity: diag.SevError,
			DefaultEnabled:  true,
			Check:           checkStaticNaming,
		},
		{
			Code:            diag.RuleLocalNamingPattern,
			Title:           "locals use lowerCamelCase",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			Check:           checkLocalNaming,
		},
		{
			Code:            diag.RuleParameterNamingPattern,
			Title:           "parameters use lowerCamelCase",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			Check:           checkParameterNaming,
		},
		{
			Code:            diag.RuleConstantNamingPattern,
			Title:           "constants and macros use UPPER_SNAKE_CASE",
			DefaultSeverity: diag.SevError,
			DefaultEnabled:  true,
			Check:           checkConstantNaming,
		},
		{
			Code:            diag.RuleAbbreviationBlacklist,
			Title:           "identifier segments avoid blacklisted abbreviations",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			Params: []ParamSpec{
				{Name: "abbreviations", Kind: ParamStrings, Default: []string{}},
				{Name: "acronyms", Kind: ParamStrings, Default: []string{}},
			},
			Check: checkAbbreviations,
		},
		{
			Code:            diag.RuleEnumStructWrapper,
			Title:           "enums are wrapped in a struct of matching name",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			NeedsStructure:  true,
			Check:           checkEnumStructWrapper,
		},
		{
			Code:            diag.RuleEnumValueMember,
			Title:           "enum wrapper structs carry a Value member",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			NeedsStructure:  true,
			Check:           checkEnumValueMember,
		},
		{
			Code:            diag.RuleIndentationWidth,
			Title:           "indentation is a multiple of the configured width, spaces only",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			Params: []ParamSpec{
				{Name: "width", Kind: ParamInt, Default: 3},
			},
			Check: checkIndentation,
		},
		{
			Code:            diag.RuleBracePlacement,
			Title:           "opening braces start their own line at the statement's indentation",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			NeedsStructure:  true,
			Check:           checkBracePlacement,
		},
		{
			Code:            diag.RuleAlwaysBrace,
			Title:           "controlled statements are always braced",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			Check:           checkAlwaysBrace,
		},
		{
			Code:            diag.RuleLineLength,
			Title:           "lines stay within the configured maximum length",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			Params: []ParamSpec{
				{Name: "max", Kind: ParamInt, Default: 100},
			},
			Check: checkLineLength,
		},
		{
			Code:            diag.RuleOperatorSpacing,
			Title:           "binary operators are surrounded by single spaces",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			Check:           checkOperatorSpacing,
		},
		{
			Code:            diag.RuleHexLiteralCase,
			Title:           "hex literals use a lowercase 0x prefix and uppercase digits",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			Check:           checkHexLiteralCase,
		},
		{
			Code:            diag.RuleTrailingWhitespace,
			Title:           "lines carry no trailing whitespace",
			DefaultSeverity: diag.SevInfo,
			DefaultEnabled:  true,
			Check:           checkTrailingWhitespace,
		},
		{
			Code:            diag.RuleFinalNewline,
			Title:           "files end with a newline",
			DefaultSeverity: diag.SevInfo,
			DefaultEnabled:  true,
			Check:           checkFinalNewline,
		},
		{
			Code:            diag.RuleCommentStyle,
			Title:           "comments use the // form",
			DefaultSeverity: diag.SevInfo,
			DefaultEnabled:  true,
			Params: []ParamSpec{
				{Name: "line-comments-only", Kind: ParamBool, Default: true},
			},
			Check: checkCommentStyle,
		},
		{
			Code:            diag.RuleSingleReturnPath,
			Title:           "functions keep to the configured number of return paths",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			NeedsStructure:  true,
			Params: []ParamSpec{
				{Name: "max-returns", Kind: ParamInt, Default: 1},
			},
			Check: checkSingleReturnPath,
		},
		{
			Code:            diag.RuleYodaComparison,
			Title:           "comparisons put the constant operand on the left",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			Check:           checkYodaComparison,
		},
		{
			Code:            diag.RuleSwitchDefaultRequired,
			Title:           "switch statements carry a default case",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			NeedsStructure:  true,
			Check:           checkSwitchDefault,
		},
		{
			Code:            diag.RuleMacroParameterParen,
			Title:           "function-like macro parameters and bodies are parenthesized",
			DefaultSeverity: diag.SevError,
			DefaultEnabled:  true,
			Check:           checkMacroParameterParen,
		},
		{
			Code:            diag.RuleMagicNumber,
			Title:           "repeated numeric literals are named constants",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			Params: []ParamSpec{
				{Name: "threshold", Kind: ParamInt, Default: 2},
			},
			Check: checkMagicNumber,
		},
		{
			Code:            diag.RuleHeaderGuard,
			Title:           "headers carry the canonical include guard",
			DefaultSeverity: diag.SevError,
			DefaultEnabled:  true,
			Params: []ParamSpec{
				{Name: "allow-pragma-once", Kind: ParamBool, Default: true},
			},
			Check: checkHeaderGuard,
		},
		{
			Code:            diag.RuleDynamicAllocation,
			Title:           "dynamic allocation calls are banned",
			DefaultSeverity: diag.SevError,
			DefaultEnabled:  true,
			Params: []ParamSpec{
				{Name: "identifiers", Kind: ParamStrings,
					Default: []string{"malloc", "calloc", "realloc", "free", "new", "delete"}},
			},
			Check: checkDynamicAllocation,
		},
		{
			Code:            diag.RuleFilePairing,
			Title:           "source and header files pair by stem",
			DefaultSeverity: diag.SevWarning,
			DefaultEnabled:  true,
			Params: []ParamSpec{
				{Name: "require-counterpart", Kind: ParamBool, Default: false},
			},
			// evaluated as a path post-pass, not per file
			Check: nil,
		},
	}
}
