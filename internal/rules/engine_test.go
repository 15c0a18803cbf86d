package rules_test

import (
	"strings"
	"testing"

	"cstyle/internal/diag"
	"cstyle/internal/lexer"
	"cstyle/internal/rules"
	"cstyle/internal/source"
	"cstyle/internal/structure"
)

// checkFile runs the full per-file pipeline and returns the sorted,
// deduplicated diagnostics plus the file for span assertions.
func checkFile(t *testing.T, path, src string, cfg *rules.Config) ([]diag.Diagnostic, *source.File) {
	t.Helper()
	if cfg == nil {
		cfg = rules.NewConfig()
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(path, []byte(src)))

	bag := diag.NewBag(500)
	reporter := &diag.BagReporter{Bag: bag}
	tokens := lexer.New(file, lexer.Options{Reporter: reporter}).Tokens()
	lines := lexer.ScanLines(file)
	index := structure.Build(file, tokens, reporter)
	rules.Run(file, tokens, lines, index, cfg, reporter)

	bag.Sort()
	bag.Dedup()
	return bag.Items(), file
}

func byRule(items []diag.Diagnostic, name string) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range items {
		if d.Code.ID() == name {
			out = append(out, d)
		}
	}
	return out
}

func spanText(f *source.File, sp source.Span) string {
	return string(f.Content[sp.Start:sp.End])
}

func TestGlobalNamingViolation(t *testing.T) {
	items, f := checkFile(t, "test.c", "int g_Count;\n", nil)
	got := byRule(items, "GlobalNamingPattern")
	if len(got) != 1 {
		t.Fatalf("GlobalNamingPattern: %d violations, want 1 (all: %v)", len(got), items)
	}
	if spanText(f, got[0].Primary) != "g_Count" {
		t.Errorf("span covers %q", spanText(f, got[0].Primary))
	}
}

func TestGlobalNamingClean(t *testing.T) {
	items, _ := checkFile(t, "test.c", "int g_count;\n", nil)
	if got := byRule(items, "GlobalNamingPattern"); len(got) != 0 {
		t.Fatalf("unexpected violations: %v", got)
	}
}

func TestSwitchWithoutDefault(t *testing.T) {
	src := `void Route(int code)
{
   switch (code)
   {
      case 1:
         break;
   }
}
`
	items, f := checkFile(t, "test.c", src, nil)
	got := byRule(items, "SwitchDefaultRequired")
	if len(got) != 1 {
		t.Fatalf("SwitchDefaultRequired: %d violations, want 1", len(got))
	}
	if !strings.HasPrefix(spanText(f, got[0].Primary), "switch") {
		t.Errorf("violation not anchored at the switch keyword: %q", spanText(f, got[0].Primary))
	}
}

func TestSwitchWithDefaultClean(t *testing.T) {
	src := `void Route(int code)
{
   switch (code)
   {
      case 1:
         break;
      default:
         break;
   }
}
`
	items, _ := checkFile(t, "test.c", src, nil)
	if got := byRule(items, "SwitchDefaultRequired"); len(got) != 0 {
		t.Fatalf("unexpected violations: %v", got)
	}
}

func TestMacroParameterNotParenthesized(t *testing.T) {
	items, _ := checkFile(t, "test.c", "#define ADD(a, b) a + b\nint x;\n", nil)
	got := byRule(items, "MacroParameterParenthesization")
	if len(got) != 1 {
		t.Fatalf("MacroParameterParenthesization: %d violations, want 1", len(got))
	}
}

func TestMacroFullyParenthesizedClean(t *testing.T) {
	items, _ := checkFile(t, "test.c", "#define ADD(a, b) ((a) + (b))\nint x;\n", nil)
	if got := byRule(items, "MacroParameterParenthesization"); len(got) != 0 {
		t.Fatalf("unexpected violations: %v", got)
	}
}

func TestMacroBodyNotWrapped(t *testing.T) {
	items, _ := checkFile(t, "test.c", "#define ADD(a, b) (a) + (b)\nint x;\n", nil)
	if got := byRule(items, "MacroParameterParenthesization"); len(got) != 1 {
		t.Fatalf("compound body accepted: %v", got)
	}
}

func TestSingleReturnPath(t *testing.T) {
	src := `int Pick(int flag)
{
   if (flag)
   {
      return 1;
   }

   return 0;
}
`
	items, f := checkFile(t, "test.c", src, nil)
	got := byRule(items, "SingleReturnPath")
	if len(got) != 1 {
		t.Fatalf("SingleReturnPath: %d violations, want 1", len(got))
	}
	// anchored at the signature, not at a return
	if !strings.HasPrefix(spanText(f, got[0].Primary), "int Pick") {
		t.Errorf("violation anchored at %q", spanText(f, got[0].Primary))
	}
}

func TestLineLengthBoundary(t *testing.T) {
	ok := "// " + strings.Repeat("a", 97) + "\n"
	long := "// " + strings.Repeat("a", 98) + "\n"

	items, _ := checkFile(t, "test.c", ok, nil)
	if got := byRule(items, "LineLength"); len(got) != 0 {
		t.Fatalf("100-char line flagged: %v", got)
	}
	items, _ = checkFile(t, "test.c", long, nil)
	if got := byRule(items, "LineLength"); len(got) != 1 {
		t.Fatalf("101-char line: %d violations, want 1", len(got))
	}
}

func TestIndentation(t *testing.T) {
	src := "void Work(void)\n{\n    int bad;\n   int good;\n\tint tab;\n}\n"
	items, _ := checkFile(t, "test.c", src, nil)
	got := byRule(items, "IndentationWidth")
	if len(got) != 2 {
		t.Fatalf("IndentationWidth: %d violations, want 2: %v", len(got), got)
	}
}

func TestAlwaysBrace(t *testing.T) {
	src := "void Work(int x)\n{\n   if (x)\n      return;\n}\n"
	items, f := checkFile(t, "test.c", src, nil)
	got := byRule(items, "AlwaysBrace")
	if len(got) != 1 {
		t.Fatalf("AlwaysBrace: %d violations, want 1", len(got))
	}
	if spanText(f, got[0].Primary) != "if" {
		t.Errorf("anchored at %q", spanText(f, got[0].Primary))
	}
}

func TestElseIfChainAllowed(t *testing.T) {
	src := `void Work(int x)
{
   if (x)
   {
      x = 1;
   }
   else if (x)
   {
      x = 2;
   }
   else
   {
      x = 3;
   }
}
`
	items, _ := checkFile(t, "test.c", src, nil)
	if got := byRule(items, "AlwaysBrace"); len(got) != 0 {
		t.Fatalf("else-if chain flagged: %v", got)
	}
}

func TestBracePlacement(t *testing.T) {
	src := "void Work(void) {\n   int x;\n}\n"
	items, _ := checkFile(t, "test.c", src, nil)
	if got := byRule(items, "BracePlacement"); len(got) != 1 {
		t.Fatalf("same-line brace: %d violations, want 1", len(got))
	}
}

func TestOperatorSpacing(t *testing.T) {
	tests := []struct {
		name string
		stmt string
		want int
	}{
		{"unspaced plus", "g_total = g_total+1;", 1},
		{"unspaced minus after paren", "g_total = (g_total)-1;", 1},
		{"unspaced assign", "g_total =1;", 1},
		{"spaced arithmetic", "g_total = g_total + 1;", 0},
		{"unary minus", "g_total = -1;", 0},
		{"unary minus argument", "Advance(-1);", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "void Work(void)\n{\n   " + tt.stmt + "\n}\n"
			items, _ := checkFile(t, "test.c", src, nil)
			if got := byRule(items, "OperatorSpacing"); len(got) != tt.want {
				t.Fatalf("%q: %d violations, want %d: %v", tt.stmt, len(got), tt.want, got)
			}
		})
	}
}

func TestHexLiteralCase(t *testing.T) {
	items, _ := checkFile(t, "test.c", "int g_mask = 0xab;\n", nil)
	if got := byRule(items, "HexLiteralCase"); len(got) != 1 {
		t.Fatalf("lowercase digits: %d violations, want 1", len(got))
	}
	items, _ = checkFile(t, "test.c", "int g_mask = 0XAB;\n", nil)
	if got := byRule(items, "HexLiteralCase"); len(got) != 1 {
		t.Fatalf("uppercase prefix: %d violations, want 1", len(got))
	}
	items, _ = checkFile(t, "test.c", "int g_mask = 0xAB;\n", nil)
	if got := byRule(items, "HexLiteralCase"); len(got) != 0 {
		t.Fatalf("canonical literal flagged: %v", got)
	}
}

func TestYodaComparison(t *testing.T) {
	src := "void Work(int x)\n{\n   if (x == 0)\n   {\n      x = 1;\n   }\n}\n"
	items, _ := checkFile(t, "test.c", src, nil)
	if got := byRule(items, "YodaComparison"); len(got) != 1 {
		t.Fatalf("YodaComparison: %d violations, want 1", len(got))
	}

	src = "void Work(int x)\n{\n   if (0 == x)\n   {\n      x = 1;\n   }\n}\n"
	items, _ = checkFile(t, "test.c", src, nil)
	if got := byRule(items, "YodaComparison"); len(got) != 0 {
		t.Fatalf("yoda order flagged: %v", got)
	}
}

func TestMagicNumberThreshold(t *testing.T) {
	src := "void Work(void)\n{\n   g_a = 42;\n   g_b = 42;\n}\n"
	items, _ := checkFile(t, "test.c", src, nil)
	if got := byRule(items, "MagicNumber"); len(got) != 2 {
		t.Fatalf("MagicNumber: %d violations, want 2", len(got))
	}

	// below the threshold
	src = "void Work(void)\n{\n   g_a = 42;\n}\n"
	items, _ = checkFile(t, "test.c", src, nil)
	if got := byRule(items, "MagicNumber"); len(got) != 0 {
		t.Fatalf("single occurrence flagged: %v", got)
	}
}

func TestMagicNumberExemptions(t *testing.T) {
	src := `void Route(int code)
{
   switch (code)
   {
      case 7:
         break;
      default:
         break;
   }
   g_a = 7;
}
`
	items, _ := checkFile(t, "test.c", src, nil)
	// the case label is exempt, so 7 occurs only once as a magic number
	if got := byRule(items, "MagicNumber"); len(got) != 0 {
		t.Fatalf("case label counted: %v", got)
	}

	src = "const int LIMIT_A = 99;\nconst int LIMIT_B = 99;\n"
	items, _ = checkFile(t, "test.c", src, nil)
	if got := byRule(items, "MagicNumber"); len(got) != 0 {
		t.Fatalf("const-bound literals flagged: %v", got)
	}
}

func TestHeaderGuard(t *testing.T) {
	clean := "#ifndef _FOO_BAR_H\n#define _FOO_BAR_H\n#endif\n"
	items, _ := checkFile(t, "foo_bar.h", clean, nil)
	if got := byRule(items, "HeaderGuard"); len(got) != 0 {
		t.Fatalf("canonical guard flagged: %v", got)
	}

	wrong := "#ifndef FOO_BAR_H\n#define FOO_BAR_H\n#endif\n"
	items, _ = checkFile(t, "foo_bar.h", wrong, nil)
	if got := byRule(items, "HeaderGuard"); len(got) != 1 {
		t.Fatalf("wrong guard name: %d violations, want 1", len(got))
	}

	items, _ = checkFile(t, "foo_bar.h", "#pragma once\n", nil)
	if got := byRule(items, "HeaderGuard"); len(got) != 0 {
		t.Fatalf("pragma once flagged: %v", got)
	}

	items, _ = checkFile(t, "foo_bar.h", "int x;\n", nil)
	if got := byRule(items, "HeaderGuard"); len(got) != 1 {
		t.Fatalf("missing guard: %d violations, want 1", len(got))
	}

	// the rule only applies to headers
	items, _ = checkFile(t, "foo_bar.c", "int x;\n", nil)
	if got := byRule(items, "HeaderGuard"); len(got) != 0 {
		t.Fatalf("source file flagged: %v", got)
	}
}

func TestGuardMacroExemptFromConstantNaming(t *testing.T) {
	src := "#ifndef _FOO_BAR_H\n#define _FOO_BAR_H\n#endif\n"
	items, _ := checkFile(t, "foo_bar.h", src, nil)
	if got := byRule(items, "ConstantNamingPattern"); len(got) != 0 {
		t.Fatalf("canonical guard macro flagged: %v", got)
	}

	// other underscore-prefixed macros are still violations
	src = "#ifndef _FOO_BAR_H\n#define _FOO_BAR_H\n#define _other 1\n#endif\n"
	items, _ = checkFile(t, "foo_bar.h", src, nil)
	if got := byRule(items, "ConstantNamingPattern"); len(got) != 1 {
		t.Fatalf("ConstantNamingPattern: %d violations, want 1: %v", len(got), got)
	}
}

func TestCatalogResolvesByName(t *testing.T) {
	if len(rules.Catalog()) == 0 {
		t.Fatal("empty catalog")
	}
	for _, desc := range rules.Catalog() {
		byName, ok := rules.DescriptorByName(desc.Code.ID())
		if !ok || byName.Code != desc.Code {
			t.Errorf("rule %s not resolvable by name", desc.Code.ID())
		}
		if desc.Title == "" {
			t.Errorf("rule %s has no title", desc.Code.ID())
		}
	}
}

func TestDynamicAllocation(t *testing.T) {
	src := "void Work(void)\n{\n   g_buf = malloc(64);\n}\n"
	items, f := checkFile(t, "test.c", src, nil)
	got := byRule(items, "DynamicAllocation")
	if len(got) != 1 {
		t.Fatalf("DynamicAllocation: %d violations, want 1", len(got))
	}
	if spanText(f, got[0].Primary) != "malloc" {
		t.Errorf("anchored at %q", spanText(f, got[0].Primary))
	}
}

func TestCommentStyle(t *testing.T) {
	items, _ := checkFile(t, "test.c", "/* block */\nint g_x;\n", nil)
	if got := byRule(items, "CommentStyle"); len(got) != 1 {
		t.Fatalf("CommentStyle: %d violations, want 1", len(got))
	}
}

func TestTrailingWhitespaceAndFinalNewline(t *testing.T) {
	items, _ := checkFile(t, "test.c", "int g_x; \n", nil)
	if got := byRule(items, "TrailingWhitespace"); len(got) != 1 {
		t.Fatalf("TrailingWhitespace: %d violations, want 1", len(got))
	}

	items, _ = checkFile(t, "test.c", "int g_x;", nil)
	if got := byRule(items, "FinalNewline"); len(got) != 1 {
		t.Fatalf("FinalNewline: %d violations, want 1", len(got))
	}
}

func TestEnumWrapperRules(t *testing.T) {
	unwrapped := "enum Color\n{\n   COLOR_RED\n};\n"
	items, _ := checkFile(t, "test.c", unwrapped, nil)
	if got := byRule(items, "EnumStructWrapper"); len(got) != 1 {
		t.Fatalf("unwrapped enum: %d violations, want 1", len(got))
	}

	wrapped := `struct Color
{
   enum Color
   {
      COLOR_RED,
      COLOR_GREEN
   };
   int Value;
};
`
	items, _ = checkFile(t, "test.c", wrapped, nil)
	if got := byRule(items, "EnumStructWrapper"); len(got) != 0 {
		t.Fatalf("wrapped enum flagged: %v", got)
	}
	if got := byRule(items, "EnumValueMember"); len(got) != 0 {
		t.Fatalf("Value member not seen: %v", got)
	}

	noValue := `struct Color
{
   enum Color
   {
      COLOR_RED,
      COLOR_GREEN
   };
};
`
	items, _ = checkFile(t, "test.c", noValue, nil)
	if got := byRule(items, "EnumValueMember"); len(got) != 2 {
		t.Fatalf("EnumValueMember: %d violations, want one per value", len(got))
	}
}

func TestAbbreviationBlacklist(t *testing.T) {
	cfg := rules.NewConfig()
	err := cfg.Set("AbbreviationBlacklist", rules.Override{
		Params: map[string]any{
			"abbreviations": []string{"cnt"},
			"acronyms":      []string{"CRC"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	items, _ := checkFile(t, "test.c", "int g_cntValue;\n", cfg)
	if got := byRule(items, "AbbreviationBlacklist"); len(got) != 1 {
		t.Fatalf("AbbreviationBlacklist: %d violations, want 1", len(got))
	}

	// whitelisted acronym segments pass
	items, _ = checkFile(t, "test.c", "int g_crcValue;\n", cfg)
	if got := byRule(items, "AbbreviationBlacklist"); len(got) != 0 {
		t.Fatalf("acronym flagged: %v", got)
	}
}

func TestStructureRulesSkippedOnPartialIndex(t *testing.T) {
	src := "void Broken(void)\n{\n   switch (1)\n   {\n      case 1:\n         break;\n"
	items, _ := checkFile(t, "test.c", src, nil)
	if got := byRule(items, "SwitchDefaultRequired"); len(got) != 0 {
		t.Fatalf("structure rule ran on a partial index: %v", got)
	}
	// the structural error itself is still reported
	var structural bool
	for _, d := range items {
		if d.Code == diag.StructUnbalancedBraces {
			structural = true
		}
	}
	if !structural {
		t.Fatal("missing unbalanced-braces diagnostic")
	}
}

func TestDisabledRuleIsSilent(t *testing.T) {
	off := false
	cfg := rules.NewConfig()
	if err := cfg.Set("GlobalNamingPattern", rules.Override{Enabled: &off}); err != nil {
		t.Fatal(err)
	}
	items, _ := checkFile(t, "test.c", "int g_Count;\n", cfg)
	if got := byRule(items, "GlobalNamingPattern"); len(got) != 0 {
		t.Fatalf("disabled rule reported: %v", got)
	}
}

func TestSeverityOverride(t *testing.T) {
	sev := diag.SevInfo
	cfg := rules.NewConfig()
	if err := cfg.Set("GlobalNamingPattern", rules.Override{Severity: &sev}); err != nil {
		t.Fatal(err)
	}
	items, _ := checkFile(t, "test.c", "int g_Count;\n", cfg)
	got := byRule(items, "GlobalNamingPattern")
	if len(got) != 1 || got[0].Severity != diag.SevInfo {
		t.Fatalf("override not applied: %v", got)
	}
}

func TestUnknownRuleAndParamRejected(t *testing.T) {
	cfg := rules.NewConfig()
	if err := cfg.Set("NoSuchRule", rules.Override{}); err == nil {
		t.Fatal("unknown rule accepted")
	}
	if err := cfg.Set("LineLength", rules.Override{Params: map[string]any{"nope": 1}}); err == nil {
		t.Fatal("unknown parameter accepted")
	}
	if err := cfg.Set("LineLength", rules.Override{Params: map[string]any{"max": "wide"}}); err == nil {
		t.Fatal("mistyped parameter accepted")
	}
}

func TestCompliantFileIsClean(t *testing.T) {
	src := `// Driver for the board timer.
#define TIMER_MAX_COUNT (1000U)

typedef unsigned int TimerTick;

int g_tickCount = 0;

static int s_overflowCount = 0;

int Timer_Update(int delta)
{
   int result = 0;

   if (delta > 0)
   {
      result = delta;
   }

   return result;
}
`
	items, _ := checkFile(t, "timer.c", src, nil)
	if len(items) != 0 {
		t.Fatalf("compliant file produced %d diagnostics: %v", len(items), items)
	}
}

func TestFilePairing(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("dir/foo.c", []byte("int g_x;\n"))
	fs.AddVirtual("dir/Foo.h", []byte("#pragma once\n"))

	cfg := rules.NewConfig()
	bag := diag.NewBag(100)
	rules.CheckFilePairs(fs, cfg, &diag.BagReporter{Bag: bag})

	var pairing int
	for _, d := range bag.Items() {
		if d.Code.ID() == "FilePairing" {
			pairing++
		}
	}
	if pairing != 2 {
		t.Fatalf("case-mismatched pair: %d violations, want 2", pairing)
	}
}

func TestFilePairingRequireCounterpart(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("dir/lone.c", []byte("int g_x;\n"))

	on := true
	cfg := rules.NewConfig()
	if err := cfg.Set("FilePairing", rules.Override{Params: map[string]any{"require-counterpart": on}}); err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(100)
	rules.CheckFilePairs(fs, cfg, &diag.BagReporter{Bag: bag})
	if bag.Len() != 1 {
		t.Fatalf("missing counterpart: %d violations, want 1", bag.Len())
	}

	// default configuration tolerates lone files
	bag = diag.NewBag(100)
	rules.CheckFilePairs(fs, rules.NewConfig(), &diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("lone file flagged by default: %v", bag.Items())
	}
}
