package diag_test

import (
	"testing"

	"cstyle/internal/diag"
	"cstyle/internal/source"
)

func mk(file source.FileID, start, end uint32, code diag.Code, sev diag.Severity, msg string) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  source.Span{File: file, Start: start, End: end},
	}
}

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(2)
	for i := 0; i < 3; i++ {
		bag.Add(mk(0, uint32(i), uint32(i)+1, diag.RuleLineLength, diag.SevWarning, "x"))
	}
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
	if bag.Add(mk(0, 9, 10, diag.RuleLineLength, diag.SevWarning, "x")) {
		t.Error("Add past the limit returned true")
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(mk(1, 0, 1, diag.RuleLineLength, diag.SevWarning, "other file"))
	bag.Add(mk(0, 5, 9, diag.RuleYodaComparison, diag.SevWarning, "later"))
	bag.Add(mk(0, 5, 9, diag.RuleLineLength, diag.SevWarning, "same span, earlier rule"))
	bag.Add(mk(0, 0, 3, diag.RuleMagicNumber, diag.SevWarning, "earlier offset"))
	bag.Sort()

	items := bag.Items()
	want := []string{"earlier offset", "same span, earlier rule", "later", "other file"}
	for i, msg := range want {
		if items[i].Message != msg {
			t.Errorf("item %d = %q, want %q", i, items[i].Message, msg)
		}
	}
}

func TestBagDedupFirstWins(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(mk(0, 3, 7, diag.RuleMagicNumber, diag.SevWarning, "first"))
	bag.Add(mk(0, 3, 7, diag.RuleMagicNumber, diag.SevWarning, "second"))
	bag.Add(mk(0, 3, 7, diag.RuleHexLiteralCase, diag.SevWarning, "other rule"))
	bag.Sort()
	bag.Dedup()

	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
	if bag.Items()[1].Message != "first" {
		t.Errorf("survivor = %q, want the first occurrence", bag.Items()[1].Message)
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := diag.NewBag(1)
	a.Add(mk(0, 0, 1, diag.RuleLineLength, diag.SevWarning, "a"))
	b := diag.NewBag(1)
	b.Add(mk(1, 0, 1, diag.RuleLineLength, diag.SevWarning, "b"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Len = %d, want 2", a.Len())
	}
	if !a.Add(mk(2, 0, 1, diag.RuleLineLength, diag.SevWarning, "c")) {
		t.Error("merge did not grow the limit")
	}
}

func TestCountBySeverity(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(mk(0, 0, 1, diag.LexUnterminatedString, diag.SevError, "e"))
	bag.Add(mk(0, 1, 2, diag.RuleLineLength, diag.SevWarning, "w1"))
	bag.Add(mk(0, 2, 3, diag.RuleLineLength, diag.SevWarning, "w2"))
	bag.Add(mk(0, 3, 4, diag.RuleCommentStyle, diag.SevInfo, "i"))

	errors, warnings, infos := bag.CountBySeverity()
	if errors != 1 || warnings != 2 || infos != 1 {
		t.Fatalf("counts = %d/%d/%d", errors, warnings, infos)
	}
	if !bag.HasErrors() {
		t.Error("HasErrors = false")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := diag.NewBag(10)
	r := diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
	span := source.Span{File: 0, Start: 4, End: 8}

	r.Report(diag.RuleMagicNumber, diag.SevWarning, span, "dup", nil)
	r.Report(diag.RuleMagicNumber, diag.SevWarning, span, "dup", nil)
	r.Report(diag.RuleMagicNumber, diag.SevWarning, span, "different message", nil)

	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	if got := diag.RuleMacroParameterParen.ID(); got != "MacroParameterParenthesization" {
		t.Errorf("rule ID = %q", got)
	}
	if got := diag.LexUnterminatedString.ID(); got != "LEX1001" {
		t.Errorf("lex ID = %q", got)
	}
	if got := diag.IOLoadFileError.ID(); got != "IO4001" {
		t.Errorf("io ID = %q", got)
	}
	if diag.LexBadNumber.IsRule() {
		t.Error("infra code classified as a rule")
	}
	if !diag.RuleHeaderGuard.IsRule() {
		t.Error("rule code not classified as a rule")
	}
}
