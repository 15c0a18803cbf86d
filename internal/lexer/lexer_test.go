package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"cstyle/internal/diag"
	"cstyle/internal/lexer"
	"cstyle/internal/source"
	"cstyle/internal/token"
)

// testReporter collects every diagnostic the lexer emits
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectTokens(input string) ([]token.Token, *testReporter) {
	lx, reporter := makeTestLexer(input)
	return lx.Tokens(), reporter
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	tokens, reporter := collectTokens(input)

	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == token.EOF {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\nerrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tok := lx.Next()

	if tok.Kind != expectedKind {
		t.Errorf("expected kind %v, got %v", expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("expected text %q, got %q", expectedText, tok.Text)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"foo", "foo"},
		{"_bar", "_bar"},
		{"g_rxCount", "g_rxCount"},
		{"x123", "x123"},
		{"UPPER_SNAKE", "UPPER_SNAKE"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, token.Ident, tt.text)
		})
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"if", token.KwIf},
		{"else", token.KwElse},
		{"for", token.KwFor},
		{"while", token.KwWhile},
		{"do", token.KwDo},
		{"switch", token.KwSwitch},
		{"case", token.KwCase},
		{"default", token.KwDefault},
		{"return", token.KwReturn},
		{"struct", token.KwStruct},
		{"enum", token.KwEnum},
		{"union", token.KwUnion},
		{"typedef", token.KwTypedef},
		{"static", token.KwStatic},
		{"const", token.KwConst},
		{"extern", token.KwExtern},
		{"sizeof", token.KwSizeof},
		{"void", token.KwVoid},
		{"unsigned", token.KwUnsigned},
		{"_Bool", token.KwBool},
		{"bool", token.KwBool},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.input)
			if tok := lx.Next(); tok.Kind != tt.kind {
				t.Errorf("expected %v, got %v", tt.kind, tok.Kind)
			}
		})
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	lx, _ := makeTestLexer("If")
	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected Ident, got %v", tok.Kind)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"42", token.IntLit},
		{"0xFF", token.IntLit},
		{"0X1f", token.IntLit},
		{"0b1010", token.IntLit},
		{"0755", token.IntLit},
		{"42u", token.IntLit},
		{"42UL", token.IntLit},
		{"3.14", token.FloatLit},
		{"1e10", token.FloatLit},
		{"2.5e-3", token.FloatLit},
		{"1.0f", token.FloatLit},
		{".5", token.FloatLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestHexSuffixPreserved(t *testing.T) {
	// the text keeps the exact spelling so case rules can inspect it
	expectSingleToken(t, "0xABu", token.IntLit, "0xABu")
}

func TestBadHexDigitsReported(t *testing.T) {
	_, reporter := collectTokens("0x")
	if !reporter.HasErrors() {
		t.Fatal("expected a diagnostic for 0x without digits")
	}
}

func TestStringsAndChars(t *testing.T) {
	expectSingleToken(t, `"hello"`, token.StringLit, `"hello"`)
	expectSingleToken(t, `"a\"b"`, token.StringLit, `"a\"b"`)
	expectSingleToken(t, `'x'`, token.CharLit, `'x'`)
	expectSingleToken(t, `'\n'`, token.CharLit, `'\n'`)
}

func TestUnterminatedString(t *testing.T) {
	tokens, reporter := collectTokens("\"abc\nint x;")
	if !reporter.HasErrors() {
		t.Fatal("expected a diagnostic for the unterminated string")
	}
	// lexing continues past the broken literal
	var sawInt bool
	for _, tok := range tokens {
		if tok.Kind == token.KwInt {
			sawInt = true
		}
	}
	if !sawInt {
		t.Errorf("lexer did not recover after the unterminated string: %v", tokensToString(tokens))
	}
}

func TestOperatorsLongestMatch(t *testing.T) {
	expectTokens(t, "a<<=b", []token.Kind{token.Ident, token.ShlAssign, token.Ident})
	expectTokens(t, "a<<b", []token.Kind{token.Ident, token.Shl, token.Ident})
	expectTokens(t, "a->b", []token.Kind{token.Ident, token.Arrow, token.Ident})
	expectTokens(t, "x++", []token.Kind{token.Ident, token.PlusPlus})
	expectTokens(t, "a==b", []token.Kind{token.Ident, token.EqEq, token.Ident})
	expectTokens(t, "f(a,...)", []token.Kind{
		token.Ident, token.LParen, token.Ident, token.Comma, token.Ellipsis, token.RParen,
	})
}

func TestUnknownByte(t *testing.T) {
	tokens, reporter := collectTokens("a @ b")
	if !reporter.HasErrors() {
		t.Fatal("expected a diagnostic for the unknown byte")
	}
	expected := []token.Kind{token.Ident, token.Unknown, token.Ident, token.EOF}
	if len(tokens) != len(expected) {
		t.Fatalf("got %v", tokensToString(tokens))
	}
	for i, k := range expected {
		if tokens[i].Kind != k {
			t.Errorf("token %d: expected %v, got %v", i, k, tokens[i].Kind)
		}
	}
}

func TestDirectiveSingleToken(t *testing.T) {
	tokens, _ := collectTokens("#include <stdio.h>\nint x;\n")
	if tokens[0].Kind != token.Directive {
		t.Fatalf("expected Directive first, got %v", tokens[0].Kind)
	}
	if tokens[0].Text != "#include <stdio.h>" {
		t.Errorf("directive text = %q", tokens[0].Text)
	}
	if tokens[1].Kind != token.KwInt {
		t.Errorf("expected the int keyword after the directive, got %v", tokens[1].Kind)
	}
}

func TestDirectiveContinuation(t *testing.T) {
	src := "#define MAX(a, b) \\\n   ((a) > (b) ? (a) : (b))\nint x;\n"
	tokens, _ := collectTokens(src)
	if tokens[0].Kind != token.Directive {
		t.Fatalf("expected Directive, got %v", tokens[0].Kind)
	}
	if !strings.Contains(tokens[0].Text, "(a) > (b)") {
		t.Errorf("continuation line not part of the directive: %q", tokens[0].Text)
	}
	if tokens[1].Kind != token.KwInt {
		t.Errorf("expected int after directive, got %v", tokens[1].Kind)
	}
}

func TestHashMidLineIsNotADirective(t *testing.T) {
	tokens, _ := collectTokens("int x; # foo\n")
	var sawHash bool
	for _, tok := range tokens {
		if tok.Kind == token.Hash {
			sawHash = true
		}
		if tok.Kind == token.Directive {
			t.Fatalf("mid-line # lexed as a directive: %q", tok.Text)
		}
	}
	if !sawHash {
		t.Error("expected a Hash token")
	}
}

func TestCommentTrivia(t *testing.T) {
	tokens, _ := collectTokens("// note\nint x; /* block */ int y;\n")
	if tokens[0].Kind != token.KwInt {
		t.Fatalf("expected int first, got %v", tokens[0].Kind)
	}
	var lineComment, blockComment bool
	for _, tok := range tokens {
		for _, tr := range tok.Leading {
			switch tr.Kind {
			case token.TriviaLineComment:
				lineComment = true
				if tr.Text != "// note" {
					t.Errorf("line comment text = %q", tr.Text)
				}
			case token.TriviaBlockComment:
				blockComment = true
			}
		}
	}
	if !lineComment || !blockComment {
		t.Errorf("trivia not attached: line=%t block=%t", lineComment, blockComment)
	}
}

func TestBlockCommentsDoNotNest(t *testing.T) {
	// the first */ terminates the comment
	expectTokens(t, "/* a /* b */ x", []token.Kind{token.Ident})
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, reporter := collectTokens("int x; /* runs off")
	if !reporter.HasErrors() {
		t.Fatal("expected a diagnostic for the unterminated block comment")
	}
}

func TestSpansCoverInput(t *testing.T) {
	input := "int main(void)"
	tokens, _ := collectTokens(input)
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			continue
		}
		got := input[tok.Span.Start:tok.Span.End]
		if got != tok.Text {
			t.Errorf("span/text mismatch: span=%q text=%q", got, tok.Text)
		}
	}
}
