package rules

import (
	"cstyle/internal/diag"
	"cstyle/internal/lexer"
	"cstyle/internal/source"
	"cstyle/internal/structure"
	"cstyle/internal/token"
)

// CheckFunc is the contract every rule checker implements: a pure function
// of the file's tokens, structure and parameters. Checkers never observe
// each other's output, so toggling one rule cannot change another's findings.
type CheckFunc func(ctx *Context)

// Context hands a checker its read-only inputs plus an emit hook already
// bound to the rule's code and effective severity.
type Context struct {
	File   *source.File
	Tokens []token.Token
	Lines  []lexer.LineFact
	Index  *structure.Index

	code     diag.Code
	severity diag.Severity
	cfg      *Config
	reporter diag.Reporter
}

// Report emits one violation at the given span.
func (ctx *Context) Report(sp source.Span, msg string) {
	ctx.reporter.Report(ctx.code, ctx.severity, sp, msg, nil)
}

// ReportWithNote emits a violation carrying one related span.
func (ctx *Context) ReportWithNote(sp source.Span, msg string, noteSp source.Span, note string) {
	ctx.reporter.Report(ctx.code, ctx.severity, sp, msg, []diag.Note{{Span: noteSp, Msg: note}})
}

// Int returns the named tunable for the running rule.
func (ctx *Context) Int(name string) int { return ctx.cfg.IntParam(ctx.code, name) }

// Bool returns the named tunable for the running rule.
func (ctx *Context) Bool(name string) bool { return ctx.cfg.BoolParam(ctx.code, name) }

// Strings returns the named tunable for the running rule.
func (ctx *Context) Strings(name string) []string { return ctx.cfg.StringsParam(ctx.code, name) }

// Run evaluates every enabled catalog rule against one indexed file and
// sends the violations to the reporter. Rules needing intact structure are
// skipped on partial indexes rather than run against a guessed tree.
func Run(file *source.File, tokens []token.Token, lines []lexer.LineFact,
	index *structure.Index, cfg *Config, reporter diag.Reporter) {
	for _, desc := range Catalog() {
		if desc.Check == nil || !cfg.Enabled(desc.Code) {
			continue
		}
		if desc.NeedsStructure && index.Partial {
			continue
		}
		ctx := &Context{
			File:     file,
			Tokens:   tokens,
			Lines:    lines,
			Index:    index,
			code:     desc.Code,
			severity: cfg.Severity(desc.Code),
			cfg:      cfg,
			reporter: reporter,
		}
		desc.Check(ctx)
	}
}
