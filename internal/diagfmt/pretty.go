package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cstyle/internal/diag"
	"cstyle/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	ruleColor = color.New(color.FgMagenta)
	noteColor = color.New(color.FgBlue)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeBasename:
		return source.BaseName(f.Path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	default:
		if rel, err := filepath.Rel(fs.BaseDir(), f.Path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
		return f.Path
	}
}

// Pretty renders diagnostics in a human-readable form. Walks bag.Items() as
// is; callers sort the bag first. Each diagnostic prints as
// <path>:<line>:<col>: <SEV> <CODE>: <message>, followed by the offending
// source line with a ^~~~ underline, then its notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	sevLabel := d.Severity.String()
	codeLabel := d.Code.ID()
	if opts.Color {
		sevLabel = severityColor(d.Severity).Sprint(sevLabel)
		codeLabel = ruleColor.Sprint(codeLabel)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(f, fs, opts.PathMode), start.Line, start.Col, sevLabel, codeLabel, d.Message)

	printContext(w, f, d.Primary, start)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			nStart, _ := fs.Resolve(n.Span)
			noteLabel := "note"
			if opts.Color {
				noteLabel = noteColor.Sprint(noteLabel)
			}
			fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n",
				noteLabel, displayPath(nf, fs, opts.PathMode), nStart.Line, nStart.Col, n.Msg)
		}
	}
}

// printContext shows the source line with a caret underline aligned to the
// span. Tabs in the prefix are reproduced verbatim so the caret lines up at
// any tab width.
func printContext(w io.Writer, f *source.File, sp source.Span, start source.LineCol) {
	if start.Line == 0 {
		return
	}
	lineText := f.GetLine(start.Line)
	if lineText == "" && sp.Empty() {
		return
	}
	lineStart := f.LineStart(start.Line)
	if sp.Start < lineStart || int(sp.Start) > len(f.Content) {
		return
	}

	var pad strings.Builder
	for _, r := range string(f.Content[lineStart:sp.Start]) {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	end := sp.End
	if lineEnd := lineStart + uint32(len(lineText)); end > lineEnd {
		end = lineEnd
	}
	width := 1
	if end > sp.Start {
		width = runewidth.StringWidth(string(f.Content[sp.Start:end]))
		if width < 1 {
			width = 1
		}
	}

	fmt.Fprintf(w, "  %s\n", lineText)
	fmt.Fprintf(w, "  %s^%s\n", pad.String(), strings.Repeat("~", width-1))
}
