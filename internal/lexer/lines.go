package lexer

import (
	"unicode/utf8"

	"cstyle/internal/source"
)

// LineFact captures the layout of one physical line. The lexer preserves
// these as structured facts because indentation rules cannot be recovered
// from the token stream alone.
type LineFact struct {
	Num           uint32 // 1-based line number
	Start         uint32 // byte offset of the first character
	Len           uint32 // length in bytes, excluding the newline
	RuneLen       uint32 // length in runes, excluding the newline
	LeadingSpaces uint32 // count of leading ' ' characters
	LeadingTabs   uint32 // count of '\t' within the leading whitespace
	Blank         bool   // nothing but whitespace
	TrailingWS    bool   // ends in space or tab
}

// ScanLines computes a LineFact for every physical line of the file.
func ScanLines(f *source.File) []LineFact {
	var facts []LineFact
	content := f.Content
	lineNum := uint32(1)
	start := 0

	flush := func(end int) {
		line := content[start:end]
		fact := LineFact{
			Num:     lineNum,
			Start:   uint32(start),
			Len:     uint32(len(line)),
			RuneLen: uint32(utf8.RuneCount(line)),
		}
		i := 0
		for i < len(line) {
			if line[i] == ' ' {
				fact.LeadingSpaces++
			} else if line[i] == '\t' {
				fact.LeadingTabs++
			} else {
				break
			}
			i++
		}
		fact.Blank = i == len(line)
		if n := len(line); n > 0 && (line[n-1] == ' ' || line[n-1] == '\t') {
			fact.TrailingWS = true
		}
		facts = append(facts, fact)
	}

	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			flush(i)
			lineNum++
			start = i + 1
		}
	}
	if start < len(content) {
		flush(len(content))
	}
	return facts
}

// EndsWithNewline reports whether the file's last byte is a newline.
// Empty files count as properly terminated.
func EndsWithNewline(f *source.File) bool {
	n := len(f.Content)
	return n == 0 || f.Content[n-1] == '\n'
}
