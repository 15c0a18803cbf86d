// Package token defines lexical token kinds and trivia for the cstyle checker.
// Invariants:
//   - Token.Text is copied from the original source and matches Span exactly.
//   - Comments and whitespace never appear in the main token stream; they are
//     attached to the following token as leading Trivia.
//   - A preprocessor directive (including backslash-continued lines) is one
//     Directive token covering the whole logical unit.
//   - C++ operator keywords (new, delete) are identifiers here; the rule layer
//     recognizes them by text.
package token
