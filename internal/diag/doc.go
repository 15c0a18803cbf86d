// Package diag defines the diagnostic model shared by the lexer, the
// structural indexer and the rule engine: severities, stable codes, the
// Diagnostic value itself, and the Bag collection with its deterministic
// sort/dedup behavior.
//
// Codes split into two families. Infra codes (decode errors, unterminated
// literals, unbalanced braces, I/O failures) use numeric IDs with a family
// prefix. Rule codes map one-to-one onto the documented style conventions and
// render as their stable rule name, e.g. GlobalNamingPattern.
package diag
