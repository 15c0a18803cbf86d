// Package structure builds a lightweight structural index of one C/C++ file:
// a scope tree (file, functions, blocks, switch/struct/enum/union bodies,
// macro definitions) and a symbol table with lexically inferred kinds.
//
// The index is heuristic on purpose. It reasons over tokens and brace depth
// only, never resolves types or symbols across files, and tolerates malformed
// input: unbalanced braces close every open scope at end of file, mark the
// index partial and emit a structural diagnostic instead of aborting.
package structure
