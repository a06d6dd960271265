// Package translator turns Brainfuck source into C.
//
// The translation is a single forward scan. Loops are not emitted as
// structured while statements: each '[' becomes a back label followed by a
// conditional jump forward, and each ']' becomes the matching forward label
// followed by a conditional jump back. Only a stack of pending label
// identifiers is needed, so the output can be produced while streaming.
//
// A Translator is used for exactly one pass; build a new one (with a fresh
// label.Allocator) for every source file.
package translator
