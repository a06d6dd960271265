// Package label hands out the integer identifiers that pair the two ends of
// a loop in generated code. Every identifier is unique for the lifetime of
// one allocator; identifiers are never returned to the pool when a loop
// closes, because the labels derived from them stay in the emitted text.
package label
