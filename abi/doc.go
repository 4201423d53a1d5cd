// Package abi defines the link contract between the host and the foreign
// optional module: a deterministic symbol naming grammar and the canonical
// memory layout of optional containers.
//
// # Symbol Grammar
//
// Every foreign entry point is addressed by a name built from a fixed
// namespace token, the WIT-style element name, and the operation:
//
//	optbridge1$optional$<elem>$<op>             view operations
//	optbridge1$unique_ptr$optional$<elem>$<op>  owning-handle operations
//
// For example, the has-value predicate for u32 elements is
//
//	optbridge1$optional$u32$has_value
//
// Both sides of the link are produced from this grammar: the synth package
// emits exports with these names, and the optional package resolves imports
// with them. Agreement is verified by test, not by convention.
//
// # Layout Rules
//
// Foreign optionals follow the Canonical ABI option layout: a one-byte
// presence tag at offset 0, payload at offset align(T), total size rounded
// up to align(T). Primitive sizes equal their alignment (u8=1, u32=4,
// f64=8).
package abi
