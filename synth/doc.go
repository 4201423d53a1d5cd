// Package synth generates the foreign side of the optional bridge.
//
// The link contract in the abi package has two halves: the host resolves
// symbols by the naming grammar, and the foreign object must export exactly
// those symbols. synth produces that foreign object as a WebAssembly core
// module in binary form, with both halves generated from the same grammar
// so they cannot drift apart silently.
//
// For every element in the closed set the module exports:
//
//	optbridge1$optional$<elem>$has_value       presence tag read
//	optbridge1$optional$<elem>$get_unchecked   payload address
//	optbridge1$optional$<elem>$empty           allocate an empty optional
//	optbridge1$optional$<elem>$new             allocate an optional holding v
//	optbridge1$unique_ptr$optional$<elem>$*    null/raw/get/release/drop
//
// plus the allocator surface: optbridge1$alloc, optbridge1$dealloc and the
// exported mutable global optbridge1$live_objects, a live-allocation
// counter used by leak tests. The allocator is a bump allocator; dealloc
// only decrements the counter.
//
// In production the foreign object would be a compiled translation unit
// from another toolchain; synth stands in for it in tests and examples.
package synth
