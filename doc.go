// Package optbridge provides a bidirectional optional-value bridge between
// Go and a foreign WebAssembly module.
//
// The foreign side owns heap-allocated optional containers whose in-memory
// layout is defined by the foreign ABI, not by Go. Go code never holds one
// of these containers by value; it only borrows them through views or owns
// them through pointer-sized handles whose destruction is delegated back to
// the foreign allocator.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	optbridge/           Root package with core Memory and Allocator interfaces
//	├── engine/          wazero integration: load and instantiate foreign objects
//	├── abi/             Symbol naming grammar and canonical layout rules
//	├── optional/        Foreign optional views, element bindings, owning handles
//	├── option/          Host-native generic Option type
//	├── mirror/          Layout-compatible wrapper exposing a host Option to foreign code
//	├── synth/           Generator for the foreign-side module (tests, examples)
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Instantiate a foreign object and read an optional through a typed binding:
//
//	eng, err := engine.New(ctx)
//	defer eng.Close(ctx)
//
//	mod, err := eng.Load(ctx, foreignWasm)
//	inst, err := mod.Instantiate(ctx)
//	defer inst.Close(ctx)
//
//	b, err := optional.Bind[uint32](inst)
//	owned, err := b.FromRaw(ctx, rawPtr)
//	defer owned.Close(ctx)
//
//	if view, ok := owned.Get(ctx); ok {
//	    fmt.Println(view.Get(ctx)) // Some(42)
//	}
//
// # Element Types
//
// The binding covers a fixed, closed set of primitive element types:
// u8, u16, u32, u64, s8, s16, s32, s64, f32 and f64. Each element type is
// wired to its own group of foreign entry points at bind time; a type
// outside the set has no binding and is rejected by the compiler, not at
// runtime.
//
// # Thread Safety
//
// Engine and Module are safe for concurrent use. Instance, and everything
// derived from it (bindings, views, owned handles), is NOT thread-safe and
// must be confined to a single goroutine or synchronized externally. The
// bridge itself adds no locking.
//
// # Memory Model
//
// Foreign memory is WASM linear memory: it can only grow, never shrink.
// A foreign optional's storage is owned by at most one owning handle at a
// time; dropping the handle returns the storage to the foreign allocator.
package optbridge
