// Package engine provides the wazero integration layer.
//
// An Engine owns a wazero runtime. Foreign objects (compiled WebAssembly
// modules exporting the optbridge symbol surface) are loaded into it and
// instantiated into Instances:
//
//	eng, err := engine.New(ctx)
//	defer eng.Close(ctx)
//
//	mod, err := eng.Load(ctx, wasmBytes)
//	inst, err := mod.Instantiate(ctx)
//	defer inst.Close(ctx)
//
// An Instance exposes the pieces the binding layer needs: exported-function
// lookup, linear memory access, the foreign allocator, and exported-global
// reads for allocator accounting.
//
// Engine and Module are safe for concurrent use; Instance is not.
package engine
