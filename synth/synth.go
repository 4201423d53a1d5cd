package synth

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/optbridge/abi"
)

// elemSpec carries everything the generator needs for one element type:
// its layout and the store instruction for its payload.
type elemSpec struct {
	witType    wit.Type
	name       string
	storeOp    byte
	storeAlign uint32 // alignment exponent for the store memarg
	newTypeIdx uint32 // signature of the $new constructor
	layout     abi.OptionInfo
}

// Function signature indices in the generated type section.
const (
	typePtrToI32  uint32 = 0 // (i32) -> i32: has_value, get_unchecked, get, release, new for i32-class
	typePtr       uint32 = 1 // (i32) -> (): null, drop
	typePtrPtr    uint32 = 2 // (i32, i32) -> (): raw
	typeVoidToI32 uint32 = 3 // () -> i32: empty
	typeAlloc     uint32 = 4 // (i32, i32) -> i32
	typeDealloc   uint32 = 5 // (i32, i32, i32) -> ()
	typeI64ToI32  uint32 = 6 // (i64) -> i32: new for u64/s64
	typeF32ToI32  uint32 = 7 // (f32) -> i32: new for f32
	typeF64ToI32  uint32 = 8 // (f64) -> i32: new for f64
)

// Function indices of the allocator, referenced by generated bodies.
const (
	funcAlloc   uint32 = 0
	funcDealloc uint32 = 1
)

// Global indices.
const (
	globalHeap uint32 = 0
	globalLive uint32 = 1
)

// Operations generated per element, in export order.
const funcsPerElement = 9

func elements() []elemSpec {
	specs := []struct {
		witType    wit.Type
		storeOp    byte
		storeAlign uint32
		newTypeIdx uint32
	}{
		{wit.U8{}, opI32Store8, 0, typePtrToI32},
		{wit.U16{}, opI32Store16, 1, typePtrToI32},
		{wit.U32{}, opI32Store, 2, typePtrToI32},
		{wit.U64{}, opI64Store, 3, typeI64ToI32},
		{wit.S8{}, opI32Store8, 0, typePtrToI32},
		{wit.S16{}, opI32Store16, 1, typePtrToI32},
		{wit.S32{}, opI32Store, 2, typePtrToI32},
		{wit.S64{}, opI64Store, 3, typeI64ToI32},
		{wit.F32{}, opF32Store, 2, typeF32ToI32},
		{wit.F64{}, opF64Store, 3, typeF64ToI32},
	}

	out := make([]elemSpec, len(specs))
	for i, s := range specs {
		out[i] = elemSpec{
			witType:    s.witType,
			name:       abi.ElementName(s.witType),
			storeOp:    s.storeOp,
			storeAlign: s.storeAlign,
			newTypeIdx: s.newTypeIdx,
			layout:     abi.OptionLayout(s.witType),
		}
	}
	return out
}

// Module generates the foreign-side WebAssembly module exporting the full
// optbridge symbol surface for the closed element set.
func Module() []byte {
	elems := elements()

	var mod writer
	mod.byte(0x00, 0x61, 0x73, 0x6D) // magic
	mod.byte(0x01, 0x00, 0x00, 0x00) // version

	mod.section(secType, typeSection())
	mod.section(secFunction, functionSection(elems))
	mod.section(secMemory, memorySection())
	mod.section(secGlobal, globalSection())
	mod.section(secExport, exportSection(elems))
	mod.section(secCode, codeSection(elems))

	return mod.buf
}

func typeSection() []byte {
	var w writer
	w.uleb(9)
	w.funcType([]byte{valI32}, []byte{valI32})
	w.funcType([]byte{valI32}, nil)
	w.funcType([]byte{valI32, valI32}, nil)
	w.funcType(nil, []byte{valI32})
	w.funcType([]byte{valI32, valI32}, []byte{valI32})
	w.funcType([]byte{valI32, valI32, valI32}, nil)
	w.funcType([]byte{valI64}, []byte{valI32})
	w.funcType([]byte{valF32}, []byte{valI32})
	w.funcType([]byte{valF64}, []byte{valI32})
	return w.buf
}

func functionSection(elems []elemSpec) []byte {
	var w writer
	w.uleb(uint32(2 + len(elems)*funcsPerElement))
	w.uleb(typeAlloc)
	w.uleb(typeDealloc)
	for _, e := range elems {
		w.uleb(typePtrToI32)  // has_value
		w.uleb(typePtrToI32)  // get_unchecked
		w.uleb(typeVoidToI32) // empty
		w.uleb(e.newTypeIdx)  // new
		w.uleb(typePtr)       // null
		w.uleb(typePtrPtr)    // raw
		w.uleb(typePtrToI32)  // get
		w.uleb(typePtrToI32)  // release
		w.uleb(typePtr)       // drop
	}
	return w.buf
}

func memorySection() []byte {
	var w writer
	w.uleb(1)
	w.byte(0x00) // min only
	w.uleb(16)   // 16 pages = 1 MiB
	return w.buf
}

func globalSection() []byte {
	var w writer
	w.uleb(2)

	// heap pointer: first allocation lands at 8 so that 0 stays null
	w.byte(valI32, 0x01)
	w.byte(opI32Const)
	w.sleb(8)
	w.byte(opEnd)

	// live-objects counter
	w.byte(valI32, 0x01)
	w.byte(opI32Const)
	w.sleb(0)
	w.byte(opEnd)

	return w.buf
}

func exportSection(elems []elemSpec) []byte {
	var w writer
	w.uleb(uint32(4 + len(elems)*funcsPerElement))

	w.name("memory")
	w.byte(kindMemory)
	w.uleb(0)

	w.name(abi.LiveObjectsSymbol)
	w.byte(kindGlobal)
	w.uleb(globalLive)

	w.name(abi.AllocSymbol)
	w.byte(kindFunc)
	w.uleb(funcAlloc)

	w.name(abi.DeallocSymbol)
	w.byte(kindFunc)
	w.uleb(funcDealloc)

	for i, e := range elems {
		base := uint32(2 + i*funcsPerElement)
		names := []string{
			abi.OptionalSymbol(e.name, abi.OpHasValue),
			abi.OptionalSymbol(e.name, abi.OpGetUnchecked),
			abi.OptionalSymbol(e.name, abi.OpEmpty),
			abi.OptionalSymbol(e.name, abi.OpNew),
			abi.UniquePtrSymbol(e.name, abi.OpNull),
			abi.UniquePtrSymbol(e.name, abi.OpRaw),
			abi.UniquePtrSymbol(e.name, abi.OpGet),
			abi.UniquePtrSymbol(e.name, abi.OpRelease),
			abi.UniquePtrSymbol(e.name, abi.OpDrop),
		}
		for k, n := range names {
			w.name(n)
			w.byte(kindFunc)
			w.uleb(base + uint32(k))
		}
	}

	return w.buf
}

func codeSection(elems []elemSpec) []byte {
	var w writer
	w.uleb(uint32(2 + len(elems)*funcsPerElement))
	w.code(1, allocBody())
	w.code(0, deallocBody())
	for _, e := range elems {
		w.code(0, hasValueBody())
		w.code(0, getUncheckedBody(e))
		w.code(1, emptyBody(e))
		w.code(1, newBody(e))
		w.code(0, nullBody())
		w.code(0, rawBody())
		w.code(0, getBody())
		w.code(1, releaseBody())
		w.code(1, dropBody(e))
	}
	return w.buf
}

// allocBody bumps the heap pointer, aligned, and counts the allocation.
// Storage is never reused; dealloc only decrements the counter.
func allocBody() []byte {
	var w writer

	// p = (heap + align - 1) & -align
	w.byte(opGlobalGet)
	w.uleb(globalHeap)
	w.byte(opLocalGet)
	w.uleb(1)
	w.byte(opI32Add)
	w.byte(opI32Const)
	w.sleb(1)
	w.byte(opI32Sub)
	w.byte(opI32Const)
	w.sleb(0)
	w.byte(opLocalGet)
	w.uleb(1)
	w.byte(opI32Sub)
	w.byte(opI32And)
	w.byte(opLocalSet)
	w.uleb(2)

	// heap = p + size
	w.byte(opLocalGet)
	w.uleb(2)
	w.byte(opLocalGet)
	w.uleb(0)
	w.byte(opI32Add)
	w.byte(opGlobalSet)
	w.uleb(globalHeap)

	// live += 1
	w.byte(opGlobalGet)
	w.uleb(globalLive)
	w.byte(opI32Const)
	w.sleb(1)
	w.byte(opI32Add)
	w.byte(opGlobalSet)
	w.uleb(globalLive)

	w.byte(opLocalGet)
	w.uleb(2)
	return w.buf
}

func deallocBody() []byte {
	var w writer
	w.byte(opGlobalGet)
	w.uleb(globalLive)
	w.byte(opI32Const)
	w.sleb(1)
	w.byte(opI32Sub)
	w.byte(opGlobalSet)
	w.uleb(globalLive)
	return w.buf
}

func hasValueBody() []byte {
	var w writer
	w.byte(opLocalGet)
	w.uleb(0)
	w.byte(opI32Load8U)
	w.memarg(0, 0)
	return w.buf
}

func getUncheckedBody(e elemSpec) []byte {
	var w writer
	w.byte(opLocalGet)
	w.uleb(0)
	w.byte(opI32Const)
	w.sleb(int32(e.layout.PayloadOffset))
	w.byte(opI32Add)
	return w.buf
}

func emptyBody(e elemSpec) []byte {
	var w writer

	// p = alloc(size, align)
	w.byte(opI32Const)
	w.sleb(int32(e.layout.Size))
	w.byte(opI32Const)
	w.sleb(int32(e.layout.Align))
	w.byte(opCall)
	w.uleb(funcAlloc)
	w.byte(opLocalSet)
	w.uleb(0)

	// tag = 0
	w.byte(opLocalGet)
	w.uleb(0)
	w.byte(opI32Const)
	w.sleb(0)
	w.byte(opI32Store8)
	w.memarg(0, 0)

	w.byte(opLocalGet)
	w.uleb(0)
	return w.buf
}

func newBody(e elemSpec) []byte {
	var w writer

	// p = alloc(size, align)
	w.byte(opI32Const)
	w.sleb(int32(e.layout.Size))
	w.byte(opI32Const)
	w.sleb(int32(e.layout.Align))
	w.byte(opCall)
	w.uleb(funcAlloc)
	w.byte(opLocalSet)
	w.uleb(1)

	// tag = 1
	w.byte(opLocalGet)
	w.uleb(1)
	w.byte(opI32Const)
	w.sleb(1)
	w.byte(opI32Store8)
	w.memarg(0, 0)

	// payload = v
	w.byte(opLocalGet)
	w.uleb(1)
	w.byte(opLocalGet)
	w.uleb(0)
	w.byte(e.storeOp)
	w.memarg(e.storeAlign, e.layout.PayloadOffset)

	w.byte(opLocalGet)
	w.uleb(1)
	return w.buf
}

func nullBody() []byte {
	var w writer
	w.byte(opLocalGet)
	w.uleb(0)
	w.byte(opI32Const)
	w.sleb(0)
	w.byte(opI32Store)
	w.memarg(2, 0)
	return w.buf
}

func rawBody() []byte {
	var w writer
	w.byte(opLocalGet)
	w.uleb(0)
	w.byte(opLocalGet)
	w.uleb(1)
	w.byte(opI32Store)
	w.memarg(2, 0)
	return w.buf
}

func getBody() []byte {
	var w writer
	w.byte(opLocalGet)
	w.uleb(0)
	w.byte(opI32Load)
	w.memarg(2, 0)
	return w.buf
}

func releaseBody() []byte {
	var w writer

	// p = *this
	w.byte(opLocalGet)
	w.uleb(0)
	w.byte(opI32Load)
	w.memarg(2, 0)
	w.byte(opLocalSet)
	w.uleb(1)

	// *this = null
	w.byte(opLocalGet)
	w.uleb(0)
	w.byte(opI32Const)
	w.sleb(0)
	w.byte(opI32Store)
	w.memarg(2, 0)

	w.byte(opLocalGet)
	w.uleb(1)
	return w.buf
}

func dropBody(e elemSpec) []byte {
	var w writer

	w.byte(opLocalGet)
	w.uleb(0)
	w.byte(opI32Load)
	w.memarg(2, 0)
	w.byte(opLocalTee)
	w.uleb(1)
	w.byte(opIf, blockTypeEmpty)
	w.byte(opLocalGet)
	w.uleb(1)
	w.byte(opI32Const)
	w.sleb(int32(e.layout.Size))
	w.byte(opI32Const)
	w.sleb(int32(e.layout.Align))
	w.byte(opCall)
	w.uleb(funcDealloc)
	w.byte(opEnd)
	return w.buf
}
