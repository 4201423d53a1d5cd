package synth_test

import (
	"bytes"
	"context"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/optbridge/abi"
	"github.com/wippyai/optbridge/engine"
	"github.com/wippyai/optbridge/synth"
)

func newInstance(t *testing.T) *engine.Instance {
	t.Helper()
	ctx := context.Background()

	eng, err := engine.New(ctx)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	t.Cleanup(func() { eng.Close(ctx) })

	mod, err := eng.Load(ctx, synth.Module())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	inst, err := mod.Instantiate(ctx)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	t.Cleanup(func() { inst.Close(ctx) })

	return inst
}

func TestModule_Deterministic(t *testing.T) {
	if !bytes.Equal(synth.Module(), synth.Module()) {
		t.Error("Module should generate identical bytes on every call")
	}
}

func TestModule_SymbolSurface(t *testing.T) {
	inst := newInstance(t)

	for _, sym := range []string{abi.AllocSymbol, abi.DeallocSymbol} {
		if _, ok := inst.Func(sym); !ok {
			t.Errorf("missing export %q", sym)
		}
	}
	if _, ok := inst.GlobalU32(abi.LiveObjectsSymbol); !ok {
		t.Errorf("missing export %q", abi.LiveObjectsSymbol)
	}
	if inst.Memory() == nil {
		t.Error("missing memory export")
	}

	optionalOps := []string{abi.OpHasValue, abi.OpGetUnchecked, abi.OpEmpty, abi.OpNew}
	uniquePtrOps := []string{abi.OpNull, abi.OpRaw, abi.OpGet, abi.OpRelease, abi.OpDrop}

	for _, elem := range abi.ElementNames() {
		for _, op := range optionalOps {
			sym := abi.OptionalSymbol(elem, op)
			if _, ok := inst.Func(sym); !ok {
				t.Errorf("missing export %q", sym)
			}
		}
		for _, op := range uniquePtrOps {
			sym := abi.UniquePtrSymbol(elem, op)
			if _, ok := inst.Func(sym); !ok {
				t.Errorf("missing export %q", sym)
			}
		}
	}
}

func TestAllocator_AlignmentAndAccounting(t *testing.T) {
	inst := newInstance(t)
	alloc := inst.Allocator()

	baseline, _ := inst.GlobalU32(abi.LiveObjectsSymbol)

	tests := []struct {
		size  uint32
		align uint32
	}{
		{1, 1},
		{2, 2},
		{8, 4},
		{16, 8},
		{3, 1},
	}
	ptrs := make([]uint32, 0, len(tests))
	for _, tt := range tests {
		p, err := alloc.Alloc(tt.size, tt.align)
		if err != nil {
			t.Fatalf("Alloc(%d, %d): %v", tt.size, tt.align, err)
		}
		if p == 0 {
			t.Errorf("Alloc(%d, %d) returned null", tt.size, tt.align)
		}
		if p%tt.align != 0 {
			t.Errorf("Alloc(%d, %d) = %d, not %d-aligned", tt.size, tt.align, p, tt.align)
		}
		ptrs = append(ptrs, p)
	}

	if n, _ := inst.GlobalU32(abi.LiveObjectsSymbol); n != baseline+uint32(len(tests)) {
		t.Errorf("live objects = %d, want %d", n, baseline+uint32(len(tests)))
	}

	for i, p := range ptrs {
		alloc.Free(p, tests[i].size, tests[i].align)
	}
	if n, _ := inst.GlobalU32(abi.LiveObjectsSymbol); n != baseline {
		t.Errorf("live objects after frees = %d, want %d", n, baseline)
	}
}

func TestConstructors_MemoryLayout(t *testing.T) {
	ctx := context.Background()
	inst := newInstance(t)
	mem := inst.Memory()

	emptyFn, ok := inst.Func(abi.OptionalSymbol("u32", abi.OpEmpty))
	if !ok {
		t.Fatal("u32 empty constructor not exported")
	}
	res, err := emptyFn.Call(ctx)
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	p := uint32(res[0])

	tag, err := mem.ReadU8(p)
	if err != nil {
		t.Fatalf("ReadU8: %v", err)
	}
	if tag != 0 {
		t.Errorf("empty optional tag = %d, want 0", tag)
	}

	newFn, ok := inst.Func(abi.OptionalSymbol("u32", abi.OpNew))
	if !ok {
		t.Fatal("u32 new constructor not exported")
	}
	res, err = newFn.Call(ctx, 42)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	p = uint32(res[0])

	layout := abi.OptionLayout(wit.U32{})
	tag, err = mem.ReadU8(p)
	if err != nil {
		t.Fatalf("ReadU8: %v", err)
	}
	if tag != 1 {
		t.Errorf("holding optional tag = %d, want 1", tag)
	}
	v, err := mem.ReadU32(p + layout.PayloadOffset)
	if err != nil {
		t.Fatalf("ReadU32: %v", err)
	}
	if v != 42 {
		t.Errorf("payload = %d, want 42", v)
	}
}

func TestNullPointerNeverAllocated(t *testing.T) {
	inst := newInstance(t)

	p, err := inst.Allocator().Alloc(1, 1)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if p == 0 {
		t.Error("first allocation must not land on the null address")
	}
}
