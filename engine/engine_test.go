package engine_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/wippyai/optbridge/abi"
	"github.com/wippyai/optbridge/engine"
	"github.com/wippyai/optbridge/errors"
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

func TestLoad_InvalidBinary(t *testing.T) {
	ctx := context.Background()
	eng, err := engine.New(ctx)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	defer eng.Close(ctx)

	if _, err := eng.Load(ctx, []byte("not a wasm binary")); err == nil {
		t.Error("loading garbage should fail")
	}
}

func TestModule_MultipleInstances(t *testing.T) {
	ctx := context.Background()
	eng, err := engine.New(ctx)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	defer eng.Close(ctx)

	mod, err := eng.Load(ctx, synth.Module())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	a, err := mod.Instantiate(ctx)
	if err != nil {
		t.Fatalf("first Instantiate: %v", err)
	}
	defer a.Close(ctx)

	b, err := mod.Instantiate(ctx)
	if err != nil {
		t.Fatalf("second Instantiate: %v", err)
	}
	defer b.Close(ctx)

	// Instances must not share linear memory.
	if err := a.Memory().WriteU32(0, 0xABCD); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	v, err := b.Memory().ReadU32(0)
	if err != nil {
		t.Fatalf("ReadU32: %v", err)
	}
	if v == 0xABCD {
		t.Error("write in one instance is visible in another")
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	inst := newInstance(t)
	mem := inst.Memory()

	if err := mem.WriteU8(16, 0x7F); err != nil {
		t.Fatalf("WriteU8: %v", err)
	}
	if err := mem.WriteU16(18, 0xBEEF); err != nil {
		t.Fatalf("WriteU16: %v", err)
	}
	if err := mem.WriteU32(20, 0xDEADBEEF); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if err := mem.WriteU64(24, 0x0123456789ABCDEF); err != nil {
		t.Fatalf("WriteU64: %v", err)
	}

	if v, _ := mem.ReadU8(16); v != 0x7F {
		t.Errorf("ReadU8 = %#x, want 0x7f", v)
	}
	if v, _ := mem.ReadU16(18); v != 0xBEEF {
		t.Errorf("ReadU16 = %#x, want 0xbeef", v)
	}
	if v, _ := mem.ReadU32(20); v != 0xDEADBEEF {
		t.Errorf("ReadU32 = %#x, want 0xdeadbeef", v)
	}
	if v, _ := mem.ReadU64(24); v != 0x0123456789ABCDEF {
		t.Errorf("ReadU64 = %#x, want 0x0123456789abcdef", v)
	}
}

func TestMemory_OutOfBounds(t *testing.T) {
	inst := newInstance(t)
	mem := inst.Memory()

	_, err := mem.Read(0xFFFFFFF0, 32)
	if err == nil {
		t.Fatal("read past the end of memory should fail")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLift, Kind: errors.KindOutOfBounds}) {
		t.Errorf("error = %v, want phase lift / kind out_of_bounds", err)
	}

	err = mem.Write(0xFFFFFFF0, make([]byte, 32))
	if err == nil {
		t.Fatal("write past the end of memory should fail")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLower, Kind: errors.KindOutOfBounds}) {
		t.Errorf("error = %v, want phase lower / kind out_of_bounds", err)
	}
}

func TestInstance_FuncLookup(t *testing.T) {
	inst := newInstance(t)

	fn, ok := inst.Func(abi.AllocSymbol)
	if !ok || fn == nil {
		t.Fatal("allocator export should resolve")
	}

	// Cached lookups return the same function.
	again, ok := inst.Func(abi.AllocSymbol)
	if !ok || again != fn {
		t.Error("repeated lookup should return the cached function")
	}

	if _, ok := inst.Func("no$such$symbol"); ok {
		t.Error("unknown symbol should not resolve")
	}
}

func TestInstance_GlobalU32(t *testing.T) {
	inst := newInstance(t)

	if _, ok := inst.GlobalU32(abi.LiveObjectsSymbol); !ok {
		t.Error("live-objects global should resolve")
	}
	if _, ok := inst.GlobalU32("no$such$global"); ok {
		t.Error("unknown global should not resolve")
	}
}

func TestInstance_CloseTwice(t *testing.T) {
	ctx := context.Background()
	eng, err := engine.New(ctx)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	defer eng.Close(ctx)

	mod, err := eng.Load(ctx, synth.Module())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	inst, err := mod.Instantiate(ctx)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	if err := inst.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := inst.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
